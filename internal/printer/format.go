package printer

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"

	"github.com/terassyi/rover/internal/errors"
)

// ErrorFormatter formats errors for CLI output.
type ErrorFormatter struct {
	NoColor bool
	Writer  io.Writer

	// Classifier attaches suggestions. Nil classifies against the process environment.
	Classifier *errors.Classifier

	// Colors
	errorColor      *color.Color
	codeColor       *color.Color
	suggestionColor *color.Color
}

// NewErrorFormatter creates a new ErrorFormatter.
func NewErrorFormatter(w io.Writer, noColor bool) *ErrorFormatter {
	f := &ErrorFormatter{
		NoColor:         noColor,
		Writer:          w,
		errorColor:      color.New(color.FgRed, color.Bold),
		codeColor:       color.New(color.FgRed),
		suggestionColor: color.New(color.FgYellow, color.Bold),
	}
	if noColor {
		f.errorColor.DisableColor()
		f.codeColor.DisableColor()
		f.suggestionColor.DisableColor()
	} else {
		f.errorColor.EnableColor()
		f.codeColor.EnableColor()
		f.suggestionColor.EnableColor()
	}
	return f
}

// Format formats an error for CLI display.
// Format: "error[E001]: message" followed by the suggestion, if any.
func (f *ErrorFormatter) Format(err error) string {
	if err == nil {
		return ""
	}
	re := f.wrap(err)

	var sb strings.Builder
	sb.WriteString(f.errorColor.Sprint("error"))
	if code := re.Code(); !code.IsZero() {
		sb.WriteString(f.codeColor.Sprintf("[%s]", code))
	}
	sb.WriteString(f.errorColor.Sprint(":"))
	sb.WriteString(" ")
	sb.WriteString(re.Error())
	sb.WriteString("\n")

	if text := SuggestionText(re.Suggestion()); text != "" {
		sb.WriteString("        ")
		sb.WriteString(f.suggestionColor.Sprint("suggestion:"))
		sb.WriteString(" ")
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	return sb.String()
}

// errorDocument is the machine-readable form of an error.
type errorDocument struct {
	Error errorBody `json:"error" yaml:"error"`
}

type errorBody struct {
	Message    string              `json:"message" yaml:"message"`
	Code       string              `json:"code,omitempty" yaml:"code,omitempty"`
	Suggestion *suggestionDocument `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

func (f *ErrorFormatter) wrap(err error) *errors.RoverError {
	if f.Classifier == nil {
		return errors.Wrap(err)
	}
	return f.Classifier.Wrap(err)
}

func (f *ErrorFormatter) newErrorDocument(err error) errorDocument {
	re := f.wrap(err)
	return errorDocument{
		Error: errorBody{
			Message:    re.Error(),
			Code:       re.Code().String(),
			Suggestion: newSuggestionDocument(re.Suggestion()),
		},
	}
}

// FormatJSON formats an error as JSON.
func (f *ErrorFormatter) FormatJSON(err error) ([]byte, error) {
	if err == nil {
		return nil, nil
	}
	return json.MarshalIndent(f.newErrorDocument(err), "", "  ")
}

// FormatYAML formats an error as YAML.
func (f *ErrorFormatter) FormatYAML(err error) ([]byte, error) {
	if err == nil {
		return nil, nil
	}
	return yaml.Marshal(f.newErrorDocument(err))
}

// Print writes err to the formatter's writer in the given output format.
func (f *ErrorFormatter) Print(err error, format Format) error {
	if err == nil {
		return nil
	}

	var (
		data []byte
		mErr error
	)
	switch format {
	case FormatJSON:
		data, mErr = f.FormatJSON(err)
		data = append(data, '\n')
	case FormatYAML:
		data, mErr = f.FormatYAML(err)
	default:
		data = []byte(f.Format(err))
	}
	if mErr != nil {
		return mErr
	}
	_, wErr := f.Writer.Write(data)
	return wErr
}
