package main

import (
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"

	"github.com/terassyi/rover/internal/printer"
)

// VersionInfo contains version information for the binary.
type VersionInfo struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildDate string `json:"buildDate" yaml:"buildDate"`
	GoVersion string `json:"goVersion" yaml:"goVersion"`
	Platform  string `json:"platform" yaml:"platform"`
}

// displayVersion normalizes a semantic version to "vX.Y.Z".
// Anything else, such as "dev", is returned unchanged.
func displayVersion(v string) string {
	sv, err := semver.NewVersion(v)
	if err != nil {
		return v
	}
	return "v" + sv.String()
}

func newVersionCmd(o *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := VersionInfo{
				Version:   displayVersion(version),
				Commit:    commit,
				BuildDate: buildDate,
				GoVersion: runtime.Version(),
				Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
			}

			switch o.format {
			case printer.FormatJSON, printer.FormatYAML:
				return printer.PrintDocument(cmd.OutOrStdout(), info, o.format)
			default:
				cmd.Printf("rover %s\n", info.Version)
				cmd.Printf("  commit:    %s\n", info.Commit)
				cmd.Printf("  built:     %s\n", info.BuildDate)
				cmd.Printf("  go:        %s\n", info.GoVersion)
				cmd.Printf("  platform:  %s\n", info.Platform)
				return nil
			}
		},
	}
}
