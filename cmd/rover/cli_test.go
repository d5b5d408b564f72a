package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/terassyi/rover/internal/env"
)

const federatedSubgraphs = `{"data":{"service":{"implementingServices":{
  "__typename":"FederatedImplementingServices",
  "services":[
    {"name":"accounts","url":"http://accounts","updatedAt":"2024-01-02T03:04:05Z","activePartialSchema":{"sdl":"type Account { id: ID! }"}},
    {"name":"products","url":"http://products","updatedAt":"2024-01-02T03:04:05Z","activePartialSchema":{"sdl":"type Product { upc: ID! }"}}
  ]}}}}`

var _ = Describe("rover", func() {
	var (
		reg *fakeRegistry
		e   env.Map
	)

	BeforeEach(func() {
		var url string
		reg, url = startRegistry()
		e = env.Map{
			env.ConfigHome:  GinkgoT().TempDir(),
			env.RegistryURL: url,
		}
	})

	authenticate := func(profile, key string) {
		res := execRover(e, key+"\n", "config", "auth", "--profile", profile)
		Expect(res.code).To(Equal(0), res.stderr)
	}

	Context("config", func() {
		It("saves an API key and lists the profile", func() {
			authenticate("default", "user:abc")

			res := execRover(e, "", "config", "list")
			Expect(res.code).To(Equal(0))
			Expect(res.stdout).To(Equal("NAME\ndefault\n"))
		})

		It("stores the key with owner-only permissions", func() {
			authenticate("default", "user:abc")

			fi, err := os.Stat(filepath.Join(e[env.ConfigHome], "profiles", "default", ".sensitive"))
			Expect(err).NotTo(HaveOccurred())
			Expect(fi.Mode().Perm()).To(Equal(os.FileMode(0600)))
		})

		It("rejects an empty API key", func() {
			res := execRover(e, "\n", "config", "auth")
			Expect(res.code).To(Equal(1))
			Expect(res.stderr).To(ContainSubstring("no API key provided"))
		})

		It("shows the key only with --sensitive", func() {
			authenticate("default", "user:abc")
			Expect(execRover(e, "", "config", "set-graph", "my-graph@prod").code).To(Equal(0))

			res := execRover(e, "", "config", "show")
			Expect(res.code).To(Equal(0))
			Expect(res.stdout).To(ContainSubstring("my-graph@prod"))
			Expect(res.stdout).NotTo(ContainSubstring("user:abc"))

			res = execRover(e, "", "config", "show", "--sensitive")
			Expect(res.code).To(Equal(0))
			Expect(res.stdout).To(ContainSubstring("user:abc"))
		})

		It("suggests --sensitive when only credentials are stored", func() {
			authenticate("default", "user:abc")

			res := execRover(e, "", "config", "show")
			Expect(res.code).To(Equal(1))
			Expect(res.stderr).To(ContainSubstring("no non-sensitive configuration found"))
			Expect(res.stderr).To(ContainSubstring("`--sensitive`"))
		})

		It("suggests listing profiles for an unknown profile", func() {
			authenticate("default", "user:abc")

			res := execRover(e, "", "config", "show", "staging")
			Expect(res.code).To(Equal(1))
			Expect(res.stderr).To(ContainSubstring(`there is no profile named "staging"`))
			Expect(res.stderr).To(ContainSubstring("`rover config list`"))
		})

		It("suggests migrating when no profiles exist under an overridden home", func() {
			res := execRover(e, "", "config", "list")
			Expect(res.code).To(Equal(1))
			Expect(res.stderr).To(ContainSubstring("no configuration found"))
			Expect(res.stderr).To(ContainSubstring("migrate your old configuration directory"))
		})

		It("rejects a config home that is a file", func() {
			file := filepath.Join(GinkgoT().TempDir(), "not-a-dir")
			Expect(os.WriteFile(file, nil, 0644)).To(Succeed())
			e[env.ConfigHome] = file

			res := execRover(e, "", "config", "list")
			Expect(res.code).To(Equal(1))
			Expect(res.stderr).To(ContainSubstring("APOLLO_CONFIG_HOME"))
		})

		It("deletes a profile and clears the rest", func() {
			authenticate("default", "user:abc")
			authenticate("staging", "user:def")

			Expect(execRover(e, "", "config", "delete", "staging").code).To(Equal(0))
			Expect(execRover(e, "", "config", "list").stdout).To(Equal("NAME\ndefault\n"))

			Expect(execRover(e, "", "config", "clear").code).To(Equal(0))
			Expect(execRover(e, "", "config", "list").code).To(Equal(1))
		})

		It("prints the identity of the key", func() {
			authenticate("default", "user:abc")
			reg.respond("WhoAmI", `{"data":{"me":{"__typename":"User","id":"u1","name":"Ada"}}}`)

			res := execRover(e, "", "config", "whoami", "--output", "json")
			Expect(res.code).To(Equal(0), res.stderr)

			var id map[string]string
			Expect(json.Unmarshal([]byte(res.stdout), &id)).To(Succeed())
			Expect(id).To(HaveKeyWithValue("name", "Ada"))
			Expect(reg.lastAPIKey()).To(Equal("user:abc"))
		})
	})

	Context("graph", func() {
		BeforeEach(func() {
			authenticate("default", "user:abc")
		})

		It("fetches a schema", func() {
			reg.respond("GraphFetch", `{"data":{"service":{"schema":{"document":"type Query { a: Int }"}}}}`)

			res := execRover(e, "", "graph", "fetch", "my-graph@prod")
			Expect(res.code).To(Equal(0), res.stderr)
			Expect(res.stdout).To(Equal("type Query { a: Int }\n"))
		})

		It("prefers APOLLO_KEY over the stored key", func() {
			reg.respond("GraphFetch", `{"data":{"service":{"schema":{"document":"type Query { a: Int }"}}}}`)
			e[env.APIKey] = "service:override"

			Expect(execRover(e, "", "graph", "fetch", "my-graph").code).To(Equal(0))
			Expect(reg.lastAPIKey()).To(Equal("service:override"))
		})

		It("falls back to the profile's default graph", func() {
			reg.respond("GraphFetch", `{"data":{"service":{"schema":{"document":"type Query { b: Int }"}}}}`)
			Expect(execRover(e, "", "config", "set-graph", "my-graph@prod").code).To(Equal(0))

			res := execRover(e, "", "graph", "fetch")
			Expect(res.code).To(Equal(0), res.stderr)
			Expect(res.stdout).To(ContainSubstring("b: Int"))
		})

		It("suggests checking the graph name for an unknown graph", func() {
			reg.respond("GraphFetch", `{"data":{"service":null}}`)

			res := execRover(e, "", "graph", "fetch", "nope")
			Expect(res.code).To(Equal(1))
			Expect(res.stderr).To(ContainSubstring(`could not find graph "nope"`))
			Expect(res.stderr).To(ContainSubstring("Make sure your graph name is typed correctly"))
		})

		It("suggests listing variants for a variant without a schema", func() {
			reg.respond("GraphFetch", `{"data":{"service":{"schema":null}}}`)

			res := execRover(e, "", "graph", "fetch", "my-graph@prod")
			Expect(res.code).To(Equal(1))
			Expect(res.stderr).To(ContainSubstring("`rover graph list my-graph`"))
		})

		It("lists variants", func() {
			reg.respond("GraphVariants", `{"data":{"service":{"variants":[{"name":"current"},{"name":"prod"}]}}}`)

			res := execRover(e, "", "graph", "list", "my-graph")
			Expect(res.code).To(Equal(0), res.stderr)
			Expect(res.stdout).To(ContainSubstring("my-graph@current"))
			Expect(res.stdout).To(ContainSubstring("my-graph@prod"))
		})

		It("fails a check with breaking changes", func() {
			reg.respond("GraphCheck", `{"data":{"service":{"checkSchema":{
			  "targetUrl":"https://studio.example/check/1",
			  "diffToPrevious":{"severity":"FAILURE","numberOfCheckedOperations":3,
			    "changes":[{"severity":"FAILURE","code":"FIELD_REMOVED","description":"Query.a was removed"}]}}}}}`)

			res := execRover(e, "type Query { b: Int }", "graph", "check", "my-graph@prod", "--schema", "-")
			Expect(res.code).To(Equal(1))
			Expect(res.stdout).To(ContainSubstring("FIELD_REMOVED"))
			Expect(res.stderr).To(ContainSubstring("schema check failed for my-graph@prod"))
		})

		It("suggests filing an issue for an unknown severity", func() {
			reg.respond("GraphCheck", `{"data":{"service":{"checkSchema":{
			  "diffToPrevious":{"severity":"CATASTROPHIC","numberOfCheckedOperations":0,"changes":[]}}}}}`)

			res := execRover(e, "type Query { b: Int }", "graph", "check", "my-graph", "--schema", "-")
			Expect(res.code).To(Equal(1))
			Expect(res.stderr).To(ContainSubstring("invalid ChangeSeverity"))
			Expect(res.stderr).To(ContainSubstring("issues/new"))
		})

		It("renders errors as JSON with --output json", func() {
			reg.respond("GraphFetch", `{"data":{"service":null}}`)

			res := execRover(e, "", "graph", "fetch", "nope", "--output", "json")
			Expect(res.code).To(Equal(1))

			var doc struct {
				Error struct {
					Message    string `json:"message"`
					Suggestion struct {
						Kind string `json:"kind"`
					} `json:"suggestion"`
				} `json:"error"`
			}
			Expect(json.Unmarshal([]byte(res.stderr), &doc)).To(Succeed())
			Expect(doc.Error.Message).To(ContainSubstring("nope"))
			Expect(doc.Error.Suggestion.Kind).To(Equal("CheckGraphNameAndAuth"))
		})

		It("has no suggestion for GraphQL errors", func() {
			reg.respond("GraphFetch", `{"errors":[{"message":"Cannot query field"}]}`)

			res := execRover(e, "", "graph", "fetch", "my-graph")
			Expect(res.code).To(Equal(1))
			Expect(res.stderr).To(Equal("error: Cannot query field\n"))
		})
	})

	Context("subgraph", func() {
		BeforeEach(func() {
			authenticate("default", "user:abc")
		})

		It("lists subgraphs in registry order", func() {
			reg.respond("Subgraphs", federatedSubgraphs)

			res := execRover(e, "", "subgraph", "list", "my-graph@prod")
			Expect(res.code).To(Equal(0), res.stderr)
			Expect(res.stdout).To(MatchRegexp(`(?s)accounts.*products`))
		})

		It("suggests a federated graph for a monolith", func() {
			reg.respond("Subgraphs", `{"data":{"service":{"implementingServices":{"__typename":"NonFederatedImplementingService"}}}}`)

			res := execRover(e, "", "subgraph", "list", "monolith")
			Expect(res.code).To(Equal(1))
			Expect(res.stderr).To(ContainSubstring("valid federated graph"))
		})

		It("fetches several subgraphs in the requested order", func() {
			reg.respond("Subgraphs", federatedSubgraphs)

			res := execRover(e, "", "subgraph", "fetch", "my-graph", "--name", "products", "--name", "accounts")
			Expect(res.code).To(Equal(0), res.stderr)
			Expect(res.stdout).To(MatchRegexp(`(?s)# subgraph: products\ntype Product.*# subgraph: accounts\ntype Account`))
			Expect(reg.count("Subgraphs")).To(Equal(2))
		})

		It("lists the valid subgraphs for an unknown name", func() {
			reg.respond("Subgraphs", federatedSubgraphs)

			res := execRover(e, "", "subgraph", "fetch", "my-graph", "--name", "reviews")
			Expect(res.code).To(Equal(1))
			Expect(res.stderr).To(ContainSubstring(`could not find subgraph "reviews"`))
			Expect(res.stderr).To(ContainSubstring("[accounts, products]"))
		})

		It("requires a name", func() {
			res := execRover(e, "", "subgraph", "fetch", "my-graph")
			Expect(res.code).To(Equal(1))
			Expect(res.stderr).To(ContainSubstring("--name"))
		})
	})

	Context("version", func() {
		It("prints the version", func() {
			res := execRover(e, "", "version")
			Expect(res.code).To(Equal(0))
			Expect(res.stdout).To(HavePrefix("rover dev\n"))
		})

		It("rejects an unknown output format", func() {
			res := execRover(e, "", "version", "--output", "xml")
			Expect(res.code).To(Equal(1))
			Expect(res.stderr).To(ContainSubstring(`unknown output format "xml"`))
		})
	})
})

var _ = Describe("displayVersion", func() {
	DescribeTable("normalizes semantic versions",
		func(in, want string) {
			Expect(displayVersion(in)).To(Equal(want))
		},
		Entry("plain", "1.2.3", "v1.2.3"),
		Entry("prefixed", "v0.4.0", "v0.4.0"),
		Entry("short", "2.1", "v2.1.0"),
		Entry("dev build", "dev", "dev"),
	)
})

var _ = Describe("parseLogLevel", func() {
	DescribeTable("maps names to levels",
		func(in string, want int) {
			Expect(int(parseLogLevel(in))).To(Equal(want))
		},
		Entry("debug", "debug", -4),
		Entry("upper info", "INFO", 0),
		Entry("warn", "warn", 4),
		Entry("error", "error", 8),
		Entry("unknown", "loud", 4),
	)
})
