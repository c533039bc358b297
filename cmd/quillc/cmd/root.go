package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "quillc",
	Short: "Quill flow checker",
	Long: `quillc is a front end for Quill, a statically-typed imperative
language whose type checker is flow-sensitive and bidirectional:
refinement narrows a variable's known type as a function's statements
execute, and the same refinement feeds back into overload resolution,
subtyping, and reference-lifetime checking.

This build lexes, parses, and flow-checks Quill source; it does not
lower to an AST-independent IR, generate code, or execute programs.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "render diagnostics as JSON")
}
