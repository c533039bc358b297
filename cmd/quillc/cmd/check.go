package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quill-lang/quillc/internal/config"
	"github.com/quill-lang/quillc/pkg/quillc"
)

var configPath string

var checkCmd = &cobra.Command{
	Use:   "check <file.ql>",
	Short: "Lex, parse, and flow-check a Quill source file",
	Long: `Run the Quill flow checker against a source file, printing every
syntax and type-checking diagnostic. Exits non-zero if the unit does
not check.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&configPath, "config", "quill.yaml", "path to the project's quill.yaml")
}

func runCheck(_ *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w", configPath, err)
	}
	if jsonOutput {
		cfg.Diagnostics.Format = config.FormatJSON
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "checking %s (config: %s)\n", filepath.Clean(filename), configPath)
	}

	result, err := quillc.Check(string(content), filename, cfg)
	if err != nil {
		return fmt.Errorf("checking %s: %w", filename, err)
	}

	if cfg.Diagnostics.Format == config.FormatJSON {
		doc, err := result.JSON()
		if err != nil {
			return fmt.Errorf("rendering diagnostics: %w", err)
		}
		fmt.Println(doc)
	} else if len(result.Diagnostics) > 0 {
		fmt.Print(result.Text(true))
	}

	if !result.OK {
		return fmt.Errorf("%s failed to check with %d error(s)", filename, len(result.Diagnostics))
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "%s checks OK\n", filename)
	}
	return nil
}
