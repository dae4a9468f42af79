package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cursorcult/uno/internal/app"
)

var (
	genGlobs      []string
	genDomain     string
	genOutput     string
	genAccumulate bool
	genTests      bool
)

var generateCmd = &cobra.Command{
	Use:   "generate --glob PATTERN... --domain NAME",
	Short: "Extract definitions into the defs evidence document",
	Long:  "Expands the glob patterns, extracts top-level definitions with tree-sitter, and merges the result into the output document as one domain.",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringArrayVar(&genGlobs, "glob", nil, "Glob pattern selecting source files (repeatable, ** supported)")
	generateCmd.Flags().StringVar(&genDomain, "domain", "", "Domain name for the extracted files")
	generateCmd.Flags().StringVar(&genOutput, "output", "", "Output document path (default from config)")
	generateCmd.Flags().BoolVar(&genAccumulate, "accumulate", false, "Union into an existing domain instead of failing on conflict")
	generateCmd.Flags().BoolVar(&genTests, "tests", false, "Force the test flag on every file (default: per-path heuristic)")
	generateCmd.MarkFlagRequired("glob")
	generateCmd.MarkFlagRequired("domain")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	output := genOutput
	if output == "" {
		output = cfg.Output
	}

	var tests *bool
	if cmd.Flags().Changed("tests") {
		tests = &genTests
	}

	g, cleanup := newGenerator(projectRoot(), cfg)
	defer cleanup()

	res, err := g.Generate(cmd.Context(), app.GenerateOptions{
		Globs:      genGlobs,
		Domain:     genDomain,
		Output:     output,
		Accumulate: genAccumulate,
		Tests:      tests,
		Workers:    cfg.Workers,
	})
	if err != nil {
		return err
	}

	warnSkipped(res)
	fmt.Print(formatGenerateResult(res, output))
	return nil
}

func warnSkipped(res *app.GenerateResult) {
	for _, path := range res.SkippedParse {
		fmt.Fprintf(os.Stderr, "WARN: could not parse %s (skipped)\n", path)
	}
	for _, path := range res.SkippedLanguage {
		fmt.Fprintf(os.Stderr, "WARN: no grammar for %s (skipped)\n", path)
	}
}
