package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cursorcult/uno/internal/app"
	"github.com/cursorcult/uno/internal/domain/rule"
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Pre-commit check (config-driven)",
	Long:  "Regenerates every configured domain, validates the result, and evaluates the rule. A non-zero exit blocks the commit.",
	Args:  cobra.NoArgs,
	RunE:  runHook,
}

func runHook(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(cfg.Domains) == 0 {
		return fmt.Errorf("no domains configured in %s (run: uno init)", app.ConfigFileNames[0])
	}

	g, cleanup := newGenerator(projectRoot(), cfg)
	defer cleanup()

	res, err := regenerateAll(cmd.Context(), g, cfg)
	if err != nil {
		return err
	}

	fmt.Print(formatReport(res.Doc, res.Report))
	if !res.Report.Overall {
		fmt.Fprintln(os.Stderr, "uno: commit blocked, fix the files above or split them")
		return ruleExit{1}
	}
	return nil
}

// regenerateAll rebuilds every configured domain in a scratch document,
// validates it, and promotes it to the configured output. The previous
// output survives any failure; a half-regenerated document is never
// promoted or evaluated.
func regenerateAll(ctx context.Context, g *app.Generator, cfg *app.Config) (*app.CheckResult, error) {
	scratch := cfg.Output + ".regen"
	os.Remove(scratch) // leftover from an interrupted run
	defer os.Remove(scratch)

	for _, name := range cfg.DomainNames() {
		dc := cfg.Domains[name]
		res, err := g.Generate(ctx, app.GenerateOptions{
			Globs:   dc.Globs,
			Domain:  name,
			Output:  scratch,
			Tests:   dc.Tests,
			Workers: cfg.Workers,
		})
		if err != nil {
			return nil, fmt.Errorf("generate %s: %w", name, err)
		}
		warnSkipped(res)
	}

	res, err := app.Check(scratch, rule.Options{Loose: cfg.Loose, Naming: cfg.Naming})
	if err != nil {
		return nil, err
	}
	if err := os.Rename(scratch, cfg.Output); err != nil {
		return nil, fmt.Errorf("promote %s: %w", cfg.Output, err)
	}
	return res, nil
}
