package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cursorcult/uno/internal/app"
	"github.com/cursorcult/uno/internal/domain/rule"
)

var (
	evalDomain string
	evalLoose  bool
	evalNaming bool
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [file]",
	Short: "Evaluate the one-definition-per-file rule",
	Long:  "Validates the defs document, then checks that every non-test file holds exactly one definition. Exit 0 on pass, 1 on violations, 2 on malformed input.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runEvaluate,
}

func init() {
	evaluateCmd.Flags().StringVar(&evalDomain, "domain", "", "Evaluate only this domain")
	evaluateCmd.Flags().BoolVar(&evalLoose, "loose", false, "Loose name matching (case- and underscore-insensitive)")
	evaluateCmd.Flags().BoolVar(&evalNaming, "naming", false, "Also require a definition named after the file")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	path, err := resolveInput(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	res, err := app.Check(path, rule.Options{
		Loose:  evalLoose || cfg.Loose,
		Naming: evalNaming || cfg.Naming,
		Domain: evalDomain,
	})
	if err != nil {
		return err
	}

	fmt.Print(formatReport(res.Doc, res.Report))
	if !res.Report.Overall {
		return ruleExit{1}
	}
	return nil
}
