package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cursorcult/uno/internal/app"
	"github.com/cursorcult/uno/internal/domain/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a defs evidence document",
	Long:  "Checks the document against the cursorcult.defs.v1 schema, recomputing every count. Defaults to the configured output file.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	path, err := resolveInput(args)
	if err != nil {
		return err
	}

	if _, err := app.Validate(path); err != nil {
		var serr *schema.Error
		if errors.As(err, &serr) {
			fmt.Fprintf(os.Stderr, "INVALID: %v\n", serr)
			return ruleExit{1}
		}
		return err
	}

	fmt.Println("OK: defs evidence is valid.")
	return nil
}

// resolveInput picks the document path: the positional argument when given,
// the configured output otherwise.
func resolveInput(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	return cfg.Output, nil
}
