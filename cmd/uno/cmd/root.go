package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cursorcult/uno/internal/app"
)

var configFlag string

var rootCmd = &cobra.Command{
	Use:   "uno",
	Short: "uno — one definition per file",
	Long:  "Extracts top-level definitions with tree-sitter and enforces the one-definition-per-file rule.",

	SilenceUsage:  true,
	SilenceErrors: true,
}

// projectRoot returns the project root (cwd by default).
func projectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(2)
	}
	return dir
}

// loadConfig resolves and loads the project config, honoring --config.
func loadConfig() (*app.Config, error) {
	return app.LoadConfig(app.FindConfigFile(configFlag))
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file (default .uno.yaml)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(hookCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(languagesCmd)
	rootCmd.AddCommand(wipeCmd)
}
