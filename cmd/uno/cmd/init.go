package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initForce bool

const configTemplate = `# uno project configuration.
output: .uno/defs.json
loose: false
naming: false
cache: true
domains:
  core:
    globs:
      - "src/**/*.py"
  tests:
    globs:
      - "tests/**/*.py"
    tests: true
`

const preCommitHook = "#!/bin/sh\nexec uno hook\n"

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up uno for the current project",
	Long:  "Writes a starter .uno.yaml and installs a pre-commit hook that runs `uno hook`.",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config and hook")
}

func runInit(cmd *cobra.Command, args []string) error {
	root := projectRoot()

	cfgPath := filepath.Join(root, ".uno.yaml")
	switch _, err := os.Stat(cfgPath); {
	case err == nil && !initForce:
		fmt.Printf("⚡ %s already exists (use --force to overwrite)\n", ".uno.yaml")
	default:
		if err := os.WriteFile(cfgPath, []byte(configTemplate), 0644); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		fmt.Println("⚡ wrote .uno.yaml — edit the domain globs to match your layout")
	}

	hookDir := filepath.Join(root, ".git", "hooks")
	if _, err := os.Stat(filepath.Join(root, ".git")); err != nil {
		fmt.Fprintln(os.Stderr, "WARN: no .git directory, skipping pre-commit hook")
		return nil
	}
	if err := os.MkdirAll(hookDir, 0755); err != nil {
		return fmt.Errorf("create hooks dir: %w", err)
	}

	hookPath := filepath.Join(hookDir, "pre-commit")
	if _, err := os.Stat(hookPath); err == nil && !initForce {
		fmt.Println("⚡ pre-commit hook already exists (use --force to overwrite)")
		return nil
	}
	if err := os.WriteFile(hookPath, []byte(preCommitHook), 0755); err != nil {
		return fmt.Errorf("write hook: %w", err)
	}
	fmt.Println("⚡ installed .git/hooks/pre-commit")
	return nil
}
