package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cursorcult/uno/internal/adapters/bbolt"
)

var wipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Clear the extraction cache",
	Long:  "Drops every cached extraction result so the next run re-parses from scratch. Use after swapping grammars under .uno/grammars.",
	Args:  cobra.NoArgs,
	RunE:  runWipe,
}

func runWipe(cmd *cobra.Command, args []string) error {
	dbPath := filepath.Join(projectRoot(), cacheFile)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Println("⚡ no cache to wipe")
		return nil
	}

	store, err := bbolt.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer store.Close()

	if err := store.Wipe(); err != nil {
		return fmt.Errorf("wipe cache: %w", err)
	}
	fmt.Println("⚡ extraction cache wiped")
	return nil
}
