package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cursorcult/uno/internal/adapters/bbolt"
	"github.com/cursorcult/uno/internal/adapters/treesitter"
	"github.com/cursorcult/uno/internal/app"
)

// cacheFile is the bbolt extraction cache, relative to the project root.
var cacheFile = filepath.Join(".uno", "cache.db")

// newParser builds the tree-sitter parser with dynamic grammar search paths
// for the project.
func newParser(root string) *treesitter.Parser {
	p := treesitter.NewParser()
	p.SetGrammarPaths(treesitter.DefaultGrammarPaths(root))
	return p
}

// newGenerator wires a Generator from the config. The returned cleanup
// closes the cache; call it when done. A cache that fails to open degrades
// to uncached extraction with a warning.
func newGenerator(root string, cfg *app.Config) (*app.Generator, func()) {
	g := &app.Generator{Parser: newParser(root)}
	cleanup := func() {}

	if !cfg.Cache {
		return g, cleanup
	}

	dbPath := filepath.Join(root, cacheFile)
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "WARN: cache disabled: %v\n", err)
		return g, cleanup
	}
	store, err := bbolt.NewStore(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "WARN: cache disabled: %v\n", err)
		return g, cleanup
	}
	g.Cache = store
	cleanup = func() { store.Close() }
	return g, cleanup
}
