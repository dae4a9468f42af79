package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cursorcult/uno/internal/adapters/treesitter"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported languages",
	Long:  "Lists built-in tree-sitter grammars with their extensions, plus any dynamic grammars installed under .uno/grammars.",
	Args:  cobra.NoArgs,
	RunE:  runLanguages,
}

func runLanguages(cmd *cobra.Command, args []string) error {
	root := projectRoot()
	parser := newParser(root)

	fmt.Printf("⚡ %d built-in grammars\n", parser.LanguageCount())
	for _, lang := range parser.Languages() {
		fmt.Printf("  %-12s %s\n", lang, strings.Join(parser.ExtensionsFor(lang), " "))
	}

	loader := treesitter.NewDynamicLoader(treesitter.DefaultGrammarPaths(root))
	installed := loader.InstalledGrammars()
	if len(installed) == 0 {
		fmt.Printf("⚡ no dynamic grammars installed (drop *%s files into .uno/grammars)\n", treesitter.LibExtension())
		return nil
	}
	fmt.Printf("⚡ %d dynamic grammars: %s\n", len(installed), strings.Join(installed, ", "))
	return nil
}
