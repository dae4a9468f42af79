// Package treesitter implements the language adapter registry using
// tree-sitter grammars. Given file bytes and a language (derived from the
// extension), it yields the file's top-level definitions — classes and
// functions declared at file scope. Nested and local definitions are
// excluded by construction: classification never descends into definition
// bodies.
//
// Grammars compile in via CGo from the official tree-sitter binding modules.
// Additional grammars can be loaded at runtime from .so/.dylib files via
// purego (see loader.go).
package treesitter

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/cursorcult/uno/internal/ports"
)

// Parser maps languages to grammars and classifies parsed trees.
// It implements ports.Parser. Safe for concurrent use: ExtractDefs runs
// from a worker pool, and a lazy grammar load must not race other workers'
// lookups.
type Parser struct {
	mu        sync.RWMutex
	languages map[string]*tree_sitter.Language // lang name -> grammar
	extToLang map[string]string                // extension -> lang name; fixed after construction
	loader    *DynamicLoader                   // optional: loads grammars from .so/.dylib
}

// NewParser creates a parser with all built-in grammars registered.
func NewParser() *Parser {
	p := &Parser{
		languages: make(map[string]*tree_sitter.Language),
		extToLang: make(map[string]string),
	}
	p.registerBuiltinLanguages()
	p.registerExtensions()
	return p
}

// addLang registers a language by name.
func (p *Parser) addLang(name string, lang *tree_sitter.Language) {
	if lang != nil {
		p.mu.Lock()
		p.languages[name] = lang
		p.mu.Unlock()
	}
}

// grammarFor resolves a registered grammar, falling back to the dynamic
// loader. The loader runs outside the map lock; when two workers load the
// same grammar, the first stored one wins.
func (p *Parser) grammarFor(langName string) (*tree_sitter.Language, bool) {
	p.mu.RLock()
	lang, ok := p.languages[langName]
	p.mu.RUnlock()
	if ok || p.loader == nil {
		return lang, ok
	}

	loaded, err := p.loader.LoadGrammar(langName)
	if err != nil {
		return nil, false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if existing, ok := p.languages[langName]; ok {
		return existing, true
	}
	p.languages[langName] = loaded
	return loaded, true
}

// addExt maps file extensions to a language name.
func (p *Parser) addExt(lang string, exts ...string) {
	for _, ext := range exts {
		p.extToLang[ext] = lang
	}
}

// ExtractDefs parses a source file and returns its top-level definitions
// ordered by (line, kind, name). A language without a registered grammar
// yields ports.ErrUnsupportedLanguage; content the grammar cannot make sense
// of yields ports.ErrParse. Both are per-file conditions the caller is
// expected to skip over.
func (p *Parser) ExtractDefs(filePath string, source []byte) ([]ports.Def, error) {
	langName := p.DetectLanguage(filePath)
	if langName == "" {
		return nil, ports.ErrUnsupportedLanguage
	}

	lang, ok := p.grammarFor(langName)
	if !ok {
		return nil, ports.ErrUnsupportedLanguage
	}

	if len(source) == 0 {
		return nil, nil
	}

	parser := tree_sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(lang); err != nil {
		return nil, err
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, ports.ErrParse
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, ports.ErrParse
	}

	defs := classify(root, source, langName)
	sort.Slice(defs, func(i, j int) bool {
		if defs[i].Line != defs[j].Line {
			return defs[i].Line < defs[j].Line
		}
		if defs[i].Kind != defs[j].Kind {
			return defs[i].Kind < defs[j].Kind
		}
		return defs[i].Name < defs[j].Name
	})
	return defs, nil
}

// SupportsExtension returns true if the parser recognizes this file extension.
func (p *Parser) SupportsExtension(ext string) bool {
	_, ok := p.extToLang[strings.ToLower(ext)]
	return ok
}

// DetectLanguage determines the language from the file path, or "" when the
// extension is not recognized.
func (p *Parser) DetectLanguage(filePath string) string {
	ext := strings.ToLower(filepath.Ext(filePath))
	return p.extToLang[ext]
}

// Languages returns the names of all registered grammars, sorted.
func (p *Parser) Languages() []string {
	p.mu.RLock()
	names := make([]string, 0, len(p.languages))
	for name := range p.languages {
		names = append(names, name)
	}
	p.mu.RUnlock()
	sort.Strings(names)
	return names
}

// ExtensionsFor returns the file extensions mapped to a language, sorted.
func (p *Parser) ExtensionsFor(lang string) []string {
	var exts []string
	for ext, name := range p.extToLang {
		if name == lang {
			exts = append(exts, ext)
		}
	}
	sort.Strings(exts)
	return exts
}

// SetGrammarPaths configures the parser to load grammars dynamically from
// shared libraries found in the given directories. Project-local paths
// should come first, global paths last.
func (p *Parser) SetGrammarPaths(paths []string) {
	p.loader = NewDynamicLoader(paths)
}

// LanguageCount returns the number of languages with registered grammars.
func (p *Parser) LanguageCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.languages)
}
