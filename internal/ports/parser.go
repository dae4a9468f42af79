package ports

import "errors"

// Definition kinds produced by language adapters.
const (
	KindFunction = "function"
	KindClass    = "class"
)

// Def is a single top-level definition extracted from a source file.
// Line is 1-based.
type Def struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
	Line int    `json:"lineno"`
}

// ErrUnsupportedLanguage is returned when no grammar is registered for a
// file's language. Callers are expected to skip the file and continue.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// ErrParse is returned when a file's content cannot be parsed under its
// language's grammar. Same skip-and-continue policy as ErrUnsupportedLanguage.
var ErrParse = errors.New("parse error")

// Parser extracts top-level definitions (classes and functions) from source
// files. The concrete implementation (tree-sitter) lives in
// internal/adapters/treesitter. Nested and local definitions are excluded:
// only definitions whose enclosing scope is the file's top level count.
type Parser interface {
	// ExtractDefs extracts top-level definitions from a source file, ordered
	// by ascending line. Returns ErrUnsupportedLanguage when the file's
	// language has no registered grammar, and ErrParse when the content does
	// not parse under the grammar. Both are per-file, recoverable conditions.
	ExtractDefs(path string, source []byte) ([]Def, error)

	// SupportsExtension returns true if the parser can handle files with this
	// extension (e.g., ".go", ".py"). Extension includes the leading dot.
	SupportsExtension(ext string) bool

	// DetectLanguage returns the language name for a file path, or "" when
	// the extension is not recognized.
	DetectLanguage(path string) string
}
