package treesitter

// This file registers the built-in grammars and their file extensions.
// Each grammar is a Go module pulled via `go get` — the C source compiles
// into the binary via CGo.
//
// To add a new language:
// 1. go get the binding module
// 2. Add import + Language() call in registerBuiltinLanguages()
// 3. Add extension mappings in registerExtensions()
// 4. Add classification rules in classify.go (defRules or a dedicated func)

import (
	"unsafe"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	ts_kotlin "github.com/tree-sitter-grammars/tree-sitter-kotlin/bindings/go"
	ts_lua "github.com/tree-sitter-grammars/tree-sitter-lua/bindings/go"
	ts_bash "github.com/tree-sitter/tree-sitter-bash/bindings/go"
	ts_csharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"
	ts_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	ts_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_php "github.com/tree-sitter/tree-sitter-php/bindings/go"
	ts_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	ts_ruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"
	ts_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// langPtr wraps a Language() call that returns unsafe.Pointer.
func langPtr(p unsafe.Pointer) *tree_sitter.Language {
	return tree_sitter.NewLanguage(p)
}

// registerBuiltinLanguages adds all compiled-in grammars to the parser.
func (p *Parser) registerBuiltinLanguages() {
	p.addLang("python", langPtr(ts_python.Language()))
	p.addLang("javascript", langPtr(ts_javascript.Language()))
	p.addLang("typescript", langPtr(ts_typescript.LanguageTypescript()))
	p.addLang("tsx", langPtr(ts_typescript.LanguageTSX()))
	p.addLang("go", langPtr(ts_go.Language()))
	p.addLang("rust", langPtr(ts_rust.Language()))
	p.addLang("java", langPtr(ts_java.Language()))
	p.addLang("c_sharp", langPtr(ts_csharp.Language()))
	p.addLang("ruby", langPtr(ts_ruby.Language()))
	p.addLang("php", langPtr(ts_php.LanguagePHP()))
	p.addLang("kotlin", langPtr(ts_kotlin.Language()))
	p.addLang("lua", langPtr(ts_lua.Language()))
	p.addLang("bash", langPtr(ts_bash.Language()))
}

// registerExtensions maps file extensions to language names. Extensions may
// map to languages without a compiled-in grammar; those resolve through the
// dynamic loader when one is configured, and are otherwise reported as
// unsupported.
func (p *Parser) registerExtensions() {
	p.addExt("python", ".py", ".pyw")
	p.addExt("javascript", ".js", ".jsx", ".mjs", ".cjs")
	p.addExt("typescript", ".ts", ".mts")
	p.addExt("tsx", ".tsx")
	p.addExt("go", ".go")
	p.addExt("rust", ".rs")
	p.addExt("java", ".java")
	p.addExt("c_sharp", ".cs")
	p.addExt("ruby", ".rb")
	p.addExt("php", ".php")
	p.addExt("kotlin", ".kt", ".kts")
	p.addExt("lua", ".lua")
	p.addExt("bash", ".sh", ".bash")

	// Dynamic-loader only: no compiled-in grammar.
	p.addExt("c", ".c", ".h")
	p.addExt("cpp", ".cpp", ".hpp", ".cc", ".cxx")
	p.addExt("scala", ".scala")
	p.addExt("swift", ".swift")
	p.addExt("elixir", ".ex", ".exs")
}
