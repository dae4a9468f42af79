package treesitter

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cursorcult/uno/internal/ports"
)

// =============================================================================
// Top-level classification — nested and local definitions never count
// =============================================================================

func TestExtractDefs_Python(t *testing.T) {
	p := NewParser()

	source := []byte(`class AuthHandler:
    def login(self, user, password):
        return True

def standalone(x):
    def inner():
        pass
    return inner

@decorator
def decorated(y):
    return y
`)

	defs, err := p.ExtractDefs("auth.py", source)
	require.NoError(t, err)
	require.Len(t, defs, 3, "methods and local functions are not top-level")

	assert.Equal(t, ports.Def{Kind: ports.KindClass, Name: "AuthHandler", Line: 1}, defs[0])
	assert.Equal(t, ports.Def{Kind: ports.KindFunction, Name: "standalone", Line: 5}, defs[1])
	assert.Equal(t, ports.Def{Kind: ports.KindFunction, Name: "decorated", Line: 10}, defs[2])
	assert.Equal(t, "decorated", defs[2].Name, "declared identifier, not the decorator result")
}

func TestExtractDefs_Go(t *testing.T) {
	p := NewParser()

	source := []byte(`package main

func hello(name string) string {
	inner := func() {}
	_ = inner
	return "hello " + name
}

type Server struct {
	port int
}

func (s *Server) Start() error {
	return nil
}

type alias = Server
`)

	defs, err := p.ExtractDefs("main.go", source)
	require.NoError(t, err)
	require.Len(t, defs, 3)

	assert.Equal(t, ports.Def{Kind: ports.KindFunction, Name: "hello", Line: 3}, defs[0])
	assert.Equal(t, ports.Def{Kind: ports.KindClass, Name: "Server", Line: 9}, defs[1])
	assert.Equal(t, ports.Def{Kind: ports.KindFunction, Name: "Start", Line: 13}, defs[2])
}

func TestExtractDefs_JavaScript(t *testing.T) {
	p := NewParser()

	source := []byte(`export function visible(a) {
  return a;
}

const handler = (req) => req.body;

class Widget {
  render() {}
}

let plain = 42;
`)

	defs, err := p.ExtractDefs("widget.js", source)
	require.NoError(t, err)
	require.Len(t, defs, 3, "methods and non-function bindings excluded")

	assert.Equal(t, ports.Def{Kind: ports.KindFunction, Name: "visible", Line: 1}, defs[0])
	assert.Equal(t, ports.Def{Kind: ports.KindFunction, Name: "handler", Line: 5}, defs[1])
	assert.Equal(t, ports.Def{Kind: ports.KindClass, Name: "Widget", Line: 7}, defs[2])
}

func TestExtractDefs_Ruby(t *testing.T) {
	p := NewParser()

	source := []byte(`class User
  def save
  end
end

def helper
end
`)

	defs, err := p.ExtractDefs("user.rb", source)
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, ports.Def{Kind: ports.KindClass, Name: "User", Line: 1}, defs[0])
	assert.Equal(t, ports.Def{Kind: ports.KindFunction, Name: "helper", Line: 6}, defs[1])
}

func TestExtractDefs_OrderedByLine(t *testing.T) {
	p := NewParser()

	source := []byte(`def b():
    pass

def a():
    pass
`)
	defs, err := p.ExtractDefs("mod.py", source)
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, []int{1, 4}, []int{defs[0].Line, defs[1].Line})
	assert.Equal(t, "b", defs[0].Name, "source order, not name order")
}

// =============================================================================
// Error taxonomy — unsupported vs unparseable
// =============================================================================

func TestExtractDefs_UnsupportedLanguage(t *testing.T) {
	p := NewParser()
	_, err := p.ExtractDefs("README.nope", []byte("hello"))
	assert.ErrorIs(t, err, ports.ErrUnsupportedLanguage)
}

func TestExtractDefs_ParseError(t *testing.T) {
	p := NewParser()
	_, err := p.ExtractDefs("broken.go", []byte("package \x00 func {{{"))
	assert.ErrorIs(t, err, ports.ErrParse)
}

func TestExtractDefs_EmptyFileHasNoDefs(t *testing.T) {
	p := NewParser()
	defs, err := p.ExtractDefs("empty.py", nil)
	require.NoError(t, err)
	assert.Empty(t, defs)
}

// =============================================================================
// Concurrent use — ExtractDefs runs from a worker pool
// =============================================================================

func TestExtractDefs_ConcurrentMixedLanguages(t *testing.T) {
	p := NewParser()
	p.SetGrammarPaths([]string{t.TempDir()})

	sources := map[string][]byte{
		"user.py":   []byte("class User:\n    pass\n"),
		"server.go": []byte("package main\n\nfunc serve() {}\n"),
		"app.js":    []byte("function render() {}\n"),
		"tool.rb":   []byte("def run\nend\n"),
		"legacy.c":  []byte("int main(void) { return 0; }\n"), // loader miss under all workers
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path, source := range sources {
				defs, err := p.ExtractDefs(path, source)
				if path == "legacy.c" {
					assert.ErrorIs(t, err, ports.ErrUnsupportedLanguage)
					continue
				}
				assert.NoError(t, err)
				assert.Len(t, defs, 1)
			}
		}()
	}
	wg.Wait()
}

// =============================================================================
// Registry surface
// =============================================================================

func TestParser_Registry(t *testing.T) {
	p := NewParser()

	assert.True(t, p.SupportsExtension(".py"))
	assert.True(t, p.SupportsExtension(".PY"), "extension match is case-insensitive")
	assert.False(t, p.SupportsExtension(".xyz"))

	assert.Equal(t, "python", p.DetectLanguage("pkg/models/user.py"))
	assert.Equal(t, "", p.DetectLanguage("Makefile"))

	assert.GreaterOrEqual(t, p.LanguageCount(), 13)
	assert.Contains(t, p.Languages(), "go")
	assert.Equal(t, []string{".py", ".pyw"}, p.ExtensionsFor("python"))
}
