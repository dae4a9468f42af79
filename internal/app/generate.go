// Package app orchestrates the pipeline: glob expansion, parallel
// extraction, domain aggregation, and the merged, atomically written output
// document. The domain packages stay pure; everything that touches the
// filesystem or a clock lives here.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/cursorcult/uno/internal/domain/defs"
	"github.com/cursorcult/uno/internal/ports"
)

// GenerateOptions describes one generation invocation: which files, into
// which domain, into which output document.
type GenerateOptions struct {
	Globs      []string
	Domain     string
	Output     string
	Accumulate bool  // union into an existing domain instead of conflicting
	Tests      *bool // force the test flag; nil applies IsTestPath per file
	Workers    int   // 0 means GOMAXPROCS
}

// GenerateResult summarizes one generation invocation. Skipped files are
// reported apart from the conformance counts: "could not analyze" is never
// merged with "analyzed".
type GenerateResult struct {
	Domain          string
	Files           int
	Single          int
	Multi           int
	Zero            int
	SkippedParse    []string
	SkippedLanguage []string
}

// Generator runs generation invocations against a parser and an optional
// extraction cache.
type Generator struct {
	Parser ports.Parser
	Cache  ports.DefsCache // may be nil
}

// Generate expands the glob patterns, extracts definitions from every
// matched file, aggregates them into the named domain, merges the domain
// into the output document, and atomically rewrites it.
//
// Per-file parse failures and unsupported languages are skipped and
// reported in the result; everything structural (read failures, domain
// conflicts, an unreadable existing output) aborts the batch.
func (g *Generator) Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	if opts.Domain == "" {
		return nil, fmt.Errorf("generate: domain name is required")
	}
	paths, err := expandGlobs(opts.Globs)
	if err != nil {
		return nil, err
	}

	doc, err := LoadOrNew(opts.Output)
	if err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	result := &GenerateResult{Domain: opts.Domain}
	records := make(map[string]defs.FileRecord, len(paths))
	var mu sync.Mutex // single writer over records and skip lists

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for _, path := range paths {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			extracted, err := g.extractFile(path)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case errors.Is(err, ports.ErrParse):
				result.SkippedParse = append(result.SkippedParse, path)
				return nil
			case errors.Is(err, ports.ErrUnsupportedLanguage):
				result.SkippedLanguage = append(result.SkippedLanguage, path)
				return nil
			case err != nil:
				return err
			}
			records[path] = defs.FileRecord{
				Defs: toDefinitions(extracted),
				Test: isTest(path, opts.Tests),
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	dom := defs.Aggregate(records)
	if err := defs.Merge(doc, opts.Domain, dom, opts.Accumulate); err != nil {
		return nil, err
	}
	if err := WriteDocument(opts.Output, doc); err != nil {
		return nil, err
	}

	merged := doc.Domains[opts.Domain]
	result.Files = len(records)
	result.Single = merged.Single
	result.Multi = merged.Multi
	result.Zero = defs.ZeroDefCount(merged)
	sort.Strings(result.SkippedParse)
	sort.Strings(result.SkippedLanguage)
	return result, nil
}

// extractFile reads and parses one file, consulting the cache first. Cache
// failures degrade to a re-parse; file read failures propagate.
func (g *Generator) extractFile(path string) ([]ports.Def, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	size, mtime := info.Size(), info.ModTime().UnixNano()

	if g.Cache != nil {
		if cached, ok, err := g.Cache.Lookup(path, size, mtime); err == nil && ok {
			return cached, nil
		}
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	extracted, err := g.Parser.ExtractDefs(path, source)
	if err != nil {
		return nil, err
	}

	if g.Cache != nil {
		if err := g.Cache.Store(path, size, mtime, extracted); err != nil {
			return nil, fmt.Errorf("cache %s: %w", path, err)
		}
	}
	return extracted, nil
}

// expandGlobs resolves the patterns to a sorted, deduplicated file list.
func expandGlobs(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("generate: at least one glob pattern is required")
	}
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			seen[m] = true
		}
	}
	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}

// toDefinitions always returns a non-nil slice: a zero-def file serializes
// as "defs": [], never null.
func toDefinitions(ds []ports.Def) []defs.Definition {
	out := make([]defs.Definition, len(ds))
	for i, d := range ds {
		out[i] = defs.Definition{Kind: d.Kind, Name: d.Name, Line: d.Line}
	}
	return out
}

func isTest(path string, force *bool) bool {
	if force != nil {
		return *force
	}
	return IsTestPath(path)
}
