// Package rule applies the UNO conformance rule to a validated defs
// document: every non-test file must declare exactly one top-level
// definition, optionally with a name matching the file's base name.
// Evaluation is a pure function of (document, options) — deterministic,
// no I/O.
package rule

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/cursorcult/uno/internal/domain/defs"
)

// Failure reasons. Zero definitions and multiple definitions are distinct
// conditions and are never collapsed.
const (
	ReasonNoDefinition       = "no definition found"
	ReasonMultipleDefinition = "multiple definitions found"
)

// Options controls evaluation. Naming enables the file/definition name
// consistency check; Loose makes that check ignore case and underscores.
// Domain, when non-empty, restricts evaluation to a single domain.
type Options struct {
	Loose  bool
	Naming bool
	Domain string
}

// Verdict is the per-file outcome. A failing verdict carries every reason
// that applies; count and naming failures are orthogonal.
type Verdict struct {
	Pass    bool
	Reasons []string
}

// Tally is the per-domain pass/fail file count.
type Tally struct {
	Pass int
	Fail int
}

// Report is the full evaluation result. Overall is the conjunction over
// domains, which are themselves conjunctions over their files.
type Report struct {
	PerFile   map[string]Verdict
	PerDomain map[string]Tally
	Overall   bool
}

// Evaluate applies the UNO rule to every file of the selected domains.
// Test files pass the definition-count rule regardless of count, and the
// naming rule does not apply to them. Callers must validate the document
// first; Evaluate only guards against the conditions that would make its
// answer meaningless.
func Evaluate(doc *defs.Document, opts Options) (*Report, error) {
	if doc == nil {
		return nil, fmt.Errorf("evaluate: document is nil")
	}
	if doc.Schema != defs.Schema {
		return nil, fmt.Errorf("evaluate: schema must be %q", defs.Schema)
	}

	selected := doc.Domains
	if opts.Domain != "" {
		dom, ok := doc.Domains[opts.Domain]
		if !ok {
			return nil, fmt.Errorf("evaluate: domain not found: %s", opts.Domain)
		}
		selected = map[string]*defs.Domain{opts.Domain: dom}
	}

	report := &Report{
		PerFile:   make(map[string]Verdict),
		PerDomain: make(map[string]Tally, len(selected)),
		Overall:   true,
	}

	for name, dom := range selected {
		tally := Tally{}
		for filePath, rec := range dom.Files {
			v := evaluateFile(filePath, rec, opts)
			report.PerFile[filePath] = v
			if v.Pass {
				tally.Pass++
			} else {
				tally.Fail++
			}
		}
		report.PerDomain[name] = tally
		if tally.Fail > 0 {
			report.Overall = false
		}
	}
	return report, nil
}

func evaluateFile(filePath string, rec defs.FileRecord, opts Options) Verdict {
	if rec.Test {
		return Verdict{Pass: true}
	}

	var reasons []string
	switch n := len(rec.Defs); {
	case n == 0:
		reasons = append(reasons, ReasonNoDefinition)
	case n > 1:
		reasons = append(reasons, ReasonMultipleDefinition)
	}

	if opts.Naming && len(rec.Defs) > 0 {
		base := baseName(filePath)
		if !anyNameMatches(base, rec.Defs, opts.Loose) {
			reasons = append(reasons, namingReason(base, rec.Defs, opts.Loose))
		}
	}

	return Verdict{Pass: len(reasons) == 0, Reasons: reasons}
}

// Failing returns the failing file paths of a report in sorted order.
func (r *Report) Failing() []string {
	var paths []string
	for p, v := range r.PerFile {
		if !v.Pass {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}

// namingReason lists every definition name the match was tried against, so
// a multi-def file's reason never points at an arbitrary one.
func namingReason(base string, ds []defs.Definition, loose bool) string {
	mode := "strict"
	if loose {
		mode = "loose"
	}
	names := make([]string, len(ds))
	for i, d := range ds {
		names[i] = fmt.Sprintf("%q", d.Name)
	}
	return fmt.Sprintf("name mismatch: file %q vs definitions %s (%s)", base, strings.Join(names, ", "), mode)
}

// baseName strips the directory and extension: "pkg/user_profile.py" ->
// "user_profile".
func baseName(filePath string) string {
	base := path.Base(strings.ReplaceAll(filePath, "\\", "/"))
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	return base
}

func anyNameMatches(base string, ds []defs.Definition, loose bool) bool {
	for _, d := range ds {
		if namesMatch(base, d.Name, loose) {
			return true
		}
	}
	return false
}

// namesMatch compares a file base name with a definition name. Strict mode
// is exact string equality; loose mode ignores case and underscores, so
// "user_profile" matches "UserProfile".
func namesMatch(base, name string, loose bool) bool {
	if !loose {
		return base == name
	}
	fold := func(s string) string {
		return strings.ToLower(strings.ReplaceAll(s, "_", ""))
	}
	return fold(base) == fold(name)
}
