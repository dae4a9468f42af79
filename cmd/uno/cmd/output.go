package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/cursorcult/uno/internal/app"
	"github.com/cursorcult/uno/internal/domain/defs"
	"github.com/cursorcult/uno/internal/domain/rule"
)

// formatGenerateResult renders the post-generate summary. Skipped files are
// counted apart from analyzed ones; a skipped file is not a violation.
//
//	⚡ core: 42 files → 🏝️ 39 📚 3 → .uno/defs.json
func formatGenerateResult(res *app.GenerateResult, output string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("⚡ %s: %d files → 🏝️ %d 📚 %d", res.Domain, res.Files, res.Single, res.Multi))
	if res.Zero > 0 {
		sb.WriteString(fmt.Sprintf(" (%d with no definitions)", res.Zero))
	}
	sb.WriteString(fmt.Sprintf(" → %s\n", output))
	if n := len(res.SkippedParse) + len(res.SkippedLanguage); n > 0 {
		sb.WriteString(fmt.Sprintf("⚡ %d files skipped (not analyzed)\n", n))
	}
	return sb.String()
}

// formatReport renders one line per evaluated domain followed by its
// violating files with their definitions.
//
//	check : core : 🏝️ 39 📚 0
//	x : tests : 🏝️ 11 📚 2
//	  tests/helpers.py : [{"kind":"function",...}] : multiple definitions found
func formatReport(doc *defs.Document, rep *rule.Report) string {
	names := make([]string, 0, len(rep.PerDomain))
	for name := range rep.PerDomain {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		tally := rep.PerDomain[name]
		marker := "check"
		if tally.Fail > 0 {
			marker = "x"
		}
		sb.WriteString(fmt.Sprintf("%s : %s : 🏝️ %d 📚 %d\n", marker, name, tally.Pass, tally.Fail))

		for _, path := range failingIn(doc.Domains[name], rep) {
			rec := doc.Domains[name].Files[path]
			sb.WriteString(fmt.Sprintf("  %s : %s : %s\n",
				path, defsJSON(rec.Defs), strings.Join(rep.PerFile[path].Reasons, ", ")))
		}
	}
	return sb.String()
}

// failingIn returns the failing paths of one domain, sorted.
func failingIn(dom *defs.Domain, rep *rule.Report) []string {
	if dom == nil {
		return nil
	}
	var paths []string
	for path := range dom.Files {
		if v, ok := rep.PerFile[path]; ok && !v.Pass {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths
}

func defsJSON(ds []defs.Definition) string {
	if len(ds) == 0 {
		return "[]"
	}
	blob, err := json.Marshal(ds)
	if err != nil {
		return "[]"
	}
	return string(blob)
}
