package defs

import "fmt"

// ConflictError reports two generation steps targeting the same domain name
// without an explicit accumulation request. Always fatal: silently
// overwriting (or summing) would double-count when a step is re-run.
type ConflictError struct {
	Domain string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("domain %q already present (pass accumulate to union)", e.Domain)
}

// Aggregate builds a Domain from per-file extraction results, computing its
// single/multi counts. The records map is copied; callers keep ownership of
// their input.
func Aggregate(records map[string]FileRecord) *Domain {
	d := &Domain{Files: make(map[string]FileRecord, len(records))}
	for path, rec := range records {
		d.Files[path] = rec
	}
	d.Single, d.Multi = countFiles(d.Files)
	return d
}

// Merge inserts a freshly aggregated domain into a document. If the name is
// unused the domain is inserted as-is. If the name exists, Merge fails with
// a ConflictError unless accumulate is set, in which case the file maps are
// unioned with last-write-wins on duplicate paths. Counts are recomputed on
// every merge; stored counts are never trusted.
func Merge(doc *Document, name string, dom *Domain, accumulate bool) error {
	existing, present := doc.Domains[name]
	switch {
	case !present:
		doc.Domains[name] = dom
	case !accumulate:
		return &ConflictError{Domain: name}
	default:
		for path, rec := range dom.Files {
			existing.Files[path] = rec
		}
	}
	Recompute(doc)
	return nil
}

// Recompute rebuilds every domain's single/multi counts from its file detail
// and the document totals from the domain counts. This is the invariant the
// schema validator later checks.
func Recompute(doc *Document) {
	doc.Single, doc.Multi = 0, 0
	for _, dom := range doc.Domains {
		dom.Single, dom.Multi = countFiles(dom.Files)
		doc.Single += dom.Single
		doc.Multi += dom.Multi
	}
}

// ZeroDefCount returns the number of files in a domain with no definitions
// at all (pure re-export shims and the like). Diagnostic only.
func ZeroDefCount(dom *Domain) int {
	n := 0
	for _, rec := range dom.Files {
		if len(rec.Defs) == 0 {
			n++
		}
	}
	return n
}

func countFiles(files map[string]FileRecord) (single, multi int) {
	for _, rec := range files {
		switch n := len(rec.Defs); {
		case n == 1:
			single++
		case n > 1:
			multi++
		}
	}
	return single, multi
}
