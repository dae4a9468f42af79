// Package defs holds the data model for the cursorcult.defs.v1 evidence
// document and the domain aggregation logic that builds it. Everything here
// is pure: no I/O, no globals.
package defs

import "sort"

// Schema is the version literal every valid document must carry.
const Schema = "cursorcult.defs.v1"

// Definition kinds. The serialized form uses lowercase strings.
const (
	KindFunction = "function"
	KindClass    = "class"
)

// Definition is one top-level class or function declaration in a source
// file. Immutable once extracted.
type Definition struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
	Line int    `json:"lineno"`
}

// FileRecord holds the ordered definitions of one file. Test marks files
// exempt from the single-definition rule; it is a policy decision supplied
// by whatever enumerated the file, never computed here.
type FileRecord struct {
	Defs []Definition `json:"defs"`
	Test bool         `json:"test,omitempty"`
}

// Domain groups the files evaluated together (e.g. "core" vs "tests").
// Single counts files with exactly one definition, Multi files with two or
// more. Files with zero definitions are counted in neither; they are a
// diagnostic, not a verdict.
type Domain struct {
	Files  map[string]FileRecord `json:"files"`
	Single int                   `json:"single"`
	Multi  int                   `json:"multi"`
}

// Document is the aggregate evidence for one run. Single and Multi are the
// sums of the per-domain counts.
type Document struct {
	Schema  string             `json:"schema"`
	Domains map[string]*Domain `json:"domains"`
	Single  int                `json:"single"`
	Multi   int                `json:"multi"`
}

// NewDocument returns an empty document carrying the current schema literal.
func NewDocument() *Document {
	return &Document{
		Schema:  Schema,
		Domains: make(map[string]*Domain),
	}
}

// SortDefs orders definitions by (line, kind, name). This is the canonical
// order of the serialized document.
func SortDefs(ds []Definition) {
	sort.Slice(ds, func(i, j int) bool {
		if ds[i].Line != ds[j].Line {
			return ds[i].Line < ds[j].Line
		}
		if ds[i].Kind != ds[j].Kind {
			return ds[i].Kind < ds[j].Kind
		}
		return ds[i].Name < ds[j].Name
	})
}

// DomainNames returns the document's domain names in sorted order.
func (d *Document) DomainNames() []string {
	names := make([]string, 0, len(d.Domains))
	for name := range d.Domains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
