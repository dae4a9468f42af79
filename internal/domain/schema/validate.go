// Package schema validates cursorcult.defs.v1 documents. Validation is pure
// and side-effect free: a document with stale counts is rejected, never
// silently repaired, because a "fixed" document would hide a bug in whatever
// produced it.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/cursorcult/uno/internal/domain/defs"
)

// Error describes a single failed schema invariant. Field is a dotted path
// into the document ("domains.core.single"), Reason the violated rule.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("schema: %s: %s", e.Field, e.Reason)
}

func errf(field, format string, args ...any) *Error {
	return &Error{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Decode parses raw JSON into a document, rejecting unknown keys. The
// decoded document is not yet validated; callers must run Validate before
// trusting it.
func Decode(data []byte) (*defs.Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var doc defs.Document
	if err := dec.Decode(&doc); err != nil {
		return nil, errf("$", "not a valid document: %v", err)
	}
	return &doc, nil
}

// Validate checks a document against the versioned schema, in order: the
// schema literal, the shape of every domain and definition, per-domain
// counts recomputed from file detail, and the top-level totals. The first
// violation is returned as an *Error; a valid document yields nil. The
// input is never mutated.
func Validate(doc *defs.Document) error {
	if doc == nil {
		return errf("$", "document is nil")
	}
	if doc.Schema != defs.Schema {
		return errf("schema", "must be %q, got %q", defs.Schema, doc.Schema)
	}
	if len(doc.Domains) == 0 {
		return errf("domains", "must be a non-empty mapping")
	}

	seen := make(map[string]string) // path -> owning domain
	totalSingle, totalMulti := 0, 0

	for _, name := range doc.DomainNames() {
		dom := doc.Domains[name]
		field := "domains." + name
		if dom == nil {
			return errf(field, "must be an object")
		}
		if dom.Files == nil {
			return errf(field+".files", "must be a mapping")
		}

		single, multi := 0, 0
		for path, rec := range dom.Files {
			if owner, dup := seen[path]; dup {
				return errf(field+".files", "path %q already present in domain %q", path, owner)
			}
			seen[path] = name
			if err := validateDefs(field+".files["+path+"]", rec.Defs); err != nil {
				return err
			}
			switch n := len(rec.Defs); {
			case n == 1:
				single++
			case n > 1:
				multi++
			}
		}

		if dom.Single != single {
			return errf(field+".single", "stored %d, recomputed %d", dom.Single, single)
		}
		if dom.Multi != multi {
			return errf(field+".multi", "stored %d, recomputed %d", dom.Multi, multi)
		}
		totalSingle += single
		totalMulti += multi
	}

	if doc.Single != totalSingle {
		return errf("single", "stored %d, sum over domains %d", doc.Single, totalSingle)
	}
	if doc.Multi != totalMulti {
		return errf("multi", "stored %d, sum over domains %d", doc.Multi, totalMulti)
	}
	return nil
}

func validateDefs(field string, ds []defs.Definition) error {
	if ds == nil {
		return errf(field+".defs", "must be a list")
	}
	lastLine := 0
	for i, d := range ds {
		item := fmt.Sprintf("%s.defs[%d]", field, i)
		if d.Kind != defs.KindFunction && d.Kind != defs.KindClass {
			return errf(item+".kind", "must be %q or %q, got %q", defs.KindClass, defs.KindFunction, d.Kind)
		}
		if d.Name == "" {
			return errf(item+".name", "must be a non-empty string")
		}
		if d.Line < 1 {
			return errf(item+".lineno", "must be >= 1, got %d", d.Line)
		}
		if d.Line < lastLine {
			return errf(item+".lineno", "defs must be ordered by ascending line")
		}
		lastLine = d.Line
	}
	return nil
}
