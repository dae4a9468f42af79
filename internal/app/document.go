package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cursorcult/uno/internal/domain/defs"
	"github.com/cursorcult/uno/internal/domain/schema"
)

// LoadOrNew reads the defs document at path, returning a fresh empty
// document when the file does not exist. An existing document must carry
// the current schema literal; anything else is rejected rather than
// silently replaced.
func LoadOrNew(path string) (*defs.Document, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return defs.NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	doc, err := schema.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("existing output %s: %w", path, err)
	}
	if doc.Schema != defs.Schema {
		return nil, fmt.Errorf("existing output %s: schema must be %q", path, defs.Schema)
	}
	if doc.Domains == nil {
		doc.Domains = make(map[string]*defs.Domain)
	}
	return doc, nil
}

// WriteDocument serializes a document and atomically replaces the file at
// path: the JSON is written to a temp file in the same directory and
// renamed into place, so a reader can never observe a half-written
// document and a failed run leaves the previous output untouched.
func WriteDocument(path string, doc *defs.Document) error {
	// defs is a list in the serialized schema; a zero-def file is [], not null.
	for _, dom := range doc.Domains {
		for p, rec := range dom.Files {
			if rec.Defs == nil {
				rec.Defs = []defs.Definition{}
				dom.Files[p] = rec
			}
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".defs-*.json")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s -> %s: %w", tmpName, path, err)
	}
	return nil
}
