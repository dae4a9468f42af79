// Package ports defines the interfaces (contracts) that adapters must implement.
// These are the boundaries of the hexagonal architecture. Domain logic depends
// only on these interfaces, never on concrete implementations.
package ports

// DefsCache stores extraction results keyed by file path so that unchanged
// files are not re-parsed on the next run. The backing store (bbolt) lives in
// internal/adapters/bbolt. A cached entry is valid only while the file's size
// and mtime fingerprint match; a stale entry behaves like a miss.
//
// Crash safety: Store must be transactional. A crash mid-write must not
// corrupt previously committed entries.
type DefsCache interface {
	// Lookup returns the cached definitions for a file, or ok=false when
	// there is no entry or the fingerprint does not match.
	Lookup(path string, size int64, mtimeNS int64) (defs []Def, ok bool, err error)

	// Store records the definitions for a file under its current fingerprint,
	// overwriting any prior entry for the path.
	Store(path string, size int64, mtimeNS int64, defs []Def) error

	// Close releases the underlying store.
	Close() error
}
