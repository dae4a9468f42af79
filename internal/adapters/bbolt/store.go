// Package bbolt implements the ports.DefsCache interface using bbolt
// (embedded B+ tree). Entries are JSON-serialized per file path and carry a
// size+mtime fingerprint; a mismatching fingerprint behaves like a miss.
// Writes are transactional — a crash mid-write cannot corrupt previously
// committed entries.
package bbolt

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/cursorcult/uno/internal/ports"
)

var bucketDefs = []byte("defs")

// entry is the serialized cache record for one file.
type entry struct {
	Size    int64       `json:"size"`
	MtimeNS int64       `json:"mtime_ns"`
	Defs    []ports.Def `json:"defs"`
}

// Store implements ports.DefsCache backed by bbolt.
type Store struct {
	db *bolt.DB
}

// NewStore opens (or creates) a bbolt database at the given path.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Lookup returns the cached definitions for a file when the stored
// fingerprint matches the given size and mtime.
func (s *Store) Lookup(path string, size int64, mtimeNS int64) ([]ports.Def, bool, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketDefs)
		if b == nil {
			return nil
		}
		// Copy bytes out of the transaction (bbolt slices are only valid within tx)
		if v := b.Get([]byte(path)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if data == nil {
		return nil, false, nil
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, false, fmt.Errorf("unmarshal cache entry %q: %w", path, err)
	}
	if e.Size != size || e.MtimeNS != mtimeNS {
		return nil, false, nil // stale
	}
	return e.Defs, true, nil
}

// Store records the definitions for a file under its current fingerprint,
// overwriting any prior entry for the path.
func (s *Store) Store(path string, size int64, mtimeNS int64, defs []ports.Def) error {
	data, err := json.Marshal(entry{Size: size, MtimeNS: mtimeNS, Defs: defs})
	if err != nil {
		return fmt.Errorf("marshal cache entry %q: %w", path, err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketDefs)
		if err != nil {
			return err
		}
		return b.Put([]byte(path), data)
	})
}

// Wipe removes every cached entry. Idempotent.
func (s *Store) Wipe() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketDefs); err == bolt.ErrBucketNotFound {
			return nil
		} else {
			return err
		}
	})
}
