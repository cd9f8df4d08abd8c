// Package cache persists scan state under <root>/.octconnect: the script
// property parse DB and the last catalog snapshot.
package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/fxamacker/cbor/v2"
	"github.com/octave-engine/octconnect/internal/types"
)

// Dir is the per-project state directory, relative to the root.
const Dir = ".octconnect"

const propsFile = "props.cbor"

// DB maps a script content hash to the properties parsed from that content.
// Entries never need invalidation: changed content hashes to a new key.
type DB struct {
	Entries map[string][]types.ScriptPropertyDef `cbor:"entries"`
}

// ContentHash fingerprints script bytes as 16 hex characters.
func ContentHash(b []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(b))
}

func dbPath(root string) string {
	return filepath.Join(root, Dir, propsFile)
}

// NewDB returns an empty DB.
func NewDB() *DB {
	return &DB{Entries: map[string][]types.ScriptPropertyDef{}}
}

// Load reads the DB for root. On any error an empty, usable DB is returned
// together with the error.
func Load(root string) (*DB, error) {
	b, err := os.ReadFile(dbPath(root))
	if err != nil {
		return NewDB(), err
	}
	db := NewDB()
	if err := cbor.Unmarshal(b, db); err != nil {
		return NewDB(), fmt.Errorf("decode %s: %w", dbPath(root), err)
	}
	if db.Entries == nil {
		db.Entries = map[string][]types.ScriptPropertyDef{}
	}
	return db, nil
}

// Save writes db for root, creating the state directory when needed.
func Save(root string, db *DB) error {
	if db == nil || db.Entries == nil {
		return errors.New("empty cache")
	}
	b, err := cbor.Marshal(db)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(root, Dir), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dbPath(root), b, 0o644)
}

// Get returns the defs cached for hash.
func (db *DB) Get(hash string) ([]types.ScriptPropertyDef, bool) {
	defs, ok := db.Entries[hash]
	return defs, ok
}

// Put records defs for hash.
func (db *DB) Put(hash string, defs []types.ScriptPropertyDef) {
	if db.Entries == nil {
		db.Entries = map[string][]types.ScriptPropertyDef{}
	}
	db.Entries[hash] = defs
}

// Retain drops every entry whose hash is not in keep and returns how many
// were removed.
func (db *DB) Retain(keep map[string]bool) int {
	n := 0
	for h := range db.Entries {
		if !keep[h] {
			delete(db.Entries, h)
			n++
		}
	}
	return n
}
