// Package octhash mirrors the engine's string hash and maps asset type ids
// back to their type names.
package octhash

import "sort"

// Unknown is the type name reported for ids missing from the table.
const Unknown = "Unknown"

// KnownTypes lists the asset type names the engine writes into headers.
var KnownTypes = []string{
	"Font",
	"Material",
	"MaterialBase",
	"MaterialLite",
	"MaterialInstance",
	"ParticleSystem",
	"ParticleSystemInstance",
	"Scene",
	"SkeletalMesh",
	"SoundWave",
	"StaticMesh",
	"Texture",
}

// String hashes key one code point at a time. All arithmetic is on uint32,
// so every shift wraps exactly as the engine's implementation does.
func String(key string) uint32 {
	var h uint32
	for _, c := range key {
		top := h & 0xF8000000
		h = (h << 5) ^ ((top >> 27) & 0x1F) ^ uint32(c)
	}
	return h
}

// Ambiguity records known type names that share one hash.
type Ambiguity struct {
	ID    uint32
	Names []string
}

// Table resolves type ids to names.
type Table struct {
	names       map[uint32]string
	ambiguities []Ambiguity
}

// NewTable hashes names once. When two names collide the first one keeps
// the slot and the collision is recorded rather than resolved.
func NewTable(names []string) *Table {
	t := &Table{names: make(map[uint32]string, len(names))}
	clash := map[uint32][]string{}
	for _, n := range names {
		id := String(n)
		if prev, ok := t.names[id]; ok {
			if prev == n {
				continue
			}
			if _, seen := clash[id]; !seen {
				clash[id] = []string{prev}
			}
			clash[id] = append(clash[id], n)
			continue
		}
		t.names[id] = n
	}
	for id, ns := range clash {
		t.ambiguities = append(t.ambiguities, Ambiguity{ID: id, Names: ns})
	}
	sort.Slice(t.ambiguities, func(i, j int) bool { return t.ambiguities[i].ID < t.ambiguities[j].ID })
	return t
}

// Name returns the type name for id, or Unknown.
func (t *Table) Name(id uint32) string {
	if n, ok := t.names[id]; ok {
		return n
	}
	return Unknown
}

// Lookup is Name with an explicit found flag.
func (t *Table) Lookup(id uint32) (string, bool) {
	n, ok := t.names[id]
	return n, ok
}

// Ambiguities lists hash collisions between distinct names in the table.
func (t *Table) Ambiguities() []Ambiguity {
	return append([]Ambiguity(nil), t.ambiguities...)
}

var defaultTable = NewTable(KnownTypes)

// Default is the table built from KnownTypes at startup.
func Default() *Table { return defaultTable }

// TypeName resolves id through the default table.
func TypeName(id uint32) string { return defaultTable.Name(id) }
