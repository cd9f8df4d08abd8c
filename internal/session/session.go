// Package session holds per-project state for a host: the current root, the
// last catalog and a script property cache keyed by (session id, script path).
//
// The session id rotates whenever the root changes or a full rescan runs, so
// no cached parse ever survives a project switch. Within a session an entry
// is also revalidated against the script's content fingerprint.
package session

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/octave-engine/octconnect/internal/cache"
	"github.com/octave-engine/octconnect/internal/catalog"
	"github.com/octave-engine/octconnect/internal/luaprops"
	"github.com/octave-engine/octconnect/internal/types"
	"github.com/rs/zerolog/log"
)

// Store is a content-addressed parse store shared across sessions.
// *cache.DB implements it.
type Store interface {
	Get(hash string) ([]types.ScriptPropertyDef, bool)
	Put(hash string, defs []types.ScriptPropertyDef)
}

type key struct {
	session string
	path    string
}

type entry struct {
	hash string
	defs []types.ScriptPropertyDef
}

// Session is safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	id      string
	root    string
	exclude string
	cat     catalog.Catalog
	entries map[key]entry
	store   Store
}

type Option func(*Session)

// WithStore backs parses with a persistent store.
func WithStore(s Store) Option { return func(x *Session) { x.store = s } }

// WithExcludeGlobs sets the exclude globs used by Rescan.
func WithExcludeGlobs(globs string) Option { return func(x *Session) { x.exclude = globs } }

func New(root string, opts ...Option) *Session {
	s := &Session{root: root, id: uuid.NewString(), entries: map[key]entry{}}
	for _, o := range opts {
		o(s)
	}
	return s
}

// ID is the current session id.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

func (s *Session) Root() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.root
}

// Catalog returns the catalog from the last successful Rescan.
func (s *Session) Catalog() catalog.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cat
}

// SetRoot switches projects. The cache and catalog are dropped and a new
// session id is issued even when root is unchanged.
func (s *Session) SetRoot(root string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.root = root
	s.cat = catalog.Catalog{Root: root}
	s.rotate()
}

// Rescan rebuilds the catalog for the current root under a fresh session id.
// On error the previous catalog is kept but the cache is still cleared.
func (s *Session) Rescan(progress func(current, total int)) (catalog.Catalog, error) {
	s.mu.Lock()
	root, exclude := s.root, s.exclude
	s.rotate()
	s.mu.Unlock()

	cat, err := catalog.Build(catalog.Config{Root: root, ExcludeGlobs: exclude, Progress: progress})
	if err != nil {
		return cat, err
	}
	s.mu.Lock()
	if s.root == root {
		s.cat = cat
	}
	s.mu.Unlock()
	return cat, nil
}

// Properties returns the editable properties of the script at path, which
// may be absolute or relative to the root. Unreadable scripts yield nil.
func (s *Session) Properties(path string) []types.ScriptPropertyDef {
	s.mu.Lock()
	defer s.mu.Unlock()

	full := s.resolve(path)
	k := key{session: s.id, path: full}
	b, err := os.ReadFile(full)
	if err != nil {
		delete(s.entries, k)
		log.Debug().Err(err).Str("script", path).Msg("script unreadable")
		return nil
	}
	h := cache.ContentHash(b)
	if e, ok := s.entries[k]; ok && e.hash == h {
		return e.defs
	}

	defs, hit := s.lookupStore(h)
	if !hit {
		defs = luaprops.Extract(luaprops.DecodeSource(b))
		if s.store != nil {
			s.store.Put(h, defs)
		}
	}
	s.entries[k] = entry{hash: h, defs: defs}
	return defs
}

// Invalidate drops the cached parse for one script.
func (s *Session) Invalidate(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key{session: s.id, path: s.resolve(path)})
}

// InvalidateAll drops every cached parse without changing the session id.
func (s *Session) InvalidateAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = map[key]entry{}
}

// Cached reports how many parses the session currently holds.
func (s *Session) Cached() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Session) lookupStore(hash string) ([]types.ScriptPropertyDef, bool) {
	if s.store == nil {
		return nil, false
	}
	return s.store.Get(hash)
}

func (s *Session) rotate() {
	s.id = uuid.NewString()
	s.entries = map[key]entry{}
}

func (s *Session) resolve(path string) string {
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.root, filepath.FromSlash(path))
	}
	return filepath.Clean(path)
}
