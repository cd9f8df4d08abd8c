package session

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/octave-engine/octconnect/internal/cache"
	"github.com/octave-engine/octconnect/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const speedScript = `Mover = {}

function Mover:GatherProperties()
    return {
        { name = "speed", type = DatumType.Float },
    }
end

function Mover:Create()
    self.speed = 2.5
end
`

type countingStore struct {
	*cache.DB
	gets, puts int
}

func (c *countingStore) Get(h string) ([]types.ScriptPropertyDef, bool) {
	c.gets++
	return c.DB.Get(h)
}

func (c *countingStore) Put(h string, defs []types.ScriptPropertyDef) {
	c.puts++
	c.DB.Put(h, defs)
}

func project(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Scripts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Scripts", "Mover.lua"), []byte(speedScript), 0o644))
	return dir
}

func TestProperties_CachesWithinSession(t *testing.T) {
	dir := project(t)
	store := &countingStore{DB: cache.NewDB()}
	s := New(dir, WithStore(store))

	defs := s.Properties("Scripts/Mover.lua")
	require.Len(t, defs, 1)
	assert.Equal(t, "speed", defs[0].Name)
	assert.Equal(t, 2.5, defs[0].Default.Float)
	assert.Equal(t, 1, store.puts)

	again := s.Properties(filepath.Join(dir, "Scripts", "Mover.lua"))
	assert.Equal(t, defs, again)
	assert.Equal(t, 1, store.gets, "second call is served from the session map")
	assert.Equal(t, 1, s.Cached())
}

func TestProperties_ContentChangeReparses(t *testing.T) {
	dir := project(t)
	s := New(dir)
	require.Len(t, s.Properties("Scripts/Mover.lua"), 1)

	changed := speedScript[:len(speedScript)-len("end\n")] + "    self.speed = 9\nend\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Scripts", "Mover.lua"), []byte(changed), 0o644))
	defs := s.Properties("Scripts/Mover.lua")
	require.Len(t, defs, 1)
	assert.Equal(t, 9.0, defs[0].Default.Float)
}

func TestProperties_Missing(t *testing.T) {
	s := New(t.TempDir())
	assert.Nil(t, s.Properties("Scripts/Nope.lua"))
	assert.Equal(t, 0, s.Cached())
}

func TestInvalidate(t *testing.T) {
	dir := project(t)
	store := &countingStore{DB: cache.NewDB()}
	s := New(dir, WithStore(store))
	s.Properties("Scripts/Mover.lua")

	s.Invalidate("Scripts/Mover.lua")
	assert.Equal(t, 0, s.Cached())
	s.Properties("Scripts/Mover.lua")
	assert.Equal(t, 2, store.gets)
	assert.Equal(t, 1, store.puts, "store hit after invalidate")

	s.InvalidateAll()
	assert.Equal(t, 0, s.Cached())
}

func TestSetRootRotatesID(t *testing.T) {
	dir := project(t)
	s := New(dir)
	id := s.ID()
	require.NotEmpty(t, id)
	s.Properties("Scripts/Mover.lua")

	s.SetRoot(dir)
	assert.NotEqual(t, id, s.ID())
	assert.Equal(t, 0, s.Cached())

	other := t.TempDir()
	s.SetRoot(other)
	assert.Equal(t, other, s.Root())
	assert.Nil(t, s.Properties("Scripts/Mover.lua"))
}

func TestRescan(t *testing.T) {
	dir := project(t)
	s := New(dir)
	s.Properties("Scripts/Mover.lua")
	id := s.ID()

	cat, err := s.Rescan(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Scripts/Mover.lua"}, cat.Scripts)
	assert.Equal(t, cat.Scripts, s.Catalog().Scripts)
	assert.NotEqual(t, id, s.ID())
	assert.Equal(t, 0, s.Cached())

	s.SetRoot(filepath.Join(dir, "missing"))
	_, err = s.Rescan(nil)
	assert.Error(t, err)
}

func TestConcurrentAccess(t *testing.T) {
	dir := project(t)
	s := New(dir)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%4 == 0 {
				s.InvalidateAll()
				return
			}
			s.Properties("Scripts/Mover.lua")
		}(i)
	}
	wg.Wait()
	assert.Len(t, s.Properties("Scripts/Mover.lua"), 1)
}
