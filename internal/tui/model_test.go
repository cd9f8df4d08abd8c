package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/octave-engine/octconnect/internal/catalog"
	"github.com/octave-engine/octconnect/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCatalog(root string) catalog.Catalog {
	return catalog.Catalog{
		Root: root,
		Assets: []types.AssetCatalogEntry{
			{Name: "SM_Cube", TypeName: "StaticMesh", UUID: 42, RelativePath: "Assets/SM_Cube.oct", EnginePath: "Assets/SM_Cube"},
			{Name: "T_Grass", TypeName: "Texture", UUID: 7, RelativePath: "Assets/T_Grass.oct", EnginePath: "Assets/T_Grass"},
			{Name: "SM_Rock", TypeName: "StaticMesh", UUID: 9, RelativePath: "Assets/Rocks/SM_Rock.oct", EnginePath: "Assets/Rocks/SM_Rock"},
		},
		Scripts: []string{"Scripts/Goblin.lua", "Scripts/Door.lua"},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	out, ok := updated.(Model)
	require.True(t, ok)
	return out, cmd
}

func newTestModel(t *testing.T) Model {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	m := NewModel(Options{Catalog: sampleCatalog(t.TempDir()), Prefs: Prefs{}})
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func TestApplyFilters_Query(t *testing.T) {
	m := newTestModel(t)
	assert.Len(t, m.assets, 3)

	m.query = "sm_"
	m.applyFilters()
	assert.Len(t, m.assets, 2)

	m.query = "texture"
	m.applyFilters()
	require.Len(t, m.assets, 1)
	assert.Equal(t, "T_Grass", m.assets[0].Name)

	m.query = "rocks/"
	m.applyFilters()
	assert.Len(t, m.assets, 1)

	m.query = "goblin"
	m.applyFilters()
	assert.Empty(t, m.assets)
	assert.Equal(t, []string{"Scripts/Goblin.lua"}, m.scripts)
}

func TestCycleTypeFilter(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(t, m, key("t"))
	assert.Equal(t, "StaticMesh", m.typeFilter)
	assert.Len(t, m.assets, 2)

	m, _ = send(t, m, key("t"))
	assert.Equal(t, "Texture", m.typeFilter)
	assert.Len(t, m.assets, 1)

	m, _ = send(t, m, key("t"))
	assert.Equal(t, "", m.typeFilter)
	assert.Len(t, m.assets, 3)

	m, _ = send(t, m, key("t"))
	m, _ = send(t, m, key("esc"))
	assert.Equal(t, "", m.typeFilter)
	assert.Equal(t, "Filters cleared", m.statusMessage)
}

func TestSearchMode(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(t, m, key("/"))
	require.True(t, m.searchMode)
	for _, r := range "rock" {
		m, _ = send(t, m, key(string(r)))
	}
	m, _ = send(t, m, key("enter"))
	assert.False(t, m.searchMode)
	assert.Equal(t, "rock", m.query)
	require.Len(t, m.assets, 1)
	assert.Equal(t, "SM_Rock", m.assets[0].Name)
	assert.Contains(t, m.statusMessage, "1 matching assets")
}

func TestToggleView(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, ViewAssets, m.view)
	m, _ = send(t, m, key("tab"))
	assert.Equal(t, ViewScripts, m.view)
	assert.Equal(t, "scripts", m.prefs.LastView)
	s, ok := m.selectedScript()
	require.True(t, ok)
	assert.Equal(t, "Scripts/Goblin.lua", s)
	_, ok = m.selectedAsset()
	assert.False(t, ok)
}

func TestNavigationUpdatesDetails(t *testing.T) {
	m := newTestModel(t)
	assert.Contains(t, m.viewport.View(), "SM_Cube")
	m, _ = send(t, m, key("down"))
	a, ok := m.selectedAsset()
	require.True(t, ok)
	assert.Equal(t, "T_Grass", a.Name)
	assert.Contains(t, m.viewport.View(), "Assets/T_Grass")
}

func TestCopySelection(t *testing.T) {
	m := newTestModel(t)
	var copied []string
	m.copyFunc = func(s string) error {
		copied = append(copied, s)
		return nil
	}

	m, cmd := send(t, m, key("y"))
	require.NotNil(t, cmd)
	m, _ = send(t, m, cmd())
	assert.Equal(t, "Copied uuid: 42", m.statusMessage)

	m, cmd = send(t, m, key("Y"))
	require.NotNil(t, cmd)
	m, _ = send(t, m, cmd())
	assert.Equal(t, []string{"42", "Assets/SM_Cube"}, copied)

	m.copyFunc = func(string) error { return errors.New("no display") }
	_, cmd = send(t, m, key("y"))
	assert.Equal(t, statusMsg("Clipboard error: no display"), cmd())
}

func TestRescan(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(t, m, key("r"))
	assert.Equal(t, "Rescan not available", m.statusMessage)

	next := sampleCatalog(m.cat.Root)
	next.Assets = next.Assets[:1]
	msg := rescan(func() (catalog.Catalog, error) { return next, nil })()
	m, _ = send(t, m, msg)
	assert.False(t, m.scanning)
	assert.Len(t, m.assets, 1)
	assert.Equal(t, "Rescanned: 1 assets, 2 scripts", m.statusMessage)

	msg = rescan(func() (catalog.Catalog, error) { return catalog.Catalog{}, errors.New("boom") })()
	assert.Equal(t, statusMsg("Scan error: boom"), msg)
}

func TestRescanKeyStartsScan(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	m := NewModel(Options{
		Catalog: sampleCatalog(t.TempDir()),
		Rescan:  func() (catalog.Catalog, error) { return catalog.Catalog{}, nil },
	})
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, cmd := send(t, m, key("r"))
	assert.True(t, m.scanning)
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Rescanning")
}

func TestScriptDetailsWithSource(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Scripts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "Scripts", "Goblin.lua"), []byte("function Goblin:Create()\n    self.hp = 10\nend\n"), 0o644))

	m := NewModel(Options{
		Catalog: sampleCatalog(root),
		Properties: func(rel string) []types.ScriptPropertyDef {
			return []types.ScriptPropertyDef{{Name: "hp", Type: types.Integer, Default: types.IntValue(types.Integer, 10)}}
		},
		Prefs: Prefs{ShowSource: true, LastView: "scripts"},
	})
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 60})
	assert.Equal(t, ViewScripts, m.view)

	content := m.viewport.View()
	assert.Contains(t, content, "Properties (1)")
	assert.Contains(t, content, "hp")
	assert.Contains(t, content, "Source")

	m, _ = send(t, m, key("s"))
	assert.False(t, m.prefs.ShowSource)
	assert.NotContains(t, m.viewport.View(), "Source")
}

func TestView(t *testing.T) {
	m := NewModel(Options{Catalog: sampleCatalog("/tmp/x")})
	assert.Equal(t, "Initializing...", m.View())

	m = newTestModel(t)
	out := m.View()
	assert.Contains(t, out, "Assets: 3")
	assert.Contains(t, out, "Scripts: 2")
	assert.Contains(t, out, "SM_Cube")

	m.query = "zzz"
	m.applyFilters()
	assert.Contains(t, m.View(), "Nothing matches the filter")

	m, _ = send(t, m, key("?"))
	assert.Contains(t, m.View(), "rescan project")
	m, _ = send(t, m, key("x"))
	assert.False(t, m.showHelp)
}

func TestQuitSavesPrefs(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(t, m, key("tab"))
	m, cmd := send(t, m, key("q"))
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, "", m.View())
	assert.Equal(t, "scripts", LoadPrefs().LastView)
}

func TestHighlightCode(t *testing.T) {
	out := highlightCode("local x = 1 -- note\n", "Goblin.lua")
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "local")
	assert.True(t, strings.Contains(out, "note"))
}

func TestPrefsRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	assert.Equal(t, DefaultPrefs(), LoadPrefs())
	require.NoError(t, SavePrefs(Prefs{ShowSource: false, LastView: "scripts"}))
	assert.Equal(t, Prefs{ShowSource: false, LastView: "scripts"}, LoadPrefs())
}
