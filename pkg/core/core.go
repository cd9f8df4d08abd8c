package core

import (
	"github.com/octave-engine/octconnect/internal/catalog"
	"github.com/octave-engine/octconnect/internal/extras"
	"github.com/octave-engine/octconnect/internal/header"
	"github.com/octave-engine/octconnect/internal/luaprops"
	"github.com/octave-engine/octconnect/internal/match"
	"github.com/octave-engine/octconnect/internal/octhash"
	"github.com/octave-engine/octconnect/internal/panel"
	"github.com/octave-engine/octconnect/internal/session"
	"github.com/octave-engine/octconnect/internal/types"
)

// Re-exported types. These are aliases so values flow freely between the
// facade and code that already uses them.
type (
	Config            = catalog.Config
	Catalog           = catalog.Catalog
	AssetCatalogEntry = types.AssetCatalogEntry
	ScriptPropertyDef = types.ScriptPropertyDef
	DatumType         = types.DatumType
	Value             = types.Value
	Header            = header.Header
	Session           = session.Session
	SessionOption     = session.Option
	Panel             = panel.Panel
	Object            = extras.Object
)

var (
	ErrProjectNotFound = catalog.ErrProjectNotFound
	ErrNoProjectDirs   = catalog.ErrNoProjectDirs
)

// BuildCatalog scans a project root into asset and script catalogs.
func BuildCatalog(cfg Config) (Catalog, error) { return catalog.Build(cfg) }

// ParseScript extracts editable properties from Lua source.
func ParseScript(src string) []ScriptPropertyDef { return luaprops.Extract(src) }

// ParseScriptFile extracts editable properties from a Lua file.
func ParseScriptFile(path string) ([]ScriptPropertyDef, error) { return luaprops.ExtractFile(path) }

// HashString is the engine's 32-bit name hash.
func HashString(s string) uint32 { return octhash.String(s) }

// TypeName resolves an asset type id, or "Unknown".
func TypeName(id uint32) string { return octhash.TypeName(id) }

// ReadHeader decodes the header of an asset file.
func ReadHeader(path string) (Header, error) { return header.ReadFile(path) }

// NewSession starts a project session for root.
func NewSession(root string, opts ...SessionOption) *Session { return session.New(root, opts...) }

// BestMatch returns the engine path of the asset best matching objectName.
func BestMatch(objectName string, assets []AssetCatalogEntry) string {
	return match.Best(objectName, assets)
}

// BuildExtras returns the export payload for one object.
func BuildExtras(obj Object, assets []AssetCatalogEntry) (map[string]any, error) {
	return extras.Build(obj, assets)
}
