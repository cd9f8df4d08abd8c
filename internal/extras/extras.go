// Package extras builds the per-object key/value payload the engine reads
// from glTF node extras on import.
package extras

import (
	"strings"

	"github.com/octave-engine/octconnect/internal/panel"
	"github.com/octave-engine/octconnect/internal/types"
)

// Payload keys.
const (
	KeyMeshType     = "mesh_type"
	KeyAsset        = "octave_asset"
	KeyMaterialType = "octave_material_type"
	KeyMainCamera   = "octave_main_camera"
	KeyScript       = "octave_script"
	KeyScriptProps  = "octave_script_props"
	KeyScriptTypes  = "octave_script_props_types"
	KeyAssetUUID    = "octave_asset_uuid"
)

// Keys lists every key this package writes.
var Keys = []string{
	KeyMeshType, KeyAsset, KeyMaterialType, KeyMainCamera,
	KeyScript, KeyScriptProps, KeyScriptTypes, KeyAssetUUID,
}

var meshTypes = map[string]string{
	"NODE3D":         "Node3D",
	"STATIC_MESH":    "StaticMesh",
	"INSTANCED_MESH": "InstancedMesh",
}

// MeshTypeName maps an annotation mesh type to the engine's name. Engine
// names pass through; anything else is StaticMesh.
func MeshTypeName(s string) string {
	if n, ok := meshTypes[strings.ToUpper(s)]; ok {
		return n
	}
	for _, n := range meshTypes {
		if n == s {
			return n
		}
	}
	return "StaticMesh"
}

// MaterialTypeName maps DEFAULT (or nothing) to LIT.
func MaterialTypeName(s string) string {
	if s == "" || strings.EqualFold(s, "DEFAULT") {
		return "LIT"
	}
	return strings.ToUpper(s)
}

// Object is one annotated scene object.
type Object struct {
	Name         string       `yaml:"name" json:"name"`
	Camera       bool         `yaml:"camera,omitempty" json:"camera,omitempty"`
	MainCamera   bool         `yaml:"main_camera,omitempty" json:"main_camera,omitempty"`
	MeshType     string       `yaml:"mesh_type,omitempty" json:"mesh_type,omitempty"`
	Asset        string       `yaml:"asset,omitempty" json:"asset,omitempty"`
	MaterialType string       `yaml:"material_type,omitempty" json:"material_type,omitempty"`
	Script       string       `yaml:"script,omitempty" json:"script,omitempty"`
	Props        *panel.Panel `yaml:"-" json:"-"`
}

// RewriteScriptPath converts a catalog script path to the engine form:
// "Scripts/X" becomes "X" and "Packages/P/Scripts/R" becomes "Packages/P/R".
func RewriteScriptPath(p string) string {
	if rest, ok := strings.CutPrefix(p, "Scripts/"); ok {
		return rest
	}
	if strings.HasPrefix(p, "Packages/") {
		parts := strings.SplitN(p, "/", 4)
		if len(parts) == 4 && parts[2] == "Scripts" {
			return "Packages/" + parts[1] + "/" + parts[3]
		}
	}
	return p
}

// LookupUUID returns the decimal uuid of the entry whose engine path is
// asset, or "0".
func LookupUUID(asset string, entries []types.AssetCatalogEntry) string {
	if asset == "" {
		return "0"
	}
	for _, e := range entries {
		if e.EnginePath == asset {
			return e.UUIDString()
		}
	}
	return "0"
}

// Build returns the payload for obj. Keys that do not apply are absent.
func Build(obj Object, entries []types.AssetCatalogEntry) (map[string]any, error) {
	out := map[string]any{}
	if obj.Camera {
		out[KeyMainCamera] = obj.MainCamera
	} else {
		out[KeyMeshType] = MeshTypeName(obj.MeshType)
		out[KeyAsset] = obj.Asset
		out[KeyMaterialType] = MaterialTypeName(obj.MaterialType)
	}

	if obj.Script != "" {
		out[KeyScript] = RewriteScriptPath(obj.Script)
		if obj.Props != nil && obj.Props.Len() > 0 {
			out[KeyScriptProps] = EncodeProps(obj.Props.Items)
			out[KeyScriptTypes] = EncodeTypes(obj.Props.Items)
		}
	}

	if obj.Asset != "" || obj.Script != "" {
		out[KeyAssetUUID] = LookupUUID(obj.Asset, entries)
	}
	return out, nil
}

// Apply merges the payload for obj into existing, deleting any payload key
// left over from an earlier export that no longer applies. Keys not owned
// by this package are untouched.
func Apply(existing map[string]any, obj Object, entries []types.AssetCatalogEntry) (map[string]any, error) {
	fresh, err := Build(obj, entries)
	if err != nil {
		return existing, err
	}
	if existing == nil {
		existing = map[string]any{}
	}
	for _, k := range Keys {
		if v, ok := fresh[k]; ok {
			existing[k] = v
		} else {
			delete(existing, k)
		}
	}
	return existing, nil
}
