package types

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// DatumType is the engine's property value type. The integer values cross
// into the engine's serialized data and must not be renumbered.
type DatumType int

const (
	Integer  DatumType = 0
	Float    DatumType = 1
	Bool     DatumType = 2
	String   DatumType = 3
	Vector2D DatumType = 4
	Vector   DatumType = 5
	Color    DatumType = 6
	Asset    DatumType = 7
	Byte     DatumType = 8
	// 9 and 10 are reserved by the engine.
	Short DatumType = 11
)

var datumNames = map[string]DatumType{
	"Integer":  Integer,
	"Float":    Float,
	"Bool":     Bool,
	"String":   String,
	"Vector2D": Vector2D,
	"Vector":   Vector,
	"Color":    Color,
	"Asset":    Asset,
	"Byte":     Byte,
	"Short":    Short,
}

var editable = map[DatumType]bool{
	Integer: true, Float: true, Bool: true, String: true,
	Vector2D: true, Vector: true, Color: true, Asset: true,
	Byte: true, Short: true,
}

// LookupDatumType resolves the suffix of a DatumType.<Name> reference.
func LookupDatumType(name string) (DatumType, bool) {
	t, ok := datumNames[name]
	return t, ok
}

// Editable reports whether properties of this type can be edited per object.
func (t DatumType) Editable() bool { return editable[t] }

func (t DatumType) String() string {
	for name, v := range datumNames {
		if v == t {
			return name
		}
	}
	return "DatumType(" + strconv.Itoa(int(t)) + ")"
}

// Components is the vector width of t, or 0 for scalar types.
func (t DatumType) Components() int {
	switch t {
	case Vector2D:
		return 2
	case Vector:
		return 3
	case Color:
		return 4
	}
	return 0
}

// Value is a typed property value. Exactly one payload field is meaningful,
// selected by Kind.
type Value struct {
	Kind  DatumType
	Int   int64
	Float float64
	Bool  bool
	Str   string
	Vec   []float64
}

func IntValue(t DatumType, v int64) *Value { return &Value{Kind: t, Int: v} }
func FloatValue(v float64) *Value { return &Value{Kind: Float, Float: v} }
func BoolValue(v bool) *Value { return &Value{Kind: Bool, Bool: v} }
func StringValue(t DatumType, v string) *Value { return &Value{Kind: t, Str: v} }
func VecValue(t DatumType, v []float64) *Value {
	return &Value{Kind: t, Vec: append([]float64(nil), v...)}
}

// Zero returns the zero value for t, or nil when t is not editable.
func Zero(t DatumType) *Value {
	switch t {
	case Integer, Byte, Short:
		return IntValue(t, 0)
	case Float:
		return FloatValue(0)
	case Bool:
		return BoolValue(false)
	case String, Asset:
		return StringValue(t, "")
	case Vector2D, Vector, Color:
		return VecValue(t, make([]float64, t.Components()))
	}
	return nil
}

// Interface returns the plain Go value: int64, float64, bool, string or []float64.
func (v *Value) Interface() any {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case Integer, Byte, Short:
		return v.Int
	case Float:
		return v.Float
	case Bool:
		return v.Bool
	case String, Asset:
		return v.Str
	case Vector2D, Vector, Color:
		return v.Vec
	}
	return nil
}

// Clone returns a deep copy.
func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}
	c := *v
	if v.Vec != nil {
		c.Vec = append([]float64(nil), v.Vec...)
	}
	return &c
}

func (v *Value) String() string {
	if v == nil {
		return "nil"
	}
	switch x := v.Interface().(type) {
	case string:
		return strconv.Quote(x)
	case []float64:
		s := ""
		for i, f := range x {
			if i > 0 {
				s += ", "
			}
			s += strconv.FormatFloat(f, 'g', -1, 64)
		}
		return "(" + s + ")"
	default:
		return fmt.Sprint(x)
	}
}

// MarshalJSON encodes the payload as a plain JSON scalar or array.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// AssetCatalogEntry is one scanned asset file.
type AssetCatalogEntry struct {
	Name         string `json:"name"`
	TypeName     string `json:"type_name"`
	UUID         uint64 `json:"uuid,string"`
	RelativePath string `json:"relative_path"`
	// EnginePath is RelativePath without the asset extension, the form the
	// engine uses to reference assets.
	EnginePath string `json:"engine_path"`
}

// UUIDString renders the uuid the way the engine expects it in extras.
func (e AssetCatalogEntry) UUIDString() string {
	return strconv.FormatUint(e.UUID, 10)
}

// ScriptPropertyDef is an editable property declared by a script.
type ScriptPropertyDef struct {
	Name    string    `json:"name"`
	Type    DatumType `json:"type"`
	Default *Value    `json:"default,omitempty"`
}
