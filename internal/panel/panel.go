// Package panel models the per-object list of editable script properties:
// one typed value per property declared by the object's script.
package panel

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/octave-engine/octconnect/internal/types"
	"github.com/spf13/cast"
)

var (
	ErrUnknownProperty = errors.New("unknown property")
	ErrBadValue        = errors.New("bad value")
)

// Item is one property row. Value is never nil for items built by Rebuild.
type Item struct {
	Name  string          `json:"name" yaml:"name"`
	Type  types.DatumType `json:"type" yaml:"type"`
	Value *types.Value    `json:"value" yaml:"value"`
}

// Panel is an ordered property list. The zero value is empty and ready.
type Panel struct {
	Items []Item
}

// Rebuild replaces the items with defs, in declaration order. A previous
// value survives when a property with the same name and type is still
// declared; otherwise the parsed default is used, or the type's zero value.
// Empty defs clear the panel.
func (p *Panel) Rebuild(defs []types.ScriptPropertyDef) {
	type slot struct {
		name string
		t    types.DatumType
	}
	old := make(map[slot]*types.Value, len(p.Items))
	for _, it := range p.Items {
		if it.Value != nil {
			old[slot{it.Name, it.Type}] = it.Value
		}
	}

	items := make([]Item, 0, len(defs))
	for _, d := range defs {
		var v *types.Value
		switch prev, ok := old[slot{d.Name, d.Type}]; {
		case ok:
			v = prev.Clone()
		case d.Default != nil && d.Default.Kind == d.Type:
			v = normalize(d.Default.Clone())
		default:
			v = types.Zero(d.Type)
		}
		items = append(items, Item{Name: d.Name, Type: d.Type, Value: v})
	}
	p.Items = items
}

func (p *Panel) Clear() { p.Items = nil }

func (p *Panel) Len() int { return len(p.Items) }

// Get returns the item called name.
func (p *Panel) Get(name string) (Item, bool) {
	for _, it := range p.Items {
		if it.Name == name {
			return it, true
		}
	}
	return Item{}, false
}

// Set parses text into the named property's type.
func (p *Panel) Set(name, text string) error {
	return p.SetAny(name, text)
}

// SetAny coerces v, which may be text, a number, a bool or a list, into the
// named property's type.
func (p *Panel) SetAny(name string, v any) error {
	for i := range p.Items {
		if p.Items[i].Name != name {
			continue
		}
		val, err := Coerce(p.Items[i].Type, v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		p.Items[i].Value = val
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownProperty, name)
}

// Values maps each property name to its plain value.
func (p *Panel) Values() map[string]any {
	out := make(map[string]any, len(p.Items))
	for _, it := range p.Items {
		out[it.Name] = it.Value.Interface()
	}
	return out
}

// Types maps each property name to its DatumType integer.
func (p *Panel) Types() map[string]int {
	out := make(map[string]int, len(p.Items))
	for _, it := range p.Items {
		out[it.Name] = int(it.Type)
	}
	return out
}

// Coerce converts v to a value of type t. Byte and Short reject values
// outside their range; Color components are clamped to [0, 1].
func Coerce(t types.DatumType, v any) (*types.Value, error) {
	if s, ok := v.(string); ok && t != types.String && t != types.Asset {
		v = strings.TrimSpace(s)
	}
	switch t {
	case types.Integer, types.Byte, types.Short:
		n, err := toInt(v)
		if err != nil {
			return nil, err
		}
		if lo, hi, ok := intRange(t); ok && (n < lo || n > hi) {
			return nil, fmt.Errorf("%w: %d out of range [%d, %d]", ErrBadValue, n, lo, hi)
		}
		return types.IntValue(t, n), nil
	case types.Float:
		f, err := toFloat(v)
		if err != nil {
			return nil, err
		}
		return types.FloatValue(f), nil
	case types.Bool:
		b, err := cast.ToBoolE(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadValue, err)
		}
		return types.BoolValue(b), nil
	case types.String, types.Asset:
		s, err := cast.ToStringE(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadValue, err)
		}
		return types.StringValue(t, s), nil
	case types.Vector2D, types.Vector, types.Color:
		vec, err := toVec(v, t.Components())
		if err != nil {
			return nil, err
		}
		return normalize(types.VecValue(t, vec)), nil
	}
	return nil, fmt.Errorf("%w: type %s is not editable", ErrBadValue, t)
}

// toInt reads text as base 10 only; cast would honour 0x and leading-zero
// octal prefixes.
func toInt(v any) (int64, error) {
	if s, ok := v.(string); ok {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a base 10 integer", ErrBadValue, s)
		}
		return n, nil
	}
	n, err := cast.ToInt64E(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBadValue, err)
	}
	return n, nil
}

func toFloat(v any) (float64, error) {
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBadValue, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %v is not finite", ErrBadValue, f)
	}
	return f, nil
}

// toVec accepts "x, y, z" (optionally parenthesised) or a list.
func toVec(v any, n int) ([]float64, error) {
	var parts []any
	if fs, ok := v.([]float64); ok {
		for _, f := range fs {
			parts = append(parts, f)
		}
	} else if s, ok := v.(string); ok {
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
		for _, p := range strings.Split(s, ",") {
			parts = append(parts, strings.TrimSpace(p))
		}
	} else {
		list, err := cast.ToSliceE(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadValue, err)
		}
		parts = list
	}
	if len(parts) != n {
		return nil, fmt.Errorf("%w: want %d components, got %d", ErrBadValue, n, len(parts))
	}
	out := make([]float64, n)
	for i, p := range parts {
		f, err := toFloat(p)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

func intRange(t types.DatumType) (lo, hi int64, ok bool) {
	switch t {
	case types.Byte:
		return 0, math.MaxUint8, true
	case types.Short:
		return math.MinInt16, math.MaxInt16, true
	}
	return 0, 0, false
}

// normalize clamps v into the representable range of its type.
func normalize(v *types.Value) *types.Value {
	if v == nil {
		return nil
	}
	if lo, hi, ok := intRange(v.Kind); ok {
		v.Int = min(max(v.Int, lo), hi)
	}
	if v.Kind == types.Color {
		for i, c := range v.Vec {
			v.Vec[i] = min(max(c, 0), 1)
		}
	}
	return v
}
