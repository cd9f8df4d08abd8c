package panel

import (
	"testing"

	"github.com/octave-engine/octconnect/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defs() []types.ScriptPropertyDef {
	return []types.ScriptPropertyDef{
		{Name: "speed", Type: types.Float, Default: types.FloatValue(2.5)},
		{Name: "hp", Type: types.Integer},
		{Name: "tint", Type: types.Color, Default: types.VecValue(types.Color, []float64{1, 2, -1, 0.5})},
		{Name: "level", Type: types.Byte, Default: types.IntValue(types.Byte, 300)},
	}
}

func TestRebuild_Defaults(t *testing.T) {
	var p Panel
	p.Rebuild(defs())
	require.Equal(t, 4, p.Len())

	assert.Equal(t, 2.5, p.Items[0].Value.Float)
	assert.Equal(t, int64(0), p.Items[1].Value.Int, "missing default becomes zero value")
	assert.Equal(t, []float64{1, 1, 0, 0.5}, p.Items[2].Value.Vec, "color clamped")
	assert.Equal(t, int64(255), p.Items[3].Value.Int, "byte clamped")
}

func TestRebuild_PreservesByNameAndType(t *testing.T) {
	var p Panel
	p.Rebuild(defs())
	require.NoError(t, p.Set("speed", "7"))
	require.NoError(t, p.Set("hp", "42"))

	next := []types.ScriptPropertyDef{
		{Name: "hp", Type: types.Float, Default: types.FloatValue(1)},
		{Name: "speed", Type: types.Float, Default: types.FloatValue(2.5)},
		{Name: "fresh", Type: types.Bool, Default: types.BoolValue(true)},
	}
	p.Rebuild(next)
	require.Equal(t, 3, p.Len())

	assert.Equal(t, "hp", p.Items[0].Name)
	assert.Equal(t, 1.0, p.Items[0].Value.Float, "type changed so the edit is dropped")
	assert.Equal(t, 7.0, p.Items[1].Value.Float, "same name and type keeps the edit")
	assert.True(t, p.Items[2].Value.Bool)

	p.Rebuild(nil)
	assert.Equal(t, 0, p.Len())
}

func TestRebuild_DoesNotAliasDefaults(t *testing.T) {
	d := []types.ScriptPropertyDef{{Name: "v", Type: types.Vector, Default: types.VecValue(types.Vector, []float64{1, 2, 3})}}
	var p Panel
	p.Rebuild(d)
	require.NoError(t, p.Set("v", "4,5,6"))
	assert.Equal(t, []float64{1, 2, 3}, d[0].Default.Vec)
}

func TestSet(t *testing.T) {
	var p Panel
	p.Rebuild([]types.ScriptPropertyDef{
		{Name: "i", Type: types.Integer},
		{Name: "f", Type: types.Float},
		{Name: "b", Type: types.Bool},
		{Name: "s", Type: types.String},
		{Name: "a", Type: types.Asset},
		{Name: "v2", Type: types.Vector2D},
		{Name: "v3", Type: types.Vector},
		{Name: "c", Type: types.Color},
		{Name: "byte", Type: types.Byte},
		{Name: "short", Type: types.Short},
	})

	cases := []struct {
		name, text string
		want       any
		err        error
	}{
		{"i", " 12 ", int64(12), nil},
		{"i", "-3", int64(-3), nil},
		{"i", "x", nil, ErrBadValue},
		{"i", "010", int64(10), nil},
		{"i", "0x10", nil, ErrBadValue},
		{"i", "+7", int64(7), nil},
		{"short", "-0010", int64(-10), nil},
		{"byte", "0o17", nil, ErrBadValue},
		{"f", "1.25", 1.25, nil},
		{"f", "NaN", nil, ErrBadValue},
		{"b", "true", true, nil},
		{"b", "0", false, nil},
		{"b", "maybe", nil, ErrBadValue},
		{"s", "  keep spaces ", "  keep spaces ", nil},
		{"a", "Assets/SM_Cube", "Assets/SM_Cube", nil},
		{"v2", "1, 2", []float64{1, 2}, nil},
		{"v2", "1, 2, 3", nil, ErrBadValue},
		{"v3", "(0.5, 1, -2)", []float64{0.5, 1, -2}, nil},
		{"c", "2, 0.5, -1, 1", []float64{1, 0.5, 0, 1}, nil},
		{"byte", "255", int64(255), nil},
		{"byte", "256", nil, ErrBadValue},
		{"byte", "-1", nil, ErrBadValue},
		{"short", "-32768", int64(-32768), nil},
		{"short", "32768", nil, ErrBadValue},
		{"missing", "1", nil, ErrUnknownProperty},
	}
	for _, tc := range cases {
		t.Run(tc.name+"="+tc.text, func(t *testing.T) {
			err := p.Set(tc.name, tc.text)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			it, ok := p.Get(tc.name)
			require.True(t, ok)
			assert.Equal(t, tc.want, it.Value.Interface())
		})
	}
}

func TestSetAny(t *testing.T) {
	var p Panel
	p.Rebuild([]types.ScriptPropertyDef{
		{Name: "v", Type: types.Vector},
		{Name: "n", Type: types.Integer},
		{Name: "f", Type: types.Float},
	})
	require.NoError(t, p.SetAny("v", []any{1, 2.5, "3"}))
	require.NoError(t, p.SetAny("n", 7))
	require.NoError(t, p.SetAny("f", 3))

	assert.Equal(t, map[string]any{
		"v": []float64{1, 2.5, 3},
		"n": int64(7),
		"f": 3.0,
	}, p.Values())
	assert.Equal(t, map[string]int{"v": 5, "n": 0, "f": 1}, p.Types())
}

func TestCoerce_NotEditable(t *testing.T) {
	_, err := Coerce(types.DatumType(9), "1")
	assert.ErrorIs(t, err, ErrBadValue)
}
