package luaprops

import (
	"testing"

	"github.com/octave-engine/octconnect/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestParseLiteral(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		typ  types.DatumType
		want any // nil means no value
	}{
		{"nil any type", "nil", types.Float, nil},
		{"nil with comment", "nil -- unset", types.Integer, nil},
		{"bool true", "true", types.Bool, true},
		{"bool false trailing comma", "false,", types.Bool, false},
		{"bool garbage", "1", types.Bool, nil},
		{"int truncates", "3.9", types.Integer, int64(3)},
		{"int truncates toward zero", "-3.9", types.Integer, int64(-3)},
		{"int exponent", "1e2", types.Integer, int64(100)},
		{"byte", "255", types.Byte, int64(255)},
		{"short", "-12", types.Short, int64(-12)},
		{"int bad", "foo", types.Integer, nil},
		{"int overflow", "1e300", types.Integer, nil},
		{"float", "2.25", types.Float, 2.25},
		{"float comment", "2.25 -- meters", types.Float, 2.25},
		{"float bad", "math.pi", types.Float, nil},
		{"float inf rejected", "inf", types.Float, nil},
		{"string double", `"hello"`, types.String, "hello"},
		{"string single", `'hello'`, types.String, "hello"},
		{"string keeps dashes", `"a--b"`, types.String, "a--b"},
		{"string unquoted", "hello", types.String, nil},
		{"string concat", `"a" .. name`, types.String, nil},
		{"asset", `"Assets/T_Rock"`, types.Asset, "Assets/T_Rock"},
		{"vec2", "Vec(1, 2)", types.Vector2D, []float64{1, 2}},
		{"vec2 wrong arity", "Vec(1, 2, 3)", types.Vector2D, nil},
		{"vec3", "Vec(1, 2, 3)", types.Vector, []float64{1, 2, 3}},
		{"vec3 Vector.New", "Vector.New(1.5, -2, 0)", types.Vector, []float64{1.5, -2, 0}},
		{"vec3 wrong arity", "Vec(1, 2)", types.Vector, nil},
		{"vec3 too many", "Vec(1, 2, 3, 4)", types.Vector, nil},
		{"vec3 variable arg", "Vec(x, 2, 3)", types.Vector, nil},
		{"vec3 nested call", "Vec(f(1), 2, 3)", types.Vector, nil},
		{"color", "Vec(1, 0.5, 0, 1)", types.Color, []float64{1, 0.5, 0, 1}},
		{"color wrong arity", "Vec(1, 0.5, 0)", types.Color, nil},
		{"reserved type", "1", types.DatumType(9), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLiteral(tt.raw, tt.typ)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			if assert.NotNil(t, got) {
				assert.Equal(t, tt.want, got.Interface())
				assert.Equal(t, tt.typ, got.Kind)
			}
		})
	}
}

func TestStripLineComment(t *testing.T) {
	assert.Equal(t, "5 ", stripLineComment("5 -- five"))
	assert.Equal(t, `"--" `, stripLineComment(`"--" -- dashes`))
	assert.Equal(t, `'it\'s' `, stripLineComment(`'it\'s' --x`))
	assert.Equal(t, "x", stripLineComment("x"))
}
