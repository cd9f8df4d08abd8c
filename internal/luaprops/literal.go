package luaprops

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/octave-engine/octconnect/internal/types"
)

var (
	quoted = regexp.MustCompile(`^["'](.*)["']\s*$`)
	vec2   = regexp.MustCompile(`^(?:Vec|Vector\.New)\s*\(\s*([^,]+),\s*([^)]+)\)`)
	vec3   = regexp.MustCompile(`^(?:Vec|Vector\.New)\s*\(\s*([^,]+),\s*([^,]+),\s*([^)]+)\)`)
	vec4   = regexp.MustCompile(`^(?:Vec|Vector\.New)\s*\(\s*([^,]+),\s*([^,]+),\s*([^,]+),\s*([^)]+)\)`)
)

// ParseLiteral converts the right-hand side of a Create assignment into a
// value of type t. It returns nil for nil, for anything that is not a plain
// literal of the expected shape, and for types it does not know.
func ParseLiteral(raw string, t types.DatumType) *types.Value {
	raw = strings.TrimSpace(stripLineComment(raw))
	raw = strings.TrimSpace(strings.TrimSuffix(raw, ","))
	if raw == "nil" {
		return nil
	}

	switch t {
	case types.Bool:
		switch raw {
		case "true":
			return types.BoolValue(true)
		case "false":
			return types.BoolValue(false)
		}
		return nil

	case types.Integer, types.Byte, types.Short:
		f, ok := parseFloat(raw)
		if !ok || f >= math.MaxInt64 || f <= math.MinInt64 {
			return nil
		}
		return types.IntValue(t, int64(f))

	case types.Float:
		f, ok := parseFloat(raw)
		if !ok {
			return nil
		}
		return types.FloatValue(f)

	case types.String, types.Asset:
		m := quoted.FindStringSubmatch(raw)
		if m == nil {
			return nil
		}
		return types.StringValue(t, m[1])

	case types.Vector2D:
		return parseVec(raw, t, vec2)
	case types.Vector:
		return parseVec(raw, t, vec3)
	case types.Color:
		return parseVec(raw, t, vec4)
	}
	return nil
}

func parseVec(raw string, t types.DatumType, re *regexp.Regexp) *types.Value {
	m := re.FindStringSubmatch(raw)
	if m == nil {
		return nil
	}
	out := make([]float64, 0, len(m)-1)
	for _, s := range m[1:] {
		f, ok := parseFloat(s)
		if !ok {
			return nil
		}
		out = append(out, f)
	}
	return types.VecValue(t, out)
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// stripLineComment drops a trailing "--" comment. Dashes inside a quoted
// string are kept.
func stripLineComment(s string) string {
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '-' && i+1 < len(s) && s[i+1] == '-':
			return s[:i]
		}
	}
	return s
}
