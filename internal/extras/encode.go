package extras

import (
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/octave-engine/octconnect/internal/panel"
	"github.com/octave-engine/octconnect/internal/types"
)

// The engine reads octave_script_props and octave_script_props_types as
// text written by Python's json.dumps with default settings: keys in panel
// order, ", " and ": " separators, floats always with a fraction or
// exponent, non-ASCII escaped.

// EncodeProps renders the item values as a JSON object in item order.
func EncodeProps(items []panel.Item) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, it := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		writeString(&b, it.Name)
		b.WriteString(": ")
		writeValue(&b, it.Value)
	}
	b.WriteByte('}')
	return b.String()
}

// EncodeTypes renders the item DatumType ids as a JSON object in item order.
func EncodeTypes(items []panel.Item) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, it := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		writeString(&b, it.Name)
		b.WriteString(": ")
		b.WriteString(strconv.Itoa(int(it.Type)))
	}
	b.WriteByte('}')
	return b.String()
}

func writeValue(b *strings.Builder, v *types.Value) {
	if v == nil {
		b.WriteString("null")
		return
	}
	switch v.Kind {
	case types.Integer, types.Byte, types.Short:
		b.WriteString(strconv.FormatInt(v.Int, 10))
	case types.Float:
		b.WriteString(formatFloat(v.Float))
	case types.Bool:
		b.WriteString(strconv.FormatBool(v.Bool))
	case types.String, types.Asset:
		writeString(b, v.Str)
	case types.Vector2D, types.Vector, types.Color:
		b.WriteByte('[')
		for i, f := range v.Vec {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(formatFloat(f))
		}
		b.WriteByte(']')
	default:
		b.WriteString("null")
	}
}

// formatFloat matches Python's float repr: shortest round-trip digits,
// positional for exponents in [-4, 16), scientific otherwise.
func formatFloat(f float64) string {
	if f == 0 {
		if strconv.FormatFloat(f, 'f', -1, 64) == "-0" {
			return "-0.0"
		}
		return "0.0"
	}
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, _ := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return sci
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

func writeString(b *strings.Builder, s string) {
	const hex = "0123456789abcdef"
	u4 := func(r uint16) {
		b.WriteString(`\u`)
		b.WriteByte(hex[r>>12&0xF])
		b.WriteByte(hex[r>>8&0xF])
		b.WriteByte(hex[r>>4&0xF])
		b.WriteByte(hex[r&0xF])
	}
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			switch {
			case r < 0x20 || (r >= 0x7F && r <= 0xFFFF):
				u4(uint16(r))
			case r > 0xFFFF:
				hi, lo := utf16.EncodeRune(r)
				u4(uint16(hi))
				u4(uint16(lo))
			default:
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
}
