package luaprops

import (
	"os"
	"regexp"
	"strings"

	"github.com/octave-engine/octconnect/internal/types"
)

var (
	gatherHeader = regexp.MustCompile(`function\s+\w+:GatherProperties\s*\(\s*\)`)
	createHeader = regexp.MustCompile(`function\s+\w+:Create\s*\(\s*\)`)
	entryPattern = regexp.MustCompile(`\{\s*name\s*=\s*"(\w+)"\s*,\s*type\s*=\s*DatumType\.(\w+)`)
	assignment   = regexp.MustCompile(`(?m)self\.(\w+)\s*=\s*(.+?)$`)
)

// Extract returns the editable properties declared by src in declaration
// order. Properties whose type is unknown or not editable are dropped. A
// script without GatherProperties yields nil.
func Extract(src string) []types.ScriptPropertyDef {
	code := stripComments(src)

	gather, ok := methodBody(code, gatherHeader)
	if !ok {
		return nil
	}

	var props []types.ScriptPropertyDef
	for _, m := range entryPattern.FindAllStringSubmatch(gather, -1) {
		t, ok := types.LookupDatumType(m[2])
		if !ok || !t.Editable() {
			continue
		}
		props = append(props, types.ScriptPropertyDef{Name: m[1], Type: t})
	}
	if len(props) == 0 {
		return nil
	}

	create, ok := methodBody(code, createHeader)
	if !ok {
		return props
	}
	defaults := Assignments(create)
	for i := range props {
		raw, ok := defaults[props[i].Name]
		if !ok {
			continue
		}
		props[i].Default = ParseLiteral(raw, props[i].Type)
	}
	return props
}

// ExtractFile reads and extracts path. Invalid UTF-8 is replaced rather than
// rejected.
func ExtractFile(path string) ([]types.ScriptPropertyDef, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Extract(DecodeSource(b)), nil
}

// DecodeSource converts raw script bytes to text, replacing invalid UTF-8.
func DecodeSource(b []byte) string {
	return strings.ToValidUTF8(string(b), "\uFFFD")
}

// Assignments maps each self.<field> assigned in body to the raw text of its
// last assignment.
func Assignments(body string) map[string]string {
	out := map[string]string{}
	for _, m := range assignment.FindAllStringSubmatch(body, -1) {
		out[m[1]] = strings.TrimSpace(m[2])
	}
	return out
}

// methodBody finds the first method matching header and returns the text
// between the header and the first following line that is exactly "end".
// Indented ends belong to nested blocks and do not terminate the method.
func methodBody(code string, header *regexp.Regexp) (string, bool) {
	loc := header.FindStringIndex(code)
	if loc == nil {
		return "", false
	}
	start := loc[1]
	// Lines are considered from the one after the header.
	nl := strings.IndexByte(code[start:], '\n')
	if nl < 0 {
		return "", false
	}
	pos := start + nl + 1
	for pos <= len(code) {
		line := code[pos:]
		next := len(code)
		if i := strings.IndexByte(line, '\n'); i >= 0 {
			line = line[:i]
			next = pos + i + 1
		}
		if strings.TrimRight(line, " \t\r") == "end" {
			return code[start:pos], true
		}
		if next >= len(code) {
			break
		}
		pos = next
	}
	return "", false
}
