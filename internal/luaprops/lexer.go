package luaprops

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// stripComments runs the Lua lexer over src and blanks every comment token,
// keeping line breaks so line structure is unchanged. String literals pass
// through untouched. If the lexer is missing or fails, src is returned as is.
func stripComments(src string) string {
	lexer := lexers.Get("lua")
	if lexer == nil {
		return src
	}
	it, err := lexer.Tokenise(nil, src)
	if err != nil {
		return src
	}
	var b strings.Builder
	b.Grow(len(src))
	for _, tok := range it.Tokens() {
		if tok.Type.InCategory(chroma.Comment) {
			b.WriteString(blank(tok.Value))
			continue
		}
		b.WriteString(tok.Value)
	}
	return b.String()
}

func blank(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' {
			return r
		}
		return ' '
	}, s)
}
