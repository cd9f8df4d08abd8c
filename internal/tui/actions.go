package tui

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/octave-engine/octconnect/internal/catalog"
	"github.com/octave-engine/octconnect/internal/types"
)

// maxSourceLines bounds the script preview.
const maxSourceLines = 200

func rescan(fn func() (catalog.Catalog, error)) tea.Cmd {
	return func() tea.Msg {
		cat, err := fn()
		if err != nil {
			return statusMsg(fmt.Sprintf("Scan error: %v", err))
		}
		return catalogMsg(cat)
	}
}

// copySelection copies the selected asset's uuid (or engine path when
// enginePath is set) or the selected script's path.
func (m *Model) copySelection(enginePath bool) tea.Cmd {
	var text, what string
	if a, ok := m.selectedAsset(); ok {
		text, what = a.UUIDString(), "uuid"
		if enginePath {
			text, what = a.EnginePath, "engine path"
		}
	} else if s, ok := m.selectedScript(); ok {
		text, what = s, "script path"
	} else {
		return nil
	}
	copyFn := m.copyFunc
	return func() tea.Msg {
		if err := copyFn(text); err != nil {
			return statusMsg(fmt.Sprintf("Clipboard error: %v", err))
		}
		return statusMsg(fmt.Sprintf("Copied %s: %s", what, text))
	}
}

func (m *Model) updateViewportContent() {
	if a, ok := m.selectedAsset(); ok {
		m.viewport.SetContent(assetDetails(a))
		m.viewport.GotoTop()
		return
	}
	if s, ok := m.selectedScript(); ok {
		var defs []types.ScriptPropertyDef
		if m.propsFunc != nil {
			defs = m.propsFunc(s)
		}
		content := scriptDetails(s, defs)
		if m.prefs.ShowSource {
			content += "\n" + titleStyle.Render("Source") + "\n\n" + readSource(filepath.Join(m.cat.Root, filepath.FromSlash(s)))
		}
		m.viewport.SetContent(content)
		m.viewport.GotoTop()
		return
	}
	m.viewport.SetContent("")
}

func assetDetails(a types.AssetCatalogEntry) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Asset") + "\n\n")
	fmt.Fprintf(&b, "%s %s\n", keyStyle.Render("Name:"), a.Name)
	typeName := a.TypeName
	if typeName == "Unknown" {
		typeName = unknownTypeStyle.Render(typeName)
	}
	fmt.Fprintf(&b, "%s %s\n", keyStyle.Render("Type:"), typeName)
	fmt.Fprintf(&b, "%s %s\n", keyStyle.Render("UUID:"), a.UUIDString())
	fmt.Fprintf(&b, "%s %s\n", keyStyle.Render("File:"), a.RelativePath)
	fmt.Fprintf(&b, "%s %s\n", keyStyle.Render("Engine path:"), a.EnginePath)
	return b.String()
}

func scriptDetails(rel string, defs []types.ScriptPropertyDef) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Script") + "\n\n")
	fmt.Fprintf(&b, "%s %s\n", keyStyle.Render("Path:"), rel)
	if len(defs) == 0 {
		b.WriteString("\nNo editable properties\n")
		return b.String()
	}
	fmt.Fprintf(&b, "\n%s\n", keyStyle.Render(fmt.Sprintf("Properties (%d):", len(defs))))
	for _, d := range defs {
		def := "-"
		if d.Default != nil {
			def = d.Default.String()
		}
		fmt.Fprintf(&b, "  %-20s %-9s %s\n", d.Name, d.Type, def)
	}
	return b.String()
}

// readSource returns the first lines of a script, highlighted.
func readSource(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Sprintf("(cannot read: %v)", err)
	}
	defer f.Close()
	var b strings.Builder
	sc := bufio.NewScanner(f)
	n := 0
	for sc.Scan() {
		if n == maxSourceLines {
			b.WriteString("...\n")
			break
		}
		b.WriteString(sc.Text())
		b.WriteByte('\n')
		n++
	}
	return highlightCode(b.String(), filepath.Base(path))
}

func highlightCode(code string, filename string) string {
	lexer := lexers.Match(filename)
	if lexer == nil {
		lexer = lexers.Get("lua")
	}
	if lexer == nil {
		return code
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return buf.String()
}
