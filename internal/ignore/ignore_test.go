package ignore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIgnoreMatch(t *testing.T) {
	dir := t.TempDir()
	ig := filepath.Join(dir, FileName)
	content := "Assets/Temp/\n*.bak.oct\n# comment\n\nScripts/Legacy/**\n"
	if err := os.WriteFile(ig, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(ig)
	if err != nil {
		t.Fatal(err)
	}
	cases := map[string]bool{
		"Assets/Temp/SM_Junk.oct":       true,
		"Assets/Models/SM_Cube.bak.oct": true,
		"Scripts/Legacy/Old.lua":        true,
		"Scripts/Legacy/AI/Older.lua":   true,
		"Assets/Models/SM_Cube.oct":     false,
		"Scripts/Goblin.lua":            false,
	}
	for p, want := range cases {
		if got := m.Match(p); got != want {
			t.Fatalf("Match(%q)=%v want %v", p, got, want)
		}
	}
}

func TestLoadMissing(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), FileName))
	if err == nil {
		t.Fatal("expected error for missing ignore file")
	}
	if !m.Empty() || m.Match("Assets/a.oct") {
		t.Fatal("missing file must produce an empty matcher")
	}
}
