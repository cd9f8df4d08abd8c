package octconnect

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/octave-engine/octconnect/internal/header"
	"github.com/octave-engine/octconnect/internal/octhash"
)

func runCLI(t *testing.T, args ...string) ([]byte, error) {
	t.Helper()
	// run as subprocess to avoid os.Exit in-process
	cmd := exec.Command("go", append([]string{"run", "."}, args...)...)
	cmd.Dir = filepath.Clean(filepath.Join("..", ".."))
	cmd.Env = append(os.Environ(), "CI=1", "XDG_CONFIG_HOME="+t.TempDir())
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = os.Stderr
	err := cmd.Run()
	return out.Bytes(), err
}

func TestCLI_ScanJSON_Shape(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "Assets"), 0o755); err != nil {
		t.Fatal(err)
	}
	h := header.Header{Magic: header.Magic, Version: 12, TypeID: octhash.String("Texture"), UUID: 9001}
	if err := os.WriteFile(filepath.Join(dir, "Assets", "T_Rock.oct"), header.Encode(h), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "scan", "--json", "-p", dir)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	var doc struct {
		Assets []map[string]any `json:"assets"`
	}
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("json unmarshal: %v\n%s", err, out)
	}
	if len(doc.Assets) != 1 {
		t.Fatalf("expected one asset, got %d", len(doc.Assets))
	}
	a := doc.Assets[0]
	if a["uuid"] != "9001" || a["type_name"] != "Texture" || a["engine_path"] != "Assets/T_Rock" {
		t.Fatalf("unexpected asset entry: %v", a)
	}
	if _, err := os.Stat(filepath.Join(dir, ".octconnect", "catalog.json")); err != nil {
		t.Fatalf("expected snapshot: %v", err)
	}
}

func TestCLI_ScanMissingRoot_ExitsOne(t *testing.T) {
	_, err := runCLI(t, "scan", "--json", "-p", filepath.Join(t.TempDir(), "nope"))
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("expected exit error, got %v", err)
	}
	if exitErr.ExitCode() != 1 {
		t.Fatalf("expected exit code 1, got %d", exitErr.ExitCode())
	}
}
