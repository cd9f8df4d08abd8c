package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/octave-engine/octconnect/internal/git"
	"github.com/octave-engine/octconnect/internal/types"
)

const snapshotFile = "catalog.json"

// Snapshot is the last catalog written by a scan.
type Snapshot struct {
	Timestamp time.Time                 `json:"timestamp"`
	Root      string                    `json:"root"`
	Repo      git.Stamp                 `json:"repo"`
	Assets    []types.AssetCatalogEntry `json:"assets"`
	Scripts   []string                  `json:"scripts"`
	Skipped   []string                  `json:"skipped,omitempty"`
}

func snapshotPath(root string) string {
	return filepath.Join(root, Dir, snapshotFile)
}

// SaveSnapshot stores snap for root, stamping the time when unset.
func SaveSnapshot(root string, snap Snapshot) error {
	if snap.Timestamp.IsZero() {
		snap.Timestamp = time.Now()
	}
	if snap.Root == "" {
		snap.Root = root
	}
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(root, Dir), 0o755); err != nil {
		return err
	}
	return os.WriteFile(snapshotPath(root), b, 0o644)
}

// LoadSnapshot reads the last snapshot for root.
func LoadSnapshot(root string) (Snapshot, error) {
	var snap Snapshot
	b, err := os.ReadFile(snapshotPath(root))
	if err != nil {
		return snap, err
	}
	if err := json.Unmarshal(b, &snap); err != nil {
		return snap, err
	}
	return snap, nil
}
