package catalog

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"time"

	"github.com/octave-engine/octconnect/internal/header"
	"github.com/octave-engine/octconnect/internal/ignore"
	"github.com/octave-engine/octconnect/internal/octhash"
	"github.com/octave-engine/octconnect/internal/types"
	"github.com/rs/zerolog/log"
)

var (
	// ErrProjectNotFound means the project root is missing or not a directory.
	ErrProjectNotFound = errors.New("directory not found")
	// ErrNoProjectDirs means the root has neither Assets/ nor Scripts/.
	ErrNoProjectDirs = errors.New("directory has no Assets/ or Scripts/ subfolder")
)

// Config controls a catalog scan.
type Config struct {
	Root string
	// ExcludeGlobs is a comma separated list of globs matched against
	// project-relative paths.
	ExcludeGlobs string
	// Progress, when set, is called after each asset file with the number
	// processed so far and the total.
	Progress func(current, total int)
	// Types resolves header type ids; nil uses octhash.Default.
	Types *octhash.Table
}

// Catalog is the result of one full scan.
type Catalog struct {
	Root    string                    `json:"root"`
	Assets  []types.AssetCatalogEntry `json:"assets"`
	Scripts []string                  `json:"scripts"`
	// Skipped lists asset files whose header could not be read.
	Skipped []string `json:"skipped,omitempty"`
	// DirErrors collects directories that could not be listed.
	DirErrors []error       `json:"-"`
	Duration  time.Duration `json:"-"`
}

// Asset returns the entry whose engine path equals enginePath.
func (c Catalog) Asset(enginePath string) (types.AssetCatalogEntry, bool) {
	for _, a := range c.Assets {
		if a.EnginePath == enginePath {
			return a, true
		}
	}
	return types.AssetCatalogEntry{}, false
}

// HasScript reports whether rel is in the script catalog.
func (c Catalog) HasScript(rel string) bool {
	for _, s := range c.Scripts {
		if s == rel {
			return true
		}
	}
	return false
}

// CheckRoot validates that root can be scanned as a project.
func CheckRoot(root string) error {
	if !isDir(root) {
		return fmt.Errorf("%w: %s", ErrProjectNotFound, root)
	}
	if !isDir(filepath.Join(root, AssetsDir)) && !isDir(filepath.Join(root, ScriptsDir)) {
		return fmt.Errorf("%w: %s", ErrNoProjectDirs, root)
	}
	return nil
}

// Build validates the root and scans both catalogs.
func Build(cfg Config) (Catalog, error) {
	started := time.Now()
	cat := Catalog{Root: cfg.Root}
	if err := CheckRoot(cfg.Root); err != nil {
		return cat, err
	}
	ign, _ := ignore.Load(filepath.Join(cfg.Root, ignore.FileName))

	assets, skipped, err := buildAssets(cfg, ign, &cat.DirErrors)
	if err != nil {
		return cat, err
	}
	scripts, err := buildScripts(cfg, ign, &cat.DirErrors)
	if err != nil {
		return cat, err
	}
	cat.Assets = assets
	cat.Skipped = skipped
	cat.Scripts = scripts
	cat.Duration = time.Since(started)
	log.Debug().
		Int("assets", len(assets)).
		Int("scripts", len(scripts)).
		Int("skipped", len(skipped)).
		Dur("took", cat.Duration).
		Msg("catalog built")
	return cat, nil
}

// BuildAssets scans Assets/ and Packages/ for asset files. Files whose header
// is unreadable are left out; they never fail the scan.
func BuildAssets(cfg Config) ([]types.AssetCatalogEntry, error) {
	if !isDir(cfg.Root) {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, cfg.Root)
	}
	ign, _ := ignore.Load(filepath.Join(cfg.Root, ignore.FileName))
	var dirErrs []error
	assets, _, err := buildAssets(cfg, ign, &dirErrs)
	return assets, err
}

// BuildScripts lists script files under Scripts/ and Packages/<pkg>/Scripts/.
func BuildScripts(cfg Config) ([]string, error) {
	if !isDir(cfg.Root) {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, cfg.Root)
	}
	ign, _ := ignore.Load(filepath.Join(cfg.Root, ignore.FileName))
	var dirErrs []error
	return buildScripts(cfg, ign, &dirErrs)
}

// CountTargets returns how many asset files a scan would read.
func CountTargets(cfg Config) (int, error) {
	ign, _ := ignore.Load(filepath.Join(cfg.Root, ignore.FileName))
	var dirErrs []error
	files, err := assetFiles(cfg, ign, &dirErrs)
	return len(files), err
}

func assetFiles(cfg Config, ign ignore.Matcher, dirErrs *[]error) ([]target, error) {
	record := func(err error) { *dirErrs = append(*dirErrs, err) }
	var files []target
	for _, sub := range []string{AssetsDir, PackagesDir} {
		if !isDir(filepath.Join(cfg.Root, sub)) {
			continue
		}
		found, err := walkTree(cfg, ign, sub, AssetExt, record)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", sub, err)
		}
		files = append(files, found...)
	}
	return files, nil
}

func buildAssets(cfg Config, ign ignore.Matcher, dirErrs *[]error) ([]types.AssetCatalogEntry, []string, error) {
	files, err := assetFiles(cfg, ign, dirErrs)
	if err != nil {
		return nil, nil, err
	}
	table := cfg.Types
	if table == nil {
		table = octhash.Default()
	}

	total := len(files)
	entries := make([]types.AssetCatalogEntry, 0, total)
	var skipped []string
	for i, f := range files {
		h, err := header.ReadFile(f.full)
		if err != nil {
			log.Debug().Err(err).Str("path", f.rel).Msg("skipping asset")
			skipped = append(skipped, f.rel)
		} else {
			entries = append(entries, types.AssetCatalogEntry{
				Name:         stripExt(path.Base(f.rel), AssetExt),
				TypeName:     table.Name(h.TypeID),
				UUID:         h.UUID,
				RelativePath: f.rel,
				EnginePath:   stripExt(f.rel, AssetExt),
			})
		}
		if cfg.Progress != nil {
			cfg.Progress(i+1, total)
		}
	}
	return entries, skipped, nil
}

func buildScripts(cfg Config, ign ignore.Matcher, dirErrs *[]error) ([]string, error) {
	record := func(err error) { *dirErrs = append(*dirErrs, err) }
	var subs []string
	if isDir(filepath.Join(cfg.Root, ScriptsDir)) {
		subs = append(subs, ScriptsDir)
	}
	subs = append(subs, packageScriptDirs(cfg.Root)...)

	scripts := []string{}
	for _, sub := range subs {
		found, err := walkTree(cfg, ign, sub, ScriptExt, record)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", filepath.ToSlash(sub), err)
		}
		for _, f := range found {
			scripts = append(scripts, f.rel)
		}
	}
	return scripts, nil
}
