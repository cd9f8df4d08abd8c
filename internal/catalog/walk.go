package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/octave-engine/octconnect/internal/ignore"
	"github.com/rs/zerolog/log"
)

type target struct {
	full string
	rel  string // slash separated, relative to the project root
}

// walkTree collects files under root/sub whose extension is ext. Entries
// come back in lexical order per directory, so a fixed tree always yields
// the same sequence. Directories that cannot be read are reported through
// dirErr and skipped; the walk itself only fails if sub cannot be opened.
func walkTree(cfg Config, ign ignore.Matcher, sub, ext string, dirErr func(error)) ([]target, error) {
	base := filepath.Join(cfg.Root, sub)
	var out []target
	err := filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == base {
				return err
			}
			dirErr(fmt.Errorf("read %s: %w", p, err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if p != base && isDefaultDirExcluded(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !hasExt(d.Name(), ext) {
			return nil
		}
		rel, err := filepath.Rel(cfg.Root, p)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if !allowedByGlobs(rel, cfg.ExcludeGlobs) || ign.Match(rel) {
			log.Debug().Str("path", rel).Msg("excluded")
			return nil
		}
		out = append(out, target{full: p, rel: rel})
		return nil
	})
	return out, err
}

// isDir reports whether p exists and is a directory.
func isDir(p string) bool {
	st, err := os.Stat(p)
	return err == nil && st.IsDir()
}

// packageScriptDirs lists Packages/<pkg>/Scripts for every package that has
// one, sorted by package name.
func packageScriptDirs(root string) []string {
	entries, err := os.ReadDir(filepath.Join(root, PackagesDir))
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		sub := filepath.Join(PackagesDir, e.Name(), ScriptsDir)
		if isDir(filepath.Join(root, sub)) {
			out = append(out, sub)
		}
	}
	sort.Strings(out)
	return out
}
