package catalog

import (
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

const (
	AssetExt  = ".oct"
	ScriptExt = ".lua"
)

// Project subdirectories, relative to the root.
const (
	AssetsDir   = "Assets"
	PackagesDir = "Packages"
	ScriptsDir  = "Scripts"
)

// vcsDir is never descended into.
const vcsDir = ".git"

func isDefaultDirExcluded(name string) bool {
	return name == vcsDir
}

func hasExt(name, ext string) bool {
	return strings.EqualFold(filepath.Ext(name), ext)
}

// stripExt removes ext from p when present, matching case-insensitively.
func stripExt(p, ext string) string {
	if hasExt(p, ext) {
		return p[:len(p)-len(ext)]
	}
	return p
}

// allowedByGlobs returns false when relPath matches any of the comma
// separated exclude globs. Matching uses forward slashes and also tries the
// base name, so "*.bak.oct" works at any depth.
func allowedByGlobs(relPath string, excludeGlobs string) bool {
	excludes := parseGlobsList(excludeGlobs)
	if len(excludes) == 0 {
		return true
	}
	return !matchAnyGlob(filepath.ToSlash(relPath), excludes)
}

func parseGlobsList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p, trimGlobPrefix(p))
		}
	}
	return out
}

func matchAnyGlob(pathToMatch string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, pathToMatch); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(pathToMatch)); ok {
			return true
		}
	}
	return false
}

func trimGlobPrefix(g string) string {
	s := strings.TrimPrefix(g, "./")
	for strings.HasPrefix(s, "**/") {
		s = strings.TrimPrefix(s, "**/")
	}
	return s
}
