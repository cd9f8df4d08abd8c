package ignore

import (
	"bufio"
	"os"
	"path"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// FileName is the per-project ignore file read from the project root.
const FileName = ".octconnectignore"

// Matcher holds gitignore-style patterns. A trailing slash matches a
// directory and everything below it; a pattern without a slash matches the
// base name at any depth.
type Matcher struct {
	patterns []string
}

// Load reads patterns from p. A missing file yields an empty matcher and the
// open error, which callers may ignore.
func Load(p string) (Matcher, error) {
	f, err := os.Open(p)
	if err != nil {
		return Matcher{}, err
	}
	defer f.Close()
	var m Matcher
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m.patterns = append(m.patterns, line)
	}
	return m, sc.Err()
}

// New builds a matcher from in-memory patterns.
func New(patterns ...string) Matcher {
	return Matcher{patterns: append([]string(nil), patterns...)}
}

// Match reports whether the slash-separated relative path rel is ignored.
func (m Matcher) Match(rel string) bool {
	rel = strings.TrimPrefix(strings.ReplaceAll(rel, "\\", "/"), "./")
	for _, p := range m.patterns {
		if strings.HasSuffix(p, "/") {
			dir := strings.TrimSuffix(p, "/")
			if strings.HasPrefix(rel, dir+"/") || strings.Contains(rel, "/"+dir+"/") {
				return true
			}
			continue
		}
		if !strings.Contains(p, "/") {
			if ok, _ := doublestar.Match(p, path.Base(rel)); ok {
				return true
			}
			continue
		}
		if ok, _ := doublestar.Match(strings.TrimPrefix(p, "/"), rel); ok {
			return true
		}
	}
	return false
}

// Empty reports whether the matcher has no patterns.
func (m Matcher) Empty() bool { return len(m.patterns) == 0 }
