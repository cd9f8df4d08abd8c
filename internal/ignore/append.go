package ignore

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// Append ensures pattern is a line of the ignore file name under root,
// creating the file if missing. It reports whether the file changed.
func Append(root, name, pattern string) (bool, error) {
	pattern = strings.TrimSpace(pattern)
	p := filepath.Join(root, name)
	existing := map[string]bool{}
	endsWithNewline := true
	if b, err := os.ReadFile(p); err == nil {
		sc := bufio.NewScanner(strings.NewReader(string(b)))
		for sc.Scan() {
			existing[strings.TrimSpace(sc.Text())] = true
		}
		endsWithNewline = len(b) == 0 || b[len(b)-1] == '\n'
	} else if !os.IsNotExist(err) {
		return false, err
	}
	if pattern == "" || existing[pattern] {
		return false, nil
	}

	f, err := os.OpenFile(p, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return false, err
	}
	defer f.Close()
	line := pattern + "\n"
	if !endsWithNewline {
		line = "\n" + line
	}
	if _, err := f.WriteString(line); err != nil {
		return false, err
	}
	return true, nil
}

// Patterns returns the matcher's patterns in file order.
func (m Matcher) Patterns() []string {
	return append([]string(nil), m.patterns...)
}
