// Package git reads best-effort repository metadata for a project root.
package git

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
)

// Stamp identifies the revision a catalog was built from. Fields are empty
// when the root is not inside a repository.
type Stamp struct {
	Repo   string `json:"repo,omitempty"`
	Commit string `json:"commit,omitempty"`
	Branch string `json:"branch,omitempty"`
}

// Empty reports whether no metadata was found.
func (s Stamp) Empty() bool { return s.Repo == "" && s.Commit == "" && s.Branch == "" }

// ShortCommit is the first 8 characters of the commit hash.
func (s Stamp) ShortCommit() string {
	if len(s.Commit) > 8 {
		return s.Commit[:8]
	}
	return s.Commit
}

func validateRoot(root string) (string, error) {
	if strings.ContainsRune(root, 0) {
		return "", fmt.Errorf("invalid path: contains null byte")
	}
	abs, err := filepath.Abs(filepath.Clean(root))
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("cannot access path %q: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path is not a directory: %s", root)
	}
	return abs, nil
}

// RepoMetadata returns the origin, HEAD commit and branch for root. Parent
// directories are searched for the repository, so a project nested inside a
// larger checkout is stamped too.
func RepoMetadata(root string) Stamp {
	validRoot, err := validateRoot(root)
	if err != nil {
		return Stamp{}
	}
	repo, err := gogit.PlainOpenWithOptions(validRoot, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return Stamp{}
	}

	var st Stamp
	if rem, err := repo.Remote("origin"); err == nil {
		if urls := rem.Config().URLs; len(urls) > 0 {
			st.Repo = shortRemote(urls[0])
		}
	}
	if head, err := repo.Head(); err == nil {
		st.Commit = head.Hash().String()
		if head.Name().IsBranch() {
			st.Branch = head.Name().Short()
		}
	}
	return st
}

// shortRemote keeps owner/name for the common hosting URL forms.
func shortRemote(s string) string {
	s = strings.TrimSuffix(strings.TrimSpace(s), ".git")
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
		if j := strings.Index(s, "/"); j >= 0 {
			s = s[j+1:]
		}
		return s
	}
	if i := strings.LastIndex(s, ":"); i >= 0 {
		s = s[i+1:]
	}
	return s
}
