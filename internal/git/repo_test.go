package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepoMetadata(t *testing.T) {
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	_, err = repo.CreateRemote(&gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{"git@github.com:octave-engine/demo.git"},
	})
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Scripts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Scripts", "A.lua"), []byte("A = {}"), 0o644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("Scripts/A.lua")
	require.NoError(t, err)
	hash, err := wt.Commit("init", &gogit.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	st := RepoMetadata(dir)
	assert.Equal(t, hash.String(), st.Commit)
	assert.Equal(t, "master", st.Branch)
	assert.Equal(t, "octave-engine/demo", st.Repo)
	assert.Len(t, st.ShortCommit(), 8)

	nested := RepoMetadata(filepath.Join(dir, "Scripts"))
	assert.Equal(t, st.Commit, nested.Commit)
}

func TestRepoMetadata_NotARepo(t *testing.T) {
	assert.True(t, RepoMetadata(t.TempDir()).Empty())
	assert.True(t, RepoMetadata(filepath.Join(t.TempDir(), "missing")).Empty())
}

func TestShortRemote(t *testing.T) {
	cases := map[string]string{
		"git@github.com:owner/name.git":     "owner/name",
		"https://github.com/owner/name.git": "owner/name",
		"https://gitlab.example.com/g/s/p":  "g/s/p",
		"":                                  "",
	}
	for in, want := range cases {
		assert.Equal(t, want, shortRemote(in), in)
	}
}
