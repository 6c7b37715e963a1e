// Package testutil provides fixtures shared by chlog tests: throwaway git
// repositories and release records files.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// GitRepo is a git repository in a temporary directory.
type GitRepo struct {
	Dir  string
	Repo *git.Repository
	t    testing.TB
}

// NewGitRepo initializes a repository in dir. An empty dir uses t.TempDir().
func NewGitRepo(t testing.TB, dir string) *GitRepo {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return &GitRepo{Dir: dir, Repo: repo, t: t}
}

// Commit writes content to name, stages it and commits. Returns the commit hash.
func (r *GitRepo) Commit(name, content, message string) plumbing.Hash {
	r.t.Helper()

	path := filepath.Join(r.Dir, name)
	require.NoError(r.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(r.t, os.WriteFile(path, []byte(content), 0o644))

	wt, err := r.Repo.Worktree()
	require.NoError(r.t, err)
	_, err = wt.Add(name)
	require.NoError(r.t, err)

	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(r.t, err)
	return hash
}

// AddRemote creates a remote with the given fetch URLs.
func (r *GitRepo) AddRemote(name string, urls ...string) {
	r.t.Helper()
	_, err := r.Repo.CreateRemote(&config.RemoteConfig{Name: name, URLs: urls})
	require.NoError(r.t, err)
}

// Tag creates a lightweight tag pointing at hash.
func (r *GitRepo) Tag(name string, hash plumbing.Hash) {
	r.t.Helper()
	_, err := r.Repo.CreateTag(name, hash, nil)
	require.NoError(r.t, err)
}
