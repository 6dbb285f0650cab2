package gitops

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

func TestInit(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	repo, err := Init(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, dir, repo.Dir)
	assert.Equal(t, DefaultAuthor, repo.Author)

	_, err = os.Stat(filepath.Join(dir, ".git"))
	require.NoError(t, err, ".git directory should exist")
}

func TestInit_ExistingRepo(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	_, err := Init(context.Background(), dir)
	require.NoError(t, err)

	_, err = Init(context.Background(), dir)
	assert.NoError(t, err)
}

func TestIsRepo(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	assert.False(t, IsRepo(dir), "empty dir should not be a repo")

	_, err := Init(context.Background(), dir)
	require.NoError(t, err)
	assert.True(t, IsRepo(dir), "initialized dir should be a repo")
}

func TestCommit(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	dir := t.TempDir()
	repo, err := Init(ctx, dir)
	require.NoError(t, err)
	repo.Author = Author{Name: "Test Author", Email: "test@example.com"}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "fibscope.yaml"), []byte("report:\n  format: text\n"), 0o644))

	hash, err := repo.Commit(ctx, "init: test commit")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	out, err := git(ctx, dir, nil, "log", "--format=%s", "-1")
	require.NoError(t, err)
	assert.Contains(t, out, "init: test commit")

	out, err = git(ctx, dir, nil, "log", "--format=%an <%ae>", "-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Test Author <test@example.com>")
}

func TestCommit_OnlyNamedPaths(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	dir := t.TempDir()
	repo, err := Init(ctx, dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "tracked.txt"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "untracked.txt"), []byte("b"), 0o644))

	_, err = repo.Commit(ctx, "partial", "tracked.txt")
	require.NoError(t, err)

	out, err := git(ctx, dir, nil, "ls-files")
	require.NoError(t, err)
	assert.Contains(t, out, "tracked.txt")
	assert.NotContains(t, out, "untracked.txt")
}

func TestCommit_NothingToCommit(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	repo, err := Init(ctx, t.TempDir())
	require.NoError(t, err)

	_, err = repo.Commit(ctx, "empty")
	assert.ErrorIs(t, err, ErrNothingToCommit)
}

func TestAuthorString(t *testing.T) {
	assert.Equal(t, "fibscope <fibscope@localhost>", DefaultAuthor.String())
}
