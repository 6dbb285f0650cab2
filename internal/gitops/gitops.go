// Package gitops versions a fibscope workspace with git.
package gitops

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Author identifies who commits workspace changes.
type Author struct {
	Name  string
	Email string
}

// DefaultAuthor is used when the caller has no better identity.
var DefaultAuthor = Author{Name: "fibscope", Email: "fibscope@localhost"}

func (a Author) String() string { return fmt.Sprintf("%s <%s>", a.Name, a.Email) }

// ErrNothingToCommit is returned by Commit when the staged tree is unchanged.
var ErrNothingToCommit = errors.New("nothing to commit")

// Repo is a git working tree.
type Repo struct {
	Dir    string
	Author Author
}

// Init creates a git repository at dir, or opens it if one exists.
func Init(ctx context.Context, dir string) (*Repo, error) {
	if !IsRepo(dir) {
		if _, err := git(ctx, dir, nil, "init", "--quiet"); err != nil {
			return nil, err
		}
	}
	return &Repo{Dir: dir, Author: DefaultAuthor}, nil
}

// IsRepo reports whether dir is the root of a git repository.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// Commit stages paths (everything when none are given) and commits them.
// It returns the short hash of the new commit.
func (r *Repo) Commit(ctx context.Context, message string, paths ...string) (string, error) {
	add := []string{"add", "-A"}
	if len(paths) > 0 {
		add = append(append(add, "--"), paths...)
	}
	if _, err := git(ctx, r.Dir, nil, add...); err != nil {
		return "", err
	}
	if _, err := git(ctx, r.Dir, nil, "diff", "--cached", "--quiet"); err == nil {
		return "", ErrNothingToCommit
	}

	// The committer identity must not depend on the user's git config.
	env := []string{
		"GIT_AUTHOR_NAME=" + r.Author.Name,
		"GIT_AUTHOR_EMAIL=" + r.Author.Email,
		"GIT_COMMITTER_NAME=" + r.Author.Name,
		"GIT_COMMITTER_EMAIL=" + r.Author.Email,
	}
	if _, err := git(ctx, r.Dir, env, "commit", "--quiet", "-m", message); err != nil {
		return "", err
	}

	out, err := git(ctx, r.Dir, nil, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func git(ctx context.Context, dir string, env []string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %s: %w", args[0], strings.TrimSpace(string(out)), err)
	}
	return string(out), nil
}
