// # internal/history/repository.go
package history

import (
	"time"

	git "github.com/go-git/go-git/v6"

	"docgen/internal/core/errors"
)

// Repository wraps one open git repository. Open it once, run any number of
// extraction calls against it, then release it with Close; afterwards every
// commit-producing operation fails with a repository error.
type Repository struct {
	Path            string
	Connected       bool
	ConnectionError string

	repo *git.Repository
}

// Open resolves the repository at path, searching parent directories for the
// .git directory the way the git CLI does. A failed open is recorded on the
// returned value instead of being returned as an error, so callers can
// report it per repository and keep going.
func Open(path string) *Repository {
	r := &Repository{Path: path}
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		r.ConnectionError = err.Error()
		return r
	}
	r.repo = repo
	r.Connected = true
	return r
}

// Close releases the handle and invalidates the repository for further
// extraction.
func (r *Repository) Close() {
	r.repo = nil
	r.Connected = false
}

// Head returns the current HEAD commit hash and its committer time.
func (r *Repository) Head() (string, time.Time, error) {
	repo, err := r.handle()
	if err != nil {
		return "", time.Time{}, err
	}

	ref, err := repo.Head()
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, errors.CodeRepository, "resolving HEAD")
	}
	commit, err := repo.CommitObject(ref.Hash())
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, errors.CodeRepository, "reading HEAD commit")
	}
	return ref.Hash().String(), commit.Committer.When.UTC(), nil
}

func (r *Repository) handle() (*git.Repository, error) {
	if r.repo == nil {
		msg := "repository closed"
		if r.ConnectionError != "" {
			msg = "repository not connected: " + r.ConnectionError
		}
		return nil, errors.AddContext(errors.New(errors.CodeRepository, msg), errors.CtxRepository, r.Path)
	}
	return r.repo, nil
}
