// # internal/history/extract.go
package history

import (
	"context"
	"log/slog"
	"strings"

	git "github.com/go-git/go-git/v6"
	fdiff "github.com/go-git/go-git/v6/plumbing/format/diff"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/go-git/go-git/v6/plumbing/storer"
	"github.com/go-git/go-git/v6/utils/merkletrie"

	"docgen/internal/core/errors"
)

// Extractor walks a repository's commit log and computes each commit's file
// changes against the first-parent baseline.
type Extractor struct {
	repo          *Repository
	detectRenames bool

	// Progress, when set, receives the running number of extracted commits.
	Progress func(n int)
}

func NewExtractor(repo *Repository, detectRenames bool) *Extractor {
	return &Extractor{repo: repo, detectRenames: detectRenames}
}

// Commits returns up to limit commits starting at HEAD, newest first; limit 0
// means unlimited. A commit whose diff fails still appears, with an empty
// change list; only a failed walk aborts the call.
func (e *Extractor) Commits(ctx context.Context, limit int) ([]Commit, error) {
	repo, err := e.repo.handle()
	if err != nil {
		return nil, err
	}

	iter, err := repo.Log(&git.LogOptions{})
	if err != nil {
		return nil, errors.AddContext(
			errors.Wrap(err, errors.CodeRepository, "walking commit log"),
			errors.CtxRepository, e.repo.Path)
	}
	defer iter.Close()

	var commits []Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		commits = append(commits, e.extractCommit(ctx, c))
		if e.Progress != nil {
			e.Progress(len(commits))
		}
		if limit > 0 && len(commits) >= limit {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, errors.AddContext(
			errors.Wrap(err, errors.CodeRepository, "walking commit log"),
			errors.CtxRepository, e.repo.Path)
	}
	return commits, nil
}

func (e *Extractor) extractCommit(ctx context.Context, c *object.Commit) Commit {
	commit := Commit{
		Hash:      c.Hash.String(),
		Author:    Signature{Name: c.Author.Name, Email: c.Author.Email, When: c.Author.When},
		Committer: Signature{Name: c.Committer.Name, Email: c.Committer.Email, When: c.Committer.When},
		Message:   c.Message,
	}
	for _, p := range c.ParentHashes {
		commit.Parents = append(commit.Parents, p.String())
	}

	changes, err := e.diffAgainstFirstParent(ctx, c)
	if err != nil {
		slog.Warn("failed to diff commit", "commit", commit.ShortHash(), "error", err)
		return commit
	}
	commit.FileChanges = changes
	return commit
}

// diffAgainstFirstParent diffs the commit's tree against its first parent's
// tree, or against the empty tree for root commits. Merge commits are diffed
// against the first parent only; the other parents' contributions are not
// attributed to the merge.
func (e *Extractor) diffAgainstFirstParent(ctx context.Context, c *object.Commit) ([]FileChange, error) {
	tree, err := c.Tree()
	if err != nil {
		return nil, err
	}

	var parentTree *object.Tree
	if c.NumParents() > 0 {
		parent, err := c.Parent(0)
		if err != nil {
			return nil, err
		}
		parentTree, err = parent.Tree()
		if err != nil {
			return nil, err
		}
	}

	opts := &object.DiffTreeOptions{}
	if e.detectRenames {
		opts = object.DefaultDiffTreeOptions
	}
	changes, err := object.DiffTreeWithOptions(ctx, parentTree, tree, opts)
	if err != nil {
		return nil, err
	}

	out := make([]FileChange, 0, len(changes))
	for _, change := range changes {
		fc, err := classifyChange(change)
		if err != nil {
			slog.Warn("failed to classify change", "commit", c.Hash.String()[:7], "error", err)
			continue
		}
		fc.LinesAdded, fc.LinesDeleted = countChangeLines(ctx, change)
		out = append(out, fc)
	}
	return out, nil
}

// classifyChange maps a tree-diff entry onto the change kinds. Deletes keep
// the old path since there is no new side; renames carry both paths.
func classifyChange(change *object.Change) (FileChange, error) {
	action, err := change.Action()
	if err != nil {
		return FileChange{}, err
	}
	switch action {
	case merkletrie.Insert:
		return FileChange{Path: change.To.Name, Kind: ChangeAdd}, nil
	case merkletrie.Delete:
		return FileChange{Path: change.From.Name, Kind: ChangeDelete}, nil
	default:
		fc := FileChange{Path: change.To.Name, Kind: ChangeModify}
		if change.From.Name != "" && change.From.Name != change.To.Name {
			fc.Kind = ChangeRename
			fc.OldPath = change.From.Name
		}
		return fc, nil
	}
}

// countChangeLines sums edit-span lengths from the change's patch. Binary
// files and patch failures degrade to zero counts instead of failing the
// commit.
func countChangeLines(ctx context.Context, change *object.Change) (added, deleted int) {
	patch, err := change.PatchContext(ctx)
	if err != nil {
		slog.Debug("line counts unavailable", "path", changePath(change), "error", err)
		return 0, 0
	}
	return sumPatchLines(patch.FilePatches())
}

func sumPatchLines(patches []fdiff.FilePatch) (added, deleted int) {
	for _, fp := range patches {
		if fp.IsBinary() {
			continue
		}
		for _, chunk := range fp.Chunks() {
			switch chunk.Type() {
			case fdiff.Add:
				added += countLines(chunk.Content())
			case fdiff.Delete:
				deleted += countLines(chunk.Content())
			}
		}
	}
	return added, deleted
}

// countLines counts newline-terminated lines plus a trailing unterminated
// line.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}

func changePath(change *object.Change) string {
	if change.To.Name != "" {
		return change.To.Name
	}
	return change.From.Name
}
