// # internal/history/repository_test.go
package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing/object"

	"docgen/internal/core/errors"
)

// buildTestRepo creates a repository with three commits: Foo.java added with
// ten lines, then modified (three lines in, one out), then renamed to
// Bar.java unchanged.
func buildTestRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}

	commit := func(msg string, author string, when time.Time) {
		t.Helper()
		if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
			t.Fatal(err)
		}
		sig := &object.Signature{Name: author, Email: author + "@example.com", When: when}
		if _, err := wt.Commit(msg, &git.CommitOptions{Author: sig, Committer: sig}); err != nil {
			t.Fatal(err)
		}
	}

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	content := "l1\nl2\nl3\nl4\nl5\nl6\nl7\nl8\nl9\nl10\n"
	if err := os.WriteFile(filepath.Join(dir, "Foo.java"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	commit("initial", "ada", base)

	modified := "l2\nl3\nl4\nl5\nl6\nl7\nl8\nl9\nl10\na1\na2\na3\n"
	if err := os.WriteFile(filepath.Join(dir, "Foo.java"), []byte(modified), 0o644); err != nil {
		t.Fatal(err)
	}
	commit("grow file", "ada", base.Add(time.Hour))

	if err := os.Rename(filepath.Join(dir, "Foo.java"), filepath.Join(dir, "Bar.java")); err != nil {
		t.Fatal(err)
	}
	commit("rename file", "grace", base.Add(2*time.Hour))

	return dir
}

func extractAll(t *testing.T, dir string) []Commit {
	t.Helper()

	repo := Open(dir)
	if !repo.Connected {
		t.Fatalf("open failed: %s", repo.ConnectionError)
	}
	t.Cleanup(repo.Close)

	commits, err := NewExtractor(repo, true).Commits(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	return commits
}

func TestCommitsWalk(t *testing.T) {
	dir := buildTestRepo(t)
	commits := extractAll(t, dir)

	if len(commits) != 3 {
		t.Fatalf("expected 3 commits, got %d", len(commits))
	}

	// Newest first.
	if commits[0].Subject() != "rename file" || commits[2].Subject() != "initial" {
		t.Errorf("unexpected order: %q .. %q", commits[0].Subject(), commits[2].Subject())
	}

	root := commits[2]
	if len(root.Parents) != 0 || root.IsMerge() {
		t.Errorf("expected parentless root, got %v", root.Parents)
	}
	if root.Author.Name != "ada" || root.Author.Email != "ada@example.com" {
		t.Errorf("unexpected author: %+v", root.Author)
	}
	if len(root.FileChanges) != 1 {
		t.Fatalf("expected 1 change in root, got %d", len(root.FileChanges))
	}
	add := root.FileChanges[0]
	if add.Path != "Foo.java" || add.Kind != ChangeAdd {
		t.Errorf("expected Foo.java add, got %+v", add)
	}
	// Against the empty baseline every line of the file counts as added.
	if add.LinesAdded != 10 || add.LinesDeleted != 0 {
		t.Errorf("expected 10/0 lines, got %d/%d", add.LinesAdded, add.LinesDeleted)
	}

	mod := commits[1]
	if len(mod.Parents) != 1 || mod.Parents[0] != root.Hash {
		t.Errorf("expected root as parent, got %v", mod.Parents)
	}
	if len(mod.FileChanges) != 1 {
		t.Fatalf("expected 1 change, got %d", len(mod.FileChanges))
	}
	change := mod.FileChanges[0]
	if change.Path != "Foo.java" || change.Kind != ChangeModify {
		t.Errorf("expected Foo.java modify, got %+v", change)
	}
	if change.LinesAdded != 3 || change.LinesDeleted != 1 {
		t.Errorf("expected 3/1 lines, got %d/%d", change.LinesAdded, change.LinesDeleted)
	}

	ren := commits[0]
	if len(ren.FileChanges) != 1 {
		t.Fatalf("expected 1 change, got %d", len(ren.FileChanges))
	}
	moved := ren.FileChanges[0]
	if moved.Kind != ChangeRename || moved.Path != "Bar.java" || moved.OldPath != "Foo.java" {
		t.Errorf("expected Foo.java -> Bar.java rename, got %+v", moved)
	}
	if moved.LinesAdded != 0 || moved.LinesDeleted != 0 {
		t.Errorf("expected zero counts for an unchanged rename, got %d/%d", moved.LinesAdded, moved.LinesDeleted)
	}
}

func TestCommitsLimit(t *testing.T) {
	dir := buildTestRepo(t)

	repo := Open(dir)
	t.Cleanup(repo.Close)

	commits, err := NewExtractor(repo, true).Commits(context.Background(), 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(commits) != 2 {
		t.Fatalf("expected 2 commits, got %d", len(commits))
	}
	if commits[0].Subject() != "rename file" || commits[1].Subject() != "grow file" {
		t.Errorf("unexpected commits: %q, %q", commits[0].Subject(), commits[1].Subject())
	}
}

func TestRenameDetectionDisabled(t *testing.T) {
	dir := buildTestRepo(t)

	repo := Open(dir)
	t.Cleanup(repo.Close)

	commits, err := NewExtractor(repo, false).Commits(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(commits) != 1 {
		t.Fatalf("expected 1 commit, got %d", len(commits))
	}

	// Without detection the rename decomposes into a delete plus an add.
	kinds := map[ChangeKind]int{}
	for _, fc := range commits[0].FileChanges {
		kinds[fc.Kind]++
	}
	if kinds[ChangeAdd] != 1 || kinds[ChangeDelete] != 1 || kinds[ChangeRename] != 0 {
		t.Errorf("expected one add and one delete, got %v", kinds)
	}
}

func TestOpenMissingRepository(t *testing.T) {
	repo := Open(filepath.Join(t.TempDir(), "nowhere"))
	if repo.Connected {
		t.Fatal("expected disconnected repository")
	}
	if repo.ConnectionError == "" {
		t.Fatal("expected a connection error")
	}

	_, err := NewExtractor(repo, true).Commits(context.Background(), 0)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.IsCode(err, errors.CodeRepository) {
		t.Errorf("expected REPOSITORY_ERROR, got %v", err)
	}
}

func TestCloseInvalidates(t *testing.T) {
	dir := buildTestRepo(t)

	repo := Open(dir)
	ex := NewExtractor(repo, true)
	if _, err := ex.Commits(context.Background(), 1); err != nil {
		t.Fatal(err)
	}

	repo.Close()
	if repo.Connected {
		t.Error("expected Connected to drop after Close")
	}
	if _, err := ex.Commits(context.Background(), 1); err == nil {
		t.Error("expected an error after Close")
	}
}

func TestExtractionProgress(t *testing.T) {
	dir := buildTestRepo(t)

	repo := Open(dir)
	t.Cleanup(repo.Close)

	ex := NewExtractor(repo, true)
	var seen []int
	ex.Progress = func(n int) { seen = append(seen, n) }

	if _, err := ex.Commits(context.Background(), 0); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 3 || seen[0] != 1 || seen[2] != 3 {
		t.Errorf("expected progress 1..3, got %v", seen)
	}
}

func TestHead(t *testing.T) {
	dir := buildTestRepo(t)

	repo := Open(dir)
	t.Cleanup(repo.Close)

	hash, when, err := repo.Head()
	if err != nil {
		t.Fatalf("Head failed: %v", err)
	}
	if len(hash) != 40 {
		t.Errorf("Expected full hash, got %q", hash)
	}
	if when.IsZero() {
		t.Error("Expected committer time for HEAD")
	}

	commits := extractAll(t, dir)
	if hash != commits[0].Hash {
		t.Errorf("Expected HEAD to match newest commit %s, got %s", commits[0].Hash, hash)
	}

	repo.Close()
	if _, _, err := repo.Head(); err == nil {
		t.Error("Expected error from Head after Close")
	}
}
