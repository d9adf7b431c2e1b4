// # internal/discover/scanner_test.go
package discover

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"docgen/internal/config"
)

func seedTree(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	files := []string{
		"Main.java",
		"README.md",
		"Skip.java",
		"sub/Deep.java",
		"target/Generated.java",
		"a/b/Deeper.java",
	}
	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("class X {}\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func isJava(path string) bool {
	return strings.HasSuffix(path, ".java")
}

func relAll(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestScanRecursive(t *testing.T) {
	dir := seedTree(t)

	s, err := NewScanner(config.Discover{
		Recursive: true,
		MaxDepth:  20,
		Exclude: config.Exclude{
			Dirs:  []string{"target"},
			Files: []string{"Skip*"},
		},
	}, isJava)
	if err != nil {
		t.Fatal(err)
	}

	files, err := s.Scan([]string{dir, dir})
	if err != nil {
		t.Fatal(err)
	}

	got := relAll(t, dir, files)
	want := []string{"Main.java", "a/b/Deeper.java", "sub/Deep.java"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("file %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestScanNonRecursive(t *testing.T) {
	dir := seedTree(t)

	s, err := NewScanner(config.Discover{Recursive: false, MaxDepth: 20}, isJava)
	if err != nil {
		t.Fatal(err)
	}

	files, err := s.Scan([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	got := relAll(t, dir, files)
	if len(got) != 2 || got[0] != "Main.java" || got[1] != "Skip.java" {
		t.Errorf("expected only root files, got %v", got)
	}
}

func TestScanMaxDepth(t *testing.T) {
	dir := seedTree(t)

	s, err := NewScanner(config.Discover{Recursive: true, MaxDepth: 2}, isJava)
	if err != nil {
		t.Fatal(err)
	}

	files, err := s.Scan([]string{dir})
	if err != nil {
		t.Fatal(err)
	}

	got := relAll(t, dir, files)
	for _, f := range got {
		if f == "a/b/Deeper.java" {
			t.Errorf("expected depth limit to stop before a/b, got %v", got)
		}
	}
	found := false
	for _, f := range got {
		if f == "sub/Deep.java" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected sub/Deep.java within depth 2, got %v", got)
	}
}

func TestScanMissingRoot(t *testing.T) {
	s, err := NewScanner(config.Discover{Recursive: true, MaxDepth: 20}, isJava)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Scan([]string{filepath.Join(t.TempDir(), "nope")}); err == nil {
		t.Fatal("expected an error for a missing root")
	}
}

func TestNewScannerBadPattern(t *testing.T) {
	_, err := NewScanner(config.Discover{
		Exclude: config.Exclude{Dirs: []string{"["}},
	}, isJava)
	if err == nil {
		t.Fatal("expected an error for an invalid pattern")
	}
}
