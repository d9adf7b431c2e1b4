package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizePatternPath(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Empty", input: "", expected: ""},
		{name: "Dot", input: ".", expected: ""},
		{name: "Trim", input: "  ./src/Main.java  ", expected: "src/Main.java"},
		{name: "Relative", input: "src/../lib", expected: "lib"},
		{name: "Backslashes", input: `src\model\User.java`, expected: "src/model/User.java"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizePatternPath(tc.input); got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestHasPathPrefix(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		path     string
		prefix   string
		expected bool
	}{
		{name: "Exact", path: "src/model", prefix: "src/model", expected: true},
		{name: "Nested", path: "src/model/User.java", prefix: "src/model", expected: true},
		{name: "Neighbor", path: "src/modeling", prefix: "src/model", expected: false},
		{name: "Shorter", path: "src", prefix: "src/model", expected: false},
		{name: "MixedSeparators", path: `src\model\User.java`, prefix: "src/model", expected: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := HasPathPrefix(tc.path, tc.prefix); got != tc.expected {
				t.Fatalf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestHasPathSuffix(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		path     string
		suffix   string
		expected bool
	}{
		{name: "Exact", path: "model/User.java", suffix: "model/User.java", expected: true},
		{name: "Deeper", path: "src/model/User.java", suffix: "model/User.java", expected: true},
		{name: "BareName", path: "src/model/User.java", suffix: "User.java", expected: true},
		{name: "PartialSegment", path: "src/PowerUser.java", suffix: "User.java", expected: false},
		{name: "Longer", path: "User.java", suffix: "model/User.java", expected: false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := HasPathSuffix(tc.path, tc.suffix); got != tc.expected {
				t.Fatalf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestSortedStringKeys(t *testing.T) {
	t.Parallel()

	m := map[string]int{"b": 2, "a": 1, "c": 3}
	keys := SortedStringKeys(m)
	expected := []string{"a", "b", "c"}
	if len(keys) != len(expected) {
		t.Fatalf("expected %d keys, got %d", len(expected), len(keys))
	}
	for i, key := range expected {
		if keys[i] != key {
			t.Fatalf("expected %q at %d, got %q", key, i, keys[i])
		}
	}
}

func TestWriteFileWithDirs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "docs.md")
	content := []byte("# Docs")

	if err := WriteFileWithDirs(path, content, 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(got) != string(content) {
		t.Fatalf("expected %q, got %q", string(content), string(got))
	}
}

func TestWriteStringWithDirs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "docs.json")

	if err := WriteStringWithDirs(path, "{}", 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(got) != "{}" {
		t.Fatalf("expected %q, got %q", "{}", string(got))
	}
}

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "api.md")

	if err := WriteFileAtomic(path, []byte("# v1"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := WriteFileAtomic(path, []byte("# v2"), 0o644); err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(got) != "# v2" {
		t.Fatalf("expected %q, got %q", "# v2", string(got))
	}

	leftovers, err := filepath.Glob(filepath.Join(dir, "nested", "*.tmp"))
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}
	if len(leftovers) != 0 {
		t.Fatalf("expected no temp files left behind, got %v", leftovers)
	}
}
