// # internal/discover/scanner.go
package discover

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"docgen/internal/config"
)

// Scanner finds source files under the configured roots, honoring exclude
// patterns and the directory descent limit. Directory and file excludes
// match against the base name, not the full path.
type Scanner struct {
	recursive bool
	maxDepth  int
	dirGlobs  []glob.Glob
	fileGlobs []glob.Glob
	supported func(path string) bool
}

// NewScanner compiles the exclude patterns once. The supported callback
// decides which files count as sources, e.g. the parser's path check.
func NewScanner(cfg config.Discover, supported func(path string) bool) (*Scanner, error) {
	s := &Scanner{recursive: cfg.Recursive, maxDepth: cfg.MaxDepth, supported: supported}

	for _, p := range cfg.Exclude.Dirs {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude dir pattern %q: %w", p, err)
		}
		s.dirGlobs = append(s.dirGlobs, g)
	}
	for _, p := range cfg.Exclude.Files {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude file pattern %q: %w", p, err)
		}
		s.fileGlobs = append(s.fileGlobs, g)
	}
	return s, nil
}

// Scan walks the roots and returns every matching file, in deterministic
// order. Duplicate roots are collapsed first.
func (s *Scanner) Scan(roots []string) ([]string, error) {
	unique := make(map[string]bool, len(roots))
	for _, r := range roots {
		unique[filepath.Clean(r)] = true
	}
	finalRoots := make([]string, 0, len(unique))
	for r := range unique {
		finalRoots = append(finalRoots, r)
	}
	sort.Strings(finalRoots)

	var files []string
	for _, root := range finalRoots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			base := filepath.Base(path)
			if d.IsDir() {
				if path == root {
					return nil
				}
				for _, g := range s.dirGlobs {
					if g.Match(base) {
						return filepath.SkipDir
					}
				}
				if !s.recursive {
					return filepath.SkipDir
				}
				// Depth 1 is the root's immediate entries; a directory at
				// the limit is not descended into.
				if s.maxDepth > 0 && s.depth(root, path) >= s.maxDepth {
					return filepath.SkipDir
				}
				return nil
			}

			if !s.supported(path) {
				return nil
			}
			for _, g := range s.fileGlobs {
				if g.Match(base) {
					return nil
				}
			}

			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

func (s *Scanner) depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
