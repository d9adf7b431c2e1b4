// # internal/analysis/aggregate.go
package analysis

import (
	"path"
	"time"

	"github.com/google/uuid"

	"docgen/internal/history"
	"docgen/internal/shared/util"
	"docgen/internal/structure"
)

// FileAnalysis pairs one source file's extracted structure with the
// commits that touched it.
type FileAnalysis struct {
	File    *structure.File  `json:"file"`
	Commits []history.Commit `json:"commits,omitempty"`
}

// CommitCount returns how many commits touched the file.
func (fa *FileAnalysis) CommitCount() int {
	return len(fa.Commits)
}

// LastChange returns the newest commit touching the file, or nil.
// Commits are stored newest first.
func (fa *FileAnalysis) LastChange() *history.Commit {
	if len(fa.Commits) == 0 {
		return nil
	}
	return &fa.Commits[0]
}

// ProjectAnalysis is the joined output of a full run: every discovered
// file with its structure and history, plus project-wide rollups.
type ProjectAnalysis struct {
	ProjectName  string           `json:"project_name"`
	RunID        string           `json:"run_id"`
	GeneratedAt  time.Time        `json:"generated_at"`
	Files        []FileAnalysis   `json:"files"`
	Commits      []history.Commit `json:"commits,omitempty"`
	HistoryError string           `json:"history_error,omitempty"`
	Summary      Summary          `json:"summary"`
}

// Summary is the project-wide rollup shown at the top of reports.
type Summary struct {
	Files           int              `json:"files"`
	ParsedFiles     int              `json:"parsed_files"`
	FailedFiles     int              `json:"failed_files"`
	Types           int              `json:"types"`
	TypesByKind     map[string]int   `json:"types_by_kind,omitempty"`
	DocumentedTypes int              `json:"documented_types"`
	Methods         int              `json:"methods"`
	Fields          int              `json:"fields"`
	History         *history.Summary `json:"history,omitempty"`
}

// Aggregate joins parsed files with the extracted commit list and
// computes the project summary. The commit slice may be nil when
// history is disabled or unavailable.
func Aggregate(projectName string, files []*structure.File, commits []history.Commit) *ProjectAnalysis {
	pa := &ProjectAnalysis{
		ProjectName: projectName,
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Files:       make([]FileAnalysis, 0, len(files)),
		Commits:     commits,
	}

	for _, f := range files {
		fa := FileAnalysis{File: f}
		if len(commits) > 0 {
			fa.Commits = CommitsForFile(f.Path, commits)
		}
		pa.Files = append(pa.Files, fa)
	}

	pa.Summary = summarize(pa)
	return pa
}

// CommitsForFile filters commits down to those touching filePath by the
// loose path join used when structure and history record paths against
// different roots: exact match after normalization, one path being a
// segment suffix of the other, or bare filename equality. Files sharing
// a name in separate directories can over-match; that is the tradeoff
// for surviving mixed absolute and repo-relative paths.
func CommitsForFile(filePath string, commits []history.Commit) []history.Commit {
	var out []history.Commit
	for _, c := range commits {
		if commitTouchesLoosely(c, filePath) {
			out = append(out, c)
		}
	}
	return out
}

func commitTouchesLoosely(c history.Commit, filePath string) bool {
	for _, fc := range c.FileChanges {
		if pathsMatchLoosely(filePath, fc.Path) || pathsMatchLoosely(filePath, fc.OldPath) {
			return true
		}
	}
	return false
}

func pathsMatchLoosely(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	a = util.NormalizePatternPath(a)
	b = util.NormalizePatternPath(b)
	if a == b || util.HasPathSuffix(a, b) || util.HasPathSuffix(b, a) {
		return true
	}
	return path.Base(a) == path.Base(b)
}

func summarize(pa *ProjectAnalysis) Summary {
	s := Summary{Files: len(pa.Files), TypesByKind: map[string]int{}}
	for _, fa := range pa.Files {
		if fa.File == nil {
			continue
		}
		if !fa.File.Parsed {
			s.FailedFiles++
			continue
		}
		s.ParsedFiles++
		for _, t := range fa.File.FlattenTypes() {
			s.Types++
			s.TypesByKind[string(t.Kind)]++
			if t.Documentation != "" {
				s.DocumentedTypes++
			}
		}
		s.Methods += fa.File.MethodCount()
		s.Fields += fa.File.FieldCount()
	}
	if len(s.TypesByKind) == 0 {
		s.TypesByKind = nil
	}
	if len(pa.Commits) > 0 {
		hs := history.Summarize(pa.Commits, 5)
		s.History = &hs
	}
	return s
}
