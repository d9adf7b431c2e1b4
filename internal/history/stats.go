// # internal/history/stats.go
package history

import (
	"sort"
	"time"
)

// RankedFile is one entry of the most-changed-files ranking.
type RankedFile struct {
	Path    string `json:"path"`
	Changes int    `json:"changes"`
}

// RankedAuthor is one entry of the top-contributors ranking.
type RankedAuthor struct {
	Name    string `json:"name"`
	Commits int    `json:"commits"`
}

// Summary bundles the simple reductions over a commit list that reports
// consume.
type Summary struct {
	Commits      int            `json:"commits"`
	Merges       int            `json:"merges"`
	Authors      int            `json:"authors"`
	LinesAdded   int            `json:"lines_added"`
	LinesDeleted int            `json:"lines_deleted"`
	FirstCommit  time.Time      `json:"first_commit"`
	LastCommit   time.Time      `json:"last_commit"`
	TopFiles     []RankedFile   `json:"top_files,omitempty"`
	TopAuthors   []RankedAuthor `json:"top_authors,omitempty"`
}

// AuthorCommits counts commits per author name.
func AuthorCommits(commits []Commit) map[string]int {
	out := make(map[string]int)
	for _, c := range commits {
		out[c.Author.Name]++
	}
	return out
}

// FileChangeCounts counts how many commits touched each path.
func FileChangeCounts(commits []Commit) map[string]int {
	out := make(map[string]int)
	for _, c := range commits {
		for _, fc := range c.FileChanges {
			out[fc.Path]++
		}
	}
	return out
}

// MostChangedFiles ranks paths by how many commits touched them, ties broken
// by path for stable output. Top 0 means all.
func MostChangedFiles(commits []Commit, top int) []RankedFile {
	counts := FileChangeCounts(commits)
	ranked := make([]RankedFile, 0, len(counts))
	for path, n := range counts {
		ranked = append(ranked, RankedFile{Path: path, Changes: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Changes != ranked[j].Changes {
			return ranked[i].Changes > ranked[j].Changes
		}
		return ranked[i].Path < ranked[j].Path
	})
	if top > 0 && len(ranked) > top {
		ranked = ranked[:top]
	}
	return ranked
}

// TopContributors ranks authors by commit count, ties broken by name for
// stable output. Top 0 means all.
func TopContributors(commits []Commit, top int) []RankedAuthor {
	counts := AuthorCommits(commits)
	ranked := make([]RankedAuthor, 0, len(counts))
	for name, n := range counts {
		ranked = append(ranked, RankedAuthor{Name: name, Commits: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Commits != ranked[j].Commits {
			return ranked[i].Commits > ranked[j].Commits
		}
		return ranked[i].Name < ranked[j].Name
	})
	if top > 0 && len(ranked) > top {
		ranked = ranked[:top]
	}
	return ranked
}

// TotalLines sums added and deleted lines across all commits.
func TotalLines(commits []Commit) (added, deleted int) {
	for _, c := range commits {
		added += c.LinesAdded()
		deleted += c.LinesDeleted()
	}
	return added, deleted
}

// Summarize reduces a commit list for reporting. The top parameter caps both
// the most-changed-files and top-contributors rankings.
func Summarize(commits []Commit, top int) Summary {
	s := Summary{
		Commits:    len(commits),
		Authors:    len(AuthorCommits(commits)),
		TopFiles:   MostChangedFiles(commits, top),
		TopAuthors: TopContributors(commits, top),
	}
	for _, c := range commits {
		if c.IsMerge() {
			s.Merges++
		}
		when := c.Committer.When
		if when.IsZero() {
			when = c.Author.When
		}
		if when.IsZero() {
			continue
		}
		if s.FirstCommit.IsZero() || when.Before(s.FirstCommit) {
			s.FirstCommit = when
		}
		if when.After(s.LastCommit) {
			s.LastCommit = when
		}
	}
	s.LinesAdded, s.LinesDeleted = TotalLines(commits)
	return s
}
