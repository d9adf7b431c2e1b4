// # internal/history/queries.go
package history

import "strings"

// CommitsForPath filters commits down to those whose computed changes touch
// the exact path. Limit 0 means unlimited.
func CommitsForPath(commits []Commit, path string, limit int) []Commit {
	var out []Commit
	for _, c := range commits {
		if !c.Touches(path) {
			continue
		}
		out = append(out, c)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// CommitsByAuthor scans the full commit list for a substring match on author
// name or email. Limit 0 means unlimited.
func CommitsByAuthor(commits []Commit, author string, limit int) []Commit {
	var out []Commit
	for _, c := range commits {
		if !strings.Contains(c.Author.Name, author) && !strings.Contains(c.Author.Email, author) {
			continue
		}
		out = append(out, c)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}
