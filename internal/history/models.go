// # internal/history/models.go
package history

import (
	"strings"
	"time"
)

type ChangeKind string

const (
	ChangeAdd    ChangeKind = "add"
	ChangeModify ChangeKind = "modify"
	ChangeDelete ChangeKind = "delete"
	ChangeRename ChangeKind = "rename"
	ChangeCopy   ChangeKind = "copy"
)

// Symbol is the one-letter marker used in change listings.
func (k ChangeKind) Symbol() string {
	switch k {
	case ChangeAdd:
		return "A"
	case ChangeModify:
		return "M"
	case ChangeDelete:
		return "D"
	case ChangeRename:
		return "R"
	case ChangeCopy:
		return "C"
	}
	return "?"
}

// Signature identifies one side of a commit, author or committer.
type Signature struct {
	Name  string    `json:"name"`
	Email string    `json:"email"`
	When  time.Time `json:"when"`
}

// String renders the signature in the conventional "Name <email>" form.
func (s Signature) String() string {
	if s.Email == "" {
		return s.Name
	}
	return s.Name + " <" + s.Email + ">"
}

type Commit struct {
	Hash        string       `json:"hash"`
	Author      Signature    `json:"author"`
	Committer   Signature    `json:"committer"`
	Message     string       `json:"message"`
	Parents     []string     `json:"parents,omitempty"`
	FileChanges []FileChange `json:"file_changes,omitempty"`
}

type FileChange struct {
	Path         string     `json:"path"`
	OldPath      string     `json:"old_path,omitempty"`
	Kind         ChangeKind `json:"kind"`
	LinesAdded   int        `json:"lines_added"`
	LinesDeleted int        `json:"lines_deleted"`
}

// ShortHash is the first seven characters of the full hash, empty when the
// hash is shorter than that.
func (c *Commit) ShortHash() string {
	if len(c.Hash) < 7 {
		return ""
	}
	return c.Hash[:7]
}

// IsMerge reports whether the commit has more than one parent.
func (c *Commit) IsMerge() bool {
	return len(c.Parents) > 1
}

// Subject is the trimmed first line of the commit message.
func (c *Commit) Subject() string {
	msg := c.Message
	if idx := strings.Index(msg, "\n"); idx >= 0 {
		msg = msg[:idx]
	}
	return strings.TrimSpace(msg)
}

// Touches reports whether the commit changed the exact path, either side of
// a rename counting.
func (c *Commit) Touches(path string) bool {
	for _, fc := range c.FileChanges {
		if fc.Path == path || fc.OldPath == path {
			return true
		}
	}
	return false
}

// LinesAdded sums added lines across the commit's file changes.
func (c *Commit) LinesAdded() int {
	n := 0
	for _, fc := range c.FileChanges {
		n += fc.LinesAdded
	}
	return n
}

// LinesDeleted sums deleted lines across the commit's file changes.
func (c *Commit) LinesDeleted() int {
	n := 0
	for _, fc := range c.FileChanges {
		n += fc.LinesDeleted
	}
	return n
}
