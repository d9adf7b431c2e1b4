// # internal/trends/stamp.go
package trends

import (
	"time"

	"docgen/internal/history"
)

const stampHashLength = 12

// ResolveCommitStamp returns a short HEAD hash and committer time for
// the repository at path. Both come back zero when there is no usable
// repository; snapshots then stay keyed by run timestamp alone.
func ResolveCommitStamp(repoPath string) (string, time.Time) {
	repo := history.Open(repoPath)
	defer repo.Close()
	if !repo.Connected {
		return "", time.Time{}
	}

	hash, when, err := repo.Head()
	if err != nil {
		return "", time.Time{}
	}
	if len(hash) > stampHashLength {
		hash = hash[:stampHashLength]
	}
	return hash, when
}

// Stamp attaches the repository HEAD to a snapshot when available.
func Stamp(snap *Snapshot, repoPath string) {
	hash, when := ResolveCommitStamp(repoPath)
	snap.CommitHash = hash
	snap.CommitTimestamp = when
}
