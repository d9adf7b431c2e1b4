// # internal/trends/store.go
package trends

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const (
	driverName  = "sqlite"
	maxAttempts = 5
)

// Store persists run snapshots in a local sqlite database.
type Store struct {
	path string
	db   *sql.DB
	mu   sync.Mutex
}

func Open(path string) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("trends path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("trends path %q is a directory, expected file", cleanPath)
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create trends directory %q: %w", dir, err)
		}
	}

	// busy_timeout + WAL reduce lock conflicts during watch-mode churn.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(2000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", cleanPath)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite trends %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite trends %q: %w", cleanPath, err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize sqlite schema %q: %w", cleanPath, err)
	}

	return &Store{path: cleanPath, db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) SaveSnapshot(projectKey string, snapshot Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	projectKey = strings.TrimSpace(projectKey)
	if projectKey == "" {
		projectKey = "default"
	}

	if snapshot.Timestamp.IsZero() {
		snapshot.Timestamp = time.Now().UTC()
	}
	if snapshot.SchemaVersion == 0 {
		snapshot.SchemaVersion = SchemaVersion
	}
	if snapshot.SchemaVersion != SchemaVersion {
		return fmt.Errorf("unsupported snapshot schema version %d", snapshot.SchemaVersion)
	}

	commitTS := ""
	if !snapshot.CommitTimestamp.IsZero() {
		commitTS = snapshot.CommitTimestamp.UTC().Format(time.RFC3339Nano)
	}

	query := `
INSERT INTO snapshots (
  project_key, schema_version, run_id, ts_utc, commit_hash, commit_ts_utc, file_count, parsed_count,
  failed_count, type_count, method_count, field_count, documented_types, commit_count,
  author_count, lines_added, lines_deleted
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(project_key, ts_utc, commit_hash) DO UPDATE SET
  schema_version=excluded.schema_version,
  run_id=excluded.run_id,
  commit_ts_utc=excluded.commit_ts_utc,
  file_count=excluded.file_count,
  parsed_count=excluded.parsed_count,
  failed_count=excluded.failed_count,
  type_count=excluded.type_count,
  method_count=excluded.method_count,
  field_count=excluded.field_count,
  documented_types=excluded.documented_types,
  commit_count=excluded.commit_count,
  author_count=excluded.author_count,
  lines_added=excluded.lines_added,
  lines_deleted=excluded.lines_deleted
`
	return s.withRetry("save snapshot", func() error {
		_, err := s.db.Exec(
			query,
			projectKey,
			snapshot.SchemaVersion,
			snapshot.RunID,
			snapshot.Timestamp.UTC().Format(time.RFC3339Nano),
			snapshot.CommitHash,
			commitTS,
			snapshot.FileCount,
			snapshot.ParsedCount,
			snapshot.FailedCount,
			snapshot.TypeCount,
			snapshot.MethodCount,
			snapshot.FieldCount,
			snapshot.DocumentedTypes,
			snapshot.CommitCount,
			snapshot.AuthorCount,
			snapshot.LinesAdded,
			snapshot.LinesDeleted,
		)
		return err
	})
}

func (s *Store) LoadSnapshots(projectKey string, since time.Time) ([]Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projectKey = strings.TrimSpace(projectKey)
	if projectKey == "" {
		projectKey = "default"
	}

	base := `
SELECT
  project_key, schema_version, run_id, ts_utc, commit_hash, commit_ts_utc, file_count, parsed_count,
  failed_count, type_count, method_count, field_count, documented_types, commit_count,
  author_count, lines_added, lines_deleted
FROM snapshots
 WHERE project_key = ?`
	args := make([]any, 0, 2)
	args = append(args, projectKey)
	if !since.IsZero() {
		base += " AND ts_utc >= ?"
		args = append(args, since.UTC().Format(time.RFC3339Nano))
	}
	base += " ORDER BY ts_utc ASC, commit_hash ASC"

	var rows *sql.Rows
	err := s.withRetry("load snapshots", func() error {
		var qErr error
		rows, qErr = s.db.Query(base, args...)
		return qErr
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshots := make([]Snapshot, 0)
	for rows.Next() {
		var (
			tsRaw       string
			commitTSRaw string
			snapshot    Snapshot
		)
		if err := rows.Scan(
			&snapshot.ProjectKey,
			&snapshot.SchemaVersion,
			&snapshot.RunID,
			&tsRaw,
			&snapshot.CommitHash,
			&commitTSRaw,
			&snapshot.FileCount,
			&snapshot.ParsedCount,
			&snapshot.FailedCount,
			&snapshot.TypeCount,
			&snapshot.MethodCount,
			&snapshot.FieldCount,
			&snapshot.DocumentedTypes,
			&snapshot.CommitCount,
			&snapshot.AuthorCount,
			&snapshot.LinesAdded,
			&snapshot.LinesDeleted,
		); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}

		ts, err := time.Parse(time.RFC3339Nano, tsRaw)
		if err != nil {
			return nil, fmt.Errorf("parse snapshot timestamp %q: %w", tsRaw, err)
		}
		snapshot.Timestamp = ts.UTC()

		if commitTSRaw != "" {
			commitTS, err := time.Parse(time.RFC3339Nano, commitTSRaw)
			if err != nil {
				return nil, fmt.Errorf("parse commit timestamp %q: %w", commitTSRaw, err)
			}
			snapshot.CommitTimestamp = commitTS.UTC()
		}

		snapshots = append(snapshots, snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshot rows: %w", err)
	}

	return snapshots, nil
}

func (s *Store) withRetry(op string, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !isLockError(err) || attempt == maxAttempts {
			break
		}
		time.Sleep(time.Duration(attempt*25) * time.Millisecond)
	}
	return fmt.Errorf("%s: %w", op, lastErr)
}

func isLockError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "busy")
}

func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

func IsCorruptError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "malformed") || strings.Contains(msg, "not a database") || errors.Is(err, os.ErrInvalid)
}
