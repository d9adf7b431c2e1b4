// # internal/trends/schema.go
package trends

import (
	"database/sql"
	"fmt"
)

type migration struct {
	version int
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS snapshots (
  schema_version INTEGER NOT NULL,
  ts_utc TEXT NOT NULL,
  commit_hash TEXT NOT NULL DEFAULT '',
  commit_ts_utc TEXT NOT NULL DEFAULT '',
  file_count INTEGER NOT NULL,
  parsed_count INTEGER NOT NULL,
  failed_count INTEGER NOT NULL,
  type_count INTEGER NOT NULL,
  method_count INTEGER NOT NULL,
  field_count INTEGER NOT NULL,
  documented_types INTEGER NOT NULL DEFAULT 0,
  commit_count INTEGER NOT NULL DEFAULT 0,
  author_count INTEGER NOT NULL DEFAULT 0,
  lines_added INTEGER NOT NULL DEFAULT 0,
  lines_deleted INTEGER NOT NULL DEFAULT 0,
  created_at_utc TEXT NOT NULL DEFAULT (CURRENT_TIMESTAMP),
  PRIMARY KEY (ts_utc, commit_hash)
);
CREATE INDEX IF NOT EXISTS idx_snapshots_ts ON snapshots(ts_utc);
CREATE INDEX IF NOT EXISTS idx_snapshots_commit_hash ON snapshots(commit_hash);
`,
	},
	{
		version: 2,
		sql: `
CREATE TABLE IF NOT EXISTS snapshots_v2 (
  project_key TEXT NOT NULL DEFAULT 'default',
  schema_version INTEGER NOT NULL,
  run_id TEXT NOT NULL DEFAULT '',
  ts_utc TEXT NOT NULL,
  commit_hash TEXT NOT NULL DEFAULT '',
  commit_ts_utc TEXT NOT NULL DEFAULT '',
  file_count INTEGER NOT NULL,
  parsed_count INTEGER NOT NULL,
  failed_count INTEGER NOT NULL,
  type_count INTEGER NOT NULL,
  method_count INTEGER NOT NULL,
  field_count INTEGER NOT NULL,
  documented_types INTEGER NOT NULL DEFAULT 0,
  commit_count INTEGER NOT NULL DEFAULT 0,
  author_count INTEGER NOT NULL DEFAULT 0,
  lines_added INTEGER NOT NULL DEFAULT 0,
  lines_deleted INTEGER NOT NULL DEFAULT 0,
  created_at_utc TEXT NOT NULL DEFAULT (CURRENT_TIMESTAMP),
  PRIMARY KEY (project_key, ts_utc, commit_hash)
);
INSERT OR IGNORE INTO snapshots_v2 (
  project_key, schema_version, run_id, ts_utc, commit_hash, commit_ts_utc, file_count, parsed_count,
  failed_count, type_count, method_count, field_count, documented_types, commit_count,
  author_count, lines_added, lines_deleted, created_at_utc
)
SELECT
  'default', schema_version, '', ts_utc, commit_hash, commit_ts_utc, file_count, parsed_count,
  failed_count, type_count, method_count, field_count, documented_types, commit_count,
  author_count, lines_added, lines_deleted, created_at_utc
FROM snapshots;
DROP TABLE snapshots;
ALTER TABLE snapshots_v2 RENAME TO snapshots;
CREATE INDEX IF NOT EXISTS idx_snapshots_ts ON snapshots(ts_utc);
CREATE INDEX IF NOT EXISTS idx_snapshots_commit_hash ON snapshots(commit_hash);
CREATE INDEX IF NOT EXISTS idx_snapshots_project_key ON snapshots(project_key);
`,
	},
}

func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  applied_at_utc TEXT NOT NULL DEFAULT (CURRENT_TIMESTAMP)
);
`); err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	var current int
	if err := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("read schema_migrations version: %w", err)
	}
	if current > SchemaVersion {
		return fmt.Errorf("schema version %d is newer than supported version %d", current, SchemaVersion)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.version, err)
		}

		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration %d: %w", m.version, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations(version) VALUES (?)`, m.version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.version, err)
		}
	}

	return nil
}
