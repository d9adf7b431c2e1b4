// # internal/trends/models.go
package trends

import (
	"time"

	"docgen/internal/analysis"
)

const SchemaVersion = 2

// Snapshot captures one run's summary counts for trend tracking.
type Snapshot struct {
	ProjectKey      string    `json:"project_key,omitempty"`
	SchemaVersion   int       `json:"schema_version"`
	RunID           string    `json:"run_id,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
	CommitHash      string    `json:"commit_hash,omitempty"`
	CommitTimestamp time.Time `json:"commit_timestamp,omitempty"`
	FileCount       int       `json:"file_count"`
	ParsedCount     int       `json:"parsed_count"`
	FailedCount     int       `json:"failed_count"`
	TypeCount       int       `json:"type_count"`
	MethodCount     int       `json:"method_count"`
	FieldCount      int       `json:"field_count"`
	DocumentedTypes int       `json:"documented_types"`
	CommitCount     int       `json:"commit_count"`
	AuthorCount     int       `json:"author_count"`
	LinesAdded      int       `json:"lines_added"`
	LinesDeleted    int       `json:"lines_deleted"`
}

// DocCoverage returns the share of types carrying documentation, in percent.
func (s Snapshot) DocCoverage() float64 {
	if s.TypeCount == 0 {
		return 0
	}
	return float64(s.DocumentedTypes) / float64(s.TypeCount) * 100
}

// FromAnalysis builds a snapshot from a completed run. The commit stamp
// is left empty; callers attach it separately when a repository exists.
func FromAnalysis(pa *analysis.ProjectAnalysis) Snapshot {
	snap := Snapshot{
		SchemaVersion:   SchemaVersion,
		RunID:           pa.RunID,
		Timestamp:       pa.GeneratedAt,
		FileCount:       pa.Summary.Files,
		ParsedCount:     pa.Summary.ParsedFiles,
		FailedCount:     pa.Summary.FailedFiles,
		TypeCount:       pa.Summary.Types,
		MethodCount:     pa.Summary.Methods,
		FieldCount:      pa.Summary.Fields,
		DocumentedTypes: pa.Summary.DocumentedTypes,
	}

	if h := pa.Summary.History; h != nil {
		snap.CommitCount = h.Commits
		snap.AuthorCount = h.Authors
		snap.LinesAdded = h.LinesAdded
		snap.LinesDeleted = h.LinesDeleted
	}
	return snap
}

type TrendPoint struct {
	Timestamp       time.Time `json:"timestamp"`
	CommitHash      string    `json:"commit_hash,omitempty"`
	FileCount       int       `json:"file_count"`
	ParsedCount     int       `json:"parsed_count"`
	FailedCount     int       `json:"failed_count"`
	TypeCount       int       `json:"type_count"`
	MethodCount     int       `json:"method_count"`
	FieldCount      int       `json:"field_count"`
	DocumentedTypes int       `json:"documented_types"`
	CommitCount     int       `json:"commit_count"`
	DocCoverage     float64   `json:"doc_coverage"`
	DeltaFiles      int       `json:"delta_files"`
	DeltaTypes      int       `json:"delta_types"`
	DeltaMethods    int       `json:"delta_methods"`
	DeltaFields     int       `json:"delta_fields"`
	DeltaDocumented int       `json:"delta_documented"`
	DeltaCommits    int       `json:"delta_commits"`
	DeltaCoverage   float64   `json:"delta_coverage"`
	TypeGrowthPct   float64   `json:"type_growth_pct"`
	AvgFailures     float64   `json:"avg_failures"`
	AvgCoverage     float64   `json:"avg_coverage"`
	WindowHours     float64   `json:"window_hours"`
}

type TrendReport struct {
	SchemaVersion int          `json:"schema_version"`
	ProjectKey    string       `json:"project_key"`
	Since         time.Time    `json:"since"`
	Until         time.Time    `json:"until"`
	Window        string       `json:"window"`
	RunCount      int          `json:"run_count"`
	Points        []TrendPoint `json:"points"`
}
