// # internal/shared/observability/metrics.go
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ParsingDuration tracks time spent parsing individual source files.
	ParsingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "docgen_parsing_duration_seconds",
			Help:    "Time spent parsing a single source file",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"language"},
	)

	// FilesParsedTotal counts every file handed to the parser.
	FilesParsedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "docgen_files_parsed_total",
			Help: "Total number of source files processed",
		},
	)

	// ParseErrorsTotal counts files that produced no structure.
	ParseErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "docgen_parse_errors_total",
			Help: "Total number of files that failed to parse",
		},
	)

	// CommitsExtractedTotal counts commits read from repository history.
	CommitsExtractedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "docgen_commits_extracted_total",
			Help: "Total number of commits extracted from git history",
		},
	)

	// AnalysisDuration tracks wall time per pipeline stage.
	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "docgen_analysis_duration_seconds",
			Help:    "Time spent in each analysis stage",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"},
	)

	// ReportsWrittenTotal counts generated report artifacts per format.
	ReportsWrittenTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docgen_reports_written_total",
			Help: "Total number of reports written",
		},
		[]string{"format"},
	)

	// WatcherEventsTotal counts filesystem events accepted by the watcher.
	WatcherEventsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "docgen_watcher_events_total",
			Help: "Total number of filesystem change events observed",
		},
	)

	// WatcherRescansTotal counts rescans triggered by debounced changes.
	WatcherRescansTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "docgen_watcher_rescans_total",
			Help: "Total number of rescans triggered by the watcher",
		},
	)

	// SnapshotsRecordedTotal counts trend snapshots persisted to the store.
	SnapshotsRecordedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "docgen_snapshots_recorded_total",
			Help: "Total number of trend snapshots recorded",
		},
	)

	// LastRunTimestamp records when the most recent run finished.
	LastRunTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "docgen_last_run_timestamp_seconds",
			Help: "Unix timestamp of the last completed analysis run",
		},
	)

	// LastRunDuration records the wall time of the most recent run.
	LastRunDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "docgen_last_run_duration_seconds",
			Help: "Wall time of the last completed analysis run",
		},
	)
)
