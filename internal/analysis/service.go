// # internal/analysis/service.go
package analysis

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"docgen/internal/config"
	"docgen/internal/core/errors"
	"docgen/internal/discover"
	"docgen/internal/history"
	"docgen/internal/shared/observability"
	"docgen/internal/structure"
)

// Service runs the documentation pipeline: discover source files,
// extract their structure, extract repository history, aggregate.
type Service struct {
	cfg    *config.Config
	parser *structure.Parser

	// FileProgress, when set, is called after each processed file with
	// the running count and the total.
	FileProgress func(done, total int)

	// CommitProgress, when set, is called as commits are extracted.
	CommitProgress func(count int)
}

// NewService builds a Service for the given configuration.
func NewService(cfg *config.Config) *Service {
	return &Service{
		cfg:    cfg,
		parser: structure.NewParser(),
	}
}

// SupportedPath reports whether the parser can handle the given file.
func (s *Service) SupportedPath(path string) bool {
	return s.parser.IsSupportedPath(path)
}

// Run executes the full pipeline. Structure extraction failures on
// individual files degrade to per-file parse errors; a history failure
// degrades to ProjectAnalysis.HistoryError. Only scanner failures and
// cancellation abort the run.
func (s *Service) Run(ctx context.Context) (*ProjectAnalysis, error) {
	ctx, span := observability.Tracer.Start(ctx, "analysis.Run",
		trace.WithAttributes(attribute.String("project", s.cfg.ProjectName)))
	defer span.End()

	start := time.Now()

	files, err := s.extractStructure(ctx)
	if err != nil {
		return nil, err
	}

	commits, historyErr := s.extractHistory(ctx)
	if historyErr != nil {
		if ctx.Err() != nil {
			return nil, historyErr
		}
		slog.Warn("history extraction failed", "repo", s.cfg.History.RepoPath, "error", historyErr)
	}

	aggStart := time.Now()
	_, aggSpan := observability.Tracer.Start(ctx, "analysis.aggregate")
	pa := Aggregate(s.cfg.ProjectName, files, commits)
	aggSpan.End()
	observability.AnalysisDuration.WithLabelValues("aggregate").Observe(time.Since(aggStart).Seconds())
	if historyErr != nil {
		pa.HistoryError = historyErr.Error()
	}

	span.SetAttributes(
		attribute.Int("files", pa.Summary.Files),
		attribute.Int("commits", len(pa.Commits)),
	)
	observability.AnalysisDuration.WithLabelValues("run").Observe(time.Since(start).Seconds())
	observability.LastRunTimestamp.SetToCurrentTime()
	observability.LastRunDuration.Set(time.Since(start).Seconds())
	slog.Info("analysis complete",
		"files", pa.Summary.Files,
		"parsed", pa.Summary.ParsedFiles,
		"commits", len(pa.Commits),
		"duration", time.Since(start).Round(time.Millisecond))
	return pa, nil
}

func (s *Service) extractStructure(ctx context.Context) ([]*structure.File, error) {
	ctx, span := observability.Tracer.Start(ctx, "analysis.extractStructure")
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()

	scanner, err := discover.NewScanner(s.cfg.Discover, s.parser.IsSupportedPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeValidationError, "building scanner")
	}

	_, discoverSpan := observability.Tracer.Start(ctx, "analysis.discover")
	paths, err := scanner.Scan(s.cfg.SourcePaths)
	discoverSpan.SetAttributes(attribute.Int("files", len(paths)))
	discoverSpan.End()
	if err != nil {
		return nil, errors.AddContext(
			errors.Wrap(err, errors.CodeInternal, "scanning source paths"),
			errors.CtxOperation, "discover")
	}
	slog.Info("discovered source files", "count", len(paths))

	files := make([]*structure.File, 0, len(paths))
	for i, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		files = append(files, s.processFile(p))
		if s.FileProgress != nil {
			s.FileProgress(i+1, len(paths))
		}
	}

	observability.AnalysisDuration.WithLabelValues("structure").Observe(time.Since(start).Seconds())
	return files, nil
}

// processFile parses one file. Failures never abort the run; they are
// recorded on the returned File so sibling files still get documented.
func (s *Service) processFile(path string) *structure.File {
	start := time.Now()

	content, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("failed to read file", "path", path, "error", err)
		observability.ParseErrorsTotal.Inc()
		return &structure.File{
			Path:       path,
			Name:       filepath.Base(path),
			ParseError: err.Error(),
		}
	}

	file, err := s.parser.ParseFile(path, content)
	if err != nil {
		slog.Warn("failed to parse file", "path", path, "error", err)
		observability.ParseErrorsTotal.Inc()
		return &structure.File{
			Path:       path,
			Name:       filepath.Base(path),
			ParseError: err.Error(),
		}
	}

	if info, statErr := os.Stat(path); statErr == nil {
		file.Size = info.Size()
		file.ModTime = info.ModTime()
	}

	if !file.Parsed {
		slog.Warn("parse produced no structure", "path", path, "error", file.ParseError)
		observability.ParseErrorsTotal.Inc()
	}

	observability.FilesParsedTotal.Inc()
	observability.ParsingDuration.WithLabelValues("java").Observe(time.Since(start).Seconds())
	return file
}

func (s *Service) extractHistory(ctx context.Context) ([]history.Commit, error) {
	if !s.cfg.History.Enabled {
		return nil, nil
	}

	ctx, span := observability.Tracer.Start(ctx, "analysis.extractHistory",
		trace.WithAttributes(attribute.String("repo", s.cfg.History.RepoPath)))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()

	repo := history.Open(s.cfg.History.RepoPath)
	defer repo.Close()
	if !repo.Connected {
		return nil, errors.AddContext(
			errors.New(errors.CodeRepository, repo.ConnectionError),
			errors.CtxRepository, s.cfg.History.RepoPath)
	}

	ex := history.NewExtractor(repo, s.cfg.History.DetectRenames)
	ex.Progress = s.CommitProgress
	commits, err := ex.Commits(ctx, s.cfg.History.MaxCommits)
	if err != nil {
		return nil, err
	}

	observability.CommitsExtractedTotal.Add(float64(len(commits)))
	observability.AnalysisDuration.WithLabelValues("history").Observe(time.Since(start).Seconds())
	slog.Info("extracted commit history", "commits", len(commits), "repo", repo.Path)
	return commits, nil
}

// Health reports component status for the observability endpoint.
func (s *Service) Health(ctx context.Context) observability.HealthStatus {
	status := observability.HealthStatus{
		Status:     "up",
		Timestamp:  time.Now().UTC(),
		Components: map[string]string{"parser": "up"},
	}

	if !s.cfg.History.Enabled {
		status.Components["repository"] = "disabled"
		return status
	}

	repo := history.Open(s.cfg.History.RepoPath)
	defer repo.Close()
	if repo.Connected {
		status.Components["repository"] = "up"
	} else {
		status.Components["repository"] = "not connected: " + repo.ConnectionError
		status.Status = "degraded"
	}
	return status
}
