// # internal/report/write.go
package report

import (
	"context"
	"log/slog"

	"docgen/internal/analysis"
	"docgen/internal/config"
	"docgen/internal/core/errors"
	"docgen/internal/shared/observability"
	"docgen/internal/shared/util"
)

// Writer renders and writes the configured report artifacts.
type Writer struct {
	cfg config.Output
}

func NewWriter(cfg config.Output) *Writer {
	return &Writer{cfg: cfg}
}

// Write renders each configured format to its path. Paths left empty in
// the config are skipped. Files are replaced atomically so a reader
// watching the output never sees a half-written report.
func (w *Writer) Write(ctx context.Context, pa *analysis.ProjectAnalysis) error {
	_, span := observability.Tracer.Start(ctx, "report.Write")
	defer span.End()

	if w.cfg.Markdown != "" {
		content, err := NewMarkdownGenerator(pa).Generate()
		if err != nil {
			return errors.Wrap(err, errors.CodeInternal, "generating markdown report")
		}
		if err := util.WriteFileAtomic(w.cfg.Markdown, []byte(content), 0o644); err != nil {
			return errors.AddContext(
				errors.Wrap(err, errors.CodeInternal, "writing markdown report"),
				errors.CtxPath, w.cfg.Markdown)
		}
		observability.ReportsWrittenTotal.WithLabelValues("markdown").Inc()
		slog.Info("wrote markdown report", "path", w.cfg.Markdown)
	}

	if w.cfg.JSON != "" {
		content, err := NewJSONGenerator(pa).Generate()
		if err != nil {
			return errors.Wrap(err, errors.CodeInternal, "generating json report")
		}
		if err := util.WriteFileAtomic(w.cfg.JSON, []byte(content), 0o644); err != nil {
			return errors.AddContext(
				errors.Wrap(err, errors.CodeInternal, "writing json report"),
				errors.CtxPath, w.cfg.JSON)
		}
		observability.ReportsWrittenTotal.WithLabelValues("json").Inc()
		slog.Info("wrote json report", "path", w.cfg.JSON)
	}

	return nil
}
