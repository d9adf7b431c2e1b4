// # cmd/docgen/app.go
package main

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"docgen/internal/analysis"
	"docgen/internal/config"
	"docgen/internal/report"
	"docgen/internal/shared/observability"
	"docgen/internal/trends"
	"docgen/internal/watch"
)

type App struct {
	Config  *config.Config
	Service *analysis.Service

	writer     *report.Writer
	console    *report.ConsoleReporter
	progress   *progressReporter
	store      *trends.Store
	teaProgram *tea.Program
	quiet      bool

	mu   sync.Mutex
	last *analysis.ProjectAnalysis
}

func NewApp(cfg *config.Config, quiet bool) (*App, error) {
	svc := analysis.NewService(cfg)
	progress := newProgressReporter(quiet)
	svc.FileProgress = progress.OnFileParsed
	svc.CommitProgress = progress.OnCommitExtracted

	a := &App{
		Config:   cfg,
		Service:  svc,
		writer:   report.NewWriter(cfg.Output),
		console:  report.NewConsoleReporter(os.Stdout),
		progress: progress,
		quiet:    quiet,
	}

	if cfg.Trends.Enabled {
		store, err := trends.Open(cfg.Trends.DBPath)
		if err != nil {
			return nil, err
		}
		a.store = store
	}

	return a, nil
}

// Run performs a full analysis pass and writes the configured outputs.
func (a *App) Run(ctx context.Context) (*analysis.ProjectAnalysis, error) {
	start := time.Now()
	a.progress.Reset()

	pa, err := a.Service.Run(ctx)
	a.progress.Finish()
	if err != nil {
		return nil, err
	}
	a.setLast(pa)

	if err := a.writer.Write(ctx, pa); err != nil {
		return nil, err
	}
	a.recordSnapshot(pa)

	if !a.quiet && a.Config.Output.Console {
		a.console.PrintSummary(pa, time.Since(start))
		if a.Config.Output.Detail {
			a.console.PrintStructure(pa)
		}
	}

	return pa, nil
}

// StartWatcher begins watching the source paths and re-running the
// analysis on changes. It returns once the watch loop is established.
func (a *App) StartWatcher(ctx context.Context) error {
	loop, err := watch.NewLoop(a.Config.Watch, a.Config.Discover, a.Service.SupportedPath, a.handleRescan)
	if err != nil {
		return err
	}

	go func() {
		// Note: runs until the context is canceled.
		if err := loop.Run(ctx, a.Config.SourcePaths); err != nil {
			slog.Error("watch loop stopped", "error", err)
		}
	}()
	return nil
}

func (a *App) handleRescan(ctx context.Context, paths []string) {
	start := time.Now()
	a.progress.Reset()

	pa, err := a.Service.Run(ctx)
	a.progress.Finish()
	if err != nil {
		slog.Error("rescan failed", "error", err)
		return
	}
	a.setLast(pa)

	if err := a.writer.Write(ctx, pa); err != nil {
		slog.Error("failed to generate outputs", "error", err)
	}
	a.recordSnapshot(pa)

	if !a.quiet && a.Config.Output.Console {
		a.console.PrintSummary(pa, time.Since(start))
		if a.Config.Output.Detail {
			a.console.PrintStructure(pa)
		}
	}

	if a.teaProgram != nil {
		a.teaProgram.Send(updateMsg{analysis: pa})
	}
}

func (a *App) recordSnapshot(pa *analysis.ProjectAnalysis) {
	if a.store == nil {
		return
	}

	snap := trends.FromAnalysis(pa)
	if a.Config.History.Enabled {
		trends.Stamp(&snap, a.Config.History.RepoPath)
	}

	if err := a.store.SaveSnapshot(a.Config.ProjectName, snap); err != nil {
		slog.Warn("failed to record trend snapshot", "path", a.store.Path(), "error", err)
		return
	}
	observability.SnapshotsRecordedTotal.Inc()
}

func (a *App) RunUI() error {
	m := initialModel(a.Config.ProjectName)
	p := tea.NewProgram(m, tea.WithAltScreen())
	a.teaProgram = p

	// Trigger initial UI update from the analysis Run already completed.
	go func() {
		if pa := a.lastAnalysis(); pa != nil {
			a.teaProgram.Send(updateMsg{analysis: pa})
		}
	}()

	_, err := p.Run()
	return err
}

func (a *App) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			slog.Warn("failed to close trend store", "error", err)
		}
	}
}

func (a *App) setLast(pa *analysis.ProjectAnalysis) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.last = pa
}

func (a *App) lastAnalysis() *analysis.ProjectAnalysis {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last
}
