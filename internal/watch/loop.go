// # internal/watch/loop.go
package watch

import (
	"context"
	"log/slog"
	"time"

	"docgen/internal/config"
	"docgen/internal/shared/observability"
	"docgen/internal/shared/util"
)

// Loop couples a Watcher to a rescan callback. The limiter caps how
// often change batches may trigger a rescan, so a burst of saves does
// not queue up a backlog of full analyses.
type Loop struct {
	watcher *Watcher
	limiter *util.Limiter
	rescan  func(ctx context.Context, paths []string)
	ctx     context.Context
}

func NewLoop(watchCfg config.Watch, discoverCfg config.Discover, supported func(string) bool, rescan func(context.Context, []string)) (*Loop, error) {
	l := &Loop{
		limiter: util.NewLimiter(watchCfg.RescanRate, watchCfg.Burst),
		rescan:  rescan,
	}

	w, err := NewWatcher(watchCfg.Debounce, discoverCfg.Exclude.Dirs, discoverCfg.Exclude.Files, supported, l.handleChanges)
	if err != nil {
		return nil, err
	}
	l.watcher = w
	return l, nil
}

// Run watches the given roots until the context is canceled.
func (l *Loop) Run(ctx context.Context, roots []string) error {
	l.ctx = ctx
	if err := l.watcher.Watch(roots); err != nil {
		l.watcher.Close()
		return err
	}
	slog.Info("watching for changes", "roots", roots)

	<-ctx.Done()
	return l.watcher.Close()
}

func (l *Loop) handleChanges(paths []string) {
	ctx := l.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	slog.Info("detected changes", "count", len(paths))

	start := time.Now()
	if err := l.limiter.Wait(ctx, 1); err != nil {
		return
	}
	if waited := time.Since(start); waited > time.Second {
		slog.Debug("rescan throttled", "waited", waited.Round(time.Millisecond))
	}

	observability.WatcherRescansTotal.Inc()
	l.rescan(ctx, paths)
}
