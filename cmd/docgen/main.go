// # cmd/docgen/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"docgen/internal/config"
	"docgen/internal/shared/observability"
)

var (
	configPath  = flag.String("config", "./docgen.toml", "Path to config file")
	sourcePaths = flag.String("path", "", "Comma-separated source paths to analyze (overrides config)")
	mdPath      = flag.String("md", "", "Write markdown report to this path")
	jsonPath    = flag.String("json", "", "Write JSON report to this path")
	repoPath    = flag.String("repo", "", "Git repository to read history from")
	maxCommits  = flag.Int("max-commits", -1, "Limit history extraction to N commits (0 = unlimited)")
	noHistory   = flag.Bool("no-history", false, "Skip git history extraction")
	watchMode   = flag.Bool("watch", false, "Stay running and regenerate on source changes")
	browse      = flag.Bool("browse", false, "Browse extracted types in a terminal UI")
	metricsAddr = flag.String("serve-observability", "", "Serve metrics and health on this address, e.g. :9090")
	quiet       = flag.Bool("quiet", false, "Suppress progress bars and console summary")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	version     = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "1.0.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("docgen v%s\n", VERSION)
		os.Exit(0)
	}

	// Setup logging
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}

	output := os.Stdout
	if *browse {
		// In browse mode, avoid stdout logs corrupting the TUI.
		logPath := resolveLogPath()
		if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to create log dir for %s: %v\n", logPath, err)
		} else {
			if fi, err := os.Lstat(logPath); err == nil && (fi.Mode()&os.ModeSymlink) != 0 {
				fmt.Fprintf(os.Stderr, "warning: refusing to write logs to symlink path %s\n", logPath)
			} else {
				f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
				if err == nil {
					output = f
				} else {
					fmt.Fprintf(os.Stderr, "warning: failed to open log file %s: %v\n", logPath, err)
				}
			}
		}
	}

	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		if *configPath == "./docgen.toml" && os.IsNotExist(err) {
			cfg = config.Default()
		} else {
			slog.Error("failed to load config", "error", err)
			os.Exit(1)
		}
	}

	if flag.NArg() > 0 {
		cfg.SourcePaths = flag.Args()
	}
	if *sourcePaths != "" {
		cfg.SourcePaths = splitPaths(*sourcePaths)
	}
	if *mdPath != "" {
		cfg.Output.Markdown = *mdPath
	}
	if *jsonPath != "" {
		cfg.Output.JSON = *jsonPath
	}
	if *repoPath != "" {
		cfg.History.Enabled = true
		cfg.History.RepoPath = *repoPath
	}
	if *maxCommits >= 0 {
		cfg.History.MaxCommits = *maxCommits
	}
	if *noHistory {
		cfg.History.Enabled = false
	}
	if *metricsAddr != "" {
		cfg.Obs.MetricsAddr = *metricsAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.SetupTracing(ctx, cfg.Obs.OTLPEndpoint)
	if err != nil {
		slog.Warn("failed to set up tracing", "endpoint", cfg.Obs.OTLPEndpoint, "error", err)
	}

	app, err := NewApp(cfg, *quiet || *browse)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		os.Exit(1)
	}

	var obsServer *observability.Server
	if cfg.Obs.MetricsAddr != "" {
		obsServer = observability.NewServer(cfg.Obs.MetricsAddr, app.Service.Health)
		obsServer.Start()
	}

	// Initial run
	if _, err := app.Run(ctx); err != nil {
		slog.Error("analysis failed", "error", err)
		os.Exit(1)
	}

	if *watchMode || *browse {
		if err := app.StartWatcher(ctx); err != nil {
			slog.Error("failed to start watcher", "error", err)
			os.Exit(1)
		}

		if *browse {
			if err := app.RunUI(); err != nil {
				slog.Error("failed to run UI", "error", err)
				os.Exit(1)
			}
		} else {
			<-ctx.Done()
		}
	}

	if obsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := obsServer.Stop(shutdownCtx); err != nil {
			slog.Warn("failed to stop observability server", "error", err)
		}
		cancel()
	}
	if shutdownTracing != nil {
		if err := shutdownTracing(context.Background()); err != nil {
			slog.Warn("failed to shut down tracing", "error", err)
		}
	}
	app.Close()
}

func splitPaths(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func resolveLogPath() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "docgen", "docgen.log")
	}

	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".local", "state", "docgen", "docgen.log")
	}

	return "docgen.log"
}
