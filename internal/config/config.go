// # internal/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	ProjectName string        `toml:"project_name"`
	SourcePaths []string      `toml:"source_paths"`
	Discover    Discover      `toml:"discover"`
	History     History       `toml:"history"`
	Output      Output        `toml:"output"`
	Trends      Trends        `toml:"trends"`
	Watch       Watch         `toml:"watch"`
	Obs         Observability `toml:"observability"`
}

type Discover struct {
	Recursive bool    `toml:"recursive"`
	MaxDepth  int     `toml:"max_depth"`
	Exclude   Exclude `toml:"exclude"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type History struct {
	Enabled       bool   `toml:"enabled"`
	RepoPath      string `toml:"repo_path"`
	MaxCommits    int    `toml:"max_commits"` // 0 = unlimited
	DetectRenames bool   `toml:"detect_renames"`
}

type Output struct {
	Markdown string `toml:"markdown"`
	JSON     string `toml:"json"`
	Console  bool   `toml:"console"`
	Detail   bool   `toml:"detail"` // per-type trees on the console
}

type Trends struct {
	Enabled bool          `toml:"enabled"`
	DBPath  string        `toml:"db_path"`
	Window  time.Duration `toml:"window"` // moving-average window
}

type Watch struct {
	Debounce   time.Duration `toml:"debounce"`
	RescanRate float64       `toml:"rescan_rate"` // rescans per second
	Burst      int           `toml:"burst"`
}

type Observability struct {
	MetricsAddr  string `toml:"metrics_addr"`  // empty = no metrics server
	OTLPEndpoint string `toml:"otlp_endpoint"` // empty = tracing disabled
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.ProjectName == "" {
		c.ProjectName = "Java Project"
	}
	if len(c.SourcePaths) == 0 {
		c.SourcePaths = []string{"."}
	}
	if c.Discover.MaxDepth == 0 {
		c.Discover.Recursive = true
		c.Discover.MaxDepth = 20
	}
	if len(c.Discover.Exclude.Dirs) == 0 {
		c.Discover.Exclude.Dirs = []string{".git", "target", "build", "out"}
	}
	if c.History.RepoPath == "" {
		c.History.Enabled = true
		c.History.RepoPath = c.SourcePaths[0]
		c.History.DetectRenames = true
	}
	if c.Output.Markdown == "" && c.Output.JSON == "" {
		c.Output.Console = true
	}
	if c.Trends.DBPath == "" {
		c.Trends.DBPath = ".docgen/trends.db"
	}
	if c.Trends.Window == 0 {
		c.Trends.Window = 7 * 24 * time.Hour
	}
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = 500 * time.Millisecond
	}
	if c.Watch.RescanRate == 0 {
		c.Watch.RescanRate = 1
	}
	if c.Watch.Burst == 0 {
		c.Watch.Burst = 2
	}
}

func (c *Config) Validate() error {
	if c.Discover.MaxDepth < 1 {
		return fmt.Errorf("discover.max_depth must be at least 1, got %d", c.Discover.MaxDepth)
	}
	if c.History.MaxCommits < 0 {
		return fmt.Errorf("history.max_commits must not be negative, got %d", c.History.MaxCommits)
	}
	if c.Watch.RescanRate <= 0 {
		return fmt.Errorf("watch.rescan_rate must be positive, got %v", c.Watch.RescanRate)
	}
	if c.Trends.Enabled && c.Trends.DBPath == "" {
		return fmt.Errorf("trends.db_path must be set when trends are enabled")
	}
	return nil
}
