package model

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

// Config holds runtime configuration for wordcloud.
// Values come from defaults, the config file, WORDCLOUD_* env vars and flags.
type Config struct {
	Render       RenderConfig       `mapstructure:"render" yaml:"render"`
	Input        InputConfig        `mapstructure:"input" yaml:"input"`
	Cache        CacheConfig        `mapstructure:"cache" yaml:"cache"`
	Concurrency  ConcurrencyConfig  `mapstructure:"concurrency" yaml:"concurrency"`
	RateLimiting RateLimitingConfig `mapstructure:"rate_limiting" yaml:"rate_limiting"`
	History      HistoryConfig      `mapstructure:"history" yaml:"history"`
	Log          LogConfig          `mapstructure:"log" yaml:"log"`
}

// RenderConfig controls the image produced by the layout engine
type RenderConfig struct {
	Width       int      `mapstructure:"width" yaml:"width"`
	Height      int      `mapstructure:"height" yaml:"height"`
	Background  string   `mapstructure:"background" yaml:"background"`
	Palette     []string `mapstructure:"palette" yaml:"palette"`
	FontFile    string   `mapstructure:"font_file" yaml:"font_file"` // empty = embedded Go Regular
	MinFontSize float64  `mapstructure:"min_font_size" yaml:"min_font_size"`
	MaxFontSize float64  `mapstructure:"max_font_size" yaml:"max_font_size"`
	MaxWords    int      `mapstructure:"max_words" yaml:"max_words"` // 0 = no limit
}

// InputConfig controls how sources are read
type InputConfig struct {
	MaxBytes      int64         `mapstructure:"max_bytes" yaml:"max_bytes"`
	Timeout       time.Duration `mapstructure:"timeout" yaml:"timeout"`
	UserAgent     string        `mapstructure:"user_agent" yaml:"user_agent"`
	RespectRobots bool          `mapstructure:"respect_robots" yaml:"respect_robots"`
	HTTPProxy     string        `mapstructure:"http_proxy" yaml:"http_proxy,omitempty"`
	HTTPSProxy    string        `mapstructure:"https_proxy" yaml:"https_proxy,omitempty"`
}

// CacheConfig controls the frequency cache
type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled" yaml:"enabled"`
	Dir       string        `mapstructure:"dir" yaml:"dir"`
	MemoryTTL time.Duration `mapstructure:"memory_ttl" yaml:"memory_ttl"`
	DiskTTL   time.Duration `mapstructure:"disk_ttl" yaml:"disk_ttl"`
}

// ConcurrencyConfig controls batch parallelism
type ConcurrencyConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// RateLimitingConfig throttles URL sources per host during batch runs
type RateLimitingConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second" yaml:"requests_per_second"`
	BurstSize         int     `mapstructure:"burst_size" yaml:"burst_size"`
}

// HistoryConfig controls the run history database
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// LogConfig controls structured logging
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DefaultPalette is used when no palette is configured
var DefaultPalette = []string{
	"#1b4965", "#5fa8d3", "#ca6702", "#bb3e03", "#ae2012", "#005f73", "#0a9396",
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	dataDir := filepath.Join(home, ".wordcloud")

	return &Config{
		Render: RenderConfig{
			Width:       1024,
			Height:      768,
			Background:  "#ffffff",
			Palette:     append([]string(nil), DefaultPalette...),
			MinFontSize: 12,
			MaxFontSize: 96,
			MaxWords:    300,
		},
		Input: InputConfig{
			MaxBytes:      10 << 20,
			Timeout:       30 * time.Second,
			UserAgent:     "wordcloud/0.2 (+https://github.com/ppiankov/wordcloud)",
			RespectRobots: true,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       filepath.Join(dataDir, "cache"),
			MemoryTTL: 10 * time.Minute,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 2,
			BurstSize:         2,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    filepath.Join(dataDir, "history.db"),
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

var hexColorPattern = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// Validate checks that the configuration can be used for a run
func (c *Config) Validate() error {
	r := c.Render
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("render size must be positive, got %dx%d", r.Width, r.Height)
	}
	if r.MinFontSize <= 0 || r.MaxFontSize < r.MinFontSize {
		return fmt.Errorf("invalid font size range %.1f..%.1f", r.MinFontSize, r.MaxFontSize)
	}
	if r.MaxWords < 0 {
		return fmt.Errorf("max_words must not be negative, got %d", r.MaxWords)
	}
	if !hexColorPattern.MatchString(r.Background) {
		return fmt.Errorf("invalid background color %q", r.Background)
	}
	for _, color := range r.Palette {
		if !hexColorPattern.MatchString(color) {
			return fmt.Errorf("invalid palette color %q", color)
		}
	}
	if c.Input.MaxBytes <= 0 {
		return fmt.Errorf("input max_bytes must be positive, got %d", c.Input.MaxBytes)
	}
	if c.Cache.Enabled && c.Cache.Dir == "" {
		return fmt.Errorf("cache dir must be set when cache is enabled")
	}
	if c.History.Enabled && c.History.Path == "" {
		return fmt.Errorf("history path must be set when history is enabled")
	}
	if c.RateLimiting.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must not be negative")
	}
	return nil
}
