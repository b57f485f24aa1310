package model

import (
	"strings"
	"testing"
)

func TestDefaultConfig_Valid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestDefaultConfig_PaletteIsCopy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Render.Palette[0] = "#000000"

	if DefaultPalette[0] == "#000000" {
		t.Error("modifying a config palette changed DefaultPalette")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"zero width", func(c *Config) { c.Render.Width = 0 }, "render size"},
		{"negative height", func(c *Config) { c.Render.Height = -1 }, "render size"},
		{"min font zero", func(c *Config) { c.Render.MinFontSize = 0 }, "font size"},
		{"max below min", func(c *Config) { c.Render.MaxFontSize = 5 }, "font size"},
		{"negative max words", func(c *Config) { c.Render.MaxWords = -1 }, "max_words"},
		{"bad background", func(c *Config) { c.Render.Background = "white" }, "background"},
		{"bad palette", func(c *Config) { c.Render.Palette = []string{"#12345"} }, "palette"},
		{"zero max bytes", func(c *Config) { c.Input.MaxBytes = 0 }, "max_bytes"},
		{"cache without dir", func(c *Config) { c.Cache.Dir = "" }, "cache dir"},
		{"history without path", func(c *Config) { c.History.Path = "" }, "history path"},
		{"negative rate", func(c *Config) { c.RateLimiting.RequestsPerSecond = -1 }, "requests_per_second"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateAcceptsDisabledPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache.Enabled = false
	cfg.Cache.Dir = ""
	cfg.History.Enabled = false
	cfg.History.Path = ""
	cfg.Render.Background = "fff"

	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
