package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	golog "github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-particle-field/pkg/particles"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Window.Width != 1280 || cfg.Window.Height != 800 {
		t.Errorf("window = %dx%d; want 1280x800", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.ThemeValue() != particles.ThemeDark {
		t.Errorf("theme = %q; want dark", cfg.Theme)
	}
	if cfg.Telemetry.Window != 120 || cfg.Telemetry.CSVPath != "" {
		t.Errorf("telemetry = %+v", cfg.Telemetry)
	}
	if cfg.Anchor.Label == "" || cfg.Anchor.Scale != 3 {
		t.Errorf("anchor = %+v", cfg.Anchor)
	}
}

func TestParse_MergesOverDefaults(t *testing.T) {
	cfg, err := Parse([]byte("window:\n  width: 1024\ntheme: light\nseed: 7\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Window.Width != 1024 {
		t.Errorf("width = %d; want 1024", cfg.Window.Width)
	}
	if cfg.Window.Height != 800 || cfg.Window.Title != "Particle Field" {
		t.Errorf("unset window fields should keep defaults: %+v", cfg.Window)
	}
	if cfg.ThemeValue() != particles.ThemeLight || cfg.Seed != 7 {
		t.Errorf("theme = %q, seed = %d", cfg.Theme, cfg.Seed)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		yaml        string
		wantInvalid bool
	}{
		{"unknown theme", "theme: sepia\n", true},
		{"tiny window", "window:\n  width: 100\n", true},
		{"unknown log level", "log_level: loud\n", true},
		{"zero telemetry window", "telemetry:\n  window: 0\n", true},
		{"bad palette color", "palette:\n  dark:\n    accent:\n      particle: \"rgba(1, 2)\"\n", true},
		{"unknown palette theme", "palette:\n  sepia:\n    accent:\n      particle: \"#ffffff\"\n", true},
		{"unknown palette scheme", "palette:\n  dark:\n    neon:\n      particle: \"#ffffff\"\n", true},
		{"malformed yaml", "window: [\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Parse() should fail")
			}
			if got := errors.Is(err, ErrInvalid); got != tt.wantInvalid {
				t.Errorf("errors.Is(err, ErrInvalid) = %t; want %t (err: %v)", got, tt.wantInvalid, err)
			}
		})
	}
}

func TestParticlePalette_Overrides(t *testing.T) {
	cfg, err := Parse([]byte("palette:\n  dark:\n    accent:\n      particle: \"#ffffff\"\n  light:\n    greys:\n      connection: \"rgba(10, 20, 30, 0.25)\"\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	p, err := cfg.ParticlePalette()
	if err != nil {
		t.Fatal(err)
	}
	def := particles.DefaultPalette()

	dark := p.Resolve(particles.ThemeDark, particles.SchemeAccent, 1)
	if want := (particles.Color{R: 255, G: 255, B: 255, A: 1}); dark.Particle != want {
		t.Errorf("dark accent particle = %v; want %v", dark.Particle, want)
	}
	if want := def.Resolve(particles.ThemeDark, particles.SchemeAccent, 1).Connection; dark.Connection != want {
		t.Errorf("dark accent connection = %v; want the default %v", dark.Connection, want)
	}

	light := p.Resolve(particles.ThemeLight, particles.SchemeGreys, 1)
	if want := (particles.Color{R: 10, G: 20, B: 30, A: 0.25}); light.Connection != want {
		t.Errorf("light greys connection = %v; want %v", light.Connection, want)
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		in   string
		want golog.Level
	}{
		{"debug", golog.DebugLevel},
		{"info", golog.InfoLevel},
		{"WARN", golog.WarningLevel},
		{"warning", golog.WarningLevel},
		{"error", golog.ErrorLevel},
		{"", golog.InfoLevel},
	}
	for _, tt := range tests {
		cfg := &Config{LogLevel: tt.in}
		if got := cfg.Level(); got != tt.want {
			t.Errorf("Level(%q) = %v; want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoadAndWriteYAML(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of a missing file should fail")
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	cfg.Window.Title = "custom"
	cfg.Telemetry.CSVPath = "frames.csv"

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Window.Title != "custom" || loaded.Telemetry.CSVPath != "frames.csv" {
		t.Errorf("loaded = %+v", loaded)
	}
}
