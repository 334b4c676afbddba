// Package config loads the application configuration from YAML, on top of
// embedded defaults, and validates it against a JSON schema.
package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	golog "github.com/tochemey/goakt/v3/log"
	"gopkg.in/yaml.v3"

	"github.com/lao-tseu-is-alive/go-particle-field/pkg/particles"
)

//go:embed defaults.yaml
var defaultsYAML []byte

//go:embed schema.json
var schemaJSON string

var schema = jsonschema.MustCompileString("config.schema.json", schemaJSON)

// ErrInvalid wraps every schema or palette validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds the application settings. Particle field settings that users
// change at runtime live in particles.Config instead.
type Config struct {
	Window        WindowConfig                       `yaml:"window" json:"window"`
	Theme         string                             `yaml:"theme" json:"theme"`
	ReducedMotion bool                               `yaml:"reduced_motion" json:"reduced_motion"`
	Seed          uint64                             `yaml:"seed" json:"seed"`
	StorePath     string                             `yaml:"store_path" json:"store_path"`
	LogLevel      string                             `yaml:"log_level" json:"log_level"`
	Anchor        AnchorConfig                       `yaml:"anchor" json:"anchor"`
	Panel         PanelConfig                        `yaml:"panel" json:"panel"`
	Telemetry     TelemetryConfig                    `yaml:"telemetry" json:"telemetry"`
	Palette       map[string]map[string]SwatchConfig `yaml:"palette" json:"palette"`
}

type WindowConfig struct {
	Width     int    `yaml:"width" json:"width"`
	Height    int    `yaml:"height" json:"height"`
	Title     string `yaml:"title" json:"title"`
	Resizable bool   `yaml:"resizable" json:"resizable"`
}

// AnchorConfig describes the label the black hole is anchored to.
type AnchorConfig struct {
	Label  string  `yaml:"label" json:"label"`
	Scale  float64 `yaml:"scale" json:"scale"` // text magnification
	Hidden bool    `yaml:"hidden" json:"hidden"`
}

type PanelConfig struct {
	Width     int  `yaml:"width" json:"width"`
	ShowStats bool `yaml:"show_stats" json:"show_stats"`
}

// TelemetryConfig controls frame timing output. An empty CSVPath disables the
// CSV file; timings are still logged at debug level.
type TelemetryConfig struct {
	CSVPath string `yaml:"csv_path" json:"csv_path"`
	Window  int    `yaml:"window" json:"window"`
	Every   int    `yaml:"every" json:"every"`
}

// SwatchConfig overrides one palette entry.
type SwatchConfig struct {
	Particle   string `yaml:"particle" json:"particle"`
	Connection string `yaml:"connection" json:"connection"`
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Parse(nil)
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	if path == "" {
		return Parse(nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse merges data over the embedded defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	if len(data) > 0 {
		// only overwrites fields present in data
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks c against the config schema and parses the palette colors.
func (c *Config) Validate() error {
	// the schema sees the same document a JSON config would produce
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config for validation: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decoding config for validation: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := c.ParticlePalette(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// ParticlePalette returns the default palette with the configured overrides
// applied. A missing particle or connection color keeps the default one.
func (c *Config) ParticlePalette() (particles.Palette, error) {
	p := particles.DefaultPalette()
	for theme, schemes := range c.Palette {
		for scheme, sw := range schemes {
			t, s := particles.Theme(theme), particles.ColorScheme(scheme)
			base := p.Resolve(t, s, 1)
			if sw.Particle != "" {
				col, err := particles.ParseColor(sw.Particle)
				if err != nil {
					return nil, fmt.Errorf("palette %s/%s particle: %w", theme, scheme, err)
				}
				base.Particle = col
			}
			if sw.Connection != "" {
				col, err := particles.ParseColor(sw.Connection)
				if err != nil {
					return nil, fmt.Errorf("palette %s/%s connection: %w", theme, scheme, err)
				}
				base.Connection = col
			}
			p.Set(t, s, base)
		}
	}
	return p, nil
}

// ThemeValue is Theme as a particles.Theme.
func (c *Config) ThemeValue() particles.Theme {
	return particles.Theme(c.Theme)
}

// Level maps LogLevel to a logger level.
func (c *Config) Level() golog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return golog.DebugLevel
	case "warn", "warning":
		return golog.WarningLevel
	case "error":
		return golog.ErrorLevel
	}
	return golog.InfoLevel
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
