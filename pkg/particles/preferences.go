package particles

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/lao-tseu-is-alive/go-particle-field/pkg/store"
)

const (
	// PreferencesKey is the store key of the remembered settings.
	PreferencesKey = "particlePreferences"
	// PanelExpandedKey remembers whether the settings panel was open.
	PanelExpandedKey = "particleControlsExpanded"
	// DemoPlayedKey marks the onboarding demo as played for this session.
	DemoPlayedKey = "particleDemoPlayed"

	// Version is written with saved preferences. Bumping it replays the
	// onboarding demo once for users who asked to be remembered.
	Version = "2.1"
)

const preferencesSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["rememberMe"],
  "properties": {
    "particleCount":      {"type": "integer", "minimum": 0, "maximum": 10000},
    "connectionDistance": {"type": "number", "exclusiveMinimum": 0},
    "colorScheme":        {"enum": ["accent", "greys"]},
    "colorStrength":      {"type": "number", "minimum": 0},
    "interactionMode":    {"enum": ["attract", "repel", "static"]},
    "speed":              {"type": "number", "exclusiveMinimum": 0},
    "mode":               {"enum": ["blackhole", "deepspace"]},
    "blackHoleStrength":  {"type": "number"},
    "rememberMe":         {"type": "boolean"},
    "version":            {"type": "string"}
  }
}`

var preferencesSchema = jsonschema.MustCompileString("particle-preferences.json", preferencesSchemaJSON)

// Preferences is the persisted form of Config.
type Preferences struct {
	ParticleCount      int             `json:"particleCount"`
	ConnectionDistance float64         `json:"connectionDistance"`
	ColorScheme        ColorScheme     `json:"colorScheme"`
	ColorStrength      float64         `json:"colorStrength"`
	InteractionMode    InteractionMode `json:"interactionMode"`
	Speed              float64         `json:"speed"`
	Mode               Mode            `json:"mode"`
	BlackHoleStrength  float64         `json:"blackHoleStrength"`
	RememberMe         bool            `json:"rememberMe"`
	Version            string          `json:"version"`
}

func preferencesFromConfig(c Config) Preferences {
	return Preferences{
		ParticleCount:      c.ParticleCount,
		ConnectionDistance: c.ConnectionDistance,
		ColorScheme:        c.ColorScheme,
		ColorStrength:      c.ColorStrength,
		InteractionMode:    c.InteractionMode,
		Speed:              c.Speed,
		Mode:               c.Mode,
		BlackHoleStrength:  c.BlackHoleStrength,
		RememberMe:         c.RememberMe,
		Version:            Version,
	}
}

// apply overlays the persisted values on c. The pointer radius is not persisted.
func (p Preferences) apply(c Config) Config {
	c.ParticleCount = p.ParticleCount
	c.ConnectionDistance = p.ConnectionDistance
	c.ColorScheme = p.ColorScheme
	c.ColorStrength = p.ColorStrength
	c.InteractionMode = p.InteractionMode
	c.Speed = p.Speed
	c.Mode = p.Mode
	c.BlackHoleStrength = p.BlackHoleStrength
	c.RememberMe = p.RememberMe
	return c
}

// ErrNoPreferences means the store holds no preferences record.
var ErrNoPreferences = errors.New("no stored preferences")

// DecodePreferences validates raw against the preferences schema and overlays
// it on def. Fields missing from raw keep their value from def.
func DecodePreferences(raw []byte, def Config) (Preferences, error) {
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Preferences{}, fmt.Errorf("decode preferences: %w", err)
	}
	if err := preferencesSchema.Validate(doc); err != nil {
		return Preferences{}, fmt.Errorf("preferences validation failed: %w", err)
	}

	prefs := preferencesFromConfig(def)
	prefs.Version = ""
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return Preferences{}, fmt.Errorf("unmarshal preferences: %w", err)
	}
	return prefs, nil
}

// loadPreferences reads the remembered settings. It returns def unchanged when
// nothing usable is stored, and def with RememberMe off when the stored record
// did not ask to be remembered.
func loadPreferences(st store.Store, def Config) (Config, Preferences, error) {
	if st == nil {
		return def, Preferences{}, ErrNoPreferences
	}
	raw, ok := st.Get(PreferencesKey)
	if !ok {
		return def, Preferences{}, ErrNoPreferences
	}
	prefs, err := DecodePreferences([]byte(raw), def)
	if err != nil {
		return def, Preferences{}, err
	}
	if !prefs.RememberMe {
		def.RememberMe = false
		return def, prefs, nil
	}
	return prefs.apply(def), prefs, nil
}

func savePreferences(st store.Store, c Config) error {
	if st == nil {
		return nil
	}
	b, err := json.Marshal(preferencesFromConfig(c))
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := st.Set(PreferencesKey, string(b)); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}
