package particles

import (
	"encoding/json"
	"testing"
)

func TestDecodePreferences(t *testing.T) {
	def := DefaultConfig(false)

	t.Run("partial record overlays defaults", func(t *testing.T) {
		prefs, err := DecodePreferences([]byte(`{"rememberMe":true,"mode":"deepspace","speed":2}`), def)
		if err != nil {
			t.Fatalf("DecodePreferences() error = %v", err)
		}
		if prefs.Mode != ModeDeepSpace || prefs.Speed != 2 || !prefs.RememberMe {
			t.Errorf("decoded values not applied: %+v", prefs)
		}
		if prefs.ParticleCount != DesktopParticleCount || prefs.ColorScheme != SchemeGreys {
			t.Errorf("missing fields should keep defaults: %+v", prefs)
		}
		if prefs.Version != "" {
			t.Errorf("Version = %q; want empty when not stored", prefs.Version)
		}
	})

	invalid := []struct {
		name string
		raw  string
	}{
		{"malformed json", `{"rememberMe": tru`},
		{"unknown mode", `{"rememberMe":true,"mode":"warp"}`},
		{"missing rememberMe", `{"mode":"deepspace"}`},
		{"negative count", `{"rememberMe":true,"particleCount":-5}`},
		{"zero speed", `{"rememberMe":true,"speed":0}`},
		{"wrong type", `{"rememberMe":"yes"}`},
		{"not an object", `[1, 2, 3]`},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodePreferences([]byte(tt.raw), def); err == nil {
				t.Errorf("DecodePreferences(%s) should fail", tt.raw)
			}
		})
	}
}

func storedPreferences(t *testing.T, h *harness) (Preferences, bool) {
	t.Helper()
	raw, ok := h.store.Get(PreferencesKey)
	if !ok {
		return Preferences{}, false
	}
	var p Preferences
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("stored preferences are not json: %v", err)
	}
	return p, true
}

func TestSystem_LoadsPreferences(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		want        func(Config) Config
		wantVersion string
	}{
		{
			name:        "malformed record fails open",
			raw:         `{{{`,
			want:        func(c Config) Config { return c },
			wantVersion: "",
		},
		{
			name:        "schema violation fails open",
			raw:         `{"rememberMe":true,"interactionMode":"orbit"}`,
			want:        func(c Config) Config { return c },
			wantVersion: "",
		},
		{
			name: "remembered record is applied",
			raw:  `{"rememberMe":true,"particleCount":80,"mode":"deepspace","colorScheme":"accent","blackHoleStrength":200,"version":"2.0"}`,
			want: func(c Config) Config {
				c.ParticleCount = 80
				c.Mode = ModeDeepSpace
				c.ColorScheme = SchemeAccent
				c.BlackHoleStrength = 200
				c.RememberMe = true
				return c
			},
			wantVersion: "2.0",
		},
		{
			name:        "record that opted out is ignored",
			raw:         `{"rememberMe":false,"particleCount":80,"version":"2.1"}`,
			want:        func(c Config) Config { return c },
			wantVersion: "2.1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(func(h *harness, _ *Options) {
				_ = h.store.Set(PreferencesKey, tt.raw)
			})
			want := tt.want(DefaultConfig(false))
			if got := h.sys.Config(); got != want {
				t.Errorf("Config() = %+v; want %+v", got, want)
			}
			if got := len(h.sys.Particles()); got != want.ParticleCount {
				t.Errorf("len(Particles()) = %d; want %d", got, want.ParticleCount)
			}
			if got := h.sys.StoredVersion(); got != tt.wantVersion {
				t.Errorf("StoredVersion() = %q; want %q", got, tt.wantVersion)
			}
		})
	}
}

func TestSystem_RememberSaveForget(t *testing.T) {
	h := newHarness(nil)

	h.sys.SetBlackHoleStrength(200)
	if _, ok := storedPreferences(t, h); ok {
		t.Fatal("nothing should be stored while remember me is off")
	}

	h.sys.SetRememberMe(true)
	p, ok := storedPreferences(t, h)
	if !ok {
		t.Fatal("SetRememberMe(true) should save immediately")
	}
	if p.BlackHoleStrength != 200 || !p.RememberMe || p.Version != Version {
		t.Errorf("stored = %+v", p)
	}

	h.sys.SetColorStrength(1.5)
	h.sys.SetInteractionMode(InteractionRepel)
	h.sys.SetConnectionDistance(90)
	p, _ = storedPreferences(t, h)
	if p.ColorStrength != 1.5 || p.InteractionMode != InteractionRepel || p.ConnectionDistance != 90 {
		t.Errorf("setters should persist while remembered, stored = %+v", p)
	}

	reloaded := newHarness(func(r *harness, o *Options) {
		r.store = h.store
		o.Store = h.store
	})
	if got := reloaded.sys.Config(); got.BlackHoleStrength != 200 || got.InteractionMode != InteractionRepel || !got.RememberMe {
		t.Errorf("reloaded config = %+v", got)
	}
	if got := reloaded.sys.StoredVersion(); got != Version {
		t.Errorf("StoredVersion() = %q; want %q", got, Version)
	}

	h.sys.SetRememberMe(false)
	if _, ok := storedPreferences(t, h); ok {
		t.Error("SetRememberMe(false) should forget the stored record")
	}
}

func TestSystem_Reset(t *testing.T) {
	h := newHarness(nil)
	h.sys.SetRememberMe(true)
	h.sys.SetMode(ModeDeepSpace)
	h.sys.SetParticleCount(12)
	h.sys.SetSpeed(2.5)

	h.sys.Reset()

	if got, want := h.sys.Config(), DefaultConfig(false); got != want {
		t.Errorf("Config() = %+v; want %+v", got, want)
	}
	if got := len(h.sys.Particles()); got != DesktopParticleCount {
		t.Errorf("len(Particles()) = %d; want %d", got, DesktopParticleCount)
	}
	for _, p := range h.sys.Particles() {
		if p.Mode() != ModeBlackHole || p.SpeedMultiplier != 1 {
			t.Fatalf("particle not recreated with defaults: mode %v speed %v", p.Mode(), p.SpeedMultiplier)
		}
	}
	if _, ok := storedPreferences(t, h); ok {
		t.Error("Reset should forget the stored record")
	}
}
