package particles

import (
	"fmt"
	"image/color"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Theme is the page theme read every frame to pick a palette.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Color is an 8-bit RGB color with a real-valued alpha in [0,1]. Alpha stays a
// float so opacity arithmetic is exact until the color reaches the surface.
type Color struct {
	R, G, B uint8
	A       float64
}

var rgbaPattern = regexp.MustCompile(`^rgba?\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*(?:,\s*([\d.]+)\s*)?\)$`)

// ParseColor accepts "rgba(r, g, b, a)", "rgb(r, g, b)" or "#rrggbb".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return Color{R: r, G: g, B: b, A: 1}, nil
	}

	m := rgbaPattern.FindStringSubmatch(s)
	if m == nil {
		return Color{}, fmt.Errorf("parse color %q: unsupported format", s)
	}
	var channels [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(m[i+1])
		if err != nil || v > 255 {
			return Color{}, fmt.Errorf("parse color %q: channel %d out of range", s, i)
		}
		channels[i] = uint8(v)
	}
	alpha := 1.0
	if m[4] != "" {
		a, err := strconv.ParseFloat(m[4], 64)
		if err != nil {
			return Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		alpha = clamp01(a)
	}
	return Color{R: channels[0], G: channels[1], B: channels[2], A: alpha}, nil
}

// MustParseColor is ParseColor for package-level palette literals.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Color) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, strconv.FormatFloat(c.A, 'f', -1, 64))
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = clamp01(a)
	return c
}

// ScaleAlpha multiplies the alpha by m, clamped to [0,1].
func (c Color) ScaleAlpha(m float64) Color {
	return c.WithAlpha(c.A * m)
}

// NRGBA converts to a non-premultiplied image color for drawing.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(clamp01(c.A) * 255))}
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// Swatch is the pair of colors used for one frame.
type Swatch struct {
	Particle   Color
	Connection Color
}

// Palette maps theme and color scheme to a swatch.
type Palette map[Theme]map[ColorScheme]Swatch

// DefaultPalette is the blue (light) and orange (dark) palette. Both schemes
// start from the same colors; config overrides tell them apart.
func DefaultPalette() Palette {
	lightAccent := Swatch{
		Particle:   MustParseColor("rgba(21, 181, 255, 0.8)"),
		Connection: MustParseColor("rgba(21, 181, 255, 0.5)"),
	}
	darkAccent := Swatch{
		Particle:   MustParseColor("rgba(234, 88, 12, 0.8)"),
		Connection: MustParseColor("rgba(234, 88, 12, 0.5)"),
	}
	return Palette{
		ThemeLight: {
			SchemeAccent: lightAccent,
			SchemeGreys:  lightAccent,
		},
		ThemeDark: {
			SchemeAccent: darkAccent,
			SchemeGreys:  darkAccent,
		},
	}
}

// Set replaces one entry, creating the theme if needed.
func (p Palette) Set(theme Theme, scheme ColorScheme, s Swatch) {
	if p[theme] == nil {
		p[theme] = make(map[ColorScheme]Swatch)
	}
	p[theme][scheme] = s
}

// Resolve picks the swatch for theme and scheme and scales both alphas by
// strength, never above 1. Unknown themes fall back to light and unknown
// schemes to accent.
func (p Palette) Resolve(theme Theme, scheme ColorScheme, strength float64) Swatch {
	schemes, ok := p[theme]
	if !ok {
		schemes = p[ThemeLight]
	}
	s, ok := schemes[scheme]
	if !ok {
		s = schemes[SchemeAccent]
	}
	return Swatch{
		Particle:   s.Particle.ScaleAlpha(strength),
		Connection: s.Connection.ScaleAlpha(strength),
	}
}
