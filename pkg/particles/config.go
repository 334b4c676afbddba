package particles

import "math"

// Mode selects how particles spawn and which force field applies.
type Mode string

const (
	ModeBlackHole Mode = "blackhole"
	ModeDeepSpace Mode = "deepspace"
)

// InteractionMode is the pointer polarity.
type InteractionMode string

const (
	InteractionAttract InteractionMode = "attract"
	InteractionRepel   InteractionMode = "repel"
	InteractionStatic  InteractionMode = "static"
)

// ColorScheme names a palette column.
type ColorScheme string

const (
	SchemeAccent ColorScheme = "accent"
	SchemeGreys  ColorScheme = "greys"
)

const (
	// MobileBreakpoint is the viewport width at or below which the field is
	// considered mobile.
	MobileBreakpoint = 768.0

	MobileParticleCount  = 150
	DesktopParticleCount = 250
	MaxParticleCount     = 450

	DefaultConnectionDistance = 150.0
	DefaultPointerRadius      = 150.0
	DefaultBlackHoleStrength  = 110.0

	MinBlackHoleStrength = 10.0
	MaxBlackHoleStrength = 330.0

	MinSpeed         = 0.1
	MaxSpeed         = 3.0
	MaxColorStrength = 2.0
)

// Config is the live configuration owned by a System.
type Config struct {
	ParticleCount      int
	ConnectionDistance float64
	PointerRadius      float64
	ColorScheme        ColorScheme
	ColorStrength      float64
	InteractionMode    InteractionMode
	Speed              float64
	Mode               Mode
	BlackHoleStrength  float64
	RememberMe         bool
}

// IsMobile reports whether a viewport width falls in the mobile class.
func IsMobile(width float64) bool {
	return width <= MobileBreakpoint
}

// DefaultParticleCount is the count used for a viewport class.
func DefaultParticleCount(mobile bool) int {
	if mobile {
		return MobileParticleCount
	}
	return DesktopParticleCount
}

// DefaultConfig returns the factory settings for a viewport class.
func DefaultConfig(mobile bool) Config {
	return Config{
		ParticleCount:      DefaultParticleCount(mobile),
		ConnectionDistance: DefaultConnectionDistance,
		PointerRadius:      DefaultPointerRadius,
		ColorScheme:        SchemeGreys,
		ColorStrength:      1.0,
		InteractionMode:    InteractionAttract,
		Speed:              1.0,
		Mode:               ModeBlackHole,
		BlackHoleStrength:  DefaultBlackHoleStrength,
		RememberMe:         false,
	}
}

// sanitize repairs values that would break the frame loop: unknown enums fall
// back to defaults and non-finite or negative numbers are clamped.
func (c Config) sanitize(mobile bool) Config {
	def := DefaultConfig(mobile)
	if c.ParticleCount < 0 {
		c.ParticleCount = 0
	}
	if !finitePositive(c.ConnectionDistance) {
		c.ConnectionDistance = def.ConnectionDistance
	}
	if !finitePositive(c.PointerRadius) {
		c.PointerRadius = def.PointerRadius
	}
	switch c.ColorScheme {
	case SchemeAccent, SchemeGreys:
	default:
		c.ColorScheme = def.ColorScheme
	}
	if math.IsNaN(c.ColorStrength) || c.ColorStrength < 0 {
		c.ColorStrength = def.ColorStrength
	}
	switch c.InteractionMode {
	case InteractionAttract, InteractionRepel, InteractionStatic:
	default:
		c.InteractionMode = def.InteractionMode
	}
	if !finitePositive(c.Speed) {
		c.Speed = def.Speed
	}
	switch c.Mode {
	case ModeBlackHole, ModeDeepSpace:
	default:
		c.Mode = def.Mode
	}
	if math.IsNaN(c.BlackHoleStrength) || math.IsInf(c.BlackHoleStrength, 0) {
		c.BlackHoleStrength = def.BlackHoleStrength
	}
	return c
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
