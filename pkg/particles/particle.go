package particles

import (
	"math"
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-particle-field/pkg/geometry"
)

const (
	minRadius = 1.0
	maxRadius = 3.0

	MinMass = 0.6
	MaxMass = 1.4

	// initial velocity components are uniform in [-maxInitialSpeed, maxInitialSpeed)
	maxInitialSpeed = 0.25

	// black hole spawns land on a ring spawnGap + [0, maxSpawnOffset) beyond the anchor circle
	spawnGap       = 10.0
	maxSpawnOffset = 250.0

	// SelfDamping is applied to every particle's velocity after each step.
	SelfDamping = 0.99
	// WrapBuffer is how far past the viewport edge a deep space particle may
	// drift before it reappears on the opposite side.
	WrapBuffer = 200.0
)

// SpawnContext is what a new particle needs to know about the field.
type SpawnContext struct {
	Mode          Mode
	Anchor        *Circle
	Width, Height float64
	Speed         float64
}

// Particle is one dot of the field. Its mass and radius never change after
// creation; position and velocity evolve every frame.
type Particle struct {
	Pos             geometry.Vector2D
	Vel             geometry.Vector2D
	Radius          float64
	SpeedMultiplier float64

	mass float64
	mode Mode
}

// NewParticle places a particle for the given context. In black hole mode with
// an anchor it lands on a ring outside the circle, otherwise anywhere in the
// viewport.
func NewParticle(ctx SpawnContext, rng *rand.Rand) *Particle {
	p := &Particle{
		Radius:          minRadius + rng.Float64()*(maxRadius-minRadius),
		mass:            MinMass + rng.Float64()*(MaxMass-MinMass),
		SpeedMultiplier: ctx.Speed,
		mode:            ctx.Mode,
	}

	if ctx.Mode == ModeBlackHole && ctx.Anchor != nil {
		angle := rng.Float64() * 2 * math.Pi
		ring := ctx.Anchor.Radius + rng.Float64()*maxSpawnOffset + spawnGap
		p.Pos = ctx.Anchor.Center.Add(geometry.NewVectorPolar(ring, angle))
	} else {
		p.Pos = geometry.Vector2D{X: rng.Float64() * ctx.Width, Y: rng.Float64() * ctx.Height}
	}
	p.Vel = geometry.Vector2D{
		X: (rng.Float64() - 0.5) * 2 * maxInitialSpeed,
		Y: (rng.Float64() - 0.5) * 2 * maxInitialSpeed,
	}
	return p
}

// Mass is fixed at creation, in [MinMass, MaxMass).
func (p *Particle) Mass() float64 { return p.mass }

// Mode is the mode the particle was spawned in.
func (p *Particle) Mode() Mode { return p.mode }

// Integrate moves the particle by its velocity, applies self damping and, for
// deep space particles, wraps around the viewport with a WrapBuffer margin.
func (p *Particle) Integrate(width, height float64) {
	p.Pos = p.Pos.Add(p.Vel.Mul(p.SpeedMultiplier))
	p.Vel = p.Vel.Mul(SelfDamping)

	if p.mode != ModeDeepSpace {
		return
	}
	if p.Pos.X < -WrapBuffer {
		p.Pos.X = width + WrapBuffer
	} else if p.Pos.X > width+WrapBuffer {
		p.Pos.X = -WrapBuffer
	}
	if p.Pos.Y < -WrapBuffer {
		p.Pos.Y = height + WrapBuffer
	} else if p.Pos.Y > height+WrapBuffer {
		p.Pos.Y = -WrapBuffer
	}
}

// Draw renders the particle as a filled disc.
func (p *Particle) Draw(s Surface, c Color) {
	s.FillCircle(p.Pos.X, p.Pos.Y, p.Radius, c)
}
