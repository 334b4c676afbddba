package particles

import (
	"math"
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-particle-field/pkg/geometry"
)

// Force field tuning. None of these are physical; they were tuned by eye.
const (
	pointerGain = 0.2
	// in black hole mode the pointer gain is multiplied by strength/pointerStrengthDivisor
	pointerStrengthDivisor = 50.0

	containmentGain = 1.5
	// particles deeper than this fraction of the radius are also moved directly
	nudgeDepth = 0.9
	nudgeGain  = 0.1

	outerDistanceBase  = 380.0
	outerDistanceScale = 2.5
	shellBaseFraction  = 0.25
	shellMassSpread    = 1.1
	shellDeadZone      = 5.0
	shellGainDivisor   = 15000.0

	driftStrengthBase = 360.0
	driftMassBase     = 1.6
	driftDivisor      = 3000.0

	// SpinThreshold is the strength above which particles start orbiting.
	SpinThreshold      = 90.0
	spinReference      = 300.0
	spinExponent       = 0.75
	maxOrbitalSpeed    = 0.3
	outerConstrainGain = 1.0 / 50

	// BlackHoleDamping is applied to velocity every frame in black hole mode,
	// on top of SelfDamping.
	BlackHoleDamping = 0.92

	deepSpaceRepelGain = 0.5
)

// Evaluator computes the velocity change of a particle for one frame from the
// pointer, the anchor circle and the current settings.
type Evaluator struct {
	Mode              Mode
	Interaction       InteractionMode
	PointerRadius     float64
	BlackHoleStrength float64
	Pointer           Pointer
	// Anchor is nil when there is no anchor element.
	Anchor *Circle
	Rand   *rand.Rand
}

// NewEvaluator snapshots what the force field needs from the configuration.
func NewEvaluator(cfg Config, pointer Pointer, anchor *Circle, rng *rand.Rand) Evaluator {
	return Evaluator{
		Mode:              cfg.Mode,
		Interaction:       cfg.InteractionMode,
		PointerRadius:     cfg.PointerRadius,
		BlackHoleStrength: cfg.BlackHoleStrength,
		Pointer:           pointer,
		Anchor:            anchor,
		Rand:              rng,
	}
}

// Apply updates p's velocity in place. In black hole mode it may also move p
// directly when the particle sits deep inside the anchor circle. Black hole
// rules need an anchor; without one the deep space rules apply.
func (e Evaluator) Apply(p *Particle) {
	if e.Mode == ModeBlackHole && e.Anchor != nil {
		e.applyBlackHole(p)
		return
	}

	p.Vel = p.Vel.Add(e.pointerForce(p.Pos, 1))
	if e.Anchor != nil {
		p.Vel = p.Vel.Add(deepSpaceRepel(p.Pos, *e.Anchor))
	}
}

func (e Evaluator) applyBlackHole(p *Particle) {
	s := e.BlackHoleStrength
	c := *e.Anchor

	toCenter := c.Center.Sub(p.Pos)
	dist := toCenter.Len()
	dir := unit(toCenter.Angle())
	maxOuter := MaxOuterDistance(s)
	fromEdge := dist - c.Radius

	v := p.Vel.Add(e.pointerForce(p.Pos, s/pointerStrengthDivisor))

	dv, nudge := containment(dist, dir, c.Radius)
	v = v.Add(dv)
	p.Pos = p.Pos.Add(nudge)

	v = v.Add(shellForce(fromEdge, dir, p.mass, s))
	v = v.Add(drift(p.mass, s, e.Rand))
	v = v.Add(orbitalForce(dir, s))

	v = v.Mul(BlackHoleDamping)
	v = v.Add(outerConstraint(fromEdge, dir, maxOuter))

	p.Vel = v
}

// pointerForce pulls (attract) or pushes (repel) particles inside the pointer
// radius with a linear falloff. It is zero when interaction is static or the
// pointer is idle.
func (e Evaluator) pointerForce(pos geometry.Vector2D, scale float64) geometry.Vector2D {
	if e.Interaction == InteractionStatic || !e.Pointer.Active || e.PointerRadius <= 0 {
		return geometry.Vector2D{}
	}
	toPointer := e.Pointer.Pos.Sub(pos)
	dist := toPointer.Len()
	if dist >= e.PointerRadius {
		return geometry.Vector2D{}
	}

	force := (e.PointerRadius - dist) / e.PointerRadius
	gain := pointerGain
	if e.Interaction == InteractionRepel {
		gain = -pointerGain
	}
	return unit(toPointer.Angle()).Mul(force * gain * scale)
}

// containment pushes a particle that is inside the circle back out, in
// proportion to how deep it is. Deep particles also get a direct position
// nudge so they cannot linger inside the circle.
func containment(dist float64, toCenter geometry.Vector2D, radius float64) (dv, nudge geometry.Vector2D) {
	if dist >= radius || radius <= 0 {
		return geometry.Vector2D{}, geometry.Vector2D{}
	}
	force := (radius - dist) / radius
	dv = toCenter.Mul(-force * containmentGain)
	if dist < radius*nudgeDepth {
		nudge = toCenter.Mul(-(radius - dist) * nudgeGain)
	}
	return dv, nudge
}

// MaxOuterDistance is how far beyond the circumference particles may roam for
// a given strength. Stronger fields hold particles closer.
func MaxOuterDistance(strength float64) float64 {
	return (outerDistanceBase - strength) * outerDistanceScale
}

// ShellTarget is the preferred distance from the circumference for a particle
// of the given mass. Lighter particles settle farther out.
func ShellTarget(mass, strength float64) float64 {
	maxOuter := MaxOuterDistance(strength)
	return maxOuter*shellBaseFraction + (1-mass)*maxOuter*shellMassSpread
}

// shellForce steers a particle toward its shell target once it is more than
// shellDeadZone away from it. fromEdge is the signed distance from the
// circumference (negative inside).
func shellForce(fromEdge float64, toCenter geometry.Vector2D, mass, strength float64) geometry.Vector2D {
	miss := fromEdge - ShellTarget(mass, strength)
	if math.Abs(miss) <= shellDeadZone {
		return geometry.Vector2D{}
	}
	return toCenter.Mul(miss * strength / shellGainDivisor)
}

// DriftAmplitude is the full width of the per-axis random jitter. Weak fields
// and light particles drift more.
func DriftAmplitude(mass, strength float64) float64 {
	return (driftStrengthBase - strength) * (driftMassBase - mass) / driftDivisor
}

func drift(mass, strength float64, rng *rand.Rand) geometry.Vector2D {
	if rng == nil {
		return geometry.Vector2D{}
	}
	amp := DriftAmplitude(mass, strength)
	return geometry.Vector2D{
		X: (rng.Float64() - 0.5) * amp,
		Y: (rng.Float64() - 0.5) * amp,
	}
}

// OrbitalSpeed is the tangential kick per frame. It is zero up to
// SpinThreshold and grows as a 0.75 power of the strength above it.
func OrbitalSpeed(strength float64) float64 {
	if strength <= SpinThreshold {
		return 0
	}
	position := (strength - SpinThreshold) / (spinReference - SpinThreshold)
	return maxOrbitalSpeed * math.Pow(position, spinExponent)
}

func orbitalForce(toCenter geometry.Vector2D, strength float64) geometry.Vector2D {
	return toCenter.Perp().Mul(OrbitalSpeed(strength))
}

// outerConstraint pulls back particles that escaped past maxOuter.
func outerConstraint(fromEdge float64, toCenter geometry.Vector2D, maxOuter float64) geometry.Vector2D {
	if fromEdge <= maxOuter {
		return geometry.Vector2D{}
	}
	return toCenter.Mul((fromEdge - maxOuter) * outerConstrainGain)
}

// deepSpaceRepel gently pushes particles out of the anchor circle.
func deepSpaceRepel(pos geometry.Vector2D, c Circle) geometry.Vector2D {
	toCenter := c.Center.Sub(pos)
	dist := toCenter.Len()
	if dist >= c.Radius || c.Radius <= 0 {
		return geometry.Vector2D{}
	}
	force := (c.Radius - dist) / c.Radius
	return unit(toCenter.Angle()).Mul(-force * deepSpaceRepelGain)
}

func unit(angle float64) geometry.Vector2D {
	return geometry.Vector2D{X: math.Cos(angle), Y: math.Sin(angle)}
}
