package particles

import (
	"testing"

	"github.com/lao-tseu-is-alive/go-particle-field/pkg/geometry"
)

func TestNewParticle_Ranges(t *testing.T) {
	rng := seeded(7)
	anchor := &Circle{Center: geometry.Vector2D{X: 500, Y: 400}, Radius: 120}

	tests := []struct {
		name string
		ctx  SpawnContext
	}{
		{"deep space", SpawnContext{Mode: ModeDeepSpace, Anchor: anchor, Width: 1000, Height: 800, Speed: 1.5}},
		{"black hole", SpawnContext{Mode: ModeBlackHole, Anchor: anchor, Width: 1000, Height: 800, Speed: 1.5}},
		{"black hole without anchor", SpawnContext{Mode: ModeBlackHole, Width: 1000, Height: 800, Speed: 1.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 500; i++ {
				p := NewParticle(tt.ctx, rng)
				if p.Mass() < MinMass || p.Mass() >= MaxMass {
					t.Fatalf("mass %v out of [%v, %v)", p.Mass(), MinMass, MaxMass)
				}
				if p.Radius < minRadius || p.Radius >= maxRadius {
					t.Fatalf("radius %v out of range", p.Radius)
				}
				if p.Vel.X < -maxInitialSpeed || p.Vel.X >= maxInitialSpeed ||
					p.Vel.Y < -maxInitialSpeed || p.Vel.Y >= maxInitialSpeed {
					t.Fatalf("initial velocity %v out of range", p.Vel)
				}
				if p.SpeedMultiplier != 1.5 {
					t.Fatalf("speed multiplier = %v; want 1.5", p.SpeedMultiplier)
				}
				if p.Mode() != tt.ctx.Mode {
					t.Fatalf("mode = %v; want %v", p.Mode(), tt.ctx.Mode)
				}

				if tt.ctx.Mode == ModeBlackHole && tt.ctx.Anchor != nil {
					d := p.Pos.DistanceTo(anchor.Center)
					lo, hi := anchor.Radius+spawnGap, anchor.Radius+spawnGap+maxSpawnOffset
					if d < lo-1e-9 || d >= hi+1e-9 {
						t.Fatalf("black hole spawn at distance %v; want [%v, %v)", d, lo, hi)
					}
					continue
				}
				if p.Pos.X < 0 || p.Pos.X >= tt.ctx.Width || p.Pos.Y < 0 || p.Pos.Y >= tt.ctx.Height {
					t.Fatalf("spawn %v outside the viewport", p.Pos)
				}
			}
		})
	}
}

func TestParticle_Integrate(t *testing.T) {
	p := &Particle{
		Pos:             geometry.Vector2D{X: 10, Y: 20},
		Vel:             geometry.Vector2D{X: 2, Y: -1},
		SpeedMultiplier: 1.5,
		mode:            ModeDeepSpace,
	}
	p.Integrate(1000, 800)
	if want := (geometry.Vector2D{X: 13, Y: 18.5}); !p.Pos.Eq(want) {
		t.Errorf("Pos = %v; want %v", p.Pos, want)
	}
	if want := (geometry.Vector2D{X: 2 * SelfDamping, Y: -SelfDamping}); !p.Vel.Eq(want) {
		t.Errorf("Vel = %v; want %v", p.Vel, want)
	}
}

func TestParticle_Wrap(t *testing.T) {
	const w, h = 1000.0, 800.0
	tests := []struct {
		name string
		pos  geometry.Vector2D
		want geometry.Vector2D
	}{
		{"left", geometry.Vector2D{X: -WrapBuffer - 1, Y: 100}, geometry.Vector2D{X: w + WrapBuffer, Y: 100}},
		{"right", geometry.Vector2D{X: w + WrapBuffer + 1, Y: 100}, geometry.Vector2D{X: -WrapBuffer, Y: 100}},
		{"top", geometry.Vector2D{X: 100, Y: -WrapBuffer - 1}, geometry.Vector2D{X: 100, Y: h + WrapBuffer}},
		{"bottom", geometry.Vector2D{X: 100, Y: h + WrapBuffer + 1}, geometry.Vector2D{X: 100, Y: -WrapBuffer}},
		{"inside the buffer", geometry.Vector2D{X: -WrapBuffer, Y: h + WrapBuffer}, geometry.Vector2D{X: -WrapBuffer, Y: h + WrapBuffer}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Particle{Pos: tt.pos, SpeedMultiplier: 1, mode: ModeDeepSpace}
			p.Integrate(w, h)
			if !p.Pos.Eq(tt.want) {
				t.Errorf("Pos = %v; want %v", p.Pos, tt.want)
			}
		})
	}

	t.Run("black hole particles never wrap", func(t *testing.T) {
		start := geometry.Vector2D{X: -WrapBuffer - 50, Y: h + WrapBuffer + 50}
		p := &Particle{Pos: start, SpeedMultiplier: 1, mode: ModeBlackHole}
		p.Integrate(w, h)
		if !p.Pos.Eq(start) {
			t.Errorf("Pos = %v; want %v", p.Pos, start)
		}
	})
}

func TestParticle_Draw(t *testing.T) {
	s := &recordingSurface{}
	c := MustParseColor("rgba(1, 2, 3, 0.5)")
	p := &Particle{Pos: geometry.Vector2D{X: 4, Y: 5}, Radius: 2}
	p.Draw(s, c)
	if len(s.circles) != 1 {
		t.Fatalf("drew %d circles; want 1", len(s.circles))
	}
	if got := s.circles[0]; got != (circle{4, 5, 2, c}) {
		t.Errorf("circle = %+v", got)
	}
}

func TestAnchorCircle(t *testing.T) {
	bounds := Rect{X: 100, Y: 50, Width: 200, Height: 80}
	tests := []struct {
		mobile bool
		radius float64
	}{
		{false, 160},
		{true, 230},
	}
	for _, tt := range tests {
		c := AnchorCircle(bounds, tt.mobile)
		if !c.Center.Eq(geometry.Vector2D{X: 200, Y: 90}) {
			t.Errorf("mobile=%t: center = %v; want (200, 90)", tt.mobile, c.Center)
		}
		if !near(c.Radius, tt.radius, 1e-9) {
			t.Errorf("mobile=%t: radius = %v; want %v", tt.mobile, c.Radius, tt.radius)
		}
	}

	c := Circle{Center: geometry.Vector2D{X: 0, Y: 0}, Radius: 100}
	if got := c.NearestEdgePoint(geometry.Vector2D{X: 250, Y: 0}); !got.Eq(geometry.Vector2D{X: 100, Y: 0}) {
		t.Errorf("NearestEdgePoint = %v; want (100, 0)", got)
	}
	if got := c.NearestEdgePoint(geometry.Vector2D{X: 0, Y: -300}); !got.Eq(geometry.Vector2D{X: 0, Y: -100}) {
		t.Errorf("NearestEdgePoint = %v; want (0, -100)", got)
	}
	if !c.Contains(geometry.Vector2D{X: 50, Y: 50}) || c.Contains(geometry.Vector2D{X: 100, Y: 0}) {
		t.Error("Contains should be strict")
	}
}
