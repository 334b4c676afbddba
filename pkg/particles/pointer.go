package particles

import (
	"time"

	"github.com/lao-tseu-is-alive/go-particle-field/pkg/geometry"
)

const (
	// PointerIdleTimeout is how long after its last movement the pointer
	// stops influencing particles.
	PointerIdleTimeout = 800 * time.Millisecond
	// PointerIdleCheckInterval is the cadence of the idle check.
	PointerIdleCheckInterval = 100 * time.Millisecond
)

// Pointer is the last known pointer position and whether it is active.
type Pointer struct {
	Pos      geometry.Vector2D
	Active   bool
	LastMove time.Time
}

func (p *Pointer) move(x, y float64, at time.Time) {
	p.Pos = geometry.Vector2D{X: x, Y: y}
	p.LastMove = at
	p.Active = true
}

func (p *Pointer) enter(at time.Time) {
	p.LastMove = at
	p.Active = true
}

func (p *Pointer) leave() {
	p.Active = false
}

// decay deactivates the pointer once it has been idle longer than timeout.
func (p *Pointer) decay(now time.Time, timeout time.Duration) bool {
	if p.Active && now.Sub(p.LastMove) > timeout {
		p.Active = false
		return true
	}
	return false
}
