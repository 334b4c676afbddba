package clock

import "time"

// Manual is a Loop whose time only moves when told to. It lets the particle
// core run headless and deterministic.
type Manual struct {
	*Loop
	t time.Time
}

// NewManual creates a manual clock starting at start.
func NewManual(start time.Time) *Manual {
	m := &Manual{t: start}
	m.Loop = NewLoop(func() time.Time { return m.t })
	return m
}

// Advance moves time forward by d, firing each interval callback at every
// boundary it crosses.
func (m *Manual) Advance(d time.Duration) {
	target := m.t.Add(d)
	for {
		next, ok := m.earliest()
		if !ok || next.After(target) {
			break
		}
		m.t = next
		m.Poll()
	}
	m.t = target
}

// Step advances by d and then renders one frame.
func (m *Manual) Step(d time.Duration) {
	m.Advance(d)
	m.Frame()
}
