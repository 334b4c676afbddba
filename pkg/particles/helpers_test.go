package particles

import (
	"math/rand/v2"
	"time"

	"github.com/lao-tseu-is-alive/go-particle-field/pkg/clock"
	"github.com/lao-tseu-is-alive/go-particle-field/pkg/store"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type line struct {
	x1, y1, x2, y2 float64
	c              Color
}

type circle struct {
	x, y, r float64
	c       Color
}

// recordingSurface keeps the primitives drawn since the last Clear.
type recordingSurface struct {
	clears  int
	circles []circle
	lines   []line
}

func (r *recordingSurface) Clear() {
	r.clears++
	r.circles = r.circles[:0]
	r.lines = r.lines[:0]
}

func (r *recordingSurface) FillCircle(x, y, radius float64, c Color) {
	r.circles = append(r.circles, circle{x, y, radius, c})
}

func (r *recordingSurface) StrokeLine(x1, y1, x2, y2, _ float64, c Color) {
	r.lines = append(r.lines, line{x1, y1, x2, y2, c})
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

type harness struct {
	sys      *System
	surface  *recordingSurface
	clock    *clock.Manual
	events   *Broadcaster
	store    *store.Memory
	width    float64
	height   float64
	anchor   Rect
	noAnchor bool
}

func newHarness(mutate func(h *harness, o *Options)) *harness {
	h := &harness{
		surface: &recordingSurface{},
		clock:   clock.NewManual(epoch),
		events:  NewBroadcaster(),
		store:   store.NewMemory(),
		width:   1280,
		height:  800,
		anchor:  Rect{X: 560, Y: 370, Width: 160, Height: 60},
	}
	opts := Options{
		Surface:   h.surface,
		Viewport:  ViewportFunc(func() (float64, float64) { return h.width, h.height }),
		Scheduler: h.clock,
		Events:    h.events,
		Anchor: AnchorFunc(func() (Rect, bool) {
			return h.anchor, !h.noAnchor
		}),
		Store: h.store,
		Theme: func() Theme { return ThemeDark },
		Rand:  seeded(42),
	}
	if mutate != nil {
		mutate(h, &opts)
	}
	h.sys = New(opts)
	return h
}
