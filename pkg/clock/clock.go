// Package clock provides the cooperative scheduling used by the particle field:
// callbacks run once per display frame and callbacks run at a fixed interval,
// all on the goroutine that drives the Loop.
package clock

import (
	"time"
)

// Cancel unregisters a callback. Calling it more than once is harmless.
type Cancel func()

// Scheduler is what the particle system needs from its host.
type Scheduler interface {
	Now() time.Time
	// OnFrame registers fn to run on every display frame until cancelled.
	OnFrame(fn func()) Cancel
	// Every registers fn to run each time interval elapses until cancelled.
	Every(interval time.Duration, fn func()) Cancel
}

type frameEntry struct {
	id int
	fn func()
}

type timer struct {
	id       int
	interval time.Duration
	next     time.Time
	fn       func()
}

// Loop is a Scheduler driven from outside: the host calls Frame once per
// display frame and Poll whenever it wants interval callbacks to catch up.
// It is not safe for concurrent use.
type Loop struct {
	now    func() time.Time
	nextID int
	frames []frameEntry
	timers []*timer
}

var _ Scheduler = (*Loop)(nil)

// NewLoop creates a Loop reading time from now. A nil now uses time.Now.
func NewLoop(now func() time.Time) *Loop {
	if now == nil {
		now = time.Now
	}
	return &Loop{now: now}
}

func (l *Loop) Now() time.Time { return l.now() }

func (l *Loop) OnFrame(fn func()) Cancel {
	l.nextID++
	id := l.nextID
	l.frames = append(l.frames, frameEntry{id: id, fn: fn})
	return func() {
		for i, f := range l.frames {
			if f.id == id {
				l.frames = append(l.frames[:i], l.frames[i+1:]...)
				return
			}
		}
	}
}

func (l *Loop) Every(interval time.Duration, fn func()) Cancel {
	if interval <= 0 {
		interval = time.Millisecond
	}
	l.nextID++
	t := &timer{id: l.nextID, interval: interval, next: l.now().Add(interval), fn: fn}
	l.timers = append(l.timers, t)
	return func() {
		for i, other := range l.timers {
			if other.id == t.id {
				l.timers = append(l.timers[:i], l.timers[i+1:]...)
				return
			}
		}
	}
}

// Frame runs every registered frame callback once, in registration order.
func (l *Loop) Frame() {
	// callbacks may cancel themselves or register others
	pending := make([]frameEntry, len(l.frames))
	copy(pending, l.frames)
	for _, f := range pending {
		if l.hasFrame(f.id) {
			f.fn()
		}
	}
}

// Poll runs the interval callbacks that are due. A timer that fell behind by
// several intervals fires once and is rescheduled from now.
func (l *Loop) Poll() {
	now := l.now()
	pending := make([]*timer, len(l.timers))
	copy(pending, l.timers)
	for _, t := range pending {
		if now.Before(t.next) || !l.hasTimer(t.id) {
			continue
		}
		t.next = t.next.Add(t.interval)
		if !now.Before(t.next) {
			t.next = now.Add(t.interval)
		}
		t.fn()
	}
}

// Pending reports how many frame and interval callbacks are registered.
func (l *Loop) Pending() (frames, timers int) {
	return len(l.frames), len(l.timers)
}

func (l *Loop) hasFrame(id int) bool {
	for _, f := range l.frames {
		if f.id == id {
			return true
		}
	}
	return false
}

func (l *Loop) hasTimer(id int) bool {
	for _, t := range l.timers {
		if t.id == id {
			return true
		}
	}
	return false
}

func (l *Loop) earliest() (time.Time, bool) {
	var best time.Time
	found := false
	for _, t := range l.timers {
		if !found || t.next.Before(best) {
			best = t.next
			found = true
		}
	}
	return best, found
}
