package particles

import "time"

// Surface is the drawing target for one frame.
type Surface interface {
	Clear()
	FillCircle(x, y, radius float64, c Color)
	StrokeLine(x1, y1, x2, y2, width float64, c Color)
}

// Viewport reports the current drawable size in pixels.
type Viewport interface {
	Size() (width, height float64)
}

// ViewportFunc adapts a function to Viewport.
type ViewportFunc func() (float64, float64)

func (f ViewportFunc) Size() (float64, float64) { return f() }

// AnchorSource reports the bounding box of the element the black hole is
// anchored to. ok is false when there is no such element.
type AnchorSource interface {
	AnchorBounds() (r Rect, ok bool)
}

// AnchorFunc adapts a function to AnchorSource.
type AnchorFunc func() (Rect, bool)

func (f AnchorFunc) AnchorBounds() (Rect, bool) { return f() }

// EventKind identifies a host input event.
type EventKind int

const (
	EventPointerMove EventKind = iota
	EventPointerEnter
	EventPointerLeave
	EventResize
)

func (k EventKind) String() string {
	switch k {
	case EventPointerMove:
		return "pointer-move"
	case EventPointerEnter:
		return "pointer-enter"
	case EventPointerLeave:
		return "pointer-leave"
	case EventResize:
		return "resize"
	}
	return "unknown"
}

// Event is a pointer or viewport notification from the host.
type Event struct {
	Kind EventKind
	X, Y float64
	At   time.Time
}

// EventSource delivers host events to a subscriber until unsubscribed.
type EventSource interface {
	Subscribe(handler func(Event)) (unsubscribe func())
}

// Broadcaster is an EventSource that hosts feed with Emit.
type Broadcaster struct {
	nextID   int
	handlers map[int]func(Event)
	order    []int
}

var _ EventSource = (*Broadcaster)(nil)

// NewBroadcaster creates an EventSource with no subscribers.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{handlers: make(map[int]func(Event))}
}

func (b *Broadcaster) Subscribe(handler func(Event)) func() {
	b.nextID++
	id := b.nextID
	b.handlers[id] = handler
	b.order = append(b.order, id)
	return func() {
		if _, ok := b.handlers[id]; !ok {
			return
		}
		delete(b.handlers, id)
		for i, v := range b.order {
			if v == id {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
	}
}

// Emit delivers e to every subscriber in subscription order.
func (b *Broadcaster) Emit(e Event) {
	for _, id := range append([]int(nil), b.order...) {
		if h, ok := b.handlers[id]; ok {
			h(e)
		}
	}
}

// Subscribers reports the number of live subscriptions.
func (b *Broadcaster) Subscribers() int {
	return len(b.handlers)
}
