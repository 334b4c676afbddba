package clock

import (
	"testing"
	"time"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestLoop_FrameOrderAndCancel(t *testing.T) {
	l := NewLoop(nil)
	var calls []string

	cancelA := l.OnFrame(func() { calls = append(calls, "a") })
	l.OnFrame(func() { calls = append(calls, "b") })

	l.Frame()
	cancelA()
	cancelA() // second cancel is a no-op
	l.Frame()

	want := []string{"a", "b", "b"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v; want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("calls[%d] = %q; want %q", i, calls[i], want[i])
		}
	}
}

func TestLoop_FrameCallbackCancelsAnother(t *testing.T) {
	l := NewLoop(nil)
	ran := false
	var cancelB Cancel
	l.OnFrame(func() { cancelB() })
	cancelB = l.OnFrame(func() { ran = true })

	l.Frame()
	if ran {
		t.Error("callback cancelled earlier in the same frame should not run")
	}
}

func TestManual_EveryFiresAtEachBoundary(t *testing.T) {
	m := NewManual(epoch)
	count := 0
	m.Every(100*time.Millisecond, func() { count++ })

	m.Advance(99 * time.Millisecond)
	if count != 0 {
		t.Fatalf("count = %d before first boundary", count)
	}
	m.Advance(1 * time.Millisecond)
	if count != 1 {
		t.Fatalf("count = %d at first boundary; want 1", count)
	}
	m.Advance(450 * time.Millisecond)
	if count != 5 {
		t.Errorf("count = %d after 550ms; want 5", count)
	}
	if got := m.Now().Sub(epoch); got != 550*time.Millisecond {
		t.Errorf("Now advanced %v; want 550ms", got)
	}
}

func TestManual_CancelStopsInterval(t *testing.T) {
	m := NewManual(epoch)
	count := 0
	cancel := m.Every(10*time.Millisecond, func() { count++ })
	m.Advance(30 * time.Millisecond)
	cancel()
	m.Advance(100 * time.Millisecond)
	if count != 3 {
		t.Errorf("count = %d; want 3", count)
	}
	if frames, timers := m.Pending(); frames != 0 || timers != 0 {
		t.Errorf("Pending = (%d, %d); want (0, 0)", frames, timers)
	}
}

func TestLoop_PollSkipsMissedIntervals(t *testing.T) {
	now := epoch
	l := NewLoop(func() time.Time { return now })
	count := 0
	l.Every(100*time.Millisecond, func() { count++ })

	now = now.Add(time.Second)
	l.Poll()
	l.Poll()
	if count != 1 {
		t.Errorf("count = %d after a long stall; want 1", count)
	}
	now = now.Add(100 * time.Millisecond)
	l.Poll()
	if count != 2 {
		t.Errorf("count = %d; want 2", count)
	}
}

func TestManual_Step(t *testing.T) {
	m := NewManual(epoch)
	frames := 0
	m.OnFrame(func() { frames++ })
	for i := 0; i < 3; i++ {
		m.Step(16 * time.Millisecond)
	}
	if frames != 3 {
		t.Errorf("frames = %d; want 3", frames)
	}
}
