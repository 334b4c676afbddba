package particles

import (
	"math"
	"time"

	"github.com/lao-tseu-is-alive/go-particle-field/pkg/clock"
	"github.com/lao-tseu-is-alive/go-particle-field/pkg/store"
)

// Onboarding demo timeline: the black hole strength swings from DemoLow to
// DemoHigh and back to show what the slider does.
const (
	DemoLow  = 110.0
	DemoHigh = 330.0

	demoDelay    = 2000 * time.Millisecond
	demoRise     = 3200 * time.Millisecond
	demoHold     = 2000 * time.Millisecond
	demoFall     = 2800 * time.Millisecond
	demoSettle   = 1000 * time.Millisecond
	demoDuration = demoDelay + demoRise + demoHold + demoFall
)

// DemoPhase is where the onboarding demo is on its timeline.
type DemoPhase int

const (
	DemoWaiting DemoPhase = iota
	DemoRising
	DemoHolding
	DemoFalling
	DemoSettling
	DemoDone
)

// EaseInOutCubic maps progress in [0,1] to an eased value in [0,1].
func EaseInOutCubic(p float64) float64 {
	if p < 0.5 {
		return 4 * p * p * p
	}
	return 1 - math.Pow(-2*p+2, 3)/2
}

// DemoStrengthAt returns the strength the demo shows after elapsed and the
// phase it is in. During DemoWaiting the strength is DemoLow and should not be
// applied.
func DemoStrengthAt(elapsed time.Duration) (float64, DemoPhase) {
	switch {
	case elapsed < demoDelay:
		return DemoLow, DemoWaiting
	case elapsed < demoDelay+demoRise:
		p := float64(elapsed-demoDelay) / float64(demoRise)
		return math.Round(DemoLow + (DemoHigh-DemoLow)*EaseInOutCubic(p)), DemoRising
	case elapsed < demoDelay+demoRise+demoHold:
		return DemoHigh, DemoHolding
	case elapsed < demoDuration:
		p := float64(elapsed-demoDelay-demoRise-demoHold) / float64(demoFall)
		return math.Round(DemoHigh - (DemoHigh-DemoLow)*EaseInOutCubic(p)), DemoFalling
	case elapsed < demoDuration+demoSettle:
		return DemoLow, DemoSettling
	}
	return DemoLow, DemoDone
}

// ShouldPlayDemo decides whether the onboarding demo runs: for remembered
// users when the saved version differs from Version, otherwise once per
// session. It only ever runs in black hole mode.
func ShouldPlayDemo(cfg Config, storedVersion string, session store.Store) bool {
	if cfg.Mode != ModeBlackHole {
		return false
	}
	if cfg.RememberMe {
		return storedVersion != Version
	}
	if session == nil {
		return true
	}
	played, _ := session.Get(DemoPlayedKey)
	return played != "true"
}

// Demo drives the onboarding animation on a System, one step per frame.
type Demo struct {
	sys     *System
	sched   clock.Scheduler
	session store.Store
	// OnFinish runs once, a moment after the strength is back to DemoLow.
	OnFinish func()

	started  time.Time
	cancel   clock.Cancel
	last     float64
	settled  bool
	running  bool
	finished bool
}

// NewDemo prepares a demo. Play starts it.
func NewDemo(sys *System, sched clock.Scheduler, session store.Store, onFinish func()) *Demo {
	return &Demo{sys: sys, sched: sched, session: session, OnFinish: onFinish}
}

// Play starts the animation. It does nothing if the demo already ran, is
// running, or the system is not in black hole mode.
func (d *Demo) Play() bool {
	if d.running || d.finished || d.sys.State() == StateDisabled || d.sys.Config().Mode != ModeBlackHole {
		return false
	}
	d.running = true
	d.started = d.sched.Now()
	d.last = math.NaN()
	d.cancel = d.sched.OnFrame(d.step)
	return true
}

// Running reports whether the animation is in progress.
func (d *Demo) Running() bool { return d.running }

// Stop abandons the animation without marking it as played.
func (d *Demo) Stop() {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.running = false
}

func (d *Demo) step() {
	strength, phase := DemoStrengthAt(d.sched.Now().Sub(d.started))
	switch phase {
	case DemoWaiting:
		return
	case DemoRising, DemoHolding, DemoFalling:
		d.apply(strength)
	case DemoSettling:
		d.settle()
	case DemoDone:
		d.settle()
		d.Stop()
		d.finished = true
		if d.OnFinish != nil {
			d.OnFinish()
		}
	}
}

func (d *Demo) apply(strength float64) {
	if strength == d.last {
		return
	}
	d.last = strength
	d.sys.SetBlackHoleStrength(strength)
}

func (d *Demo) settle() {
	if d.settled {
		return
	}
	d.settled = true
	d.apply(DemoLow)
	if d.session == nil {
		return
	}
	if err := d.session.Set(DemoPlayedKey, "true"); err != nil {
		d.sys.logger.Warnf("particles: remember demo played: %v", err)
	}
}

// InitialPanelExpanded decides whether the settings panel starts open: always
// when the demo is about to play, otherwise as it was left, read from the
// local store for remembered users and from the session store otherwise.
func InitialPanelExpanded(playDemo, remember bool, local, session store.Store) bool {
	if playDemo {
		return true
	}
	src := session
	if remember {
		src = local
	}
	if src == nil {
		return false
	}
	v, _ := src.Get(PanelExpandedKey)
	return v == "true"
}

// SavePanelExpanded records the panel state where InitialPanelExpanded reads it.
func SavePanelExpanded(expanded, remember bool, local, session store.Store) error {
	dst := session
	if remember {
		dst = local
	}
	if dst == nil {
		return nil
	}
	v := "false"
	if expanded {
		v = "true"
	}
	return dst.Set(PanelExpandedKey, v)
}
