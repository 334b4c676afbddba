package particles

import (
	"errors"
	"math"
	"math/rand/v2"
	"time"

	golog "github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-particle-field/pkg/clock"
	"github.com/lao-tseu-is-alive/go-particle-field/pkg/store"
)

// State is the lifecycle state of a System.
type State int

const (
	StateUninitialized State = iota
	// StateDisabled is terminal: reduced motion was requested or the host has
	// no rendering surface.
	StateDisabled
	StateInitialized
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateDisabled:
		return "disabled"
	case StateInitialized:
		return "initialized"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

// Options wires a System to its host. Surface, Viewport and Scheduler are
// required; without them the System starts disabled.
type Options struct {
	Surface   Surface
	Viewport  Viewport
	Scheduler clock.Scheduler
	Events    EventSource
	Anchor    AnchorSource
	// Store persists preferences when RememberMe is on.
	Store   store.Store
	Theme   func() Theme
	Palette Palette
	Rand    *rand.Rand
	Logger  golog.Logger
	// ReducedMotion disables the field entirely.
	ReducedMotion bool
}

// System owns the particles and drives them once per frame.
type System struct {
	surface   Surface
	viewport  Viewport
	scheduler clock.Scheduler
	events    EventSource
	anchorSrc AnchorSource
	store     store.Store
	theme     func() Theme
	palette   Palette
	rng       *rand.Rand
	logger    golog.Logger

	cfg       Config
	particles []*Particle
	pointer   Pointer
	anchor    *Circle
	width     float64
	height    float64
	mobile    bool

	connections *ConnectionRenderer

	state         State
	cancelFrame   clock.Cancel
	cancelIdle    clock.Cancel
	unsubscribe   func()
	storedVersion string
	frames        uint64
	lastTick      time.Duration
}

// New builds a System from opts, loads remembered preferences and creates the
// first batch of particles. Call Start to begin rendering.
func New(opts Options) *System {
	s := &System{
		surface:     opts.Surface,
		viewport:    opts.Viewport,
		scheduler:   opts.Scheduler,
		events:      opts.Events,
		anchorSrc:   opts.Anchor,
		store:       opts.Store,
		theme:       opts.Theme,
		palette:     opts.Palette,
		rng:         opts.Rand,
		logger:      opts.Logger,
		connections: NewConnectionRenderer(),
		state:       StateUninitialized,
	}
	if s.logger == nil {
		s.logger = golog.DiscardLogger
	}
	if s.rng == nil {
		seed := uint64(time.Now().UnixNano())
		s.rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if s.theme == nil {
		s.theme = func() Theme { return ThemeDark }
	}
	if s.palette == nil {
		s.palette = DefaultPalette()
	}

	if opts.ReducedMotion {
		s.logger.Info("particles: reduced motion requested, field disabled")
		s.state = StateDisabled
		return s
	}
	if s.surface == nil || s.viewport == nil || s.scheduler == nil {
		s.logger.Warn("particles: no rendering surface, viewport or scheduler, field disabled")
		s.state = StateDisabled
		return s
	}

	s.width, s.height = s.viewport.Size()
	s.mobile = IsMobile(s.width)

	cfg, prefs, err := loadPreferences(s.store, DefaultConfig(s.mobile))
	switch {
	case errors.Is(err, ErrNoPreferences):
	case err != nil:
		s.logger.Warnf("particles: ignoring stored preferences: %v", err)
	default:
		s.storedVersion = prefs.Version
	}
	s.cfg = cfg.sanitize(s.mobile)

	s.refreshAnchor()
	s.createParticles()
	s.state = StateInitialized
	s.logger.Debugf("particles: initialized %d particles in %s mode (%.0fx%.0f)",
		len(s.particles), s.cfg.Mode, s.width, s.height)
	return s
}

// Start schedules the frame loop and the pointer idle check and subscribes to
// host events. Resuming after Stop re-reads the viewport, since resizes are
// not observed while stopped.
func (s *System) Start() {
	if s.state != StateInitialized && s.state != StateStopped {
		return
	}
	resuming := s.state == StateStopped
	s.subscribe()
	if resuming {
		s.Resize()
	}
	s.cancelFrame = s.scheduler.OnFrame(s.Tick)
	s.cancelIdle = s.scheduler.Every(PointerIdleCheckInterval, s.checkPointerIdle)
	s.state = StateRunning
	s.logger.Debug("particles: started")
}

// Stop cancels the frame loop, the idle check and the event subscription.
// Particles are kept; no further frames are drawn until Start.
func (s *System) Stop() {
	if s.state != StateRunning {
		return
	}
	if s.cancelFrame != nil {
		s.cancelFrame()
		s.cancelFrame = nil
	}
	if s.cancelIdle != nil {
		s.cancelIdle()
		s.cancelIdle = nil
	}
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	s.state = StateStopped
	s.logger.Debug("particles: stopped")
}

// Tick renders one frame: every particle gets its forces, moves and is drawn,
// then the connections are drawn over the whole set.
func (s *System) Tick() {
	if s.state != StateRunning {
		return
	}
	start := s.scheduler.Now()
	s.frames++

	s.surface.Clear()
	swatch := s.palette.Resolve(s.theme(), s.cfg.ColorScheme, s.cfg.ColorStrength)
	field := NewEvaluator(s.cfg, s.pointer, s.anchor, s.rng)

	for _, p := range s.particles {
		field.Apply(p)
		p.Integrate(s.width, s.height)
		p.Draw(s.surface, swatch.Particle)
	}
	s.connections.Draw(s.surface, s.particles, s.anchor, s.cfg.ConnectionDistance, swatch.Connection)

	s.lastTick = s.scheduler.Now().Sub(start)
}

// Resize re-reads the viewport and the anchor element. The particle count is
// only reset when the viewport crosses the mobile breakpoint.
func (s *System) Resize() {
	if s.state == StateDisabled || s.state == StateUninitialized {
		return
	}
	s.width, s.height = s.viewport.Size()
	mobile := IsMobile(s.width)
	crossed := mobile != s.mobile
	s.mobile = mobile
	s.refreshAnchor()
	if crossed {
		s.logger.Debugf("particles: viewport class changed (mobile=%t)", mobile)
		s.SetParticleCount(DefaultParticleCount(mobile))
	}
}

// RefreshAnchor re-reads the anchor element bounds after a layout change.
func (s *System) RefreshAnchor() {
	if s.state == StateDisabled {
		return
	}
	s.refreshAnchor()
}

// SetParticleCount grows the set with new particles or truncates it.
func (s *System) SetParticleCount(n int) {
	if s.state == StateDisabled {
		return
	}
	if n < 0 {
		n = 0
	}
	s.cfg.ParticleCount = n
	switch diff := n - len(s.particles); {
	case diff > 0:
		ctx := s.spawnContext()
		for i := 0; i < diff; i++ {
			s.particles = append(s.particles, NewParticle(ctx, s.rng))
		}
	case diff < 0:
		clear(s.particles[n:])
		s.particles = s.particles[:n]
	}
	s.persist()
}

// SetMode switches mode and replaces every particle, since spawn positions
// depend on the mode.
func (s *System) SetMode(m Mode) {
	if s.state == StateDisabled {
		return
	}
	if m != ModeBlackHole && m != ModeDeepSpace {
		s.logger.Warnf("particles: unknown mode %q ignored", m)
		return
	}
	s.cfg.Mode = m
	s.createParticles()
	s.persist()
}

func (s *System) SetBlackHoleStrength(v float64) {
	if s.state == StateDisabled || math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	s.cfg.BlackHoleStrength = v
	s.persist()
}

func (s *System) SetColorScheme(scheme ColorScheme) {
	if s.state == StateDisabled {
		return
	}
	if scheme != SchemeAccent && scheme != SchemeGreys {
		s.logger.Warnf("particles: unknown color scheme %q ignored", scheme)
		return
	}
	s.cfg.ColorScheme = scheme
	s.persist()
}

// SetColorStrength sets the alpha multiplier. Resolved alphas never exceed 1.
func (s *System) SetColorStrength(v float64) {
	if s.state == StateDisabled || math.IsNaN(v) {
		return
	}
	s.cfg.ColorStrength = math.Max(0, v)
	s.persist()
}

func (s *System) SetInteractionMode(m InteractionMode) {
	if s.state == StateDisabled {
		return
	}
	switch m {
	case InteractionAttract, InteractionRepel, InteractionStatic:
	default:
		s.logger.Warnf("particles: unknown interaction mode %q ignored", m)
		return
	}
	s.cfg.InteractionMode = m
	s.persist()
}

func (s *System) SetConnectionDistance(d float64) {
	if s.state == StateDisabled || !finitePositive(d) {
		return
	}
	s.cfg.ConnectionDistance = d
	s.persist()
}

// SetPointerRadius changes the pointer influence radius. It is not persisted.
func (s *System) SetPointerRadius(r float64) {
	if s.state == StateDisabled || !finitePositive(r) {
		return
	}
	s.cfg.PointerRadius = r
}

// SetSpeed changes the speed multiplier of new and existing particles.
func (s *System) SetSpeed(v float64) {
	if s.state == StateDisabled || !finitePositive(v) {
		return
	}
	s.cfg.Speed = v
	for _, p := range s.particles {
		p.SpeedMultiplier = v
	}
	s.persist()
}

// SetRememberMe turns persistence on (saving immediately) or off (forgetting
// what was saved).
func (s *System) SetRememberMe(enabled bool) {
	if s.state == StateDisabled {
		return
	}
	s.cfg.RememberMe = enabled
	if enabled {
		s.persist()
		return
	}
	s.forget()
}

// Reset restores the factory settings, recreates the particles and forgets
// any remembered preferences.
func (s *System) Reset() {
	if s.state == StateDisabled {
		return
	}
	s.cfg = DefaultConfig(s.mobile)
	s.createParticles()
	s.forget()
	s.logger.Debug("particles: reset to defaults")
}

// Config returns a copy of the current configuration.
func (s *System) Config() Config { return s.cfg }

// Particles returns the live particle slice. Callers must not resize it.
func (s *System) Particles() []*Particle { return s.particles }

// Pointer returns the current pointer state.
func (s *System) Pointer() Pointer { return s.pointer }

// AnchorCircle returns the anchor circle, if there is an anchor element.
func (s *System) AnchorCircle() (Circle, bool) {
	if s.anchor == nil {
		return Circle{}, false
	}
	return *s.anchor, true
}

func (s *System) State() State { return s.state }

// Frames is the number of frames rendered so far.
func (s *System) Frames() uint64 { return s.frames }

// LastTickDuration is the wall time of the previous frame as seen by the scheduler.
func (s *System) LastTickDuration() time.Duration { return s.lastTick }

// StoredVersion is the version tag of the preferences loaded at startup, empty
// when none were loaded.
func (s *System) StoredVersion() string { return s.storedVersion }

// Viewport returns the last measured viewport size.
func (s *System) Viewport() (width, height float64) { return s.width, s.height }

func (s *System) handleEvent(e Event) {
	at := e.At
	if at.IsZero() {
		at = s.scheduler.Now()
	}
	switch e.Kind {
	case EventPointerMove:
		s.pointer.move(e.X, e.Y, at)
	case EventPointerEnter:
		s.pointer.enter(at)
	case EventPointerLeave:
		s.pointer.leave()
	case EventResize:
		s.Resize()
	}
}

func (s *System) checkPointerIdle() {
	if s.pointer.decay(s.scheduler.Now(), PointerIdleTimeout) {
		s.logger.Debug("particles: pointer idle")
	}
}

func (s *System) subscribe() {
	if s.events == nil || s.unsubscribe != nil {
		return
	}
	s.unsubscribe = s.events.Subscribe(s.handleEvent)
}

func (s *System) refreshAnchor() {
	if s.anchorSrc == nil {
		s.anchor = nil
		return
	}
	bounds, ok := s.anchorSrc.AnchorBounds()
	if !ok {
		s.anchor = nil
		return
	}
	c := AnchorCircle(bounds, s.mobile)
	s.anchor = &c
}

func (s *System) spawnContext() SpawnContext {
	return SpawnContext{
		Mode:   s.cfg.Mode,
		Anchor: s.anchor,
		Width:  s.width,
		Height: s.height,
		Speed:  s.cfg.Speed,
	}
}

func (s *System) createParticles() {
	ctx := s.spawnContext()
	s.particles = make([]*Particle, s.cfg.ParticleCount)
	for i := range s.particles {
		s.particles[i] = NewParticle(ctx, s.rng)
	}
}

func (s *System) persist() {
	if !s.cfg.RememberMe {
		return
	}
	if err := savePreferences(s.store, s.cfg); err != nil {
		s.logger.Warnf("particles: %v", err)
	}
}

func (s *System) forget() {
	if s.store == nil {
		return
	}
	if err := s.store.Remove(PreferencesKey); err != nil {
		s.logger.Warnf("particles: forget preferences: %v", err)
	}
}
