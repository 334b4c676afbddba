// Package host runs the particle field in an ebiten window: it supplies the
// drawing surface, pointer and resize events, the frame loop, the theme and
// the anchor label, and hosts the settings panel.
package host

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	golog "github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-particle-field/pkg/clock"
	"github.com/lao-tseu-is-alive/go-particle-field/pkg/config"
	"github.com/lao-tseu-is-alive/go-particle-field/pkg/particles"
	"github.com/lao-tseu-is-alive/go-particle-field/pkg/store"
	"github.com/lao-tseu-is-alive/go-particle-field/pkg/telemetry"
	"github.com/lao-tseu-is-alive/go-particle-field/pkg/ui"
)

// Options are the dependencies built by main.
type Options struct {
	Config *config.Config
	Logger golog.Logger
	// Local keeps remembered preferences across runs; Session lives for the
	// process only.
	Local   store.Store
	Session store.Store
	// Telemetry may be nil.
	Telemetry *telemetry.Collector
}

type Game struct {
	cfg     *config.Config
	logger  golog.Logger
	local   store.Store
	session store.Store

	loop    *clock.Loop
	events  *particles.Broadcaster
	surface *Surface
	label   *Label
	sys     *particles.System
	demo    *particles.Demo
	stats   *telemetry.Collector

	panel    *ui.UIPanel
	controls *controls

	theme         particles.Theme
	width, height int
	pointerInside bool
	lastX, lastY  int

	// Timing instrumentation
	lastUpdateDuration time.Duration
	lastDrawDuration   time.Duration
	updateAvg          float64 // Rolling average in ms
	drawAvg            float64 // Rolling average in ms
}

var _ ebiten.Game = (*Game)(nil)

// NewGame wires the particle system to ebiten and starts it, playing the
// onboarding demo when it is due.
func NewGame(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = golog.DiscardLogger
	}
	palette, err := cfg.ParticlePalette()
	if err != nil {
		return nil, fmt.Errorf("building palette: %w", err)
	}
	session := opts.Session
	if session == nil {
		session = store.NewMemory()
	}

	g := &Game{
		cfg:     cfg,
		logger:  logger,
		local:   opts.Local,
		session: session,
		loop:    clock.NewLoop(nil),
		events:  particles.NewBroadcaster(),
		label:   NewLabel(cfg.Anchor.Label, cfg.Anchor.Scale, cfg.Anchor.Hidden),
		stats:   opts.Telemetry,
		theme:   cfg.ThemeValue(),
		width:   cfg.Window.Width,
		height:  cfg.Window.Height,
	}
	g.surface = NewSurface(g.currentTheme)
	g.label.Layout(g.width, g.height)

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	g.sys = particles.New(particles.Options{
		Surface:       g.surface,
		Viewport:      particles.ViewportFunc(g.viewport),
		Scheduler:     g.loop,
		Events:        g.events,
		Anchor:        g.label,
		Store:         opts.Local,
		Theme:         g.currentTheme,
		Palette:       palette,
		Rand:          rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Logger:        logger,
		ReducedMotion: cfg.ReducedMotion,
	})
	if g.sys.State() == particles.StateDisabled {
		logger.Info("host: particle field disabled, showing the label only")
	}

	play := particles.ShouldPlayDemo(g.sys.Config(), g.sys.StoredVersion(), session)
	g.demo = particles.NewDemo(g.sys, g.loop, session, g.collapseAfterDemo)
	g.buildPanel(float64(cfg.Panel.Width), float64(g.height))
	g.panel.SetExpanded(particles.InitialPanelExpanded(play, g.sys.Config().RememberMe, g.local, session))

	g.sys.Start()
	if play && g.demo.Play() {
		logger.Debug("host: playing onboarding demo")
	}
	return g, nil
}

func (g *Game) currentTheme() particles.Theme { return g.theme }

func (g *Game) viewport() (float64, float64) {
	return float64(g.width), float64(g.height)
}

func (g *Game) collapseAfterDemo() {
	g.panel.SetExpanded(false)
	g.savePanelState()
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.lastUpdateDuration = time.Since(start)
		// Rolling average (exponential moving average)
		g.updateAvg = g.updateAvg*0.95 + float64(g.lastUpdateDuration.Microseconds())/1000.0*0.05
	}()

	g.handleKeys()

	in := ui.PollInput()
	g.panel.Update(in)
	if g.demo.Running() {
		g.controls.strength.Value = g.sys.Config().BlackHoleStrength
	}

	g.emitPointer(int(in.X), int(in.Y))
	g.loop.Poll()
	return nil
}

func (g *Game) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		if g.theme == particles.ThemeDark {
			g.theme = particles.ThemeLight
		} else {
			g.theme = particles.ThemeDark
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.panel.SetExpanded(!g.panel.Expanded())
		g.savePanelState()
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		if g.sys.State() == particles.StateRunning {
			g.sys.Stop()
		} else {
			g.sys.Start()
			g.syncControls()
		}
	}
}

// emitPointer turns cursor polling into enter, move and leave events.
func (g *Game) emitPointer(x, y int) {
	inside := x >= 0 && y >= 0 && x < g.width && y < g.height && ebiten.IsFocused()
	now := g.loop.Now()
	switch {
	case inside && !g.pointerInside:
		g.events.Emit(particles.Event{Kind: particles.EventPointerEnter, At: now})
		g.events.Emit(particles.Event{Kind: particles.EventPointerMove, X: float64(x), Y: float64(y), At: now})
	case inside && (x != g.lastX || y != g.lastY):
		g.events.Emit(particles.Event{Kind: particles.EventPointerMove, X: float64(x), Y: float64(y), At: now})
	case !inside && g.pointerInside:
		g.events.Emit(particles.Event{Kind: particles.EventPointerLeave, At: now})
	}
	g.pointerInside = inside
	g.lastX, g.lastY = x, y
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.lastDrawDuration = time.Since(start)
		g.drawAvg = g.drawAvg*0.95 + float64(g.lastDrawDuration.Microseconds())/1000.0*0.05
	}()

	g.surface.Target(screen)
	if g.sys.State() != particles.StateRunning {
		g.surface.Clear()
	}
	frames := g.sys.Frames()
	g.loop.Frame()
	if g.sys.Frames() != frames {
		g.observeFrame()
	}

	g.label.Draw(screen, g.theme)
	g.panel.Draw(screen)
	if g.cfg.Panel.ShowStats {
		g.drawStats(screen)
	}
}

func (g *Game) observeFrame() {
	if g.stats == nil {
		return
	}
	cfg := g.sys.Config()
	err := g.stats.Observe(telemetry.Sample{
		Frame:     g.sys.Frames(),
		Duration:  g.sys.LastTickDuration(),
		Particles: len(g.sys.Particles()),
		Strength:  cfg.BlackHoleStrength,
	})
	if err != nil {
		g.logger.Warnf("host: telemetry: %v", err)
	}
}

func (g *Game) drawStats(screen *ebiten.Image) {
	msg := fmt.Sprintf("FPS: %0.1f  TPS: %0.1f\nUpdate: %.2fms  Draw: %.2fms\nParticles: %d  Mode: %s",
		ebiten.ActualFPS(), ebiten.ActualTPS(), g.updateAvg, g.drawAvg,
		len(g.sys.Particles()), g.sys.Config().Mode)
	if g.stats != nil {
		st := g.stats.Stats()
		msg += fmt.Sprintf("\nTick p90: %.0fus  max: %.0fus", st.P90US, st.MaxUS)
	}
	ebitenutil.DebugPrintAt(screen, msg, g.width-260, 10)
}

// Layout follows the window size and reports changes as resize events.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.label.Layout(g.width, g.height)
		g.panel.Height = float64(g.height) - 20
		g.events.Emit(particles.Event{Kind: particles.EventResize, At: g.loop.Now()})
		// crossing the mobile breakpoint resets the particle count
		g.syncControls()
	}
	return g.width, g.height
}

// Close stops the particle system.
func (g *Game) Close() {
	g.demo.Stop()
	g.sys.Stop()
}
