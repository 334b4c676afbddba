// Command particles-headless runs the particle field without a window on a
// manual clock and reports frame timings.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"time"

	golog "github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-particle-field/pkg/clock"
	"github.com/lao-tseu-is-alive/go-particle-field/pkg/config"
	"github.com/lao-tseu-is-alive/go-particle-field/pkg/particles"
	"github.com/lao-tseu-is-alive/go-particle-field/pkg/store"
	"github.com/lao-tseu-is-alive/go-particle-field/pkg/telemetry"
)

const frameInterval = time.Second / 60

// countingSurface counts the primitives of the current frame.
type countingSurface struct {
	circles, lines int
}

func (s *countingSurface) Clear() { s.circles, s.lines = 0, 0 }
func (s *countingSurface) FillCircle(_, _, _ float64, _ particles.Color) { s.circles++ }
func (s *countingSurface) StrokeLine(_, _, _, _, _ float64, _ particles.Color) { s.lines++ }

func main() {
	configPath := flag.String("config", "", "YAML config file; embedded defaults fill the gaps")
	frames := flag.Int("frames", 600, "number of frames to render")
	seed := flag.Uint64("seed", 1, "random seed")
	csvPath := flag.String("csv", "", "write telemetry rows to this CSV file")
	mode := flag.String("mode", string(particles.ModeBlackHole), "blackhole or deepspace")
	count := flag.Int("count", -1, "particle count; negative keeps the default for the viewport")
	strength := flag.Float64("strength", particles.DefaultBlackHoleStrength, "black hole strength")
	demo := flag.Bool("demo", false, "play the onboarding demo")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	logger := golog.New(cfg.Level(), os.Stderr)

	out, err := telemetry.CreateCSV(*csvPath)
	if err != nil {
		log.Fatal(err)
	}
	defer out.Close()
	collector := telemetry.NewCollector(cfg.Telemetry.Window, cfg.Telemetry.Every, out, logger)

	palette, err := cfg.ParticlePalette()
	if err != nil {
		log.Fatal(err)
	}

	width, height := float64(cfg.Window.Width), float64(cfg.Window.Height)
	// same box the window host centers its label in
	labelW := float64(len(cfg.Anchor.Label)*6) * cfg.Anchor.Scale
	labelH := 16 * cfg.Anchor.Scale
	anchor := particles.Rect{X: (width - labelW) / 2, Y: (height - labelH) / 2, Width: labelW, Height: labelH}

	clk := clock.NewManual(time.Now())
	surface := &countingSurface{}
	session := store.NewMemory()
	sys := particles.New(particles.Options{
		Surface:   surface,
		Viewport:  particles.ViewportFunc(func() (float64, float64) { return width, height }),
		Scheduler: clk,
		Anchor: particles.AnchorFunc(func() (particles.Rect, bool) {
			return anchor, !cfg.Anchor.Hidden && cfg.Anchor.Label != ""
		}),
		Store:   store.NewMemory(),
		Theme:   cfg.ThemeValue,
		Palette: palette,
		Rand:    rand.New(rand.NewPCG(*seed, *seed+1)),
		Logger:  logger,
	})
	if sys.State() == particles.StateDisabled {
		log.Fatal("particle field is disabled")
	}

	sys.SetMode(particles.Mode(*mode))
	if *count >= 0 {
		sys.SetParticleCount(*count)
	}
	sys.SetBlackHoleStrength(*strength)
	sys.Start()
	if *demo {
		particles.NewDemo(sys, clk, session, func() { logger.Info("demo finished") }).Play()
	}

	started := time.Now()
	for i := 0; i < *frames; i++ {
		t := time.Now()
		clk.Step(frameInterval)
		err := collector.Observe(telemetry.Sample{
			Frame:     sys.Frames(),
			Duration:  time.Since(t),
			Particles: len(sys.Particles()),
			Strength:  sys.Config().BlackHoleStrength,
		})
		if err != nil {
			log.Fatal(err)
		}
	}
	sys.Stop()

	st := collector.Stats()
	fmt.Printf("frames=%d wall=%s particles=%d lines=%d mode=%s strength=%.0f\n",
		sys.Frames(), time.Since(started).Round(time.Millisecond), surface.circles, surface.lines,
		sys.Config().Mode, sys.Config().BlackHoleStrength)
	fmt.Printf("tick mean=%.1fus p50=%.1fus p90=%.1fus p99=%.1fus max=%.1fus budget=%.0ffps\n",
		st.MeanUS, st.P50US, st.P90US, st.P99US, st.MaxUS, st.BudgetFPS)
	if played, _ := session.Get(particles.DemoPlayedKey); played == "true" {
		fmt.Println("demo played")
	}
}
