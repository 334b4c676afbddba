package host

import (
	"github.com/lao-tseu-is-alive/go-particle-field/pkg/particles"
	"github.com/lao-tseu-is-alive/go-particle-field/pkg/ui"
)

// controls holds the panel widgets that must follow the controller state.
type controls struct {
	mode        *ui.OptionGroup
	strength    *ui.Slider
	count       *ui.Slider
	distance    *ui.Slider
	radius      *ui.Slider
	speed       *ui.Slider
	scheme      *ui.OptionGroup
	colorAmount *ui.Slider
	interaction *ui.OptionGroup
	remember    *ui.Checkbox
}

func (g *Game) buildPanel(width, height float64) {
	sys := g.sys
	cfg := sys.Config()
	panel := ui.NewUIPanel(10, 10, width, height-20, "Particle settings")
	c := &controls{}

	panel.AddSection("Field")
	c.mode = panel.AddOptions("Mode",
		[]string{string(particles.ModeBlackHole), string(particles.ModeDeepSpace)},
		string(cfg.Mode),
		func(v string) { sys.SetMode(particles.Mode(v)) })
	c.strength = panel.AddSlider("Black hole strength",
		particles.MinBlackHoleStrength, particles.MaxBlackHoleStrength, 1, cfg.BlackHoleStrength,
		func(v float64) {
			g.demo.Stop()
			sys.SetBlackHoleStrength(v)
		})
	c.count = panel.AddSlider("Particles", 0, particles.MaxParticleCount, 1, float64(cfg.ParticleCount),
		func(v float64) { sys.SetParticleCount(int(v)) })
	c.distance = panel.AddSlider("Connection distance", 50, 300, 5, cfg.ConnectionDistance, sys.SetConnectionDistance)
	c.radius = panel.AddSlider("Pointer radius", 50, 300, 5, cfg.PointerRadius, sys.SetPointerRadius)
	c.speed = panel.AddSlider("Speed", particles.MinSpeed, particles.MaxSpeed, 0.1, cfg.Speed, sys.SetSpeed)
	panel.EndSection()

	panel.AddSection("Look")
	c.scheme = panel.AddOptions("Colors",
		[]string{string(particles.SchemeAccent), string(particles.SchemeGreys)},
		string(cfg.ColorScheme),
		func(v string) { sys.SetColorScheme(particles.ColorScheme(v)) })
	c.colorAmount = panel.AddSlider("Color strength", 0, particles.MaxColorStrength, 0.05, cfg.ColorStrength, sys.SetColorStrength)
	c.interaction = panel.AddOptions("Pointer",
		[]string{string(particles.InteractionAttract), string(particles.InteractionRepel), string(particles.InteractionStatic)},
		string(cfg.InteractionMode),
		func(v string) { sys.SetInteractionMode(particles.InteractionMode(v)) })
	panel.EndSection()

	panel.AddSection("Preferences")
	c.remember = panel.AddCheckbox("Remember my settings", cfg.RememberMe, func(v bool) {
		sys.SetRememberMe(v)
		g.savePanelState()
	})
	panel.AddButton("Reset to defaults", func() {
		g.demo.Stop()
		sys.Reset()
		g.syncControls()
	})
	panel.EndSection()

	panel.OnToggle = func(bool) { g.savePanelState() }

	g.panel = panel
	g.controls = c
}

// syncControls copies the controller configuration into the widgets without
// triggering their callbacks.
func (g *Game) syncControls() {
	cfg := g.sys.Config()
	c := g.controls
	c.mode.Select(string(cfg.Mode))
	c.strength.Value = cfg.BlackHoleStrength
	c.count.Value = float64(cfg.ParticleCount)
	c.distance.Value = cfg.ConnectionDistance
	c.radius.Value = cfg.PointerRadius
	c.speed.Value = cfg.Speed
	c.scheme.Select(string(cfg.ColorScheme))
	c.colorAmount.Value = cfg.ColorStrength
	c.interaction.Select(string(cfg.InteractionMode))
	c.remember.Value = cfg.RememberMe
}

func (g *Game) savePanelState() {
	err := particles.SavePanelExpanded(g.panel.Expanded(), g.sys.Config().RememberMe, g.local, g.session)
	if err != nil {
		g.logger.Warnf("host: save panel state: %v", err)
	}
}
