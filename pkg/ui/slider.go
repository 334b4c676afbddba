package ui

import (
	"image/color"
	"math"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Slider is a horizontal value picker. Pressing inside it starts a drag that
// follows the cursor until the button is released.
type Slider struct {
	Label    string
	Value    float64
	Min, Max float64
	// Step snaps values when positive
	Step     float64
	X, Y     float64
	W, H     float64
	OnChange func(v float64)
	// Format renders the value next to the label; defaults to Step precision
	Format func(v float64) string

	dragging bool
}

// NewSlider creates a slider of the default height.
func NewSlider(x, y, w float64, label string, min, max, value float64) *Slider {
	return &Slider{
		Label: label,
		Value: value,
		Min:   min,
		Max:   max,
		X:     x,
		Y:     y,
		W:     w,
		H:     10,
	}
}

// Update checks for mouse interaction
func (s *Slider) Update(in Input) {
	if !in.Pressed {
		s.dragging = false
		return
	}
	if !s.dragging && !in.Over(s.X, s.Y, s.W, s.H) {
		return
	}
	s.dragging = true
	s.SetValue(s.valueAt(in.X))
}

// SetValue clamps and snaps v, and calls OnChange when the value moved.
func (s *Slider) SetValue(v float64) {
	if s.Step > 0 {
		v = s.Min + math.Round((v-s.Min)/s.Step)*s.Step
	}
	v = math.Max(s.Min, math.Min(s.Max, v))
	if v == s.Value {
		return
	}
	s.Value = v
	if s.OnChange != nil {
		s.OnChange(v)
	}
}

func (s *Slider) valueAt(x float64) float64 {
	p := (x - s.X) / s.W
	return s.Min + p*(s.Max-s.Min)
}

// Text is the formatted value.
func (s *Slider) Text() string {
	if s.Format != nil {
		return s.Format(s.Value)
	}
	prec := 0
	if s.Step > 0 && s.Step < 1 {
		prec = int(math.Ceil(-math.Log10(s.Step)))
	}
	return strconv.FormatFloat(s.Value, 'f', prec, 64)
}

// Draw renders the slider
func (s *Slider) Draw(screen *ebiten.Image) {
	// Draw Background (Dark Gray)
	vector.FillRect(screen, float32(s.X), float32(s.Y), float32(s.W), float32(s.H), color.RGBA{R: 80, G: 80, B: 80, A: 255}, true)

	ratio := 0.0
	if s.Max > s.Min {
		ratio = (s.Value - s.Min) / (s.Max - s.Min)
	}
	// Draw Value Bar (Light Gray/White)
	vector.FillRect(screen, float32(s.X), float32(s.Y), float32(s.W*ratio), float32(s.H), color.RGBA{R: 200, G: 200, B: 200, A: 255}, true)
}
