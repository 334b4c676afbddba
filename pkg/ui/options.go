package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// OptionGroup is a row of mutually exclusive toggles.
type OptionGroup struct {
	Label    string
	Options  []string
	Selected int
	X, Y     float64
	W, H     float64
	OnChange func(option string)

	latches []clickLatch
}

// NewOptionGroup creates a group with selected highlighted. An unknown
// selected value selects the first option.
func NewOptionGroup(x, y, w float64, label string, options []string, selected string) *OptionGroup {
	g := &OptionGroup{
		Label:   label,
		Options: options,
		X:       x,
		Y:       y,
		W:       w,
		H:       18,
		latches: make([]clickLatch, len(options)),
	}
	g.Select(selected)
	return g
}

// Value is the selected option.
func (g *OptionGroup) Value() string {
	if g.Selected < 0 || g.Selected >= len(g.Options) {
		return ""
	}
	return g.Options[g.Selected]
}

// Select highlights option without calling OnChange.
func (g *OptionGroup) Select(option string) {
	g.Selected = 0
	for i, o := range g.Options {
		if o == option {
			g.Selected = i
			return
		}
	}
}

func (g *OptionGroup) cellWidth() float64 {
	if len(g.Options) == 0 {
		return 0
	}
	return g.W / float64(len(g.Options))
}

func (g *OptionGroup) Update(in Input) {
	cw := g.cellWidth()
	for i := range g.Options {
		if !g.latches[i].clicked(in.Over(g.X+float64(i)*cw, g.Y, cw, g.H), in.Pressed) {
			continue
		}
		if i == g.Selected {
			continue
		}
		g.Selected = i
		if g.OnChange != nil {
			g.OnChange(g.Options[i])
		}
	}
}

func (g *OptionGroup) Draw(screen *ebiten.Image) {
	cw := g.cellWidth()
	for i, o := range g.Options {
		x := g.X + float64(i)*cw
		bg := color.RGBA{R: 70, G: 70, B: 80, A: 255}
		if i == g.Selected {
			bg = color.RGBA{R: 80, G: 120, B: 180, A: 255}
		}
		vector.FillRect(screen, float32(x+1), float32(g.Y), float32(cw-2), float32(g.H), bg, true)
		ebitenutil.DebugPrintAt(screen, o, int(x+(cw-float64(6*len(o)))/2), int(g.Y+1))
	}
}
