package host

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/lao-tseu-is-alive/go-particle-field/pkg/particles"
)

var backgrounds = map[particles.Theme]color.RGBA{
	particles.ThemeDark:  {R: 10, G: 10, B: 30, A: 255},
	particles.ThemeLight: {R: 245, G: 246, B: 250, A: 255},
}

// Surface draws particle primitives on the ebiten screen of the current frame.
type Surface struct {
	screen *ebiten.Image
	theme  func() particles.Theme
}

var _ particles.Surface = (*Surface)(nil)

func NewSurface(theme func() particles.Theme) *Surface {
	return &Surface{theme: theme}
}

// Target sets the image drawn on until the next call. Draw calls made with
// no target are dropped.
func (s *Surface) Target(screen *ebiten.Image) {
	s.screen = screen
}

func (s *Surface) Clear() {
	if s.screen == nil {
		return
	}
	bg, ok := backgrounds[s.theme()]
	if !ok {
		bg = backgrounds[particles.ThemeLight]
	}
	s.screen.Fill(bg)
}

func (s *Surface) FillCircle(x, y, radius float64, c particles.Color) {
	if s.screen == nil {
		return
	}
	vector.FillCircle(s.screen, float32(x), float32(y), float32(radius), c.NRGBA(), true)
}

func (s *Surface) StrokeLine(x1, y1, x2, y2, width float64, c particles.Color) {
	if s.screen == nil {
		return
	}
	vector.StrokeLine(s.screen, float32(x1), float32(y1), float32(x2), float32(y2), float32(width), c.NRGBA(), true)
}
