package host

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/lao-tseu-is-alive/go-particle-field/pkg/particles"
)

// debug font cell size
const (
	glyphWidth  = 6
	glyphHeight = 16
)

// Label is the centered title the black hole is anchored to. Its bounds are
// the anchor element bounds.
type Label struct {
	Text   string
	Scale  float64
	Hidden bool

	bounds particles.Rect
	img    *ebiten.Image
}

var _ particles.AnchorSource = (*Label)(nil)

func NewLabel(text string, scale float64, hidden bool) *Label {
	if scale <= 0 {
		scale = 1
	}
	return &Label{Text: text, Scale: scale, Hidden: hidden}
}

// Layout centers the label in a viewport of the given size.
func (l *Label) Layout(width, height int) {
	w := float64(len(l.Text)*glyphWidth) * l.Scale
	h := glyphHeight * l.Scale
	l.bounds = particles.Rect{
		X:      (float64(width) - w) / 2,
		Y:      (float64(height) - h) / 2,
		Width:  w,
		Height: h,
	}
}

// AnchorBounds implements particles.AnchorSource.
func (l *Label) AnchorBounds() (particles.Rect, bool) {
	if l.Hidden || l.Text == "" {
		return particles.Rect{}, false
	}
	return l.bounds, true
}

// Draw renders the text scaled into its bounds, dark on the light theme.
func (l *Label) Draw(screen *ebiten.Image, theme particles.Theme) {
	if l.Hidden || l.Text == "" {
		return
	}
	if l.img == nil {
		l.img = ebiten.NewImage(len(l.Text)*glyphWidth, glyphHeight)
		ebitenutil.DebugPrint(l.img, l.Text)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(l.Scale, l.Scale)
	op.GeoM.Translate(l.bounds.X, l.bounds.Y)
	op.Filter = ebiten.FilterNearest
	if theme == particles.ThemeLight {
		op.ColorScale.Scale(0.15, 0.15, 0.2, 1)
	}
	screen.DrawImage(l.img, op)
}
