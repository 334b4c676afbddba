package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Input is the pointer state for one frame. The host polls it once and hands
// it to every widget.
type Input struct {
	X, Y    float64
	Pressed bool
	WheelY  float64
}

// PollInput reads the cursor, the left button and the wheel from ebiten.
func PollInput() Input {
	mx, my := ebiten.CursorPosition()
	_, wy := ebiten.Wheel()
	return Input{
		X:       float64(mx),
		Y:       float64(my),
		Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		WheelY:  wy,
	}
}

// Over reports whether the cursor is inside the given box.
func (in Input) Over(x, y, w, h float64) bool {
	return in.X >= x && in.X <= x+w && in.Y >= y && in.Y <= y+h
}

// clickLatch turns a held button into a single click.
type clickLatch struct {
	down bool
}

// clicked reports true on the first frame the button is pressed over the
// target, and false until it is released again.
func (l *clickLatch) clicked(over, pressed bool) bool {
	if over && pressed {
		if l.down {
			return false
		}
		l.down = true
		return true
	}
	l.down = false
	return false
}
