package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// UIWidget is an interface for all UI widgets
type UIWidget interface {
	Update(in Input)
	Draw(screen *ebiten.Image)
	GetHeight() float64
}

// SliderWrapper wraps Slider to implement UIWidget
type SliderWrapper struct {
	*Slider
}

func (s *SliderWrapper) GetHeight() float64 {
	return s.H + 25 // Slider height + label space
}

// CheckboxWrapper wraps Checkbox to implement UIWidget
type CheckboxWrapper struct {
	*Checkbox
}

func (c *CheckboxWrapper) GetHeight() float64 {
	return c.Size + 20
}

type OptionGroupWrapper struct {
	*OptionGroup
}

func (g *OptionGroupWrapper) GetHeight() float64 {
	return g.H + 22
}

type ButtonWrapper struct {
	*Button
}

func (b *ButtonWrapper) GetHeight() float64 {
	return b.Height + 8
}

const headerHeight = 22.0

// UIPanel manages a collection of UI widgets in a scrollable panel that can
// be collapsed to its title bar.
type UIPanel struct {
	X, Y          float64 // Panel position
	Width, Height float64 // Panel dimensions
	Title         string
	Widgets       []UIWidget
	Labels        []string // Labels for widgets
	ScrollOffset  float64  // Current scroll position

	// OnToggle is called when the user expands or collapses the panel.
	OnToggle func(expanded bool)

	// Styling
	BGColor     color.RGBA
	BorderColor color.RGBA
	TextColor   color.RGBA

	sections []PanelSection
	expanded bool
	toggle   clickLatch
}

// PanelSection groups the widgets drawn under one header.
type PanelSection struct {
	Title      string
	StartIndex int // Widget index where this section starts
	EndIndex   int // Widget index where this section ends (exclusive)
}

// NewUIPanel creates a new, collapsed UI panel
func NewUIPanel(x, y, width, height float64, title string) *UIPanel {
	return &UIPanel{
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		Title:       title,
		Widgets:     make([]UIWidget, 0),
		Labels:      make([]string, 0),
		BGColor:     color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
		TextColor:   color.RGBA{R: 220, G: 220, B: 220, A: 255},
		sections:    make([]PanelSection, 0),
	}
}

// Expanded reports whether the widgets are shown.
func (p *UIPanel) Expanded() bool { return p.expanded }

// SetExpanded opens or collapses the panel without calling OnToggle.
func (p *UIPanel) SetExpanded(v bool) { p.expanded = v }

// AddSection adds a section header
func (p *UIPanel) AddSection(title string) {
	p.sections = append(p.sections, PanelSection{
		Title:      title,
		StartIndex: len(p.Widgets),
	})
}

// EndSection closes the current section
func (p *UIPanel) EndSection() {
	if len(p.sections) > 0 {
		p.sections[len(p.sections)-1].EndIndex = len(p.Widgets)
	}
}

// AddSlider adds a slider widget to the panel
func (p *UIPanel) AddSlider(label string, min, max, step, value float64, onChange func(float64)) *Slider {
	slider := NewSlider(p.X+10, p.Y+p.calculateNextYOffset()+20, p.Width-20, label, min, max, value)
	slider.Step = step
	slider.OnChange = onChange
	p.add(&SliderWrapper{slider}, label)
	return slider
}

// AddCheckbox adds a checkbox widget to the panel
func (p *UIPanel) AddCheckbox(label string, value bool, onChange func(bool)) *Checkbox {
	checkbox := NewCheckbox(p.X+10, p.Y+p.calculateNextYOffset()+20, label, value)
	checkbox.OnChange = onChange
	p.add(&CheckboxWrapper{checkbox}, label)
	return checkbox
}

// AddOptions adds a row of exclusive choices.
func (p *UIPanel) AddOptions(label string, options []string, selected string, onChange func(string)) *OptionGroup {
	group := NewOptionGroup(p.X+10, p.Y+p.calculateNextYOffset()+20, p.Width-20, label, options, selected)
	group.OnChange = onChange
	p.add(&OptionGroupWrapper{group}, label)
	return group
}

// AddButton adds a full-width button. Buttons carry their own caption.
func (p *UIPanel) AddButton(label string, onClick func()) *Button {
	button := NewButton(p.X+10, p.Y+p.calculateNextYOffset()+20, p.Width-20, 20, label, onClick)
	p.add(&ButtonWrapper{button}, "")
	return button
}

func (p *UIPanel) add(w UIWidget, label string) {
	p.Widgets = append(p.Widgets, w)
	p.Labels = append(p.Labels, label)
}

// calculateNextYOffset calculates the Y offset for the next widget
func (p *UIPanel) calculateNextYOffset() float64 {
	offset := float64(len(p.sections)) * 25
	for _, widget := range p.Widgets {
		offset += widget.GetHeight()
	}
	return offset
}

// Contains reports whether (x, y) is over the visible part of the panel.
func (p *UIPanel) Contains(x, y float64) bool {
	h := headerHeight
	if p.expanded {
		h = p.Height
	}
	return x >= p.X && x <= p.X+p.Width && y >= p.Y && y <= p.Y+h
}

// Update handles input for the title bar and, when expanded, all widgets.
func (p *UIPanel) Update(in Input) {
	if p.toggle.clicked(in.Over(p.X, p.Y, p.Width, headerHeight), in.Pressed) {
		p.expanded = !p.expanded
		if p.OnToggle != nil {
			p.OnToggle(p.expanded)
		}
	}
	if !p.expanded {
		return
	}

	if in.WheelY != 0 && p.Contains(in.X, in.Y) {
		p.ScrollOffset -= in.WheelY * 20

		// Clamp scroll
		maxScroll := p.calculateTotalHeight() - p.Height + 40
		if maxScroll < 0 {
			maxScroll = 0
		}
		if p.ScrollOffset < 0 {
			p.ScrollOffset = 0
		}
		if p.ScrollOffset > maxScroll {
			p.ScrollOffset = maxScroll
		}
	}

	for _, widget := range p.Widgets {
		widget.Update(in)
	}
}

// Draw renders the panel and, when expanded, all widgets
func (p *UIPanel) Draw(screen *ebiten.Image) {
	h := headerHeight
	if p.expanded {
		h = p.Height
	}
	vector.FillRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(h),
		p.BGColor, true)
	vector.StrokeRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(h),
		2, p.BorderColor, true)

	marker := "[+] "
	if p.expanded {
		marker = "[-] "
	}
	ebitenutil.DebugPrintAt(screen, marker+p.Title, int(p.X+10), int(p.Y+3))
	if !p.expanded {
		return
	}

	// Draw widgets with clipping and scrolling
	currentY := p.Y + 30 - p.ScrollOffset
	for _, section := range p.sections {
		if p.visible(currentY, 25) {
			sectionBG := color.RGBA{R: 60, G: 60, B: 70, A: 255}
			vector.FillRect(screen,
				float32(p.X+5), float32(currentY),
				float32(p.Width-10), 20,
				sectionBG, true)
			ebitenutil.DebugPrintAt(screen, section.Title,
				int(p.X+10), int(currentY+2))
		}
		currentY += 25

		for i := section.StartIndex; i < section.EndIndex && i < len(p.Widgets); i++ {
			widget := p.Widgets[i]
			// hidden widgets are parked off-panel so they cannot be clicked
			p.adjustWidgetPosition(widget, -1000)
			if p.visible(currentY, widget.GetHeight()) {
				p.drawLabel(screen, widget, p.Labels[i], currentY)
				p.adjustWidgetPosition(widget, currentY+15)
				widget.Draw(screen)
			}
			currentY += widget.GetHeight()
		}
	}
}

func (p *UIPanel) visible(y, h float64) bool {
	return y >= p.Y+headerHeight && y+h <= p.Y+p.Height
}

func (p *UIPanel) drawLabel(screen *ebiten.Image, widget UIWidget, label string, y float64) {
	if label == "" {
		return
	}
	if s, ok := widget.(*SliderWrapper); ok {
		label += ": " + s.Text()
	}
	ebitenutil.DebugPrintAt(screen, label, int(p.X+10), int(y-2))
}

// adjustWidgetPosition moves a widget to its scrolled position for rendering
// and hit testing.
func (p *UIPanel) adjustWidgetPosition(widget UIWidget, newY float64) {
	switch w := widget.(type) {
	case *SliderWrapper:
		w.Y = newY
	case *CheckboxWrapper:
		w.Y = newY
	case *OptionGroupWrapper:
		w.Y = newY
	case *ButtonWrapper:
		w.Y = newY - 12
	}
}

// calculateTotalHeight calculates the total content height
func (p *UIPanel) calculateTotalHeight() float64 {
	return 30 + p.calculateNextYOffset()
}
