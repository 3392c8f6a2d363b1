package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	panelTitleHeight = 25.0
	panelMargin      = 10.0
	widgetSpacing    = 6.0
)

// Panel stacks widgets vertically under a title
type Panel struct {
	Title   string
	X, Y    float64
	Width   float64
	Widgets []Widget

	// Styling
	BGColor     color.RGBA
	BorderColor color.RGBA
}

// NewPanel creates a new panel
func NewPanel(x, y, width float64, title string) *Panel {
	return &Panel{
		Title:       title,
		X:           x,
		Y:           y,
		Width:       width,
		BGColor:     color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
	}
}

// AddButton appends a full width button
func (p *Panel) AddButton(label string, onClick func()) *Button {
	b := NewButton(0, 0, p.Width-2*panelMargin, 24, label, onClick)
	p.add(b)
	return b
}

// AddCheckbox appends a checkbox
func (p *Panel) AddCheckbox(label string, value bool) *Checkbox {
	c := NewCheckbox(0, 0, label, value)
	p.add(c)
	return c
}

// AddSlider appends a full width slider snapping to step
func (p *Panel) AddSlider(label string, lo, hi, step, value float64) *Slider {
	s := NewSlider(0, 0, p.Width-2*panelMargin, label, lo, hi, lo)
	s.Step = step
	s.Set(value)
	p.add(s)
	return s
}

func (p *Panel) add(w Widget) {
	w.SetPosition(p.X+panelMargin, p.Y+p.Height()-panelMargin+widgetSpacing)
	p.Widgets = append(p.Widgets, w)
}

// Height is the panel height needed by its title and widgets.
func (p *Panel) Height() float64 {
	h := panelTitleHeight + panelMargin
	for _, w := range p.Widgets {
		h += w.Height() + widgetSpacing
	}
	return h
}

// Update handles input for all widgets
func (p *Panel) Update() {
	mx, my, pressed := pointer()
	p.HandlePointer(mx, my, pressed)
}

func (p *Panel) HandlePointer(mx, my int, pressed bool) {
	for _, w := range p.Widgets {
		w.HandlePointer(mx, my, pressed)
	}
}

// Draw renders the panel and all widgets
func (p *Panel) Draw(screen *ebiten.Image) {
	h := p.Height()
	vector.FillRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(h),
		p.BGColor, true)
	vector.StrokeRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(h),
		2, p.BorderColor, true)

	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+panelMargin), int(p.Y+5))
	for _, w := range p.Widgets {
		w.Draw(screen)
	}
}
