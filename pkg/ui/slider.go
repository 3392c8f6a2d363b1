package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const sliderLabelHeight = 16.0

// Slider picks a value in [Min, Max] by dragging across its bar.
type Slider struct {
	Label    string
	Value    float64
	Min, Max float64
	// Step snaps the value when > 0.
	Step float64
	X, Y float64
	W, H float64
}

var _ Widget = (*Slider)(nil)

// NewSlider creates a slider, value is clamped to the range.
func NewSlider(x, y, w float64, label string, lo, hi, value float64) *Slider {
	s := &Slider{Label: label, Min: lo, Max: hi, X: x, Y: y, W: w, H: 10}
	s.Set(value)
	return s
}

// Set clamps and snaps v into the slider range.
func (s *Slider) Set(v float64) {
	if s.Step > 0 {
		v = s.Min + float64(int((v-s.Min)/s.Step+0.5))*s.Step
	}
	s.Value = min(max(v, s.Min), s.Max)
}

// Update checks for mouse interaction
func (s *Slider) Update() {
	s.HandlePointer(pointer())
}

// HandlePointer moves the value to the pressed position on the bar.
func (s *Slider) HandlePointer(mx, my int, pressed bool) {
	barY := s.Y + sliderLabelHeight
	if !pressed || !inside(mx, my, s.X, barY, s.W, s.H) || s.W <= 0 {
		return
	}
	p := (float64(mx) - s.X) / s.W
	s.Set(s.Min + p*(s.Max-s.Min))
}

func (s *Slider) Height() float64 { return sliderLabelHeight + s.H }

func (s *Slider) SetPosition(x, y float64) { s.X, s.Y = x, y }

// Draw renders the label with the current value above the bar
func (s *Slider) Draw(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s: %g", s.Label, s.Value), int(s.X), int(s.Y))
	barY := float32(s.Y + sliderLabelHeight)

	// Draw Background (Dark Gray)
	vector.FillRect(screen, float32(s.X), barY, float32(s.W), float32(s.H), color.RGBA{R: 80, G: 80, B: 80, A: 255}, true)

	// Draw Value Bar (Light Gray/White)
	ratio := 0.0
	if s.Max > s.Min {
		ratio = (s.Value - s.Min) / (s.Max - s.Min)
	}
	vector.FillRect(screen, float32(s.X), barY, float32(s.W*ratio), float32(s.H), color.RGBA{R: 200, G: 200, B: 200, A: 255}, true)
}
