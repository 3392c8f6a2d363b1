package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Checkbox is a simple UI widget for boolean values
type Checkbox struct {
	Label    string
	Value    bool
	X, Y     float64
	Size     float64
	clicked  bool // Track if already clicked this press
	OnChange func(bool)
}

var _ Widget = (*Checkbox)(nil)

// NewCheckbox creates a new checkbox instance
func NewCheckbox(x, y float64, label string, value bool) *Checkbox {
	return &Checkbox{
		Label: label,
		Value: value,
		X:     x,
		Y:     y,
		Size:  16, // Default size
	}
}

// Update checks for mouse interaction
func (c *Checkbox) Update() {
	c.HandlePointer(pointer())
}

// HandlePointer toggles the value once per press on the box.
func (c *Checkbox) HandlePointer(mx, my int, pressed bool) {
	if inside(mx, my, c.X, c.Y, c.Size, c.Size) && pressed {
		if !c.clicked {
			c.Value = !c.Value
			if c.OnChange != nil {
				c.OnChange(c.Value)
			}
		}
		c.clicked = true
		return
	}
	c.clicked = false
}

func (c *Checkbox) Height() float64 { return c.Size + 5 }

func (c *Checkbox) SetPosition(x, y float64) { c.X, c.Y = x, y }

// Draw renders the checkbox with its label on the right
func (c *Checkbox) Draw(screen *ebiten.Image) {
	vector.StrokeRect(screen,
		float32(c.X), float32(c.Y),
		float32(c.Size), float32(c.Size),
		2,
		color.RGBA{R: 200, G: 200, B: 200, A: 255},
		true)

	if c.Value {
		vector.FillRect(screen,
			float32(c.X+2), float32(c.Y+2),
			float32(c.Size-4), float32(c.Size-4),
			color.RGBA{R: 100, G: 200, B: 100, A: 255},
			true)
	}
	ebitenutil.DebugPrintAt(screen, c.Label, int(c.X+c.Size+6), int(c.Y))
}
