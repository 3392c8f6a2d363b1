// Package termview draws simulation frames top-down in a terminal.
package termview

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/simulation"
)

// Glyphs used on screen.
const (
	GlyphEntity   = '●'
	GlyphTarget   = '✕'
	GlyphObstacle = '◎'
	GlyphLaunch   = '▸'
)

var (
	styleEntity   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleTarget   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleObstacle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleLaunch   = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
)

// Layout maps the world XY plane onto the terminal. World +Y points up.
type Layout struct {
	Min, Max geometry.Vector3D
}

// NewLayout pads the lo..hi box by margin world units on every side.
func NewLayout(lo, hi geometry.Vector3D, margin float64) Layout {
	pad := geometry.Vector3D{X: margin, Y: margin}
	return Layout{Min: lo.Sub(pad), Max: hi.Add(pad)}
}

// Cell returns the screen cell of p for a w*h drawing area, ok is false when p
// falls outside of it.
func (l Layout) Cell(p geometry.Vector3D, w, h int) (x, y int, ok bool) {
	spanX, spanY := l.Max.X-l.Min.X, l.Max.Y-l.Min.Y
	if w <= 0 || h <= 0 || spanX <= 0 || spanY <= 0 {
		return 0, 0, false
	}
	fx := (p.X - l.Min.X) / spanX
	fy := (l.Max.Y - p.Y) / spanY
	x = int(math.Round(fx * float64(w-1)))
	y = int(math.Round(fy * float64(h-1)))
	return x, y, x >= 0 && x < w && y >= 0 && y < h
}

// Render draws f on screen: obstacles, targets, waiting launch points and
// visible entities, plus a status line on the last row. It does not call Show.
func Render(screen tcell.Screen, f simulation.Frame, l Layout) {
	screen.Clear()
	w, h := screen.Size()
	drawH := h - 1

	put := func(p geometry.Vector3D, r rune, st tcell.Style) {
		if x, y, ok := l.Cell(p, w, drawH); ok {
			screen.SetContent(x, y, r, nil, st)
		}
	}

	for _, o := range f.Obstacles {
		put(o.Position, GlyphObstacle, styleObstacle)
	}
	for _, e := range f.Entities {
		if !e.Phase.Landed() {
			put(e.Target, GlyphTarget, styleTarget)
		}
		if e.Phase == simulation.Inactive {
			put(e.Position, GlyphLaunch, styleLaunch)
		}
	}
	for _, e := range f.Entities {
		if e.Visible {
			put(e.Position, GlyphEntity, styleEntity)
		}
	}

	arrived := 0
	for _, e := range f.Entities {
		if e.Phase.Landed() {
			arrived++
		}
	}
	status := fmt.Sprintf(" frame %d  t=%.2fs  in flight %d  arrived %d/%d ", f.Index, f.Time, f.Visible(), arrived, len(f.Entities))
	drawText(screen, 0, h-1, status, styleStatus)
}

func drawText(screen tcell.Screen, x, y int, s string, st tcell.Style) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, st)
		x++
	}
}
