package ui

import "github.com/hajimehoshi/ebiten/v2"

// Widget is anything the Panel can lay out, update and draw.
type Widget interface {
	// HandlePointer feeds the mouse state, Update calls it with the real cursor.
	HandlePointer(mx, my int, pressed bool)
	Draw(screen *ebiten.Image)
	Height() float64
	SetPosition(x, y float64)
}

// pointer reads the current mouse state.
func pointer() (int, int, bool) {
	mx, my := ebiten.CursorPosition()
	return mx, my, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

// inside reports whether the cursor is over the w*h rectangle at x,y.
func inside(mx, my int, x, y, w, h float64) bool {
	return float64(mx) >= x && float64(mx) <= x+w &&
		float64(my) >= y && float64(my) <= y+h
}
