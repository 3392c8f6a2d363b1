package viewer

import (
	"math"
	"testing"

	"github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/geometry"
)

func TestProjection_ToScreen(t *testing.T) {
	// 200x100 world into a 400x400 screen: scale 2, centered vertically
	pr := NewProjection(geometry.Vector3D{X: -100, Y: -50}, geometry.Vector3D{X: 100, Y: 50}, 0, 0, 0, 400, 400)
	tests := []struct {
		name   string
		p      geometry.Vector3D
		sx, sy float32
	}{
		{"top left", geometry.Vector3D{X: -100, Y: 50}, 0, 100},
		{"bottom right", geometry.Vector3D{X: 100, Y: -50}, 400, 300},
		{"origin", geometry.Zero, 200, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sx, sy := pr.ToScreen(tt.p)
			if math.Abs(float64(sx-tt.sx)) > 1e-3 || math.Abs(float64(sy-tt.sy)) > 1e-3 {
				t.Errorf("ToScreen(%v) = %v,%v; want %v,%v", tt.p, sx, sy, tt.sx, tt.sy)
			}
		})
	}
	if got := pr.Length(10); got != 20 {
		t.Errorf("Length(10) = %v; want 20", got)
	}
}

func TestHeading(t *testing.T) {
	tests := []struct {
		v    geometry.Vector3D
		want float64
	}{
		{geometry.Vector3D{X: 1}, 0},
		{geometry.Vector3D{Y: 1}, -math.Pi / 2}, // world up is screen up
		{geometry.Vector3D{Y: -1}, math.Pi / 2},
	}
	for _, tt := range tests {
		if got := Heading(tt.v); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Heading(%v) = %v; want %v", tt.v, got, tt.want)
		}
	}
}
