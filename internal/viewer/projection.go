package viewer

import (
	"math"

	"github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/geometry"
)

// Projection maps the world XY plane into a screen rectangle, keeping the
// aspect ratio. World +Y points up, screen Y points down.
type Projection struct {
	scale          float64
	offX, offY     float64
	minX, maxY     float64
	screenW, scrnH float64
}

// NewProjection fits the world box lo..hi, padded by margin world units, into
// the screen rectangle (x, y, w, h).
func NewProjection(lo, hi geometry.Vector3D, margin, x, y, w, h float64) Projection {
	lo = lo.Sub(geometry.Vector3D{X: margin, Y: margin})
	hi = hi.Add(geometry.Vector3D{X: margin, Y: margin})
	spanX := math.Max(hi.X-lo.X, geometry.Epsilon)
	spanY := math.Max(hi.Y-lo.Y, geometry.Epsilon)
	scale := math.Min(w/spanX, h/spanY)
	return Projection{
		scale:   scale,
		offX:    x + (w-spanX*scale)/2,
		offY:    y + (h-spanY*scale)/2,
		minX:    lo.X,
		maxY:    hi.Y,
		screenW: w,
		scrnH:   h,
	}
}

// ToScreen returns the screen position of p.
func (pr Projection) ToScreen(p geometry.Vector3D) (float32, float32) {
	sx := pr.offX + (p.X-pr.minX)*pr.scale
	sy := pr.offY + (pr.maxY-p.Y)*pr.scale
	return float32(sx), float32(sy)
}

// Length converts a world distance to pixels.
func (pr Projection) Length(d float64) float32 {
	return float32(d * pr.scale)
}

// Heading is the screen angle of a world velocity, 0 pointing right.
func Heading(v geometry.Vector3D) float64 {
	return math.Atan2(-v.Y, v.X)
}
