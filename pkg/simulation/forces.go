package simulation

import (
	"github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/geometry"
)

// Obstacle is an obstacle emitter sampled for one frame, with its strength and
// radius already resolved against the global parameters.
type Obstacle struct {
	Position geometry.Vector3D
	Strength float64
	Radius   float64
}

// Attraction pulls toward target with gain*(1 + refDistance/distance).
// The boost grows near the target to keep entities from orbiting past it.
func Attraction(position, target geometry.Vector3D, p Parameters) geometry.Vector3D {
	toTarget := target.Sub(position)
	dist := toTarget.Len()
	if dist < geometry.Epsilon {
		return geometry.Zero
	}
	boost := 1 + p.RefDistance/dist
	return toTarget.Mul(p.AttractionGain * boost / dist)
}

// Repulsion sums the push of every obstacle. Each push falls off linearly to
// zero at the obstacle radius and is gated off once the entity is closer to
// the target than the obstacle is, so obstacles deflect but never hold.
func Repulsion(position, target geometry.Vector3D, obstacles []Obstacle) geometry.Vector3D {
	var total geometry.Vector3D
	distToTarget := position.DistanceTo(target)
	for _, o := range obstacles {
		if o.Radius <= 0 {
			continue
		}
		away := position.Sub(o.Position)
		falloff := max(0, 1-away.Len()/o.Radius)
		if falloff == 0 {
			continue
		}
		if distToTarget <= o.Position.DistanceTo(target) {
			continue
		}
		total = total.Add(away.Normalize().Mul(o.Strength * falloff))
	}
	return total
}

// ClampMagnitude limits the length of v to limit. A limit <= 0 leaves v unchanged.
func ClampMagnitude(v geometry.Vector3D, limit float64) geometry.Vector3D {
	if limit <= 0 {
		return v
	}
	l := v.Len()
	if l <= limit {
		return v
	}
	return v.Mul(limit / l)
}
