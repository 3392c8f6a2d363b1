package simulation

import "github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/geometry"

// ClampSpeed scales v down to maxSpeed. A zero velocity stays zero.
func ClampSpeed(v geometry.Vector3D, maxSpeed float64) geometry.Vector3D {
	speed := v.Len()
	if speed <= 0 {
		return geometry.Zero
	}
	scale := min(speed, maxSpeed) / speed
	return v.Mul(scale)
}

// Integrate applies force for dt (semi-implicit Euler), clamps the speed and moves.
func Integrate(position, velocity, force geometry.Vector3D, maxSpeed, dt float64) (geometry.Vector3D, geometry.Vector3D) {
	velocity = ClampSpeed(velocity.Add(force.Mul(dt)), maxSpeed)
	return position.Add(velocity.Mul(dt)), velocity
}
