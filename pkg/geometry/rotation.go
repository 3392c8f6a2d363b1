package geometry

import (
	"fmt"
	"math"
)

// Euler holds rotation angles in radians applied in X, then Y, then Z order
// (extrinsic XYZ, the convention used by most DCC tools for object transforms).
type Euler struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// EulerDegrees builds an Euler rotation from angles expressed in degrees.
func EulerDegrees(x, y, z float64) Euler {
	return Euler{X: Radians(x), Y: Radians(y), Z: Radians(z)}
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Quaternion converts the Euler angles to a unit quaternion.
func (e Euler) Quaternion() Quaternion {
	qx := AxisAngle(Vector3D{X: 1}, e.X)
	qy := AxisAngle(Vector3D{Y: 1}, e.Y)
	qz := AxisAngle(Vector3D{Z: 1}, e.Z)
	return qz.Mul(qy).Mul(qx)
}

// Quaternion is a rotation W + Xi + Yj + Zk.
type Quaternion struct {
	W, X, Y, Z float64
}

// Identity is the "no rotation" quaternion.
var Identity = Quaternion{W: 1}

// AxisAngle returns the rotation of angle radians around axis.
// A zero axis yields Identity.
func AxisAngle(axis Vector3D, angle float64) Quaternion {
	n := axis.Normalize()
	if n.IsZero() {
		return Identity
	}
	s := math.Sin(angle / 2)
	return Quaternion{W: math.Cos(angle / 2), X: n.X * s, Y: n.Y * s, Z: n.Z * s}
}

func (q Quaternion) String() string {
	return fmt.Sprintf("[%.3f, %.3f, %.3f, %.3f]", q.W, q.X, q.Y, q.Z)
}

// Mul composes two rotations: the result applies other first, then q.
func (q Quaternion) Mul(other Quaternion) Quaternion {
	return Quaternion{
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
	}
}

// Normalize returns the unit quaternion. A degenerate quaternion becomes Identity.
func (q Quaternion) Normalize() Quaternion {
	l := math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	if l < Epsilon {
		return Identity
	}
	return Quaternion{W: q.W / l, X: q.X / l, Y: q.Y / l, Z: q.Z / l}
}

// Rotate applies the rotation to v.
func (q Quaternion) Rotate(v Vector3D) Vector3D {
	u := Vector3D{X: q.X, Y: q.Y, Z: q.Z}
	t := u.Cross(v).Mul(2)
	return v.Add(t.Mul(q.W)).Add(u.Cross(t))
}

// Forward returns the local +Z axis expressed in world space.
func (q Quaternion) Forward() Vector3D {
	return q.Rotate(Vector3D{Z: 1})
}
