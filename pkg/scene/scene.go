// Package scene models the external scene objects the simulation samples every frame:
// launch points, targets and obstacles, each exposing a stable name and a transform per frame.
package scene

import (
	"errors"

	"github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/geometry"
)

// ActivationThreshold is the signal level above which a launch point fires.
const ActivationThreshold = 0.5

// ErrObjectMissing is returned by providers whose underlying object no longer exists.
var ErrObjectMissing = errors.New("scene object no longer exists")

// Transform is the world-space state of an object at one frame.
type Transform struct {
	Position geometry.Vector3D
	Rotation geometry.Quaternion
	Scale    geometry.Vector3D
	// Activation is the launch signal; only meaningful for launch points.
	Activation float64
}

// Forward is the launch direction: local +Z in world space.
func (t Transform) Forward() geometry.Vector3D {
	return t.Rotation.Forward()
}

// Object is any identifiable scene object that can be sampled per frame.
// Sampling must be a pure, synchronous read.
type Object interface {
	Name() string
	Sample(frame int) (Transform, error)
}

// Emitter is implemented by obstacle objects carrying their own strength and radius.
// A zero value means "use the global parameter".
type Emitter interface {
	Strength() float64
	Radius() float64
}

// Collection is a named, unordered set of objects.
// A nil *Collection means the collection does not exist in the scene.
type Collection struct {
	Name    string
	Objects []Object
}

// NewCollection builds a collection from objects.
func NewCollection(name string, objects ...Object) *Collection {
	return &Collection{Name: name, Objects: objects}
}

// Len returns the number of objects, 0 for a missing collection.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Objects)
}

// Collection names used by scene files and the demo generator.
const (
	LaunchPointsCollection = "Launchpads"
	TargetsCollection      = "Targets"
	ObstaclesCollection    = "Repulsors"
)

// Scene groups the three collections consumed by the registry.
type Scene struct {
	Name         string
	LaunchPoints *Collection
	Targets      *Collection
	Obstacles    *Collection
}

// Bounds returns the axis aligned box enclosing every object position at frame.
// Objects that fail to sample are skipped.
func (s *Scene) Bounds(frame int) (lo, hi geometry.Vector3D, ok bool) {
	for _, c := range []*Collection{s.LaunchPoints, s.Targets, s.Obstacles} {
		if c == nil {
			continue
		}
		for _, o := range c.Objects {
			tr, err := o.Sample(frame)
			if err != nil {
				continue
			}
			p := tr.Position
			if !ok {
				lo, hi, ok = p, p, true
				continue
			}
			lo = geometry.Vector3D{X: min(lo.X, p.X), Y: min(lo.Y, p.Y), Z: min(lo.Z, p.Z)}
			hi = geometry.Vector3D{X: max(hi.X, p.X), Y: max(hi.Y, p.Y), Z: max(hi.Z, p.Z)}
		}
	}
	return lo, hi, ok
}
