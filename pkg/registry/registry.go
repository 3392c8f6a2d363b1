// Package registry resolves the scene collections into the fixed, ordered set of
// entities and obstacles used for one simulation run.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/scene"
)

// ErrConfiguration is matched by errors.Is for every ConfigurationError.
var ErrConfiguration = errors.New("configuration error")

// ConfigurationError reports a missing or empty required collection.
// Run construction never proceeds past it.
type ConfigurationError struct {
	Collection string
	Reason     string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: collection %q %s", e.Collection, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// ConsistencyWarning is recorded when launch and target counts differ.
// The surplus objects of the larger collection are unused.
type ConsistencyWarning struct {
	LaunchPoints int
	Targets      int
	Unused       []string
}

func (w ConsistencyWarning) String() string {
	return fmt.Sprintf("launch points (%d) and targets (%d) differ, %d entities created, unused: %s",
		w.LaunchPoints, w.Targets, min(w.LaunchPoints, w.Targets), strings.Join(w.Unused, ", "))
}

// EntityDescriptor pairs one launch point with one target.
type EntityDescriptor struct {
	Index  int
	Launch scene.Object
	Target scene.Object
}

// Name identifies the entity by its launch point.
func (e EntityDescriptor) Name() string {
	return e.Launch.Name()
}

// ObstacleDescriptor is one obstacle shared by every entity.
// Strength and Radius are 0 when the global parameter applies.
type ObstacleDescriptor struct {
	Index    int
	Source   scene.Object
	Strength float64
	Radius   float64
}

// Registry is the result of resolution. It is immutable for the run.
type Registry struct {
	Entities  []EntityDescriptor
	Obstacles []ObstacleDescriptor
	Warnings  []ConsistencyWarning
}

// Len returns the number of entities.
func (r *Registry) Len() int {
	return len(r.Entities)
}

// Resolve pairs the i-th launch point with the i-th target after sorting both by name.
// A missing or empty launch or target collection is a ConfigurationError.
// Obstacles are optional.
func Resolve(launch, targets, obstacles *scene.Collection) (*Registry, error) {
	if launch == nil {
		return nil, &ConfigurationError{Collection: scene.LaunchPointsCollection, Reason: "is missing"}
	}
	if targets == nil {
		return nil, &ConfigurationError{Collection: scene.TargetsCollection, Reason: "is missing"}
	}
	a, b := launch.Len(), targets.Len()
	if a == 0 {
		return nil, &ConfigurationError{Collection: collectionName(launch, scene.LaunchPointsCollection), Reason: "is empty"}
	}
	if b == 0 {
		return nil, &ConfigurationError{Collection: collectionName(targets, scene.TargetsCollection), Reason: "is empty"}
	}

	lps := sortedByName(launch.Objects)
	tgts := sortedByName(targets.Objects)
	n := min(a, b)

	reg := &Registry{Entities: make([]EntityDescriptor, n)}
	for i := 0; i < n; i++ {
		reg.Entities[i] = EntityDescriptor{Index: i, Launch: lps[i], Target: tgts[i]}
	}
	if a != b {
		w := ConsistencyWarning{LaunchPoints: a, Targets: b}
		for _, o := range lps[n:] {
			w.Unused = append(w.Unused, o.Name())
		}
		for _, o := range tgts[n:] {
			w.Unused = append(w.Unused, o.Name())
		}
		reg.Warnings = append(reg.Warnings, w)
	}

	if obstacles != nil {
		for i, o := range sortedByName(obstacles.Objects) {
			d := ObstacleDescriptor{Index: i, Source: o}
			if em, ok := o.(scene.Emitter); ok {
				d.Strength = em.Strength()
				d.Radius = em.Radius()
			}
			reg.Obstacles = append(reg.Obstacles, d)
		}
	}
	return reg, nil
}

// ResolveScene is Resolve applied to the three collections of s.
func ResolveScene(s *scene.Scene) (*Registry, error) {
	if s == nil {
		return nil, &ConfigurationError{Collection: scene.LaunchPointsCollection, Reason: "is missing"}
	}
	return Resolve(s.LaunchPoints, s.Targets, s.Obstacles)
}

func sortedByName(objects []scene.Object) []scene.Object {
	out := slices.Clone(objects)
	slices.SortStableFunc(out, func(x, y scene.Object) int {
		return strings.Compare(x.Name(), y.Name())
	})
	return out
}

func collectionName(c *scene.Collection, fallback string) string {
	if c.Name != "" {
		return c.Name
	}
	return fallback
}
