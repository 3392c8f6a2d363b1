package simulation

import (
	"runtime"

	"github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/scene"
	"github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/selection"
	"golang.org/x/sync/errgroup"
)

// FrameInput holds everything sampled from the scene for one frame.
// Launch and Targets are indexed by entity.
type FrameInput struct {
	Frame     int
	DeltaTime float64
	Launch    []scene.Transform
	Targets   []geometry.Vector3D
	Obstacles []Obstacle
}

// Advance computes the snapshot of in.Frame from prev. It reads only prev and in,
// and writes only the returned snapshot. With parallel set, entities are evaluated
// concurrently; the result is identical since no entity reads another one.
func Advance(prev *Snapshot, in FrameInput, p Parameters, parallel bool) *Snapshot {
	next := &Snapshot{frame: in.Frame, states: make([]EntityState, prev.Len())}
	if !parallel || prev.Len() < 2 {
		for i := range next.states {
			next.states[i] = stepEntity(i, prev.states[i], in, p)
		}
		return next
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range next.states {
		g.Go(func() error {
			next.states[i] = stepEntity(i, prev.states[i], in, p)
			return nil
		})
	}
	_ = g.Wait() // stepEntity cannot fail
	return next
}

// stepEntity runs the per-entity part of one frame in order: latch update,
// launch impulse, forces, integration, arrival.
func stepEntity(i int, prev EntityState, in FrameInput, p Parameters) EntityState {
	launch := selection.Pick(in.Launch, i, scene.Transform{})
	target := selection.Pick(in.Targets, i, prev.Position)

	next := prev
	next.LaunchEdge, next.ArrivalEdge = false, false

	if launch.Activation > scene.ActivationThreshold {
		next.Phase, next.LaunchEdge = prev.Phase.Activate()
	}

	switch next.Phase {
	case Inactive:
		// follow the launch point until it fires
		next.Position = launch.Position
		next.Velocity = geometry.Zero
		return next
	case Arrived:
		return next
	}

	next.Age = prev.Age + 1
	if next.LaunchEdge {
		next.Position = launch.Position
		next.Velocity = next.Velocity.Add(launch.Forward().Mul(p.ExitSpeed))
	}

	var force geometry.Vector3D
	if next.Age > p.CoastFrames {
		force = Attraction(next.Position, target, p).Add(Repulsion(next.Position, target, in.Obstacles))
		force = ClampMagnitude(force, p.MaxAcceleration)
	}
	next.Position, next.Velocity = Integrate(next.Position, next.Velocity, force, p.MaxSpeed, in.DeltaTime)

	if next.Position.DistanceTo(target) < p.ArrivalDistance {
		next.Phase, next.ArrivalEdge = next.Phase.Arrive()
		next.Position = target
		next.Velocity = geometry.Zero
	}
	return next
}
