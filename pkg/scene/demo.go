package scene

import (
	"fmt"

	"github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/geometry"
)

// DemoOptions tunes the generated test scene.
type DemoOptions struct {
	LaunchPoints int
	Obstacles    int
	// FirstActivation is the frame the first launch point fires, later ones
	// are staggered by ActivationStep frames.
	FirstActivation int
	ActivationStep  int
	// FlickerAmplitude > 0 adds simplex noise to armed activation signals.
	FlickerAmplitude float64
	Seed             int64
}

// DefaultDemoOptions reproduces the reference layout: four launch points on the
// left facing +X, four targets on the right and two obstacles in between.
func DefaultDemoOptions() DemoOptions {
	return DemoOptions{
		LaunchPoints:    4,
		Obstacles:       2,
		FirstActivation: 10,
		ActivationStep:  8,
		Seed:            42,
	}
}

// Demo builds a scene laid out in the XY plane, roughly 800 units wide.
func Demo(opts DemoOptions) *Scene {
	lps := make([]Object, 0, opts.LaunchPoints)
	tgts := make([]Object, 0, opts.LaunchPoints)
	for i := 0; i < opts.LaunchPoints; i++ {
		y := -150 + float64(i)*100
		fire := opts.FirstActivation + i*opts.ActivationStep

		// scale 0 until fire, then 1: the scale length is the activation signal
		lp := NewStatic(fmt.Sprintf("LP.%03d", i+1), geometry.Vector3D{X: -300, Y: y}).
			WithRotation(geometry.EulerDegrees(0, 90, 0)).
			WithScale(NewVectorTrack(Constant,
				Key[geometry.Vector3D]{Frame: 1, Value: geometry.Zero},
				Key[geometry.Vector3D]{Frame: fire, Value: geometry.Vector3D{X: 1, Y: 1, Z: 1}},
			))
		if opts.FlickerAmplitude > 0 {
			lp.WithFlicker(opts.Seed, opts.FlickerAmplitude, 0.35, i)
		}
		lps = append(lps, lp)
		tgts = append(tgts, NewStatic(fmt.Sprintf("TGT.%03d", i+1), geometry.Vector3D{X: 500, Y: y}))
	}

	obs := make([]Object, 0, opts.Obstacles)
	for i := 0; i < opts.Obstacles; i++ {
		obs = append(obs, NewStatic(fmt.Sprintf("REP.%03d", i+1), geometry.Vector3D{X: 100, Y: -50 + float64(i)*100}))
	}

	return &Scene{
		Name:         "demo",
		LaunchPoints: NewCollection(LaunchPointsCollection, lps...),
		Targets:      NewCollection(TargetsCollection, tgts...),
		Obstacles:    NewCollection(ObstaclesCollection, obs...),
	}
}
