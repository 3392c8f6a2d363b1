package runner

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/registry"
	"github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/scene"
	"github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/simulation"
)

type collector struct {
	mu     sync.Mutex
	frames []simulation.Frame
	fail   bool
}

func (c *collector) Consume(f simulation.Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = append(c.frames, f)
	if c.fail {
		return errors.New("sink full")
	}
	return nil
}

func demoRun(t *testing.T) *simulation.Run {
	t.Helper()
	reg, err := registry.ResolveScene(scene.Demo(scene.DefaultDemoOptions()))
	if err != nil {
		t.Fatal(err)
	}
	run, err := simulation.NewRun(reg, simulation.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	return run
}

func TestRunner_RunToEnd(t *testing.T) {
	ctx := context.Background()
	ok, broken := &collector{}, &collector{fail: true}
	r, err := New(ctx, demoRun(t), nil, ok, broken)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer r.Stop(ctx)

	n, err := r.RunToEnd(ctx)
	if err != nil {
		t.Fatalf("RunToEnd: %v", err)
	}
	if n == 0 || len(ok.frames) != n || len(broken.frames) != n {
		t.Fatalf("frames: stepped %d, sinks got %d and %d", n, len(ok.frames), len(broken.frames))
	}
	for i, f := range ok.frames {
		if f.Index != i {
			t.Fatalf("sink frame %d has index %d", i, f.Index)
		}
	}
	if !r.Run().Snapshot().AllArrived() {
		t.Error("demo run should end with every entity arrived")
	}
	if _, err := r.Step(ctx); !errors.Is(err, simulation.ErrRunFinished) {
		t.Errorf("Step after end = %v; want ErrRunFinished", err)
	}
}

type missing struct{}

func (missing) Name() string { return "TGT.gone" }

func (missing) Sample(int) (scene.Transform, error) {
	return scene.Transform{}, scene.ErrObjectMissing
}

func TestRunner_SamplingFailure(t *testing.T) {
	ctx := context.Background()
	reg, err := registry.Resolve(
		scene.NewCollection(scene.LaunchPointsCollection, scene.NewStatic("LP", geometry.Zero)),
		scene.NewCollection(scene.TargetsCollection, missing{}),
		nil,
	)
	if err != nil {
		t.Fatal(err)
	}
	run, err := simulation.NewRun(reg, simulation.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	sink := &collector{}
	r, err := New(ctx, run, nil, sink)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Stop(ctx)

	_, err = r.Step(ctx)
	var se *simulation.SamplingError
	if !errors.As(err, &se) || !errors.Is(err, scene.ErrObjectMissing) {
		t.Fatalf("err = %v; want a SamplingError", err)
	}
	if len(sink.frames) != 0 {
		t.Error("failed frame must not reach sinks")
	}
	if _, err := r.RunToEnd(ctx); err != nil {
		t.Errorf("RunToEnd on a failed run = %v; want immediate return", err)
	}
}
