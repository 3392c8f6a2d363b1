// Package runner drives a simulation run from a goakt actor and fans each frame
// out to presentation sinks.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/simulation"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const tickTimeout = 5 * time.Second

// Runner is the synchronous face of the run actor.
type Runner struct {
	system actor.ActorSystem
	pid    *actor.PID
	run    *simulation.Run
}

// New starts an actor system hosting run. Stop must be called to release it.
func New(ctx context.Context, run *simulation.Run, logger golog.Logger, sinks ...Sink) (*Runner, error) {
	if logger == nil {
		logger = golog.DiscardLogger
	}
	system, err := actor.NewActorSystem("TorpedoSimulation",
		actor.WithLogger(logger),
		actor.WithActorInitMaxRetries(3))
	if err != nil {
		return nil, fmt.Errorf("failed to create actor system: %w", err)
	}
	if err := system.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start actor system: %w", err)
	}
	pid, err := system.Spawn(ctx, "run", NewRunActor(run, sinks...), actor.WithLongLived())
	if err != nil {
		_ = system.Stop(ctx)
		return nil, fmt.Errorf("failed to spawn run actor: %w", err)
	}
	return &Runner{system: system, pid: pid, run: run}, nil
}

// Step asks the actor for one frame and returns it.
func (r *Runner) Step(ctx context.Context) (simulation.Frame, error) {
	reply, err := actor.Ask(ctx, r.pid, &emptypb.Empty{}, tickTimeout)
	if err != nil {
		return simulation.Frame{}, fmt.Errorf("tick: %w", err)
	}
	switch msg := reply.(type) {
	case *structpb.Struct:
		return r.run.Last(), nil
	case *wrapperspb.StringValue:
		// the run keeps the typed cause
		if err := r.run.Err(); err != nil {
			return simulation.Frame{}, fmt.Errorf("%w: %w", simulation.ErrRunFailed, err)
		}
		if r.run.Done() {
			return simulation.Frame{}, simulation.ErrRunFinished
		}
		return simulation.Frame{}, errors.New(msg.GetValue())
	default:
		return simulation.Frame{}, fmt.Errorf("unexpected tick reply %T", reply)
	}
}

// RunToEnd steps until the run is done and returns the number of frames computed.
func (r *Runner) RunToEnd(ctx context.Context) (int, error) {
	return r.Play(ctx, 0)
}

// Play steps once per interval until the run is done or ctx is cancelled.
// A zero interval steps as fast as possible.
func (r *Runner) Play(ctx context.Context, interval time.Duration) (int, error) {
	var tick <-chan time.Time
	if interval > 0 {
		t := time.NewTicker(interval)
		defer t.Stop()
		tick = t.C
	}
	n := 0
	for !r.run.Done() {
		if tick != nil {
			select {
			case <-ctx.Done():
				return n, ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return n, err
		}
		if _, err := r.Step(ctx); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// Run exposes the hosted run. Read it only between Step calls.
func (r *Runner) Run() *simulation.Run { return r.run }

// Stop shuts the actor system down.
func (r *Runner) Stop(ctx context.Context) error {
	return r.system.Stop(ctx)
}
