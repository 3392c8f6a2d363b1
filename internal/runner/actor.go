package runner

import (
	"github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/simulation"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Sink receives every frame, in order, from the actor goroutine.
type Sink interface {
	Consume(frame simulation.Frame) error
}

// RunActor owns one simulation run. Its mailbox serializes ticks, so frame t+1
// never starts before frame t is committed.
type RunActor struct {
	run   *simulation.Run
	sinks []Sink

	sinkErrors int
}

// Enforce interface compliance
var _ actor.Actor = (*RunActor)(nil)

func NewRunActor(run *simulation.Run, sinks ...Sink) *RunActor {
	return &RunActor{run: run, sinks: sinks}
}

func (a *RunActor) PreStart(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("Run actor ready: %d entities", a.run.Registry().Len())
	return nil
}

// Receive handles one tick (emptypb.Empty) per message and replies with a
// structpb summary of the frame, or a wrapperspb.StringValue on failure.
func (a *RunActor) Receive(ctx *actor.ReceiveContext) {
	switch ctx.Message().(type) {
	case *goaktpb.PostStart:
		ctx.Logger().Infof("%s started", ctx.Self().Name())

	case *emptypb.Empty:
		frame, err := a.run.Step()
		if err != nil {
			ctx.Logger().Errorf("tick %d failed: %v", a.run.Frame(), err)
			ctx.Response(wrapperspb.String(err.Error()))
			return
		}
		a.fanOut(ctx, frame)

		summary, err := structpb.NewStruct(map[string]any{
			"frame":   frame.Index,
			"visible": frame.Visible(),
			"arrived": a.run.Snapshot().Count(simulation.Arrived),
			"done":    a.run.Done(),
		})
		if err != nil {
			ctx.Response(wrapperspb.String(err.Error()))
			return
		}
		ctx.Response(summary)

	default:
		ctx.Unhandled()
	}
}

func (a *RunActor) fanOut(ctx *actor.ReceiveContext, frame simulation.Frame) {
	for _, s := range a.sinks {
		if err := s.Consume(frame); err != nil {
			a.sinkErrors++
			ctx.Logger().Warnf("frame %d: sink %T: %v", frame.Index, s, err)
		}
	}
}

func (a *RunActor) PostStop(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("Run actor stopped at frame %d (%d sink errors)", a.run.Frame(), a.sinkErrors)
	return nil
}
