package simulation

import (
	"errors"
	"fmt"

	"github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/registry"
	"github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/scene"
	"github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/selection"
	golog "github.com/tochemey/goakt/v3/log"
)

var (
	// ErrRunFailed wraps the first fatal error on every Step after it.
	ErrRunFailed = errors.New("run failed")
	// ErrRunFinished is returned by Step once Done reports true.
	ErrRunFinished = errors.New("run finished")
)

// SamplingError is a provider failure. It is fatal to the run.
type SamplingError struct {
	Frame  int
	Role   string // "launch point", "target" or "obstacle"
	Object string
	Err    error
}

func (e *SamplingError) Error() string {
	return fmt.Sprintf("frame %d: sampling %s %q: %v", e.Frame, e.Role, e.Object, e.Err)
}

func (e *SamplingError) Unwrap() error { return e.Err }

// Run owns the snapshot chain of one simulation run.
// Frames are strictly sequential: Step must not be called concurrently.
type Run struct {
	reg    *registry.Registry
	cfg    Config
	logger golog.Logger
	names  []string

	frame int
	snap  *Snapshot
	last  Frame
	err   error
}

type Option func(*Run)

// WithLogger sets the logger, the default discards everything.
func WithLogger(l golog.Logger) Option {
	return func(r *Run) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRun validates cfg and builds the initial snapshot from the launch
// positions at frame 0.
func NewRun(reg *registry.Registry, cfg *Config, opts ...Option) (*Run, error) {
	if reg == nil {
		return nil, &registry.ConfigurationError{Collection: scene.LaunchPointsCollection, Reason: "was never resolved"}
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Run{reg: reg, cfg: *cfg, logger: golog.DiscardLogger}
	for _, opt := range opts {
		opt(r)
	}

	r.names = make([]string, reg.Len())
	for i, e := range reg.Entities {
		r.names[i] = e.Name()
	}
	launch, err := selection.Gather(reg.Len(), func(i int) (geometry.Vector3D, error) {
		tr, err := r.sampleLaunch(0, i)
		return tr.Position, err
	})
	if err != nil {
		return nil, err
	}
	r.snap = InitialSnapshot(launch)

	for _, w := range reg.Warnings {
		r.logger.Warnf("⚠️ %s", w)
	}
	r.logger.Infof("run ready: %d entities, %d obstacles, %.0f fps", reg.Len(), len(reg.Obstacles), cfg.FrameRate)
	return r, nil
}

// Step samples the providers for the current frame, advances the snapshot and
// returns the presentation frame. A sampling failure ends the run: it is returned
// once, and every later Step returns ErrRunFailed without sampling again.
func (r *Run) Step() (Frame, error) {
	if r.err != nil {
		return Frame{}, fmt.Errorf("%w: %w", ErrRunFailed, r.err)
	}
	if r.Done() {
		return Frame{}, ErrRunFinished
	}

	in, err := r.sample(r.frame)
	if err != nil {
		r.err = err
		r.logger.Errorf("💥 run aborted: %v", err)
		return Frame{}, err
	}
	r.snap = Advance(r.snap, in, r.cfg.Parameters, r.cfg.Parallel)
	r.last = buildFrame(r.snap, r.names, in)
	r.last.Obstacles = make([]ObstacleFrame, len(in.Obstacles))
	for i, o := range in.Obstacles {
		r.last.Obstacles[i] = ObstacleFrame{Name: r.reg.Obstacles[i].Source.Name(), Position: o.Position, Radius: o.Radius}
	}

	for _, e := range r.last.Events() {
		if e.Launched {
			r.logger.Debugf("🚀 frame %d: %s launched at %v", in.Frame, e.Name, e.Position)
		}
		if e.Arrived {
			r.logger.Debugf("🎯 frame %d: %s arrived after %d frames", in.Frame, e.Name, e.Age)
		}
	}
	r.frame++
	return r.last, nil
}

// Done reports whether the run failed, hit MaxFrames, or every entity arrived.
func (r *Run) Done() bool {
	if r.err != nil {
		return true
	}
	if r.cfg.MaxFrames > 0 && r.frame >= r.cfg.MaxFrames {
		return true
	}
	return r.frame > 0 && r.snap.AllArrived()
}

// Err returns the fatal error that ended the run, if any.
func (r *Run) Err() error { return r.err }

// Frame is the index of the next frame Step will compute.
func (r *Run) Frame() int { return r.frame }

// Snapshot returns the last committed snapshot.
func (r *Run) Snapshot() *Snapshot { return r.snap }

// Last returns the last frame produced by Step.
func (r *Run) Last() Frame { return r.last }

func (r *Run) Warnings() []registry.ConsistencyWarning { return r.reg.Warnings }

func (r *Run) Registry() *registry.Registry { return r.reg }

func (r *Run) Config() Config { return r.cfg }

func (r *Run) sample(frame int) (FrameInput, error) {
	in := FrameInput{Frame: frame, DeltaTime: r.cfg.DeltaTime()}
	var err error
	if in.Launch, err = selection.Gather(r.reg.Len(), func(i int) (scene.Transform, error) {
		return r.sampleLaunch(frame, i)
	}); err != nil {
		return in, err
	}
	if in.Targets, err = selection.Gather(r.reg.Len(), func(i int) (geometry.Vector3D, error) {
		e := r.reg.Entities[i]
		tr, err := e.Target.Sample(frame)
		if err != nil {
			return geometry.Zero, &SamplingError{Frame: frame, Role: "target", Object: e.Target.Name(), Err: err}
		}
		return tr.Position, nil
	}); err != nil {
		return in, err
	}
	in.Obstacles, err = selection.Gather(len(r.reg.Obstacles), func(i int) (Obstacle, error) {
		d := r.reg.Obstacles[i]
		tr, err := d.Source.Sample(frame)
		if err != nil {
			return Obstacle{}, &SamplingError{Frame: frame, Role: "obstacle", Object: d.Source.Name(), Err: err}
		}
		o := Obstacle{Position: tr.Position, Strength: d.Strength, Radius: d.Radius}
		if o.Strength == 0 {
			o.Strength = r.cfg.Parameters.ObstacleStrength
		}
		if o.Radius == 0 {
			o.Radius = r.cfg.Parameters.ObstacleRadius
		}
		return o, nil
	})
	return in, err
}

func (r *Run) sampleLaunch(frame, i int) (scene.Transform, error) {
	e := r.reg.Entities[i]
	tr, err := e.Launch.Sample(frame)
	if err != nil {
		return tr, &SamplingError{Frame: frame, Role: "launch point", Object: e.Launch.Name(), Err: err}
	}
	return tr, nil
}
