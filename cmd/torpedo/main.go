package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/profile"
	golog "github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-torpedo-simulation/internal/recorder"
	"github.com/lao-tseu-is-alive/go-torpedo-simulation/internal/runner"
	"github.com/lao-tseu-is-alive/go-torpedo-simulation/internal/stream"
	"github.com/lao-tseu-is-alive/go-torpedo-simulation/internal/termview"
	"github.com/lao-tseu-is-alive/go-torpedo-simulation/internal/viewer"
	"github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/registry"
	"github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/scene"
	"github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/simulation"
)

const (
	windowWidth  = 1280
	windowHeight = 720
)

func main() {
	configPath := flag.String("config", "", "path to a run configuration JSON (defaults when empty)")
	scenePath := flag.String("scene", "", "path to a scene JSON (built-in demo when empty)")
	demoCount := flag.Int("demo-count", 4, "number of launch points in the demo scene")
	flicker := flag.Float64("flicker", 0, "noise amplitude added to demo activation signals")
	recordPath := flag.String("record", "", "record the run into this SQLite database")
	serveAddr := flag.String("serve", "", "stream frames over WebSocket on this address (e.g. :8080)")
	view := flag.String("view", "window", "presentation: window, terminal or none")
	profMode := flag.String("profile", "", "write a cpu or mem profile in the current directory")
	verbose := flag.Bool("v", false, "log run and actor events")
	flag.Parse()

	switch *profMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		log.Fatalf("unknown profile mode %q", *profMode)
	}

	var logger golog.Logger = golog.DiscardLogger
	if *verbose {
		logger = golog.DefaultLogger
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, options{
		configPath: *configPath,
		scenePath:  *scenePath,
		demoCount:  *demoCount,
		flicker:    *flicker,
		recordPath: *recordPath,
		serveAddr:  *serveAddr,
		view:       *view,
		logger:     logger,
	}); err != nil {
		log.Fatal(err)
	}
}

type options struct {
	configPath, scenePath string
	demoCount             int
	flicker               float64
	recordPath, serveAddr string
	view                  string
	logger                golog.Logger
}

func run(ctx context.Context, o options) error {
	cfg := simulation.DefaultConfig()
	if o.configPath != "" {
		c, err := simulation.LoadConfig(o.configPath)
		if err != nil {
			return err
		}
		cfg = c
	}

	var sc *scene.Scene
	if o.scenePath != "" {
		s, err := scene.LoadScene(o.scenePath)
		if err != nil {
			return err
		}
		sc = s
	} else {
		opts := scene.DefaultDemoOptions()
		opts.LaunchPoints = o.demoCount
		opts.FlickerAmplitude = o.flicker
		sc = scene.Demo(opts)
	}
	reg, err := registry.ResolveScene(sc)
	if err != nil {
		return err
	}
	for _, w := range reg.Warnings {
		log.Printf("warning: %s", w)
	}

	var sinks []runner.Sink
	var db *recorder.DB
	if o.recordPath != "" {
		db, err = recorder.Open(o.recordPath)
		if err != nil {
			return err
		}
		defer db.Close()
	}
	var hub *stream.Hub
	if o.serveAddr != "" {
		hub = stream.NewHub(o.logger)
		defer hub.Close()
		srv := &http.Server{Addr: o.serveAddr, Handler: hub}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("stream server: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("streaming frames on ws://%s", o.serveAddr)
		sinks = append(sinks, hub)
	}

	// every start, including a restart from the window, gets its own recording
	start := func(ctx context.Context) (*runner.Runner, error) {
		r, err := simulation.NewRun(reg, cfg, simulation.WithLogger(o.logger))
		if err != nil {
			return nil, err
		}
		s := sinks
		if db != nil {
			rec, err := db.Begin(recorder.RunMeta{
				Scene:      sc.Name,
				Entities:   reg.Len(),
				Obstacles:  len(reg.Obstacles),
				FrameRate:  cfg.FrameRate,
				Parameters: cfg.Parameters,
			})
			if err != nil {
				return nil, err
			}
			log.Printf("recording run %s into %s", rec.ID, o.recordPath)
			s = append(append([]runner.Sink{}, sinks...), rec)
		}
		return runner.New(ctx, r, o.logger, s...)
	}

	lo, hi, _ := sc.Bounds(0)
	interval := time.Duration(float64(time.Second) * cfg.DeltaTime())
	began := time.Now()

	switch o.view {
	case "window":
		ebiten.SetWindowSize(windowWidth, windowHeight)
		ebiten.SetWindowTitle("Torpedo simulation: " + sc.Name)
		ebiten.SetTPS(int(cfg.FrameRate + 0.5))
		game, err := viewer.NewGame(ctx, func(ctx context.Context) (viewer.Source, error) {
			return start(ctx)
		}, viewer.Options{
			Width:        windowWidth,
			Height:       windowHeight,
			WorldMin:     lo,
			WorldMax:     hi,
			EntityRadius: cfg.Parameters.EntityRadius,
		})
		if err != nil {
			return err
		}
		defer game.Close()
		return ebiten.RunGame(game)

	case "terminal":
		r, err := start(ctx)
		if err != nil {
			return err
		}
		defer r.Stop(ctx)
		screen, err := tcell.NewScreen()
		if err != nil {
			return err
		}
		if err := screen.Init(); err != nil {
			return err
		}
		defer screen.Fini()
		return termview.Play(ctx, screen, r, termview.NewLayout(lo, hi, 40), interval)

	case "none":
		r, err := start(ctx)
		if err != nil {
			return err
		}
		defer r.Stop(ctx)
		// streaming clients watch at the frame rate, otherwise run flat out
		var frames int
		if hub != nil {
			frames, err = r.Play(ctx, interval)
		} else {
			frames, err = r.RunToEnd(ctx)
		}
		summary(r.Run(), frames, time.Since(began))
		return err

	default:
		return fmt.Errorf("unknown view %q", o.view)
	}
}

func summary(r *simulation.Run, frames int, took time.Duration) {
	snap := r.Snapshot()
	fmt.Printf("%s frames in %s (%s entities, %s arrived, %s still in flight)\n",
		humanize.Comma(int64(frames)),
		took.Round(time.Millisecond),
		humanize.Comma(int64(snap.Len())),
		humanize.Comma(int64(snap.Count(simulation.Arrived))),
		humanize.Comma(int64(snap.Count(simulation.Active))),
	)
	if err := r.Err(); err != nil {
		fmt.Printf("run failed: %v\n", err)
	}
}
