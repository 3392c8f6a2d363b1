package termview

import (
	"context"
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/simulation"
)

// Stepper produces frames one at a time.
type Stepper interface {
	Step(ctx context.Context) (simulation.Frame, error)
}

// Play steps src once per interval and renders each frame until the user quits
// (q, Esc or Ctrl-C). Space pauses. The last frame stays on screen once the run ends.
func Play(ctx context.Context, screen tcell.Screen, src Stepper, l Layout, interval time.Duration) error {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	paused, finished := false, false
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					return nil
				}
				if ev.Key() == tcell.KeyRune && ev.Rune() == ' ' {
					paused = !paused
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case <-ticker.C:
			if paused || finished {
				continue
			}
			f, err := src.Step(ctx)
			if errors.Is(err, simulation.ErrRunFinished) {
				finished = true
				continue
			}
			if err != nil {
				return err
			}
			Render(screen, f, l)
			screen.Show()
		}
	}
}
