// Package viewer shows a simulation run in an ebiten window.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/ui"
)

const (
	panelWidth = 200.0
	trailLen   = 48
)

// Source produces frames and releases its resources on Stop.
type Source interface {
	Step(ctx context.Context) (simulation.Frame, error)
	Stop(ctx context.Context) error
}

// Factory starts a fresh run, it is called again on restart.
type Factory func(ctx context.Context) (Source, error)

// Pre-rendered sprite, built on first draw
var torpedoSprite *ebiten.Image

type Game struct {
	ctx     context.Context
	factory Factory
	src     Source

	lastFrame simulation.Frame
	finished  bool
	err       error
	paused    bool
	trails    map[int][]geometry.Vector3D

	width, height int
	proj          Projection
	entityRadius  float64

	// UI Controls
	panel             *ui.Panel
	widgetPause       *ui.Button
	widgetSpeed       *ui.Slider
	widgetShowRadius  *ui.Checkbox
	widgetShowTrails  *ui.Checkbox
	widgetShowTargets *ui.Checkbox

	// Timing instrumentation
	updateAvg float64 // Rolling average in ms
	drawAvg   float64 // Rolling average in ms
}

// Options sizes the window and the world area shown in it.
type Options struct {
	Width, Height int
	// WorldMin and WorldMax bound the scene, usually scene.Bounds at frame 0.
	WorldMin, WorldMax geometry.Vector3D
	EntityRadius       float64
}

// NewGame starts the first run from factory.
func NewGame(ctx context.Context, factory Factory, opts Options) (*Game, error) {
	src, err := factory(ctx)
	if err != nil {
		return nil, err
	}
	g := &Game{
		ctx:          ctx,
		factory:      factory,
		src:          src,
		trails:       make(map[int][]geometry.Vector3D),
		width:        opts.Width,
		height:       opts.Height,
		entityRadius: opts.EntityRadius,
		proj: NewProjection(opts.WorldMin, opts.WorldMax, 60,
			panelWidth+20, 0, float64(opts.Width)-panelWidth-20, float64(opts.Height)),
	}

	g.panel = ui.NewPanel(10, 10, panelWidth, "Torpedo run")
	g.widgetPause = g.panel.AddButton("Pause", g.togglePause)
	g.panel.AddButton("Restart", func() {
		if err := g.restart(); err != nil {
			g.err = err
		}
	})
	g.widgetSpeed = g.panel.AddSlider("Frames per tick", 1, 8, 1, 1)
	g.widgetShowRadius = g.panel.AddCheckbox("Obstacle radius", true)
	g.widgetShowTrails = g.panel.AddCheckbox("Trails", true)
	g.widgetShowTargets = g.panel.AddCheckbox("Targets", true)
	return g, nil
}

func (g *Game) togglePause() {
	g.paused = !g.paused
	if g.paused {
		g.widgetPause.Label = "Resume"
	} else {
		g.widgetPause.Label = "Pause"
	}
}

func (g *Game) restart() error {
	if err := g.src.Stop(g.ctx); err != nil {
		return err
	}
	src, err := g.factory(g.ctx)
	if err != nil {
		return err
	}
	g.src = src
	g.lastFrame = simulation.Frame{}
	g.finished = false
	g.err = nil
	clear(g.trails)
	return nil
}

// Close stops the current run.
func (g *Game) Close() error {
	return g.src.Stop(g.ctx)
}

// Update advances the run by the speed slider's frames per tick, one tick per frame period.
func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.updateAvg = g.updateAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	g.panel.Update()
	if g.paused || g.finished || g.err != nil {
		return nil
	}

	for range int(g.widgetSpeed.Value) {
		f, err := g.src.Step(g.ctx)
		if errors.Is(err, simulation.ErrRunFinished) {
			g.finished = true
			return nil
		}
		if err != nil {
			// keep the window open on the failure message
			g.err = err
			return nil
		}
		g.lastFrame = f
		g.recordTrails(f)
	}
	return nil
}

func (g *Game) recordTrails(f simulation.Frame) {
	for _, e := range f.Entities {
		if !e.Visible {
			continue
		}
		tr := append(g.trails[e.Index], e.Position)
		if len(tr) > trailLen {
			tr = tr[len(tr)-trailLen:]
		}
		g.trails[e.Index] = tr
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.drawAvg = g.drawAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()
	if torpedoSprite == nil {
		torpedoSprite = generateSprite(torpedoDesign, torpedoPalette)
	}

	// 1. Obstacles
	for _, o := range g.lastFrame.Obstacles {
		x, y := g.proj.ToScreen(o.Position)
		if g.widgetShowRadius.Value {
			vector.StrokeCircle(screen, x, y, g.proj.Length(o.Radius), 1, color.RGBA{R: 255, G: 200, B: 50, A: 120}, true)
		}
		vector.FillCircle(screen, x, y, 5, color.RGBA{R: 255, G: 200, B: 50, A: 255}, true)
	}

	// 2. Targets and launch points
	for _, e := range g.lastFrame.Entities {
		if g.widgetShowTargets.Value && !e.Phase.Landed() {
			x, y := g.proj.ToScreen(e.Target)
			vector.StrokeCircle(screen, x, y, g.proj.Length(g.entityRadius), 2, color.RGBA{R: 255, G: 50, B: 50, A: 255}, true)
		}
		if e.Phase == simulation.Inactive {
			x, y := g.proj.ToScreen(e.Position)
			vector.FillRect(screen, x-4, y-4, 8, 8, color.RGBA{R: 50, G: 100, B: 255, A: 255}, true)
		}
	}

	// 3. Trails
	if g.widgetShowTrails.Value {
		for _, tr := range g.trails {
			for i := 1; i < len(tr); i++ {
				x0, y0 := g.proj.ToScreen(tr[i-1])
				x1, y1 := g.proj.ToScreen(tr[i])
				alpha := uint8(40 + 160*i/len(tr))
				vector.StrokeLine(screen, x0, y0, x1, y1, 1, color.RGBA{R: 100, G: 200, B: 255, A: alpha}, true)
			}
		}
	}

	// 4. Torpedoes in flight
	for _, e := range g.lastFrame.Entities {
		if !e.Visible {
			continue
		}
		x, y := g.proj.ToScreen(e.Position)
		op := &ebiten.DrawImageOptions{}
		w, h := torpedoSprite.Bounds().Dx(), torpedoSprite.Bounds().Dy()
		op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
		// the sprite faces right
		op.GeoM.Rotate(Heading(e.Velocity))
		op.GeoM.Translate(float64(x), float64(y))
		screen.DrawImage(torpedoSprite, op)
	}

	// 5. UI
	g.panel.Draw(screen)
	g.drawStatus(screen)
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	f := g.lastFrame
	arrived := 0
	for _, e := range f.Entities {
		if e.Phase.Landed() {
			arrived++
		}
	}
	msg := fmt.Sprintf("Frame: %d (%.2fs)\nIn flight: %d\nArrived: %d/%d\n\nFPS: %.2f\nUpdate: %.2fms\nDraw:   %.2fms",
		f.Index, f.Time, f.Visible(), arrived, len(f.Entities),
		ebiten.ActualFPS(), g.updateAvg, g.drawAvg)
	ebitenutil.DebugPrintAt(screen, msg, 20, int(10+g.panel.Height()+10))

	switch {
	case g.err != nil:
		ebitenutil.DebugPrintAt(screen, "RUN FAILED\n"+g.err.Error(), g.width/2-80, g.height/2)
	case g.finished:
		ebitenutil.DebugPrintAt(screen, "ALL TORPEDOES ARRIVED", g.width/2-60, g.height/2)
	}
}

func (g *Game) Layout(w, h int) (int, int) { return g.width, g.height }

// Legend:
// . = Transparent
// N = Nose
// H = Hull
// F = Fins
// E = Engine glow
var (
	torpedoDesign = []string{
		"..F.........",
		"EFFHHHHHHHN.",
		"EHHHHHHHHHNN",
		"EFFHHHHHHHN.",
		"..F.........",
	}
	torpedoPalette = map[rune]color.RGBA{
		'N': {R: 255, G: 80, B: 80, A: 255},
		'H': {R: 200, G: 210, B: 220, A: 255},
		'F': {R: 120, G: 130, B: 150, A: 255},
		'E': {R: 255, G: 160, B: 40, A: 255},
	}
)

func generateSprite(design []string, palette map[rune]color.RGBA) *ebiten.Image {
	h := len(design)
	w := 0
	for _, row := range design {
		w = int(math.Max(float64(w), float64(len(row))))
	}
	img := ebiten.NewImage(w, h)

	for y, row := range design {
		for x, char := range row {
			if col, ok := palette[char]; ok {
				img.Set(x, y, col)
			}
		}
	}
	return img
}
