package main

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/go-drift/progresswheel/pkg/animation"
	"github.com/go-drift/progresswheel/pkg/errors"
	"github.com/go-drift/progresswheel/pkg/graphics"
	"github.com/go-drift/progresswheel/pkg/raster"
	"github.com/go-drift/progresswheel/pkg/store"
	"github.com/go-drift/progresswheel/pkg/wheel"
)

// Game hosts one wheel. It implements ebiten.Game; Update steps the
// animation tickers once per refresh and Draw rasterizes the latest frame.
type Game struct {
	engine    *wheel.Engine
	driver    *wheel.Driver
	painter   *raster.Painter
	snapshots *store.SnapshotStore

	frame  wheel.Frame
	canvas *image.RGBA
	// progress is the determinate value the arrow keys adjust.
	progress float64
	turns    int
}

func newGame(cfg wheel.Config, snapshots *store.SnapshotStore) (*Game, error) {
	e, err := wheel.New(cfg)
	if err != nil {
		return nil, err
	}
	g := &Game{
		engine:    e,
		painter:   &raster.Painter{Label: true, Background: graphics.ColorWhite},
		snapshots: snapshots,
		canvas:    image.NewRGBA(image.Rect(0, 0, screenSize, screenSize)),
	}

	restored, err := snapshots.RestoreEngine(snapshotKey, e)
	if err != nil {
		reportStorage(err)
	}
	if restored && !e.IsSpinning() {
		g.progress = e.NormalizedProgress()
	}
	if !restored {
		e.StartSpin()
	}

	e.OnProgressChanged(g.progressChanged)
	g.driver = wheel.NewDriver(e, func(f wheel.Frame) { g.frame = f })
	g.driver.Start()
	g.frame = e.CurrentFrame()
	return g, nil
}

func (g *Game) progressChanged(p float64) {
	if p == wheel.CycleCompleted {
		g.turns++
		ebiten.SetWindowTitle(fmt.Sprintf("progress wheel: %d turns", g.turns))
		return
	}
	ebiten.SetWindowTitle(fmt.Sprintf("progress wheel: %.0f%%", p*100))
}

// Update handles input and advances the animation.
func (g *Game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		if err := g.snapshots.SaveEngine(snapshotKey, g.engine); err != nil {
			reportStorage(err)
		}
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		if g.engine.IsSpinning() {
			g.engine.StopSpin()
		} else {
			g.engine.StartSpin()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		g.setProgress(g.progress + 0.1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		g.setProgress(g.progress - 0.1)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.progress = 0
		g.engine.Reset()
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		g.painter.Label = !g.painter.Label
	}

	animation.StepTickers()
	return nil
}

func (g *Game) setProgress(p float64) {
	g.progress = min(max(p, 0), 1)
	g.engine.SetProgressAnimated(g.progress)
}

// Draw renders the latest frame.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Paint(g.canvas, g.engine, g.frame)
	screen.WritePixels(g.canvas.Pix)
}

// Layout returns the fixed logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenSize, screenSize
}

func reportStorage(err error) {
	if we, ok := err.(*errors.WheelError); ok {
		errors.Report(we)
	}
}
