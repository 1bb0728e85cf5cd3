// Command wheeldemo shows a progress wheel in a window.
//
// Keys: Space starts or stops spinning, Up/Down move determinate progress by
// 10%, R resets, L toggles the percentage label, Esc saves and quits.
package main

import (
	stderrors "errors"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/go-drift/progresswheel/pkg/config"
	"github.com/go-drift/progresswheel/pkg/errors"
	"github.com/go-drift/progresswheel/pkg/store"
	"github.com/go-drift/progresswheel/pkg/wheel"
)

const (
	appName     = "progresswheel_demo"
	snapshotKey = "demo"
	screenSize  = 240
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}

	snapshots, err := store.Open(appName)
	if err != nil {
		var we *errors.WheelError
		if stderrors.As(err, &we) {
			errors.Report(we)
		}
		snapshots = store.New(nil)
	}

	game, err := newGame(cfg, snapshots)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(screenSize*2, screenSize*2)
	ebiten.SetWindowTitle("progress wheel")
	if err := ebiten.RunGame(game); err != nil && !stderrors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

// loadConfig reads the nearest wheel.yaml, sized for the demo window when
// the file does not say otherwise.
func loadConfig() (wheel.Config, error) {
	base := wheel.DefaultConfig()
	base.CircleRadius = screenSize / 2
	base.BarThickness = 8
	base.RimThickness = 8
	base.BarColor = 0xFF3F51B5
	base.RimColor = 0x223F51B5

	wd, err := os.Getwd()
	if err != nil {
		return base, err
	}
	path, err := config.Find(wd)
	if stderrors.Is(err, os.ErrNotExist) {
		return base, nil
	}
	if err != nil {
		return base, err
	}
	f, err := config.Load(path)
	if err != nil {
		return base, err
	}
	return f.Resolve(base)
}
