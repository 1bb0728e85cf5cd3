package wheel

import "github.com/go-drift/progresswheel/pkg/graphics"

// Snapshot is the state a host saves and restores across view recreation.
// The engine does not persist it; see package store for a gdata-backed saver.
type Snapshot struct {
	CurrentAngle   float64        `yaml:"currentAngle"`
	TargetProgress float64        `yaml:"targetProgress"`
	Spinning       bool           `yaml:"spinning"`
	SpinSpeed      float64        `yaml:"spinSpeed"`
	BarThickness   float64        `yaml:"barThickness"`
	BarColor       graphics.Color `yaml:"barColor"`
	RimThickness   float64        `yaml:"rimThickness"`
	RimColor       graphics.Color `yaml:"rimColor"`
	CircleRadius   float64        `yaml:"circleRadius"`
	LinearProgress bool           `yaml:"linearProgress"`
	FillRadius     bool           `yaml:"fillRadius"`
}

// Snapshot captures the restorable state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		CurrentAngle:   e.state.CurrentAngle,
		TargetProgress: e.state.TargetProgress,
		Spinning:       e.state.Spinning,
		SpinSpeed:      e.cfg.SpinSpeed,
		BarThickness:   e.cfg.BarThickness,
		BarColor:       e.cfg.BarColor,
		RimThickness:   e.cfg.RimThickness,
		RimColor:       e.cfg.RimColor,
		CircleRadius:   e.cfg.CircleRadius,
		LinearProgress: e.cfg.LinearProgress,
		FillRadius:     e.cfg.FillRadius,
	}
}

// Restore applies a snapshot. Sizes and speeds that are out of range keep
// their current values. The tick clock resyncs and the arrow starts hidden.
func (e *Engine) Restore(snap Snapshot) {
	cfg := e.cfg
	cfg.SpinSpeed = snap.SpinSpeed
	cfg.BarThickness = snap.BarThickness
	cfg.BarColor = snap.BarColor
	cfg.RimThickness = snap.RimThickness
	cfg.RimColor = snap.RimColor
	cfg.CircleRadius = snap.CircleRadius
	cfg.LinearProgress = snap.LinearProgress
	cfg.FillRadius = snap.FillRadius
	// Bar lengths are untouched, so resolve cannot reject this config.
	_ = e.Configure(cfg)

	e.state.CurrentAngle = snap.CurrentAngle
	e.state.TargetProgress = min(max(snap.TargetProgress, 0), 360)
	e.state.Spinning = snap.Spinning
	e.state.Arrow = ArrowHidden
	e.resync = true
}
