package wheel

import (
	"math"

	"github.com/go-drift/progresswheel/pkg/animation"
	"github.com/go-drift/progresswheel/pkg/arrow"
	"github.com/go-drift/progresswheel/pkg/errors"
)

// CycleCompleted is the value passed to the progress observer each time the
// indeterminate spin completes a full turn.
const CycleCompleted = -1.0

// maxTurnsPerTick bounds the per-turn notifications a single huge delta can
// produce; anything beyond is folded with math.Mod.
const maxTurnsPerTick = 64

// State is the mutable animation state owned by an [Engine].
type State struct {
	// CurrentAngle is the rotating start angle of the arc in degrees.
	CurrentAngle float64
	// TargetProgress is the determinate destination angle in [0, 360].
	TargetProgress float64
	// ExtraArcLength is added to BarLength by the growth oscillator.
	ExtraArcLength float64
	Spinning       bool
	// GrowthElapsed is the position in the current half-cycle, in milliseconds.
	GrowthElapsed float64
	// PausedElapsed accumulates while the growth oscillator is paused.
	PausedElapsed    float64
	GrowingFromFront bool
	Arrow            ArrowPhase
	// LastTick is the timestamp passed to the previous Tick.
	LastTick float64
}

// Frame is the renderable geometry for one tick.
type Frame struct {
	// StartAngle is in degrees, with 0 progress at the top of the circle.
	StartAngle float64
	// SweepAngle is the arc length in degrees.
	SweepAngle float64
	ShowArrow  bool
	// ArrowGrowthFraction runs from 0 at full arc length to 1 at base length.
	ArrowGrowthFraction float64
	ArrowStyle          arrow.Style
}

// Engine advances the progress wheel animation one frame at a time.
//
// The engine owns no goroutines and is not safe for concurrent use; the
// host serializes Tick and command calls, typically on its UI thread.
type Engine struct {
	cfg Config
	derived
	state    State
	frame    Frame
	resync   bool
	observer func(float64)
}

// New returns an engine configured with cfg. Zero or negative fields fall
// back to [DefaultConfig] values.
func New(cfg Config) (*Engine, error) {
	e := &Engine{
		cfg:     DefaultConfig(),
		derived: derive(DefaultConfig()),
		resync:  true,
	}
	if err := e.Configure(cfg); err != nil {
		return nil, err
	}
	e.frame = e.deriveFrame(false)
	return e, nil
}

// Configure applies cfg. Unusable values keep their previous setting; a
// BarLength not below BarMaxLength is rejected and leaves the engine
// unchanged.
func (e *Engine) Configure(cfg Config) error {
	resolved, err := resolve(e.cfg, cfg)
	if err != nil {
		return err
	}
	e.cfg = resolved
	e.derived = derive(resolved)
	e.state.ExtraArcLength = min(max(e.state.ExtraArcLength, 0), e.destLength)
	return nil
}

// Config returns the active configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// State returns a copy of the animation state.
func (e *Engine) State() State {
	return e.state
}

// OnProgressChanged registers the single progress observer, replacing any
// previous one. The observer receives the progress rounded to two decimals
// when determinate motion settles, and [CycleCompleted] once per full
// indeterminate turn. It runs synchronously inside the engine call that
// triggered it. Pass nil to remove the observer.
//
// When the wheel is not spinning, fn is called once right away with the
// current rounded progress.
func (e *Engine) OnProgressChanged(fn func(progress float64)) {
	e.observer = fn
	if fn != nil && !e.state.Spinning {
		e.notify(e.roundedProgress())
	}
}

// Tick advances the animation to nowMs and returns the frame to draw.
//
// The internal clock runs at half the rate of nowMs. A timestamp earlier than
// the previous one counts as zero elapsed time.
func (e *Engine) Tick(nowMs float64) Frame {
	if math.IsNaN(nowMs) || math.IsInf(nowMs, 0) {
		return e.frame
	}
	s := &e.state
	delta := 0.0
	if e.resync {
		e.resync = false
	} else {
		delta = max(0, (nowMs-s.LastTick)/2)
	}
	s.LastTick = nowMs

	settling := !s.Spinning && s.CurrentAngle != s.TargetProgress

	growthDelta := delta
	if !s.Spinning {
		s.PausedElapsed = e.pauseMs
		s.GrowthElapsed = 0
		growthDelta = 0
	}
	e.updateBarLength(growthDelta)

	if s.Spinning {
		s.CurrentAngle += delta * e.cfg.SpinSpeed / 1000
		turns := 0
		for s.CurrentAngle > 360 && turns < maxTurnsPerTick {
			s.CurrentAngle -= 360
			turns++
		}
		if s.CurrentAngle > 360 {
			s.CurrentAngle = math.Mod(s.CurrentAngle, 360)
		}
		for range turns {
			e.notify(CycleCompleted)
		}
	} else {
		s.CurrentAngle = s.TargetProgress
	}

	step := advanceArrow(s.Arrow, s.GrowingFromFront)
	if !s.Spinning {
		step = arrowStep{next: ArrowHidden}
	}
	s.Arrow = step.next
	if step.haltSpin {
		s.Spinning = false
		s.TargetProgress = s.CurrentAngle
		settling = true
	}

	e.frame = e.deriveFrame(step.show)
	if settling {
		e.notify(e.roundedProgress())
	}
	return e.frame
}

// updateBarLength advances the growth oscillator by deltaMs.
func (e *Engine) updateBarLength(deltaMs float64) {
	s := &e.state
	if s.PausedElapsed < e.pauseMs {
		s.PausedElapsed += deltaMs
		return
	}

	s.GrowthElapsed += deltaMs
	if s.GrowthElapsed > e.cycleMs {
		s.GrowthElapsed -= e.cycleMs
		s.PausedElapsed = 0
		s.GrowingFromFront = !s.GrowingFromFront
	}

	distance := animation.CosineRamp(s.GrowthElapsed / e.cycleMs)
	if s.GrowingFromFront {
		s.ExtraArcLength = distance * e.destLength
		return
	}
	// Shrinking from the back: shift the start so the trailing edge stays put.
	newLength := e.destLength * (1 - distance)
	s.CurrentAngle += s.ExtraArcLength - newLength
	s.ExtraArcLength = newLength
}

func (e *Engine) deriveFrame(showArrow bool) Frame {
	sweep := e.cfg.BarLength + e.state.ExtraArcLength
	return Frame{
		StartAngle:          e.state.CurrentAngle - 90,
		SweepAngle:          sweep,
		ShowArrow:           showArrow && e.cfg.ArrowStyle != arrow.StyleNone,
		ArrowGrowthFraction: (e.cfg.BarMaxLength - sweep) / e.destLength,
		ArrowStyle:          e.cfg.ArrowStyle,
	}
}

// CurrentFrame returns the frame produced by the most recent Tick.
func (e *Engine) CurrentFrame() Frame {
	return e.frame
}

// ArrowGeometry computes the arrowhead for f on a circle of the given radius
// using the engine's bar sizes.
func (e *Engine) ArrowGeometry(f Frame, circleRadius float64) arrow.Geometry {
	return arrow.Compute(arrow.Params{
		StartAngle:     f.StartAngle,
		SweepAngle:     f.SweepAngle,
		GrowthFraction: f.ArrowGrowthFraction,
		Style:          f.ArrowStyle,
		CircleRadius:   circleRadius,
		BarThickness:   e.cfg.BarThickness,
		MaxLineLength:  e.cfg.MaxArrowLineLength,
		BarLength:      e.cfg.BarLength,
		BarMaxLength:   e.cfg.BarMaxLength,
	})
}

// NeedsFrame reports whether further ticks would change the frame: the wheel
// is spinning or determinate progress has not reached its target.
func (e *Engine) NeedsFrame() bool {
	return e.state.Spinning || e.state.CurrentAngle != e.state.TargetProgress
}

// StartSpin switches to indeterminate mode. Calling it while already
// spinning leaves the animation untouched, with one exception: a pending
// [Engine.StopSpin] is cancelled rather than left to finish, so the most
// recent request decides whether the wheel keeps spinning.
func (e *Engine) StartSpin() {
	s := &e.state
	if s.Spinning {
		switch s.Arrow {
		case ArrowStartStopPending:
			s.Arrow = ArrowAtStart
		case ArrowTransitioning, ArrowAtEnd:
			s.Arrow = ArrowHidden
		}
		return
	}
	s.Spinning = true
	s.Arrow = ArrowAtStart
	e.resync = true
}

// StopSpin requests a deferred stop: the wheel keeps spinning until the
// arrow has caught up with the arc, then halts in place. A start arrow that
// is still showing keeps showing until the arc grows from its front.
func (e *Engine) StopSpin() {
	s := &e.state
	if !s.Spinning || s.Arrow.stopPending() {
		return
	}
	if s.Arrow == ArrowAtStart {
		s.Arrow = ArrowStartStopPending
		return
	}
	s.Arrow = ArrowTransitioning
}

// IsSpinning reports whether the wheel is in indeterminate mode.
func (e *Engine) IsSpinning() bool {
	return e.state.Spinning
}

// SetProgressInstant jumps to progress p in [0, 1]. Values above 1 wrap
// once and negative values clamp to 0. Spinning is cancelled.
func (e *Engine) SetProgressInstant(p float64) {
	s := &e.state
	cancelled := s.Spinning
	if cancelled {
		s.Spinning = false
		s.Arrow = ArrowHidden
	}

	deg := progressDegrees(p)
	if !cancelled && deg == s.TargetProgress && s.CurrentAngle == deg {
		return
	}
	s.TargetProgress = deg
	s.CurrentAngle = deg
	e.resync = true
	e.notify(e.roundedProgress())
}

// SetProgressAnimated moves the target to progress p and lets subsequent
// ticks bring the arc there. If the wheel was spinning, spinning stops and
// the observer is told the progress it restarts from.
func (e *Engine) SetProgressAnimated(p float64) {
	s := &e.state
	if s.Spinning {
		s.CurrentAngle = 0
		s.Spinning = false
		s.Arrow = ArrowHidden
		e.notify(e.roundedProgress())
	}

	deg := progressDegrees(p)
	if deg == s.TargetProgress {
		return
	}
	if s.CurrentAngle == s.TargetProgress {
		e.resync = true
	}
	s.TargetProgress = deg
}

// Reset returns determinate progress to zero.
func (e *Engine) Reset() {
	e.state.CurrentAngle = 0
	e.state.TargetProgress = 0
}

// Resync makes the next Tick measure no elapsed time, for hosts regaining
// visibility after frames were skipped.
func (e *Engine) Resync() {
	e.resync = true
}

// NormalizedProgress returns -1 while spinning, else the current angle as a
// fraction of a full turn.
func (e *Engine) NormalizedProgress() float64 {
	if e.state.Spinning {
		return -1
	}
	return e.state.CurrentAngle / 360
}

// SpinSpeed returns the spin speed in full turns per second.
func (e *Engine) SpinSpeed() float64 {
	return e.cfg.SpinSpeed / 360
}

// SetSpinSpeed sets the spin speed in full turns per second. Non-positive
// values are ignored.
func (e *Engine) SetSpinSpeed(turnsPerSecond float64) {
	if turnsPerSecond > 0 {
		e.cfg.SpinSpeed = turnsPerSecond * 360
	}
}

// SetLinearProgress records the determinate progress mode.
func (e *Engine) SetLinearProgress(linear bool) {
	e.cfg.LinearProgress = linear
}

// LinearProgress reports the determinate progress mode.
func (e *Engine) LinearProgress() bool {
	return e.cfg.LinearProgress
}

func (e *Engine) roundedProgress() float64 {
	return math.Round(e.state.CurrentAngle*100/360) / 100
}

func (e *Engine) notify(v float64) {
	if e.observer == nil {
		return
	}
	defer errors.Recover("wheel.progressChanged")
	e.observer(v)
}

// progressDegrees maps progress to degrees: one wrap above 1, clamp below 0.
func progressDegrees(p float64) float64 {
	if p > 1 {
		p -= 1
	} else if p < 0 {
		p = 0
	}
	return min(p*360, 360)
}
