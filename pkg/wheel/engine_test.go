package wheel

import (
	stderrors "errors"
	"math"
	"math/rand/v2"
	"path/filepath"
	"testing"

	"github.com/go-drift/progresswheel/pkg/animation"
	"github.com/go-drift/progresswheel/pkg/arrow"
	"github.com/go-drift/progresswheel/pkg/errors"
	wheeltest "github.com/go-drift/progresswheel/pkg/testing"
)

const eps = 1e-9

func newEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return e
}

// observe records every value passed to the progress observer after the
// call made on registration.
func observe(e *Engine) *[]float64 {
	var got []float64
	e.OnProgressChanged(func(p float64) {
		got = append(got, p)
	})
	got = nil
	return &got
}

// run ticks e every stepMs from fromMs up to and including toMs.
func run(e *Engine, fromMs, toMs, stepMs float64, each func(now float64, f Frame)) {
	for now := fromMs; now <= toMs; now += stepMs {
		f := e.Tick(now)
		if each != nil {
			each(now, f)
		}
	}
}

func TestSetProgressInstant_RoundTrip(t *testing.T) {
	for _, p := range []float64{0, 0.1, 0.25, 0.5, 0.75, 0.999} {
		e := newEngine(t)
		e.SetProgressInstant(p)
		if got := e.NormalizedProgress(); math.Abs(got-p) > eps {
			t.Errorf("SetProgressInstant(%v): NormalizedProgress() = %v", p, got)
		}
		if e.IsSpinning() {
			t.Errorf("SetProgressInstant(%v): still spinning", p)
		}

		e.Tick(0)
		e.Tick(100)
		if got := e.NormalizedProgress(); math.Abs(got-p) > eps {
			t.Errorf("SetProgressInstant(%v) after ticks: NormalizedProgress() = %v", p, got)
		}
	}
}

func TestSetProgressInstant_Clamping(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-0.5, 0},
		{1, 1},
		{1.25, 0.25},
		{2.5, 1}, // one wrap, then capped at a full turn
	}
	for _, tt := range tests {
		e := newEngine(t)
		e.SetProgressInstant(tt.in)
		if got := e.NormalizedProgress(); math.Abs(got-tt.want) > eps {
			t.Errorf("SetProgressInstant(%v): NormalizedProgress() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetProgressInstant_SameValueIsNoop(t *testing.T) {
	e := newEngine(t)
	calls := observe(e)

	e.SetProgressInstant(0.4)
	if len(*calls) != 1 || (*calls)[0] != 0.4 {
		t.Fatalf("observer calls = %v, want [0.4]", *calls)
	}
	before := e.State()

	e.SetProgressInstant(0.4)
	if len(*calls) != 1 {
		t.Errorf("observer calls after repeat = %v, want one call", *calls)
	}
	if e.State() != before {
		t.Errorf("state changed on repeated SetProgressInstant:\n got %+v\nwant %+v", e.State(), before)
	}
}

func TestSetProgressInstant_SameTargetAfterSpin(t *testing.T) {
	e := newEngine(t)
	e.SetProgressInstant(0.5)
	e.Tick(0)
	e.StartSpin()
	run(e, 0, 1000, 16, nil)
	calls := observe(e)

	e.SetProgressInstant(0.5)
	if e.IsSpinning() {
		t.Fatal("expected spinning to stop")
	}
	if got := e.NormalizedProgress(); got != 0.5 {
		t.Errorf("NormalizedProgress() = %v, want 0.5", got)
	}
	if s := e.State(); s.CurrentAngle != 180 || s.TargetProgress != 180 {
		t.Errorf("angles = %v/%v, want 180/180", s.CurrentAngle, s.TargetProgress)
	}
	if len(*calls) != 1 || (*calls)[0] != 0.5 {
		t.Errorf("observer calls = %v, want [0.5]", *calls)
	}
	if f := e.Tick(1016); f.StartAngle != 90 || f.ShowArrow {
		t.Errorf("next frame = %+v, want determinate at 180", f)
	}
}

func TestOnProgressChanged_ReportsCurrentProgress(t *testing.T) {
	e := newEngine(t)
	e.SetProgressInstant(0.25)

	var got []float64
	e.OnProgressChanged(func(p float64) { got = append(got, p) })
	if len(got) != 1 || got[0] != 0.25 {
		t.Errorf("calls on registration = %v, want [0.25]", got)
	}

	e.StartSpin()
	got = nil
	e.OnProgressChanged(func(p float64) { got = append(got, p) })
	if len(got) != 0 {
		t.Errorf("calls on registration while spinning = %v, want none", got)
	}

	e.OnProgressChanged(nil)
	e.SetProgressInstant(0.75)
}

func TestSetProgressInstant_CancelsSpin(t *testing.T) {
	e := newEngine(t)
	e.StartSpin()
	run(e, 0, 1000, 16, nil)

	e.SetProgressInstant(0.3)
	if e.IsSpinning() {
		t.Fatal("expected spinning to stop")
	}
	if e.State().Arrow != ArrowHidden {
		t.Errorf("Arrow = %v, want hidden", e.State().Arrow)
	}
	if f := e.Tick(2000); f.ShowArrow {
		t.Error("determinate frame should not show the arrow")
	}
}

func TestSpin_FullTurnNotifies(t *testing.T) {
	cfg := DefaultConfig()
	e, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	calls := observe(e)
	e.StartSpin()

	// A full turn needs 360000/SpinSpeed ms of internal time, which is twice
	// that in tick timestamps; the margin covers the growth compensation.
	limit := 4 * 360000 / cfg.SpinSpeed
	run(e, 0, limit+1000, 16, func(_ float64, _ Frame) {
		if a := e.State().CurrentAngle; a > 360 {
			t.Fatalf("CurrentAngle = %v, want <= 360", a)
		}
	})

	cycles := 0
	for _, v := range *calls {
		if v == CycleCompleted {
			cycles++
		}
	}
	if cycles == 0 {
		t.Errorf("expected at least one %v notification, got %v", CycleCompleted, *calls)
	}
	if got := e.NormalizedProgress(); got != -1 {
		t.Errorf("NormalizedProgress() while spinning = %v, want -1", got)
	}
}

func TestSpin_ExtraLengthStaysInRange(t *testing.T) {
	e := newEngine(t)
	e.StartSpin()
	dest := e.Config().BarMaxLength - e.Config().BarLength

	rng := rand.New(rand.NewPCG(1, 2))
	now := 0.0
	for i := range 10000 {
		now += 0.1 + rng.Float64()*100
		f := e.Tick(now)
		extra := e.State().ExtraArcLength
		if extra < -eps || extra > dest+eps {
			t.Fatalf("tick %d: ExtraArcLength = %v, want within [0, %v]", i, extra, dest)
		}
		if f.SweepAngle < e.Config().BarLength-eps || f.SweepAngle > e.Config().BarMaxLength+eps {
			t.Fatalf("tick %d: SweepAngle = %v out of range", i, f.SweepAngle)
		}
		if f.ArrowGrowthFraction < -eps || f.ArrowGrowthFraction > 1+eps {
			t.Fatalf("tick %d: ArrowGrowthFraction = %v out of range", i, f.ArrowGrowthFraction)
		}
	}
}

// A stop finishes when a back-growing half-cycle follows a front-growing one,
// which can take up to two half-cycles plus their pauses. This is intentional.
func TestStopSpin_Terminates(t *testing.T) {
	e := newEngine(t)
	e.StartSpin()
	run(e, 0, 1234, 16, nil)

	// Still inside the first back-growing half-cycle, so the start arrow stays.
	e.StopSpin()
	if !e.IsSpinning() {
		t.Fatal("StopSpin must not stop immediately")
	}
	if e.State().Arrow != ArrowStartStopPending {
		t.Fatalf("Arrow = %v, want at-start-stop-pending", e.State().Arrow)
	}

	sawAtEnd := false
	var last Frame
	stoppedAt := -1.0
	run(e, 1250, 1250+4000, 16, func(now float64, f Frame) {
		if stoppedAt >= 0 {
			return
		}
		if e.State().Arrow == ArrowAtEnd {
			sawAtEnd = true
			if !f.ShowArrow {
				t.Errorf("at %vms: arrow should be shown while catching up", now)
			}
		}
		if !e.IsSpinning() {
			stoppedAt = now
			last = f
		}
	})

	if stoppedAt < 0 {
		t.Fatal("spinning never stopped")
	}
	if !sawAtEnd {
		t.Error("expected the arrow to pass through at-end before stopping")
	}
	if !last.ShowArrow {
		t.Error("the halting frame should draw the arrow one last time")
	}
	if e.NeedsFrame() {
		t.Error("NeedsFrame() should be false once stopped")
	}
	if e.State().Arrow != ArrowHidden {
		t.Errorf("Arrow = %v, want hidden", e.State().Arrow)
	}
}

func TestStopSpin_NotSpinningIsNoop(t *testing.T) {
	e := newEngine(t)
	e.StopSpin()
	if e.State().Arrow != ArrowHidden || e.IsSpinning() {
		t.Errorf("StopSpin on idle engine changed state: %+v", e.State())
	}
}

func TestStartSpin_Idempotent(t *testing.T) {
	e := newEngine(t)
	e.StartSpin()
	run(e, 0, 800, 16, nil)
	before := e.State()

	e.StartSpin()
	if e.State() != before {
		t.Errorf("StartSpin while spinning changed state:\n got %+v\nwant %+v", e.State(), before)
	}
}

func TestStartSpin_CancelsPendingStop(t *testing.T) {
	tests := []struct {
		name    string
		stopAt  float64
		pending ArrowPhase
		want    ArrowPhase
	}{
		// Back-growing, start arrow still up.
		{"during start arrow", 500, ArrowStartStopPending, ArrowAtStart},
		// Front-growing in the second half-cycle.
		{"after start arrow", 2000, ArrowTransitioning, ArrowHidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t)
			e.StartSpin()
			run(e, 0, tt.stopAt, 16, nil)
			e.StopSpin()
			if e.State().Arrow != tt.pending {
				t.Fatalf("Arrow after StopSpin = %v, want %v", e.State().Arrow, tt.pending)
			}
			e.StartSpin()
			if e.State().Arrow != tt.want {
				t.Errorf("Arrow after StartSpin = %v, want %v", e.State().Arrow, tt.want)
			}
			run(e, tt.stopAt+16, tt.stopAt+6000, 16, nil)
			if !e.IsSpinning() {
				t.Error("spin should continue after StartSpin cancelled the stop")
			}
		})
	}
}

func TestStopSpin_KeepsStartArrow(t *testing.T) {
	e := newEngine(t)
	e.StartSpin()
	run(e, 0, 400, 16, nil)
	e.StopSpin()

	shown := 0
	run(e, 416, 1312, 16, func(now float64, f Frame) {
		if e.State().GrowingFromFront {
			t.Fatalf("at %vms: expected the first half-cycle to grow from the back", now)
		}
		if f.ShowArrow {
			shown++
		}
	})
	if shown == 0 {
		t.Error("start arrow disappeared after StopSpin")
	}
	if e.State().Arrow != ArrowStartStopPending {
		t.Errorf("Arrow = %v, want at-start-stop-pending", e.State().Arrow)
	}

	run(e, 1328, 8000, 16, nil)
	if e.IsSpinning() {
		t.Error("stop request was lost")
	}
}

func TestTick_SameTimestampIsIdempotent(t *testing.T) {
	e := newEngine(t)
	e.StartSpin()
	run(e, 0, 1600, 16, nil)

	f1 := e.Tick(1700)
	s1 := e.State()
	f2 := e.Tick(1700)
	if f1 != f2 {
		t.Errorf("frame changed on zero delta:\n got %+v\nwant %+v", f2, f1)
	}
	if e.State() != s1 {
		t.Errorf("state changed on zero delta:\n got %+v\nwant %+v", e.State(), s1)
	}
}

func TestTick_ClockRegression(t *testing.T) {
	e := newEngine(t)
	e.StartSpin()
	run(e, 0, 1000, 16, nil)
	before := e.State()

	f := e.Tick(500)
	after := e.State()
	if after.CurrentAngle != before.CurrentAngle || after.ExtraArcLength != before.ExtraArcLength {
		t.Errorf("regressed clock moved the arc: before %+v after %+v", before, after)
	}
	if f.SweepAngle < e.Config().BarLength {
		t.Errorf("SweepAngle = %v, want >= BarLength", f.SweepAngle)
	}
	if after.LastTick != 500 {
		t.Errorf("LastTick = %v, want 500", after.LastTick)
	}
}

func TestTick_NonFiniteTimestampIgnored(t *testing.T) {
	e := newEngine(t)
	e.StartSpin()
	f := e.Tick(100)
	for _, now := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := e.Tick(now); got != f {
			t.Errorf("Tick(%v) = %+v, want previous frame %+v", now, got, f)
		}
	}
	if e.State().LastTick != 100 {
		t.Errorf("LastTick = %v, want 100", e.State().LastTick)
	}
}

func TestTick_HugeDeltaWrapsAngle(t *testing.T) {
	e := newEngine(t)
	calls := observe(e)
	e.StartSpin()
	e.Tick(0)
	e.Tick(1e12)

	a := e.State().CurrentAngle
	if a > 360 || math.IsNaN(a) {
		t.Errorf("CurrentAngle = %v, want normalized", a)
	}
	if n := len(*calls); n != maxTurnsPerTick {
		t.Errorf("cycle notifications = %d, want %d", n, maxTurnsPerTick)
	}
}

func TestScenario_SpinHalfRateClock(t *testing.T) {
	e, err := New(Config{BarLength: 16, BarMaxLength: 270, SpinSpeed: 230, ArrowStyle: arrow.StyleTriangle})
	if err != nil {
		t.Fatal(err)
	}
	e.StartSpin()
	e.Tick(0)
	f := e.Tick(500)

	// The growth oscillator starts as a fresh wheel does: shrinking from the
	// back with an empty pause counter. A sweep above 16 therefore first shows
	// on the following tick rather than at 500ms; this is intentional.
	//
	// 500ms of wall time is 250ms of internal time: 250 * 230 / 1000.
	if got := e.State().CurrentAngle; got != 57.5 {
		t.Errorf("CurrentAngle = %v, want 57.5", got)
	}
	if f.StartAngle != 57.5-90 {
		t.Errorf("StartAngle = %v, want %v", f.StartAngle, 57.5-90)
	}
	// The oscillator spends the first PauseAfterGrowth holding the base length.
	if f.SweepAngle != 16 {
		t.Errorf("SweepAngle = %v, want 16", f.SweepAngle)
	}
	if !f.ShowArrow {
		t.Error("arrow should show while spinning starts")
	}

	f = e.Tick(1000)
	s := e.State()
	if s.GrowthElapsed != 250 {
		t.Errorf("GrowthElapsed = %v, want 250", s.GrowthElapsed)
	}
	grown := (270 - 16) * (1 - animation.CosineRamp(250.0/460))
	if math.Abs(f.SweepAngle-(16+grown)) > eps {
		t.Errorf("SweepAngle = %v, want %v", f.SweepAngle, 16+grown)
	}
	if f.SweepAngle <= 16 {
		t.Errorf("SweepAngle = %v, want growth above 16", f.SweepAngle)
	}
	// Spin contribution plus the trailing-edge compensation.
	if want := 115 - grown; math.Abs(s.CurrentAngle-want) > eps {
		t.Errorf("CurrentAngle = %v, want %v", s.CurrentAngle, want)
	}
}

func TestScenario_AnimatedProgressSnaps(t *testing.T) {
	e := newEngine(t)
	calls := observe(e)
	e.SetProgressAnimated(0.5)
	if got := e.State().CurrentAngle; got != 0 {
		t.Fatalf("CurrentAngle before tick = %v, want 0", got)
	}

	prev := 0.0
	run(e, 0, 200, 4, func(now float64, _ Frame) {
		a := e.State().CurrentAngle
		if a < prev || a > 180 {
			t.Errorf("at %vms: CurrentAngle = %v after %v, want monotonic up to 180", now, a, prev)
		}
		prev = a
	})

	if got := e.State().CurrentAngle; got != 180 {
		t.Errorf("CurrentAngle = %v, want 180", got)
	}
	if len(*calls) != 1 || (*calls)[0] != 0.5 {
		t.Errorf("observer calls = %v, want [0.5]", *calls)
	}
	if e.NeedsFrame() {
		t.Error("NeedsFrame() should be false once settled")
	}
}

func TestSetProgressAnimated_FromSpin(t *testing.T) {
	e := newEngine(t)
	e.StartSpin()
	run(e, 0, 700, 16, nil)
	calls := observe(e)

	e.SetProgressAnimated(0.25)
	if e.IsSpinning() {
		t.Fatal("expected spinning to stop")
	}
	if len(*calls) != 1 || (*calls)[0] != 0 {
		t.Fatalf("observer calls = %v, want [0]", *calls)
	}
	if got := e.State().TargetProgress; got != 90 {
		t.Errorf("TargetProgress = %v, want 90", got)
	}

	e.Tick(800)
	if got := e.NormalizedProgress(); got != 0.25 {
		t.Errorf("NormalizedProgress() = %v, want 0.25", got)
	}
}

func TestSetProgressAnimated_SameTargetIsNoop(t *testing.T) {
	e := newEngine(t)
	e.SetProgressAnimated(0.5)
	e.Tick(0)
	before := e.State()
	calls := observe(e)

	e.SetProgressAnimated(0.5)
	e.Tick(0)
	if len(*calls) != 0 {
		t.Errorf("observer calls = %v, want none", *calls)
	}
	if e.State() != before {
		t.Errorf("state changed:\n got %+v\nwant %+v", e.State(), before)
	}
}

func TestReset(t *testing.T) {
	e := newEngine(t)
	e.SetProgressInstant(0.6)
	e.Reset()
	if s := e.State(); s.CurrentAngle != 0 || s.TargetProgress != 0 {
		t.Errorf("after Reset: %+v", s)
	}
}

func TestSpinSpeedAccessors(t *testing.T) {
	e := newEngine(t)
	if got, want := e.SpinSpeed(), 230.0/360; math.Abs(got-want) > eps {
		t.Errorf("SpinSpeed() = %v, want %v", got, want)
	}
	e.SetSpinSpeed(1)
	if got := e.Config().SpinSpeed; got != 360 {
		t.Errorf("Config().SpinSpeed = %v, want 360", got)
	}
	e.SetSpinSpeed(-3)
	if got := e.Config().SpinSpeed; got != 360 {
		t.Errorf("negative SetSpinSpeed changed speed to %v", got)
	}
}

func TestLinearProgressFlag(t *testing.T) {
	e := newEngine(t)
	e.SetLinearProgress(true)
	if !e.LinearProgress() || !e.Snapshot().LinearProgress {
		t.Error("linear progress flag not recorded")
	}
}

func TestResync(t *testing.T) {
	e := newEngine(t)
	e.StartSpin()
	e.Tick(0)
	e.Tick(100)
	before := e.State().CurrentAngle

	e.Resync()
	e.Tick(100000)
	if got := e.State().CurrentAngle; got != before {
		t.Errorf("CurrentAngle after resync tick = %v, want %v", got, before)
	}
}

func TestArrowStyleNoneHidesArrow(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ArrowStyle = arrow.StyleNone
	e, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	e.StartSpin()
	run(e, 0, 3000, 16, func(now float64, f Frame) {
		if f.ShowArrow {
			t.Fatalf("at %vms: arrow shown with style none", now)
		}
	})
}

func TestArrowGeometryUsesConfig(t *testing.T) {
	e := newEngine(t)
	e.StartSpin()
	e.Tick(0)
	f := e.Tick(1000)
	g := e.ArrowGeometry(f, 40)
	if g.Style != e.Config().ArrowStyle {
		t.Errorf("Style = %v, want %v", g.Style, e.Config().ArrowStyle)
	}
	if g.Triangle[0] == g.Triangle[1] {
		t.Error("expected a non-degenerate triangle")
	}
}

func TestObserverPanicIsReported(t *testing.T) {
	var captured *errors.PanicError
	errors.SetHandler(&panicHandler{onPanic: func(p *errors.PanicError) { captured = p }})
	defer errors.SetHandler(nil)

	e := newEngine(t)
	e.OnProgressChanged(func(float64) { panic("observer failed") })
	if captured == nil {
		t.Fatal("expected the registration call to be recovered")
	}
	captured = nil
	e.SetProgressInstant(0.5)

	if captured == nil {
		t.Fatal("expected panic to be reported")
	}
	if captured.Op != "wheel.progressChanged" {
		t.Errorf("Op = %q, want %q", captured.Op, "wheel.progressChanged")
	}
	if got := e.NormalizedProgress(); got != 0.5 {
		t.Errorf("NormalizedProgress() = %v, want 0.5", got)
	}
}

// TestSpinStopTrace pins a full spin session against testdata/spin_stop.json:
// the growth oscillator, both arrow phases, the halting frame and the
// determinate frames after it. Regenerate with WHEEL_UPDATE_TRACES=1.
func TestSpinStopTrace(t *testing.T) {
	e := newEngine(t)
	tr := wheeltest.NewTrace("now", "start", "sweep", "arrow", "fraction", "spinning")
	flag := func(b bool) float64 {
		if b {
			return 1
		}
		return 0
	}

	e.StartSpin()
	for i := 0; i <= 200; i++ {
		now := float64(i * 20)
		if now == 2500 {
			e.StopSpin()
		}
		f := e.Tick(now)
		tr.Add(now, f.StartAngle, f.SweepAngle, flag(f.ShowArrow), f.ArrowGrowthFraction, flag(e.IsSpinning()))
	}
	if e.IsSpinning() {
		t.Fatal("session should end stopped")
	}
	tr.MatchesFile(t, filepath.Join("testdata", "spin_stop.json"))
}

type panicHandler struct {
	onPanic func(*errors.PanicError)
}

func (h *panicHandler) HandleError(*errors.WheelError)   {}
func (h *panicHandler) HandlePanic(p *errors.PanicError) { h.onPanic(p) }

func TestNew_RejectsBarLengthAtMax(t *testing.T) {
	_, err := New(Config{BarLength: 270, BarMaxLength: 270})
	if err == nil {
		t.Fatal("expected configuration error")
	}
	var cfgErr *errors.ConfigError
	if !stderrors.As(err, &cfgErr) {
		t.Fatalf("error %v is not a ConfigError", err)
	}
	if cfgErr.Field != "BarLength" {
		t.Errorf("Field = %q, want BarLength", cfgErr.Field)
	}
}
