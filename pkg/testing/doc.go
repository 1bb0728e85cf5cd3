// Package testing provides deterministic test helpers for the progress wheel.
//
// # Fake Time
//
// [FakeClock] implements animation.Clock so a test can step frames by exact
// amounts:
//
//	clk := wheeltest.NewFakeClock()
//	prev := animation.SetClock(clk)
//	defer animation.SetClock(prev)
//
//	clk.Advance(16 * time.Millisecond)
//	animation.StepTickers()
//
// # Frame Traces
//
// A [Trace] records numeric columns per frame and compares them against a
// golden file:
//
//	tr := wheeltest.NewTrace("now", "start", "sweep")
//	tr.Add(now, frame.StartAngle, frame.SweepAngle)
//	tr.MatchesFile(t, "testdata/spin.trace.json")
//
// Set WHEEL_UPDATE_TRACES=1 to rewrite golden files instead of comparing.
package testing
