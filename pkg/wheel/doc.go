// Package wheel implements the animation state machine of a Material-style
// progress wheel.
//
// An [Engine] owns every oscillator of the wheel: the spin rotation, the
// growth oscillator that lengthens and shortens the arc, the determinate
// target, and the [ArrowPhase] that shows an arrowhead while spinning starts
// and stops. The host calls [Engine.Tick] with a monotonic millisecond
// timestamp once per display refresh and draws the returned [Frame]:
//
//	e, err := wheel.New(wheel.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	e.StartSpin()
//
//	// Every frame
//	f := e.Tick(nowMs)
//	canvas.DrawArc(bounds, f.StartAngle, f.SweepAngle)
//	if f.ShowArrow {
//	    drawArrow(e.ArrowGeometry(f, radius))
//	}
//
// # Clock
//
// The engine advances its oscillators by half of the wall-clock time between
// ticks. SpinSpeed of 230 degrees per second therefore turns the arc 115
// degrees per real second.
//
// # Stopping
//
// [Engine.StopSpin] is deferred: spinning continues until the growth
// oscillator has run one front-growing half-cycle with the arrow shown, and
// halts on the frame where the arc starts growing from its back again. A
// start arrow still on screen stays until the arc grows from its front.
package wheel
