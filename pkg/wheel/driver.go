package wheel

import (
	"time"

	"github.com/go-drift/progresswheel/pkg/animation"
)

// Driver ticks an engine from an animation scheduler and hands each frame
// to a sink. It is the glue for hosts whose refresh loop already calls
// [animation.StepTickers].
type Driver struct {
	engine *Engine
	ticker *animation.Ticker
	sink   func(Frame)

	// StopWhenIdle stops the ticker once the engine no longer needs frames,
	// after delivering the final frame.
	StopWhenIdle bool
}

// NewDriver binds e to the default scheduler.
func NewDriver(e *Engine, sink func(Frame)) *Driver {
	return NewDriverOn(animation.DefaultScheduler, e, sink)
}

// NewDriverOn binds e to sched.
func NewDriverOn(sched *animation.Scheduler, e *Engine, sink func(Frame)) *Driver {
	d := &Driver{engine: e, sink: sink}
	d.ticker = sched.NewTicker(d.onTick)
	return d
}

func (d *Driver) onTick(elapsed time.Duration) {
	frame := d.engine.Tick(animation.Millis(elapsed))
	if d.sink != nil {
		d.sink(frame)
	}
	if d.StopWhenIdle && !d.engine.NeedsFrame() {
		d.ticker.Stop()
	}
}

// Start begins ticking. The engine resyncs so time spent stopped is not
// replayed.
func (d *Driver) Start() {
	if d.ticker.IsActive() {
		return
	}
	d.engine.Resync()
	d.ticker.Start()
}

// Stop stops ticking.
func (d *Driver) Stop() {
	d.ticker.Stop()
}

// Running reports whether the driver is ticking.
func (d *Driver) Running() bool {
	return d.ticker.IsActive()
}

// Frames returns the number of frames delivered since the last Start.
func (d *Driver) Frames() uint64 {
	return d.ticker.Frames()
}

// Engine returns the driven engine.
func (d *Driver) Engine() *Engine {
	return d.engine
}
