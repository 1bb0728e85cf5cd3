// Package animation provides the frame timing primitives that drive the
// progress wheel: a replaceable [Clock], frame [Ticker]s stepped once per
// display refresh, and the easing curve used by the growth oscillator.
//
// # Basic Usage
//
// A host creates a ticker per animated object and calls [StepTickers] from
// its frame callback:
//
//	t := animation.NewTicker(func(elapsed time.Duration) {
//	    frame := engine.Tick(animation.Millis(elapsed))
//	    paint(frame)
//	})
//	t.Start()
//
//	// In the display-refresh callback
//	animation.StepTickers()
//
// Tickers run on the caller's goroutine. Nothing here spawns goroutines.
package animation

import (
	"sync"
	"time"
)

// Scheduler owns a set of active tickers and steps them together.
// The zero value is ready to use.
type Scheduler struct {
	mu     sync.Mutex
	active map[*Ticker]struct{}
}

// DefaultScheduler is the scheduler used by [NewTicker] and [StepTickers].
var DefaultScheduler = &Scheduler{}

// Ticker calls a callback on each frame while active.
//
// The callback receives the elapsed time since Start was called.
type Ticker struct {
	sched    *Scheduler
	callback func(elapsed time.Duration)
	isActive bool
	start    time.Time
	frames   uint64
}

// NewTicker creates a new ticker on the default scheduler.
func NewTicker(callback func(elapsed time.Duration)) *Ticker {
	return DefaultScheduler.NewTicker(callback)
}

// NewTicker creates a new ticker owned by s.
func (s *Scheduler) NewTicker(callback func(elapsed time.Duration)) *Ticker {
	return &Ticker{sched: s, callback: callback}
}

// Start activates the ticker and resets its elapsed time to zero.
func (t *Ticker) Start() {
	if t.isActive {
		return
	}
	t.isActive = true
	t.start = Now()
	t.frames = 0
	t.sched.mu.Lock()
	if t.sched.active == nil {
		t.sched.active = make(map[*Ticker]struct{})
	}
	t.sched.active[t] = struct{}{}
	t.sched.mu.Unlock()
}

// Stop deactivates the ticker.
func (t *Ticker) Stop() {
	if !t.isActive {
		return
	}
	t.isActive = false
	t.sched.mu.Lock()
	delete(t.sched.active, t)
	t.sched.mu.Unlock()
}

// IsActive returns whether the ticker is currently running.
func (t *Ticker) IsActive() bool {
	return t.isActive
}

// Elapsed returns the time since the ticker started.
func (t *Ticker) Elapsed() time.Duration {
	if !t.isActive {
		return 0
	}
	return Now().Sub(t.start)
}

// Frames returns how many frames the ticker has received since Start.
func (t *Ticker) Frames() uint64 {
	return t.frames
}

// Step advances all active tickers of s.
func (s *Scheduler) Step() {
	s.mu.Lock()
	if len(s.active) == 0 {
		s.mu.Unlock()
		return
	}
	// Copy so callbacks may start or stop tickers.
	tickers := make([]*Ticker, 0, len(s.active))
	for ticker := range s.active {
		tickers = append(tickers, ticker)
	}
	s.mu.Unlock()

	now := Now()
	for _, ticker := range tickers {
		if ticker.isActive && ticker.callback != nil {
			ticker.frames++
			ticker.callback(now.Sub(ticker.start))
		}
	}
}

// HasActive returns true if any tickers of s are active.
func (s *Scheduler) HasActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active) > 0
}

// StepTickers advances all tickers on the default scheduler.
// This should be called once per frame from the host's refresh loop.
func StepTickers() {
	DefaultScheduler.Step()
}

// HasActiveTickers returns true if any default-scheduler tickers are active.
func HasActiveTickers() bool {
	return DefaultScheduler.HasActive()
}
