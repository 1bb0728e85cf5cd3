package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-drift/progresswheel/pkg/animation"
	"github.com/go-drift/progresswheel/pkg/wheel"
)

// script is the synthetic session both trace and render play back.
type script struct {
	duration time.Duration
	step     time.Duration
	spin     bool
	stopAt   time.Duration
	progress float64
	animated bool
}

func (s *script) bindFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.DurationVar(&s.duration, "duration", 2*time.Second, "session length")
	f.DurationVar(&s.step, "step", 16*time.Millisecond, "time between frames")
	f.BoolVar(&s.spin, "spin", false, "start in indeterminate mode")
	f.DurationVar(&s.stopAt, "stop-at", 0, "request a spin stop at this time (0 = never)")
	f.Float64Var(&s.progress, "progress", -1, "determinate progress to show, 0..1 (negative = none)")
	f.BoolVar(&s.animated, "animated", false, "apply --progress with SetProgressAnimated")
}

func (s *script) validate() error {
	if s.step <= 0 {
		return fmt.Errorf("--step must be positive, got %v", s.step)
	}
	if s.duration < 0 {
		return fmt.Errorf("--duration must not be negative, got %v", s.duration)
	}
	return nil
}

// play runs the session against a fresh engine and calls emit per frame.
func (s *script) play(cfg wheel.Config, emit func(nowMs float64, e *wheel.Engine, f wheel.Frame) error) error {
	if err := s.validate(); err != nil {
		return err
	}
	e, err := wheel.New(cfg)
	if err != nil {
		return err
	}

	if s.progress >= 0 {
		if s.animated {
			e.SetProgressAnimated(s.progress)
		} else {
			e.SetProgressInstant(s.progress)
		}
	}
	if s.spin {
		e.StartSpin()
	}

	stopped := false
	for now := time.Duration(0); now <= s.duration; now += s.step {
		if s.spin && !stopped && s.stopAt > 0 && now >= s.stopAt {
			e.StopSpin()
			stopped = true
		}
		ms := animation.Millis(now)
		if err := emit(ms, e, e.Tick(ms)); err != nil {
			return err
		}
	}
	return nil
}
