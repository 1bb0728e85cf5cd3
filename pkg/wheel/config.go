package wheel

import (
	"time"

	"github.com/go-drift/progresswheel/pkg/arrow"
	"github.com/go-drift/progresswheel/pkg/errors"
	"github.com/go-drift/progresswheel/pkg/graphics"
)

// Default configuration values.
const (
	DefaultBarLength          = 16.0
	DefaultBarMaxLength       = 270.0
	DefaultGrowthCycle        = 460 * time.Millisecond
	DefaultPauseAfterGrowth   = 200 * time.Millisecond
	DefaultSpinSpeed          = 230.0
	DefaultMaxArrowLineLength = 15.0
	DefaultBarThickness       = 4.0
	DefaultRimThickness       = 4.0
	DefaultCircleRadius       = 28.0
	DefaultBarColor           = graphics.Color(0xAA000000)
	DefaultRimColor           = graphics.Color(0x00FFFFFF)
)

// Config holds the values a host sets on the wheel.
//
// Lengths in degrees describe the arc; sizes in pixels are only consumed by
// arrow geometry and rendering collaborators.
type Config struct {
	// BarLength is the base arc length in degrees. Must be positive and
	// smaller than BarMaxLength.
	BarLength float64
	// BarMaxLength is the arc length in degrees at full growth.
	BarMaxLength float64
	// GrowthCycle is the duration of one grow or shrink half-cycle.
	GrowthCycle time.Duration
	// PauseAfterGrowth holds the arc length still after each half-cycle.
	PauseAfterGrowth time.Duration
	// SpinSpeed is the rotation speed in degrees per second.
	SpinSpeed float64

	ArrowStyle         arrow.Style
	MaxArrowLineLength float64

	BarThickness float64
	RimThickness float64
	CircleRadius float64
	BarColor     graphics.Color
	RimColor     graphics.Color

	// LinearProgress selects linear determinate progress. It is carried for
	// hosts and snapshots; determinate frames snap to the target either way.
	LinearProgress bool
	// FillRadius makes renderers fill the available box instead of using
	// CircleRadius.
	FillRadius bool
}

// DefaultConfig returns the configuration a new wheel starts with.
func DefaultConfig() Config {
	return Config{
		BarLength:          DefaultBarLength,
		BarMaxLength:       DefaultBarMaxLength,
		GrowthCycle:        DefaultGrowthCycle,
		PauseAfterGrowth:   DefaultPauseAfterGrowth,
		SpinSpeed:          DefaultSpinSpeed,
		ArrowStyle:         arrow.StyleTriangle,
		MaxArrowLineLength: DefaultMaxArrowLineLength,
		BarThickness:       DefaultBarThickness,
		RimThickness:       DefaultRimThickness,
		CircleRadius:       DefaultCircleRadius,
		BarColor:           DefaultBarColor,
		RimColor:           DefaultRimColor,
	}
}

// resolve fills unusable values in next from prev and validates the result.
// Only an arc whose base length is not below its maximum is rejected.
func resolve(prev, next Config) (Config, error) {
	fallback := func(v *float64, p float64) {
		if *v <= 0 {
			*v = p
		}
	}
	fallback(&next.BarLength, prev.BarLength)
	fallback(&next.BarMaxLength, prev.BarMaxLength)
	fallback(&next.SpinSpeed, prev.SpinSpeed)
	fallback(&next.MaxArrowLineLength, prev.MaxArrowLineLength)
	fallback(&next.CircleRadius, prev.CircleRadius)
	if next.GrowthCycle <= 0 {
		next.GrowthCycle = prev.GrowthCycle
	}
	if next.PauseAfterGrowth <= 0 {
		next.PauseAfterGrowth = prev.PauseAfterGrowth
	}
	if next.BarThickness < 0 {
		next.BarThickness = prev.BarThickness
	}
	if next.RimThickness < 0 {
		next.RimThickness = prev.RimThickness
	}
	switch next.ArrowStyle {
	case arrow.StyleNone, arrow.StyleTriangle, arrow.StyleLine:
	default:
		next.ArrowStyle = prev.ArrowStyle
	}

	if next.BarLength >= next.BarMaxLength {
		return prev, errors.NewConfigError("wheel.Configure", "BarLength", next.BarLength,
			"must be less than BarMaxLength")
	}
	return next, nil
}

// derived holds values computed once per Configure.
type derived struct {
	destLength float64 // BarMaxLength - BarLength
	cycleMs    float64
	pauseMs    float64
}

func derive(c Config) derived {
	return derived{
		destLength: c.BarMaxLength - c.BarLength,
		cycleMs:    float64(c.GrowthCycle) / float64(time.Millisecond),
		pauseMs:    float64(c.PauseAfterGrowth) / float64(time.Millisecond),
	}
}
