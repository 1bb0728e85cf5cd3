package raster

import (
	"github.com/go-drift/progresswheel/pkg/graphics"
	"github.com/go-drift/progresswheel/pkg/wheel"
)

// Layout places the wheel inside a box.
type Layout struct {
	// Bounds is the square the bar's centerline is drawn on.
	Bounds graphics.Rect
	Center graphics.Offset
	Radius float64
}

// ComputeLayout positions the wheel described by cfg in a width x height box.
//
// Without FillRadius the circle is centered with diameter
// min(min(width, height), 2*CircleRadius - 2*BarThickness). With FillRadius
// it uses the whole box. Either way the bar is inset by BarThickness so the
// stroke stays inside.
func ComputeLayout(cfg wheel.Config, width, height float64) Layout {
	w := cfg.BarThickness
	var bounds graphics.Rect
	if !cfg.FillRadius {
		diameter := min(min(width, height), cfg.CircleRadius*2-w*2)
		x := (width - diameter) / 2
		y := (height - diameter) / 2
		bounds = graphics.Rect{Left: x + w, Top: y + w, Right: x + diameter - w, Bottom: y + diameter - w}
	} else {
		bounds = graphics.Rect{Left: w, Top: w, Right: width - w, Bottom: height - w}
	}

	radius := max(min(bounds.Width(), bounds.Height())/2, 0)
	return Layout{Bounds: bounds, Center: bounds.Center(), Radius: radius}
}
