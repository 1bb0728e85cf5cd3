package raster

import (
	"math"

	"golang.org/x/image/vector"

	"github.com/go-drift/progresswheel/pkg/graphics"
)

// maxSegment is the largest arc a single cubic approximates.
const maxSegment = math.Pi / 2

// arcTo appends an arc around c from startRad sweeping sweepRad. The
// rasterizer's pen must already be at the arc's start point.
func arcTo(z *vector.Rasterizer, c graphics.Offset, radius, startRad, sweepRad float64) {
	remaining := sweepRad
	current := startRad
	for math.Abs(remaining) > 0.0001 {
		seg := remaining
		if math.Abs(seg) > maxSegment {
			seg = math.Copysign(maxSegment, seg)
		}
		// k = (4/3) * tan(angle/4) keeps the cubic on the circle at its midpoint.
		k := (4.0 / 3.0) * math.Tan(seg/4)
		end := current + seg

		x1 := c.X + radius*math.Cos(current)
		y1 := c.Y + radius*math.Sin(current)
		x2 := c.X + radius*math.Cos(end)
		y2 := c.Y + radius*math.Sin(end)

		z.CubeTo(
			float32(x1-k*radius*math.Sin(current)), float32(y1+k*radius*math.Cos(current)),
			float32(x2+k*radius*math.Sin(end)), float32(y2-k*radius*math.Cos(end)),
			float32(x2), float32(y2),
		)
		current = end
		remaining -= seg
	}
}

// annulus adds a stroked arc of the given width as a closed outline: the
// outer edge forward, then the inner edge back.
func annulus(z *vector.Rasterizer, c graphics.Offset, radius, width, startDeg, sweepDeg float64) {
	if sweepDeg == 0 || width <= 0 {
		return
	}
	outer := radius + width/2
	inner := max(radius-width/2, 0)
	start := graphics.Radians(startDeg)
	sweep := graphics.Radians(sweepDeg)

	moveTo(z, c.Add(graphics.Polar(startDeg, outer)))
	arcTo(z, c, outer, start, sweep)
	lineTo(z, c.Add(graphics.Polar(startDeg+sweepDeg, inner)))
	arcTo(z, c, inner, start+sweep, -sweep)
	z.ClosePath()
}

// polygon adds a closed polygon offset by c.
func polygon(z *vector.Rasterizer, c graphics.Offset, pts ...graphics.Offset) {
	if len(pts) < 3 {
		return
	}
	moveTo(z, c.Add(pts[0]))
	for _, p := range pts[1:] {
		lineTo(z, c.Add(p))
	}
	z.ClosePath()
}

// stroke adds a butt-capped line of the given width from a to b, offset by c.
func stroke(z *vector.Rasterizer, c, a, b graphics.Offset, width float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 || width <= 0 {
		return
	}
	n := graphics.Offset{X: -dy / length * width / 2, Y: dx / length * width / 2}
	neg := graphics.Offset{X: -n.X, Y: -n.Y}
	polygon(z, c, a.Add(n), b.Add(n), b.Add(neg), a.Add(neg))
}

func moveTo(z *vector.Rasterizer, p graphics.Offset) {
	z.MoveTo(float32(p.X), float32(p.Y))
}

func lineTo(z *vector.Rasterizer, p graphics.Offset) {
	z.LineTo(float32(p.X), float32(p.Y))
}
