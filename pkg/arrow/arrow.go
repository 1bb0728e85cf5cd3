// Package arrow computes the arrowhead drawn at the leading end of the
// progress wheel's arc while spinning starts or stops.
//
// All points are relative to the circle center, in pixels, with Y growing
// downward. Angles are degrees in the same convention as the arc itself.
package arrow

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-drift/progresswheel/pkg/graphics"
)

// Style selects how the arrowhead is drawn.
type Style int

const (
	// StyleNone draws no arrowhead.
	StyleNone Style = iota
	// StyleTriangle draws a filled triangle.
	StyleTriangle
	// StyleLine draws two stroked segments.
	StyleLine
)

func (s Style) String() string {
	switch s {
	case StyleNone:
		return "none"
	case StyleTriangle:
		return "triangle"
	case StyleLine:
		return "line"
	default:
		return fmt.Sprintf("Style(%d)", int(s))
	}
}

// ParseStyle parses "none", "triangle" or "line" (case-insensitive).
// An empty string means triangle.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "triangle":
		return StyleTriangle, nil
	case "line":
		return StyleLine, nil
	case "none":
		return StyleNone, nil
	}
	return StyleNone, fmt.Errorf("unknown arrow style %q", s)
}

// Params holds everything the arrow depends on for one frame.
type Params struct {
	// StartAngle and SweepAngle describe the drawn arc in degrees.
	StartAngle float64
	SweepAngle float64
	// GrowthFraction is (BarMaxLength - SweepAngle) / (BarMaxLength - BarLength).
	GrowthFraction float64
	Style          Style

	CircleRadius  float64
	BarThickness  float64
	MaxLineLength float64
	BarLength     float64
	BarMaxLength  float64
}

// Segment is a stroked line from From to To.
type Segment struct {
	From graphics.Offset
	To   graphics.Offset
}

// Geometry is the arrowhead for one frame. Only the field matching Style is set.
type Geometry struct {
	Style    Style
	Triangle [3]graphics.Offset
	Lines    [2]Segment
}

// Compute returns the arrowhead geometry for p.Style.
func Compute(p Params) Geometry {
	g := Geometry{Style: p.Style}
	switch p.Style {
	case StyleTriangle:
		g.Triangle = Triangle(p)
	case StyleLine:
		g.Lines = Lines(p)
	}
	return g
}

// Size returns the triangle's half-width. It grows with the extra arc
// length, reaching 2*BarThickness*(BarMaxLength-BarLength)/BarMaxLength at
// full extension and zero when the arc is at its base length.
func Size(p Params) float64 {
	if p.BarMaxLength <= 0 {
		return 0
	}
	extra := p.SweepAngle - p.BarLength
	return p.BarThickness * 2 * (1 - (p.BarMaxLength-extra)/p.BarMaxLength)
}

// Triangle returns the three corners of the filled arrowhead: two on the
// radial line through the arc's leading end, one ahead of it along the
// tangent.
func Triangle(p Params) [3]graphics.Offset {
	end := p.StartAngle + p.SweepAngle
	size := Size(p)
	rad := graphics.Radians(end)
	sin, cos := math.Sin(rad), math.Cos(rad)

	tip := graphics.Polar(end, p.CircleRadius)
	inner := graphics.Polar(end, p.CircleRadius-p.BarThickness-size)
	outer := graphics.Polar(end, p.CircleRadius+p.BarThickness+size)
	ahead := tip.Add(graphics.Offset{X: -sin * size * 2, Y: cos * size * 2})

	return [3]graphics.Offset{inner, outer, ahead}
}

// Lines returns the two strokes of the line arrowhead. The inner stroke
// folds from a 45 degree barb into a tangent stub as GrowthFraction goes
// from 0 to 1, while the outer stroke rotates 115 degrees and its base
// moves out and back in, peaking at GrowthFraction 0.5.
func Lines(p Params) [2]Segment {
	end := p.StartAngle + p.SweepAngle
	g := p.GrowthFraction
	maxLen := p.MaxLineLength
	length := maxLen * (1 - g)
	inset := p.BarThickness / 4

	lead := graphics.Radians(end + 5 - 5*g)
	sin, cos := math.Sin(lead), math.Cos(lead)
	sin45 := math.Sin(graphics.Radians(end + 45 - 5*g))
	sinMinus45 := math.Sin(graphics.Radians(end - (45 - 5*g)))

	inBase := graphics.Offset{X: cos * (p.CircleRadius + inset), Y: sin * (p.CircleRadius + inset)}
	in := graphics.Offset{
		X: sinMinus45*maxLen*(1-g) + sin*length*g,
		Y: -sin45*maxLen*(1-g) - cos*length*g,
	}

	rotate := math.Sin(graphics.Radians(end + 5 - 5*g + 45 + 115*g))
	rotateMinus := math.Sin(graphics.Radians(end - (5 - 5*g + 45) + 115*g))
	advanced := graphics.Radians(end + 5 - 5*g - g*p.BarThickness)
	advSin, advCos := math.Sin(advanced), math.Cos(advanced)

	baseRadius := p.CircleRadius + maxLen*math.Min(g, 1-g) - inset
	outBase := graphics.Offset{X: advCos * baseRadius, Y: advSin * baseRadius}
	out := graphics.Offset{X: rotate * length, Y: rotateMinus * length}

	return [2]Segment{
		{From: inBase, To: inBase.Add(in)},
		{From: outBase, To: outBase.Add(out)},
	}
}
