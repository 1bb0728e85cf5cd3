// Package raster draws progress wheel frames into RGBA images.
//
// It is a reference rendering collaborator: hosts with their own canvas
// only need [wheel.Frame] and [arrow.Geometry], but tools and the demo
// window use [Painter] to get pixels.
package raster

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/go-drift/progresswheel/pkg/arrow"
	"github.com/go-drift/progresswheel/pkg/errors"
	"github.com/go-drift/progresswheel/pkg/graphics"
	"github.com/go-drift/progresswheel/pkg/wheel"
)

// Painter draws frames of one engine.
type Painter struct {
	// Label draws the rounded percentage in the middle of determinate frames.
	Label bool
	// Face is the label font. Nil uses basicfont.Face7x13.
	Face font.Face
	// Background fills the image before drawing. Zero leaves it transparent.
	Background graphics.Color

	z *vector.Rasterizer
}

// Render allocates a width x height image and paints f into it.
func (p *Painter) Render(e *wheel.Engine, f wheel.Frame, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, &errors.WheelError{
			Op:   "raster.Render",
			Kind: errors.KindRender,
			Err:  fmt.Errorf("invalid image size %dx%d", width, height),
		}
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	p.Paint(dst, e, f)
	return dst, nil
}

// Paint draws the rim, the bar, the arrowhead when the frame shows one, and
// the optional label into dst.
func (p *Painter) Paint(dst *image.RGBA, e *wheel.Engine, f wheel.Frame) {
	b := dst.Bounds()
	if b.Empty() {
		return
	}
	if p.Background != graphics.ColorTransparent {
		draw.Draw(dst, b, image.NewUniform(p.Background.NRGBA()), image.Point{}, draw.Src)
	}

	cfg := e.Config()
	l := ComputeLayout(cfg, float64(b.Dx()), float64(b.Dy()))
	if l.Radius <= 0 {
		return
	}

	if cfg.RimThickness > 0 && cfg.RimColor.Alpha() > 0 {
		p.fill(dst, cfg.RimColor, func(z *vector.Rasterizer) {
			annulus(z, l.Center, l.Radius, cfg.RimThickness, 0, 360)
		})
	}

	p.fill(dst, cfg.BarColor, func(z *vector.Rasterizer) {
		annulus(z, l.Center, l.Radius, cfg.BarThickness, f.StartAngle, f.SweepAngle)
	})

	if f.ShowArrow {
		p.paintArrow(dst, cfg, l, e.ArrowGeometry(f, l.Radius))
	}

	if p.Label && !e.IsSpinning() {
		origin := graphics.Offset{X: float64(b.Min.X), Y: float64(b.Min.Y)}
		p.paintLabel(dst, cfg.BarColor, l.Center.Add(origin), e.NormalizedProgress())
	}
}

func (p *Painter) paintArrow(dst *image.RGBA, cfg wheel.Config, l Layout, g arrow.Geometry) {
	switch g.Style {
	case arrow.StyleTriangle:
		p.fill(dst, cfg.BarColor, func(z *vector.Rasterizer) {
			polygon(z, l.Center, g.Triangle[:]...)
		})
	case arrow.StyleLine:
		p.fill(dst, cfg.BarColor, func(z *vector.Rasterizer) {
			for _, s := range g.Lines {
				stroke(z, l.Center, s.From, s.To, cfg.BarThickness)
			}
		})
	}
}

// paintLabel centers "NN%" on center.
func (p *Painter) paintLabel(dst *image.RGBA, c graphics.Color, center graphics.Offset, progress float64) {
	face := p.Face
	if face == nil {
		face = basicfont.Face7x13
	}
	text := fmt.Sprintf("%d%%", int(math.Round(progress*100)))

	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c.NRGBA()), Face: face}
	m := face.Metrics()
	width := d.MeasureString(text)
	d.Dot = fixed.Point26_6{
		X: fixed.Int26_6(center.X*64) - width/2,
		Y: fixed.Int26_6(center.Y*64) + (m.Ascent-m.Descent)/2,
	}
	d.DrawString(text)
}

// fill rasterizes the shapes added by build and composites them over dst.
func (p *Painter) fill(dst *image.RGBA, c graphics.Color, build func(z *vector.Rasterizer)) {
	if c.Alpha() == 0 {
		return
	}
	b := dst.Bounds()
	if p.z == nil {
		p.z = vector.NewRasterizer(b.Dx(), b.Dy())
	} else {
		p.z.Reset(b.Dx(), b.Dy())
	}
	build(p.z)
	p.z.Draw(dst, b, image.NewUniform(c.NRGBA()), image.Point{})
}
