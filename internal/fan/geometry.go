// Package fan lays out and hit-tests radial ancestor charts. A Variant
// knows its rings and sectors; a View places it on the canvas; a Chart ties
// both to a genealogical database and the chart options.
package fan

import (
	"math"

	"honnef.co/go/curve"

	"github.com/papapumpkin/fanchart/internal/sector"
)

// Geometry of the chart, in pixels.
const (
	Center              = 60 // radius of the root disc
	PixelsPerGeneration = 50 // ring width of one ancestor generation
	BorderEdgeWidth     = 10 // "has more ancestors" box outside the leaf ring
	ChildRingWidth      = 12 // width of the children ring inside the root
	TranslatePx         = 10 // radius of the center drag handle
	PadPx               = 4  // padding to the canvas edges
	PadText             = 2  // padding for text in boxes
)

// DefaultRotation puts the father's side on the right.
const DefaultRotation = math.Pi / 2

// RadiusForGeneration returns the inner and outer radius of ring g.
// Generation 0 is the root disc, which starts outside the children ring.
func RadiusForGeneration(g int) (in, out float64) {
	if g == 0 {
		return ChildRingWidth + TranslatePx, Center
	}
	return float64((g-1)*PixelsPerGeneration + Center), float64(g*PixelsPerGeneration + Center)
}

// CanvasSize is the size a chart of the given half distance requests.
func CanvasSize(form sector.Form, halfDist float64) (w, h float64) {
	switch form {
	case sector.FormHalfCircle:
		return 2 * halfDist, halfDist + Center + PadPx
	case sector.FormQuadrant:
		return halfDist + Center + PadPx, halfDist + Center + PadPx
	default:
		return 2 * halfDist, 2 * halfDist
	}
}

// CenterFor is the canonical chart center on a w×h canvas.
func CenterFor(form sector.Form, w, h float64) curve.Point {
	switch form {
	case sector.FormHalfCircle:
		return curve.Pt(w/2, h-Center-PadPx)
	case sector.FormQuadrant:
		return curve.Pt(Center+PadPx, h-Center-PadPx)
	default:
		return curve.Pt(w/2, h/2)
	}
}

// View places a chart on the canvas: the chart origin sits at Center and
// ancestor rings are turned clockwise by Rotation radians.
type View struct {
	Center   curve.Point
	Rotation float64
}

// Affine maps chart coordinates of the ancestor rings to the canvas.
func (v View) Affine() curve.Affine {
	return curve.Translate(curve.Vec2(v.Center)).Mul(curve.Rotate(v.Rotation))
}

// Unrotated maps chart coordinates of the root and children ring, which do
// not turn with the chart, to the canvas.
func (v View) Unrotated() curve.Affine {
	return curve.Translate(curve.Vec2(v.Center))
}

// Polar converts canvas point p to a radius and an unrotated angle in
// [0, 2π) around the view center.
func (v View) Polar(p curve.Point) (r, angle float64) {
	d := p.Transform(v.Unrotated().Invert())
	vec := curve.Vec(d.X, d.Y)
	return vec.Hypot(), sector.NormalizeAngle(vec.Angle())
}

// ChartAngle converts canvas point p to the angle it has in the rotated
// ancestor rings, in [0, 2π).
func (v View) ChartAngle(p curve.Point) float64 {
	d := p.Transform(v.Affine().Invert())
	return sector.NormalizeAngle(curve.Vec(d.X, d.Y).Angle())
}

// PointAt returns the canvas point at radius r and chart angle a of the
// rotated rings.
func (v View) PointAt(r, a float64) curve.Point {
	s, c := math.Sincos(a)
	return curve.Pt(r*c, r*s).Transform(v.Affine())
}
