package render

import (
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"honnef.co/go/curve"
)

// FaceSource hands out font faces for text drawn on a Raster.
type FaceSource interface {
	Face(size float64, bold bool) font.Face
}

// Raster is an antialiased RGBA surface.
type Raster struct {
	dc    *gg.Context
	faces FaceSource
}

var _ Surface = (*Raster)(nil)

// NewRaster returns a w×h raster cleared to white.
func NewRaster(w, h int, faces FaceSource) *Raster {
	dc := gg.NewContext(w, h)
	dc.SetColor(color.White)
	dc.Clear()
	return &Raster{dc: dc, faces: faces}
}

// Size is the canvas size in pixels.
func (r *Raster) Size() (w, h float64) {
	return float64(r.dc.Width()), float64(r.dc.Height())
}

func (r *Raster) trace(path curve.BezPath) {
	r.dc.ClearPath()
	for el := range path.Elements() {
		switch el.Kind {
		case curve.MoveToKind:
			r.dc.MoveTo(el.P0.X, el.P0.Y)
		case curve.LineToKind:
			r.dc.LineTo(el.P0.X, el.P0.Y)
		case curve.QuadToKind:
			r.dc.QuadraticTo(el.P0.X, el.P0.Y, el.P1.X, el.P1.Y)
		case curve.CubicToKind:
			r.dc.CubicTo(el.P0.X, el.P0.Y, el.P1.X, el.P1.Y, el.P2.X, el.P2.Y)
		case curve.ClosePathKind:
			r.dc.ClosePath()
		}
	}
}

// Fill paints the inside of path.
func (r *Raster) Fill(path curve.BezPath, c color.Color) {
	r.trace(path)
	r.dc.SetColor(c)
	r.dc.Fill()
}

// Stroke paints the outline of path.
func (r *Raster) Stroke(path curve.BezPath, c color.Color, width float64) {
	r.trace(path)
	r.dc.SetColor(c)
	r.dc.SetLineWidth(width)
	r.dc.Stroke()
}

// Text draws s with its top-left corner at at.
func (r *Raster) Text(s string, at curve.Point, angle, size float64, bold bool, c color.Color) {
	if s == "" || r.faces == nil {
		return
	}
	r.dc.Push()
	defer r.dc.Pop()
	r.dc.SetFontFace(r.faces.Face(size, bold))
	r.dc.SetColor(c)
	r.dc.RotateAbout(angle, at.X, at.Y)
	r.dc.DrawStringAnchored(s, at.X, at.Y, 0, 1)
}

// Image returns the painted image.
func (r *Raster) Image() image.Image { return r.dc.Image() }

// EncodePNG writes the image as PNG.
func (r *Raster) EncodePNG(w io.Writer) error { return r.dc.EncodePNG(w) }
