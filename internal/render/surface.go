// Package render paints fan charts onto vector surfaces. A Surface is the
// narrow drawing API the Painter needs; Raster and SVG implement it.
package render

import (
	"image/color"

	"honnef.co/go/curve"
)

// Surface is a 2D canvas in pixel coordinates, y growing downwards.
type Surface interface {
	// Size is the canvas size in pixels.
	Size() (w, h float64)
	// Fill paints the inside of path.
	Fill(path curve.BezPath, c color.Color)
	// Stroke paints the outline of path.
	Stroke(path curve.BezPath, c color.Color, width float64)
	// Text draws one line of text whose top-left corner is at, turned
	// clockwise by angle radians around that corner.
	Text(s string, at curve.Point, angle, size float64, bold bool, c color.Color)
}
