package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
	"math"

	"honnef.co/go/curve"
)

// SVG records drawing operations as an SVG document.
type SVG struct {
	w, h   float64
	family string
	body   bytes.Buffer
}

var _ Surface = (*SVG)(nil)

// NewSVG returns an empty w×h document whose text uses the font family.
func NewSVG(w, h float64, family string) *SVG {
	return &SVG{w: w, h: h, family: family}
}

// Size is the canvas size in pixels.
func (s *SVG) Size() (w, h float64) { return s.w, s.h }

func svgColor(c color.Color) (rgb string, opacity float64) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B), float64(n.A) / 255
}

func pathData(p curve.BezPath) string {
	return p.SVG(curve.SVGOptions{MaxPrecision: 3})
}

// Fill paints the inside of path.
func (s *SVG) Fill(path curve.BezPath, c color.Color) {
	if len(path) == 0 {
		return
	}
	rgb, a := svgColor(c)
	fmt.Fprintf(&s.body, "<path d=%q fill=%q fill-opacity=\"%.3g\"/>\n", pathData(path), rgb, a)
}

// Stroke paints the outline of path.
func (s *SVG) Stroke(path curve.BezPath, c color.Color, width float64) {
	if len(path) == 0 {
		return
	}
	rgb, a := svgColor(c)
	fmt.Fprintf(&s.body, "<path d=%q fill=\"none\" stroke=%q stroke-opacity=\"%.3g\" stroke-width=\"%.3g\"/>\n", pathData(path), rgb, a, width)
}

// Text draws s with its top-left corner at at.
func (s *SVG) Text(text string, at curve.Point, angle, size float64, bold bool, c color.Color) {
	if text == "" {
		return
	}
	rgb, a := svgColor(c)
	weight := "normal"
	if bold {
		weight = "bold"
	}
	fmt.Fprintf(&s.body, "<text x=\"%.3f\" y=\"%.3f\" transform=\"rotate(%.4f %.3f %.3f)\" font-family=%q font-size=\"%.3g\" font-weight=%q fill=%q fill-opacity=\"%.3g\" dominant-baseline=\"text-before-edge\">",
		at.X, at.Y, angle*180/math.Pi, at.X, at.Y, s.family, size, weight, rgb, a)
	_ = xml.EscapeText(&s.body, []byte(text))
	s.body.WriteString("</text>\n")
}

// WriteTo writes the complete document.
func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	var doc bytes.Buffer
	fmt.Fprintf(&doc, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%g\" height=\"%g\" viewBox=\"0 0 %g %g\">\n", s.w, s.h, s.w, s.h)
	fmt.Fprintf(&doc, "<rect width=\"100%%\" height=\"100%%\" fill=\"#ffffff\"/>\n")
	doc.Write(s.body.Bytes())
	doc.WriteString("</svg>\n")
	return doc.WriteTo(w)
}
