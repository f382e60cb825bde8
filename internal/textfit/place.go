package textfit

import (
	"math"

	"honnef.co/go/curve"
)

// Outliner renders one line of text as a filled outline. The path starts at
// the origin with the baseline on y = 0 and y growing downwards.
type Outliner interface {
	Outline(text string, size float64, bold bool) (curve.BezPath, error)
}

// Typesetter measures and outlines text.
type Typesetter interface {
	Measurer
	Outliner
}

// Orientation is the direction a label runs in its sector.
type Orientation int

// Orientations.
const (
	Arc    Orientation = iota // along the ring
	Radial                    // from the inner to the outer edge
)

// String returns "arc" or "radial".
func (o Orientation) String() string {
	if o == Radial {
		return "radial"
	}
	return "arc"
}

// OrientationFor picks radial text for sectors narrower than they are deep
// when radial text is allowed at all.
func OrientationFor(rin, rout, start, stop float64, radialAllowed bool) Orientation {
	if radialAllowed && (rin+rout)/2*(stop-start) < (rout-rin)*1.1 {
		return Radial
	}
	return Arc
}

// ShouldFlip reports whether radial text in a sector whose midpoint is at
// chart angle mid reads upside down once the chart is turned by rotation
// radians, that is whether the sector lies in the left half of the canvas.
func ShouldFlip(mid, rotation float64) bool {
	a := math.Mod(mid+rotation-math.Pi/2, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a < 179*math.Pi/180
}

// TwoLineSplit splits the span [start, stop] of a radial two-line label in
// half. The first line goes to the half that is read first, which depends on
// whether the text is flipped.
func TwoLineSplit(start, stop float64, flip bool) (first, second [2]float64) {
	middle := (start + stop) / 2
	if flip {
		return [2]float64{middle, stop}, [2]float64{start, middle}
	}
	return [2]float64{start, middle}, [2]float64{middle, stop}
}

// RadialLabel is text set along a ray. The text's top-left corner sits at
// Origin and its baseline runs in direction Angle, both in chart
// coordinates before the view rotation.
type RadialLabel struct {
	Layout
	Bold   bool
	Origin curve.Point
	Angle  float64
}

// PlaceRadial fits text into the sector and sets it along the sector's
// middle ray, reading outwards, or inwards when flip is set.
func PlaceRadial(m Measurer, text string, size float64, bold bool, rin, rout, start, stop float64, flip bool) RadialLabel {
	l := Fit(m, text, size, bold, rout-rin-2*PadText, (stop-start)*rin-2*PadText)
	mid := (start + stop) / 2
	var angle, pos float64
	if flip {
		angle = mid + l.Height/rin/2 + math.Pi
		pos = -rout + PadText
	} else {
		angle = mid - l.Height/rin/2
		pos = rin + PadText
	}
	s, c := math.Sincos(angle)
	return RadialLabel{Layout: l, Bold: bold, Origin: curve.Pt(pos*c, pos*s), Angle: angle}
}

// PlaceRadialTwoLine sets line1 in bold and line2 side by side. When line1
// does not fit its half it takes the whole sector and line2 continues
// outwards of it on the same ray.
func PlaceRadialTwoLine(m Measurer, line1, line2 string, size float64, bold bool, rin, rout, start, stop float64, flip bool) []RadialLabel {
	a, b := TwoLineSplit(start, stop, flip)
	first := PlaceRadial(m, line1, size, true, rin, rout, a[0], a[1], flip)
	if first.Width == 0 && line1 != "" {
		first = PlaceRadial(m, line1, size, true, rin, rout, start, stop, flip)
		second := PlaceRadial(m, line2, size, bold, rin+first.Width+PadText, rout, start, stop, flip)
		return []RadialLabel{first, second}
	}
	return []RadialLabel{first, PlaceRadial(m, line2, size, bold, rin, rout, b[0], b[1], flip)}
}

// ArcLabel is text bent along a ring. Path is the filled outline in chart
// coordinates before the view rotation.
type ArcLabel struct {
	Layout
	Bold bool
	Path curve.BezPath
}

// PlaceArc fits text into the sector and warps its outline onto the arc,
// centred in the span.
func PlaceArc(ts Typesetter, text string, size float64, bold bool, rin, rout, start, stop, tolerance float64) (ArcLabel, error) {
	r := (rin + rout) / 2
	availW := (stop-start)*r - 2*PadText
	l := Fit(ts, text, size, bold, availW, rout-rin-2*PadText)
	label := ArcLabel{Layout: l, Bold: bold}
	if l.Empty() || availW <= 0 {
		return label, nil
	}
	outline, err := ts.Outline(l.Text, l.Size, bold)
	if err != nil {
		return label, err
	}
	ink := outline.BoundingBox()
	if ink.Width() == 0 && ink.Height() == 0 {
		return label, nil
	}
	pad := PadText / r
	spread := availW / r
	ratio := min(l.Width/(r*spread), 1)
	warp := MapRectToSector(r, ink, ratio, start+pad, start+pad+spread)
	label.Path = WarpPath(outline, warp, tolerance)
	return label, nil
}

// PlaceArcTwoLine sets line1 in bold on the outer half of the ring and line2
// on the inner half.
func PlaceArcTwoLine(ts Typesetter, line1, line2 string, size float64, bold bool, rin, rout, start, stop, tolerance float64) ([]ArcLabel, error) {
	middle := (rin + rout) / 2
	first, err := PlaceArc(ts, line1, size, true, middle, rout, start, stop, tolerance)
	if err != nil {
		return nil, err
	}
	second, err := PlaceArc(ts, line2, size, bold, rin, middle, start, stop, tolerance)
	if err != nil {
		return nil, err
	}
	return []ArcLabel{first, second}, nil
}
