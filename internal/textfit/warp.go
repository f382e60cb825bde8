package textfit

import (
	"math"

	"honnef.co/go/curve"
)

// maxWarpStep is the longest straight piece WarpPath maps as a line. Longer
// lines are split so they bend with the sector.
const maxWarpStep = 2.0

// MapRectToSector returns the map from rect, the box text was laid out in,
// onto the annular sector around radius between start and stop. Only the
// middle ratio of the angular span is used. The top edge of rect goes to the
// outer radius and the text thickness is preserved, so rect.Height() becomes
// the ring width.
func MapRectToSector(radius float64, rect curve.Rect, ratio, start, stop float64) func(curve.Point) curve.Point {
	w, h := rect.Width(), rect.Height()
	rin, rout := radius-h/2, radius+h/2
	dphi := stop - start
	return func(p curve.Point) curve.Point {
		var phi float64
		if w > 0 {
			phi = (p.X-rect.X0)*dphi*ratio/w + (1-ratio)*dphi/2 + start
		} else {
			phi = start + dphi/2
		}
		rho := rout
		if h > 0 {
			rho = (p.Y-rect.Y0)*(rin-rout)/h + rout
		}
		s, c := math.Sincos(phi)
		return curve.Pt(rho*c, rho*s)
	}
}

// WarpPath flattens path to lines within tolerance and maps every vertex
// through f. The result only holds MoveTo, LineTo and ClosePath elements.
func WarpPath(path curve.BezPath, f func(curve.Point) curve.Point, tolerance float64) curve.BezPath {
	var out curve.BezPath
	var last, first curve.Point
	for el := range path.Flatten(tolerance) {
		switch el.Kind {
		case curve.MoveToKind:
			out.MoveTo(f(el.P0))
			first, last = el.P0, el.P0
		case curve.LineToKind:
			lineTo(&out, last, el.P0, f)
			last = el.P0
		case curve.ClosePathKind:
			if last != first {
				lineTo(&out, last, first, f)
			}
			out.ClosePath()
			last = first
		}
	}
	return out
}

func lineTo(out *curve.BezPath, from, to curve.Point, f func(curve.Point) curve.Point) {
	d := to.Sub(from)
	n := max(1, int(math.Ceil(d.Hypot()/maxWarpStep)))
	for k := 1; k <= n; k++ {
		out.LineTo(f(from.Translate(d.Mul(float64(k) / float64(n)))))
	}
}
