package render

import (
	"fmt"
	"image/color"
	"math"

	"honnef.co/go/curve"

	"github.com/papapumpkin/fanchart/internal/fan"
	"github.com/papapumpkin/fanchart/internal/genealogy"
	"github.com/papapumpkin/fanchart/internal/palette"
	"github.com/papapumpkin/fanchart/internal/pedigree"
	"github.com/papapumpkin/fanchart/internal/sector"
	"github.com/papapumpkin/fanchart/internal/textfit"
)

// Legend geometry, in unscaled pixels from the canvas corner.
const (
	legendBox  = 10
	legendLeft = 5
	legendTop  = 15
)

var black = color.Gray{}

// Painter draws charts. It is stateless apart from its fonts.
type Painter struct {
	Fonts textfit.Typesetter
	// Tolerance is the flattening tolerance of arcs and glyphs in pixels.
	Tolerance float64
}

// NewPainter returns a painter setting labels with fonts.
func NewPainter(fonts textfit.Typesetter) *Painter {
	return &Painter{Fonts: fonts, Tolerance: 0.1}
}

// frame is one Draw call's transforms and settings.
type frame struct {
	s         Surface
	c         *fan.Chart
	rotated   curve.Affine
	unrotated curve.Affine
	scale     float64
	rotation  float64
	labels    bool
}

// Draw paints c onto s. The surface is assumed to be the chart's size times
// scale. Labels are left out while dragging so a drag redraws quickly.
func (p *Painter) Draw(s Surface, c *fan.Chart, scale float64, dragging bool) error {
	if scale <= 0 {
		scale = 1
	}
	w, h := s.Size()
	view := c.View(w/scale, h/scale)
	zoom := curve.Scale(scale, scale)
	f := &frame{
		s:         s,
		c:         c,
		rotated:   zoom.Mul(view.Affine()),
		unrotated: zoom.Mul(view.Unrotated()),
		scale:     scale,
		rotation:  view.Rotation,
		labels:    !dragging && p.Fonts != nil,
	}

	v := c.Variant()
	for g := v.Generations() - 1; g > 0; g-- {
		for i := range 1 << g {
			slot := v.Slot(sector.Address{Generation: g, Index: i})
			sec, ok := v.Sector(g, i)
			if !slot.Known() || !ok || !sec.Visible() {
				continue
			}
			if err := p.drawAncestor(f, slot, g, sec); err != nil {
				return err
			}
		}
	}

	disc := curve.Circle{Radius: fan.Center}.Path(p.Tolerance).Transform(f.unrotated)
	s.Fill(disc, color.White)
	s.Stroke(disc, black, scale)

	if root := v.Root(); root.Known() {
		if err := p.drawRoot(f, root); err != nil {
			return err
		}
	}
	p.drawLegend(f)
	return nil
}

func (p *Painter) sectorPath(rin, rout, start, stop float64) curve.BezPath {
	path := curve.Circle{Radius: rout}.Segment(rin, start, stop-start).Path(p.Tolerance)
	path.ClosePath()
	return path
}

func (p *Painter) drawAncestor(f *frame, slot *pedigree.Slot, g int, sec sector.Sector) error {
	v := f.c.Variant()
	rin, rout := v.RadiusForGeneration(g)
	if g == v.Generations()-1 && slot.HasParents == pedigree.Yes {
		border := p.sectorPath(rout, rout+fan.BorderEdgeWidth, sec.Start, sec.Stop).Transform(f.rotated)
		f.s.Fill(border, color.White)
		f.s.Stroke(border, black, f.scale)
	}

	fill := f.c.Palette().Box(slot, g)
	box := p.sectorPath(rin, rout, sec.Start, sec.Stop).Transform(f.rotated)
	f.s.Fill(box, fill.NRGBA())
	width := 1.0
	if sec.State == sector.Expanded {
		width = 3
	}
	f.s.Stroke(box, black, width*f.scale)

	if !f.labels {
		return nil
	}
	return p.drawLabel(f, f.rotated, f.rotation, slot, fill, rin, rout, sec.Start, sec.Stop)
}

func (p *Painter) drawRoot(f *frame, root *pedigree.Slot) error {
	v := f.c.Variant()
	fill := f.c.Palette().Box(root, 0)
	rin, rout := v.RadiusForGeneration(0)
	var box curve.BezPath
	if v.ChildRing() {
		box = p.sectorPath(rin, rout, 0, 2*math.Pi)
	} else {
		box = curve.Circle{Radius: rout}.Path(p.Tolerance)
	}
	f.s.Fill(box.Transform(f.unrotated), fill.NRGBA())

	if f.labels {
		if err := p.drawLabel(f, f.unrotated, 0, root, fill, rin, rout, math.Pi/2, math.Pi/2+2*math.Pi); err != nil {
			return err
		}
	}

	dot := curve.Circle{Radius: fan.TranslatePx}.Path(p.Tolerance).Transform(f.unrotated)
	if root.HasChildren == pedigree.Yes {
		f.s.Fill(dot, black)
	} else {
		f.s.Stroke(dot, black, f.scale)
	}
	if root.HasChildren == pedigree.Yes && v.ChildRing() {
		p.drawChildRing(f)
	}
	return nil
}

func (p *Painter) drawChildRing(f *frame) {
	v := f.c.Variant()
	ring := curve.Circle{Radius: fan.TranslatePx + fan.ChildRingWidth}.Path(p.Tolerance).Transform(f.unrotated)
	f.s.Stroke(ring, black, f.scale)
	for i, sec := range v.ChildSectors() {
		box := p.sectorPath(fan.TranslatePx, fan.TranslatePx+fan.ChildRingWidth, sec.Start, sec.Stop).Transform(f.unrotated)
		f.s.Stroke(box, black, f.scale)
		fill := color.Color(color.White)
		if slot := v.Slot(sector.Address{Generation: sector.GenChildren, Index: i}); slot.Known() {
			fill = f.c.Palette().Box(slot, -1).NRGBA()
		}
		f.s.Fill(box, fill)
	}
}

// drawLabel sets the name of slot in the sector, in one or two lines,
// radially or along the arc.
func (p *Painter) drawLabel(f *frame, aff curve.Affine, rotation float64, slot *pedigree.Slot, fill palette.Fill, rin, rout, start, stop float64) error {
	opts := f.c.Options()
	pal := f.c.Palette()
	ink := pal.FontColor(fill)
	bold := pal.Bold(fill)
	size := opts.FontSize
	orient := textfit.OrientationFor(rin, rout, start, stop, opts.RadialText)

	if orient == textfit.Radial {
		flip := opts.FlipNames && textfit.ShouldFlip((start+stop)/2, rotation)
		var labels []textfit.RadialLabel
		if opts.TwoLineNames {
			names := f.c.Names()
			labels = textfit.PlaceRadialTwoLine(p.Fonts,
				names.DisplayFormat(slot.Person, genealogy.FormatSurname),
				names.DisplayFormat(slot.Person, genealogy.FormatGivenSuffix),
				size, bold, rin, rout, start, stop, flip)
		} else {
			labels = []textfit.RadialLabel{textfit.PlaceRadial(p.Fonts, slot.DisplayName, size, bold, rin, rout, start, stop, flip)}
		}
		for _, l := range labels {
			if l.Empty() {
				continue
			}
			f.s.Text(l.Text, l.Origin.Transform(aff), l.Angle+rotation, l.Size*f.scale, l.Bold, ink)
		}
		return nil
	}

	var labels []textfit.ArcLabel
	var err error
	if opts.TwoLineNames {
		names := f.c.Names()
		labels, err = textfit.PlaceArcTwoLine(p.Fonts,
			names.DisplayFormat(slot.Person, genealogy.FormatSurname),
			names.DisplayFormat(slot.Person, genealogy.FormatGivenSuffix),
			size, bold, rin, rout, start, stop, p.Tolerance)
	} else {
		var l textfit.ArcLabel
		l, err = textfit.PlaceArc(p.Fonts, slot.DisplayName, size, bold, rin, rout, start, stop, p.Tolerance)
		labels = []textfit.ArcLabel{l}
	}
	if err != nil {
		return fmt.Errorf("render: label for %s: %w", slot.DisplayName, err)
	}
	for _, l := range labels {
		if len(l.Path) > 0 {
			f.s.Fill(l.Path.Transform(aff), ink)
		}
	}
	return nil
}

// drawLegend lists the gradient steps of age and period backgrounds in the
// top-left corner of the canvas, unaffected by rotation and translation.
func (p *Painter) drawLegend(f *frame) {
	steps := f.c.Palette().Legend()
	if len(steps) == 0 {
		return
	}
	zoom := curve.Scale(f.scale, f.scale)
	y := float64(legendTop)
	for _, st := range steps {
		var box curve.BezPath
		box.MoveTo(curve.Pt(legendLeft, y))
		box.LineTo(curve.Pt(legendLeft+legendBox, y))
		box.LineTo(curve.Pt(legendLeft+legendBox, y+legendBox))
		box.LineTo(curve.Pt(legendLeft, y+legendBox))
		box.ClosePath()
		f.s.Fill(box.Transform(zoom), st.Color.Clamped())
		if st.Label != "" {
			at := curve.Pt(legendLeft+legendBox+4, y).Transform(zoom)
			f.s.Text(st.Label, at, 0, f.c.Options().FontSize*f.scale, false, black)
		}
		y += legendBox
	}
}
