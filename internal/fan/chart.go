package fan

import (
	"context"
	"fmt"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"honnef.co/go/curve"

	"github.com/papapumpkin/fanchart/internal/genealogy"
	"github.com/papapumpkin/fanchart/internal/palette"
	"github.com/papapumpkin/fanchart/internal/pedigree"
	"github.com/papapumpkin/fanchart/internal/sector"
)

// Options are the user-facing chart settings.
type Options struct {
	Root         genealogy.Handle
	Generations  int
	Form         sector.Form
	Background   palette.Mode
	ChildRing    bool
	FlipNames    bool
	TwoLineNames bool
	RadialText   bool
	FontFamily   string
	FontSize     float64
	GradStart    colorful.Color
	GradEnd      colorful.Color
	Filter       genealogy.Filter
	AlphaFilter  float64
	// Now is the current year; zero means the wall clock year.
	Now int
	// OnDegraded is told about people whose alive estimate failed.
	OnDegraded func(p *genealogy.Person, err error)
}

// DefaultOptions returns the settings of a fresh chart.
func DefaultOptions() Options {
	return Options{
		Generations:  6,
		Form:         sector.FormCircle,
		Background:   palette.GradGen,
		ChildRing:    true,
		FlipNames:    true,
		TwoLineNames: true,
		RadialText:   true,
		FontFamily:   "Go",
		FontSize:     8,
		GradStart:    colorful.Color{B: 1},
		GradEnd:      colorful.Color{R: 1},
		AlphaFilter:  0.5,
	}
}

// Chart is an ancestor fan bound to a database.
type Chart struct {
	db       genealogy.Database
	names    genealogy.NameDisplayer
	opts     Options
	variant  *AncestorChart
	palette  *palette.Palette
	offset   curve.Vec2
	rotation float64
}

// NewChart returns an empty chart with default options. Call SetValues and
// Reset before drawing.
func NewChart(db genealogy.Database, names genealogy.NameDisplayer) *Chart {
	c := &Chart{db: db, names: names, opts: DefaultOptions(), rotation: DefaultRotation}
	store := pedigree.Empty(c.opts.Generations)
	c.variant = NewAncestorChart(store, c.opts.Form, c.opts.ChildRing)
	c.palette = palette.Prepare(c.paletteOptions(), c.opts.Generations, store.All())
	return c
}

// SetValues replaces the options. They take effect on the next Reset.
func (c *Chart) SetValues(o Options) { c.opts = o }

// Options returns the current options.
func (c *Chart) Options() Options { return c.opts }

func (c *Chart) now() int {
	if c.opts.Now != 0 {
		return c.opts.Now
	}
	return time.Now().Year()
}

func (c *Chart) paletteOptions() palette.Options {
	return palette.Options{
		Mode:        c.opts.Background,
		Start:       c.opts.GradStart,
		End:         c.opts.GradEnd,
		Filter:      c.opts.Filter,
		AlphaFilter: c.opts.AlphaFilter,
		Now:         c.now(),
		OnDegraded:  c.opts.OnDegraded,
	}
}

// Reset rebuilds the pedigree, the sector layout and the colours from the
// current options. On error the chart keeps its previous state.
func (c *Chart) Reset(ctx context.Context) error {
	gens := max(c.opts.Generations, 1)
	store, err := pedigree.Build(ctx, c.db, c.names, c.opts.Root, gens)
	if err != nil {
		return fmt.Errorf("fan: reset: %w", err)
	}
	c.variant = NewAncestorChart(store, c.opts.Form, c.opts.ChildRing)
	c.palette = palette.Prepare(c.paletteOptions(), gens, store.All())
	return nil
}

// Variant is the chart being shown.
func (c *Chart) Variant() Variant { return c.variant }

// Names is the displayer labels are rendered with.
func (c *Chart) Names() genealogy.NameDisplayer { return c.names }

// Palette holds the colours computed by the last Reset.
func (c *Chart) Palette() *palette.Palette { return c.palette }

// Size is the canvas size the chart requests.
func (c *Chart) Size() (w, h float64) { return CanvasSize(c.opts.Form, c.variant.HalfDist()) }

// View places the chart on a w×h canvas.
func (c *Chart) View(w, h float64) View {
	return View{Center: CenterFor(c.opts.Form, w, h).Translate(c.offset), Rotation: c.rotation}
}

// Rotation is the accumulated rotation in radians.
func (c *Chart) Rotation() float64 { return c.rotation }

// Rotate adds delta radians of clockwise rotation.
func (c *Chart) Rotate(delta float64) { c.rotation += delta }

// Offset is the displacement of the chart center from its canonical place.
func (c *Chart) Offset() curve.Vec2 { return c.offset }

// Translate moves the chart center by d.
func (c *Chart) Translate(d curve.Vec2) { c.offset = c.offset.Add(d) }

// ResetView restores the default rotation and canonical center.
func (c *Chart) ResetView() {
	c.offset = curve.Vec2{}
	c.rotation = DefaultRotation
}

// ChangeSlice toggles the expansion of (g, i).
func (c *Chart) ChangeSlice(g, i int) error {
	return c.variant.Tree().ChangeSlice(g, i)
}

// HitTest resolves a point on a w×h canvas.
func (c *Chart) HitTest(p curve.Point, w, h float64) sector.Address {
	return c.variant.HitTest(p, c.View(w, h))
}

// PersonAt returns the person shown at addr, or nil.
func (c *Chart) PersonAt(addr sector.Address) *genealogy.Person {
	if addr.None() {
		return nil
	}
	if slot := c.variant.Slot(addr); slot.Known() {
		return slot.Person
	}
	return nil
}

// FamilyAt returns the family that places the person at addr in the chart:
// for an ancestor, the first parent family of the child it is a parent of;
// for the root, its first family; for a child, its first parent family.
func (c *Chart) FamilyAt(ctx context.Context, addr sector.Address) (*genealogy.Family, error) {
	if addr.None() {
		return nil, nil
	}
	var h genealogy.Handle
	switch {
	case addr.Generation == 0:
		if p := c.PersonAt(addr); p != nil && len(p.Families) > 0 {
			h = p.Families[0]
		}
	case addr.Generation == sector.GenChildren:
		if p := c.PersonAt(addr); p != nil && len(p.ParentFamilies) > 0 {
			h = p.ParentFamilies[0]
		}
	case addr.Generation > 0:
		if c.PersonAt(addr) == nil {
			return nil, nil
		}
		child := c.variant.Slot(sector.Address{Generation: addr.Generation - 1, Index: addr.Index / 2})
		if child.Known() && len(child.Person.ParentFamilies) > 0 {
			h = child.Person.ParentFamilies[0]
		}
	}
	if h == "" {
		return nil, nil
	}
	fam, err := c.db.Family(ctx, h)
	if err != nil {
		return nil, fmt.Errorf("fan: family at %s: %w", addr, err)
	}
	return fam, nil
}
