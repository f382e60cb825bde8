package fan

import (
	"iter"
	"math"

	"honnef.co/go/curve"

	"github.com/papapumpkin/fanchart/internal/pedigree"
	"github.com/papapumpkin/fanchart/internal/sector"
)

// Variant is a kind of fan chart. Painters and controllers work against it
// so they never need to know which chart they drive.
type Variant interface {
	// Generations is the number of ancestor rings, root included.
	Generations() int
	// HalfDist is the radius the chart needs, border box included.
	HalfDist() float64
	// RadiusForGeneration is the annulus of ring g.
	RadiusForGeneration(g int) (in, out float64)
	// Sector is the angular extent of (g, i) before rotation.
	Sector(g, i int) (sector.Sector, bool)
	// ChildSectors is the layout of the children ring, unrotated.
	ChildSectors() []sector.Sector
	// HitTest resolves a canvas point to a sector address.
	HitTest(p curve.Point, v View) sector.Address
	// Slot returns the person slot at an address, nil when there is none.
	Slot(addr sector.Address) *pedigree.Slot
	People() iter.Seq2[sector.Address, *pedigree.Slot]
	InnerPeople() iter.Seq2[int, *pedigree.Slot]
	Root() *pedigree.Slot
	// ChildRing reports whether the children ring is shown.
	ChildRing() bool
}

// AncestorChart is the classic fan: the root in the middle, each ring one
// generation further back.
type AncestorChart struct {
	tree      *sector.Tree
	store     *pedigree.Store
	childRing bool
}

var _ Variant = (*AncestorChart)(nil)

// NewAncestorChart lays out a fresh sector tree for store. The tree refuses
// expansions into empty space.
func NewAncestorChart(store *pedigree.Store, form sector.Form, childRing bool) *AncestorChart {
	tree := sector.New(store.Generations(), form)
	tree.SetOccupancy(store)
	return &AncestorChart{tree: tree, store: store, childRing: childRing}
}

// Tree exposes the sector table.
func (a *AncestorChart) Tree() *sector.Tree { return a.tree }

// Store exposes the pedigree.
func (a *AncestorChart) Store() *pedigree.Store { return a.store }

// Generations is the number of ancestor rings, root included.
func (a *AncestorChart) Generations() int { return a.tree.Generations() }

// HalfDist sizes the chart to the deepest populated generation.
func (a *AncestorChart) HalfDist() float64 {
	return float64(PixelsPerGeneration*a.store.NrGen() + Center + BorderEdgeWidth)
}

// RadiusForGeneration is the annulus of ring g.
func (a *AncestorChart) RadiusForGeneration(g int) (in, out float64) {
	return RadiusForGeneration(g)
}

// Sector is the angular extent of (g, i) before rotation.
func (a *AncestorChart) Sector(g, i int) (sector.Sector, bool) { return a.tree.Sector(g, i) }

// ChildRing reports whether the children ring is shown.
func (a *AncestorChart) ChildRing() bool { return a.childRing && len(a.store.Children()) > 0 }

// ChildSectors lays the children out clockwise from 9 o'clock: a quarter
// each for up to four children, otherwise an equal share of the circle.
func (a *AncestorChart) ChildSectors() []sector.Sector {
	n := len(a.store.Children())
	if n == 0 {
		return nil
	}
	inc := math.Pi / 2
	if n > 4 {
		inc = 2 * math.Pi / float64(n)
	}
	out := make([]sector.Sector, n)
	start := math.Pi
	for i := range out {
		out[i] = sector.Sector{Start: start, Stop: start + inc, State: sector.Normal}
		start += inc
	}
	return out
}

// Slot returns the person slot at addr.
func (a *AncestorChart) Slot(addr sector.Address) *pedigree.Slot {
	if addr.Generation == sector.GenChildren {
		kids := a.store.Children()
		if addr.Index < 0 || addr.Index >= len(kids) {
			return nil
		}
		return kids[addr.Index]
	}
	return a.store.Slot(addr.Generation, addr.Index)
}

// People yields the known ancestors.
func (a *AncestorChart) People() iter.Seq2[sector.Address, *pedigree.Slot] { return a.store.People() }

// InnerPeople yields the root's children.
func (a *AncestorChart) InnerPeople() iter.Seq2[int, *pedigree.Slot] { return a.store.InnerPeople() }

// Root is the root slot.
func (a *AncestorChart) Root() *pedigree.Slot { return a.store.Root() }

// band returns the generation whose annulus contains radius r.
func (a *AncestorChart) band(r float64) int {
	switch {
	case r < TranslatePx:
		return sector.GenTranslate
	case a.ChildRing() && r < TranslatePx+ChildRingWidth:
		return sector.GenChildren
	case r < Center:
		return 0
	}
	for g := 1; g < a.Generations(); g++ {
		in, out := RadiusForGeneration(g)
		if in <= r && r <= out {
			return g
		}
	}
	return a.Generations()
}

// HitTest resolves p to the populated sector under it. The generation is
// always reported; Index is -1 when no populated, visible sector lies under
// the pointer or when p is on the drag handle or outside the chart.
func (a *AncestorChart) HitTest(p curve.Point, v View) sector.Address {
	r, raw := v.Polar(p)
	g := a.band(r)
	none := sector.Address{Generation: g, Index: -1}
	switch {
	case g == sector.GenChildren:
		// The children ring runs from π to 3π, unrotated.
		if raw < math.Pi {
			raw += 2 * math.Pi
		}
		for i, s := range a.ChildSectors() {
			if s.Contains(raw) {
				return sector.Address{Generation: g, Index: i}
			}
		}
		return none
	case g == 0:
		if !a.store.Root().Known() {
			return none
		}
		return sector.Address{Generation: 0, Index: 0}
	case g < 0 || g >= a.Generations():
		return none
	}
	angle := v.ChartAngle(p)
	i := a.tree.Locate(g, angle, func(i int) bool { return a.store.Occupied(g, i) })
	if i < 0 && angle == 0 {
		// A full-circle ring closes at 2π.
		i = a.tree.Locate(g, 2*math.Pi, func(i int) bool { return a.store.Occupied(g, i) })
	}
	return sector.Address{Generation: g, Index: i}
}
