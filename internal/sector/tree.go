package sector

import (
	"fmt"
	"math"
	"slices"
)

// Tree is the per-generation sector table of an ancestor fan.
type Tree struct {
	form  Form
	start float64
	stop  float64
	rings [][]Sector
	occ   Occupancy
}

// New lays out generations rings for form. Generation g holds 2^g equal
// sectors covering the form's root arc.
func New(generations int, form Form) *Tree {
	if generations < 1 {
		generations = 1
	}
	start, stop := form.RootArc()
	t := &Tree{form: form, start: start, stop: stop, rings: make([][]Sector, generations)}
	for g := range t.rings {
		n := 1 << g
		slice := (stop - start) / float64(n)
		ring := make([]Sector, n)
		for i := range ring {
			a := start + float64(i)*slice
			ring[i] = Sector{Start: a, Stop: a + slice, State: Normal}
		}
		t.rings[g] = ring
	}
	return t
}

// SetOccupancy installs the occupancy check used by Expand. A nil occupancy
// treats every slot as occupied.
func (t *Tree) SetOccupancy(o Occupancy) { t.occ = o }

// Generations is the number of rings, root included.
func (t *Tree) Generations() int { return len(t.rings) }

// Form is the fan form the tree was laid out for.
func (t *Tree) Form() Form { return t.form }

// RootArc is the angular range every generation spans.
func (t *Tree) RootArc() (start, stop float64) { return t.start, t.stop }

// Span is the total angular width allotted to each generation.
func (t *Tree) Span() float64 { return t.stop - t.start }

// Sector returns the sector at (g, i).
func (t *Tree) Sector(g, i int) (Sector, bool) {
	if !t.valid(g, i) {
		return Sector{}, false
	}
	return t.rings[g][i], true
}

// Generation returns a copy of generation g's sectors.
func (t *Tree) Generation(g int) []Sector {
	if g < 0 || g >= len(t.rings) {
		return nil
	}
	return slices.Clone(t.rings[g])
}

// Clone returns a deep copy of t sharing the occupancy check.
func (t *Tree) Clone() *Tree {
	c := *t
	c.rings = make([][]Sector, len(t.rings))
	for g, ring := range t.rings {
		c.rings[g] = slices.Clone(ring)
	}
	return &c
}

// Locate returns the index of the first visible sector of generation g that
// contains angle and satisfies accept, or -1.
func (t *Tree) Locate(g int, angle float64, accept func(index int) bool) int {
	if g < 0 || g >= len(t.rings) {
		return -1
	}
	for i, s := range t.rings[g] {
		if !s.Visible() || !s.Contains(angle) {
			continue
		}
		if accept == nil || accept(i) {
			return i
		}
	}
	return -1
}

// CheckConservation verifies that every generation tiles the root arc: in
// index order each visible sector starts where the previous one stopped,
// collapsed sectors sit on the current boundary with zero width, and the last
// boundary reaches the end of the arc, all within tol.
func (t *Tree) CheckConservation(tol float64) error {
	for g, ring := range t.rings {
		cursor := t.start
		for i, s := range ring {
			if !s.Visible() && s.Width() != 0 {
				return fmt.Errorf("sector: collapsed sector %d/%d has width %g", g, i, s.Width())
			}
			if math.Abs(s.Start-cursor) > tol {
				return fmt.Errorf("sector: %d/%d starts at %g, want %g", g, i, s.Start, cursor)
			}
			if s.Visible() {
				cursor = s.Stop
			}
		}
		if math.Abs(cursor-t.stop) > tol {
			return fmt.Errorf("sector: generation %d ends at %g, want %g", g, cursor, t.stop)
		}
	}
	return nil
}

func (t *Tree) valid(g, i int) bool {
	return g >= 0 && g < len(t.rings) && i >= 0 && i < len(t.rings[g])
}
