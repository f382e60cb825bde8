package sector

import "fmt"

// ChangeSlice toggles (g, i): a normal sector is expanded, an expanded one
// shrunk. The root ring, out-of-range addresses and collapsed sectors are
// rejected and leave the tree untouched.
func (t *Tree) ChangeSlice(g, i int) error {
	if err := t.toggleable(g, i); err != nil {
		return err
	}
	switch t.rings[g][i].State {
	case Normal:
		return t.Expand(g, i)
	case Expanded:
		return t.Shrink(g, i)
	default:
		return fmt.Errorf("change slice %d/%d: %w", g, i, ErrCollapsed)
	}
}

// Expand doubles the normal sector (g, i) into its sibling's space. An even
// index grows clockwise, an odd one counter-clockwise. The sector's own
// ancestors are rescaled into the doubled range and the sibling subtree is
// collapsed onto the shared boundary.
func (t *Tree) Expand(g, i int) error {
	if err := t.toggleable(g, i); err != nil {
		return err
	}
	s := t.rings[g][i]
	if s.State != Normal {
		return fmt.Errorf("expand %d/%d (%s): %w", g, i, s.State, ErrNotToggleable)
	}
	sib := sibling(i)
	if t.subtreeHas(g, sib, Expanded) {
		return fmt.Errorf("expand %d/%d: %w", g, i, ErrSiblingExpanded)
	}
	if t.occ != nil {
		if !t.occ.Occupied(g, i) {
			return fmt.Errorf("expand %d/%d: %w", g, i, ErrEmptySector)
		}
		if !t.subtreeOccupied(g, sib) {
			return fmt.Errorf("expand %d/%d: %w", g, i, ErrEmptySibling)
		}
	}

	w := s.Width()
	if i%2 == 0 {
		t.rings[g][i] = Sector{Start: s.Start, Stop: s.Stop + w, State: Expanded}
		t.expandParents(g+1, i, s.Start)
		edge := s.Stop + w
		t.rings[g][sib] = Sector{Start: edge, Stop: edge, State: Collapsed}
		t.hideParents(g+1, sib, edge)
	} else {
		start := s.Start - w
		t.rings[g][i] = Sector{Start: start, Stop: s.Stop, State: Expanded}
		t.expandParents(g+1, i, start)
		edge := start
		t.rings[g][sib] = Sector{Start: edge, Stop: edge, State: Collapsed}
		t.hideParents(g+1, sib, edge)
	}
	return nil
}

// Shrink halves the expanded sector (g, i) and restores its sibling subtree
// as equal normal subdivisions of the freed half.
func (t *Tree) Shrink(g, i int) error {
	if err := t.toggleable(g, i); err != nil {
		return err
	}
	s := t.rings[g][i]
	if s.State != Expanded {
		return fmt.Errorf("shrink %d/%d (%s): %w", g, i, s.State, ErrNotToggleable)
	}

	half := s.Width() / 2
	sib := sibling(i)
	if i%2 == 0 {
		stop := s.Stop - half
		t.rings[g][i] = Sector{Start: s.Start, Stop: stop, State: Normal}
		t.shrinkParents(g+1, i, s.Start)
		t.rings[g][sib] = Sector{Start: stop, Stop: stop + half, State: Normal}
		t.showParents(g+1, sib, stop, half/2)
	} else {
		start := s.Stop - half
		t.rings[g][i] = Sector{Start: start, Stop: s.Stop, State: Normal}
		t.shrinkParents(g+1, i, start)
		t.rings[g][sib] = Sector{Start: start - half, Stop: start, State: Normal}
		t.showParents(g+1, sib, start-half, half/2)
	}
	return nil
}

func (t *Tree) toggleable(g, i int) error {
	if g < 1 || !t.valid(g, i) {
		return fmt.Errorf("sector %d/%d: %w", g, i, ErrNotToggleable)
	}
	return nil
}

// expandParents lays the visible parents of (g-1, child) out contiguously
// from current, each at twice its width, and recurses outwards. Collapsed
// parents move with the boundary they sit on.
func (t *Tree) expandParents(g, child int, current float64) {
	t.rescaleParents(g, child, current, 2)
}

func (t *Tree) shrinkParents(g, child int, current float64) {
	t.rescaleParents(g, child, current, 0.5)
}

func (t *Tree) rescaleParents(g, child int, current, factor float64) {
	if g >= len(t.rings) {
		return
	}
	for _, p := range [2]int{2 * child, 2*child + 1} {
		s := t.rings[g][p]
		if !s.Visible() {
			t.rings[g][p] = Sector{Start: current, Stop: current, State: Collapsed}
			t.hideParents(g+1, p, current)
			continue
		}
		w := s.Width() * factor
		t.rings[g][p] = Sector{Start: current, Stop: current + w, State: s.State}
		t.rescaleParents(g+1, p, current, factor)
		current += w
	}
}

// showParents splits [angle, angle+2*slice) between the parents of
// (g-1, child) and recurses with half the slice.
func (t *Tree) showParents(g, child int, angle, slice float64) {
	if g >= len(t.rings) {
		return
	}
	father, mother := 2*child, 2*child+1
	t.rings[g][father] = Sector{Start: angle, Stop: angle + slice, State: Normal}
	t.showParents(g+1, father, angle, slice/2)
	t.rings[g][mother] = Sector{Start: angle + slice, Stop: angle + 2*slice, State: Normal}
	t.showParents(g+1, mother, angle+slice, slice/2)
}

func (t *Tree) hideParents(g, child int, angle float64) {
	if g >= len(t.rings) {
		return
	}
	for _, p := range [2]int{2 * child, 2*child + 1} {
		t.rings[g][p] = Sector{Start: angle, Stop: angle, State: Collapsed}
		t.hideParents(g+1, p, angle)
	}
}

// subtreeHas reports whether (g, i) or any of its ancestors is in state st.
func (t *Tree) subtreeHas(g, i int, st State) bool {
	found := false
	t.walk(g, i, func(g, i int) bool {
		found = t.rings[g][i].State == st
		return !found
	})
	return found
}

func (t *Tree) subtreeOccupied(g, i int) bool {
	found := false
	t.walk(g, i, func(g, i int) bool {
		found = t.occ.Occupied(g, i)
		return !found
	})
	return found
}

// walk visits (g, i) and its ancestors depth first until visit returns false.
func (t *Tree) walk(g, i int, visit func(g, i int) bool) bool {
	if g >= len(t.rings) {
		return true
	}
	if !visit(g, i) {
		return false
	}
	return t.walk(g+1, 2*i, visit) && t.walk(g+1, 2*i+1, visit)
}

func sibling(i int) int { return i ^ 1 }
