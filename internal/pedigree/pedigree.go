// Package pedigree holds the people shown in an ancestor fan: one slot per
// sector address, filled by a single ancestor walk from the root, plus the
// root's children for the inner ring.
package pedigree

import (
	"context"
	"fmt"
	"iter"

	"github.com/papapumpkin/fanchart/internal/genealogy"
	"github.com/papapumpkin/fanchart/internal/sector"
)

// Tristate is a yes/no answer that may not have been computed.
type Tristate int

// Tristate values.
const (
	Unknown Tristate = iota
	No
	Yes
)

func tristate(b bool) Tristate {
	if b {
		return Yes
	}
	return No
}

// AuxValue is one precomputed background metric of a slot.
type AuxValue struct {
	Value float64
	Valid bool
}

// Slot is a sector's person. Person is nil for an unknown ancestor; the
// slot still exists so the sector keeps its place.
type Slot struct {
	DisplayName string
	Person      *genealogy.Person
	HasParents  Tristate
	HasChildren Tristate
	// Aux is filled by background colouring once per reset.
	Aux []AuxValue
}

// Known reports whether the slot holds a person.
func (s *Slot) Known() bool { return s != nil && s.Person != nil }

// Store is the populated pedigree of one root person.
type Store struct {
	rings    [][]*Slot
	children []*Slot
}

// Build walks generations rings of ancestors of root. Missing and dangling
// handles leave empty slots; only backend failures are errors.
func Build(ctx context.Context, db genealogy.Database, names genealogy.NameDisplayer, root genealogy.Handle, generations int) (*Store, error) {
	s := Empty(generations)
	generations = s.Generations()
	if root == "" {
		return s, nil
	}

	p, err := db.Person(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("pedigree: load root %s: %w", root, err)
	}
	if p == nil {
		return s, nil
	}
	s.fill(s.rings[0][0], p, names)

	for g := 1; g < generations; g++ {
		for c, child := range s.rings[g-1] {
			if !child.Known() {
				continue
			}
			father, mother, err := genealogy.ParentPeople(ctx, db, child.Person)
			if err != nil {
				return nil, fmt.Errorf("pedigree: generation %d: %w", g, err)
			}
			child.HasParents = tristate(father != nil || mother != nil)
			s.fill(s.rings[g][2*c], father, names)
			s.fill(s.rings[g][2*c+1], mother, names)
		}
	}
	for _, leaf := range s.rings[generations-1] {
		if !leaf.Known() {
			continue
		}
		has, err := genealogy.HasParents(ctx, db, leaf.Person)
		if err != nil {
			return nil, fmt.Errorf("pedigree: leaf parents: %w", err)
		}
		leaf.HasParents = tristate(has)
	}

	kids, err := genealogy.FindChildren(ctx, db, p)
	if err != nil {
		return nil, fmt.Errorf("pedigree: children of root: %w", err)
	}
	s.rings[0][0].HasChildren = tristate(len(kids) > 0)
	for _, h := range kids {
		kid, err := db.Person(ctx, h)
		if err != nil {
			return nil, fmt.Errorf("pedigree: load child %s: %w", h, err)
		}
		if kid == nil {
			continue
		}
		slot := &Slot{}
		s.fill(slot, kid, names)
		s.children = append(s.children, slot)
	}
	return s, nil
}

// Empty returns a store of generations rings without any people.
func Empty(generations int) *Store {
	generations = max(generations, 1)
	s := &Store{rings: make([][]*Slot, generations)}
	for g := range s.rings {
		s.rings[g] = make([]*Slot, 1<<g)
		for i := range s.rings[g] {
			s.rings[g][i] = &Slot{}
		}
	}
	return s
}

func (s *Store) fill(slot *Slot, p *genealogy.Person, names genealogy.NameDisplayer) {
	if p == nil {
		return
	}
	slot.Person = p
	slot.DisplayName = names.Display(p)
}

// Generations is the number of ancestor rings, root included.
func (s *Store) Generations() int { return len(s.rings) }

// NrGen is the deepest generation holding a known person, and at least 1.
func (s *Store) NrGen() int {
	for g := len(s.rings) - 1; g > 0; g-- {
		for _, slot := range s.rings[g] {
			if slot.Known() {
				return g
			}
		}
	}
	return 1
}

// Slot returns the slot at (g, i), or nil when out of range.
func (s *Store) Slot(g, i int) *Slot {
	if g < 0 || g >= len(s.rings) || i < 0 || i >= len(s.rings[g]) {
		return nil
	}
	return s.rings[g][i]
}

// Root is the root slot.
func (s *Store) Root() *Slot { return s.rings[0][0] }

// Children returns the root's known children in family order.
func (s *Store) Children() []*Slot { return s.children }

// Occupied reports whether (g, i) holds a known person.
func (s *Store) Occupied(g, i int) bool { return s.Slot(g, i).Known() }

// SubtreeEmpty reports whether neither (g, i) nor any of its ancestors is
// known.
func (s *Store) SubtreeEmpty(g, i int) bool {
	if g >= len(s.rings) {
		return true
	}
	if s.Occupied(g, i) {
		return false
	}
	return s.SubtreeEmpty(g+1, 2*i) && s.SubtreeEmpty(g+1, 2*i+1)
}

// People yields every known ancestor slot, generation by generation.
func (s *Store) People() iter.Seq2[sector.Address, *Slot] {
	return func(yield func(sector.Address, *Slot) bool) {
		for g, ring := range s.rings {
			for i, slot := range ring {
				if !slot.Known() {
					continue
				}
				if !yield(sector.Address{Generation: g, Index: i}, slot) {
					return
				}
			}
		}
	}
}

// InnerPeople yields the root's children with their ring position.
func (s *Store) InnerPeople() iter.Seq2[int, *Slot] {
	return func(yield func(int, *Slot) bool) {
		for i, slot := range s.children {
			if !yield(i, slot) {
				return
			}
		}
	}
}

// All yields every slot that can carry background metrics: ancestors and
// children, known or not for ancestors.
func (s *Store) All() iter.Seq[*Slot] {
	return func(yield func(*Slot) bool) {
		for _, ring := range s.rings {
			for _, slot := range ring {
				if !yield(slot) {
					return
				}
			}
		}
		for _, slot := range s.children {
			if !yield(slot) {
				return
			}
		}
	}
}
