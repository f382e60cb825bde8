package genealogy

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// MemoryDB is an in-memory Database and Writer. Writes validate every handle
// they touch before mutating, so a failed write leaves the store unchanged.
type MemoryDB struct {
	mu       sync.RWMutex
	people   map[Handle]Person
	families map[Handle]Family
}

// NewMemoryDB returns an empty MemoryDB.
func NewMemoryDB() *MemoryDB {
	return &MemoryDB{
		people:   make(map[Handle]Person),
		families: make(map[Handle]Family),
	}
}

// PutPerson stores p as is, replacing any person with the same handle.
func (m *MemoryDB) PutPerson(p Person) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.people[p.Handle] = clonePerson(p)
}

// PutFamily stores f as is, replacing any family with the same handle.
func (m *MemoryDB) PutFamily(f Family) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f.Children = slices.Clone(f.Children)
	m.families[f.Handle] = f
}

// Person returns a copy of the person with handle h, or nil.
func (m *MemoryDB) Person(_ context.Context, h Handle) (*Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.people[h]
	if !ok {
		return nil, nil
	}
	cp := clonePerson(p)
	return &cp, nil
}

// Family returns a copy of the family with handle h, or nil.
func (m *MemoryDB) Family(_ context.Context, h Handle) (*Family, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.families[h]
	if !ok {
		return nil, nil
	}
	f.Children = slices.Clone(f.Children)
	return &f, nil
}

// AddPerson stores p under a new handle.
func (m *MemoryDB) AddPerson(_ context.Context, p Person) (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.Handle = NewHandle()
	m.people[p.Handle] = clonePerson(p)
	return p.Handle, nil
}

// AddChild stores child and appends it to family's children.
func (m *MemoryDB) AddChild(_ context.Context, family Handle, child Person) (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fam, ok := m.families[family]
	if !ok {
		return "", fmt.Errorf("add child: family %s: %w", family, ErrNotFound)
	}
	child.Handle = NewHandle()
	child.ParentFamilies = append(slices.Clone(child.ParentFamilies), family)
	fam.Children = append(slices.Clone(fam.Children), child.Handle)
	m.people[child.Handle] = clonePerson(child)
	m.families[family] = fam
	return child.Handle, nil
}

// AddPartner creates a family between person and a new partner. The partner
// takes the mother role when person is male or of unknown gender.
func (m *MemoryDB) AddPartner(_ context.Context, person Handle, partner Person) (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.people[person]
	if !ok {
		return "", fmt.Errorf("add partner: person %s: %w", person, ErrNotFound)
	}
	partner.Handle = NewHandle()
	fam := Family{Handle: NewHandle()}
	fam.Father, fam.Mother = PartnerRoles(p, partner)
	p.Families = append(slices.Clone(p.Families), fam.Handle)
	partner.Families = append(slices.Clone(partner.Families), fam.Handle)
	m.people[p.Handle] = p
	m.people[partner.Handle] = clonePerson(partner)
	m.families[fam.Handle] = fam
	return fam.Handle, nil
}

// AddParents creates a parent family for child from the given parents.
func (m *MemoryDB) AddParents(_ context.Context, child Handle, father, mother *Person) (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.people[child]
	if !ok {
		return "", fmt.Errorf("add parents: child %s: %w", child, ErrNotFound)
	}
	fam := Family{Handle: NewHandle(), Children: []Handle{child}}
	for _, parent := range []struct {
		p    *Person
		role *Handle
	}{{father, &fam.Father}, {mother, &fam.Mother}} {
		if parent.p == nil {
			continue
		}
		np := clonePerson(*parent.p)
		np.Handle = NewHandle()
		np.Families = append(np.Families, fam.Handle)
		m.people[np.Handle] = np
		*parent.role = np.Handle
	}
	c.ParentFamilies = append(slices.Clone(c.ParentFamilies), fam.Handle)
	m.people[child] = c
	m.families[fam.Handle] = fam
	return fam.Handle, nil
}

// UpdatePerson replaces name, gender and years of an existing person.
func (m *MemoryDB) UpdatePerson(_ context.Context, p Person) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.people[p.Handle]
	if !ok {
		return fmt.Errorf("update person %s: %w", p.Handle, ErrNotFound)
	}
	cur.Name, cur.Gender = p.Name, p.Gender
	cur.BirthYear, cur.DeathYear = p.BirthYear, p.DeathYear
	m.people[p.Handle] = cur
	return nil
}

// PartnerRoles decides which of two partners is recorded as father and which
// as mother. A female person is the mother; otherwise the person is the
// father unless the partner is explicitly male.
func PartnerRoles(person, partner Person) (father, mother Handle) {
	if person.Gender == GenderFemale || (person.Gender == GenderUnknown && partner.Gender == GenderMale) {
		return partner.Handle, person.Handle
	}
	return person.Handle, partner.Handle
}

func clonePerson(p Person) Person {
	p.ParentFamilies = slices.Clone(p.ParentFamilies)
	p.Families = slices.Clone(p.Families)
	return p
}
