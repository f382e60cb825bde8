package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/papapumpkin/fanchart/internal/genealogy"
)

// Person returns the person with handle h, or nil when there is none. The
// family links are derived from the family tables in creation order.
func (s *Store) Person(ctx context.Context, h genealogy.Handle) (*genealogy.Person, error) {
	return person(ctx, s.db, h)
}

func person(ctx context.Context, q querier, h genealogy.Handle) (*genealogy.Person, error) {
	p := genealogy.Person{Handle: h}
	var gender int
	err := q.QueryRowContext(ctx,
		`SELECT gender, given, surname, suffix, birth_year, death_year FROM persons WHERE handle = ?`,
		string(h),
	).Scan(&gender, &p.Name.Given, &p.Name.Surname, &p.Name.Suffix, &p.BirthYear, &p.DeathYear)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: get person %s: %w", h, err)
	}
	p.Gender = genealogy.Gender(gender)

	p.Families, err = handles(ctx, q,
		`SELECT handle FROM families WHERE father = ?1 OR mother = ?1 ORDER BY rowid`, string(h))
	if err != nil {
		return nil, fmt.Errorf("store: families of %s: %w", h, err)
	}
	p.ParentFamilies, err = handles(ctx, q,
		`SELECT family FROM family_children WHERE child = ? ORDER BY rowid`, string(h))
	if err != nil {
		return nil, fmt.Errorf("store: parent families of %s: %w", h, err)
	}
	return &p, nil
}

// Family returns the family with handle h, or nil when there is none.
func (s *Store) Family(ctx context.Context, h genealogy.Handle) (*genealogy.Family, error) {
	f := genealogy.Family{Handle: h}
	var father, mother string
	err := s.db.QueryRowContext(ctx,
		`SELECT father, mother FROM families WHERE handle = ?`, string(h),
	).Scan(&father, &mother)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: get family %s: %w", h, err)
	}
	f.Father, f.Mother = genealogy.Handle(father), genealogy.Handle(mother)
	f.Children, err = handles(ctx, s.db,
		`SELECT child FROM family_children WHERE family = ? ORDER BY position`, string(h))
	if err != nil {
		return nil, fmt.Errorf("store: children of %s: %w", h, err)
	}
	return &f, nil
}

// People lists every person ordered by surname and given name.
func (s *Store) People(ctx context.Context) ([]genealogy.Person, error) {
	hs, err := handles(ctx, s.db, `SELECT handle FROM persons ORDER BY surname, given, rowid`)
	if err != nil {
		return nil, fmt.Errorf("store: list people: %w", err)
	}
	out := make([]genealogy.Person, 0, len(hs))
	for _, h := range hs {
		p, err := person(ctx, s.db, h)
		if err != nil {
			return nil, err
		}
		if p != nil {
			out = append(out, *p)
		}
	}
	return out, nil
}

// Counts returns the number of people and families.
func (s *Store) Counts(ctx context.Context) (people, families int, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM persons), (SELECT COUNT(*) FROM families)`,
	).Scan(&people, &families)
	if err != nil {
		return 0, 0, fmt.Errorf("store: count: %w", err)
	}
	return people, families, nil
}

func insertPerson(ctx context.Context, q querier, p genealogy.Person) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO persons (handle, gender, given, surname, suffix, birth_year, death_year)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(p.Handle), int(p.Gender), p.Name.Given, p.Name.Surname, p.Name.Suffix, p.BirthYear, p.DeathYear)
	if err != nil {
		return fmt.Errorf("store: insert person %s: %w", p.Handle, err)
	}
	return nil
}

func insertFamily(ctx context.Context, q querier, f genealogy.Family) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO families (handle, father, mother) VALUES (?, ?, ?)`,
		string(f.Handle), string(f.Father), string(f.Mother))
	if err != nil {
		return fmt.Errorf("store: insert family %s: %w", f.Handle, err)
	}
	for _, c := range f.Children {
		if err := appendChild(ctx, q, f.Handle, c); err != nil {
			return err
		}
	}
	return nil
}

// appendChild links child as the last child of family.
func appendChild(ctx context.Context, q querier, family, child genealogy.Handle) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO family_children (family, child, position)
		 VALUES (?1, ?2, (SELECT COALESCE(MAX(position), -1) + 1 FROM family_children WHERE family = ?1))`,
		string(family), string(child))
	if err != nil {
		return fmt.Errorf("store: link child %s to %s: %w", child, family, err)
	}
	return nil
}

// AddPerson stores p under a new handle.
func (s *Store) AddPerson(ctx context.Context, p genealogy.Person) (genealogy.Handle, error) {
	p.Handle = genealogy.NewHandle()
	err := s.inTx(ctx, "add person", func(tx *sql.Tx) error {
		return insertPerson(ctx, tx, p)
	})
	if err != nil {
		return "", err
	}
	return p.Handle, nil
}

// AddChild stores child and appends it to family's children.
func (s *Store) AddChild(ctx context.Context, family genealogy.Handle, child genealogy.Person) (genealogy.Handle, error) {
	child.Handle = genealogy.NewHandle()
	err := s.inTx(ctx, "add child", func(tx *sql.Tx) error {
		ok, err := exists(ctx, tx, "families", family)
		if err != nil {
			return fmt.Errorf("store: add child: %w", err)
		}
		if !ok {
			return fmt.Errorf("add child to %s: %w", family, ErrMissingFamily)
		}
		if err := insertPerson(ctx, tx, child); err != nil {
			return err
		}
		return appendChild(ctx, tx, family, child.Handle)
	})
	if err != nil {
		return "", err
	}
	return child.Handle, nil
}

// AddPartner creates a family between person and a new partner, with roles
// assigned by genealogy.PartnerRoles.
func (s *Store) AddPartner(ctx context.Context, h genealogy.Handle, partner genealogy.Person) (genealogy.Handle, error) {
	fam := genealogy.Family{Handle: genealogy.NewHandle()}
	partner.Handle = genealogy.NewHandle()
	err := s.inTx(ctx, "add partner", func(tx *sql.Tx) error {
		p, err := person(ctx, tx, h)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("add partner: person %s: %w", h, genealogy.ErrNotFound)
		}
		if err := insertPerson(ctx, tx, partner); err != nil {
			return err
		}
		fam.Father, fam.Mother = genealogy.PartnerRoles(*p, partner)
		return insertFamily(ctx, tx, fam)
	})
	if err != nil {
		return "", err
	}
	return fam.Handle, nil
}

// AddParents creates a parent family for child. Nil parents leave their role
// empty.
func (s *Store) AddParents(ctx context.Context, child genealogy.Handle, father, mother *genealogy.Person) (genealogy.Handle, error) {
	fam := genealogy.Family{Handle: genealogy.NewHandle(), Children: []genealogy.Handle{child}}
	err := s.inTx(ctx, "add parents", func(tx *sql.Tx) error {
		ok, err := exists(ctx, tx, "persons", child)
		if err != nil {
			return fmt.Errorf("store: add parents: %w", err)
		}
		if !ok {
			return fmt.Errorf("add parents: child %s: %w", child, genealogy.ErrNotFound)
		}
		for _, parent := range []struct {
			p    *genealogy.Person
			role *genealogy.Handle
		}{{father, &fam.Father}, {mother, &fam.Mother}} {
			if parent.p == nil {
				continue
			}
			np := *parent.p
			np.Handle = genealogy.NewHandle()
			if err := insertPerson(ctx, tx, np); err != nil {
				return err
			}
			*parent.role = np.Handle
		}
		return insertFamily(ctx, tx, fam)
	})
	if err != nil {
		return "", err
	}
	return fam.Handle, nil
}

// UpdatePerson replaces name, gender and years of an existing person.
func (s *Store) UpdatePerson(ctx context.Context, p genealogy.Person) error {
	return s.inTx(ctx, "update person", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE persons SET gender = ?, given = ?, surname = ?, suffix = ?, birth_year = ?, death_year = ?
			 WHERE handle = ?`,
			int(p.Gender), p.Name.Given, p.Name.Surname, p.Name.Suffix, p.BirthYear, p.DeathYear, string(p.Handle))
		if err != nil {
			return fmt.Errorf("store: update person %s: %w", p.Handle, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("store: update person %s: %w", p.Handle, err)
		}
		if n == 0 {
			return fmt.Errorf("update person %s: %w", p.Handle, genealogy.ErrNotFound)
		}
		return nil
	})
}
