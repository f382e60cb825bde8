package genealogy

import (
	"context"
	"fmt"
)

// FindParents returns the father and mother of p's first parent family.
// Either handle is empty when unknown.
func FindParents(ctx context.Context, db Database, p *Person) (father, mother Handle, err error) {
	if p == nil || len(p.ParentFamilies) == 0 {
		return "", "", nil
	}
	fam, err := db.Family(ctx, p.ParentFamilies[0])
	if err != nil {
		return "", "", fmt.Errorf("genealogy: find parents of %s: %w", p.Handle, err)
	}
	if fam == nil {
		return "", "", nil
	}
	return fam.Father, fam.Mother, nil
}

// ParentPeople resolves FindParents to person snapshots. Dangling handles
// come back as nil.
func ParentPeople(ctx context.Context, db Database, p *Person) (father, mother *Person, err error) {
	fh, mh, err := FindParents(ctx, db, p)
	if err != nil {
		return nil, nil, err
	}
	if fh != "" {
		if father, err = db.Person(ctx, fh); err != nil {
			return nil, nil, fmt.Errorf("genealogy: load father %s: %w", fh, err)
		}
	}
	if mh != "" {
		if mother, err = db.Person(ctx, mh); err != nil {
			return nil, nil, fmt.Errorf("genealogy: load mother %s: %w", mh, err)
		}
	}
	return father, mother, nil
}

// HasParents reports whether p has at least one known parent.
func HasParents(ctx context.Context, db Database, p *Person) (bool, error) {
	father, mother, err := ParentPeople(ctx, db, p)
	if err != nil {
		return false, err
	}
	return father != nil || mother != nil, nil
}

// FindChildren returns the children of every family p is a partner in, in
// family order.
func FindChildren(ctx context.Context, db Database, p *Person) ([]Handle, error) {
	if p == nil {
		return nil, nil
	}
	var out []Handle
	for _, fh := range p.Families {
		fam, err := db.Family(ctx, fh)
		if err != nil {
			return nil, fmt.Errorf("genealogy: find children of %s: %w", p.Handle, err)
		}
		if fam == nil {
			continue
		}
		out = append(out, fam.Children...)
	}
	return out, nil
}

// HasChildren reports whether any of p's families lists a child.
func HasChildren(ctx context.Context, db Database, p *Person) (bool, error) {
	children, err := FindChildren(ctx, db, p)
	if err != nil {
		return false, err
	}
	return len(children) > 0, nil
}

// Spouses returns the other partner of each of p's families, skipping
// families without one.
func Spouses(ctx context.Context, db Database, p *Person) ([]Handle, error) {
	if p == nil {
		return nil, nil
	}
	var out []Handle
	for _, fh := range p.Families {
		fam, err := db.Family(ctx, fh)
		if err != nil {
			return nil, fmt.Errorf("genealogy: find spouses of %s: %w", p.Handle, err)
		}
		if fam == nil {
			continue
		}
		switch p.Handle {
		case fam.Father:
			if fam.Mother != "" {
				out = append(out, fam.Mother)
			}
		case fam.Mother:
			if fam.Father != "" {
				out = append(out, fam.Father)
			}
		}
	}
	return out, nil
}

// Siblings returns the other children of p's parent families, without
// duplicates.
func Siblings(ctx context.Context, db Database, p *Person) ([]Handle, error) {
	if p == nil {
		return nil, nil
	}
	seen := map[Handle]bool{p.Handle: true}
	var out []Handle
	for _, fh := range p.ParentFamilies {
		fam, err := db.Family(ctx, fh)
		if err != nil {
			return nil, fmt.Errorf("genealogy: find siblings of %s: %w", p.Handle, err)
		}
		if fam == nil {
			continue
		}
		for _, c := range fam.Children {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out, nil
}
