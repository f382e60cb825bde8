package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/papapumpkin/fanchart/internal/genealogy"
	"github.com/papapumpkin/fanchart/internal/srctemplate"
)

// ErrBadImport is returned for import documents that reference unknown or
// duplicate ids.
var ErrBadImport = errors.New("store: invalid import document")

// Document is the TOML import format. People and families are keyed by ids
// local to the document; the store assigns fresh handles.
//
//	[[person]]
//	id = "erik"
//	gender = "male"
//	given = "Erik"
//	surname = "Lind"
//	birth = 1950
//
//	[[family]]
//	father = "olof"
//	mother = "karin"
//	children = ["erik"]
type Document struct {
	People    []PersonRecord   `toml:"person"`
	Families  []FamilyRecord   `toml:"family"`
	Templates []TemplateRecord `toml:"template"`
}

// PersonRecord is one [[person]] table.
type PersonRecord struct {
	ID      string `toml:"id"`
	Gender  string `toml:"gender"`
	Given   string `toml:"given"`
	Surname string `toml:"surname"`
	Suffix  string `toml:"suffix"`
	Birth   int    `toml:"birth"`
	Death   int    `toml:"death"`
}

// FamilyRecord is one [[family]] table. Father, Mother and Children are
// person ids.
type FamilyRecord struct {
	ID       string   `toml:"id"`
	Father   string   `toml:"father"`
	Mother   string   `toml:"mother"`
	Children []string `toml:"children"`
}

// TemplateRecord is one [[template]] table.
type TemplateRecord struct {
	Name     string                `toml:"name"`
	Descr    string                `toml:"descr"`
	Elements []srctemplate.Element `toml:"element"`
	Map      map[string]string     `toml:"map"`
}

// ImportResult reports what an import added.
type ImportResult struct {
	People    int
	Families  int
	Templates int
	// Handles maps document person ids to store handles.
	Handles map[string]genealogy.Handle
}

// ParseDocument decodes a TOML import document.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing import document: %w", err)
	}
	return &doc, nil
}

// Import decodes data and stores it in one transaction. Nothing is written
// when any record is invalid.
func (s *Store) Import(ctx context.Context, data []byte) (ImportResult, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		return ImportResult{}, err
	}
	return s.ImportDocument(ctx, doc)
}

// ImportDocument stores doc in one transaction.
func (s *Store) ImportDocument(ctx context.Context, doc *Document) (ImportResult, error) {
	var err error
	res := ImportResult{Handles: make(map[string]genealogy.Handle, len(doc.People))}
	people := make([]genealogy.Person, 0, len(doc.People))
	for i, r := range doc.People {
		if r.ID == "" {
			return ImportResult{}, fmt.Errorf("%w: person %d has no id", ErrBadImport, i+1)
		}
		if _, dup := res.Handles[r.ID]; dup {
			return ImportResult{}, fmt.Errorf("%w: duplicate person id %q", ErrBadImport, r.ID)
		}
		p := genealogy.Person{
			Handle:    genealogy.NewHandle(),
			Gender:    genealogy.ParseGender(r.Gender),
			Name:      genealogy.Name{Given: r.Given, Surname: r.Surname, Suffix: r.Suffix},
			BirthYear: r.Birth,
			DeathYear: r.Death,
		}
		res.Handles[r.ID] = p.Handle
		people = append(people, p)
	}

	resolve := func(fam int, id string) (genealogy.Handle, error) {
		if id == "" {
			return "", nil
		}
		h, ok := res.Handles[id]
		if !ok {
			return "", fmt.Errorf("%w: family %d references unknown person %q", ErrBadImport, fam, id)
		}
		return h, nil
	}
	families := make([]genealogy.Family, 0, len(doc.Families))
	for i, r := range doc.Families {
		f := genealogy.Family{Handle: genealogy.NewHandle()}
		if f.Father, err = resolve(i+1, r.Father); err != nil {
			return ImportResult{}, err
		}
		if f.Mother, err = resolve(i+1, r.Mother); err != nil {
			return ImportResult{}, err
		}
		for _, c := range r.Children {
			h, err := resolve(i+1, c)
			if err != nil {
				return ImportResult{}, err
			}
			f.Children = append(f.Children, h)
		}
		families = append(families, f)
	}

	err = s.inTx(ctx, "import", func(tx *sql.Tx) error {
		for _, p := range people {
			if err := insertPerson(ctx, tx, p); err != nil {
				return err
			}
		}
		for _, f := range families {
			if err := insertFamily(ctx, tx, f); err != nil {
				return err
			}
		}
		for _, r := range doc.Templates {
			if r.Name == "" {
				return fmt.Errorf("%w: template without a name", ErrBadImport)
			}
			t := &srctemplate.Template{Name: r.Name, Descr: r.Descr, Map: srctemplate.NewMapDict(r.Map)}
			for _, e := range r.Elements {
				t.AddElement(srctemplate.NewElementFrom(e))
			}
			// Re-importing a template replaces the stored one.
			var h string
			err := tx.QueryRowContext(ctx, `SELECT handle FROM templates WHERE name = ?`, r.Name).Scan(&h)
			switch {
			case err == nil:
				t.Handle = genealogy.Handle(h)
			case !errors.Is(err, sql.ErrNoRows):
				return fmt.Errorf("store: look up template %q: %w", r.Name, err)
			}
			if err := saveTemplate(ctx, tx, t); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	res.People, res.Families, res.Templates = len(people), len(families), len(doc.Templates)
	return res, nil
}
