package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/papapumpkin/fanchart/internal/genealogy"
	"github.com/papapumpkin/fanchart/internal/srctemplate"
)

// SaveTemplate inserts or replaces t, its elements and its map.
func (s *Store) SaveTemplate(ctx context.Context, t *srctemplate.Template) error {
	return s.inTx(ctx, "save template", func(tx *sql.Tx) error {
		return saveTemplate(ctx, tx, t)
	})
}

func saveTemplate(ctx context.Context, tx *sql.Tx, t *srctemplate.Template) error {
	if t.Handle == "" {
		t.Handle = genealogy.NewHandle()
	}
	h := string(t.Handle)
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO templates (handle, name, descr) VALUES (?, ?, ?)
		 ON CONFLICT(handle) DO UPDATE SET name = excluded.name, descr = excluded.descr`,
		h, t.Name, t.Descr); err != nil {
		return fmt.Errorf("store: save template %q: %w", t.Name, err)
	}
	for _, table := range []string{"template_elements", "template_map"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE template = ?", h); err != nil {
			return fmt.Errorf("store: clear %s of %q: %w", table, t.Name, err)
		}
	}

	elem, err := tx.PrepareContext(ctx,
		`INSERT INTO template_elements (template, position, name, display, hint, tooltip, citation, short, short_alg)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("store: prepare element insert: %w", err)
	}
	defer elem.Close()
	for i, e := range t.Elements {
		if _, err := elem.ExecContext(ctx, h, i, e.Name, e.Display, e.Hint, e.Tooltip, e.Citation, e.Short, e.ShortAlg); err != nil {
			return fmt.Errorf("store: insert element %q of %q: %w", e.Name, t.Name, err)
		}
	}

	kv, err := tx.PrepareContext(ctx, `INSERT INTO template_map (template, key, value) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("store: prepare map insert: %w", err)
	}
	defer kv.Close()
	for _, k := range t.Map.Keys() {
		if _, err := kv.ExecContext(ctx, h, k, t.Map.Get(k)); err != nil {
			return fmt.Errorf("store: insert map key %q of %q: %w", k, t.Name, err)
		}
	}
	return nil
}

// Template returns the template called name, or nil when there is none.
func (s *Store) Template(ctx context.Context, name string) (*srctemplate.Template, error) {
	t := &srctemplate.Template{Name: name}
	var h string
	err := s.db.QueryRowContext(ctx, `SELECT handle, descr FROM templates WHERE name = ?`, name).Scan(&h, &t.Descr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: get template %q: %w", name, err)
	}
	t.Handle = genealogy.Handle(h)

	rows, err := s.db.QueryContext(ctx,
		`SELECT name, display, hint, tooltip, citation, short, short_alg
		 FROM template_elements WHERE template = ? ORDER BY position`, h)
	if err != nil {
		return nil, fmt.Errorf("store: elements of %q: %w", name, err)
	}
	defer rows.Close()
	for rows.Next() {
		var e srctemplate.Element
		if err := rows.Scan(&e.Name, &e.Display, &e.Hint, &e.Tooltip, &e.Citation, &e.Short, &e.ShortAlg); err != nil {
			return nil, fmt.Errorf("store: scan element of %q: %w", name, err)
		}
		t.AddElement(e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: elements of %q: %w", name, err)
	}

	kvs, err := s.db.QueryContext(ctx, `SELECT key, value FROM template_map WHERE template = ?`, h)
	if err != nil {
		return nil, fmt.Errorf("store: map of %q: %w", name, err)
	}
	defer kvs.Close()
	for kvs.Next() {
		var k, v string
		if err := kvs.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("store: scan map of %q: %w", name, err)
		}
		t.Map.Set(k, v)
	}
	return t, kvs.Err()
}

// TemplateNames lists template names alphabetically.
func (s *Store) TemplateNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM templates ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("store: list templates: %w", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("store: scan template name: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}
