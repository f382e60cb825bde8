// Package srctemplate describes how source citations are styled in reports:
// a template is a named list of elements plus a free-form key/value map.
package srctemplate

import (
	"maps"
	"slices"

	"github.com/papapumpkin/fanchart/internal/genealogy"
)

// Element is one field of a citation template.
type Element struct {
	// Name is the element name as written in the style guide, e.g.
	// "[WRITER FIRST]".
	Name string `toml:"name"`
	// Display is the label shown in editors.
	Display  string `toml:"display,omitempty"`
	Hint     string `toml:"hint,omitempty"`
	Tooltip  string `toml:"tooltip,omitempty"`
	Citation bool   `toml:"citation,omitempty"`
	// Short marks an optional short-form element; ShortAlg names the
	// shortening applied to it.
	Short    bool   `toml:"short,omitempty"`
	ShortAlg string `toml:"short_alg,omitempty"`
}

// NewElementFrom returns a copy of src.
func NewElementFrom(src Element) Element {
	return src
}

// MapDict is a string map whose misses read as the empty string. Reading
// never adds keys.
type MapDict struct {
	m map[string]string
}

// NewMapDict returns a MapDict holding a copy of m.
func NewMapDict(m map[string]string) MapDict {
	return MapDict{m: maps.Clone(m)}
}

// Get returns the value of key, or "" when it is absent.
func (d MapDict) Get(key string) string { return d.m[key] }

// Lookup returns the value of key and whether it is present.
func (d MapDict) Lookup(key string) (string, bool) {
	v, ok := d.m[key]
	return v, ok
}

// Set stores value under key.
func (d *MapDict) Set(key, value string) {
	if d.m == nil {
		d.m = make(map[string]string)
	}
	d.m[key] = value
}

// Delete removes key.
func (d *MapDict) Delete(key string) { delete(d.m, key) }

// Keys returns the keys in sorted order.
func (d MapDict) Keys() []string { return slices.Sorted(maps.Keys(d.m)) }

// Len is the number of keys.
func (d MapDict) Len() int { return len(d.m) }

// Map returns a copy of the entries.
func (d MapDict) Map() map[string]string { return maps.Clone(d.m) }

// Template is a source citation template.
type Template struct {
	Handle   genealogy.Handle
	Name     string
	Descr    string
	Elements []Element
	Map      MapDict
}

// New returns an empty template with a fresh handle.
func New(name, descr string) *Template {
	return &Template{Handle: genealogy.NewHandle(), Name: name, Descr: descr}
}

// AddElement appends e.
func (t *Template) AddElement(e Element) { t.Elements = append(t.Elements, e) }

// Element returns the first element called name.
func (t *Template) Element(name string) (Element, bool) {
	i := slices.IndexFunc(t.Elements, func(e Element) bool { return e.Name == name })
	if i < 0 {
		return Element{}, false
	}
	return t.Elements[i], true
}

// CitationElements returns the elements that appear in citations.
func (t *Template) CitationElements() []Element {
	var out []Element
	for _, e := range t.Elements {
		if e.Citation {
			out = append(out, e)
		}
	}
	return out
}
