package srctemplate

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMapDictDefaultsWithoutInserting(t *testing.T) {
	t.Parallel()
	var d MapDict
	if got := d.Get("author"); got != "" {
		t.Errorf("Get on empty = %q", got)
	}
	if d.Len() != 0 {
		t.Errorf("Get inserted a key: Len = %d", d.Len())
	}
	d.Set("title", "Parish records")
	d.Set("author", "Berg, A.")
	if got := d.Get("title"); got != "Parish records" {
		t.Errorf("Get(title) = %q", got)
	}
	if _, ok := d.Lookup("date"); ok {
		t.Error("Lookup(date) reported a missing key")
	}
	if diff := cmp.Diff([]string{"author", "title"}, d.Keys()); diff != "" {
		t.Errorf("Keys (-want +got):\n%s", diff)
	}
	d.Delete("author")
	if d.Len() != 1 {
		t.Errorf("Len after Delete = %d", d.Len())
	}
}

func TestNewMapDictCopies(t *testing.T) {
	t.Parallel()
	src := map[string]string{"a": "1"}
	d := NewMapDict(src)
	src["a"] = "2"
	if d.Get("a") != "1" {
		t.Error("NewMapDict aliases its argument")
	}
	out := d.Map()
	out["b"] = "3"
	if d.Len() != 1 {
		t.Error("Map aliases the dict")
	}
}

func TestTemplateElements(t *testing.T) {
	t.Parallel()
	tpl := New("Book", "A printed book")
	if tpl.Handle == "" {
		t.Fatal("New left the handle empty")
	}
	author := Element{Name: "[AUTHOR]", Display: "Author", Citation: true, Short: true, ShortAlg: "initials"}
	tpl.AddElement(author)
	tpl.AddElement(Element{Name: "[TITLE]", Display: "Title"})

	got, ok := tpl.Element("[AUTHOR]")
	if !ok || got != author {
		t.Errorf("Element([AUTHOR]) = %+v, %v", got, ok)
	}
	if _, ok := tpl.Element("[PAGE]"); ok {
		t.Error("Element([PAGE]) found a missing element")
	}
	if n := len(tpl.CitationElements()); n != 1 {
		t.Errorf("CitationElements = %d, want 1", n)
	}

	cp := NewElementFrom(author)
	cp.Display = "Writer"
	if author.Display != "Author" || cp.Short != author.Short || cp.ShortAlg != author.ShortAlg {
		t.Errorf("NewElementFrom = %+v from %+v", cp, author)
	}
}
