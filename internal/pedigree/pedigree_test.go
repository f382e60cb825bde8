package pedigree

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/papapumpkin/fanchart/internal/genealogy"
	"github.com/papapumpkin/fanchart/internal/sector"
)

// unknownPaternalGrandfather: root, both parents, three of four
// grandparents. The father's father is not recorded.
func unknownPaternalGrandfather(t *testing.T) *genealogy.MemoryDB {
	t.Helper()
	db := genealogy.NewMemoryDB()
	put := func(h genealogy.Handle, given string, parents ...genealogy.Handle) {
		db.PutPerson(genealogy.Person{Handle: h, Name: genealogy.Name{Given: given, Surname: "Holm"}, ParentFamilies: parents})
	}
	put("root", "Ida", "f1")
	put("dad", "Jon", "f2")
	put("mom", "Kim", "f3")
	put("gma1", "Lea")
	put("gpa2", "Max")
	put("gma2", "Nea")
	put("kid1", "Ola")
	put("kid2", "Pia")
	db.PutFamily(genealogy.Family{Handle: "f0", Father: "root", Children: []genealogy.Handle{"kid1", "ghost", "kid2"}})
	db.PutFamily(genealogy.Family{Handle: "f1", Father: "dad", Mother: "mom", Children: []genealogy.Handle{"root"}})
	db.PutFamily(genealogy.Family{Handle: "f2", Mother: "gma1", Children: []genealogy.Handle{"dad"}})
	db.PutFamily(genealogy.Family{Handle: "f3", Father: "gpa2", Mother: "gma2", Children: []genealogy.Handle{"mom"}})
	root, _ := db.Person(context.Background(), "root")
	root.Families = []genealogy.Handle{"f0"}
	db.PutPerson(*root)
	return db
}

func TestBuildWalksAncestors(t *testing.T) {
	t.Parallel()
	db := unknownPaternalGrandfather(t)
	s, err := Build(context.Background(), db, genealogy.Displayer{}, "root", 3)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := map[sector.Address]string{
		{Generation: 0, Index: 0}: "Ida Holm",
		{Generation: 1, Index: 0}: "Jon Holm",
		{Generation: 1, Index: 1}: "Kim Holm",
		{Generation: 2, Index: 1}: "Lea Holm",
		{Generation: 2, Index: 2}: "Max Holm",
		{Generation: 2, Index: 3}: "Nea Holm",
	}
	got := map[sector.Address]string{}
	for addr, slot := range s.People() {
		got[addr] = slot.DisplayName
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("People() mismatch (-want +got):\n%s", diff)
	}

	if s.Occupied(2, 0) {
		t.Error("paternal grandfather slot should be empty")
	}
	if slot := s.Slot(2, 0); slot == nil || slot.Person != nil {
		t.Errorf("Slot(2, 0) = %+v, want an empty slot", slot)
	}
	if s.Slot(3, 0) != nil || s.Slot(1, 2) != nil {
		t.Error("out of range slots should be nil")
	}
	if got := s.Slot(1, 0).HasParents; got != Yes {
		t.Errorf("father HasParents = %v, want Yes", got)
	}
	if got := s.Slot(2, 1).HasParents; got != No {
		t.Errorf("leaf HasParents = %v, want No", got)
	}
	if got := s.NrGen(); got != 2 {
		t.Errorf("NrGen() = %d, want 2", got)
	}
	if !s.SubtreeEmpty(2, 0) || s.SubtreeEmpty(1, 0) {
		t.Error("SubtreeEmpty disagrees with the fixture")
	}
}

func TestBuildChildren(t *testing.T) {
	t.Parallel()
	db := unknownPaternalGrandfather(t)
	s, err := Build(context.Background(), db, genealogy.Displayer{SurnameFirst: true}, "root", 2)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if s.Root().HasChildren != Yes {
		t.Errorf("root HasChildren = %v, want Yes", s.Root().HasChildren)
	}
	var names []string
	for i, slot := range s.InnerPeople() {
		if i != len(names) {
			t.Fatalf("InnerPeople index %d out of order", i)
		}
		names = append(names, slot.DisplayName)
	}
	// The dangling "ghost" child is skipped.
	if diff := cmp.Diff([]string{"Holm, Ola", "Holm, Pia"}, names); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildMissingRoot(t *testing.T) {
	t.Parallel()
	for _, root := range []genealogy.Handle{"", "nobody"} {
		s, err := Build(context.Background(), genealogy.NewMemoryDB(), genealogy.Displayer{}, root, 4)
		if err != nil {
			t.Fatalf("Build(%q): %v", root, err)
		}
		if s.Root().Known() || s.NrGen() != 1 || s.Generations() != 4 {
			t.Errorf("Build(%q) = root %+v nrgen %d gens %d", root, s.Root(), s.NrGen(), s.Generations())
		}
		for range s.People() {
			t.Errorf("Build(%q) yielded people", root)
		}
	}
}

type failingDB struct{ genealogy.Database }

var errBackend = errors.New("backend down")

func (failingDB) Person(context.Context, genealogy.Handle) (*genealogy.Person, error) {
	return nil, errBackend
}

func TestBuildPropagatesBackendErrors(t *testing.T) {
	t.Parallel()
	_, err := Build(context.Background(), failingDB{}, genealogy.Displayer{}, "root", 3)
	if !errors.Is(err, errBackend) {
		t.Fatalf("Build error = %v, want errBackend", err)
	}
}

func TestStoreAsOccupancy(t *testing.T) {
	t.Parallel()
	db := unknownPaternalGrandfather(t)
	s, err := Build(context.Background(), db, genealogy.Displayer{}, "root", 3)
	if err != nil {
		t.Fatal(err)
	}
	tr := sector.New(3, sector.FormCircle)
	tr.SetOccupancy(s)
	if err := tr.ChangeSlice(2, 1); !errors.Is(err, sector.ErrEmptySibling) {
		t.Errorf("expanding next to the unknown grandfather: %v, want ErrEmptySibling", err)
	}
	if err := tr.ChangeSlice(2, 0); !errors.Is(err, sector.ErrEmptySector) {
		t.Errorf("expanding the unknown grandfather: %v, want ErrEmptySector", err)
	}
	if s2, _ := tr.Sector(2, 0); s2.State != sector.Normal {
		t.Errorf("unknown grandfather sector state = %v, want normal", s2.State)
	}
	if err := tr.ChangeSlice(1, 0); err != nil {
		t.Errorf("expanding the father: %v", err)
	}

	var n int
	for range s.All() {
		n++
	}
	if n != 1+2+4+2 {
		t.Errorf("All() yielded %d slots, want 9", n)
	}
}
