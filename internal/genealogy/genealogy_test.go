package genealogy

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// threeGen builds root -> (father, mother) -> paternal grandfather only.
func threeGen(t *testing.T) *MemoryDB {
	t.Helper()
	db := NewMemoryDB()
	db.PutPerson(Person{Handle: "root", Gender: GenderMale, Name: Name{Given: "Ada", Surname: "Lind"}, BirthYear: 1950, ParentFamilies: []Handle{"f1"}, Families: []Handle{"f0"}})
	db.PutPerson(Person{Handle: "dad", Gender: GenderMale, Name: Name{Given: "Bo", Surname: "Lind"}, BirthYear: 1920, DeathYear: 1990, ParentFamilies: []Handle{"f2"}, Families: []Handle{"f1"}})
	db.PutPerson(Person{Handle: "mom", Gender: GenderFemale, Name: Name{Given: "Cea", Surname: "Ek"}, Families: []Handle{"f1"}})
	db.PutPerson(Person{Handle: "gpa", Gender: GenderMale, Name: Name{Given: "Dan", Surname: "Lind"}, Families: []Handle{"f2"}})
	db.PutPerson(Person{Handle: "sis", Gender: GenderFemale, Name: Name{Given: "Eva", Surname: "Lind"}, ParentFamilies: []Handle{"f1"}})
	db.PutPerson(Person{Handle: "kid", Name: Name{Given: "Fia", Surname: "Lind"}, ParentFamilies: []Handle{"f0"}})
	db.PutFamily(Family{Handle: "f0", Father: "root", Mother: "wife", Children: []Handle{"kid"}})
	db.PutFamily(Family{Handle: "f1", Father: "dad", Mother: "mom", Children: []Handle{"root", "sis"}})
	db.PutFamily(Family{Handle: "f2", Father: "gpa", Children: []Handle{"dad"}})
	return db
}

func TestRelations(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := threeGen(t)

	root, _ := db.Person(ctx, "root")
	father, mother, err := FindParents(ctx, db, root)
	if err != nil {
		t.Fatalf("FindParents: %v", err)
	}
	if father != "dad" || mother != "mom" {
		t.Errorf("FindParents = (%q, %q), want (dad, mom)", father, mother)
	}

	children, err := FindChildren(ctx, db, root)
	if err != nil {
		t.Fatalf("FindChildren: %v", err)
	}
	if diff := cmp.Diff([]Handle{"kid"}, children); diff != "" {
		t.Errorf("FindChildren mismatch (-want +got):\n%s", diff)
	}

	sibs, _ := Siblings(ctx, db, root)
	if diff := cmp.Diff([]Handle{"sis"}, sibs); diff != "" {
		t.Errorf("Siblings mismatch (-want +got):\n%s", diff)
	}

	spouses, _ := Spouses(ctx, db, root)
	if diff := cmp.Diff([]Handle{"wife"}, spouses); diff != "" {
		t.Errorf("Spouses mismatch (-want +got):\n%s", diff)
	}

	mom, _ := db.Person(ctx, "mom")
	has, err := HasParents(ctx, db, mom)
	if err != nil || has {
		t.Errorf("HasParents(mom) = %v, %v; want false, nil", has, err)
	}
	dad, _ := db.Person(ctx, "dad")
	if has, _ := HasParents(ctx, db, dad); !has {
		t.Error("HasParents(dad) = false, want true")
	}
}

func TestRelationsTolerateDanglingHandles(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := NewMemoryDB()
	p := &Person{Handle: "x", ParentFamilies: []Handle{"missing"}, Families: []Handle{"gone"}}

	father, mother, err := ParentPeople(ctx, db, p)
	if err != nil || father != nil || mother != nil {
		t.Errorf("ParentPeople = %v, %v, %v; want nil, nil, nil", father, mother, err)
	}
	children, err := FindChildren(ctx, db, p)
	if err != nil || len(children) != 0 {
		t.Errorf("FindChildren = %v, %v; want empty", children, err)
	}
	if got, _ := db.Person(ctx, "nobody"); got != nil {
		t.Errorf("Person(nobody) = %+v, want nil", got)
	}
}

func TestDisplayer(t *testing.T) {
	t.Parallel()
	p := &Person{Name: Name{Given: "Anna Maria", Surname: "Berg", Suffix: "Jr"}}
	tests := []struct {
		name string
		d    Displayer
		f    Format
		want string
	}{
		{"full", Displayer{}, FormatFull, "Anna Maria Berg Jr"},
		{"surname first", Displayer{SurnameFirst: true}, FormatFull, "Berg, Anna Maria Jr"},
		{"surname", Displayer{}, FormatSurname, "Berg"},
		{"given suffix", Displayer{}, FormatGivenSuffix, "Anna Maria Jr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.d.DisplayFormat(p, tt.f); got != tt.want {
				t.Errorf("DisplayFormat = %q, want %q", got, tt.want)
			}
		})
	}
	if got := (Displayer{}).Display(nil); got != "" {
		t.Errorf("Display(nil) = %q, want empty", got)
	}
}

func TestEstimators(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		p        Person
		alive    bool
		aliveErr bool
		age      int
		ageOK    bool
		period   int
		periodOK bool
	}{
		{"living", Person{BirthYear: 1980}, true, false, 45, true, 1980, true},
		{"dead", Person{BirthYear: 1900, DeathYear: 1970}, false, false, 70, true, 1900, true},
		{"too old", Person{BirthYear: 1800}, false, false, 225, true, 1800, true},
		{"no dates", Person{}, true, false, 0, false, 0, false},
		{"death only", Person{DeathYear: 1700}, false, false, 0, false, 1700, true},
		{"inconsistent", Person{BirthYear: 1900, DeathYear: 1850}, false, true, -50, true, 1900, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			alive, err := ProbablyAlive(&tt.p, 2025)
			if (err != nil) != tt.aliveErr {
				t.Fatalf("ProbablyAlive error = %v, wantErr %v", err, tt.aliveErr)
			}
			if err != nil && !errors.Is(err, ErrInconsistentDates) {
				t.Errorf("error = %v, want ErrInconsistentDates", err)
			}
			if alive != tt.alive {
				t.Errorf("ProbablyAlive = %v, want %v", alive, tt.alive)
			}
			age, ok := Age(&tt.p, 2025)
			if age != tt.age || ok != tt.ageOK {
				t.Errorf("Age = (%d, %v), want (%d, %v)", age, ok, tt.age, tt.ageOK)
			}
			period, ok := TimePeriod(&tt.p)
			if period != tt.period || ok != tt.periodOK {
				t.Errorf("TimePeriod = (%d, %v), want (%d, %v)", period, ok, tt.period, tt.periodOK)
			}
		})
	}
}

func TestFilters(t *testing.T) {
	t.Parallel()
	p := &Person{Handle: "a", Name: Name{Surname: "Lind"}}
	if !(HandleSet{"a": true}).Match(p) {
		t.Error("HandleSet should match a")
	}
	if (HandleSet{"b": true}).Match(p) {
		t.Error("HandleSet should not match a")
	}
	if !(SurnameFilter{Surname: " lind "}).Match(p) {
		t.Error("SurnameFilter should match case-insensitively")
	}
	if (SurnameFilter{Surname: "Lind"}).Match(nil) {
		t.Error("filters never match nil")
	}
}
