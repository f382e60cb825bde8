// Package genealogy defines the people and families a fan chart is drawn
// from, and the narrow collaborator interfaces (database, writer, name
// display, editors) the chart needs from a genealogical backend.
package genealogy

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned by writers when a handle they must modify does not
// resolve to an entity.
var ErrNotFound = errors.New("genealogy: entity not found")

// ErrEditorActive signals that an editor for the requested entity is already
// open. Callers treat it as a benign duplicate invocation.
var ErrEditorActive = errors.New("genealogy: editor already open")

// Handle is the stable identifier of a person or family.
type Handle string

// NewHandle returns a fresh random handle.
func NewHandle() Handle {
	return Handle(uuid.NewString())
}

// Gender is the recorded gender of a person.
type Gender int

// Gender values.
const (
	GenderUnknown Gender = iota
	GenderMale
	GenderFemale
)

// String returns the lowercase gender name.
func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	default:
		return "unknown"
	}
}

// ParseGender maps "male"/"m", "female"/"f" to a Gender. Anything else is
// GenderUnknown.
func ParseGender(s string) Gender {
	switch s {
	case "male", "m", "M":
		return GenderMale
	case "female", "f", "F":
		return GenderFemale
	default:
		return GenderUnknown
	}
}

// Name is a person's primary name.
type Name struct {
	Given   string `toml:"given"`
	Surname string `toml:"surname"`
	Suffix  string `toml:"suffix,omitempty"`
}

// Person is a snapshot of a person entity. Years are zero when unknown.
type Person struct {
	Handle         Handle
	Gender         Gender
	Name           Name
	BirthYear      int
	DeathYear      int
	ParentFamilies []Handle
	Families       []Handle
}

// Family links two partners and their children.
type Family struct {
	Handle   Handle
	Father   Handle
	Mother   Handle
	Children []Handle
}

// Database is the read side of a genealogical backend. A missing handle is
// reported as (nil, nil); errors are reserved for backend failures.
type Database interface {
	Person(ctx context.Context, h Handle) (*Person, error)
	Family(ctx context.Context, h Handle) (*Family, error)
}

// Writer is the write side of a genealogical backend. Every method runs in
// one transaction: either all related entities are updated or none are.
type Writer interface {
	// AddPerson stores a new person and returns its handle.
	AddPerson(ctx context.Context, p Person) (Handle, error)
	// AddChild stores child and links it into family.
	AddChild(ctx context.Context, family Handle, child Person) (Handle, error)
	// AddPartner creates a family between person and a new partner and
	// returns the family handle.
	AddPartner(ctx context.Context, person Handle, partner Person) (Handle, error)
	// AddParents creates a parent family for child. Nil parents are left
	// empty. It returns the family handle.
	AddParents(ctx context.Context, child Handle, father, mother *Person) (Handle, error)
	// UpdatePerson replaces name, gender and years of an existing person.
	UpdatePerson(ctx context.Context, p Person) error
}

// Editor opens an interactive editor for a person or family. Implementations
// return ErrEditorActive when one is already open.
type Editor interface {
	EditPerson(ctx context.Context, h Handle) error
	EditFamily(ctx context.Context, h Handle) error
}

// Filter decides whether a person is highlighted in the chart.
type Filter interface {
	Match(p *Person) bool
}
