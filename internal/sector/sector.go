// Package sector holds the angular layout of an ancestor fan: for every
// generation a flat array of sectors addressed by (generation, index), and
// the expand/shrink operations that move angular space between siblings.
//
// Father of (g, i) lives at (g+1, 2i), mother at (g+1, 2i+1). All angles are
// radians, increasing clockwise on a y-down canvas.
package sector

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel generations reported by hit testing.
const (
	GenTranslate = -1 // center drag handle
	GenChildren  = -2 // inner ring of the root's children
)

// Errors returned by ChangeSlice and friends.
var (
	ErrNotToggleable   = errors.New("sector: not toggleable")
	ErrCollapsed       = errors.New("sector: sector is collapsed")
	ErrSiblingExpanded = errors.New("sector: sibling subtree holds an expanded sector")
	ErrEmptySector     = errors.New("sector: sector is empty")
	ErrEmptySibling    = errors.New("sector: sibling subtree is empty")
)

// State is the collapse state of a sector.
type State int

// Sector states.
const (
	Collapsed State = iota
	Normal
	Expanded
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case Collapsed:
		return "collapsed"
	case Normal:
		return "normal"
	case Expanded:
		return "expanded"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Form is the overall shape of the fan.
type Form int

// Fan forms.
const (
	FormCircle Form = iota
	FormHalfCircle
	FormQuadrant
)

// ParseForm parses "circle", "half-circle" or "quadrant".
func ParseForm(s string) (Form, error) {
	switch s {
	case "circle", "":
		return FormCircle, nil
	case "half-circle", "halfcircle", "half":
		return FormHalfCircle, nil
	case "quadrant":
		return FormQuadrant, nil
	}
	return 0, fmt.Errorf("sector: unknown form %q", s)
}

// String returns the form name accepted by ParseForm.
func (f Form) String() string {
	switch f {
	case FormHalfCircle:
		return "half-circle"
	case FormQuadrant:
		return "quadrant"
	default:
		return "circle"
	}
}

// RootArc returns the angular range the whole fan occupies.
func (f Form) RootArc() (start, stop float64) {
	switch f {
	case FormHalfCircle:
		return math.Pi / 2, 3 * math.Pi / 2
	case FormQuadrant:
		return math.Pi, 3 * math.Pi / 2
	default:
		return 0, 2 * math.Pi
	}
}

// Address identifies a sector by generation and index.
type Address struct {
	Generation int
	Index      int
}

// None reports whether a is the "no sector under the pointer" result.
func (a Address) None() bool { return a.Index < 0 }

// String formats the address as "g/i".
func (a Address) String() string { return fmt.Sprintf("%d/%d", a.Generation, a.Index) }

// Sector is the angular extent and state of one slot.
type Sector struct {
	Start float64
	Stop  float64
	State State
}

// Width is the angular width of s.
func (s Sector) Width() float64 { return s.Stop - s.Start }

// Mid is the angle halfway between Start and Stop.
func (s Sector) Mid() float64 { return (s.Start + s.Stop) / 2 }

// Visible reports whether s takes up space.
func (s Sector) Visible() bool { return s.State != Collapsed }

// Contains reports whether angle lies within [Start, Stop].
func (s Sector) Contains(angle float64) bool {
	return s.Start <= angle && angle <= s.Stop
}

// NormalizeAngle maps a to [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// Occupancy reports whether a person occupies a slot. The tree consults it
// to refuse expansions that would only show empty space.
type Occupancy interface {
	Occupied(generation, index int) bool
}
