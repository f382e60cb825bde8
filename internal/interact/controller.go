// Package interact turns pointer and key events on a fan chart into chart
// operations: expand/collapse on click, rotation and translation on drag,
// context menus, editors and drop-to-recenter.
package interact

import (
	"errors"
	"fmt"
	"math"

	"honnef.co/go/curve"

	"github.com/papapumpkin/fanchart/internal/fan"
	"github.com/papapumpkin/fanchart/internal/genealogy"
	"github.com/papapumpkin/fanchart/internal/sector"
)

// State is the controller's gesture state.
type State int

// Gesture states.
const (
	Idle State = iota
	Rotating
	Translating
	PendingClick
)

var stateNames = [...]string{"idle", "rotating", "translating", "pending-click"}

// String returns the lowercase state name.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// Button is a pointer button.
type Button int

// Pointer buttons.
const (
	Primary Button = iota
	Middle
	Secondary
)

// Chart is the part of fan.Chart the controller drives.
type Chart interface {
	HitTest(p curve.Point, w, h float64) sector.Address
	View(w, h float64) fan.View
	Rotate(delta float64)
	Translate(d curve.Vec2)
	PersonAt(addr sector.Address) *genealogy.Person
}

var _ Chart = (*fan.Chart)(nil)

// Actions receives the side effects of gestures.
type Actions interface {
	// Toggle expands or collapses the sector at addr.
	Toggle(addr sector.Address) error
	// ContextMenu opens the person menu for addr.
	ContextMenu(addr sector.Address)
	// EditPerson and EditFamily open editors for the person at addr and
	// the family that shows them.
	EditPerson(addr sector.Address) error
	EditFamily(addr sector.Address) error
	// Goto makes h the root of the chart.
	Goto(h genealogy.Handle) error
	// Redraw asks for a repaint; dragging is true while a drag is running.
	Redraw(dragging bool)
}

// Controller is the interaction state machine of one chart view. It is not
// safe for concurrent use; feed it from the UI loop.
type Controller struct {
	chart   Chart
	actions Actions
	w, h    float64

	state   State
	last    curve.Point
	latched sector.Address
	hover   sector.Address
	hovered bool
}

// New returns an idle controller for chart on a w×h canvas.
func New(chart Chart, actions Actions, w, h float64) *Controller {
	return &Controller{chart: chart, actions: actions, w: w, h: h}
}

// SetCanvas updates the canvas size hit tests are resolved against.
func (c *Controller) SetCanvas(w, h float64) { c.w, c.h = w, h }

// State is the current gesture state.
func (c *Controller) State() State { return c.state }

// Dragging reports whether a rotation or translation is in progress.
func (c *Controller) Dragging() bool { return c.state == Rotating || c.state == Translating }

// Hover is the address last seen under the pointer while idle.
func (c *Controller) Hover() (sector.Address, bool) { return c.hover, c.hovered }

// populated reports whether addr names a person that can be clicked.
func (c *Controller) populated(addr sector.Address) bool {
	if addr.None() || addr.Generation == sector.GenTranslate {
		return false
	}
	return c.chart.PersonAt(addr) != nil
}

// PointerDown starts a gesture at p.
func (c *Controller) PointerDown(p curve.Point, b Button) {
	addr := c.chart.HitTest(p, c.w, c.h)
	c.last = p
	c.state = Idle
	switch {
	case addr.Generation == sector.GenTranslate:
		if b == Primary {
			c.state = Translating
		}
	case !c.populated(addr):
		// Only the primary button drags the chart around.
		if b == Primary {
			c.state = Rotating
		}
	case b == Primary:
		c.state = PendingClick
		c.latched = addr
	case b == Secondary:
		c.actions.ContextMenu(addr)
	}
}

// PointerMove tracks the pointer. While idle it only updates the hover
// address; during a gesture it rotates or translates the chart.
func (c *Controller) PointerMove(p curve.Point) {
	switch c.state {
	case Idle:
		c.hover = c.chart.HitTest(p, c.w, c.h)
		c.hovered = true
		return
	case PendingClick:
		c.state = Rotating
		fallthrough
	case Rotating:
		center := c.chart.View(c.w, c.h).Center
		from := c.last.Sub(center).Angle()
		to := p.Sub(center).Angle()
		c.chart.Rotate(AngleDelta(from, to))
	case Translating:
		c.chart.Translate(p.Sub(c.last))
	}
	c.last = p
	c.actions.Redraw(true)
}

// PointerUp ends the gesture. A click that never moved toggles the latched
// sector.
func (c *Controller) PointerUp(p curve.Point) error {
	prev := c.state
	c.state = Idle
	switch prev {
	case PendingClick:
		if err := c.actions.Toggle(c.latched); err != nil {
			c.actions.Redraw(false)
			return fmt.Errorf("interact: toggle %s: %w", c.latched, err)
		}
	case Idle:
		return nil
	}
	c.actions.Redraw(false)
	return nil
}

// Key handles a key press: 'e' edits the hovered person, 'f' the family
// showing them. It reports whether the key was used. An editor that is
// already open is not an error.
func (c *Controller) Key(k rune) (bool, error) {
	if !c.hovered || !c.populated(c.hover) {
		return false, nil
	}
	var err error
	switch k {
	case 'e':
		err = c.actions.EditPerson(c.hover)
	case 'f':
		err = c.actions.EditFamily(c.hover)
	default:
		return false, nil
	}
	if errors.Is(err, genealogy.ErrEditorActive) {
		return true, nil
	}
	return true, err
}

// Drop recenters the chart on h when it is dropped on the center handle or
// the root. It reports whether the drop was accepted.
func (c *Controller) Drop(p curve.Point, h genealogy.Handle) (bool, error) {
	addr := c.chart.HitTest(p, c.w, c.h)
	if h == "" || (addr.Generation != sector.GenTranslate && addr.Generation != 0) {
		return false, nil
	}
	if err := c.actions.Goto(h); err != nil {
		return false, fmt.Errorf("interact: goto %s: %w", h, err)
	}
	return true, nil
}

// AngleDelta is the signed clockwise turn from angle from to angle to, in
// (-π, π].
func AngleDelta(from, to float64) float64 {
	d := math.Mod(to-from, 2*math.Pi)
	switch {
	case d > math.Pi:
		d -= 2 * math.Pi
	case d <= -math.Pi:
		d += 2 * math.Pi
	}
	return d
}
