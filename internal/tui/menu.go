package tui

import (
	"strings"

	"github.com/papapumpkin/fanchart/internal/sector"
)

// menuAction is one entry of the person menu.
type menuAction int

const (
	actionMakeRoot menuAction = iota
	actionEditPerson
	actionAddChild
	actionAddPartner
	actionAddParents
	actionCopyName
)

var menuLabels = map[menuAction]string{
	actionMakeRoot:   "Make root",
	actionEditPerson: "Edit person",
	actionAddChild:   "Add child",
	actionAddPartner: "Add partner",
	actionAddParents: "Add parents",
	actionCopyName:   "Copy name",
}

// menu is the context menu of one person.
type menu struct {
	Addr   sector.Address
	Title  string
	Items  []menuAction
	Cursor int
}

// newMenu lists the actions for the person at addr. Editing entries are left
// out when the database cannot be written.
func newMenu(addr sector.Address, title string, writable bool) *menu {
	items := []menuAction{actionMakeRoot}
	if writable {
		items = append(items, actionEditPerson, actionAddChild, actionAddPartner, actionAddParents)
	}
	items = append(items, actionCopyName)
	return &menu{Addr: addr, Title: title, Items: items}
}

// Move shifts the cursor by delta, wrapping at both ends.
func (m *menu) Move(delta int) {
	n := len(m.Items)
	m.Cursor = ((m.Cursor+delta)%n + n) % n
}

// Selected is the action under the cursor.
func (m *menu) Selected() menuAction { return m.Items[m.Cursor] }

// View renders the menu box.
func (m menu) View() string {
	var b strings.Builder
	b.WriteString(styleOverlayTitle.Render(TruncateWithEllipsis(m.Title, 40)))
	b.WriteString("\n")
	b.WriteString(styleDim.Render(m.Addr.String()))
	b.WriteString("\n\n")
	for i, item := range m.Items {
		style := styleItemNormal
		if i == m.Cursor {
			style = styleItemSelected
		}
		b.WriteString(style.Render(menuLabels[item]))
		if i < len(m.Items)-1 {
			b.WriteString("\n")
		}
	}
	return styleOverlay.Render(b.String())
}
