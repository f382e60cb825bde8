package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the viewer.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Enter       key.Binding
	Back        key.Binding
	Tab         key.Binding
	Quit        key.Binding
	EditPerson  key.Binding
	EditFamily  key.Binding
	Menu        key.Binding
	Copy        key.Binding
	RotateLeft  key.Binding
	RotateRight key.Binding
	ResetView   key.Binding
	Home        key.Binding
}

// DefaultKeyMap returns the default keybinding configuration.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "choose"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "next field"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		EditPerson: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit person"),
		),
		EditFamily: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "add child"),
		),
		Menu: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "menu"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy name"),
		),
		RotateLeft: key.NewBinding(
			key.WithKeys("[", "left"),
			key.WithHelp("[", "rotate"),
		),
		RotateRight: key.NewBinding(
			key.WithKeys("]", "right"),
			key.WithHelp("]", "rotate"),
		),
		ResetView: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "reset view"),
		),
		Home: key.NewBinding(
			key.WithKeys("backspace", "h"),
			key.WithHelp("h", "previous root"),
		),
	}
}

// footerBindings are shown in the footer, in order.
func (k KeyMap) footerBindings() []key.Binding {
	return []key.Binding{k.EditPerson, k.EditFamily, k.Menu, k.Copy, k.RotateLeft, k.ResetView, k.Home, k.Quit}
}
