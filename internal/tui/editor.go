package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/fanchart/internal/genealogy"
)

type editKind int

const (
	editPerson editKind = iota
	editChild
	editPartner
)

// editor is a two-field name form: given names and surname.
type editor struct {
	kind   editKind
	title  string
	person genealogy.Person
	family genealogy.Handle
	father *genealogy.Person
	inputs [2]textinput.Model
	focus  int
}

func newInput(prompt, value string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.CharLimit = 128
	ti.SetValue(value)
	return ti
}

func newEditor(kind editKind, title, given, surname string) *editor {
	e := &editor{kind: kind, title: title}
	e.inputs[0] = newInput("given   ▸ ", given)
	e.inputs[1] = newInput("surname ▸ ", surname)
	e.inputs[0].Focus()
	return e
}

// newPersonEditor edits the name of p.
func newPersonEditor(p genealogy.Person) *editor {
	e := newEditor(editPerson, "Edit person", p.Name.Given, p.Name.Surname)
	e.person = p
	return e
}

// newChildEditor adds a child to family. The surname is preset from the
// father.
func newChildEditor(family genealogy.Handle, father *genealogy.Person) *editor {
	preset := genealogy.PresetChildName(father, "")
	e := newEditor(editChild, "Add child", "", preset.Surname)
	e.family = family
	e.father = father
	return e
}

// newPartnerEditor adds a partner to p.
func newPartnerEditor(p genealogy.Person) *editor {
	e := newEditor(editPartner, "Add partner", "", "")
	e.person = p
	return e
}

// value is the trimmed content of field i.
func (e *editor) value(i int) string { return strings.TrimSpace(e.inputs[i].Value()) }

// Next moves the focus to the other field.
func (e *editor) Next() {
	e.inputs[e.focus].Blur()
	e.focus = (e.focus + 1) % len(e.inputs)
	e.inputs[e.focus].Focus()
}

// Update feeds a message to the focused field.
func (e *editor) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	e.inputs[e.focus], cmd = e.inputs[e.focus].Update(msg)
	return cmd
}

// View renders the form box.
func (e *editor) View() string {
	var b strings.Builder
	b.WriteString(styleOverlayTitle.Render(e.title))
	b.WriteString("\n\n")
	b.WriteString(e.inputs[0].View())
	b.WriteString("\n")
	b.WriteString(e.inputs[1].View())
	b.WriteString("\n\n")
	b.WriteString(styleDim.Render("enter save · tab next field · esc cancel"))
	return styleOverlay.Render(b.String())
}
