package tui

import (
	"math"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"honnef.co/go/curve"

	"github.com/papapumpkin/fanchart/internal/interact"
	"github.com/papapumpkin/fanchart/internal/sector"
	"github.com/papapumpkin/fanchart/internal/telemetry"
)

// Rotation steps in radians.
const (
	keyRotateStep   = math.Pi / 12
	wheelRotateStep = math.Pi / 36
)

// Model is the root bubbletea model of the chart viewer.
type Model struct {
	s       *session
	ctl     *interact.Controller
	keys    KeyMap
	canvas  Canvas
	changes <-chan struct{}

	Width  int
	Height int

	// View at the start of the current drag, for the telemetry record.
	dragRotation float64
	dragOffset   curve.Vec2
}

func newModel(s *session, changes <-chan struct{}) Model {
	w, h := s.chart.Size()
	return Model{
		s:       s,
		ctl:     interact.New(s.chart, s, w, h),
		keys:    DefaultKeyMap(),
		changes: changes,
	}
}

// Init starts listening for database changes.
func (m Model) Init() tea.Cmd {
	return waitForChange(m.changes)
}

func waitForChange(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return MsgDBChanged{}
	}
}

// layout fits the chart canvas into the terminal below the status bar.
func (m *Model) layout() {
	w, h := m.s.chart.Size()
	m.canvas = NewCanvas(m.Width, m.Height-chromeRows, w, h)
	m.ctl.SetCanvas(w, h)
}

// Update handles terminal events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.layout()
		return m, nil
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case MsgDBChanged:
		if err := m.s.reset(); err != nil {
			m.s.setError(err)
		} else {
			m.s.setStatus("database reloaded")
			m.layout()
		}
		return m, waitForChange(m.changes)
	case MsgStatus:
		m.s.status, m.s.failed = msg.Msg, msg.Err
		return m, nil
	}
	if m.s.editor != nil {
		return m, m.s.editor.Update(msg)
	}
	return m, nil
}

func pointerButton(b tea.MouseButton) (interact.Button, bool) {
	switch b {
	case tea.MouseButtonLeft:
		return interact.Primary, true
	case tea.MouseButtonMiddle:
		return interact.Middle, true
	case tea.MouseButtonRight:
		return interact.Secondary, true
	}
	return 0, false
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.s.menu != nil || m.s.editor != nil || m.Width == 0 {
		return
	}
	p := m.canvas.Point(msg.X, msg.Y-1)
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.rotate(-wheelRotateStep)
			return
		case tea.MouseButtonWheelDown:
			m.rotate(wheelRotateStep)
			return
		}
		b, ok := pointerButton(msg.Button)
		if !ok {
			return
		}
		m.s.status = ""
		m.dragRotation, m.dragOffset = m.s.chart.Rotation(), m.s.chart.Offset()
		m.ctl.PointerDown(p, b)
	case tea.MouseActionMotion:
		m.ctl.PointerMove(p)
	case tea.MouseActionRelease:
		prev := m.ctl.State()
		if err := m.ctl.PointerUp(p); err != nil {
			m.s.setError(err)
		}
		switch prev {
		case interact.Rotating:
			m.s.record(telemetry.KindRotated, sector.Address{}, map[string]float64{
				"delta": m.s.chart.Rotation() - m.dragRotation,
			})
		case interact.Translating:
			d := m.s.chart.Offset().Sub(m.dragOffset)
			m.s.record(telemetry.KindTranslated, sector.Address{}, map[string]float64{"dx": d.X, "dy": d.Y})
		}
	}
}

func (m *Model) rotate(delta float64) {
	m.s.chart.Rotate(delta)
	m.s.record(telemetry.KindRotated, sector.Address{}, map[string]float64{"delta": delta})
}

// hovered is the populated sector under the pointer.
func (m Model) hovered() (sector.Address, bool) {
	addr, ok := m.ctl.Hover()
	if !ok || m.s.chart.PersonAt(addr) == nil {
		return addr, false
	}
	return addr, true
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.s.editor != nil:
		return m, m.handleEditorKey(msg)
	case m.s.menu != nil:
		return m, m.handleMenuKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.EditPerson), key.Matches(msg, m.keys.EditFamily):
		if _, err := m.ctl.Key(msg.Runes[0]); err != nil {
			m.s.setError(err)
		}
	case key.Matches(msg, m.keys.Menu):
		if addr, ok := m.hovered(); ok {
			m.s.ContextMenu(addr)
		}
	case key.Matches(msg, m.keys.Copy):
		if addr, ok := m.hovered(); ok {
			if err := m.s.copyPerson(addr); err != nil {
				m.s.setError(err)
			}
		}
	case key.Matches(msg, m.keys.RotateLeft):
		m.rotate(-keyRotateStep)
	case key.Matches(msg, m.keys.RotateRight):
		m.rotate(keyRotateStep)
	case key.Matches(msg, m.keys.ResetView):
		m.s.chart.ResetView()
	case key.Matches(msg, m.keys.Home):
		if err := m.s.Back(); err != nil {
			m.s.setError(err)
		}
		m.layout()
	}
	return m, nil
}

func (m *Model) handleEditorKey(msg tea.KeyMsg) tea.Cmd {
	e := m.s.editor
	switch {
	case key.Matches(msg, m.keys.Back):
		m.s.editor = nil
		return nil
	case key.Matches(msg, m.keys.Tab):
		e.Next()
		return nil
	case key.Matches(msg, m.keys.Enter):
		if err := m.s.commit(); err != nil {
			m.s.setError(err)
			return nil
		}
		m.s.setStatus("saved")
		m.layout()
		return nil
	}
	return e.Update(msg)
}

func (m *Model) handleMenuKey(msg tea.KeyMsg) tea.Cmd {
	mn := m.s.menu
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
		m.s.menu = nil
	case key.Matches(msg, m.keys.Up):
		mn.Move(-1)
	case key.Matches(msg, m.keys.Down):
		mn.Move(1)
	case key.Matches(msg, m.keys.Enter):
		m.s.menu = nil
		if err := m.choose(mn.Selected(), mn.Addr); err != nil {
			m.s.setError(err)
		}
		m.layout()
	}
	return nil
}

// choose runs a menu action on the person at addr.
func (m *Model) choose(a menuAction, addr sector.Address) error {
	p := m.s.chart.PersonAt(addr)
	if p == nil {
		return nil
	}
	switch a {
	case actionMakeRoot:
		return m.s.Goto(p.Handle)
	case actionEditPerson:
		return m.s.EditPerson(addr)
	case actionAddChild:
		return m.s.addChildOf(*p)
	case actionAddPartner:
		if m.s.writer == nil {
			return ErrReadOnly
		}
		m.s.editor = newPartnerEditor(*p)
	case actionAddParents:
		return m.s.addParents(addr)
	case actionCopyName:
		return m.s.copyPerson(addr)
	}
	return nil
}

// View renders the status bar, the chart or an overlay, and the footer.
func (m Model) View() string {
	if m.Width < MinWidth || m.Height < MinHeight {
		return styleDim.Render("terminal too small")
	}
	body := m.body()
	return lipgloss.JoinVertical(lipgloss.Left, m.statusBar().View(), body, m.footer().View())
}

func (m Model) body() string {
	rows := m.Height - chromeRows
	switch {
	case m.s.editor != nil:
		return lipgloss.Place(m.Width, rows, lipgloss.Center, lipgloss.Center, m.s.editor.View())
	case m.s.menu != nil:
		return lipgloss.Place(m.Width, rows, lipgloss.Center, lipgloss.Center, m.s.menu.View())
	}
	addr, ok := m.hovered()
	return m.canvas.Render(m.s.sampler(addr, ok))
}

func (m Model) statusBar() StatusBar {
	v := m.s.chart.Variant()
	sb := StatusBar{
		Root:        v.Root().DisplayName,
		Generations: v.Generations(),
		Status:      m.s.status,
		Failed:      m.s.failed,
		ReadOnly:    m.s.writer == nil,
		Width:       m.Width,
	}
	if sb.Root == "" {
		sb.Root = "(unknown root)"
	}
	for _, slot := range v.People() {
		if slot.Known() {
			sb.People++
		}
	}
	for _, slot := range v.InnerPeople() {
		if slot.Known() {
			sb.People++
		}
	}
	if addr, ok := m.hovered(); ok {
		sb.Hover = v.Slot(addr).DisplayName
	}
	return sb
}

func (m Model) footer() Footer {
	bindings := m.keys.footerBindings()
	switch {
	case m.s.editor != nil:
		bindings = []key.Binding{m.keys.Enter, m.keys.Tab, m.keys.Back}
	case m.s.menu != nil:
		bindings = []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter, m.keys.Back}
	}
	return Footer{Width: m.Width, Bindings: bindings}
}
