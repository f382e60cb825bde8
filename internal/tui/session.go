package tui

import (
	"context"
	"errors"
	"fmt"
	"image/color"

	"github.com/atotto/clipboard"
	"github.com/lucasb-eyer/go-colorful"
	"honnef.co/go/curve"

	"github.com/papapumpkin/fanchart/internal/fan"
	"github.com/papapumpkin/fanchart/internal/genealogy"
	"github.com/papapumpkin/fanchart/internal/interact"
	"github.com/papapumpkin/fanchart/internal/pedigree"
	"github.com/papapumpkin/fanchart/internal/sector"
	"github.com/papapumpkin/fanchart/internal/telemetry"
	"github.com/papapumpkin/fanchart/internal/ui"
)

var (
	// ErrReadOnly is returned by editing actions when the viewer has no writer.
	ErrReadOnly = errors.New("tui: database is read-only")
	// ErrNoFamily is returned when a child is added to a person without a
	// partner family.
	ErrNoFamily = errors.New("tui: person has no family")
)

// session is the mutable state shared by the model and the interaction
// controller. The model is copied by bubbletea on every update; the session
// is not.
type session struct {
	ctx    context.Context
	chart  *fan.Chart
	db     genealogy.Database
	writer genealogy.Writer
	events *telemetry.Emitter
	copy   func(string) error

	menu     *menu
	editor   *editor
	history  []genealogy.Handle
	dragging bool
	status   string
	failed   bool
}

var _ interact.Actions = (*session)(nil)

func newSession(ctx context.Context, chart *fan.Chart, db genealogy.Database, writer genealogy.Writer, events *telemetry.Emitter) *session {
	return &session{ctx: ctx, chart: chart, db: db, writer: writer, events: events, copy: clipboard.WriteAll}
}

func (s *session) root() string { return string(s.chart.Options().Root) }

func (s *session) record(kind string, addr sector.Address, data any) {
	a := ""
	if kind != telemetry.KindReset {
		a = addr.String()
	}
	_ = s.events.Record(kind, s.root(), a, data)
}

func (s *session) setStatus(msg string) { s.status, s.failed = msg, false }

func (s *session) setError(err error) { s.status, s.failed = err.Error(), true }

// reset rebuilds the chart and records it.
func (s *session) reset() error {
	if err := s.chart.Reset(s.ctx); err != nil {
		return err
	}
	s.record(telemetry.KindReset, sector.Address{}, map[string]int{"generations": s.chart.Variant().Generations()})
	return nil
}

// Toggle expands or collapses a sector. The children ring and the root are
// not toggleable; clicking them is not an error.
func (s *session) Toggle(addr sector.Address) error {
	if addr.Generation <= 0 {
		return nil
	}
	if err := s.chart.ChangeSlice(addr.Generation, addr.Index); err != nil {
		if errors.Is(err, sector.ErrNotToggleable) {
			return nil
		}
		return err
	}
	sec, _ := s.chart.Variant().Sector(addr.Generation, addr.Index)
	s.record(telemetry.KindSliceToggled, addr, map[string]string{"state": sec.State.String()})
	return nil
}

// ContextMenu opens the person menu.
func (s *session) ContextMenu(addr sector.Address) {
	p := s.chart.PersonAt(addr)
	if p == nil {
		return
	}
	s.menu = newMenu(addr, s.chart.Names().Display(p), s.writer != nil)
	s.record(telemetry.KindContextMenu, addr, nil)
}

// EditPerson opens the name editor for the person at addr.
func (s *session) EditPerson(addr sector.Address) error {
	if s.editor != nil {
		s.record(telemetry.KindEditSkipped, addr, nil)
		return genealogy.ErrEditorActive
	}
	if s.writer == nil {
		return ErrReadOnly
	}
	p := s.chart.PersonAt(addr)
	if p == nil {
		return nil
	}
	s.editor = newPersonEditor(*p)
	return nil
}

// EditFamily opens the add-child editor for the family that shows the
// person at addr.
func (s *session) EditFamily(addr sector.Address) error {
	if s.editor != nil {
		s.record(telemetry.KindEditSkipped, addr, nil)
		return genealogy.ErrEditorActive
	}
	if s.writer == nil {
		return ErrReadOnly
	}
	fam, err := s.chart.FamilyAt(s.ctx, addr)
	if err != nil {
		return err
	}
	if fam == nil {
		return ErrNoFamily
	}
	var father *genealogy.Person
	if fam.Father != "" {
		father, err = s.db.Person(s.ctx, fam.Father)
		if err != nil {
			return err
		}
	}
	s.editor = newChildEditor(fam.Handle, father)
	return nil
}

// Goto makes h the root, remembering the previous root.
func (s *session) Goto(h genealogy.Handle) error {
	o := s.chart.Options()
	if h == o.Root {
		return nil
	}
	prev := o.Root
	o.Root = h
	s.chart.SetValues(o)
	if err := s.reset(); err != nil {
		o.Root = prev
		s.chart.SetValues(o)
		return err
	}
	s.chart.ResetView()
	s.history = append(s.history, prev)
	return nil
}

// Back returns to the previous root.
func (s *session) Back() error {
	if len(s.history) == 0 {
		return nil
	}
	prev := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	o := s.chart.Options()
	o.Root = prev
	s.chart.SetValues(o)
	s.chart.ResetView()
	return s.reset()
}

// Redraw notes whether a drag is running; the model repaints after every
// message anyway.
func (s *session) Redraw(dragging bool) { s.dragging = dragging }

// copyPerson puts the name and years of the person at addr on the clipboard.
func (s *session) copyPerson(addr sector.Address) error {
	p := s.chart.PersonAt(addr)
	if p == nil {
		return nil
	}
	text := s.chart.Names().Display(p)
	if span := ui.Lifespan(p); span != "" {
		text += " " + span
	}
	if err := s.copy(text); err != nil {
		return fmt.Errorf("tui: copy to clipboard: %w", err)
	}
	s.setStatus("copied " + text)
	return nil
}

// addChildOf opens the add-child editor for the first family of p.
func (s *session) addChildOf(p genealogy.Person) error {
	if s.writer == nil {
		return ErrReadOnly
	}
	if len(p.Families) == 0 {
		return ErrNoFamily
	}
	fam, err := s.db.Family(s.ctx, p.Families[0])
	if err != nil {
		return err
	}
	if fam == nil {
		return ErrNoFamily
	}
	var father *genealogy.Person
	switch fam.Father {
	case "":
	case p.Handle:
		father = &p
	default:
		if father, err = s.db.Person(s.ctx, fam.Father); err != nil {
			return err
		}
	}
	s.editor = newChildEditor(fam.Handle, father)
	return nil
}

// addParents gives the person at addr a new, unnamed pair of parents. The
// father takes the person's surname.
func (s *session) addParents(addr sector.Address) error {
	if s.writer == nil {
		return ErrReadOnly
	}
	p := s.chart.PersonAt(addr)
	if p == nil {
		return nil
	}
	father := &genealogy.Person{Gender: genealogy.GenderMale, Name: genealogy.Name{Surname: p.Name.Surname}}
	mother := &genealogy.Person{Gender: genealogy.GenderFemale}
	if _, err := s.writer.AddParents(s.ctx, p.Handle, father, mother); err != nil {
		return err
	}
	return s.reset()
}

// commit applies the open editor through the writer and closes it.
func (s *session) commit() error {
	e := s.editor
	if e == nil {
		return nil
	}
	var err error
	switch e.kind {
	case editPerson:
		p := e.person
		p.Name.Given, p.Name.Surname = e.value(0), e.value(1)
		err = s.writer.UpdatePerson(s.ctx, p)
	case editChild:
		child := genealogy.Person{Name: genealogy.PresetChildName(e.father, e.value(0))}
		if sn := e.value(1); sn != "" {
			child.Name.Surname = sn
		}
		_, err = s.writer.AddChild(s.ctx, e.family, child)
	case editPartner:
		partner := genealogy.Person{Name: genealogy.Name{Given: e.value(0), Surname: e.value(1)}}
		_, err = s.writer.AddPartner(s.ctx, e.person.Handle, partner)
	}
	if err != nil {
		return err
	}
	s.editor = nil
	return s.reset()
}

// sampler colours chart points for the terminal canvas. hover is lightened.
func (s *session) sampler(hover sector.Address, hovered bool) Sampler {
	v := s.chart.Variant()
	pal := s.chart.Palette()
	w, h := s.chart.Size()
	white := colorful.Color{R: 1, G: 1, B: 1}
	return func(p curve.Point) color.Color {
		addr := s.chart.HitTest(p, w, h)
		switch {
		case addr.Generation == sector.GenTranslate:
			if root := v.Root(); root.Known() && root.HasChildren == pedigree.Yes {
				return color.Black
			}
			return color.Gray{Y: 0x80}
		case addr.None():
			return nil
		}
		slot := v.Slot(addr)
		if !slot.Known() {
			return nil
		}
		g := addr.Generation
		if g == sector.GenChildren {
			g = -1
		}
		fill := pal.Box(slot, g)
		if hovered && addr == hover && !s.dragging {
			fill.Color = fill.Color.BlendRgb(white, 0.4)
		}
		return fill.NRGBA()
	}
}
