package interact

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"honnef.co/go/curve"

	"github.com/papapumpkin/fanchart/internal/fan"
	"github.com/papapumpkin/fanchart/internal/genealogy"
	"github.com/papapumpkin/fanchart/internal/sector"
)

type recorder struct {
	chart   *fan.Chart
	toggled []sector.Address
	menus   []sector.Address
	edits   []string
	gotos   []genealogy.Handle
	redraws []bool
	editErr error
}

func (r *recorder) Toggle(addr sector.Address) error {
	r.toggled = append(r.toggled, addr)
	return r.chart.ChangeSlice(addr.Generation, addr.Index)
}

func (r *recorder) ContextMenu(addr sector.Address) { r.menus = append(r.menus, addr) }

func (r *recorder) EditPerson(addr sector.Address) error {
	r.edits = append(r.edits, "person "+addr.String())
	return r.editErr
}

func (r *recorder) EditFamily(addr sector.Address) error {
	r.edits = append(r.edits, "family "+addr.String())
	return r.editErr
}

func (r *recorder) Goto(h genealogy.Handle) error {
	r.gotos = append(r.gotos, h)
	return nil
}

func (r *recorder) Redraw(dragging bool) { r.redraws = append(r.redraws, dragging) }

func setup(t *testing.T) (*Controller, *recorder, *fan.Chart) {
	t.Helper()
	db := genealogy.NewMemoryDB()
	db.PutPerson(genealogy.Person{Handle: "root", Name: genealogy.Name{Given: "Ada"}, Families: []genealogy.Handle{"f0"}, ParentFamilies: []genealogy.Handle{"f1"}})
	db.PutPerson(genealogy.Person{Handle: "dad", Gender: genealogy.GenderMale, Families: []genealogy.Handle{"f1"}})
	db.PutPerson(genealogy.Person{Handle: "mom", Gender: genealogy.GenderFemale, Families: []genealogy.Handle{"f1"}})
	db.PutPerson(genealogy.Person{Handle: "kid", ParentFamilies: []genealogy.Handle{"f0"}})
	db.PutFamily(genealogy.Family{Handle: "f0", Mother: "root", Children: []genealogy.Handle{"kid"}})
	db.PutFamily(genealogy.Family{Handle: "f1", Father: "dad", Mother: "mom", Children: []genealogy.Handle{"root"}})

	c := fan.NewChart(db, genealogy.Displayer{})
	o := fan.DefaultOptions()
	o.Root = "root"
	o.Generations = 3
	c.SetValues(o)
	if err := c.Reset(context.Background()); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	rec := &recorder{chart: c}
	w, h := c.Size()
	return New(c, rec, w, h), rec, c
}

// at returns the canvas point at radius r and chart angle a.
func at(c *fan.Chart, ctl *Controller, r, a float64) curve.Point {
	return c.View(ctl.w, ctl.h).PointAt(r, a)
}

// unrotated returns the canvas point at radius r and screen angle a.
func unrotated(c *fan.Chart, ctl *Controller, r, a float64) curve.Point {
	return c.View(ctl.w, ctl.h).Center.Translate(curve.VecFromAngle(a).Mul(r))
}

func sectors(c *fan.Chart) [][]sector.Sector {
	var out [][]sector.Sector
	for g := range c.Variant().Generations() {
		var ring []sector.Sector
		for i := range 1 << g {
			s, _ := c.Variant().Sector(g, i)
			ring = append(ring, s)
		}
		out = append(out, ring)
	}
	return out
}

func TestDragFromEmptySpaceRotates(t *testing.T) {
	t.Parallel()
	ctl, rec, c := setup(t)
	before := sectors(c)
	rot := c.Rotation()

	deg := math.Pi / 180
	ctl.PointerDown(unrotated(c, ctl, 1000, 10*deg), Primary)
	if ctl.State() != Rotating {
		t.Fatalf("state after press in empty space = %s, want rotating", ctl.State())
	}
	ctl.PointerMove(unrotated(c, ctl, 1000, 40*deg))
	if err := ctl.PointerUp(unrotated(c, ctl, 1000, 40*deg)); err != nil {
		t.Fatal(err)
	}

	if got := c.Rotation() - rot; math.Abs(got-30*deg) > 1e-9 {
		t.Errorf("rotation changed by %g°, want 30°", got/deg)
	}
	if len(rec.toggled) != 0 {
		t.Errorf("drag toggled %v", rec.toggled)
	}
	if diff := cmp.Diff(before, sectors(c)); diff != "" {
		t.Errorf("sectors changed (-before +after):\n%s", diff)
	}
	if want := []bool{true, false}; !cmp.Equal(rec.redraws, want) {
		t.Errorf("redraws = %v, want %v", rec.redraws, want)
	}
}

func TestClickTogglesSector(t *testing.T) {
	t.Parallel()
	ctl, rec, c := setup(t)
	s, _ := c.Variant().Sector(1, 0)
	p := at(c, ctl, 85, s.Mid())

	ctl.PointerDown(p, Primary)
	if ctl.State() != PendingClick {
		t.Fatalf("state = %s, want pending-click", ctl.State())
	}
	if err := ctl.PointerUp(p); err != nil {
		t.Fatalf("PointerUp: %v", err)
	}
	want := []sector.Address{{Generation: 1, Index: 0}}
	if !cmp.Equal(rec.toggled, want) {
		t.Errorf("toggled %v, want %v", rec.toggled, want)
	}
	if s, _ := c.Variant().Sector(1, 0); s.State != sector.Expanded {
		t.Errorf("father sector = %s, want expanded", s.State)
	}
}

func TestClickThenMoveRotatesInstead(t *testing.T) {
	t.Parallel()
	ctl, rec, c := setup(t)
	s, _ := c.Variant().Sector(1, 1)
	ctl.PointerDown(at(c, ctl, 85, s.Mid()), Primary)
	ctl.PointerMove(at(c, ctl, 85, s.Mid()+0.2))
	if ctl.State() != Rotating {
		t.Errorf("state = %s, want rotating", ctl.State())
	}
	if err := ctl.PointerUp(curve.Point{}); err != nil {
		t.Fatal(err)
	}
	if len(rec.toggled) != 0 {
		t.Errorf("toggled %v after a drag", rec.toggled)
	}
}

func TestCenterDragTranslates(t *testing.T) {
	t.Parallel()
	ctl, _, c := setup(t)
	center := c.View(ctl.w, ctl.h).Center
	ctl.PointerDown(center, Primary)
	if ctl.State() != Translating {
		t.Fatalf("state = %s, want translating", ctl.State())
	}
	ctl.PointerMove(center.Translate(curve.Vec(5, 7)))
	ctl.PointerMove(center.Translate(curve.Vec(15, 2)))
	if got := c.Offset(); got != curve.Vec(15, 2) {
		t.Errorf("offset = %v, want (15, 2)", got)
	}
}

func TestSecondaryOpensMenu(t *testing.T) {
	t.Parallel()
	ctl, rec, c := setup(t)
	kid := unrotated(c, ctl, fan.TranslatePx+6, math.Pi+0.3)
	ctl.PointerDown(kid, Secondary)
	want := []sector.Address{{Generation: sector.GenChildren, Index: 0}}
	if !cmp.Equal(rec.menus, want) || ctl.State() != Idle {
		t.Errorf("menus = %v state = %s", rec.menus, ctl.State())
	}
}

func TestOnlyPrimaryDrags(t *testing.T) {
	t.Parallel()
	deg := math.Pi / 180
	for _, b := range []Button{Secondary, Middle} {
		ctl, rec, c := setup(t)
		rot := c.Rotation()
		center := c.View(ctl.w, ctl.h).Center

		ctl.PointerDown(unrotated(c, ctl, 1000, 10*deg), b)
		if ctl.State() != Idle {
			t.Errorf("button %d in empty space: state = %s, want idle", b, ctl.State())
		}
		ctl.PointerMove(unrotated(c, ctl, 1000, 40*deg))
		if err := ctl.PointerUp(unrotated(c, ctl, 1000, 40*deg)); err != nil {
			t.Fatal(err)
		}
		if c.Rotation() != rot {
			t.Errorf("button %d rotated the chart by %g°", b, (c.Rotation()-rot)/deg)
		}

		ctl.PointerDown(center, b)
		if ctl.State() != Idle {
			t.Errorf("button %d on the center: state = %s, want idle", b, ctl.State())
		}
		ctl.PointerMove(center.Translate(curve.Vec(5, 7)))
		if got := c.Offset(); got != (curve.Vec2{}) {
			t.Errorf("button %d moved the chart to %v", b, got)
		}
		if len(rec.menus) != 0 || len(rec.toggled) != 0 {
			t.Errorf("button %d: menus %v toggled %v", b, rec.menus, rec.toggled)
		}
	}
}

func TestKeysEditHovered(t *testing.T) {
	t.Parallel()
	ctl, rec, c := setup(t)
	if used, _ := ctl.Key('e'); used {
		t.Error("key used without a hover")
	}
	s, _ := c.Variant().Sector(1, 1)
	ctl.PointerMove(at(c, ctl, 85, s.Mid()))
	if used, err := ctl.Key('e'); !used || err != nil {
		t.Errorf("Key(e) = %v, %v", used, err)
	}
	rec.editErr = genealogy.ErrEditorActive
	if used, err := ctl.Key('f'); !used || err != nil {
		t.Errorf("Key(f) with an open editor = %v, %v", used, err)
	}
	if used, _ := ctl.Key('x'); used {
		t.Error("unbound key used")
	}
	want := []string{"person 1/1", "family 1/1"}
	if !cmp.Equal(rec.edits, want) {
		t.Errorf("edits = %v, want %v", rec.edits, want)
	}

	rec.editErr = errors.New("boom")
	if _, err := ctl.Key('e'); err == nil {
		t.Error("editor failure swallowed")
	}
}

func TestDrop(t *testing.T) {
	t.Parallel()
	ctl, rec, c := setup(t)
	if ok, err := ctl.Drop(c.View(ctl.w, ctl.h).Center, "mom"); !ok || err != nil {
		t.Errorf("drop on center = %v, %v", ok, err)
	}
	if ok, _ := ctl.Drop(unrotated(c, ctl, 40, 0), "dad"); !ok {
		t.Error("drop on root refused")
	}
	if ok, _ := ctl.Drop(at(c, ctl, 85, 1), "kid"); ok {
		t.Error("drop on an ancestor accepted")
	}
	if want := []genealogy.Handle{"mom", "dad"}; !cmp.Equal(rec.gotos, want) {
		t.Errorf("gotos = %v, want %v", rec.gotos, want)
	}
}

func TestAngleDelta(t *testing.T) {
	t.Parallel()
	tests := []struct{ from, to, want float64 }{
		{0, 0.5, 0.5},
		{0.5, 0, -0.5},
		{3, -3, 2*math.Pi - 6},
		{-3, 3, 6 - 2*math.Pi},
		{0, math.Pi, math.Pi},
		{math.Pi, 0, math.Pi},
	}
	for _, tt := range tests {
		if got := AngleDelta(tt.from, tt.to); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("AngleDelta(%g, %g) = %g, want %g", tt.from, tt.to, got, tt.want)
		}
	}
}
