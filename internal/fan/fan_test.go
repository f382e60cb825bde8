package fan

import (
	"context"
	"errors"
	"math"
	"testing"

	"honnef.co/go/curve"

	"github.com/papapumpkin/fanchart/internal/genealogy"
	"github.com/papapumpkin/fanchart/internal/sector"
)

// fixture: root with two children, both parents, and three grandparents;
// the paternal grandfather is unknown.
func fixture(t *testing.T) *genealogy.MemoryDB {
	t.Helper()
	db := genealogy.NewMemoryDB()
	put := func(h genealogy.Handle, g genealogy.Gender, fams []genealogy.Handle, parents ...genealogy.Handle) {
		db.PutPerson(genealogy.Person{Handle: h, Gender: g, Name: genealogy.Name{Given: string(h), Surname: "Berg"}, Families: fams, ParentFamilies: parents})
	}
	put("root", genealogy.GenderFemale, []genealogy.Handle{"f0"}, "f1")
	put("dad", genealogy.GenderMale, []genealogy.Handle{"f1"}, "f2")
	put("mom", genealogy.GenderFemale, []genealogy.Handle{"f1"}, "f3")
	put("gma1", genealogy.GenderFemale, []genealogy.Handle{"f2"})
	put("gpa2", genealogy.GenderMale, []genealogy.Handle{"f3"})
	put("gma2", genealogy.GenderFemale, []genealogy.Handle{"f3"})
	put("kid1", genealogy.GenderMale, nil, "f0")
	put("kid2", genealogy.GenderFemale, nil, "f0")
	db.PutFamily(genealogy.Family{Handle: "f0", Mother: "root", Children: []genealogy.Handle{"kid1", "kid2"}})
	db.PutFamily(genealogy.Family{Handle: "f1", Father: "dad", Mother: "mom", Children: []genealogy.Handle{"root"}})
	db.PutFamily(genealogy.Family{Handle: "f2", Mother: "gma1", Children: []genealogy.Handle{"dad"}})
	db.PutFamily(genealogy.Family{Handle: "f3", Father: "gpa2", Mother: "gma2", Children: []genealogy.Handle{"mom"}})
	return db
}

func newChart(t *testing.T, db genealogy.Database, form sector.Form) *Chart {
	t.Helper()
	c := NewChart(db, genealogy.Displayer{})
	o := DefaultOptions()
	o.Root = "root"
	o.Generations = 3
	o.Form = form
	o.Now = 2025
	c.SetValues(o)
	if err := c.Reset(context.Background()); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	return c
}

func TestRadiusForGeneration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		g       int
		in, out float64
	}{
		{0, 22, 60},
		{1, 60, 110},
		{2, 110, 160},
		{5, 260, 310},
	}
	for _, tt := range tests {
		in, out := RadiusForGeneration(tt.g)
		if in != tt.in || out != tt.out {
			t.Errorf("RadiusForGeneration(%d) = %g, %g; want %g, %g", tt.g, in, out, tt.in, tt.out)
		}
	}
}

func TestCanvasGeometry(t *testing.T) {
	t.Parallel()
	tests := []struct {
		form   sector.Form
		w, h   float64
		center curve.Point
	}{
		{sector.FormCircle, 340, 340, curve.Pt(170, 170)},
		{sector.FormHalfCircle, 340, 234, curve.Pt(170, 170)},
		{sector.FormQuadrant, 234, 234, curve.Pt(64, 170)},
	}
	for _, tt := range tests {
		t.Run(tt.form.String(), func(t *testing.T) {
			t.Parallel()
			w, h := CanvasSize(tt.form, 170)
			if w != tt.w || h != tt.h {
				t.Errorf("CanvasSize = %gx%g, want %gx%g", w, h, tt.w, tt.h)
			}
			if got := CenterFor(tt.form, w, h); got != tt.center {
				t.Errorf("CenterFor = %v, want %v", got, tt.center)
			}
		})
	}
}

func TestHalfDistTracksDeepestGeneration(t *testing.T) {
	t.Parallel()
	c := newChart(t, fixture(t), sector.FormCircle)
	if got := c.Variant().HalfDist(); got != 2*PixelsPerGeneration+Center+BorderEdgeWidth {
		t.Errorf("HalfDist = %g", got)
	}
	if w, h := c.Size(); w != 340 || h != 340 {
		t.Errorf("Size = %gx%g, want 340x340", w, h)
	}
}

func TestHitTestMatchesLayout(t *testing.T) {
	t.Parallel()
	views := []struct {
		rotation float64
		offset   curve.Vec2
	}{
		{DefaultRotation, curve.Vec2{}},
		{0, curve.Vec(15, -40)},
		{1.3, curve.Vec(-7, 3)},
		{-2.2, curve.Vec(100, 100)},
		{7 * math.Pi, curve.Vec2{}},
	}
	for _, form := range []sector.Form{sector.FormCircle, sector.FormHalfCircle, sector.FormQuadrant} {
		for _, expand := range []bool{false, true} {
			c := newChart(t, fixture(t), form)
			if expand {
				if err := c.ChangeSlice(1, 1); err != nil {
					t.Fatalf("ChangeSlice: %v", err)
				}
			}
			w, h := c.Size()
			for _, vw := range views {
				c.ResetView()
				c.Rotate(vw.rotation - DefaultRotation)
				c.Translate(vw.offset)
				v := c.View(w, h)
				for addr := range c.Variant().People() {
					if addr.Generation == 0 {
						continue
					}
					s, _ := c.Variant().Sector(addr.Generation, addr.Index)
					if !s.Visible() {
						continue
					}
					in, out := RadiusForGeneration(addr.Generation)
					p := v.PointAt((in+out)/2, s.Mid())
					if got := c.HitTest(p, w, h); got != addr {
						t.Errorf("%s expand=%v rot=%g: HitTest(mid of %s) = %s", form, expand, vw.rotation, addr, got)
					}
				}

				if got := c.HitTest(v.Center, w, h); got.Generation != sector.GenTranslate || !got.None() {
					t.Errorf("%s rot=%g: HitTest(center) = %s, want the drag handle", form, vw.rotation, got)
				}
			}
		}
	}
}

func TestHitTestBands(t *testing.T) {
	t.Parallel()
	c := newChart(t, fixture(t), sector.FormCircle)
	c.Rotate(0.7)
	w, h := c.Size()
	v := c.View(w, h)
	unrotated := func(r, a float64) curve.Point {
		return v.Center.Translate(curve.VecFromAngle(a).Mul(r))
	}
	unknownGpa, _ := c.Variant().Sector(2, 0)
	in2, out2 := RadiusForGeneration(2)

	tests := []struct {
		name string
		p    curve.Point
		want sector.Address
	}{
		{"first child", unrotated(TranslatePx+6, math.Pi+0.3), sector.Address{Generation: sector.GenChildren, Index: 0}},
		{"second child below the axis", unrotated(TranslatePx+6, math.Pi/2+math.Pi+0.1), sector.Address{Generation: sector.GenChildren, Index: 1}},
		{"past the last child", unrotated(TranslatePx+6, 0.2), sector.Address{Generation: sector.GenChildren, Index: -1}},
		{"root", unrotated(40, 1), sector.Address{Generation: 0, Index: 0}},
		{"unknown grandfather", v.PointAt((in2+out2)/2, unknownGpa.Mid()), sector.Address{Generation: 2, Index: -1}},
		{"outside", unrotated(out2+5, 0), sector.Address{Generation: 3, Index: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := c.HitTest(tt.p, w, h); got != tt.want {
				t.Errorf("HitTest = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestUnknownGrandfatherScenario(t *testing.T) {
	t.Parallel()
	c := newChart(t, fixture(t), sector.FormCircle)
	if err := c.ChangeSlice(2, 1); !errors.Is(err, sector.ErrEmptySibling) {
		t.Errorf("expanding next to the unknown slot: %v, want ErrEmptySibling", err)
	}
	s, _ := c.Variant().Sector(2, 0)
	if s.State != sector.Normal || math.Abs(s.Width()-math.Pi/2) > 1e-12 {
		t.Errorf("unknown slot sector = %+v, want a normal quarter", s)
	}
	if c.PersonAt(sector.Address{Generation: 2, Index: 0}) != nil {
		t.Error("PersonAt(2/0) should be nil")
	}
	if p := c.PersonAt(sector.Address{Generation: 2, Index: 1}); p == nil || p.Handle != "gma1" {
		t.Errorf("PersonAt(2/1) = %+v, want gma1", p)
	}
}

func TestFamilyAt(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newChart(t, fixture(t), sector.FormCircle)
	tests := []struct {
		addr sector.Address
		want genealogy.Handle
	}{
		{sector.Address{Generation: 0, Index: 0}, "f0"},
		{sector.Address{Generation: 1, Index: 0}, "f1"},
		{sector.Address{Generation: 1, Index: 1}, "f1"},
		{sector.Address{Generation: 2, Index: 1}, "f2"},
		{sector.Address{Generation: 2, Index: 3}, "f3"},
		{sector.Address{Generation: sector.GenChildren, Index: 1}, "f0"},
		{sector.Address{Generation: 2, Index: 0}, ""},
		{sector.Address{Generation: 2, Index: -1}, ""},
	}
	for _, tt := range tests {
		fam, err := c.FamilyAt(ctx, tt.addr)
		if err != nil {
			t.Fatalf("FamilyAt(%s): %v", tt.addr, err)
		}
		var got genealogy.Handle
		if fam != nil {
			got = fam.Handle
		}
		if got != tt.want {
			t.Errorf("FamilyAt(%s) = %q, want %q", tt.addr, got, tt.want)
		}
	}
}

type brokenDB struct{ *genealogy.MemoryDB }

var errBroken = errors.New("disk on fire")

func (brokenDB) Person(context.Context, genealogy.Handle) (*genealogy.Person, error) {
	return nil, errBroken
}

func TestResetKeepsStateOnError(t *testing.T) {
	t.Parallel()
	db := fixture(t)
	c := newChart(t, db, sector.FormCircle)
	before := c.Variant()

	broken := NewChart(brokenDB{db}, genealogy.Displayer{})
	broken.SetValues(c.Options())
	if err := broken.Reset(context.Background()); !errors.Is(err, errBroken) {
		t.Fatalf("Reset error = %v, want errBroken", err)
	}
	if broken.Variant().Root().Known() {
		t.Error("failed Reset replaced the empty chart")
	}
	if c.Variant() != before {
		t.Error("unrelated chart changed")
	}
}
