package tui

import (
	"image/color"
	"strings"
	"testing"

	"honnef.co/go/curve"
)

func TestCanvasMapping(t *testing.T) {
	t.Parallel()
	c := NewCanvas(40, 20, 400, 400)
	if c.Px != 10 {
		t.Fatalf("Px = %v, want 10", c.Px)
	}
	if got := c.Point(20, 10); got != curve.Pt(205, 210) {
		t.Errorf("Point(20, 10) = %v", got)
	}
	for _, cell := range [][2]int{{0, 0}, {39, 19}, {7, 13}} {
		col, row := c.Cell(c.Point(cell[0], cell[1]))
		if col != cell[0] || row != cell[1] {
			t.Errorf("Cell(Point(%v)) = %d,%d", cell, col, row)
		}
	}

	// A wide chart in a tall terminal is centered vertically.
	wide := NewCanvas(40, 40, 400, 200)
	if top := wide.Sample(0, 0, 0); top.Y >= 0 {
		t.Errorf("first sample %v should lie above the chart", top)
	}
}

func TestCanvasRender(t *testing.T) {
	t.Parallel()
	c := NewCanvas(8, 4, 80, 80)

	blank := c.Render(func(curve.Point) color.Color { return nil })
	lines := strings.Split(blank, "\n")
	if len(lines) != 4 {
		t.Fatalf("rendered %d lines, want 4", len(lines))
	}
	for _, l := range lines {
		if l != strings.Repeat(" ", 8) {
			t.Errorf("background line = %q", l)
		}
	}

	// Only the upper half of the canvas is painted.
	half := c.Render(func(p curve.Point) color.Color {
		if p.Y < 40 {
			return color.NRGBA{R: 0xff, A: 0xff}
		}
		return nil
	})
	lines = strings.Split(half, "\n")
	if !strings.Contains(lines[0], upperHalf) {
		t.Errorf("top line = %q", lines[0])
	}
	if lines[3] != strings.Repeat(" ", 8) {
		t.Errorf("bottom line should be blank, got %q", lines[3])
	}
}

func TestHex(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		c    color.Color
		want string
	}{
		{"nil", nil, ""},
		{"transparent", color.NRGBA{R: 0xff}, ""},
		{"opaque", color.NRGBA{R: 0xff, G: 0x80, A: 0xff}, "#ff8000"},
		{"translucent white stays white", color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x40}, "#ffffff"},
		{"gray", color.Gray{Y: 0x80}, "#808080"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := hex(tt.c); got != tt.want {
				t.Errorf("hex(%v) = %q, want %q", tt.c, got, tt.want)
			}
		})
	}
}
