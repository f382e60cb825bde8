package tui

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"honnef.co/go/curve"
)

const (
	upperHalf = "▀"
	lowerHalf = "▄"
)

// Canvas maps a grid of terminal cells onto the chart's pixel canvas. A cell
// is about twice as tall as it is wide, so each cell shows two square
// samples stacked with half blocks.
type Canvas struct {
	Cols, Rows int
	// W and H are the chart canvas size in pixels.
	W, H float64
	// Px is the side of one sample in chart pixels.
	Px     float64
	ox, oy float64
}

// NewCanvas fits a w×h chart into cols×rows cells, centered.
func NewCanvas(cols, rows int, w, h float64) Canvas {
	cols, rows = max(cols, 1), max(rows, 1)
	px := max(w/float64(cols), h/float64(2*rows))
	return Canvas{
		Cols: cols,
		Rows: rows,
		W:    w,
		H:    h,
		Px:   px,
		ox:   (float64(cols)*px - w) / 2,
		oy:   (float64(2*rows)*px - h) / 2,
	}
}

// Sample is the chart point at the center of the half cell (col, row, half),
// half 0 being the upper sample.
func (c Canvas) Sample(col, row, half int) curve.Point {
	return curve.Pt(
		(float64(col)+0.5)*c.Px-c.ox,
		(float64(2*row+half)+0.5)*c.Px-c.oy,
	)
}

// Point is the chart point under the middle of a cell, used for pointer
// events.
func (c Canvas) Point(col, row int) curve.Point {
	return curve.Pt(
		(float64(col)+0.5)*c.Px-c.ox,
		float64(2*row+1)*c.Px-c.oy,
	)
}

// Cell is the cell showing chart point p.
func (c Canvas) Cell(p curve.Point) (col, row int) {
	return int((p.X + c.ox) / c.Px), int((p.Y + c.oy) / (2 * c.Px))
}

// Sampler returns the colour at a chart point, nil for background.
type Sampler func(p curve.Point) color.Color

// Render draws the canvas with sample, one line per row.
func (c Canvas) Render(sample Sampler) string {
	cells := make(map[[2]string]string)
	var b strings.Builder
	for row := range c.Rows {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := range c.Cols {
			top := hex(sample(c.Sample(col, row, 0)))
			bottom := hex(sample(c.Sample(col, row, 1)))
			key := [2]string{top, bottom}
			cell, ok := cells[key]
			if !ok {
				cell = renderCell(top, bottom)
				cells[key] = cell
			}
			b.WriteString(cell)
		}
	}
	return b.String()
}

func renderCell(top, bottom string) string {
	switch {
	case top == "" && bottom == "":
		return " "
	case top == "":
		return lipgloss.NewStyle().Foreground(lipgloss.Color(bottom)).Render(lowerHalf)
	case bottom == "":
		return lipgloss.NewStyle().Foreground(lipgloss.Color(top)).Render(upperHalf)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(top)).Background(lipgloss.Color(bottom)).Render(upperHalf)
}

// hex returns c as #rrggbb, or "" for nil and fully transparent colours.
// Translucent colours are blended over white.
func hex(c color.Color) string {
	if c == nil {
		return ""
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0 {
		return ""
	}
	cf := colorful.Color{R: float64(n.R) / 255, G: float64(n.G) / 255, B: float64(n.B) / 255}
	if n.A < 255 {
		cf = colorful.Color{R: 1, G: 1, B: 1}.BlendRgb(cf, float64(n.A)/255)
	}
	return cf.Clamped().Hex()
}
