// Package textfit fits person names into annular sectors: it wraps and
// shrinks text to the space a box offers, and maps text laid out in a
// rectangle onto a ring segment.
package textfit

import (
	"strings"

	"github.com/rivo/uniseg"
)

// PadText is the gap kept between text and the box edges, in pixels.
const PadText = 2

// Measurer measures one line of text at a font size in pixels.
type Measurer interface {
	Measure(text string, size float64, bold bool) (w, h float64)
}

// Layout is a fitted line of text.
type Layout struct {
	Text   string
	Size   float64
	Width  float64
	Height float64
}

// Empty reports whether nothing is to be drawn.
func (l Layout) Empty() bool { return l.Text == "" }

// Fit keeps the first line text wraps to within width and checks it against
// height. Text too tall is retried once from the full string at
// max(height/h*size/1.1, size/2); if it is still too tall the layout is
// empty. Wrapping breaks at line-break opportunities and falls back to
// grapheme clusters, so the result is always valid text.
func Fit(m Measurer, text string, size float64, bold bool, width, height float64) Layout {
	l := fitLine(m, text, size, bold, width)
	if l.Height > height {
		size = max(height/l.Height*size/1.1, size/2)
		l = fitLine(m, text, size, bold, width)
		if l.Height > height {
			return Layout{Size: size}
		}
	}
	return l
}

func fitLine(m Measurer, text string, size float64, bold bool, width float64) Layout {
	line := firstLine(m, text, size, bold, width)
	w, h := m.Measure(line, size, bold)
	if line == "" {
		_, h = m.Measure("", size, bold)
		w = 0
	}
	return Layout{Text: line, Size: size, Width: w, Height: h}
}

// firstLine returns the longest prefix of text made of whole line segments
// that fits width. A first segment wider than width is cut at grapheme
// clusters instead, keeping at least one cluster.
func firstLine(m Measurer, text string, size float64, bold bool, width float64) string {
	text = strings.TrimSpace(text)
	fits := func(s string) bool {
		w, _ := m.Measure(strings.TrimRight(s, " "), size, bold)
		return w <= width
	}
	if fits(text) {
		return text
	}

	var line string
	state := -1
	for rest := text; rest != ""; {
		var seg string
		var mustBreak bool
		seg, rest, mustBreak, state = uniseg.FirstLineSegmentInString(rest, state)
		if !fits(line + seg) {
			break
		}
		line += seg
		if mustBreak {
			break
		}
	}
	if line != "" {
		return strings.TrimRight(line, " ")
	}

	state = -1
	for rest := text; rest != ""; {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if line != "" && !fits(line+cluster) {
			break
		}
		line += cluster
	}
	return strings.TrimRight(line, " ")
}
