// Package palette computes the background and font colours of fan chart
// boxes for every background mode.
package palette

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Mode selects how boxes are coloured.
type Mode int

// Background modes.
const (
	Scheme1 Mode = iota
	Scheme2
	Gender
	White
	GradGen
	GradAge
	SingleColor
	GradPeriod
)

var modeNames = [...]string{
	Scheme1:     "scheme1",
	Scheme2:     "scheme2",
	Gender:      "gender",
	White:       "white",
	GradGen:     "grad-gen",
	GradAge:     "grad-age",
	SingleColor: "single-color",
	GradPeriod:  "grad-period",
}

// String returns the name accepted by ParseMode.
func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode parses a background mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range modeNames {
		if name == s {
			return Mode(m), nil
		}
	}
	return 0, fmt.Errorf("palette: unknown background %q", s)
}

// Modes lists every mode in declaration order.
func Modes() []Mode {
	out := make([]Mode, len(modeNames))
	for i := range out {
		out[i] = Mode(i)
	}
	return out
}

// ParseHex parses a "#rrggbb" colour.
func ParseHex(s string) (colorful.Color, error) {
	c, err := colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return colorful.Color{}, fmt.Errorf("palette: colour %q: %w", s, err)
	}
	return c, nil
}

func rgb(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

var generationColors = map[Mode][]colorful.Color{
	Scheme1: {
		rgb(255, 63, 0),
		rgb(255, 175, 15),
		rgb(255, 223, 87),
		rgb(255, 255, 111),
		rgb(159, 255, 159),
		rgb(111, 215, 255),
		rgb(79, 151, 255),
		rgb(231, 23, 255),
		rgb(231, 23, 121),
		rgb(210, 170, 124),
		rgb(189, 153, 112),
	},
	Scheme2: {
		rgb(229, 191, 252),
		rgb(191, 191, 252),
		rgb(191, 222, 252),
		rgb(183, 219, 197),
		rgb(206, 246, 209),
	},
	White: {
		rgb(255, 255, 255),
		rgb(255, 255, 255),
	},
}

// Box colours of the gender mode, indexed by gender then alive.
var genderColors = [3][2]colorful.Color{
	{rgb(217, 195, 161), rgb(243, 219, 182)}, // unknown
	{rgb(145, 170, 201), rgb(184, 206, 230)}, // male
	{rgb(230, 179, 217), rgb(254, 204, 240)}, // female
}

var white = colorful.Color{R: 1, G: 1, B: 1}
