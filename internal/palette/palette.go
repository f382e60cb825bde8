package palette

import (
	"fmt"
	"image/color"
	"iter"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/papapumpkin/fanchart/internal/genealogy"
	"github.com/papapumpkin/fanchart/internal/pedigree"
)

// MaxAge is the age at which the age gradient saturates.
const MaxAge = 100

// GradientScale controls the number of legend steps: 2*GradientScale-1.
const GradientScale = 5

// Options configures a Palette.
type Options struct {
	Mode        Mode
	Start       colorful.Color
	End         colorful.Color
	Filter      genealogy.Filter
	AlphaFilter float64
	// Now is the current year, used for ages of living people and as the
	// period when nobody has a date.
	Now int
	// OnDegraded is told about people whose alive estimate failed and who
	// are therefore coloured as dead.
	OnDegraded func(p *genealogy.Person, err error)
}

// Fill is a box colour with transparency.
type Fill struct {
	Color colorful.Color
	Alpha float64
}

// NRGBA converts f to a non-premultiplied image colour.
func (f Fill) NRGBA() color.NRGBA {
	r, g, b := f.Color.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(clamp(f.Alpha, 0, 1) * 255))}
}

// LegendStep is one box of the gradient legend. Label may be empty.
type LegendStep struct {
	Color colorful.Color
	Label string
}

// Palette holds the per-reset precomputation of one background mode.
type Palette struct {
	opts       Options
	startHSV   [3]float64
	endHSV     [3]float64
	generation []colorful.Color
	minPeriod  int
	maxPeriod  int
	legend     []LegendStep
	fontCache  map[colorful.Color]colorful.Color
}

// Prepare precomputes the colours for a chart of the given generations and
// stores per-slot metrics in the slots' Aux values. It must run again
// whenever the slots are rebuilt.
func Prepare(opts Options, generations int, slots iter.Seq[*pedigree.Slot]) *Palette {
	p := &Palette{opts: opts, fontCache: make(map[colorful.Color]colorful.Color)}
	p.startHSV[0], p.startHSV[1], p.startHSV[2] = opts.Start.Hsv()
	p.endHSV[0], p.endHSV[1], p.endHSV[2] = opts.End.Hsv()

	switch opts.Mode {
	case GradGen:
		if generations > 1 {
			for x := range generations {
				p.generation = append(p.generation, p.lerp(float64(x)/float64(generations-1)))
			}
		} else {
			p.generation = []colorful.Color{p.lerp(0)}
		}
	case GradAge:
		for slot := range slots {
			slot.Aux = []pedigree.AuxValue{p.age(slot.Person)}
		}
		p.legend = p.gradientLegend(func(x float64) string { return fmt.Sprintf("%d", int(x*MaxAge)) })
		p.legend[len(p.legend)-1].Label = fmt.Sprintf("%d+", MaxAge)
		blankOdd(p.legend)
	case GradPeriod:
		p.preparePeriods(slots)
		span := float64(p.maxPeriod - p.minPeriod)
		p.legend = p.gradientLegend(func(x float64) string { return fmt.Sprintf("%d", int(float64(p.minPeriod)+x*span)) })
		blankOdd(p.legend)
	case Scheme1, Scheme2, White:
		p.generation = generationColors[opts.Mode]
	}
	return p
}

func (p *Palette) age(person *genealogy.Person) pedigree.AuxValue {
	years, ok := genealogy.Age(person, p.opts.Now)
	if !ok {
		return pedigree.AuxValue{}
	}
	return pedigree.AuxValue{Value: clamp(float64(years), 0, MaxAge), Valid: true}
}

func (p *Palette) preparePeriods(slots iter.Seq[*pedigree.Slot]) {
	lo, hi := math.MaxInt, math.MinInt
	for slot := range slots {
		year, ok := genealogy.TimePeriod(slot.Person)
		slot.Aux = []pedigree.AuxValue{{Value: float64(year), Valid: ok}}
		if ok {
			lo, hi = min(lo, year), max(hi, year)
		}
	}
	if hi < lo {
		lo, hi = p.opts.Now, p.opts.Now
	}
	if hi%50 != 0 {
		hi = floorDiv(hi, 50)*50 + 50
	}
	p.minPeriod = floorDiv(lo, 50) * 50
	p.maxPeriod = hi
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func (p *Palette) gradientLegend(label func(x float64) string) []LegendStep {
	steps := 2*GradientScale - 1
	out := make([]LegendStep, steps)
	for i := range out {
		x := float64(i) / float64(steps-1)
		out[i] = LegendStep{Color: p.lerp(x), Label: label(x)}
	}
	return out
}

func blankOdd(steps []LegendStep) {
	for i := 1; i < len(steps); i += 2 {
		steps[i].Label = ""
	}
}

// lerp interpolates linearly in HSV between the gradient ends.
func (p *Palette) lerp(x float64) colorful.Color {
	var hsv [3]float64
	for i := range hsv {
		hsv[i] = (1-x)*p.startHSV[i] + x*p.endHSV[i]
	}
	return colorful.Hsv(hsv[0], hsv[1], hsv[2])
}

// Legend returns the gradient legend, or nil for modes without one.
func (p *Palette) Legend() []LegendStep { return p.legend }

// PeriodRange returns the rounded period bounds of a GradPeriod palette.
func (p *Palette) PeriodRange() (lo, hi int) { return p.minPeriod, p.maxPeriod }

// Box returns the background of slot drawn in ring generation. The children
// ring is generation -1.
func (p *Palette) Box(slot *pedigree.Slot, generation int) Fill {
	var person *genealogy.Person
	if slot != nil {
		person = slot.Person
	}
	return Fill{Color: p.boxColor(slot, person, generation), Alpha: p.alpha(person)}
}

func (p *Palette) boxColor(slot *pedigree.Slot, person *genealogy.Person, generation int) colorful.Color {
	mode := p.opts.Mode
	if generation == 0 && (mode == Gender || mode == GradGen || mode == Scheme1 || mode == Scheme2) {
		return white
	}
	switch mode {
	case Gender:
		alive, err := genealogy.ProbablyAlive(person, p.opts.Now)
		if err != nil {
			alive = false
			if p.opts.OnDegraded != nil {
				p.opts.OnDegraded(person, err)
			}
		}
		g := 0
		if person != nil && person.Gender >= 0 && int(person.Gender) < len(genderColors) {
			g = int(person.Gender)
		}
		if alive {
			return genderColors[g][1]
		}
		return genderColors[g][0]
	case SingleColor:
		return p.opts.Start
	case GradAge:
		aux := firstAux(slot)
		if !aux.Valid {
			return white
		}
		return p.lerp(aux.Value / MaxAge)
	case GradPeriod:
		aux := firstAux(slot)
		if !aux.Valid {
			return white
		}
		frac := 0.5
		if p.maxPeriod != p.minPeriod {
			frac = (aux.Value - float64(p.minPeriod)) / float64(p.maxPeriod-p.minPeriod)
		}
		return p.lerp(frac)
	}

	if len(p.generation) == 0 {
		return white
	}
	if generation < 0 {
		generation = 0
	}
	c := p.generation[generation%len(p.generation)]
	if person != nil && person.Gender == genealogy.GenderMale {
		c = colorful.Color{R: c.R * 0.9, G: c.G * 0.9, B: c.B * 0.9}
	}
	return c
}

func firstAux(slot *pedigree.Slot) pedigree.AuxValue {
	if slot == nil || len(slot.Aux) == 0 {
		return pedigree.AuxValue{}
	}
	return slot.Aux[0]
}

func (p *Palette) alpha(person *genealogy.Person) float64 {
	if p.opts.Filter == nil || p.opts.Filter.Match(person) {
		return 1
	}
	if p.opts.Mode == SingleColor {
		return 0
	}
	return p.opts.AlphaFilter
}

// FontColor returns black or white, whichever reads better on f. Fully
// transparent boxes get black text.
func (p *Palette) FontColor(f Fill) colorful.Color {
	if f.Alpha == 0 {
		return colorful.Color{}
	}
	if c, ok := p.fontCache[f.Color]; ok {
		return c
	}
	_, _, l := f.Color.Hsl()
	c := white
	if l > 0.4 {
		c = colorful.Color{}
	}
	p.fontCache[f.Color] = c
	return c
}

// Bold reports whether labels on f are drawn bold: the box is opaque and a
// filter is active.
func (p *Palette) Bold(f Fill) bool {
	return f.Alpha >= 1 && p.opts.Filter != nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
