package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/papapumpkin/fanchart/internal/ansi"
	"github.com/papapumpkin/fanchart/internal/fan"
	"github.com/papapumpkin/fanchart/internal/genealogy"
	"github.com/papapumpkin/fanchart/internal/pedigree"
	"github.com/papapumpkin/fanchart/internal/sector"
	"github.com/papapumpkin/fanchart/internal/srctemplate"
)

const swatchWidth = 2

// Pedigree lists the people of c generation by generation, each behind a
// swatch of their box colour.
func (p *Printer) Pedigree(c *fan.Chart) {
	v := c.Variant()
	root := v.Root()
	if !root.Known() {
		fmt.Fprintln(p.Out, ansi.Dim+"(no root person)"+ansi.Reset)
		return
	}
	fmt.Fprintf(p.Out, ansi.Bold+ansi.Cyan+"%s"+ansi.Reset+" %s\n", root.DisplayName, Lifespan(root.Person))

	current := -1
	for addr, slot := range v.People() {
		if addr.Generation == 0 {
			continue
		}
		if addr.Generation != current {
			current = addr.Generation
			fmt.Fprintf(p.Out, "\n"+ansi.Bold+"%s generation"+ansi.Reset+"\n", humanize.Ordinal(current))
		}
		p.slotLine(c, addr, slot, addr.Generation)
	}

	first := true
	for i, slot := range v.InnerPeople() {
		if first {
			fmt.Fprintln(p.Out, "\n"+ansi.Bold+"children"+ansi.Reset)
			first = false
		}
		p.slotLine(c, sector.Address{Generation: sector.GenChildren, Index: i}, slot, -1)
	}
}

func (p *Printer) slotLine(c *fan.Chart, addr sector.Address, slot *pedigree.Slot, g int) {
	fill := c.Palette().Box(slot, g)
	more := ""
	if slot.HasParents == pedigree.Yes && g == c.Variant().Generations()-1 {
		more = ansi.Dim + " +" + ansi.Reset
	}
	fmt.Fprintf(p.Out, "  %s %-6s %s %s%s\n", ansi.Swatch(fill.NRGBA(), swatchWidth), addr, slot.DisplayName, Lifespan(slot.Person), more)
}

// Lifespan formats the known years of p as "(1920-1990)", "(b. 1950)" or
// "(d. 1700)". It is empty when no year is known.
func Lifespan(p *genealogy.Person) string {
	if p == nil {
		return ""
	}
	switch {
	case p.BirthYear != 0 && p.DeathYear != 0:
		return fmt.Sprintf("(%d-%d)", p.BirthYear, p.DeathYear)
	case p.BirthYear != 0:
		return fmt.Sprintf("(b. %d)", p.BirthYear)
	case p.DeathYear != 0:
		return fmt.Sprintf("(d. %d)", p.DeathYear)
	}
	return ""
}

// People lists persons with their handles, one per line.
func (p *Printer) People(people []genealogy.Person, names genealogy.NameDisplayer) {
	for _, person := range people {
		fmt.Fprintf(p.Out, "%s  %s %s\n", person.Handle, names.Display(&person), Lifespan(&person))
	}
}

// TemplateNames lists template names.
func (p *Printer) TemplateNames(names []string) {
	if len(names) == 0 {
		fmt.Fprintln(p.Out, ansi.Dim+"(no templates)"+ansi.Reset)
		return
	}
	for _, n := range names {
		fmt.Fprintln(p.Out, n)
	}
}

// Template prints t's elements and map.
func (p *Printer) Template(t *srctemplate.Template) {
	fmt.Fprintf(p.Out, ansi.Bold+"%s"+ansi.Reset+"\n", t.Name)
	if t.Descr != "" {
		fmt.Fprintf(p.Out, ansi.Dim+"%s"+ansi.Reset+"\n", t.Descr)
	}
	for _, e := range t.Elements {
		var flags []string
		if e.Citation {
			flags = append(flags, "citation")
		}
		if e.Short {
			flags = append(flags, "short")
			if e.ShortAlg != "" {
				flags = append(flags, "alg="+e.ShortAlg)
			}
		}
		label := e.Display
		if label == "" {
			label = e.Name
		}
		fmt.Fprintf(p.Out, "  %-24s %s", e.Name, label)
		if len(flags) > 0 {
			fmt.Fprintf(p.Out, " "+ansi.Dim+"[%s]"+ansi.Reset, strings.Join(flags, ", "))
		}
		fmt.Fprintln(p.Out)
	}
	if t.Map.Len() > 0 {
		fmt.Fprintln(p.Out, ansi.Bold+"map"+ansi.Reset)
		for _, k := range t.Map.Keys() {
			fmt.Fprintf(p.Out, "  %s = %s\n", k, strconv.Quote(t.Map.Get(k)))
		}
	}
}
