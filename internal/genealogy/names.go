package genealogy

import "strings"

// Format selects a partial rendering of a person's name.
type Format int

// Name formats understood by DisplayFormat.
const (
	FormatFull        Format = iota // given names, surname, suffix
	FormatSurname                   // surname only
	FormatGivenSuffix               // given names and suffix
)

// NameDisplayer renders person names for chart labels.
type NameDisplayer interface {
	Display(p *Person) string
	DisplayFormat(p *Person, f Format) string
}

// Displayer is the default NameDisplayer.
type Displayer struct {
	// SurnameFirst renders full names as "Surname, Given Suffix".
	SurnameFirst bool
}

// Display renders the full name of p, or "" for nil.
func (d Displayer) Display(p *Person) string {
	return d.DisplayFormat(p, FormatFull)
}

// DisplayFormat renders the part of p's name selected by f.
func (d Displayer) DisplayFormat(p *Person, f Format) string {
	if p == nil {
		return ""
	}
	n := p.Name
	switch f {
	case FormatSurname:
		return strings.TrimSpace(n.Surname)
	case FormatGivenSuffix:
		return join(n.Given, n.Suffix)
	}
	if d.SurnameFirst && n.Surname != "" {
		rest := join(n.Given, n.Suffix)
		if rest == "" {
			return n.Surname
		}
		return n.Surname + ", " + rest
	}
	return join(n.Given, n.Surname, n.Suffix)
}

func join(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

// PresetChildName returns the name a new child of father starts with: the
// given name supplied by the caller and the father's surname.
func PresetChildName(father *Person, given string) Name {
	n := Name{Given: strings.TrimSpace(given)}
	if father != nil {
		n.Surname = father.Name.Surname
	}
	return n
}
