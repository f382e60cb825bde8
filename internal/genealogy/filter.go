package genealogy

import "strings"

// HandleSet is a Filter matching an explicit set of people.
type HandleSet map[Handle]bool

// Match reports whether p's handle is in the set.
func (s HandleSet) Match(p *Person) bool {
	return p != nil && s[p.Handle]
}

// SurnameFilter matches people whose surname equals Surname, ignoring case.
type SurnameFilter struct {
	Surname string
}

// Match reports whether p carries the filter's surname.
func (f SurnameFilter) Match(p *Person) bool {
	return p != nil && strings.EqualFold(strings.TrimSpace(p.Name.Surname), strings.TrimSpace(f.Surname))
}
