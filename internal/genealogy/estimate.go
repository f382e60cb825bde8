package genealogy

import (
	"errors"
	"fmt"
)

// ErrInconsistentDates is returned when a person's death precedes their
// birth.
var ErrInconsistentDates = errors.New("genealogy: death before birth")

// MaxLifespan is the age beyond which a person without a death record is
// assumed dead.
const MaxLifespan = 110

// ProbablyAlive estimates whether p is alive in year now.
func ProbablyAlive(p *Person, now int) (bool, error) {
	if p == nil {
		return false, nil
	}
	if p.BirthYear != 0 && p.DeathYear != 0 && p.DeathYear < p.BirthYear {
		return false, fmt.Errorf("%w: %s born %d died %d", ErrInconsistentDates, p.Handle, p.BirthYear, p.DeathYear)
	}
	if p.DeathYear != 0 {
		return false, nil
	}
	if p.BirthYear == 0 {
		return true, nil
	}
	return now-p.BirthYear <= MaxLifespan, nil
}

// Age returns p's age at death, or in year now when still alive. ok is false
// when the birth year is unknown.
func Age(p *Person, now int) (years int, ok bool) {
	if p == nil || p.BirthYear == 0 {
		return 0, false
	}
	end := now
	if p.DeathYear != 0 {
		end = p.DeathYear
	}
	return end - p.BirthYear, true
}

// TimePeriod returns the year that best places p in time: birth if known,
// otherwise death.
func TimePeriod(p *Person) (year int, ok bool) {
	switch {
	case p == nil:
		return 0, false
	case p.BirthYear != 0:
		return p.BirthYear, true
	case p.DeathYear != 0:
		return p.DeathYear, true
	}
	return 0, false
}
