package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// StatusBar renders the top line: root person, chart size, the hovered
// person and the last status message.
type StatusBar struct {
	Root        string
	Generations int
	People      int
	Hover       string
	Status      string
	Failed      bool
	ReadOnly    bool
	Width       int
}

// View renders the status bar as a single line. The hover segment is dropped
// on narrow terminals and the root name truncated to fit.
func (s StatusBar) View() string {
	const barPadding = 2
	inner := max(s.Width-barPadding, 0)
	compact := s.Width < CompactWidth

	var right []string
	if s.Status != "" {
		style := styleStatusValue
		if s.Failed {
			style = styleStatusError
		}
		right = append(right, style.Render(s.Status))
	} else if s.Hover != "" && !compact {
		right = append(right, styleStatusHover.Render(s.Hover))
	}
	stats := styleStatusLabel.Render(fmt.Sprintf("%d", s.Generations)) + styleStatusValue.Render(" gen  ") +
		styleStatusLabel.Render(humanize.Comma(int64(s.People))) + styleStatusValue.Render(" "+plural(s.People, "person", "people"))
	if s.ReadOnly {
		stats += styleStatusValue.Render("  read-only")
	}
	right = append(right, stats)
	r := strings.Join(right, styleStatusValue.Render("  │  "))

	room := inner - lipgloss.Width(r) - 1
	name := TruncateWithEllipsis(s.Root, max(room, 0))
	left := styleStatusLabel.Render(name)
	gap := max(inner-lipgloss.Width(left)-lipgloss.Width(r), 1)
	line := left + strings.Repeat(" ", gap) + r
	return styleStatusBar.Width(s.Width).MaxWidth(s.Width).Render(line)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
