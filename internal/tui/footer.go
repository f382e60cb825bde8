package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// Footer renders keybinding hints.
type Footer struct {
	Width    int
	Bindings []key.Binding
}

// View renders the footer as a single line. Narrow terminals get the keys
// without descriptions.
func (f Footer) View() string {
	compact := f.Width < CompactWidth

	var parts []string
	for _, b := range f.Bindings {
		if !b.Enabled() {
			continue
		}
		help := b.Help()
		part := styleFooterKey.Render(help.Key)
		if !compact {
			part += styleFooter.Render(":" + help.Desc)
		}
		parts = append(parts, part)
	}
	sep := styleFooter.Render("  ")
	if compact {
		sep = styleFooter.Render(" ")
	}
	return styleFooter.Width(f.Width).MaxWidth(f.Width).Render(strings.Join(parts, sep))
}
