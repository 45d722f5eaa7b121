package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/blockquiz/internal/ui/theme"
)

// Toggle is a segmented control showing one active option among several.
type Toggle struct {
	Options []string
	Active  int
}

// NewToggle creates a toggle with the first option active.
func NewToggle(options ...string) Toggle {
	return Toggle{Options: options}
}

// Next activates the following option, wrapping at the end.
func (t Toggle) Next() Toggle {
	if len(t.Options) > 0 {
		t.Active = (t.Active + 1) % len(t.Options)
	}
	return t
}

// View renders the toggle.
func (t Toggle) View() string {
	parts := make([]string, 0, len(t.Options))
	for i, opt := range t.Options {
		if i == t.Active {
			parts = append(parts, theme.ToggleActive.Render(opt))
		} else {
			parts = append(parts, theme.ToggleInactive.Render(opt))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
