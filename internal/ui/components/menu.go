package components

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/blockquiz/internal/ui/theme"
)

// MenuItem represents a single row of a Menu.
type MenuItem struct {
	Label  string
	Detail string
	Badge  string
}

// MenuKeys are the bindings a Menu reacts to.
type MenuKeys struct {
	Up   key.Binding
	Down key.Binding
}

// DefaultMenuKeys returns arrow and vim-style navigation.
func DefaultMenuKeys() MenuKeys {
	return MenuKeys{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓", "Navigate")),
		Down: key.NewBinding(key.WithKeys("down", "j")),
	}
}

// Menu is a vertical list with a cursor. Selection is left to the caller,
// which reads Selected.
type Menu struct {
	Items    []MenuItem
	Selected int
	Keys     MenuKeys
}

// NewMenu creates a new menu with the given items.
func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items, Keys: DefaultMenuKeys()}
}

// Update moves the cursor on navigation keys.
func (m Menu) Update(msg tea.Msg) Menu {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(m.Items) == 0 {
		return m
	}

	switch {
	case key.Matches(kmsg, m.Keys.Up):
		if m.Selected > 0 {
			m.Selected--
		}
	case key.Matches(kmsg, m.Keys.Down):
		if m.Selected < len(m.Items)-1 {
			m.Selected++
		}
	}
	return m
}

// View renders at most height rows, scrolled to keep the cursor visible.
// A height of 0 renders every row.
func (m Menu) View(width, height int) string {
	start, end := 0, len(m.Items)
	if height > 0 && len(m.Items) > height {
		start = max(0, min(m.Selected-height/2, len(m.Items)-height))
		end = start + height
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		item := m.Items[i]

		style := theme.Unselected
		prefix := "    "
		if i == m.Selected {
			style = theme.Selected
			prefix = "  ▸ "
		}

		row := style.Render(prefix + item.Label)
		if item.Detail != "" {
			row += "  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(item.Detail)
		}
		if item.Badge != "" {
			gap := max(width-lipgloss.Width(row)-lipgloss.Width(item.Badge)-6, 2)
			row += strings.Repeat(" ", gap) + theme.Badge.Render(item.Badge)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}
