package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func TestMenuNavigationClamps(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "a"}, {Label: "b"}, {Label: "c"}})

	m = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 0, m.Selected)

	m = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m = m.Update(tea.KeyPressMsg{Code: 'j', Text: "j"})
	m = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 2, m.Selected)

	m = m.Update(tea.KeyPressMsg{Code: 'k', Text: "k"})
	assert.Equal(t, 1, m.Selected)
}

func TestMenuViewScrollsToCursor(t *testing.T) {
	items := make([]MenuItem, 10)
	for i := range items {
		items[i] = MenuItem{Label: string(rune('a' + i))}
	}
	m := NewMenu(items)
	m.Selected = 9

	out := m.View(60, 3)
	assert.Contains(t, out, "j")
	assert.NotContains(t, out, "a\n")
}

func TestToggleWraps(t *testing.T) {
	tg := NewToggle("Learn", "Study")
	assert.Equal(t, 0, tg.Active)
	tg = tg.Next()
	assert.Equal(t, 1, tg.Active)
	tg = tg.Next()
	assert.Equal(t, 0, tg.Active)
	assert.Contains(t, tg.View(), "Study")
}

func TestCardHidesAnswerUntilRevealed(t *testing.T) {
	c := Card{Heading: "Question 1", Question: "What is Go?", Answer: "A language", Width: 60}
	assert.Contains(t, c.View(), "What is Go?")
	assert.NotContains(t, c.View(), "A language")

	c.Reveal = true
	assert.Contains(t, c.View(), "A language")
}

func TestProgressBarShowsPercent(t *testing.T) {
	out := NewProgressBar("Mastered", 0.5, true, 40).View()
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "Mastered")
}
