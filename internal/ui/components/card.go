package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/blockquiz/internal/ui/theme"
)

// Card renders a flashcard: the question and, when given, its answer.
type Card struct {
	Heading  string
	Question string
	Answer   string
	Reveal   bool
	Miss     bool
	Width    int
}

// View renders the card.
func (c Card) View() string {
	inner := max(c.Width-8, 20)

	question := theme.Label.Render(c.Heading) + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(inner).Render(c.Question)
	out := theme.Card.Width(c.Width).Render(question)

	if !c.Reveal {
		return out
	}

	style := theme.AnswerCard
	label := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Answer")
	if c.Miss {
		style = theme.MissCard
		label = theme.Incorrect.Render("Answer")
	}
	answer := label + "\n\n" + lipgloss.NewStyle().Foreground(theme.Text).Width(inner).Render(c.Answer)
	return lipgloss.JoinVertical(lipgloss.Left, out, style.Width(c.Width).Render(answer))
}
