package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/blockquiz/internal/ui/theme"
)

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 72)
}

// renderTitle renders the bank title.
func renderTitle(title string, cw int) string {
	return theme.Title.Width(cw).Render(title)
}

// renderStatsBar renders the overall progress line in a bordered box.
func renderStatsBar(learned, mastered, blocks, questions, cw int) string {
	learnedStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	masteredStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	stats := fmt.Sprintf("%s   %s",
		learnedStyle.Render(fmt.Sprintf("%d / %d blocks learned", learned, blocks)),
		masteredStyle.Render(fmt.Sprintf("%d / %d questions mastered", mastered, questions)),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Align(lipgloss.Center).
		Render(stats)
}

// renderClearConfirm renders the clear-all-progress prompt.
func renderClearConfirm(cw int) string {
	body := theme.Incorrect.Render("Clear all progress?") + "\n\n" +
		theme.Body.Render("Learned blocks and saved drills will be deleted.") + "\n\n" +
		theme.Hint.Render("Y to confirm, N to cancel")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Error).
		Width(cw).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(body)
}
