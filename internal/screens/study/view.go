package study

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/blockquiz/internal/drill"
	"github.com/abhisek/blockquiz/internal/ui/components"
	"github.com/abhisek/blockquiz/internal/ui/layout"
	"github.com/abhisek/blockquiz/internal/ui/theme"
)

const cardWidth = 64

func (s *StudyScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderMessage(width, height, "Something went wrong: "+s.errMsg, theme.Error)
	}
	if !s.started {
		return renderMessage(width, height, "No questions in this block", theme.TextDim)
	}
	if s.sched.Phase() == drill.PhaseFinished {
		return s.renderResult(width, height)
	}
	return s.renderQuestion(width, height)
}

func (s *StudyScreen) renderQuestion(width, height int) string {
	sched := s.sched
	q, _ := sched.Current()
	w := min(cardWidth, width-4)

	var b strings.Builder

	stats := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("Mastered: %d / %d", sched.MasteredCount(), sched.Total()))
	review := lipgloss.NewStyle().Foreground(theme.Accent).
		Render(fmt.Sprintf("Review: %d", sched.ReviewPileSize()))
	gap := max(w-lipgloss.Width(stats)-lipgloss.Width(review), 2)
	b.WriteString(stats + strings.Repeat(" ", gap) + review)
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", sched.Score(), false, w).View())
	b.WriteString("\n")
	if !layout.IsCompactHeight(height) {
		b.WriteString("\n")
	}

	card := components.Card{
		Heading:  fmt.Sprintf("Question #%d", q.ID),
		Question: q.Question,
		Answer:   q.Answer,
		Reveal:   sched.ShowAnswer(),
		Miss:     sched.Phase() == drill.PhaseAwaitingWrongConfirm,
		Width:    w,
	}
	b.WriteString(card.View())
	b.WriteString("\n\n")

	switch sched.Phase() {
	case drill.PhasePresenting:
		bar := components.NewProgressBar("", sched.TimerPercent()/100, false, w)
		bar.Fill = timerColor(sched.TimerPercent())
		b.WriteString(bar.View())
	case drill.PhaseAnswerShown:
		b.WriteString(theme.Hint.Render("Did you know it?"))
	case drill.PhaseAwaitingWrongConfirm:
		if sched.TimedOut() {
			b.WriteString(theme.Incorrect.Render("Time's up!"))
		} else {
			b.WriteString(theme.Incorrect.Render("Marked as missed."))
		}
		b.WriteString(" ")
		b.WriteString(theme.Hint.Render("It goes back on the review pile."))
	}

	return center(width, height, b.String())
}

func (s *StudyScreen) renderResult(width, height int) string {
	sched := s.sched
	w := min(cardWidth, width-4)

	var b strings.Builder
	b.WriteString(theme.Title.Width(w).Render(sched.Block().Name() + " complete"))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Width(w).Render(
		fmt.Sprintf("Mastered %d of %d questions", sched.MasteredCount(), sched.Total())))
	b.WriteString("\n\n")
	bar := components.NewProgressBar("Score", sched.Score(), true, w)
	bar.Fill = theme.Success
	b.WriteString(bar.View())

	return center(width, height, b.String())
}

func timerColor(percent float64) color.Color {
	switch {
	case percent <= 20:
		return theme.Error
	case percent <= 50:
		return theme.Accent
	default:
		return theme.Secondary
	}
}

func center(width, height int, content string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func renderMessage(width, height int, msg string, fg color.Color) string {
	return center(width, height, lipgloss.NewStyle().Foreground(fg).Render(msg))
}
