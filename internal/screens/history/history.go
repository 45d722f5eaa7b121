// Package history shows drill accuracy per block from the answer log.
package history

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/blockquiz/internal/router"
	"github.com/abhisek/blockquiz/internal/screen"
	"github.com/abhisek/blockquiz/internal/store"
	"github.com/abhisek/blockquiz/internal/ui/components"
	"github.com/abhisek/blockquiz/internal/ui/layout"
	"github.com/abhisek/blockquiz/internal/ui/theme"
)

// recentLimit is how many answers an expanded block shows.
const recentLimit = 8

type historyLoadedMsg struct {
	Stats  []store.BlockAccuracy
	Recent map[int][]store.DrillAnswerRecord // block index → answers
	Err    error
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Expand key.Binding
	Back   key.Binding
}

// HistoryScreen lists per-block accuracy with recent answers on demand.
type HistoryScreen struct {
	eventRepo store.EventRepo
	keys      keyMap
	stats     []store.BlockAccuracy
	recent    map[int][]store.DrillAnswerRecord
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
		keys: keyMap{
			Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓", "Navigate")),
			Down:   key.NewBinding(key.WithKeys("down", "j")),
			Expand: key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Recent answers")),
			Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Back")),
		},
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		ctx := context.Background()

		stats, err := repo.BlockAccuracies(ctx)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		recent := make(map[int][]store.DrillAnswerRecord, len(stats))
		for _, st := range stats {
			answers, err := repo.RecentAnswers(ctx, st.BlockIndex, recentLimit)
			if err != nil {
				return historyLoadedMsg{Stats: stats, Recent: recent}
			}
			recent[st.BlockIndex] = answers
		}
		return historyLoadedMsg{Stats: stats, Recent: recent}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return layout.HintsFor(s.keys.Expand, s.keys.Up, s.keys.Back)
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.stats = msg.Stats
			s.recent = msg.Recent
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, s.keys.Back):
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case key.Matches(msg, s.keys.Up):
			if s.selected > 0 {
				s.selected--
			}
		case key.Matches(msg, s.keys.Down):
			if s.selected < len(s.stats)-1 {
				s.selected++
			}
		case key.Matches(msg, s.keys.Expand):
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.stats) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No drills yet. Pick a block in Study mode!")
	}

	cw := min(width-4, 96)

	var b strings.Builder
	b.WriteString("\n")

	for i, st := range s.stats {
		prefix := "  "
		if i == s.selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%sBlock %-3d %3d runs  %4d answers  %3d timed out",
			prefix, st.BlockIndex+1, st.Runs, st.Answers, st.TimedOut)

		style := theme.Unselected
		if i == s.selected {
			style = theme.Selected
		}
		bar := components.NewProgressBar("", st.Accuracy(), true, 22)
		row := style.Render(line) + "  " + bar.View()
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(cw).Render(row)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderRecent(st.BlockIndex, width, cw))
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderRecent(blockIndex, width, cw int) string {
	answers := s.recent[blockIndex]
	if len(answers) == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Width(cw).Render("    No answers recorded")) + "\n"
	}

	var b strings.Builder
	for _, a := range answers {
		var mark string
		switch {
		case a.Correct:
			mark = theme.Correct.Render("✓")
		case a.TimedOut:
			mark = theme.Incorrect.Render("⏱")
		default:
			mark = theme.Incorrect.Render("✗")
		}
		line := fmt.Sprintf("    %s  Question #%-4d %s", mark, a.QuestionID,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(a.AnsweredAt.Local().Format("Jan 02 15:04")))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(cw).Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}
