// Package learn implements the passive walkthrough screen: every card of a
// block with its answer, one at a time.
package learn

import (
	"fmt"
	"log/slog"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/blockquiz/internal/bank"
	walk "github.com/abhisek/blockquiz/internal/learn"
	"github.com/abhisek/blockquiz/internal/router"
	"github.com/abhisek/blockquiz/internal/screen"
	"github.com/abhisek/blockquiz/internal/ui/components"
	"github.com/abhisek/blockquiz/internal/ui/layout"
	"github.com/abhisek/blockquiz/internal/ui/theme"
)

// LearnedMarker records that a block's walkthrough was completed.
type LearnedMarker interface {
	IsLearned(blockIndex int) bool
	MarkLearned(blockIndex int)
}

type keyMap struct {
	Next key.Binding
	Prev key.Binding
	Back key.Binding
}

// LearnScreen shows the cards of one block.
type LearnScreen struct {
	block   bank.Block
	walk    *walk.Walkthrough
	learned LearnedMarker
	logger  *slog.Logger
	keys    keyMap

	// marked is set once the block has been recorded as learned.
	marked bool
}

var _ screen.Screen = (*LearnScreen)(nil)
var _ screen.KeyHintProvider = (*LearnScreen)(nil)

// New creates a LearnScreen for block.
func New(block bank.Block, learned LearnedMarker, logger *slog.Logger) *LearnScreen {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LearnScreen{
		block:   block,
		walk:    walk.New(block.Len()),
		learned: learned,
		logger:  logger.With("block", block.Index),
		keys: keyMap{
			Next: key.NewBinding(key.WithKeys("right", "l", "enter", "space"), key.WithHelp("→", "Next")),
			Prev: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "Previous")),
			Back: key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Back")),
		},
	}
}

func (s *LearnScreen) Init() tea.Cmd {
	if s.learned != nil && s.learned.IsLearned(s.block.Index) {
		s.marked = true
	}
	s.checkComplete()
	return nil
}

func (s *LearnScreen) Title() string {
	return s.block.Name() + " · Learn"
}

func (s *LearnScreen) KeyHints() []layout.KeyHint {
	if s.block.IsEmpty() {
		return layout.HintsFor(s.keys.Back)
	}
	return layout.HintsFor(s.keys.Prev, s.keys.Next, s.keys.Back)
}

func (s *LearnScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	switch {
	case key.Matches(kmsg, s.keys.Back):
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case key.Matches(kmsg, s.keys.Next):
		s.walk.Next()
	case key.Matches(kmsg, s.keys.Prev):
		s.walk.Prev()
	default:
		return s, nil
	}
	s.checkComplete()
	return s, nil
}

// checkComplete marks the block learned the first time every card has
// been viewed.
func (s *LearnScreen) checkComplete() {
	if s.marked || !s.walk.Complete() {
		return
	}
	s.marked = true
	if s.learned != nil {
		s.learned.MarkLearned(s.block.Index)
	}
	s.logger.Info("block learned")
}

func (s *LearnScreen) View(width, height int) string {
	if s.block.IsEmpty() {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("No questions in this block"))
	}

	w := min(64, width-4)
	q := s.block.Questions[s.walk.Index()]

	var b strings.Builder
	counter := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("Card %d / %d", s.walk.Index()+1, s.walk.Len()))
	viewed := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Viewed %d", s.walk.Viewed()))
	gap := max(w-lipgloss.Width(counter)-lipgloss.Width(viewed), 2)
	b.WriteString(counter + strings.Repeat(" ", gap) + viewed)
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", float64(s.walk.Viewed())/float64(s.walk.Len()), false, w).View())
	b.WriteString("\n\n")

	card := components.Card{
		Heading:  fmt.Sprintf("Question #%d", q.ID),
		Question: q.Question,
		Answer:   q.Answer,
		Reveal:   true,
		Width:    w,
	}
	b.WriteString(card.View())

	if s.walk.Complete() {
		b.WriteString("\n\n")
		b.WriteString(theme.Correct.Render("Block learned! Try it in Study mode next."))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
