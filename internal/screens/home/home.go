// Package home implements the block selection screen.
package home

import (
	"fmt"
	"log/slog"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/blockquiz/internal/bank"
	"github.com/abhisek/blockquiz/internal/progress"
	"github.com/abhisek/blockquiz/internal/router"
	"github.com/abhisek/blockquiz/internal/screen"
	"github.com/abhisek/blockquiz/internal/screens/history"
	learnscreen "github.com/abhisek/blockquiz/internal/screens/learn"
	"github.com/abhisek/blockquiz/internal/screens/study"
	"github.com/abhisek/blockquiz/internal/store"
	"github.com/abhisek/blockquiz/internal/ui/components"
	"github.com/abhisek/blockquiz/internal/ui/layout"
	"github.com/abhisek/blockquiz/internal/ui/theme"
)

// Mode is the study modality a block opens in.
type Mode int

const (
	ModeLearn Mode = iota
	ModeStudy
)

type keyMap struct {
	Open    key.Binding
	Mode    key.Binding
	Clear   key.Binding
	History key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Quit    key.Binding
}

// HomeScreen lists the blocks of the bank.
type HomeScreen struct {
	title     string
	blocks    []bank.Block
	tracker   *progress.Tracker
	eventRepo store.EventRepo
	logger    *slog.Logger

	menu   components.Menu
	toggle components.Toggle
	keys   keyMap

	confirmClear bool
	learned      int
	mastered     int
	questions    int
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a HomeScreen. tracker is required; eventRepo may be nil.
func New(title string, blocks []bank.Block, tracker *progress.Tracker, eventRepo store.EventRepo, logger *slog.Logger) *HomeScreen {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := &HomeScreen{
		title:     title,
		blocks:    blocks,
		tracker:   tracker,
		eventRepo: eventRepo,
		logger:    logger,
		toggle:    components.NewToggle("Learn", "Study"),
		keys: keyMap{
			Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Open")),
			Mode:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("Tab", "Learn/Study")),
			Clear:   key.NewBinding(key.WithKeys("c"), key.WithHelp("C", "Clear progress")),
			History: key.NewBinding(key.WithKeys("s"), key.WithHelp("S", "History")),
			Confirm: key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("Y", "Clear")),
			Cancel:  key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("N", "Cancel")),
			Quit:    key.NewBinding(key.WithKeys("q"), key.WithHelp("Q", "Quit")),
		},
	}
	h.menu = components.NewMenu(nil)
	h.refresh()
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume reloads progress after a learn or study screen closes.
func (h *HomeScreen) Resume() tea.Cmd {
	h.refresh()
	return nil
}

func (h *HomeScreen) Title() string {
	return "Blocks"
}

// Mode returns the active modality.
func (h *HomeScreen) Mode() Mode {
	return Mode(h.toggle.Active)
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.confirmClear {
		return layout.HintsFor(h.keys.Confirm, h.keys.Cancel)
	}
	return layout.HintsFor(h.menu.Keys.Up, h.keys.Open, h.keys.Mode, h.keys.History, h.keys.Clear, h.keys.Quit)
}

// refresh rebuilds the block rows from saved progress.
func (h *HomeScreen) refresh() {
	learnedSet := h.tracker.Learned()

	items := make([]components.MenuItem, len(h.blocks))
	h.learned, h.mastered, h.questions = 0, 0, 0
	for i, b := range h.blocks {
		mastered := h.tracker.MasteredCount(b.Index)
		first, last := b.IDRange()

		item := components.MenuItem{
			Label:  fmt.Sprintf("%-9s", b.Name()),
			Detail: fmt.Sprintf("#%d–%d  ·  %d questions  ·  %d/%d mastered", first, last, b.Len(), mastered, b.Len()),
		}
		if learnedSet[b.Index] {
			item.Badge = "LEARNED"
			h.learned++
		}
		items[i] = item

		h.mastered += mastered
		h.questions += b.Len()
	}

	selected := h.menu.Selected
	h.menu.Items = items
	h.menu.Selected = min(selected, max(len(items)-1, 0))
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return h, nil
	}

	if h.confirmClear {
		switch {
		case key.Matches(kmsg, h.keys.Confirm):
			h.tracker.ClearAll()
			h.logger.Info("cleared all progress")
			h.confirmClear = false
			h.refresh()
		case key.Matches(kmsg, h.keys.Cancel):
			h.confirmClear = false
		}
		return h, nil
	}

	switch {
	case key.Matches(kmsg, h.keys.Quit):
		return h, tea.Quit
	case key.Matches(kmsg, h.keys.Mode):
		h.toggle = h.toggle.Next()
		return h, nil
	case key.Matches(kmsg, h.keys.Clear):
		h.confirmClear = true
		return h, nil
	case key.Matches(kmsg, h.keys.Open):
		return h, h.open()
	case key.Matches(kmsg, h.keys.History):
		if h.eventRepo == nil {
			return h, nil
		}
		next := history.New(h.eventRepo)
		return h, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}

	h.menu = h.menu.Update(kmsg)
	return h, nil
}

// open pushes the selected block in the active mode.
func (h *HomeScreen) open() tea.Cmd {
	if len(h.blocks) == 0 {
		return nil
	}
	block := h.blocks[h.menu.Selected]

	var next screen.Screen
	switch h.Mode() {
	case ModeStudy:
		next = study.New(block, h.tracker, h.eventRepo, h.logger)
	default:
		next = learnscreen.New(block, h.tracker, h.logger)
	}
	h.logger.Debug("open block", "block", block.Index, "mode", h.toggle.Options[h.toggle.Active])
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (h *HomeScreen) View(width, height int) string {
	cw := contentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(h.title, cw))
	sections = append(sections, renderStatsBar(h.learned, h.mastered, len(h.blocks), h.questions, cw))

	if h.confirmClear {
		sections = append(sections, renderClearConfirm(cw))
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n\n"))
	}

	mode := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(h.toggle.View())
	sections = append(sections, mode)

	if len(h.blocks) == 0 {
		sections = append(sections, theme.Hint.Render("The question bank is empty."))
	} else {
		// Leave room for the title, stats box, toggle and gaps.
		rows := max(height-12, 3)
		sections = append(sections, h.menu.View(cw, rows))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n\n"))
}
