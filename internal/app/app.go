package app

import (
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/blockquiz/internal/bank"
	"github.com/abhisek/blockquiz/internal/progress"
	"github.com/abhisek/blockquiz/internal/router"
	"github.com/abhisek/blockquiz/internal/screen"
	"github.com/abhisek/blockquiz/internal/screens/home"
	"github.com/abhisek/blockquiz/internal/store"
	"github.com/abhisek/blockquiz/internal/ui/layout"
)

// Options holds the dependencies of the interactive app.
type Options struct {
	BankTitle string
	Blocks    []bank.Block
	Tracker   *progress.Tracker
	EventRepo store.EventRepo
	Logger    *slog.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router    *router.Router
	bankTitle string
	logger    *slog.Logger
	width     int
	height    int
}

// newAppModel creates a new AppModel with the block selection screen.
func newAppModel(opts Options) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	homeScreen := home.New(opts.BankTitle, opts.Blocks, opts.Tracker, opts.EventRepo, logger)
	return AppModel{
		router:    router.New(homeScreen),
		bankTitle: opts.BankTitle,
		logger:    logger,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render composes header, active screen and footer for the current size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.bankTitle, m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	}
	footerHints = append(footerHints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until it exits. Screens
// still on the stack are closed on the way out.
func Run(opts Options) error {
	model := newAppModel(opts)
	_, err := tea.NewProgram(model).Run()
	// The router is shared by every copy of the model.
	model.router.CloseAll()
	if err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
