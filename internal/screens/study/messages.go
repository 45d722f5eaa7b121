package study

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/blockquiz/internal/drill"
)

// timerTickMsg is one countdown step for the question shown under epoch.
type timerTickMsg struct {
	epoch uint64
}

// tickCmd schedules the next countdown step for epoch.
func tickCmd(epoch uint64) tea.Cmd {
	return tea.Tick(drill.TimerTick, func(time.Time) tea.Msg {
		return timerTickMsg{epoch: epoch}
	})
}
