// Package study implements the drill screen: one question at a time with a
// countdown, self-grading, a review pile for misses and a result view.
package study

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/blockquiz/internal/bank"
	"github.com/abhisek/blockquiz/internal/drill"
	"github.com/abhisek/blockquiz/internal/router"
	"github.com/abhisek/blockquiz/internal/screen"
	"github.com/abhisek/blockquiz/internal/store"
	"github.com/abhisek/blockquiz/internal/ui/layout"
)

// StudyScreen drives a drill.Scheduler for one block.
type StudyScreen struct {
	sched     *drill.Scheduler
	eventRepo store.EventRepo
	logger    *slog.Logger
	keys      keyMap

	runID   string
	started bool
	errMsg  string

	// tickEpoch is the countdown epoch a tick chain is already running for.
	tickEpoch uint64
	ticking   bool
}

var _ screen.Screen = (*StudyScreen)(nil)
var _ screen.KeyHintProvider = (*StudyScreen)(nil)
var _ screen.Closer = (*StudyScreen)(nil)

// New creates a StudyScreen. eventRepo may be nil to skip the answer log.
func New(block bank.Block, persister drill.Persister, eventRepo store.EventRepo, logger *slog.Logger, opts ...drill.Option) *StudyScreen {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &StudyScreen{
		sched:     drill.New(block, persister, opts...),
		eventRepo: eventRepo,
		logger:    logger.With("block", block.Index),
		keys:      newKeyMap(),
	}
}

func (s *StudyScreen) Init() tea.Cmd {
	if err := s.sched.Start(); err != nil {
		if !errors.Is(err, drill.ErrEmptyBlock) {
			s.errMsg = err.Error()
		}
		return nil
	}
	s.started = true
	s.runID = uuid.New().String()
	s.logger.Info("drill started", "run", s.runID, "phase", s.sched.Phase().String(),
		"mastered", s.sched.MasteredCount(), "total", s.sched.Total())
	return s.startTicking()
}

func (s *StudyScreen) Title() string {
	return s.sched.Block().Name()
}

// Scheduler exposes the drill state, mainly for tests.
func (s *StudyScreen) Scheduler() *drill.Scheduler {
	return s.sched
}

// Close flushes progress when the screen leaves the stack.
func (s *StudyScreen) Close() {
	if !s.started {
		return
	}
	s.sched.Teardown()
	s.ticking = false
	s.logger.Debug("drill closed", "run", s.runID, "phase", s.sched.Phase().String())
}

func (s *StudyScreen) KeyHints() []layout.KeyHint {
	if !s.started {
		return layout.HintsFor(s.keys.Back)
	}
	switch s.sched.Phase() {
	case drill.PhasePresenting:
		return layout.HintsFor(s.keys.Reveal, s.keys.MissNow, s.keys.Back)
	case drill.PhaseAnswerShown:
		return layout.HintsFor(s.keys.Correct, s.keys.Missed, s.keys.Back)
	case drill.PhaseAwaitingWrongConfirm:
		return layout.HintsFor(s.keys.Confirm, s.keys.Back)
	case drill.PhaseFinished:
		return layout.HintsFor(s.keys.Restart, s.keys.Back)
	}
	return layout.HintsFor(s.keys.Back)
}

func (s *StudyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return s.handleTimerTick(msg)
	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *StudyScreen) handleTimerTick(msg timerTickMsg) (screen.Screen, tea.Cmd) {
	if !s.ticking || msg.epoch != s.tickEpoch {
		return s, nil
	}
	if s.sched.Tick(msg.epoch) {
		return s, tickCmd(msg.epoch)
	}
	s.ticking = false
	if s.sched.TimedOut() {
		if q, ok := s.sched.Current(); ok {
			s.logger.Debug("question timed out", "run", s.runID, "question", q.ID)
		}
	}
	return s, nil
}

func (s *StudyScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if key.Matches(msg, s.keys.Back) {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if !s.started {
		return s, nil
	}

	switch s.sched.Phase() {
	case drill.PhasePresenting:
		var moved bool
		switch {
		case key.Matches(msg, s.keys.MissNow):
			moved = s.sched.MarkMiss()
		case key.Matches(msg, s.keys.Reveal):
			moved = s.sched.Reveal()
		}
		if moved {
			s.ticking = false
		}

	case drill.PhaseAnswerShown:
		switch {
		case key.Matches(msg, s.keys.Correct):
			return s, s.evaluate(true)
		case key.Matches(msg, s.keys.Missed):
			return s, s.evaluate(false)
		}

	case drill.PhaseAwaitingWrongConfirm:
		if key.Matches(msg, s.keys.Confirm) {
			return s, s.evaluate(false)
		}

	case drill.PhaseFinished:
		if key.Matches(msg, s.keys.Restart) {
			return s, s.restart()
		}
	}
	return s, nil
}

func (s *StudyScreen) evaluate(correct bool) tea.Cmd {
	ev, ok := s.sched.Evaluate(correct)
	if !ok {
		return nil
	}
	s.recordAnswer(ev)

	if s.sched.Phase() == drill.PhaseFinished {
		s.logger.Info("drill finished", "run", s.runID,
			"mastered", s.sched.MasteredCount(), "total", s.sched.Total())
	}
	return s.startTicking()
}

func (s *StudyScreen) restart() tea.Cmd {
	if err := s.sched.Reset(); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.runID = uuid.New().String()
	s.logger.Info("drill restarted", "run", s.runID)
	return s.startTicking()
}

// startTicking begins a tick chain for the live countdown unless one is
// already running for it.
func (s *StudyScreen) startTicking() tea.Cmd {
	if !s.sched.TimerRunning() {
		s.ticking = false
		return nil
	}
	epoch := s.sched.TimerEpoch()
	if s.ticking && s.tickEpoch == epoch {
		return nil
	}
	s.tickEpoch = epoch
	s.ticking = true
	return tickCmd(epoch)
}

func (s *StudyScreen) recordAnswer(ev drill.Evaluation) {
	if s.eventRepo == nil {
		return
	}
	err := s.eventRepo.AppendDrillAnswer(context.Background(), store.DrillAnswerData{
		RunID:      s.runID,
		BlockIndex: s.sched.Block().Index,
		QuestionID: ev.Question.ID,
		Correct:    ev.Correct,
		TimedOut:   ev.TimedOut,
		AnsweredAt: time.Now(),
	})
	if err != nil {
		s.logger.Error("record drill answer", "run", s.runID, "question", ev.Question.ID, "error", err)
	}
}
