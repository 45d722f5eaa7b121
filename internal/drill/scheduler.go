// Package drill implements the study-mode scheduler for one block: a
// primary deck drained in order, a review pile of missed questions that is
// interleaved every ReviewInterval draws, a revocable mastery set and the
// per-question reveal/evaluate state machine with its countdown.
//
// A Scheduler is not safe for concurrent use. It is driven from a single
// event loop; every method runs one transition to completion.
package drill

import (
	"errors"
	"math/rand/v2"
	"slices"

	"github.com/abhisek/blockquiz/internal/bank"
)

// ReviewInterval is the number of primary-deck draws between review-pile draws.
const ReviewInterval = 3

// ErrEmptyBlock is returned when starting a drill on a block with no questions.
var ErrEmptyBlock = errors.New("block has no questions")

// Phase is the per-question state of the drill.
type Phase int

const (
	PhaseIdle                 Phase = iota // Not started yet
	PhasePresenting                        // Question shown, countdown running
	PhaseAnswerShown                       // Answer revealed, awaiting evaluation
	PhaseAwaitingWrongConfirm              // Miss in progress, awaiting confirmation
	PhaseFinished                          // Deck and pile exhausted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePresenting:
		return "presenting"
	case PhaseAnswerShown:
		return "answer-shown"
	case PhaseAwaitingWrongConfirm:
		return "awaiting-wrong-confirmation"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Evaluation describes a question that has just been evaluated.
type Evaluation struct {
	Question bank.QuestionItem
	Correct  bool
	TimedOut bool
}

// Scheduler owns the drill state of one block.
type Scheduler struct {
	block     bank.Block
	lookup    map[int]bank.QuestionItem
	persister Persister
	shuffle   func(n int, swap func(i, j int))

	primaryDeck []bank.QuestionItem
	reviewPile  []bank.QuestionItem
	mastered    map[int]bool
	sinceReview int

	current    *bank.QuestionItem
	phase      Phase
	showAnswer bool
	timedOut   bool
	timer      countdown
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithRand makes the initial ordering come from r instead of the global source.
func WithRand(r *rand.Rand) Option {
	return func(s *Scheduler) {
		s.shuffle = r.Shuffle
	}
}

// New creates a scheduler for block. persister may be nil, in which case
// nothing is loaded or saved.
func New(block bank.Block, persister Persister, opts ...Option) *Scheduler {
	s := &Scheduler{
		block:     block,
		lookup:    block.Lookup(),
		persister: persister,
		shuffle:   rand.Shuffle,
		mastered:  make(map[int]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the block's saved snapshot, or deals a freshly shuffled deck
// when there is none, and presents the first question.
func (s *Scheduler) Start() error {
	if s.block.IsEmpty() {
		return ErrEmptyBlock
	}
	s.timer.cancel()

	var snap Snapshot
	var ok bool
	if s.persister != nil {
		snap, ok = s.persister.LoadProgress(s.block.Index)
	}

	if ok && s.restore(snap) {
		s.present()
	} else {
		if !ok {
			s.deal()
		}
		s.advance()
	}
	s.persist()
	return nil
}

// Reset discards saved progress and starts over with a new ordering.
func (s *Scheduler) Reset() error {
	if s.block.IsEmpty() {
		return ErrEmptyBlock
	}
	s.timer.cancel()
	if s.persister != nil {
		s.persister.ClearProgress(s.block.Index)
	}
	s.deal()
	s.advance()
	s.persist()
	return nil
}

// deal resets to the no-snapshot state with a uniformly shuffled deck.
func (s *Scheduler) deal() {
	deck := slices.Clone(s.block.Questions)
	s.shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	s.primaryDeck = deck
	s.reviewPile = nil
	s.mastered = make(map[int]bool)
	s.sinceReview = 0
	s.current = nil
}

// advance draws the next question, or finishes the drill when none is left.
func (s *Scheduler) advance() {
	s.timer.cancel()
	s.showAnswer = false
	s.timedOut = false

	var next bank.QuestionItem
	switch {
	case len(s.reviewPile) > 0 && s.sinceReview >= ReviewInterval && len(s.primaryDeck) > 0:
		next, s.reviewPile = s.reviewPile[0], s.reviewPile[1:]
		s.sinceReview = 0
	case len(s.primaryDeck) > 0:
		next, s.primaryDeck = s.primaryDeck[0], s.primaryDeck[1:]
		s.sinceReview++
	case len(s.reviewPile) > 0:
		next, s.reviewPile = s.reviewPile[0], s.reviewPile[1:]
		s.sinceReview = 0
	default:
		s.current = nil
		s.phase = PhaseFinished
		return
	}

	s.current = &next
	s.present()
}

// present enters the presenting phase for the current question.
func (s *Scheduler) present() {
	s.showAnswer = false
	s.timedOut = false
	s.phase = PhasePresenting
	s.timer.start()
}

// Reveal shows the answer. Valid only while presenting.
func (s *Scheduler) Reveal() bool {
	if s.phase != PhasePresenting || s.current == nil {
		return false
	}
	s.timer.cancel()
	s.showAnswer = true
	s.phase = PhaseAnswerShown
	return true
}

// MarkMiss shows the answer and goes straight to miss confirmation, for a
// learner who already knows they got it wrong. Valid only while presenting.
func (s *Scheduler) MarkMiss() bool {
	if s.phase != PhasePresenting || s.current == nil {
		return false
	}
	s.timer.cancel()
	s.showAnswer = true
	s.phase = PhaseAwaitingWrongConfirm
	return true
}

// Timeout handles the countdown reaching zero: the answer is shown and a
// miss awaits confirmation. It never evaluates on its own.
func (s *Scheduler) Timeout() bool {
	if s.phase != PhasePresenting || s.current == nil {
		return false
	}
	s.timer.cancel()
	s.showAnswer = true
	s.timedOut = true
	s.phase = PhaseAwaitingWrongConfirm
	return true
}

// Tick advances the countdown of the given epoch by one step and fires
// Timeout when it runs out. It reports whether another tick should be
// scheduled for the same epoch.
func (s *Scheduler) Tick(epoch uint64) bool {
	expired, ok := s.timer.tick(epoch)
	if !ok {
		return false
	}
	if expired {
		s.Timeout()
		return false
	}
	return true
}

// Evaluate records the outcome for the current question and moves on.
// A correct signal while a miss awaits confirmation is ignored.
func (s *Scheduler) Evaluate(correct bool) (Evaluation, bool) {
	if s.current == nil {
		return Evaluation{}, false
	}
	switch s.phase {
	case PhaseAnswerShown:
	case PhaseAwaitingWrongConfirm:
		if correct {
			return Evaluation{}, false
		}
	default:
		return Evaluation{}, false
	}

	q := *s.current
	ev := Evaluation{Question: q, Correct: correct, TimedOut: s.timedOut}

	if correct {
		s.mastered[q.ID] = true
	} else {
		delete(s.mastered, q.ID)
	}

	s.reviewPile = slices.DeleteFunc(s.reviewPile, func(item bank.QuestionItem) bool {
		return item.ID == q.ID
	})
	if !correct {
		s.reviewPile = append(s.reviewPile, q)
	}

	s.current = nil
	s.advance()
	s.persist()
	return ev, true
}

// Teardown stops the countdown and saves progress, unless the drill has
// finished: a finished block keeps the snapshot its last evaluation wrote.
func (s *Scheduler) Teardown() {
	s.timer.cancel()
	if s.phase == PhaseIdle || s.phase == PhaseFinished {
		return
	}
	s.persist()
}

func (s *Scheduler) persist() {
	if s.persister == nil {
		return
	}
	s.persister.SaveProgress(s.block.Index, s.Snapshot())
}

// Block returns the block being drilled.
func (s *Scheduler) Block() bank.Block { return s.block }

// Phase returns the current phase.
func (s *Scheduler) Phase() Phase { return s.phase }

// Current returns the question on screen.
func (s *Scheduler) Current() (bank.QuestionItem, bool) {
	if s.current == nil {
		return bank.QuestionItem{}, false
	}
	return *s.current, true
}

// ShowAnswer reports whether the answer is visible.
func (s *Scheduler) ShowAnswer() bool { return s.showAnswer }

// TimedOut reports whether the current miss confirmation came from a timeout.
func (s *Scheduler) TimedOut() bool { return s.timedOut }

// TimerRunning reports whether the countdown is live.
func (s *Scheduler) TimerRunning() bool { return s.timer.running }

// TimerEpoch identifies the live countdown; ticks must carry it.
func (s *Scheduler) TimerEpoch() uint64 { return s.timer.epoch }

// TimerPercent returns the remaining time in [0, 100].
func (s *Scheduler) TimerPercent() float64 { return s.timer.percent() }

// PrimaryDeckSize returns the number of undrawn questions.
func (s *Scheduler) PrimaryDeckSize() int { return len(s.primaryDeck) }

// ReviewPileSize returns the number of questions awaiting review.
func (s *Scheduler) ReviewPileSize() int { return len(s.reviewPile) }

// QuestionsSinceLastReview returns the review cadence counter.
func (s *Scheduler) QuestionsSinceLastReview() int { return s.sinceReview }

// MasteredCount returns the size of the mastery set.
func (s *Scheduler) MasteredCount() int { return len(s.mastered) }

// IsMastered reports whether id's latest evaluation was correct.
func (s *Scheduler) IsMastered(id int) bool { return s.mastered[id] }

// Total returns the number of questions in the block.
func (s *Scheduler) Total() int { return s.block.Len() }

// Score returns mastered / total in [0, 1].
func (s *Scheduler) Score() float64 {
	if s.block.Len() == 0 {
		return 0
	}
	return min(float64(len(s.mastered))/float64(s.block.Len()), 1)
}
