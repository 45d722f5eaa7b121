package drill

import (
	"slices"

	"github.com/abhisek/blockquiz/internal/bank"
)

// Snapshot is the persisted scheduling state of one block.
type Snapshot struct {
	PrimaryDeckIDs           []int `json:"primaryDeckIds"`
	ReviewPileIDs            []int `json:"reviewPileIds"`
	MasteredIDs              []int `json:"masteredIds"`
	QuestionsSinceLastReview int   `json:"questionsSinceLastReview"`

	// CurrentQuestionID is the question on screen when the snapshot was
	// taken. Older snapshots omit it.
	CurrentQuestionID *int `json:"currentQuestionId,omitempty"`
}

// Persister stores snapshots per block index. Implementations swallow
// their own failures.
type Persister interface {
	LoadProgress(blockIndex int) (Snapshot, bool)
	SaveProgress(blockIndex int, snap Snapshot)
	ClearProgress(blockIndex int)
}

// Snapshot captures the current scheduling state.
func (s *Scheduler) Snapshot() Snapshot {
	mastered := make([]int, 0, len(s.mastered))
	for id := range s.mastered {
		mastered = append(mastered, id)
	}
	slices.Sort(mastered)

	snap := Snapshot{
		PrimaryDeckIDs:           ids(s.primaryDeck),
		ReviewPileIDs:            ids(s.reviewPile),
		MasteredIDs:              mastered,
		QuestionsSinceLastReview: s.sinceReview,
	}
	if s.current != nil {
		id := s.current.ID
		snap.CurrentQuestionID = &id
	}
	return snap
}

// restore rebuilds state from snap. Ids unknown to the block are dropped,
// as are ids already placed, so a damaged snapshot cannot duplicate a
// question. It reports whether a current question was restored.
func (s *Scheduler) restore(snap Snapshot) bool {
	placed := make(map[int]bool)
	rehydrate := func(idList []int) []bank.QuestionItem {
		out := make([]bank.QuestionItem, 0, len(idList))
		for _, id := range idList {
			q, ok := s.lookup[id]
			if !ok || placed[id] {
				continue
			}
			placed[id] = true
			out = append(out, q)
		}
		return out
	}

	s.current = nil
	if snap.CurrentQuestionID != nil {
		if q, ok := s.lookup[*snap.CurrentQuestionID]; ok {
			placed[q.ID] = true
			s.current = &q
		}
	}
	s.primaryDeck = rehydrate(snap.PrimaryDeckIDs)
	s.reviewPile = rehydrate(snap.ReviewPileIDs)

	s.mastered = make(map[int]bool, len(snap.MasteredIDs))
	for _, id := range snap.MasteredIDs {
		s.mastered[id] = true
	}
	s.sinceReview = snap.QuestionsSinceLastReview
	return s.current != nil
}

func ids(items []bank.QuestionItem) []int {
	out := make([]int, 0, len(items))
	for _, q := range items {
		out = append(out, q.ID)
	}
	return out
}
