package store

import (
	"context"
	"time"
)

// KV is a string key-value store. Get reports ok=false for a missing key.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error

	// Keys lists every key starting with prefix, in lexical order.
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// DrillAnswerData captures a single evaluated drill question.
type DrillAnswerData struct {
	RunID      string
	BlockIndex int
	QuestionID int
	Correct    bool
	TimedOut   bool
	AnsweredAt time.Time
}

// DrillAnswerRecord is a logged answer with its position in the log.
type DrillAnswerRecord struct {
	Sequence int64
	DrillAnswerData
}

// BlockAccuracy aggregates the answer log for one block.
type BlockAccuracy struct {
	BlockIndex int
	Answers    int
	Correct    int
	TimedOut   int
	Runs       int
	LastAt     time.Time
}

// Accuracy returns Correct / Answers, or 0 when nothing was answered.
func (b BlockAccuracy) Accuracy() float64 {
	if b.Answers == 0 {
		return 0
	}
	return float64(b.Correct) / float64(b.Answers)
}

// EventRepo provides append access to the drill answer log.
type EventRepo interface {
	// AppendDrillAnswer records one evaluation.
	AppendDrillAnswer(ctx context.Context, data DrillAnswerData) error

	// BlockAccuracies returns per-block aggregates ordered by block index.
	BlockAccuracies(ctx context.Context) ([]BlockAccuracy, error)

	// RecentAnswers returns up to limit answers for a block, newest first.
	RecentAnswers(ctx context.Context, blockIndex, limit int) ([]DrillAnswerRecord, error)

	// ClearAnswers deletes the answer log for every block.
	ClearAnswers(ctx context.Context) error
}
