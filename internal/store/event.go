package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"
)

// sequenceCounter hands out a monotonic sequence for the answer log so
// evaluations keep their order even when two land in the same millisecond.
// The mutex serializes within the process; the RETURNING clause makes the
// increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// eventRepo implements EventRepo on the drill_answers table.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendDrillAnswer(ctx context.Context, data DrillAnswerData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	at := data.AnsweredAt
	if at.IsZero() {
		at = time.Now()
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO drill_answers
		 (sequence, run_id, block_index, question_id, correct, timed_out, answered_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		seqNum, data.RunID, data.BlockIndex, data.QuestionID,
		boolToInt(data.Correct), boolToInt(data.TimedOut), at.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save drill answer: %w", err)
	}
	return nil
}

func (r *eventRepo) BlockAccuracies(ctx context.Context) ([]BlockAccuracy, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT block_index,
		       COUNT(*),
		       SUM(correct),
		       SUM(timed_out),
		       COUNT(DISTINCT run_id),
		       MAX(answered_at)
		FROM drill_answers
		GROUP BY block_index
		ORDER BY block_index`)
	if err != nil {
		return nil, fmt.Errorf("query block accuracy: %w", err)
	}
	defer rows.Close()

	var out []BlockAccuracy
	for rows.Next() {
		var (
			ba     BlockAccuracy
			lastMs int64
		)
		if err := rows.Scan(&ba.BlockIndex, &ba.Answers, &ba.Correct, &ba.TimedOut, &ba.Runs, &lastMs); err != nil {
			return nil, fmt.Errorf("scan block accuracy: %w", err)
		}
		ba.LastAt = time.UnixMilli(lastMs)
		out = append(out, ba)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query block accuracy: %w", err)
	}
	return out, nil
}

func (r *eventRepo) RecentAnswers(ctx context.Context, blockIndex, limit int) ([]DrillAnswerRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT sequence, run_id, block_index, question_id, correct, timed_out, answered_at
		FROM drill_answers
		WHERE block_index = ?
		ORDER BY sequence DESC
		LIMIT ?`, blockIndex, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent answers: %w", err)
	}
	defer rows.Close()

	var out []DrillAnswerRecord
	for rows.Next() {
		var (
			rec               DrillAnswerRecord
			correct, timedOut int
			atMs              int64
		)
		if err := rows.Scan(&rec.Sequence, &rec.RunID, &rec.BlockIndex, &rec.QuestionID, &correct, &timedOut, &atMs); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		rec.Correct = correct != 0
		rec.TimedOut = timedOut != 0
		rec.AnsweredAt = time.UnixMilli(atMs)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query recent answers: %w", err)
	}
	return out, nil
}

func (r *eventRepo) ClearAnswers(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM drill_answers`); err != nil {
		return fmt.Errorf("clear drill answers: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
