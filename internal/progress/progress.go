// Package progress persists the learned-block set and per-block drill
// snapshots in a key-value store.
//
// Storage failures never reach callers: reads degrade to "no data" and
// writes to no-ops, with the failure logged.
package progress

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"slices"
	"strconv"

	"github.com/abhisek/blockquiz/internal/drill"
	"github.com/abhisek/blockquiz/internal/store"
)

const (
	// LearnedKey holds a JSON array of learned block indexes.
	LearnedKey = "learnedBlocks_v1"

	// StudyProgressPrefix prefixes the per-block drill snapshot keys.
	StudyProgressPrefix = "studyProgress_v1_"
)

// StudyProgressKey returns the snapshot key for a block.
func StudyProgressKey(blockIndex int) string {
	return StudyProgressPrefix + strconv.Itoa(blockIndex)
}

// Tracker reads and writes progress through a store.KV.
type Tracker struct {
	kv     store.KV
	logger *slog.Logger
}

var _ drill.Persister = (*Tracker)(nil)

// New creates a Tracker. A nil logger discards.
func New(kv store.KV, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Tracker{kv: kv, logger: logger}
}

// Learned returns the set of learned block indexes.
func (t *Tracker) Learned() map[int]bool {
	set := make(map[int]bool)
	raw, ok, err := t.kv.Get(context.Background(), LearnedKey)
	if err != nil {
		t.logger.Error("read learned blocks", "error", err)
		return set
	}
	if !ok {
		return set
	}

	var parsed []any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		t.logger.Error("decode learned blocks", "error", err)
		return set
	}
	// Keep integral numbers only; anything else is stale or foreign data.
	for _, v := range parsed {
		f, ok := v.(float64)
		if !ok || f != math.Trunc(f) {
			continue
		}
		set[int(f)] = true
	}
	return set
}

// IsLearned reports whether the block's walkthrough was fully viewed.
func (t *Tracker) IsLearned(blockIndex int) bool {
	return t.Learned()[blockIndex]
}

// MarkLearned adds the block to the learned set.
func (t *Tracker) MarkLearned(blockIndex int) {
	set := t.Learned()
	if set[blockIndex] {
		return
	}
	set[blockIndex] = true

	indexes := make([]int, 0, len(set))
	for i := range set {
		indexes = append(indexes, i)
	}
	slices.Sort(indexes)

	b, err := json.Marshal(indexes)
	if err != nil {
		t.logger.Error("encode learned blocks", "error", err)
		return
	}
	if err := t.kv.Set(context.Background(), LearnedKey, string(b)); err != nil {
		t.logger.Error("save learned blocks", "block", blockIndex, "error", err)
	}
}

// LoadProgress returns the saved drill snapshot for a block.
func (t *Tracker) LoadProgress(blockIndex int) (drill.Snapshot, bool) {
	raw, ok, err := t.kv.Get(context.Background(), StudyProgressKey(blockIndex))
	if err != nil {
		t.logger.Error("read study progress", "block", blockIndex, "error", err)
		return drill.Snapshot{}, false
	}
	if !ok {
		return drill.Snapshot{}, false
	}

	var snap drill.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		t.logger.Error("decode study progress", "block", blockIndex, "error", err)
		return drill.Snapshot{}, false
	}
	return snap, true
}

// SaveProgress writes the drill snapshot for a block.
func (t *Tracker) SaveProgress(blockIndex int, snap drill.Snapshot) {
	b, err := json.Marshal(snap)
	if err != nil {
		t.logger.Error("encode study progress", "block", blockIndex, "error", err)
		return
	}
	if err := t.kv.Set(context.Background(), StudyProgressKey(blockIndex), string(b)); err != nil {
		t.logger.Error("save study progress", "block", blockIndex, "error", err)
	}
}

// ClearProgress deletes the drill snapshot for a block.
func (t *Tracker) ClearProgress(blockIndex int) {
	if err := t.kv.Delete(context.Background(), StudyProgressKey(blockIndex)); err != nil {
		t.logger.Error("clear study progress", "block", blockIndex, "error", err)
	}
}

// MasteredCount returns how many questions the saved snapshot marks as
// mastered, or 0 when the block has no snapshot.
func (t *Tracker) MasteredCount(blockIndex int) int {
	snap, ok := t.LoadProgress(blockIndex)
	if !ok {
		return 0
	}
	return len(snap.MasteredIDs)
}

// ClearAll deletes the learned set and every block's drill snapshot.
func (t *Tracker) ClearAll() {
	ctx := context.Background()
	if err := t.kv.Delete(ctx, LearnedKey); err != nil {
		t.logger.Error("clear learned blocks", "error", err)
	}

	keys, err := t.kv.Keys(ctx, StudyProgressPrefix)
	if err != nil {
		t.logger.Error("list study progress keys", "error", err)
		return
	}
	for _, k := range keys {
		if err := t.kv.Delete(ctx, k); err != nil {
			t.logger.Error("clear study progress", "key", k, "error", err)
		}
	}
}
