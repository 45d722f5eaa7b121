package progress

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/blockquiz/internal/bank"
	"github.com/abhisek/blockquiz/internal/drill"
	"github.com/abhisek/blockquiz/internal/store"
)

func newTestTracker(t *testing.T) (*Tracker, store.KV) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "progress.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	kv := s.KV()
	return New(kv, nil), kv
}

// brokenKV fails every operation.
type brokenKV struct{}

var errBroken = errors.New("disk on fire")

func (brokenKV) Get(context.Context, string) (string, bool, error) { return "", false, errBroken }
func (brokenKV) Set(context.Context, string, string) error         { return errBroken }
func (brokenKV) Delete(context.Context, string) error              { return errBroken }
func (brokenKV) Keys(context.Context, string) ([]string, error)    { return nil, errBroken }

func TestStudyProgressKey(t *testing.T) {
	assert.Equal(t, "studyProgress_v1_0", StudyProgressKey(0))
	assert.Equal(t, "studyProgress_v1_12", StudyProgressKey(12))
}

func TestLearnedSet(t *testing.T) {
	tr, kv := newTestTracker(t)

	assert.Empty(t, tr.Learned())
	assert.False(t, tr.IsLearned(2))

	tr.MarkLearned(2)
	tr.MarkLearned(0)
	tr.MarkLearned(2)

	assert.True(t, tr.IsLearned(0))
	assert.True(t, tr.IsLearned(2))
	assert.False(t, tr.IsLearned(1))

	raw, ok, err := kv.Get(context.Background(), LearnedKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[0, 2]`, raw)
}

func TestLearnedKeepsIntegersOnly(t *testing.T) {
	tr, kv := newTestTracker(t)
	require.NoError(t, kv.Set(context.Background(), LearnedKey, `[1, "2", 3.5, null, 4, {"a":1}]`))

	assert.Equal(t, map[int]bool{1: true, 4: true}, tr.Learned())
}

func TestLearnedMalformed(t *testing.T) {
	tr, kv := newTestTracker(t)
	require.NoError(t, kv.Set(context.Background(), LearnedKey, `{not json`))

	assert.Empty(t, tr.Learned())

	// Marking overwrites the damaged value.
	tr.MarkLearned(3)
	assert.Equal(t, map[int]bool{3: true}, tr.Learned())
}

func TestProgressRoundTrip(t *testing.T) {
	tr, kv := newTestTracker(t)

	_, ok := tr.LoadProgress(1)
	assert.False(t, ok)
	assert.Zero(t, tr.MasteredCount(1))

	cur := 7
	want := drill.Snapshot{
		PrimaryDeckIDs:           []int{9, 3, 5},
		ReviewPileIDs:            []int{2},
		MasteredIDs:              []int{1, 4},
		QuestionsSinceLastReview: 2,
		CurrentQuestionID:        &cur,
	}
	tr.SaveProgress(1, want)

	got, ok := tr.LoadProgress(1)
	require.True(t, ok)
	assert.Equal(t, want, got)
	assert.Equal(t, 2, tr.MasteredCount(1))

	raw, _, err := kv.Get(context.Background(), "studyProgress_v1_1")
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"primaryDeckIds": [9, 3, 5],
		"reviewPileIds": [2],
		"masteredIds": [1, 4],
		"questionsSinceLastReview": 2,
		"currentQuestionId": 7
	}`, raw)

	tr.ClearProgress(1)
	_, ok = tr.LoadProgress(1)
	assert.False(t, ok)
}

func TestLoadSnapshotWithoutCurrent(t *testing.T) {
	tr, kv := newTestTracker(t)
	require.NoError(t, kv.Set(context.Background(), StudyProgressKey(0),
		`{"primaryDeckIds":[2,1],"reviewPileIds":[],"masteredIds":[3],"questionsSinceLastReview":1}`))

	snap, ok := tr.LoadProgress(0)
	require.True(t, ok)
	assert.Equal(t, []int{2, 1}, snap.PrimaryDeckIDs)
	assert.Nil(t, snap.CurrentQuestionID)
}

func TestMalformedSnapshotIsNoData(t *testing.T) {
	tr, kv := newTestTracker(t)
	require.NoError(t, kv.Set(context.Background(), StudyProgressKey(0), `[1,2,3]`))

	_, ok := tr.LoadProgress(0)
	assert.False(t, ok)
}

func TestClearAllRemovesOnlyOwnKeys(t *testing.T) {
	tr, kv := newTestTracker(t)
	ctx := context.Background()

	tr.MarkLearned(0)
	tr.SaveProgress(0, drill.Snapshot{MasteredIDs: []int{1}})
	tr.SaveProgress(3, drill.Snapshot{MasteredIDs: []int{31}})
	require.NoError(t, kv.Set(ctx, "theme", "dark"))
	require.NoError(t, kv.Set(ctx, "studyProgress_v2_0", "{}"))

	tr.ClearAll()

	assert.Empty(t, tr.Learned())
	_, ok := tr.LoadProgress(0)
	assert.False(t, ok)
	_, ok = tr.LoadProgress(3)
	assert.False(t, ok)

	v, ok, err := kv.Get(ctx, "theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)

	_, ok, err = kv.Get(ctx, "studyProgress_v2_0")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStorageFailuresAreSwallowed(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	tr := New(brokenKV{}, logger)

	assert.NotPanics(t, func() {
		assert.Empty(t, tr.Learned())
		assert.False(t, tr.IsLearned(0))
		tr.MarkLearned(0)

		_, ok := tr.LoadProgress(0)
		assert.False(t, ok)
		tr.SaveProgress(0, drill.Snapshot{})
		tr.ClearProgress(0)
		assert.Zero(t, tr.MasteredCount(0))
		tr.ClearAll()
	})

	assert.Contains(t, buf.String(), "disk on fire")
	assert.Contains(t, buf.String(), "save study progress")
}

func TestTrackerDrivesScheduler(t *testing.T) {
	tr, _ := newTestTracker(t)
	block := bank.Block{Index: 2, Questions: []bank.QuestionItem{
		{ID: 21, Question: "q1", Answer: "a1"},
		{ID: 22, Question: "q2", Answer: "a2"},
		{ID: 23, Question: "q3", Answer: "a3"},
	}}

	s := drill.New(block, tr)
	require.NoError(t, s.Start())
	require.True(t, s.Reveal())
	_, ok := s.Evaluate(true)
	require.True(t, ok)
	s.Teardown()

	assert.Equal(t, 1, tr.MasteredCount(2))

	resumed := drill.New(block, tr)
	require.NoError(t, resumed.Start())
	assert.Equal(t, s.Snapshot(), resumed.Snapshot())
}
