package home

import (
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/blockquiz/internal/bank"
	"github.com/abhisek/blockquiz/internal/drill"
	"github.com/abhisek/blockquiz/internal/progress"
	"github.com/abhisek/blockquiz/internal/router"
	"github.com/abhisek/blockquiz/internal/screens/history"
	learnscreen "github.com/abhisek/blockquiz/internal/screens/learn"
	"github.com/abhisek/blockquiz/internal/screens/study"
	"github.com/abhisek/blockquiz/internal/store"
)

var (
	keyDown  = tea.KeyPressMsg{Code: tea.KeyDown}
	keyEnter = tea.KeyPressMsg{Code: tea.KeyEnter}
	keyTab   = tea.KeyPressMsg{Code: tea.KeyTab}
	keyC     = tea.KeyPressMsg{Code: 'c', Text: "c"}
	keyY     = tea.KeyPressMsg{Code: 'y', Text: "y"}
	keyN     = tea.KeyPressMsg{Code: 'n', Text: "n"}
)

func newTestHome(t *testing.T) (*HomeScreen, *progress.Tracker) {
	t.Helper()
	st, err := openStore(t)
	require.NoError(t, err)

	b, err := bank.Default()
	require.NoError(t, err)
	blocks, err := b.Blocks(10)
	require.NoError(t, err)

	tracker := progress.New(st.KV(), nil)
	return New(b.Title, blocks, tracker, st.EventRepo(), nil), tracker
}

func openStore(t *testing.T) (*store.Store, error) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "home.db"))
	if err != nil {
		return nil, err
	}
	t.Cleanup(func() { st.Close() })
	return st, nil
}

func pushed(t *testing.T, cmd tea.Cmd) any {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok, "expected a push")
	return msg.Screen
}

func TestListsBlocks(t *testing.T) {
	h, _ := newTestHome(t)
	view := h.View(100, 40)
	assert.Contains(t, view, "Block 1")
	assert.Contains(t, view, "Block 3")
	assert.Contains(t, view, "0 / 3 blocks learned")
}

func TestOpensLearnByDefault(t *testing.T) {
	h, _ := newTestHome(t)
	_, cmd := h.Update(keyEnter)
	assert.IsType(t, &learnscreen.LearnScreen{}, pushed(t, cmd))
}

func TestTabSwitchesToStudy(t *testing.T) {
	h, _ := newTestHome(t)
	h.Update(keyTab)
	assert.Equal(t, ModeStudy, h.Mode())

	h.Update(keyDown)
	_, cmd := h.Update(keyEnter)
	s, ok := pushed(t, cmd).(*study.StudyScreen)
	require.True(t, ok)
	assert.Equal(t, 1, s.Scheduler().Block().Index)
}

func TestResumeShowsProgress(t *testing.T) {
	h, tracker := newTestHome(t)
	tracker.MarkLearned(0)
	tracker.SaveProgress(1, drill.Snapshot{MasteredIDs: []int{11, 12}})

	h.Resume()
	view := h.View(120, 40)
	assert.Contains(t, view, "LEARNED")
	assert.Contains(t, view, "2/10 mastered")
	assert.Contains(t, view, "1 / 3 blocks learned")
}

func TestClearAllNeedsConfirmation(t *testing.T) {
	h, tracker := newTestHome(t)
	tracker.MarkLearned(2)

	h.Update(keyC)
	assert.Contains(t, h.View(100, 40), "Clear all progress?")

	h.Update(keyN)
	assert.True(t, tracker.IsLearned(2))

	h.Update(keyC)
	h.Update(keyY)
	assert.False(t, tracker.IsLearned(2))
	assert.NotContains(t, h.View(100, 40), "Clear all progress?")
}

func TestOpensHistory(t *testing.T) {
	h, _ := newTestHome(t)
	_, cmd := h.Update(tea.KeyPressMsg{Code: 's', Text: "s"})
	assert.IsType(t, &history.HistoryScreen{}, pushed(t, cmd))
}
