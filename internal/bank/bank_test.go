package bank

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func items(n int) []QuestionItem {
	qs := make([]QuestionItem, n)
	for i := range qs {
		qs[i] = QuestionItem{ID: i + 1, Question: "q", Answer: "a"}
	}
	return qs
}

func TestPartition(t *testing.T) {
	blocks, err := Partition(items(23), 10)
	require.NoError(t, err)
	require.Len(t, blocks, 3)

	assert.Equal(t, 10, blocks[0].Len())
	assert.Equal(t, 10, blocks[1].Len())
	assert.Equal(t, 3, blocks[2].Len())

	for i, b := range blocks {
		assert.Equal(t, i, b.Index)
	}

	first, last := blocks[1].IDRange()
	assert.Equal(t, 11, first)
	assert.Equal(t, 20, last)
	assert.Equal(t, "Block 3", blocks[2].Name())
}

func TestPartitionExactMultiple(t *testing.T) {
	blocks, err := Partition(items(20), 10)
	require.NoError(t, err)
	assert.Len(t, blocks, 2)
}

func TestPartitionEmpty(t *testing.T) {
	blocks, err := Partition(nil, 10)
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestPartitionRejectsBadSize(t *testing.T) {
	_, err := Partition(items(3), 0)
	assert.Error(t, err)
}

func TestPartitionDoesNotAlias(t *testing.T) {
	qs := items(4)
	blocks, err := Partition(qs, 2)
	require.NoError(t, err)
	qs[0].Question = "changed"
	assert.Equal(t, "q", blocks[0].Questions[0].Question)
}

func TestBlockLookupAndEmpty(t *testing.T) {
	b := Block{Index: 0, Questions: items(3)}
	m := b.Lookup()
	assert.Len(t, m, 3)
	assert.Equal(t, 2, m[2].ID)
	assert.False(t, b.IsEmpty())

	var empty Block
	assert.True(t, empty.IsEmpty())
	f, l := empty.IDRange()
	assert.Zero(t, f)
	assert.Zero(t, l)
}

func TestBankBlockOutOfRange(t *testing.T) {
	b := &Bank{Version: "v1.0.0", Questions: items(5)}

	blk, err := b.Block(2, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, blk.Len())

	_, err = b.Block(2, 3)
	assert.ErrorIs(t, err, ErrBlockOutOfRange)
	_, err = b.Block(2, -1)
	assert.ErrorIs(t, err, ErrBlockOutOfRange)
}

func TestDefaultBank(t *testing.T) {
	b, err := Default()
	require.NoError(t, err)
	assert.NotEmpty(t, b.Title)
	assert.NotEmpty(t, b.Questions)
}

func TestParseValid(t *testing.T) {
	b, err := Parse([]byte(`{"version":"v1.2.3","title":"T","questions":[{"id":7,"question":"Q","answer":"A"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "T", b.Title)
	require.Len(t, b.Questions, 1)
	assert.Equal(t, QuestionItem{ID: 7, Question: "Q", Answer: "A"}, b.Questions[0])
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"malformed", `{not json}`},
		{"missing questions", `{"version":"v1.0.0"}`},
		{"missing answer", `{"version":"v1.0.0","questions":[{"id":1,"question":"Q"}]}`},
		{"empty question", `{"version":"v1.0.0","questions":[{"id":1,"question":"","answer":"A"}]}`},
		{"string id", `{"version":"v1.0.0","questions":[{"id":"1","question":"Q","answer":"A"}]}`},
		{"extra field", `{"version":"v1.0.0","questions":[{"id":1,"question":"Q","answer":"A","hint":"h"}]}`},
		{"bad version", `{"version":"1.0","questions":[]}`},
		{"duplicate id", `{"version":"v1.0.0","questions":[{"id":1,"question":"Q","answer":"A"},{"id":1,"question":"R","answer":"B"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw))
			require.Error(t, err)
			var ve *ValidationError
			assert.True(t, errors.As(err, &ve), "expected *ValidationError, got %T", err)
		})
	}
}

func TestParseUnsupportedMajor(t *testing.T) {
	_, err := Parse([]byte(`{"version":"v2.0.0","questions":[]}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"v1.0.0","questions":[{"id":1,"question":"Q","answer":"A"}]}`), 0o644))

	b, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, b.Questions, 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
