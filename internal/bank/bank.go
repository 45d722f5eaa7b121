// Package bank loads the static question bank and partitions it into
// fixed-size blocks.
package bank

import (
	"errors"
	"fmt"
)

// ErrBlockOutOfRange is returned when a block index does not exist.
var ErrBlockOutOfRange = errors.New("block index out of range")

// QuestionItem is a single flashcard. Immutable once loaded.
type QuestionItem struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Bank is the full ordered question list.
type Bank struct {
	Version   string         `json:"version"`
	Title     string         `json:"title"`
	Questions []QuestionItem `json:"questions"`
}

// Block is an ordered partition of the bank, identified by its index.
type Block struct {
	Index     int
	Questions []QuestionItem
}

// Name returns the 1-based display name of the block.
func (b Block) Name() string {
	return fmt.Sprintf("Block %d", b.Index+1)
}

// Len returns the number of questions in the block.
func (b Block) Len() int {
	return len(b.Questions)
}

// IsEmpty reports whether the block has no questions.
func (b Block) IsEmpty() bool {
	return len(b.Questions) == 0
}

// IDRange returns the ids of the first and last question, or 0, 0 for an
// empty block.
func (b Block) IDRange() (first, last int) {
	if len(b.Questions) == 0 {
		return 0, 0
	}
	return b.Questions[0].ID, b.Questions[len(b.Questions)-1].ID
}

// Lookup returns an id → item index of the block.
func (b Block) Lookup() map[int]QuestionItem {
	m := make(map[int]QuestionItem, len(b.Questions))
	for _, q := range b.Questions {
		m[q.ID] = q
	}
	return m
}

// Partition splits questions into blocks of size items. The last block may
// be shorter. Blocks share no backing array with questions.
func Partition(questions []QuestionItem, size int) ([]Block, error) {
	if size < 1 {
		return nil, fmt.Errorf("block size must be positive, got %d", size)
	}
	var blocks []Block
	for i := 0; i < len(questions); i += size {
		end := min(i+size, len(questions))
		qs := make([]QuestionItem, end-i)
		copy(qs, questions[i:end])
		blocks = append(blocks, Block{Index: i / size, Questions: qs})
	}
	return blocks, nil
}

// Blocks partitions the bank into blocks of size questions.
func (b *Bank) Blocks(size int) ([]Block, error) {
	return Partition(b.Questions, size)
}

// Block returns the block at index for the given block size.
func (b *Bank) Block(size, index int) (Block, error) {
	blocks, err := b.Blocks(size)
	if err != nil {
		return Block{}, err
	}
	if index < 0 || index >= len(blocks) {
		return Block{}, fmt.Errorf("block %d of %d: %w", index, len(blocks), ErrBlockOutOfRange)
	}
	return blocks[index], nil
}
