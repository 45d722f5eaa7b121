package layout

import (
	"strings"
	"testing"

	"charm.land/bubbles/v2/key"
	"github.com/stretchr/testify/assert"
)

func TestHintsFor(t *testing.T) {
	next := key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "Next"))
	hidden := key.NewBinding(key.WithKeys("r"), key.WithHelp("R", "Restart"))
	hidden.SetEnabled(false)

	hints := HintsFor(next, hidden)
	assert.Equal(t, []KeyHint{{Key: "→", Description: "Next"}}, hints)
}

func TestIsTooSmall(t *testing.T) {
	assert.True(t, IsTooSmall(MinWidth-1, MinHeight))
	assert.True(t, IsTooSmall(MinWidth, MinHeight-1))
	assert.False(t, IsTooSmall(MinWidth, MinHeight))
}

func TestRenderHeaderShowsTitleAndStatus(t *testing.T) {
	out := RenderHeader("Block 2", "Go Fundamentals", 100)
	assert.Contains(t, out, "blockquiz")
	assert.Contains(t, out, "Block 2")
	assert.Contains(t, out, "Go Fundamentals")
}

func TestRenderFooter(t *testing.T) {
	out := RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}}, 80)
	assert.True(t, strings.Contains(out, "Esc"))
	assert.True(t, strings.Contains(out, "Back"))
}
