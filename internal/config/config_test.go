package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)
	t.Setenv("BLOCKQUIZ_DB", "")
	t.Setenv("BLOCKQUIZ_BANK", "")
	t.Setenv("BLOCKQUIZ_LOG", "")
	t.Setenv("BLOCKQUIZ_BLOCK_SIZE", "")
	t.Setenv("BLOCKQUIZ_LOG_LEVEL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataHome, "blockquiz", "blockquiz.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join(dataHome, "blockquiz", "blockquiz.log"), cfg.LogPath)
	assert.Equal(t, DefaultBlockSize, cfg.BlockSize)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.BankPath)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BLOCKQUIZ_DB", "/tmp/q.db")
	t.Setenv("BLOCKQUIZ_BANK", "/tmp/bank.json")
	t.Setenv("BLOCKQUIZ_LOG", "/tmp/q.log")
	t.Setenv("BLOCKQUIZ_BLOCK_SIZE", "25")
	t.Setenv("BLOCKQUIZ_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/q.db", cfg.DBPath)
	assert.Equal(t, "/tmp/bank.json", cfg.BankPath)
	assert.Equal(t, "/tmp/q.log", cfg.LogPath)
	assert.Equal(t, 25, cfg.BlockSize)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsBadBlockSize(t *testing.T) {
	t.Setenv("BLOCKQUIZ_DB", "/tmp/q.db")
	t.Setenv("BLOCKQUIZ_LOG", "/tmp/q.log")

	t.Setenv("BLOCKQUIZ_BLOCK_SIZE", "ten")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("BLOCKQUIZ_BLOCK_SIZE", "0")
	_, err = Load()
	assert.Error(t, err)
}
