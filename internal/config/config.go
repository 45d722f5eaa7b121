package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/abhisek/blockquiz/internal/store"
)

// DefaultBlockSize is the number of questions per block when unset.
const DefaultBlockSize = 10

// Config holds runtime settings resolved from the environment.
type Config struct {
	// DBPath is the SQLite file holding progress and the answer log.
	DBPath string

	// BankPath is a question bank JSON file. Empty selects the built-in bank.
	BankPath string

	// BlockSize is the number of questions per block.
	BlockSize int

	// LogPath is where the interactive UI writes its log.
	LogPath string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// Load reads an optional .env file and then the BLOCKQUIZ_* environment
// variables. Missing values fall back to per-user defaults.
func Load() (*Config, error) {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		DBPath:    os.Getenv("BLOCKQUIZ_DB"),
		BankPath:  os.Getenv("BLOCKQUIZ_BANK"),
		LogPath:   os.Getenv("BLOCKQUIZ_LOG"),
		LogLevel:  getenvDefault("BLOCKQUIZ_LOG_LEVEL", "info"),
		BlockSize: DefaultBlockSize,
	}

	if v := os.Getenv("BLOCKQUIZ_BLOCK_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("config: BLOCKQUIZ_BLOCK_SIZE=%q is not an integer: %w", v, err)
		}
		cfg.BlockSize = n
	}

	if cfg.DBPath == "" || cfg.LogPath == "" {
		dir, err := store.DataDir()
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if cfg.DBPath == "" {
			cfg.DBPath = filepath.Join(dir, "blockquiz.db")
		}
		if cfg.LogPath == "" {
			cfg.LogPath = filepath.Join(dir, "blockquiz.log")
		}
	}

	return cfg, cfg.Validate()
}

// Validate checks the settings that can be wrong independently of the
// filesystem.
func (c *Config) Validate() error {
	if c.BlockSize < 1 {
		return fmt.Errorf("config: block size must be positive, got %d", c.BlockSize)
	}
	return nil
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}
