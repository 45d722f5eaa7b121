package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/blockquiz/internal/bank"
	"github.com/abhisek/blockquiz/internal/config"
	"github.com/abhisek/blockquiz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "blockquiz",
	Short: "Flashcard drills in your terminal",
	Long: `blockquiz splits a question bank into fixed-size blocks. Learn a block by
paging through its cards, then drill it: missed questions come back every
few cards until each one is answered correctly.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides BLOCKQUIZ_DB env var)")
	rootCmd.PersistentFlags().String("bank", "", "Path to a question bank JSON file (overrides BLOCKQUIZ_BANK env var)")
	rootCmd.PersistentFlags().Int("block-size", 0, "Questions per block (overrides BLOCKQUIZ_BLOCK_SIZE env var)")

	rootCmd.AddCommand(blocksCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves settings from .env and the environment, then applies
// flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if p, _ := cmd.Flags().GetString("bank"); p != "" {
		cfg.BankPath = p
	}
	if n, _ := cmd.Flags().GetInt("block-size"); cmd.Flags().Changed("block-size") {
		cfg.BlockSize = n
	}
	return cfg, cfg.Validate()
}

// openStore opens the database named by cfg, creating its directory.
func openStore(cfg *config.Config) (*store.Store, error) {
	if err := store.EnsureDir(cfg.DBPath); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// loadBank reads the configured bank, or the built-in one.
func loadBank(cfg *config.Config) (*bank.Bank, []bank.Block, error) {
	var (
		b   *bank.Bank
		err error
	)
	if cfg.BankPath != "" {
		b, err = bank.Load(cfg.BankPath)
	} else {
		b, err = bank.Default()
	}
	if err != nil {
		return nil, nil, err
	}
	blocks, err := b.Blocks(cfg.BlockSize)
	if err != nil {
		return nil, nil, fmt.Errorf("partition bank: %w", err)
	}
	return b, blocks, nil
}
