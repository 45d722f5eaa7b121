package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/blockquiz/internal/app"
	"github.com/abhisek/blockquiz/internal/logging"
	"github.com/abhisek/blockquiz/internal/progress"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(cfg.LogPath, logging.ParseLevel(cfg.LogLevel))
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closer.Close()

	b, blocks, err := loadBank(cfg)
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	logger.Info("starting", "version", version, "db", cfg.DBPath,
		"bank", b.Title, "questions", len(b.Questions), "blocks", len(blocks))

	err = app.Run(app.Options{
		BankTitle: b.Title,
		Blocks:    blocks,
		Tracker:   progress.New(st.KV(), logger),
		EventRepo: st.EventRepo(),
		Logger:    logger,
	})
	if err != nil {
		logger.Error("program exited with error", "error", err)
	}
	return err
}
