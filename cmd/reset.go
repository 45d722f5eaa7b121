package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/blockquiz/internal/logging"
	"github.com/abhisek/blockquiz/internal/progress"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear saved progress",
	Long: `Clear saved progress. With --block, only that block's drill is reset
(blocks are numbered from 1). Without it, every drill and the learned set
are cleared. --history also deletes the answer log used by "stats".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		tracker := progress.New(st.KV(), logging.Stderr(logging.ParseLevel(cfg.LogLevel)))
		out := cmd.OutOrStdout()

		if cmd.Flags().Changed("block") {
			n, _ := cmd.Flags().GetInt("block")
			if n < 1 {
				return fmt.Errorf("--block must be 1 or more, got %d", n)
			}
			tracker.ClearProgress(n - 1)
			fmt.Fprintf(out, "Reset drill progress for Block %d.\n", n)
		} else {
			tracker.ClearAll()
			fmt.Fprintln(out, "Cleared all progress.")
		}

		if history, _ := cmd.Flags().GetBool("history"); history {
			if err := st.EventRepo().ClearAnswers(cmd.Context()); err != nil {
				return fmt.Errorf("clear history: %w", err)
			}
			fmt.Fprintln(out, "Cleared answer history.")
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().Int("block", 0, "Block number to reset (1-based)")
	resetCmd.Flags().Bool("history", false, "Also delete the answer log")
}
