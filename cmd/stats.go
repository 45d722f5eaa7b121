package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-block drill accuracy",
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

		stats, err := st.EventRepo().BlockAccuracies(cmd.Context())
		if err != nil {
			return fmt.Errorf("load stats: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(stats) == 0 {
			fmt.Fprintln(out, "No drill answers recorded yet.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "BLOCK\tRUNS\tANSWERS\tCORRECT\tTIMED OUT\tACCURACY\tLAST")
		for _, s := range stats {
			fmt.Fprintf(w, "Block %d\t%d\t%d\t%d\t%d\t%.0f%%\t%s\n",
				s.BlockIndex+1, s.Runs, s.Answers, s.Correct, s.TimedOut,
				s.Accuracy()*100, s.LastAt.Local().Format(time.DateTime))
		}
		return w.Flush()
	},
}
