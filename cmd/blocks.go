package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/blockquiz/internal/logging"
	"github.com/abhisek/blockquiz/internal/progress"
)

var blocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "List blocks with learn and drill progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		b, blocks, err := loadBank(cfg)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		tracker := progress.New(st.KV(), logging.Stderr(logging.ParseLevel(cfg.LogLevel)))
		learned := tracker.Learned()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s), %d questions\n\n", b.Title, b.Version, len(b.Questions))

		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "BLOCK\tIDS\tQUESTIONS\tLEARNED\tMASTERED")
		for _, blk := range blocks {
			first, last := blk.IDRange()
			mark := "-"
			if learned[blk.Index] {
				mark = "yes"
			}
			fmt.Fprintf(w, "%s\t%d-%d\t%d\t%s\t%d/%d\n",
				blk.Name(), first, last, blk.Len(), mark, tracker.MasteredCount(blk.Index), blk.Len())
		}
		return w.Flush()
	},
}
