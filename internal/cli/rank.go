package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/pomoflow/pomoflow/internal/app/ranking"
	"github.com/pomoflow/pomoflow/internal/daemon"
	"github.com/pomoflow/pomoflow/internal/domain"
)

func init() {
	rankCmd.Flags().StringVar(&rankPeriod, "period", "daily", "Ranking period: daily, weekly or monthly")
	rankCmd.Flags().StringVar(&rankScope, "scope", "global", "Ranking scope: global, following or group:<id>")
	rootCmd.AddCommand(rankCmd)
}

var (
	rankPeriod string
	rankScope  string
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Show the focus-time leaderboard",
	RunE:  runRank,
}

func runRank(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	period, err := domain.ParsePeriod(rankPeriod)
	if err != nil {
		return err
	}
	scope, err := domain.ParseScope(rankScope)
	if err != nil {
		return err
	}

	entries, err := d.Ranking.Leaderboard(context.Background(), period, scope, d.Config.User.ID, time.Now())
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("Nobody on the board yet. Complete a focus cycle to get started.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tNAME\tFOCUS TIME\t")
	for i, e := range entries {
		marker := ""
		if e.IsCurrentUser {
			marker = "(you)"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, e.Name, ranking.FormatMinutes(e.Minutes), marker)
	}
	return w.Flush()
}
