package cli

import (
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
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show your focus statistics and level progress",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	state, err := d.Gamification.Snapshot()
	if err != nil {
		return err
	}
	nextXP, fraction, err := d.Gamification.Progress()
	if err != nil {
		return err
	}

	now := time.Now()
	periods := []domain.Period{domain.PeriodDaily, domain.PeriodWeekly, domain.PeriodMonthly}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Level\t%d (%d/%d XP, %.0f%%)\n", state.Level, state.XP, nextXP, fraction*100)
	fmt.Fprintf(w, "Streak\t%d day(s)\n", state.Stats.CurrentStreak)
	fmt.Fprintf(w, "Cycles\t%d\n", state.Stats.CompletedCycles)
	fmt.Fprintf(w, "Total focus\t%s\n", ranking.FormatMinutes(state.Stats.TotalFocusMinutes))
	for _, p := range periods {
		minutes, err := d.Gamification.PeriodMinutes(p, now)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "This %s\t%s\n", periodLabel(p), ranking.FormatMinutes(minutes))
	}
	return w.Flush()
}

func periodLabel(p domain.Period) string {
	switch p {
	case domain.PeriodWeekly:
		return "week"
	case domain.PeriodMonthly:
		return "month"
	default:
		return "day"
	}
}
