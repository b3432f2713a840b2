package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pomoflow/pomoflow/internal/daemon"
	"github.com/pomoflow/pomoflow/internal/domain"
)

func init() {
	focusCmd.Flags().Int64Var(&focusMinutes, "minutes", 0, "Length of the completed cycle (defaults to configured focus length)")
	rootCmd.AddCommand(focusCmd)
}

var focusMinutes int64

var focusCmd = &cobra.Command{
	Use:   "focus [minutes]",
	Short: "Record a completed focus cycle",
	Long:  `Record a completed focus cycle: award XP, advance the streak and check achievements.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFocus,
}

func runFocus(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	minutes := focusMinutes
	if len(args) == 1 {
		n, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid minutes %q: %w", args[0], err)
		}
		minutes = n
	}
	if minutes == 0 {
		minutes = int64(d.Config.Timer.FocusMinutes)
	}

	now := time.Now()
	res, err := d.Gamification.CompleteCycle(minutes, now)
	if err != nil {
		return err
	}

	if err := d.DB.InsertSession(context.Background(), domain.SessionRecord{
		ID:          uuid.NewString(),
		UserID:      d.Config.User.ID,
		Minutes:     minutes,
		CompletedAt: now,
	}); err != nil {
		return err
	}
	if err := d.Notification.CelebrateCycle(res); err != nil {
		return err
	}

	fmt.Printf("Cycle complete: +%d XP (total %d)\n", res.GainedXP, res.TotalXP)
	fmt.Printf("Streak: %d day(s)\n", res.NewStreak)
	if res.LeveledUp {
		fmt.Printf("Level up! You are now level %d\n", res.Level)
	}
	for _, a := range res.NewThisCycle {
		fmt.Printf("Achievement unlocked: %s %s (+%d XP)\n", a.Icon, a.Name, a.XPReward)
	}
	return nil
}
