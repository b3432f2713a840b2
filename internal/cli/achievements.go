package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pomoflow/pomoflow/internal/daemon"
)

func init() {
	rootCmd.AddCommand(achievementsCmd)
}

var achievementsCmd = &cobra.Command{
	Use:     "achievements",
	Aliases: []string{"ach"},
	Short:   "List achievements and their unlock status",
	RunE:    runAchievements,
}

func runAchievements(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	state, err := d.Gamification.Snapshot()
	if err != nil {
		return err
	}
	unlocked := make(map[string]bool, len(state.Unlocked))
	for _, id := range state.Unlocked {
		unlocked[id] = true
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tNAME\tCATEGORY\tXP\tSTATUS")
	for _, a := range d.Gamification.Catalog() {
		status := "locked"
		if unlocked[a.ID] {
			status = "unlocked"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", a.Icon, a.Name, a.Category, a.XPReward, status)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\n%d of %d unlocked\n", len(state.Unlocked), len(d.Gamification.Catalog()))
	return nil
}
