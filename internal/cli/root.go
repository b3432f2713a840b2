// Package cli implements the pomoflow command-line interface using Cobra.
// Each subcommand maps to a core capability (focus, stats, rank, etc.).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pomoflow",
	Short: "pomoflow — Focus timer with streaks, levels and leaderboards",
	Long: `pomoflow tracks your focus cycles locally.
Complete cycles to earn XP, keep your streak alive, unlock achievements,
and see how you rank against people you follow.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
