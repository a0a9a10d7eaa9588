package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/mhenders/baize/internal/ratings"
	"github.com/mhenders/baize/internal/simulation"
)

var (
	matchDivision string
	matchHome     string
	matchAway     string
	matchSeed     int64
	matchRuns     int
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Simulate a single fixture and print the odds",
	RunE: func(cmd *cobra.Command, args []string) error {
		if matchDivision == "" || matchHome == "" || matchAway == "" {
			return fmt.Errorf("--division, --home and --away are required")
		}
		snap, err := leagueStore.LoadSnapshot()
		if err != nil {
			return fmt.Errorf("failed to load snapshot: %w", err)
		}
		teams, ok := snap.Teams[matchDivision]
		if !ok {
			return fmt.Errorf("unknown division %q", matchDivision)
		}
		for _, team := range []string{matchHome, matchAway} {
			if !slices.Contains(teams, team) {
				return fmt.Errorf("unknown team %q in division %q", team, matchDivision)
			}
		}

		strengths := ratings.DivisionStrengths(snap, matchDivision)
		odds := simulation.SimulateMatch(strengths[matchHome], strengths[matchAway], newRand(matchSeed), simOptions(matchRuns)...)

		fmt.Printf("%s vs %s (%s)\n\n", matchHome, matchAway, matchDivision)
		fmt.Printf("Home win  %5.1f%%\n", odds.HomeWin*100)
		fmt.Printf("Draw      %5.1f%%\n", odds.Draw*100)
		fmt.Printf("Away win  %5.1f%%\n", odds.AwayWin*100)
		fmt.Printf("\nExpected frames: %.1f - %.1f\n", odds.ExpectedHomeFrames, odds.ExpectedAwayFrames)

		if len(odds.Scorelines) > 0 {
			fmt.Println("\nMost likely scorelines:")
			for _, s := range odds.Scorelines[:min(5, len(odds.Scorelines))] {
				fmt.Printf("  %d-%d  %5.1f%%\n", s.HomeScore, s.AwayScore, s.Probability*100)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)
	matchCmd.Flags().StringVar(&matchDivision, "division", "", "division code")
	matchCmd.Flags().StringVar(&matchHome, "home", "", "home team")
	matchCmd.Flags().StringVar(&matchAway, "away", "", "away team")
	matchCmd.Flags().Int64Var(&matchSeed, "seed", 0, "simulation seed (0 seeds from the clock)")
	matchCmd.Flags().IntVar(&matchRuns, "runs", 0, "simulation runs (0 keeps the default)")
}
