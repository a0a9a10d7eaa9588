package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mhenders/baize/internal/analytics"
)

var (
	scoutDivision string
	scoutTeamName string
)

var scoutCmd = &cobra.Command{
	Use:   "scout",
	Short: "Build an opponent scouting report",
	RunE: func(cmd *cobra.Command, args []string) error {
		if scoutDivision == "" || scoutTeamName == "" {
			return fmt.Errorf("--division and --team are required")
		}
		snap, err := leagueStore.LoadSnapshot()
		if err != nil {
			return fmt.Errorf("failed to load snapshot: %w", err)
		}

		report := analytics.ScoutTeam(snap, scoutDivision, scoutTeamName)
		if report == nil {
			fmt.Printf("No trace of %s in division %s yet.\n", scoutTeamName, scoutDivision)
			return nil
		}

		fmt.Printf("Scouting report: %s (%s)\n", report.Team, report.Division)

		if len(report.LikelyLineup) > 0 {
			fmt.Println("\nLikely lineup:")
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "  PLAYER\tP\tW\tADJ%\tFORM\tB&D")
			for _, p := range report.LikelyLineup {
				fmt.Fprintf(w, "  %s\t%d\t%d\t%.1f\t%+.1f\t%d\n",
					p.Player, p.Played, p.Won, p.AdjustedPct, p.FormDelta, p.BreakDishes)
			}
			if err := w.Flush(); err != nil {
				return err
			}
		}

		fmt.Printf("\nSet bias: %+.1f\n", report.SetBias)
		fmt.Printf("Home record: %.0f%%, away record: %.0f%%\n", report.HomeWinPct, report.AwayWinPct)

		if len(report.Threats) > 0 {
			fmt.Println("\nThreats:")
			for _, threat := range report.Threats {
				fmt.Printf("  - %s\n", threat)
			}
		}
		if len(report.Notes) > 0 {
			fmt.Println("\nNotes:")
			for _, note := range report.Notes {
				fmt.Printf("  - %s\n", note)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scoutCmd)
	scoutCmd.Flags().StringVar(&scoutDivision, "division", "", "division code")
	scoutCmd.Flags().StringVar(&scoutTeamName, "team", "", "team to scout")
}
