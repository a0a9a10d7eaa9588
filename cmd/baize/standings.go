package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mhenders/baize/internal/league"
)

var standingsDivision string

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Print the current division table",
	RunE: func(cmd *cobra.Command, args []string) error {
		if standingsDivision == "" {
			return fmt.Errorf("--division is required")
		}
		snap, err := leagueStore.LoadSnapshot()
		if err != nil {
			return fmt.Errorf("failed to load snapshot: %w", err)
		}
		teams, ok := snap.Teams[standingsDivision]
		if !ok {
			return fmt.Errorf("unknown division %q", standingsDivision)
		}

		table := league.BuildStandings(teams, snap.DivisionResults(standingsDivision))

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "POS\tTEAM\tP\tW\tD\tL\tF\tA\t+/-\tPTS")
		for i, row := range table {
			fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%+d\t%d\n",
				i+1, row.Team, row.Played, row.Won, row.Drawn, row.Lost,
				row.FramesFor, row.FramesAgainst, row.FrameDiff, row.Points)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(standingsCmd)
	standingsCmd.Flags().StringVar(&standingsDivision, "division", "", "division code")
}
