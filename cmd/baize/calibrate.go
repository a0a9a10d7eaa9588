package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mhenders/baize/internal/calibration"
)

var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Solve strength offsets across divisions and leagues",
	Long: `Calibrate finds the players who appear in more than one context and solves
one strength offset per division from the win-percentage gaps they carry
between contexts. With two or more leagues in the snapshot it also solves
offsets between whole leagues. Positive offsets mark the harder context.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := leagueStore.LoadSnapshot()
		if err != nil {
			return fmt.Errorf("failed to load snapshot: %w", err)
		}

		leagues := calibration.GroupLeagues(snap)
		if len(leagues) == 0 {
			fmt.Println("Nothing to calibrate: the snapshot holds no divisions.")
			return nil
		}

		for _, l := range leagues {
			name := l.League
			if name == "" {
				name = "(unassigned)"
			}
			cal := calibration.CalibrateDivisions(l.Stats, l.Divisions, calCfg)
			fmt.Printf("League %s: %d divisions, %d bridge players, confidence %.2f\n",
				name, len(l.Divisions), cal.Bridges, cal.Confidence)
			printOffsets(cal.Offsets)
			fmt.Println()
		}

		if len(leagues) < 2 {
			return nil
		}
		cal := calibration.CalibrateLeagues(leagues, calCfg)
		fmt.Printf("Across leagues: %d bridge players, confidence %.2f\n", cal.Bridges, cal.Confidence)
		printOffsets(cal.Offsets)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(calibrateCmd)
}

func printOffsets(offsets map[string]float64) {
	keys := make([]string, 0, len(offsets))
	for key := range offsets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, key := range keys {
		fmt.Fprintf(w, "  %s\t%+.2f\n", key, offsets[key])
	}
	w.Flush()
}
