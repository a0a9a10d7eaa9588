package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mhenders/baize/internal/league"
	"github.com/mhenders/baize/internal/ratings"
	"github.com/mhenders/baize/internal/simulation"
	"github.com/mhenders/baize/internal/store"
)

var (
	simDivision string
	simSeed     int64
	simRuns     int
	simWhatIfs  []string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate the rest of the season for a division",
	Long: `Simulate plays out every remaining fixture many times and reports each
team's average points and title, top-two and bottom-two probabilities.
Hypothetical results can be spliced in first with --whatif; those runs are
printed but never saved as the division's latest report.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if simDivision == "" {
			return fmt.Errorf("--division is required")
		}
		snap, err := leagueStore.LoadSnapshot()
		if err != nil {
			return fmt.Errorf("failed to load snapshot: %w", err)
		}
		teams, ok := snap.Teams[simDivision]
		if !ok {
			return fmt.Errorf("unknown division %q", simDivision)
		}

		results := snap.DivisionResults(simDivision)
		table := league.BuildStandings(teams, results)
		remaining := league.RemainingFixtures(snap.DivisionFixtures(simDivision), results)

		whatIfs := make([]league.MatchResult, 0, len(simWhatIfs))
		for _, raw := range simWhatIfs {
			r, err := parseWhatIf(simDivision, raw)
			if err != nil {
				return err
			}
			whatIfs = append(whatIfs, r)
		}
		if len(whatIfs) > 0 {
			table = league.ApplyResults(table, whatIfs)
			remaining = league.WithoutPlayed(remaining, whatIfs)
		}

		strengths := ratings.DivisionStrengths(snap, simDivision)
		projections := simulation.SimulateSeason(table, strengths, remaining, newRand(simSeed), simOptions(simRuns)...)

		fmt.Printf("Projection for %s over %d remaining fixtures\n\n", simDivision, len(remaining))
		if err := printProjections(projections); err != nil {
			return err
		}

		if len(whatIfs) > 0 {
			fmt.Printf("\nIncludes %d hypothetical result(s); report not saved.\n", len(whatIfs))
			return nil
		}
		report := &store.SimReport{Division: simDivision, Projections: projections}
		if err := leagueStore.SaveSimReport(report); err != nil {
			return fmt.Errorf("failed to save report: %w", err)
		}
		fmt.Printf("\nSaved report %s\n", report.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().StringVar(&simDivision, "division", "", "division code")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 0, "simulation seed (0 seeds from the clock)")
	simulateCmd.Flags().IntVar(&simRuns, "runs", 0, "simulation runs (0 keeps the default)")
	simulateCmd.Flags().StringArrayVar(&simWhatIfs, "whatif", nil,
		`hypothetical result, e.g. "Cue Crew 6-4 Rack Pack" (repeatable)`)
}

func printProjections(projections []simulation.TeamProjection) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TEAM\tPTS\tAVG PTS\tTITLE\tTOP 2\tBOTTOM 2")
	for _, p := range projections {
		fmt.Fprintf(w, "%s\t%d\t%.1f\t%.1f%%\t%.1f%%\t%.1f%%\n",
			p.Team, p.CurrentPoints, p.AvgPoints,
			p.TitleProb*100, p.TopTwoProb*100, p.BottomTwoProb*100)
	}
	return w.Flush()
}

// parseWhatIf turns "Home Team 6-4 Away Team" into a hypothetical result.
// The score token splits the two team names, which may contain spaces.
func parseWhatIf(division, s string) (league.MatchResult, error) {
	fields := strings.Fields(s)
	for i := 1; i < len(fields)-1; i++ {
		home, away, ok := splitScore(fields[i])
		if !ok {
			continue
		}
		return league.MatchResult{
			Division:  division,
			HomeTeam:  strings.Join(fields[:i], " "),
			AwayTeam:  strings.Join(fields[i+1:], " "),
			HomeScore: home,
			AwayScore: away,
		}, nil
	}
	return league.MatchResult{}, fmt.Errorf("what-if %q must look like \"Home Team 6-4 Away Team\"", s)
}

func splitScore(token string) (home, away int, ok bool) {
	h, a, found := strings.Cut(token, "-")
	if !found {
		return 0, 0, false
	}
	home, err := strconv.Atoi(h)
	if err != nil || home < 0 {
		return 0, 0, false
	}
	away, err = strconv.Atoi(a)
	if err != nil || away < 0 {
		return 0, 0, false
	}
	return home, away, true
}
