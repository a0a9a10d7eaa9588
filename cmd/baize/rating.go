package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mhenders/baize/internal/calibration"
	"github.com/mhenders/baize/internal/league"
)

var (
	ratingDivision string
	ratingPlayer   string
	ratingTeam     string
)

var ratingCmd = &cobra.Command{
	Use:   "rating",
	Short: "Rate a player or team on the cross-context scale",
	Long: `Rating reports the Bayesian-shrunk win percentage of a player or team with
the division and league strength offsets applied, so entries from different
contexts land on one comparable scale. The z-score and percentile rank the
subject within its own division.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if ratingDivision == "" {
			return fmt.Errorf("--division is required")
		}
		if (ratingPlayer == "") == (ratingTeam == "") {
			return fmt.Errorf("exactly one of --player or --team is required")
		}
		snap, err := leagueStore.LoadSnapshot()
		if err != nil {
			return fmt.Errorf("failed to load snapshot: %w", err)
		}

		var info *league.DivisionInfo
		for i := range snap.Divisions {
			if snap.Divisions[i].Code == ratingDivision {
				info = &snap.Divisions[i]
				break
			}
		}
		if info == nil {
			return fmt.Errorf("unknown division %q", ratingDivision)
		}

		leagues := calibration.GroupLeagues(snap)
		var own calibration.LeagueStats
		for _, l := range leagues {
			if l.League == info.League {
				own = l
				break
			}
		}
		divCal := calibration.CalibrateDivisions(own.Stats, own.Divisions, calCfg)
		var leagueCal *calibration.Calibration
		if len(leagues) >= 2 {
			leagueCal = calibration.CalibrateLeagues(leagues, calCfg)
		}

		var rating *calibration.Rating
		if ratingPlayer != "" {
			rating = calibration.AdjustedRating(ratingPlayer, ratingDivision, info.League, snap.Stats, divCal, leagueCal)
			if rating == nil {
				return fmt.Errorf("no record of player %q in division %q", ratingPlayer, ratingDivision)
			}
			fmt.Printf("%s (%s) in %s", rating.Player, rating.Team, ratingDivision)
		} else {
			rating = calibration.TeamRating(ratingTeam, ratingDivision, info.League, snap.Stats, divCal, leagueCal)
			if rating == nil {
				return fmt.Errorf("no record of team %q in division %q", ratingTeam, ratingDivision)
			}
			fmt.Printf("%s in %s", rating.Team, ratingDivision)
		}
		if info.League != "" {
			fmt.Printf(", %s", info.League)
		}
		fmt.Println()

		fmt.Printf("  Games       %d\n", rating.Played)
		fmt.Printf("  Raw         %.1f\n", rating.Raw)
		fmt.Printf("  Adjusted    %.1f  (division %+.1f, league %+.1f)\n",
			rating.Adjusted, divCal.Offset(ratingDivision), leagueCal.Offset(info.League))
		fmt.Printf("  Z-score     %+.2f\n", rating.ZScore)
		fmt.Printf("  Percentile  %.1f\n", rating.Percentile)
		fmt.Printf("  Confidence  %.2f\n", rating.Confidence)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ratingCmd)
	ratingCmd.Flags().StringVar(&ratingDivision, "division", "", "division code")
	ratingCmd.Flags().StringVar(&ratingPlayer, "player", "", "player to rate")
	ratingCmd.Flags().StringVar(&ratingTeam, "team", "", "team to rate")
}
