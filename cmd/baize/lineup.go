package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mhenders/baize/internal/league"
	"github.com/mhenders/baize/internal/lineup"
)

var (
	lineupDivision     string
	lineupTeam         string
	lineupOpponent     string
	lineupHome         bool
	lineupAvailable    []string
	lineupLocks        []string
	lineupAdds         []string
	lineupRemoves      []string
	lineupAlternatives int
	lineupSeed         int64
)

var lineupCmd = &cobra.Command{
	Use:   "lineup",
	Short: "Recommend a lineup against a given opponent",
	Long: `Lineup picks the ten players with the strongest composite scores, honours
locked slots, inverts the set order against front-loading opponents and
estimates the win probability of the chosen ten. Squad what-ifs are applied
before anything is scored: --add invents a player, --remove drops one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if lineupDivision == "" || lineupTeam == "" || lineupOpponent == "" {
			return fmt.Errorf("--division, --team and --opponent are required")
		}
		snap, err := leagueStore.LoadSnapshot()
		if err != nil {
			return fmt.Errorf("failed to load snapshot: %w", err)
		}

		locks := make([]lineup.Lock, 0, len(lineupLocks))
		for _, raw := range lineupLocks {
			lock, err := parseLock(raw)
			if err != nil {
				return err
			}
			locks = append(locks, lock)
		}
		adds := make([]league.PlayerSeasonStats, 0, len(lineupAdds))
		for _, raw := range lineupAdds {
			add, err := parseAddPlayer(raw)
			if err != nil {
				return err
			}
			adds = append(adds, add)
		}

		res, err := lineup.Optimize(lineup.Request{
			Snapshot:      snap,
			Division:      lineupDivision,
			Team:          lineupTeam,
			Opponent:      lineupOpponent,
			Home:          lineupHome,
			Available:     lineupAvailable,
			Locks:         locks,
			AddPlayers:    adds,
			RemovePlayers: lineupRemoves,
			Alternatives:  lineupAlternatives,
			Rand:          newRand(lineupSeed),
		})
		if err != nil {
			return fmt.Errorf("failed to optimize lineup for %s: %w", lineupTeam, err)
		}

		printLineup(res)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lineupCmd)
	lineupCmd.Flags().StringVar(&lineupDivision, "division", "", "division code")
	lineupCmd.Flags().StringVar(&lineupTeam, "team", "", "team to pick for")
	lineupCmd.Flags().StringVar(&lineupOpponent, "opponent", "", "opposing team")
	lineupCmd.Flags().BoolVar(&lineupHome, "home", false, "true when playing at home")
	lineupCmd.Flags().StringSliceVar(&lineupAvailable, "available", nil, "available players (empty means the whole roster)")
	lineupCmd.Flags().StringArrayVar(&lineupLocks, "lock", nil, `pin a player to a slot, "set:position:Player Name" (repeatable)`)
	lineupCmd.Flags().StringArrayVar(&lineupAdds, "add", nil, `hypothetical signing, "Player Name:played:won" (repeatable)`)
	lineupCmd.Flags().StringSliceVar(&lineupRemoves, "remove", nil, "players to drop from the squad first")
	lineupCmd.Flags().IntVar(&lineupAlternatives, "alternatives", 0, "alternative lineups to show (0 keeps the default, negative disables)")
	lineupCmd.Flags().Int64Var(&lineupSeed, "seed", 0, "simulation seed (0 seeds from the clock)")
}

func printLineup(res *lineup.Result) {
	venue := "away"
	if res.Home {
		venue = "home"
	}
	fmt.Printf("Optimal lineup for %s vs %s (%s)\n", res.Team, res.Opponent, venue)
	fmt.Printf("Win probability: %.1f%%", res.WinProbability*100)
	if res.StrengthBased {
		fmt.Print(" (team-strength estimate)")
	}
	fmt.Println()

	for _, set := range res.Sets {
		if len(set) == 0 {
			continue
		}
		fmt.Printf("\nSet %d\n", set[0].Set)
		for _, slot := range set {
			marker := ""
			if slot.Locked {
				marker = "  (locked)"
			}
			fmt.Printf("  %d. %-24s %5.1f%s\n", slot.Position, slot.Player, slot.Score, marker)
		}
	}

	if len(res.Insights) > 0 {
		fmt.Println("\nInsights:")
		for _, insight := range res.Insights {
			fmt.Printf("  - %s\n", insight)
		}
	}

	if len(res.Alternatives) > 0 {
		fmt.Println("\nAlternatives:")
		for i, alt := range res.Alternatives {
			fmt.Printf("  %d. %s in for %s: %.1f%% (-%.1f)\n",
				i+1, alt.SwappedIn, alt.SwappedOut, alt.WinProbability*100, alt.Deficit*100)
		}
	}
}

// parseLock turns "2:1:Ana Price" into a lock pinning Ana Price to set 2,
// position 1. The name sits last so it may contain colons.
func parseLock(s string) (lineup.Lock, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return lineup.Lock{}, fmt.Errorf("lock %q must look like \"set:position:Player Name\"", s)
	}
	set, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return lineup.Lock{}, fmt.Errorf("lock %q has a bad set number: %w", s, err)
	}
	position, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return lineup.Lock{}, fmt.Errorf("lock %q has a bad position: %w", s, err)
	}
	return lineup.Lock{Player: strings.TrimSpace(parts[2]), Set: set, Position: position}, nil
}

// parseAddPlayer turns "Ana Price:12:8" into season statistics for a
// hypothetical signing. The counts sit last so the name may contain colons.
func parseAddPlayer(s string) (league.PlayerSeasonStats, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 3 {
		return league.PlayerSeasonStats{}, fmt.Errorf("add %q must look like \"Player Name:played:won\"", s)
	}
	played, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-2]))
	if err != nil {
		return league.PlayerSeasonStats{}, fmt.Errorf("add %q has a bad played count: %w", s, err)
	}
	won, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil {
		return league.PlayerSeasonStats{}, fmt.Errorf("add %q has a bad won count: %w", s, err)
	}
	return league.PlayerSeasonStats{
		Player: strings.Join(parts[:len(parts)-2], ":"),
		Played: played,
		Won:    won,
	}, nil
}
