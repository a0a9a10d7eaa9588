package analytics

import (
	"fmt"

	"github.com/mhenders/baize/internal/league"
	"github.com/mhenders/baize/internal/ratings"
)

// ScoutTeam assembles an opponent report for one team in a division: likely
// lineup with season and form numbers, set-order bias, venue record and
// notable threats. Returns nil when the snapshot holds no trace of the team
// in that division.
func ScoutTeam(snap *league.Snapshot, division, team string) *Scout {
	frames := snap.DivisionFrames(division)
	results := snap.DivisionResults(division)

	teamStats := make(map[string]league.PlayerSeasonStats)
	for _, s := range snap.DivisionStats(division) {
		if s.Team == team {
			teamStats[s.Player] = s
		}
	}

	likely := LikelyLineup(frames, team, LikelyLineupMatches)

	var homePlayed, homeWon, awayPlayed, awayWon int
	for _, r := range results {
		switch team {
		case r.HomeTeam:
			homePlayed++
			if r.HomeScore > r.AwayScore {
				homeWon++
			}
		case r.AwayTeam:
			awayPlayed++
			if r.AwayScore > r.HomeScore {
				awayWon++
			}
		}
	}

	if len(likely) == 0 && len(teamStats) == 0 && homePlayed+awayPlayed == 0 {
		return nil
	}

	scout := &Scout{
		Team:     team,
		Division: division,
		SetBias:  SetBias(frames, team),
	}
	if homePlayed > 0 {
		scout.HomeWinPct = float64(homeWon) / float64(homePlayed) * 100
	}
	if awayPlayed > 0 {
		scout.AwayWinPct = float64(awayWon) / float64(awayPlayed) * 100
	}

	for _, player := range likely {
		st := teamStats[player]
		adjusted := ratings.AdjustedWinPct(st.Won, st.Played)
		scout.LikelyLineup = append(scout.LikelyLineup, PlayerScout{
			Player:      player,
			Played:      st.Played,
			Won:         st.Won,
			AdjustedPct: adjusted,
			FormDelta:   FormDelta(frames, player, adjusted),
			BreakDishes: st.BreakDishFor,
		})
	}

	var ownStats []league.PlayerSeasonStats
	for _, s := range teamStats {
		ownStats = append(ownStats, s)
	}
	for _, leader := range BreakDishLeaders(ownStats, 3) {
		scout.Threats = append(scout.Threats,
			fmt.Sprintf("%s has %d break-and-dish finishes", leader.Player, leader.BreakDishFor))
	}

	scout.Notes = scoutNotes(scout)
	return scout
}

func scoutNotes(s *Scout) []string {
	var notes []string

	switch {
	case s.SetBias > FrontLoadBias:
		notes = append(notes, fmt.Sprintf("front-loads set 1 (%.1f points stronger than set 2)", s.SetBias))
	case s.SetBias < -FrontLoadBias:
		notes = append(notes, fmt.Sprintf("saves strength for set 2 (%.1f points stronger than set 1)", -s.SetBias))
	}

	if s.HomeWinPct-s.AwayWinPct > 15 {
		notes = append(notes, fmt.Sprintf("much stronger at home (%.0f%% vs %.0f%% away)", s.HomeWinPct, s.AwayWinPct))
	} else if s.AwayWinPct-s.HomeWinPct > 15 {
		notes = append(notes, fmt.Sprintf("travels well (%.0f%% away vs %.0f%% at home)", s.AwayWinPct, s.HomeWinPct))
	}

	for _, p := range s.LikelyLineup {
		if p.FormDelta >= 10 {
			notes = append(notes, fmt.Sprintf("%s is running hot (%.1f points above season rate)", p.Player, p.FormDelta))
		}
	}
	return notes
}
