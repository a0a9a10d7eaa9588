// Package analytics derives player-level signals from frame records: recent
// form, head-to-head history, venue splits, set-order bias and likely
// lineups. All functions are pure over the records they are handed.
package analytics

import (
	"sort"

	"github.com/mhenders/baize/internal/league"
)

// PlayerFrames flattens a player's season into chronological frame outcomes.
func PlayerFrames(records []league.FrameRecord, player string) []FrameOutcome {
	ordered := sortedRecords(records)

	var out []FrameOutcome
	for _, rec := range ordered {
		for _, f := range orderedFrames(rec.Frames) {
			if !f.Involves(player) {
				continue
			}
			out = append(out, FrameOutcome{
				Opponent:  f.OpponentOf(player),
				Home:      f.HomePlayer == player,
				Won:       f.WonBy(player),
				BreakDish: f.BreakDish,
			})
		}
	}
	return out
}

// FormDelta measures how a player's recent frames compare with their season
// baseline, in percentage points. The window is the last 8 frames when at
// least 8 exist, else the last 5 when at least 5 exist, else there is no
// signal and the delta is 0.
func FormDelta(records []league.FrameRecord, player string, baselinePct float64) float64 {
	outcomes := PlayerFrames(records, player)

	var window int
	switch {
	case len(outcomes) >= FormLongWindow:
		window = FormLongWindow
	case len(outcomes) >= FormShortWindow:
		window = FormShortWindow
	default:
		return 0
	}

	wins := 0
	for _, o := range outcomes[len(outcomes)-window:] {
		if o.Won {
			wins++
		}
	}
	return float64(wins)/float64(window)*100 - baselinePct
}

// HeadToHeadNet counts a player's frame wins minus losses against any of the
// named opponents.
func HeadToHeadNet(records []league.FrameRecord, player string, opponents []string) int {
	against := make(map[string]bool, len(opponents))
	for _, o := range opponents {
		against[o] = true
	}

	net := 0
	for _, o := range PlayerFrames(records, player) {
		if !against[o.Opponent] {
			continue
		}
		if o.Won {
			net++
		} else {
			net--
		}
	}
	return net
}

// VenueDelta is the player's win percentage at the given venue side minus
// their season baseline. Fewer than MinVenueFrames at that side is no signal.
func VenueDelta(records []league.FrameRecord, player string, home bool, baselinePct float64) float64 {
	var played, won int
	for _, o := range PlayerFrames(records, player) {
		if o.Home != home {
			continue
		}
		played++
		if o.Won {
			won++
		}
	}
	if played < MinVenueFrames {
		return 0
	}
	return float64(won)/float64(played)*100 - baselinePct
}

// LikelyLineup predicts who turns out for a team: everyone who appeared for
// it in its n most recent matches, most recent appearances first.
func LikelyLineup(records []league.FrameRecord, team string, n int) []string {
	var own []league.FrameRecord
	for _, rec := range records {
		if rec.HomeTeam == team || rec.AwayTeam == team {
			own = append(own, rec)
		}
	}
	sort.SliceStable(own, func(i, j int) bool {
		return own[i].Date.After(own[j].Date)
	})
	if n > 0 && len(own) > n {
		own = own[:n]
	}

	seen := make(map[string]bool)
	var out []string
	for _, rec := range own {
		for _, f := range orderedFrames(rec.Frames) {
			name := f.HomePlayer
			if rec.AwayTeam == team {
				name = f.AwayPlayer
			}
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

// SetBias is the team's set-one win percentage minus its set-two win
// percentage across its frame records. Values above FrontLoadBias suggest the
// team plays its strongest players in the first set.
func SetBias(records []league.FrameRecord, team string) float64 {
	var played, won [league.SetsPerMatch + 1]int
	for _, rec := range records {
		if rec.HomeTeam != team && rec.AwayTeam != team {
			continue
		}
		homeSide := rec.HomeTeam == team
		for _, f := range rec.Frames {
			if f.Set < 1 || f.Set > league.SetsPerMatch {
				continue
			}
			played[f.Set]++
			if (f.Winner == league.HomeSide) == homeSide {
				won[f.Set]++
			}
		}
	}
	pct := func(set int) float64 {
		if played[set] == 0 {
			return 0
		}
		return float64(won[set]) / float64(played[set]) * 100
	}
	return pct(1) - pct(2)
}

// BreakDishLeaders returns the division's top n players by break-and-dish
// count. Players without one do not feature.
func BreakDishLeaders(stats []league.PlayerSeasonStats, n int) []league.PlayerSeasonStats {
	var leaders []league.PlayerSeasonStats
	for _, s := range stats {
		if s.BreakDishFor > 0 {
			leaders = append(leaders, s)
		}
	}
	sort.SliceStable(leaders, func(i, j int) bool {
		if leaders[i].BreakDishFor != leaders[j].BreakDishFor {
			return leaders[i].BreakDishFor > leaders[j].BreakDishFor
		}
		return leaders[i].Player < leaders[j].Player
	})
	if n > 0 && len(leaders) > n {
		leaders = leaders[:n]
	}
	return leaders
}

func sortedRecords(records []league.FrameRecord) []league.FrameRecord {
	out := append([]league.FrameRecord(nil), records...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

func orderedFrames(frames []league.Frame) []league.Frame {
	out := append([]league.Frame(nil), frames...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Set != out[j].Set {
			return out[i].Set < out[j].Set
		}
		return out[i].Position < out[j].Position
	})
	return out
}
