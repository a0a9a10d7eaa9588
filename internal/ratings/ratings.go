// Package ratings converts historical results into team strength scores and
// turns strength pairs into frame win probabilities.
package ratings

import (
	"math"

	"github.com/mhenders/baize/internal/league"
)

// Model constants. Strengths live on a symmetric scale of roughly ±2: a side
// winning every frame maps to +2, losing every frame to -2.
const (
	// HomeAdvantage is added to the home side's strength in every matchup.
	HomeAdvantage = 0.2
	// ShrinkageGames is the pseudo-game count K pulling small samples to 50%.
	ShrinkageGames = 6
	// ShrinkagePrior is the win rate small samples are pulled toward.
	ShrinkagePrior = 0.5
	// MinGamesFullWeight is the games played at which the current season
	// fully replaces the prior-period roster estimate.
	MinGamesFullWeight = 10
	// UnknownPriorRating is the percentage credited to players with no
	// prior record, deliberately below average.
	UnknownPriorRating = 45.0
	// UnknownPriorGames is the pseudo-game weight of an unknown player.
	UnknownPriorGames = 6
)

// Scale factors between the percentage and strength domains.
const (
	strengthPerFrame = 0.2  // ±10 frames per game onto ±2
	pctPerStrength   = 25.0 // ±50 percentage points onto ±2
)

// AdjustedWinPct applies Bayesian shrinkage to a raw record: the result is
// (won + K·0.5) / (played + K) as a 0-100 percentage. A 2-0 record reads as
// 62.5%, not 100%.
func AdjustedWinPct(won, played int) float64 {
	return (float64(won) + ShrinkageGames*ShrinkagePrior) /
		(float64(played) + ShrinkageGames) * 100
}

// StrengthFromPct maps a 0-100 win percentage onto the strength scale, with
// 50% at zero.
func StrengthFromPct(pct float64) float64 {
	return (pct - 50) / pctPerStrength
}

// FrameWinProbability is the matchup model: the probability the home side
// wins a single frame. Pure logistic of the strength gap plus home advantage,
// so blowouts saturate toward 0/1 without an explicit cap.
func FrameWinProbability(homeStrength, awayStrength float64) float64 {
	return logistic(homeStrength + HomeAdvantage - awayStrength)
}

func logistic(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// TeamStrengths estimates a strength for every team in a division from its
// result history, blending in a prior-period roster estimate while the
// current sample is small. Zero teams yields an empty map; a team with no
// games and no rostered players stays at the process prior of 0.
func TeamStrengths(results []league.MatchResult, rosters map[string][]string, priors map[string]league.PriorRating, division string, teams []string) map[string]float64 {
	strengths := make(map[string]float64, len(teams))
	if len(teams) == 0 {
		return strengths
	}

	type record struct {
		played int
		diff   int
	}
	records := make(map[string]record, len(teams))
	for _, r := range results {
		if r.Division != division {
			continue
		}
		home := records[r.HomeTeam]
		home.played++
		home.diff += r.HomeScore - r.AwayScore
		records[r.HomeTeam] = home

		away := records[r.AwayTeam]
		away.played++
		away.diff += r.AwayScore - r.HomeScore
		records[r.AwayTeam] = away
	}

	for _, team := range teams {
		rec := records[team]
		var current float64
		if rec.played > 0 {
			current = float64(rec.diff) / float64(rec.played) * strengthPerFrame
		}
		if rec.played >= MinGamesFullWeight {
			strengths[team] = current
			continue
		}

		prior := rosterPriorStrength(rosters[league.RosterKey(division, team)], priors)
		weight := float64(rec.played) / float64(MinGamesFullWeight)
		strengths[team] = weight*current + (1-weight)*prior
	}
	return strengths
}

// DivisionStrengths is the snapshot-level convenience wrapper around
// TeamStrengths.
func DivisionStrengths(snap *league.Snapshot, division string) map[string]float64 {
	return TeamStrengths(snap.DivisionResults(division), snap.Rosters, snap.Priors, division, snap.Teams[division])
}

// rosterPriorStrength averages the prior-period ratings of a roster, weighted
// by games played. Unknown players count at a fixed below-average rating with
// a small pseudo-game weight so all-unknown rosters neither look strong nor
// collapse the estimate. An empty roster has nothing to say and returns 0.
func rosterPriorStrength(players []string, priors map[string]league.PriorRating) float64 {
	if len(players) == 0 {
		return 0
	}

	var weighted, weight float64
	for _, p := range players {
		if prior, ok := priors[p]; ok && prior.Games > 0 {
			weighted += prior.Rating * float64(prior.Games)
			weight += float64(prior.Games)
			continue
		}
		weighted += UnknownPriorRating * UnknownPriorGames
		weight += UnknownPriorGames
	}
	return StrengthFromPct(weighted / weight)
}
