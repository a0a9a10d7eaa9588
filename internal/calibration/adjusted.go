package calibration

import (
	"math"

	"github.com/mhenders/baize/internal/league"
	"github.com/mhenders/baize/internal/ratings"
)

// AdjustedRating returns a player's cross-context rating: the shrunk win
// percentage of their aggregate division record plus the division and league
// offsets, with z-score and percentile taken over the division's players.
// Unknown player returns nil. A nil calibration applies no offset and
// imposes no confidence penalty.
func AdjustedRating(player, division, leagueName string, stats []league.PlayerSeasonStats, divCal, leagueCal *Calibration) *Rating {
	totals := make(map[string]*contextTotals)
	for _, s := range stats {
		if s.Division != division || s.Player == "" {
			continue
		}
		t, ok := totals[s.Player]
		if !ok {
			t = &contextTotals{team: s.Team}
			totals[s.Player] = t
		}
		t.played += s.Played
		t.won += s.Won
	}

	rating := contextRating(player, totals, divCal, leagueCal, division, leagueName)
	if rating == nil {
		return nil
	}
	rating.Player = player
	rating.Team = totals[player].team
	return rating
}

// TeamRating rates a team's aggregate record against the other teams in the
// division, with the same offset and confidence composition as player
// ratings.
func TeamRating(team, division, leagueName string, stats []league.PlayerSeasonStats, divCal, leagueCal *Calibration) *Rating {
	totals := make(map[string]*contextTotals)
	for _, s := range stats {
		if s.Division != division || s.Team == "" {
			continue
		}
		t, ok := totals[s.Team]
		if !ok {
			t = &contextTotals{}
			totals[s.Team] = t
		}
		t.played += s.Played
		t.won += s.Won
	}

	rating := contextRating(team, totals, divCal, leagueCal, division, leagueName)
	if rating == nil {
		return nil
	}
	rating.Team = team
	return rating
}

// contextRating ranks one entry of an aggregated population and applies the
// calibration offsets.
func contextRating(key string, totals map[string]*contextTotals, divCal, leagueCal *Calibration, division, leagueName string) *Rating {
	target, ok := totals[key]
	if !ok {
		return nil
	}

	population := make([]float64, 0, len(totals))
	for _, t := range totals {
		population = append(population, ratings.AdjustedWinPct(t.won, t.played))
	}
	raw := ratings.AdjustedWinPct(target.won, target.played)

	return &Rating{
		Division:   division,
		League:     leagueName,
		Played:     target.played,
		Raw:        raw,
		Adjusted:   raw + divCal.Offset(division) + leagueCal.Offset(leagueName),
		ZScore:     zScore(raw, population),
		Percentile: percentile(raw, population),
		Confidence: combinedConfidence(divCal, leagueCal),
	}
}

// combinedConfidence is the weaker of the calibrations supplied; nil means
// that level was not calibrated at all and is skipped.
func combinedConfidence(cals ...*Calibration) float64 {
	confidence := 1.0
	for _, c := range cals {
		if c == nil {
			continue
		}
		if c.Confidence < confidence {
			confidence = c.Confidence
		}
	}
	return confidence
}

// percentile is the share of the population strictly below the value on a
// 0-100 scale; a population of one sits at 50.
func percentile(value float64, population []float64) float64 {
	n := len(population)
	if n <= 1 {
		return 50
	}
	below := 0
	for _, p := range population {
		if p < value {
			below++
		}
	}
	return 100 * float64(below) / float64(n-1)
}

// zScore uses the population standard deviation; a uniform population scores
// 0 rather than dividing by zero.
func zScore(value float64, population []float64) float64 {
	if len(population) == 0 {
		return 0
	}
	var mean float64
	for _, p := range population {
		mean += p
	}
	mean /= float64(len(population))

	var variance float64
	for _, p := range population {
		d := p - mean
		variance += d * d
	}
	variance /= float64(len(population))
	if variance == 0 {
		return 0
	}
	return (value - mean) / math.Sqrt(variance)
}
