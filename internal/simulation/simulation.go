// Package simulation runs Monte Carlo projections of seasons and single
// matches at frame granularity. Every entry point takes the random source it
// should draw from; there is no package-level generator.
package simulation

import (
	"math/rand"
	"sort"

	"github.com/mhenders/baize/internal/league"
	"github.com/mhenders/baize/internal/ratings"
)

// NewRand builds a seeded generator for the simulation entry points.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// SimulateSeason plays out the remaining fixtures from the given standings
// many times over. Each remaining fixture is sampled as ten independent
// frames at the matchup model's frame win probability, scored with the league
// points rule, and the final tables are ranked by points then frame
// differential. Fixtures naming a team absent from the standings are skipped.
// Returns projections sorted by average points, or nil for empty standings.
func SimulateSeason(standings []league.Standing, strengths map[string]float64, remaining []league.Fixture, rng *rand.Rand, opts ...Option) []TeamProjection {
	if len(standings) == 0 {
		return nil
	}
	o := options{runs: SeasonRuns}
	for _, opt := range opts {
		opt(&o)
	}

	n := len(standings)
	index := make(map[string]int, n)
	basePoints := make([]int, n)
	baseDiff := make([]int, n)
	for i, row := range standings {
		index[row.Team] = i
		basePoints[i] = row.Points
		baseDiff[i] = row.FrameDiff
	}

	type tie struct {
		home, away int
		winProb    float64
	}
	ties := make([]tie, 0, len(remaining))
	for _, f := range remaining {
		hi, okH := index[f.HomeTeam]
		ai, okA := index[f.AwayTeam]
		if !okH || !okA {
			continue
		}
		ties = append(ties, tie{
			home:    hi,
			away:    ai,
			winProb: ratings.FrameWinProbability(strengths[f.HomeTeam], strengths[f.AwayTeam]),
		})
	}

	pointsSum := make([]float64, n)
	rankCounts := make([][]int, n)
	for i := range rankCounts {
		rankCounts[i] = make([]int, n)
	}

	points := make([]int, n)
	diff := make([]int, n)
	order := make([]int, n)

	for run := 0; run < o.runs; run++ {
		copy(points, basePoints)
		copy(diff, baseDiff)

		for _, m := range ties {
			homeFrames := 0
			for frame := 0; frame < league.FramesPerMatch; frame++ {
				if rng.Float64() < m.winProb {
					homeFrames++
				}
			}
			awayFrames := league.FramesPerMatch - homeFrames

			diff[m.home] += homeFrames - awayFrames
			diff[m.away] += awayFrames - homeFrames
			switch {
			case homeFrames > awayFrames:
				points[m.home] += league.HomeWinPoints
			case awayFrames > homeFrames:
				points[m.away] += league.AwayWinPoints
			default:
				points[m.home] += league.DrawPoints
				points[m.away] += league.DrawPoints
			}
		}

		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(a, b int) bool {
			ia, ib := order[a], order[b]
			if points[ia] != points[ib] {
				return points[ia] > points[ib]
			}
			if diff[ia] != diff[ib] {
				return diff[ia] > diff[ib]
			}
			return standings[ia].Team < standings[ib].Team
		})

		for pos, i := range order {
			rankCounts[i][pos]++
		}
		for i := range pointsSum {
			pointsSum[i] += float64(points[i])
		}
	}

	runs := float64(o.runs)
	out := make([]TeamProjection, n)
	for i, row := range standings {
		probs := make([]float64, n)
		for pos, count := range rankCounts[i] {
			probs[pos] = float64(count) / runs
		}
		proj := TeamProjection{
			Team:          row.Team,
			CurrentPoints: row.Points,
			AvgPoints:     pointsSum[i] / runs,
			TitleProb:     probs[0],
			PositionProbs: probs,
		}
		if n >= 2 {
			proj.TopTwoProb = probs[0] + probs[1]
			proj.BottomTwoProb = probs[n-1] + probs[n-2]
		} else {
			proj.TopTwoProb = probs[0]
			proj.BottomTwoProb = probs[0]
		}
		out[i] = proj
	}

	sort.SliceStable(out, func(a, b int) bool {
		if out[a].AvgPoints != out[b].AvgPoints {
			return out[a].AvgPoints > out[b].AvgPoints
		}
		return out[a].Team < out[b].Team
	})
	return out
}

// SimulateMatch samples one fixture repeatedly and reports its outcome
// distribution. The home advantage is applied by the matchup model, so
// callers pass raw strengths.
func SimulateMatch(homeStrength, awayStrength float64, rng *rand.Rand, opts ...Option) MatchOdds {
	o := options{runs: MatchRuns}
	for _, opt := range opts {
		opt(&o)
	}

	winProb := ratings.FrameWinProbability(homeStrength, awayStrength)
	counts := make([]int, league.FramesPerMatch+1)
	for run := 0; run < o.runs; run++ {
		homeFrames := 0
		for frame := 0; frame < league.FramesPerMatch; frame++ {
			if rng.Float64() < winProb {
				homeFrames++
			}
		}
		counts[homeFrames]++
	}

	runs := float64(o.runs)
	odds := MatchOdds{}
	for homeFrames, count := range counts {
		if count == 0 {
			continue
		}
		p := float64(count) / runs
		awayFrames := league.FramesPerMatch - homeFrames

		odds.ExpectedHomeFrames += float64(homeFrames) * p
		odds.ExpectedAwayFrames += float64(awayFrames) * p
		switch {
		case homeFrames > awayFrames:
			odds.HomeWin += p
		case awayFrames > homeFrames:
			odds.AwayWin += p
		default:
			odds.Draw += p
		}
		odds.Scorelines = append(odds.Scorelines, Scoreline{
			HomeScore:   homeFrames,
			AwayScore:   awayFrames,
			Probability: p,
		})
	}

	sort.SliceStable(odds.Scorelines, func(a, b int) bool {
		return odds.Scorelines[a].Probability > odds.Scorelines[b].Probability
	})
	return odds
}
