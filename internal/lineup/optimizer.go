// Package lineup assembles and ranks ten-player lineups against a known
// opponent, scoring candidates on season record, recent form, head-to-head
// history and venue splits.
package lineup

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/mhenders/baize/internal/analytics"
	"github.com/mhenders/baize/internal/league"
	"github.com/mhenders/baize/internal/ratings"
	"github.com/mhenders/baize/internal/simulation"
)

// Optimize builds the best lineup the availability allows, its win
// probability against the opponent's likely lineup, and up to the requested
// number of single-swap alternatives. Fewer than ten available players is
// ErrInsufficientPlayers; there is no degraded lineup.
func Optimize(req Request) (*Result, error) {
	if req.Snapshot == nil {
		return nil, fmt.Errorf("optimizing lineup for %q: nil snapshot", req.Team)
	}
	rng := req.Rand
	if rng == nil {
		rng = simulation.NewRand(time.Now().UnixNano())
	}

	frames := req.Snapshot.DivisionFrames(req.Division)
	pool := buildPool(req)
	available := availablePlayers(req, pool)
	if len(available) < TeamSize {
		return nil, ErrInsufficientPlayers
	}

	likelyOpposition := analytics.LikelyLineup(frames, req.Opponent, analytics.LikelyLineupMatches)
	scores := scorePlayers(available, pool, frames, likelyOpposition, req.Home)

	bias := analytics.SetBias(frames, req.Opponent)
	inverted := bias > analytics.FrontLoadBias

	locks := validLocks(req.Locks, available)
	chosen := choose(scores, locks)
	sets := assign(chosen, scores, locks, inverted)

	ourStrength, strengthBased := lineupStrength(req, chosen, scores)
	theirStrength := opponentStrength(req, likelyOpposition)
	odds, winProb := playMatch(ourStrength, theirStrength, req.Home, rng)

	result := &Result{
		Team:           req.Team,
		Opponent:       req.Opponent,
		Home:           req.Home,
		Sets:           sets,
		Scores:         chosenScores(chosen, scores),
		Odds:           odds,
		WinProbability: winProb,
		StrengthBased:  strengthBased,
		Inverted:       inverted,
	}
	result.Insights = insights(result, bias)
	result.Alternatives = alternatives(req, scores, locks, chosen, inverted, theirStrength, winProb, rng)
	return result, nil
}

// buildPool collects the team's season statistics keyed by player, with
// what-if squad changes applied before anything is scored.
func buildPool(req Request) map[string]league.PlayerSeasonStats {
	pool := make(map[string]league.PlayerSeasonStats)
	for _, s := range req.Snapshot.DivisionStats(req.Division) {
		if s.Team == req.Team {
			pool[s.Player] = s
		}
	}
	for _, s := range req.AddPlayers {
		s.Team = req.Team
		s.Division = req.Division
		pool[s.Player] = s
	}
	for _, name := range req.RemovePlayers {
		delete(pool, name)
	}
	return pool
}

// availablePlayers resolves who can actually play: the explicit availability
// list when given, otherwise the whole roster, always minus removals.
func availablePlayers(req Request, pool map[string]league.PlayerSeasonStats) []string {
	names := req.Available
	if len(names) == 0 {
		names = req.Snapshot.Roster(req.Division, req.Team)
		if len(names) == 0 {
			for name := range pool {
				names = append(names, name)
			}
			sort.Strings(names)
		}
		for _, s := range req.AddPlayers {
			names = append(names, s.Player)
		}
	}

	removed := make(map[string]bool, len(req.RemovePlayers))
	for _, name := range req.RemovePlayers {
		removed[name] = true
	}

	seen := make(map[string]bool, len(names))
	var out []string
	for _, name := range names {
		if name == "" || removed[name] || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// scorePlayers computes the composite for every available player. Players
// under the minimum games keep their shrunk percentage as the whole score:
// there is not enough sample to trust form, head-to-head or venue splits.
func scorePlayers(available []string, pool map[string]league.PlayerSeasonStats, frames []league.FrameRecord, opposition []string, home bool) map[string]PlayerScore {
	scores := make(map[string]PlayerScore, len(available))
	for _, name := range available {
		st := pool[name]
		adjusted := ratings.AdjustedWinPct(st.Won, st.Played)
		score := PlayerScore{
			Player:      name,
			Played:      st.Played,
			Won:         st.Won,
			AdjustedPct: adjusted,
			Composite:   adjusted,
		}
		if st.Played >= MinGamesForSelection {
			score.Rated = true
			score.FormDelta = analytics.FormDelta(frames, name, adjusted)
			score.HeadToHead = analytics.HeadToHeadNet(frames, name, opposition)
			score.VenueDelta = analytics.VenueDelta(frames, name, home, adjusted)
			score.Composite = adjusted +
				FormWeight*score.FormDelta +
				HeadToHeadWeight*float64(score.HeadToHead) +
				VenueWeight*score.VenueDelta
		}
		scores[name] = score
	}
	return scores
}

// validLocks drops locks that cannot be honored: slots outside the grid,
// unavailable players, or collisions with an earlier lock.
func validLocks(locks []Lock, available []string) []Lock {
	avail := make(map[string]bool, len(available))
	for _, name := range available {
		avail[name] = true
	}

	taken := make(map[[2]int]bool)
	lockedPlayer := make(map[string]bool)
	var out []Lock
	for _, l := range locks {
		if l.Set < 1 || l.Set > league.SetsPerMatch {
			continue
		}
		if l.Position < 1 || l.Position > league.FramesPerSet {
			continue
		}
		if !avail[l.Player] || lockedPlayer[l.Player] {
			continue
		}
		slot := [2]int{l.Set, l.Position}
		if taken[slot] {
			continue
		}
		taken[slot] = true
		lockedPlayer[l.Player] = true
		out = append(out, l)
	}
	return out
}

// choose picks the ten players: locked ones first, then best composite.
func choose(scores map[string]PlayerScore, locks []Lock) []string {
	chosen := make([]string, 0, TeamSize)
	used := make(map[string]bool, TeamSize)
	for _, l := range locks {
		chosen = append(chosen, l.Player)
		used[l.Player] = true
	}
	for _, s := range rankScores(scores) {
		if len(chosen) == TeamSize {
			break
		}
		if used[s.Player] {
			continue
		}
		chosen = append(chosen, s.Player)
		used[s.Player] = true
	}
	return chosen
}

// assign lays the chosen players onto the two sets. The strongest five fill
// set one by default; against a front-loaded opponent the order inverts and
// they fill set two instead. Locked slots stay exactly where they were asked.
func assign(chosen []string, scores map[string]PlayerScore, locks []Lock, inverted bool) [][]Slot {
	grid := make([][]Slot, league.SetsPerMatch)
	for s := range grid {
		grid[s] = make([]Slot, league.FramesPerSet)
		for p := range grid[s] {
			grid[s][p] = Slot{Set: s + 1, Position: p + 1}
		}
	}

	locked := make(map[string]bool, len(locks))
	for _, l := range locks {
		grid[l.Set-1][l.Position-1] = Slot{
			Set: l.Set, Position: l.Position,
			Player: l.Player, Locked: true,
			Score: scores[l.Player].Composite,
		}
		locked[l.Player] = true
	}

	var rest []string
	for _, name := range rankNames(chosen, scores) {
		if !locked[name] {
			rest = append(rest, name)
		}
	}

	setOrder := []int{0, 1}
	if inverted {
		setOrder = []int{1, 0}
	}
	i := 0
	for _, s := range setOrder {
		for p := range grid[s] {
			if grid[s][p].Player != "" || i >= len(rest) {
				continue
			}
			grid[s][p] = Slot{
				Set: s + 1, Position: p + 1,
				Player: rest[i],
				Score:  scores[rest[i]].Composite,
			}
			i++
		}
	}
	return grid
}

// lineupStrength estimates the chosen lineup's strength. With fewer than
// five rated players the individual numbers are not trusted and the team's
// division strength is used instead.
func lineupStrength(req Request, chosen []string, scores map[string]PlayerScore) (float64, bool) {
	rated := 0
	var sum float64
	for _, name := range chosen {
		s := scores[name]
		sum += s.AdjustedPct
		if s.Rated {
			rated++
		}
	}
	if rated >= minRatedPlayers && len(chosen) > 0 {
		return ratings.StrengthFromPct(sum / float64(len(chosen))), false
	}
	return ratings.DivisionStrengths(req.Snapshot, req.Division)[req.Team], true
}

// opponentStrength mirrors lineupStrength for the opposition's likely lineup.
func opponentStrength(req Request, likely []string) float64 {
	stats := make(map[string]league.PlayerSeasonStats)
	for _, s := range req.Snapshot.DivisionStats(req.Division) {
		if s.Team == req.Opponent {
			stats[s.Player] = s
		}
	}

	rated := 0
	var sum float64
	for _, name := range likely {
		if st, ok := stats[name]; ok && st.Played >= MinGamesForSelection {
			sum += ratings.AdjustedWinPct(st.Won, st.Played)
			rated++
		}
	}
	if rated >= minRatedPlayers {
		return ratings.StrengthFromPct(sum / float64(rated))
	}
	return ratings.DivisionStrengths(req.Snapshot, req.Division)[req.Opponent]
}

// playMatch runs the single-match simulation from our side's perspective.
func playMatch(ours, theirs float64, home bool, rng *rand.Rand) (simulation.MatchOdds, float64) {
	if home {
		odds := simulation.SimulateMatch(ours, theirs, rng)
		return odds, odds.HomeWin
	}
	odds := simulation.SimulateMatch(theirs, ours, rng)
	return odds, odds.AwayWin
}

// alternatives swaps one bench player for one non-locked starter at a time,
// re-simulating each candidate and keeping the best distinct lineups.
func alternatives(req Request, scores map[string]PlayerScore, locks []Lock, chosen []string, inverted bool, theirStrength, optimalProb float64, rng *rand.Rand) []Alternative {
	limit := req.Alternatives
	if limit == 0 {
		limit = DefaultAlternatives
	}
	if limit < 0 {
		return nil
	}

	inLineup := make(map[string]bool, len(chosen))
	for _, name := range chosen {
		inLineup[name] = true
	}
	lockedPlayer := make(map[string]bool, len(locks))
	for _, l := range locks {
		lockedPlayer[l.Player] = true
	}

	var bench []string
	for _, s := range rankScores(scores) {
		if !inLineup[s.Player] {
			bench = append(bench, s.Player)
		}
	}
	var starters []string
	for _, name := range chosen {
		if !lockedPlayer[name] {
			starters = append(starters, name)
		}
	}

	seen := map[string]bool{gridKey(assign(chosen, scores, locks, inverted)): true}
	var out []Alternative
	for _, in := range bench {
		for _, dropped := range starters {
			candidate := make([]string, 0, TeamSize)
			for _, name := range chosen {
				if name != dropped {
					candidate = append(candidate, name)
				}
			}
			candidate = append(candidate, in)

			sets := assign(candidate, scores, locks, inverted)
			key := gridKey(sets)
			if seen[key] {
				continue
			}
			seen[key] = true

			strength, _ := lineupStrength(req, candidate, scores)
			_, winProb := playMatch(strength, theirStrength, req.Home, rng)
			out = append(out, Alternative{
				Sets:           sets,
				SwappedIn:      in,
				SwappedOut:     dropped,
				WinProbability: winProb,
				Deficit:        optimalProb - winProb,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].WinProbability != out[j].WinProbability {
			return out[i].WinProbability > out[j].WinProbability
		}
		return out[i].SwappedIn < out[j].SwappedIn
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// rankScores orders all scored players by composite, best first.
func rankScores(scores map[string]PlayerScore) []PlayerScore {
	ranked := make([]PlayerScore, 0, len(scores))
	for _, s := range scores {
		ranked = append(ranked, s)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Composite != ranked[j].Composite {
			return ranked[i].Composite > ranked[j].Composite
		}
		return ranked[i].Player < ranked[j].Player
	})
	return ranked
}

// rankNames orders a subset of players by composite, best first.
func rankNames(names []string, scores map[string]PlayerScore) []string {
	out := append([]string(nil), names...)
	sort.SliceStable(out, func(i, j int) bool {
		si, sj := scores[out[i]], scores[out[j]]
		if si.Composite != sj.Composite {
			return si.Composite > sj.Composite
		}
		return out[i] < out[j]
	})
	return out
}

// chosenScores returns the breakdowns of the chosen ten, best first.
func chosenScores(chosen []string, scores map[string]PlayerScore) []PlayerScore {
	out := make([]PlayerScore, 0, len(chosen))
	for _, name := range rankNames(chosen, scores) {
		out = append(out, scores[name])
	}
	return out
}

// gridKey builds the dedupe key for a lineup: sorted player-set pairs.
func gridKey(sets [][]Slot) string {
	var parts []string
	for _, set := range sets {
		for _, slot := range set {
			if slot.Player != "" {
				parts = append(parts, fmt.Sprintf("%s@%d", slot.Player, slot.Set))
			}
		}
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}
