package calibration

import (
	"sort"
	"strings"

	"github.com/mhenders/baize/internal/league"
	"github.com/mhenders/baize/internal/ratings"
)

// gapAccumulator collects confidence-weighted win-percentage differences
// observed between two contexts.
type gapAccumulator struct {
	sum    float64
	weight float64
}

// CalibrateDivisions solves one strength offset per division from the
// league's bridge players. When too few bridges exist the solved offsets are
// blended with the conventional tier table; below the confidence floor the
// table stands alone.
func CalibrateDivisions(stats []league.PlayerSeasonStats, divisions []league.DivisionInfo, cfg Config) *Calibration {
	cfg = cfg.withDefaults()
	if len(divisions) == 0 {
		return &Calibration{Offsets: map[string]float64{}}
	}

	codes := make([]string, 0, len(divisions))
	inLeague := make(map[string]bool, len(divisions))
	for _, d := range divisions {
		if inLeague[d.Code] {
			continue
		}
		inLeague[d.Code] = true
		codes = append(codes, d.Code)
	}

	gaps := make(map[string]map[string]*gapAccumulator)
	usable := 0
	for _, bridge := range DivisionBridges(stats, cfg) {
		var contexts []Context
		for _, ctx := range bridge.Contexts {
			if inLeague[ctx.Key] {
				contexts = append(contexts, ctx)
			}
		}
		if len(contexts) < 2 {
			continue
		}
		usable++
		for i := range contexts {
			for j := i + 1; j < len(contexts); j++ {
				diff := contexts[i].AdjustedPct - contexts[j].AdjustedPct
				recordGap(gaps, contexts[i].Key, contexts[j].Key, diff, bridge.Confidence)
			}
		}
	}

	solved := solveOffsets(codes, gaps, cfg.Iterations, cfg.Damping)
	confidence := bridgeConfidence(usable, cfg.FullConfidenceBridges)
	offsets := blendOffsets(solved, fallbackOffsets(divisions, cfg), confidence, cfg.FallbackFloor)

	return &Calibration{Offsets: offsets, Confidence: confidence, Bridges: usable}
}

// CalibrateLeagues solves one strength offset per league from cross-league
// bridge players. Each player's league rating is normalized by that league's
// own division offsets first, so division effects do not masquerade as
// league effects. No conventional tier table exists for whole leagues; the
// low-confidence fallback is the zero table.
func CalibrateLeagues(leagues []LeagueStats, cfg Config) *Calibration {
	cfg = cfg.withDefaults()
	if len(leagues) == 0 {
		return &Calibration{Offsets: map[string]float64{}}
	}

	names := make([]string, 0, len(leagues))
	normalized := make(map[string]map[string]float64, len(leagues))
	for _, l := range leagues {
		names = append(names, l.League)
		normalized[l.League] = normalizedRatings(l, cfg)
	}

	gaps := make(map[string]map[string]*gapAccumulator)
	usable := 0
	for i := 0; i < len(leagues); i++ {
		for j := i + 1; j < len(leagues); j++ {
			for _, bridge := range LeagueBridges(leagues[i], leagues[j], cfg) {
				ratingA, okA := normalized[leagues[i].League][bridge.Contexts[0].Player]
				ratingB, okB := normalized[leagues[j].League][bridge.Contexts[1].Player]
				if !okA || !okB {
					continue
				}
				usable++
				recordGap(gaps, leagues[i].League, leagues[j].League, ratingA-ratingB, bridge.Confidence)
			}
		}
	}

	solved := solveOffsets(names, gaps, cfg.Iterations, cfg.Damping)
	confidence := bridgeConfidence(usable, cfg.FullConfidenceBridges)

	fallback := make(map[string]float64, len(names))
	for _, name := range names {
		fallback[name] = 0
	}
	offsets := blendOffsets(solved, fallback, confidence, cfg.FallbackFloor)

	return &Calibration{Offsets: offsets, Confidence: confidence, Bridges: usable}
}

// GroupLeagues splits a snapshot into per-league calibration inputs, sorted
// by league name. Divisions without a league name group under the empty
// string; stats in unknown divisions are dropped.
func GroupLeagues(snap *league.Snapshot) []LeagueStats {
	divisionLeague := make(map[string]string, len(snap.Divisions))
	byLeague := make(map[string]*LeagueStats)
	names := make([]string, 0, len(snap.Divisions))
	for _, d := range snap.Divisions {
		divisionLeague[d.Code] = d.League
		l, ok := byLeague[d.League]
		if !ok {
			l = &LeagueStats{League: d.League}
			byLeague[d.League] = l
			names = append(names, d.League)
		}
		l.Divisions = append(l.Divisions, d)
	}
	for _, s := range snap.Stats {
		name, ok := divisionLeague[s.Division]
		if !ok {
			continue
		}
		byLeague[name].Stats = append(byLeague[name].Stats, s)
	}

	sort.Strings(names)
	out := make([]LeagueStats, 0, len(names))
	for _, name := range names {
		out = append(out, *byLeague[name])
	}
	return out
}

// normalizedRatings computes each player's league-level rating with the
// league's own division offsets applied, weighted by games per division.
func normalizedRatings(l LeagueStats, cfg Config) map[string]float64 {
	divCal := CalibrateDivisions(l.Stats, l.Divisions, cfg)

	out := make(map[string]float64)
	for player, divs := range divisionTotals(l.Stats) {
		var played, weighted float64
		for code, totals := range divs {
			if totals.played == 0 {
				continue
			}
			rating := ratings.AdjustedWinPct(totals.won, totals.played) + divCal.Offset(code)
			weighted += float64(totals.played) * rating
			played += float64(totals.played)
		}
		if played == 0 {
			continue
		}
		out[player] = weighted / played
	}
	return out
}

// solveOffsets runs damped iterative averaging over the observed gaps. Each
// pass moves every context toward the weighted consensus of its peers, then
// re-centers the table to zero mean. A fixed number of damped passes settles
// a sparse, possibly disconnected comparison graph without a linear solve.
func solveOffsets(keys []string, gaps map[string]map[string]*gapAccumulator, iterations int, damping float64) map[string]float64 {
	offsets := make(map[string]float64, len(keys))
	for _, key := range keys {
		offsets[key] = 0
	}
	if len(keys) == 0 {
		return offsets
	}

	for pass := 0; pass < iterations; pass++ {
		next := make(map[string]float64, len(keys))
		for _, key := range keys {
			peers := gaps[key]
			if len(peers) == 0 {
				next[key] = offsets[key]
				continue
			}
			var sum, weight float64
			for peer, acc := range peers {
				gap := acc.sum / acc.weight
				sum += acc.weight * (offsets[peer] - gap)
				weight += acc.weight
			}
			next[key] = damping*offsets[key] + (1-damping)*sum/weight
		}

		var mean float64
		for _, key := range keys {
			mean += next[key]
		}
		mean /= float64(len(keys))
		for _, key := range keys {
			next[key] -= mean
		}
		offsets = next
	}
	return offsets
}

// recordGap stores the observation in both directions so the solver sees a
// symmetric graph.
func recordGap(gaps map[string]map[string]*gapAccumulator, from, to string, diff, weight float64) {
	addGap(gaps, from, to, diff, weight)
	addGap(gaps, to, from, -diff, weight)
}

func addGap(gaps map[string]map[string]*gapAccumulator, from, to string, diff, weight float64) {
	peers, ok := gaps[from]
	if !ok {
		peers = make(map[string]*gapAccumulator)
		gaps[from] = peers
	}
	acc, ok := peers[to]
	if !ok {
		acc = &gapAccumulator{}
		peers[to] = acc
	}
	acc.sum += diff * weight
	acc.weight += weight
}

func bridgeConfidence(bridges, fullAt int) float64 {
	confidence := float64(bridges) / float64(fullAt)
	if confidence > 1 {
		return 1
	}
	return confidence
}

// blendOffsets mixes solved offsets with the fallback table according to
// confidence. Both inputs are zero-mean, so any blend stays zero-mean.
func blendOffsets(data, fallback map[string]float64, confidence, floor float64) map[string]float64 {
	out := make(map[string]float64, len(fallback))
	switch {
	case confidence >= 1:
		for key, value := range data {
			out[key] = value
		}
	case confidence < floor:
		for key, value := range fallback {
			out[key] = value
		}
	default:
		for key := range fallback {
			out[key] = confidence*data[key] + (1-confidence)*fallback[key]
		}
	}
	return out
}

// fallbackOffsets builds the conventional tier table for the divisions
// present, re-centered so it is comparable with solved offsets.
func fallbackOffsets(divisions []league.DivisionInfo, cfg Config) map[string]float64 {
	out := make(map[string]float64, len(divisions))
	for _, d := range divisions {
		name := d.Name
		if name == "" {
			name = d.Code
		}
		out[d.Code] = tierOffset(name, cfg.DivisionTiers)
	}
	recenter(out)
	return out
}

func tierOffset(name string, tiers []Tier) float64 {
	folded := strings.ToLower(name)
	for _, tier := range tiers {
		if strings.Contains(folded, strings.ToLower(tier.Match)) {
			return tier.Offset
		}
	}
	return 0
}

func recenter(offsets map[string]float64) {
	if len(offsets) == 0 {
		return
	}
	var mean float64
	for _, value := range offsets {
		mean += value
	}
	mean /= float64(len(offsets))
	for key := range offsets {
		offsets[key] -= mean
	}
}
