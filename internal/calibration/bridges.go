package calibration

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mhenders/baize/internal/league"
	"github.com/mhenders/baize/internal/ratings"
)

type contextTotals struct {
	team   string
	played int
	won    int
}

// divisionTotals aggregates stats per player per division; a player rostered
// on two teams in one division is a single context.
func divisionTotals(stats []league.PlayerSeasonStats) map[string]map[string]*contextTotals {
	perPlayer := make(map[string]map[string]*contextTotals)
	for _, s := range stats {
		if s.Player == "" || s.Division == "" {
			continue
		}
		divs, ok := perPlayer[s.Player]
		if !ok {
			divs = make(map[string]*contextTotals)
			perPlayer[s.Player] = divs
		}
		totals, ok := divs[s.Division]
		if !ok {
			totals = &contextTotals{team: s.Team}
			divs[s.Division] = totals
		}
		totals.played += s.Played
		totals.won += s.Won
	}
	return perPlayer
}

// DivisionBridges finds players with enough games in two or more divisions.
// Within one league names are trusted verbatim, so every bridge carries
// confidence 1.
func DivisionBridges(stats []league.PlayerSeasonStats, cfg Config) []Bridge {
	cfg = cfg.withDefaults()
	perPlayer := divisionTotals(stats)

	var bridges []Bridge
	for player, divs := range perPlayer {
		var contexts []Context
		for code, totals := range divs {
			if totals.played < cfg.MinBridgeGames {
				continue
			}
			contexts = append(contexts, Context{
				Key:         code,
				Player:      player,
				Team:        totals.team,
				Played:      totals.played,
				Won:         totals.won,
				AdjustedPct: ratings.AdjustedWinPct(totals.won, totals.played),
			})
		}
		if len(contexts) < 2 {
			continue
		}
		sort.Slice(contexts, func(i, j int) bool { return contexts[i].Key < contexts[j].Key })
		bridges = append(bridges, Bridge{Player: player, Contexts: contexts, Confidence: 1})
	}

	sort.Slice(bridges, func(i, j int) bool { return bridges[i].Player < bridges[j].Player })
	return bridges
}

// LeagueBridges finds players who appear in both leagues with enough games in
// each. Identity is matched on the case-folded name first; players left over
// are matched fuzzily, taking the most similar counterpart at or above
// cfg.FuzzyThreshold. Each player is claimed at most once.
func LeagueBridges(a, b LeagueStats, cfg Config) []Bridge {
	cfg = cfg.withDefaults()

	left := leagueTotals(a.Stats, cfg.MinBridgeGames)
	right := leagueTotals(b.Stats, cfg.MinBridgeGames)

	rightByFold := make(map[string]string, len(right))
	for name := range right {
		rightByFold[foldName(name)] = name
	}

	leftNames := sortedKeys(left)
	claimed := make(map[string]bool, len(right))
	var bridges []Bridge

	// Exact case-folded matches first so a fuzzy match cannot steal them.
	var unmatched []string
	for _, name := range leftNames {
		counterpart, ok := rightByFold[foldName(name)]
		if !ok || claimed[counterpart] {
			unmatched = append(unmatched, name)
			continue
		}
		claimed[counterpart] = true
		bridges = append(bridges, leagueBridge(a, b, name, counterpart, left, right, 1))
	}

	for _, name := range unmatched {
		counterpart, similarity := closestName(name, right, claimed)
		if counterpart == "" || similarity < cfg.FuzzyThreshold {
			continue
		}
		claimed[counterpart] = true
		bridges = append(bridges, leagueBridge(a, b, name, counterpart, left, right, similarity))
	}

	sort.Slice(bridges, func(i, j int) bool { return bridges[i].Player < bridges[j].Player })
	return bridges
}

func leagueBridge(a, b LeagueStats, nameA, nameB string, left, right map[string]*contextTotals, confidence float64) Bridge {
	la, lb := left[nameA], right[nameB]
	return Bridge{
		Player:     nameA,
		Confidence: confidence,
		Contexts: []Context{
			{
				Key: a.League, Player: nameA,
				Played: la.played, Won: la.won,
				AdjustedPct: ratings.AdjustedWinPct(la.won, la.played),
			},
			{
				Key: b.League, Player: nameB,
				Played: lb.played, Won: lb.won,
				AdjustedPct: ratings.AdjustedWinPct(lb.won, lb.played),
			},
		},
	}
}

// leagueTotals aggregates a league's stats per player and drops anyone under
// the games minimum.
func leagueTotals(stats []league.PlayerSeasonStats, minGames int) map[string]*contextTotals {
	out := make(map[string]*contextTotals)
	for _, s := range stats {
		if s.Player == "" {
			continue
		}
		totals, ok := out[s.Player]
		if !ok {
			totals = &contextTotals{team: s.Team}
			out[s.Player] = totals
		}
		totals.played += s.Played
		totals.won += s.Won
	}
	for name, totals := range out {
		if totals.played < minGames {
			delete(out, name)
		}
	}
	return out
}

// closestName returns the unclaimed name most similar to the target, ties
// broken alphabetically so matching is deterministic.
func closestName(target string, pool map[string]*contextTotals, claimed map[string]bool) (string, float64) {
	best := ""
	bestSim := 0.0
	for _, name := range sortedKeys(pool) {
		if claimed[name] {
			continue
		}
		if sim := nameSimilarity(target, name); sim > bestSim {
			best, bestSim = name, sim
		}
	}
	return best, bestSim
}

// nameSimilarity is 1 minus the normalized Levenshtein distance over the
// case-folded names: 1 for identical spellings, 0 for nothing in common.
func nameSimilarity(a, b string) float64 {
	a, b = foldName(a), foldName(b)
	if a == b {
		return 1
	}
	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	if longest == 0 {
		return 0
	}
	distance := fuzzy.LevenshteinDistance(a, b)
	return 1 - float64(distance)/float64(longest)
}

func foldName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func sortedKeys(m map[string]*contextTotals) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
