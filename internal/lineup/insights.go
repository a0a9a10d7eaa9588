package lineup

import "fmt"

// insights turns the optimizer's decisions into short tactical notes for the
// caller to show alongside the lineup.
func insights(res *Result, bias float64) []string {
	var out []string

	if res.Inverted {
		out = append(out, fmt.Sprintf("%s front-load set 1 (%.1f point set bias): strongest five moved to set 2", res.Opponent, bias))
	}
	if res.StrengthBased {
		out = append(out, "too few rated players in the lineup: win estimate falls back to team strength")
	}

	if len(res.Scores) > 0 {
		top := res.Scores[0]
		out = append(out, fmt.Sprintf("%s anchors the lineup at %.1f%% adjusted", top.Player, top.AdjustedPct))
	}

	bestEdge := 0
	bestName := ""
	for _, s := range res.Scores {
		if s.HeadToHead > bestEdge {
			bestEdge = s.HeadToHead
			bestName = s.Player
		}
	}
	if bestEdge > 0 {
		out = append(out, fmt.Sprintf("%s holds a +%d frame edge over the likely opposition", bestName, bestEdge))
	}

	for _, s := range res.Scores {
		if s.FormDelta >= 10 {
			out = append(out, fmt.Sprintf("%s arrives in form (%+.1f points on season rate)", s.Player, s.FormDelta))
		}
	}

	venue := "away from home"
	if res.Home {
		venue = "on home tables"
	}
	for _, s := range res.Scores {
		if s.VenueDelta >= 10 {
			out = append(out, fmt.Sprintf("%s lifts %s (%+.1f points)", s.Player, venue, s.VenueDelta))
		}
	}
	return out
}
