package league

import "sort"

// BuildStandings aggregates completed results into a sorted table. Teams with
// no results yet still get a zero row so the table always covers the division.
func BuildStandings(teams []string, results []MatchResult) []Standing {
	rows := make(map[string]*Standing, len(teams))
	order := make([]string, 0, len(teams))
	add := func(team string) *Standing {
		if row, ok := rows[team]; ok {
			return row
		}
		row := &Standing{Team: team}
		rows[team] = row
		order = append(order, team)
		return row
	}
	for _, team := range teams {
		add(team)
	}

	for _, r := range results {
		home := add(r.HomeTeam)
		away := add(r.AwayTeam)

		home.Played++
		away.Played++
		home.FramesFor += r.HomeScore
		home.FramesAgainst += r.AwayScore
		away.FramesFor += r.AwayScore
		away.FramesAgainst += r.HomeScore

		switch {
		case r.HomeScore > r.AwayScore:
			home.Won++
			away.Lost++
			home.Points += HomeWinPoints
		case r.AwayScore > r.HomeScore:
			away.Won++
			home.Lost++
			away.Points += AwayWinPoints
		default:
			home.Drawn++
			away.Drawn++
			home.Points += DrawPoints
			away.Points += DrawPoints
		}
	}

	table := make([]Standing, 0, len(order))
	for _, team := range order {
		row := rows[team]
		row.FrameDiff = row.FramesFor - row.FramesAgainst
		table = append(table, *row)
	}
	SortStandings(table)
	return table
}

// SortStandings orders a table by points, then frame differential, then team
// name for stability.
func SortStandings(table []Standing) {
	sort.SliceStable(table, func(i, j int) bool {
		if table[i].Points != table[j].Points {
			return table[i].Points > table[j].Points
		}
		if table[i].FrameDiff != table[j].FrameDiff {
			return table[i].FrameDiff > table[j].FrameDiff
		}
		return table[i].Team < table[j].Team
	})
}

// ApplyResults splices extra (typically hypothetical) results into an existing
// table and returns a new sorted table. The input table is not modified.
func ApplyResults(table []Standing, results []MatchResult) []Standing {
	out := make([]Standing, len(table))
	index := make(map[string]int, len(table))
	for i, row := range table {
		out[i] = row
		index[row.Team] = i
	}
	at := func(team string) *Standing {
		if i, ok := index[team]; ok {
			return &out[i]
		}
		out = append(out, Standing{Team: team})
		index[team] = len(out) - 1
		return &out[len(out)-1]
	}

	for _, r := range results {
		home := at(r.HomeTeam)
		away := at(r.AwayTeam)

		home.Played++
		away.Played++
		home.FramesFor += r.HomeScore
		home.FramesAgainst += r.AwayScore
		home.FrameDiff += r.HomeScore - r.AwayScore
		away.FramesFor += r.AwayScore
		away.FramesAgainst += r.HomeScore
		away.FrameDiff += r.AwayScore - r.HomeScore

		switch {
		case r.HomeScore > r.AwayScore:
			home.Won++
			away.Lost++
			home.Points += HomeWinPoints
		case r.AwayScore > r.HomeScore:
			away.Won++
			home.Lost++
			away.Points += AwayWinPoints
		default:
			home.Drawn++
			away.Drawn++
			home.Points += DrawPoints
			away.Points += DrawPoints
		}
	}

	SortStandings(out)
	return out
}

// RemainingFixtures returns the fixtures still to be played: those dated
// strictly after the latest known result in their division.
func RemainingFixtures(fixtures []Fixture, results []MatchResult) []Fixture {
	latest := make(map[string]int64)
	for _, r := range results {
		if ts := r.Date.Unix(); ts > latest[r.Division] {
			latest[r.Division] = ts
		}
	}

	var out []Fixture
	for _, f := range fixtures {
		last, ok := latest[f.Division]
		if !ok || f.Date.Unix() > last {
			out = append(out, f)
		}
	}
	return out
}

// WithoutPlayed drops fixtures consumed by the given results. What-if results
// rarely carry a date, so each result consumes at most one fixture with the
// same division and teams, earliest first.
func WithoutPlayed(fixtures []Fixture, results []MatchResult) []Fixture {
	type key struct{ division, home, away string }
	pending := make(map[key]int, len(results))
	for _, r := range results {
		pending[key{r.Division, r.HomeTeam, r.AwayTeam}]++
	}

	idx := make([]int, len(fixtures))
	for i := range fixtures {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return fixtures[idx[a]].Date.Before(fixtures[idx[b]].Date)
	})

	consumed := make([]bool, len(fixtures))
	for _, i := range idx {
		k := key{fixtures[i].Division, fixtures[i].HomeTeam, fixtures[i].AwayTeam}
		if pending[k] > 0 {
			pending[k]--
			consumed[i] = true
		}
	}

	var out []Fixture
	for i, f := range fixtures {
		if !consumed[i] {
			out = append(out, f)
		}
	}
	return out
}
