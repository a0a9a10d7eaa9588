package league_test

import (
	"testing"
	"time"

	"github.com/mhenders/baize/internal/league"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := league.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestParseDate(t *testing.T) {
	d, err := league.ParseDate("25-12-2025")
	require.NoError(t, err)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.December, d.Month())
	assert.Equal(t, 25, d.Day())
	assert.Equal(t, "25-12-2025", league.FormatDate(d))

	_, err = league.ParseDate("2025-12-25")
	assert.Error(t, err)

	// Scraped cells often carry stray whitespace.
	d, err = league.ParseDate(" 01-02-2026 ")
	require.NoError(t, err)
	assert.Equal(t, time.February, d.Month())
}

func TestBuildStandings(t *testing.T) {
	teams := []string{"Cue Club", "Rack Pack", "Snookered", "The Potters"}
	results := []league.MatchResult{
		{Division: "d1", HomeTeam: "Cue Club", AwayTeam: "Rack Pack", HomeScore: 6, AwayScore: 4, Date: date(t, "01-09-2025")},
		{Division: "d1", HomeTeam: "Snookered", AwayTeam: "Cue Club", HomeScore: 3, AwayScore: 7, Date: date(t, "08-09-2025")},
		{Division: "d1", HomeTeam: "Rack Pack", AwayTeam: "Snookered", HomeScore: 5, AwayScore: 5, Date: date(t, "15-09-2025")},
	}

	table := league.BuildStandings(teams, results)
	require.Len(t, table, 4)

	t.Run("points rule rewards away wins", func(t *testing.T) {
		top := table[0]
		assert.Equal(t, "Cue Club", top.Team)
		// One home win (2) plus one away win (3).
		assert.Equal(t, 5, top.Points)
		assert.Equal(t, 2, top.Won)
		assert.Equal(t, 6, top.FrameDiff)
	})

	t.Run("draw gives a point each", func(t *testing.T) {
		var rack, snook league.Standing
		for _, row := range table {
			switch row.Team {
			case "Rack Pack":
				rack = row
			case "Snookered":
				snook = row
			}
		}
		assert.Equal(t, 1, rack.Drawn)
		assert.Equal(t, 1, snook.Drawn)
		assert.Equal(t, 1, rack.Points)
		assert.Equal(t, 1, snook.Points)
	})

	t.Run("unplayed team gets a zero row", func(t *testing.T) {
		last := table[len(table)-1]
		assert.Equal(t, "The Potters", last.Team)
		assert.Zero(t, last.Played)
		assert.Zero(t, last.Points)
	})
}

func TestSortStandingsTieBreaks(t *testing.T) {
	table := []league.Standing{
		{Team: "B", Points: 4, FrameDiff: 2},
		{Team: "A", Points: 4, FrameDiff: 8},
		{Team: "C", Points: 4, FrameDiff: 8},
		{Team: "D", Points: 6, FrameDiff: -3},
	}
	league.SortStandings(table)

	assert.Equal(t, "D", table[0].Team)
	assert.Equal(t, "A", table[1].Team) // frame diff before name
	assert.Equal(t, "C", table[2].Team)
	assert.Equal(t, "B", table[3].Team)
}

func TestApplyResults(t *testing.T) {
	base := league.BuildStandings([]string{"Cue Club", "Rack Pack"}, nil)

	spliced := league.ApplyResults(base, []league.MatchResult{
		{Division: "d1", HomeTeam: "Rack Pack", AwayTeam: "Cue Club", HomeScore: 2, AwayScore: 8},
	})

	require.Len(t, spliced, 2)
	assert.Equal(t, "Cue Club", spliced[0].Team)
	assert.Equal(t, league.AwayWinPoints, spliced[0].Points)
	assert.Equal(t, 6, spliced[0].FrameDiff)

	// The original table stays untouched.
	assert.Zero(t, base[0].Played)
	assert.Zero(t, base[0].Points)
}

func TestRemainingFixtures(t *testing.T) {
	results := []league.MatchResult{
		{Division: "d1", HomeTeam: "A", AwayTeam: "B", Date: date(t, "10-10-2025")},
	}
	fixtures := []league.Fixture{
		{Division: "d1", HomeTeam: "A", AwayTeam: "B", Date: date(t, "03-10-2025")},
		{Division: "d1", HomeTeam: "B", AwayTeam: "A", Date: date(t, "10-10-2025")},
		{Division: "d1", HomeTeam: "A", AwayTeam: "C", Date: date(t, "17-10-2025")},
		{Division: "d2", HomeTeam: "X", AwayTeam: "Y", Date: date(t, "03-10-2025")},
	}

	remaining := league.RemainingFixtures(fixtures, results)
	require.Len(t, remaining, 2)
	assert.Equal(t, "C", remaining[0].AwayTeam)
	// Divisions without results keep their whole schedule.
	assert.Equal(t, "d2", remaining[1].Division)
}

func TestWithoutPlayed(t *testing.T) {
	fixtures := []league.Fixture{
		{Division: "d1", HomeTeam: "A", AwayTeam: "B", Date: date(t, "01-11-2025")},
		{Division: "d1", HomeTeam: "A", AwayTeam: "B", Date: date(t, "01-02-2026")}, // return match
		{Division: "d1", HomeTeam: "B", AwayTeam: "C", Date: date(t, "08-11-2025")},
	}
	whatIf := []league.MatchResult{
		{Division: "d1", HomeTeam: "A", AwayTeam: "B", HomeScore: 6, AwayScore: 4},
	}

	left := league.WithoutPlayed(fixtures, whatIf)
	require.Len(t, left, 2)
	// Only the earliest A-v-B fixture is consumed.
	assert.Equal(t, date(t, "01-02-2026"), left[0].Date)
	assert.Equal(t, "C", left[1].AwayTeam)
}

func TestFrameHelpers(t *testing.T) {
	f := league.Frame{Set: 1, Position: 3, HomePlayer: "Joe", AwayPlayer: "Ann", Winner: league.AwaySide, BreakDish: true}

	assert.True(t, f.Involves("Joe"))
	assert.True(t, f.Involves("Ann"))
	assert.False(t, f.Involves("Bob"))
	assert.False(t, f.WonBy("Joe"))
	assert.True(t, f.WonBy("Ann"))
	assert.False(t, f.WonBy("Bob"))
	assert.Equal(t, "Ann", f.OpponentOf("Joe"))
	assert.Equal(t, "", f.OpponentOf("Bob"))
}

func TestFrameRecordScore(t *testing.T) {
	rec := league.FrameRecord{Frames: []league.Frame{
		{Winner: league.HomeSide},
		{Winner: league.AwaySide},
		{Winner: league.HomeSide},
	}}
	home, away := rec.Score()
	assert.Equal(t, 2, home)
	assert.Equal(t, 1, away)
}

func TestWinPct(t *testing.T) {
	assert.Zero(t, league.PlayerSeasonStats{}.WinPct())
	assert.InDelta(t, 62.5, league.PlayerSeasonStats{Played: 8, Won: 5}.WinPct(), 1e-9)
}
