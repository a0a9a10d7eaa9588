package analytics_test

import (
	"testing"
	"time"

	"github.com/mhenders/baize/internal/analytics"
	"github.com/mhenders/baize/internal/league"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	return time.Date(2025, time.September, n, 0, 0, 0, 0, time.UTC)
}

// fiveFrames builds one set of frames where the home side wins the first
// homeWins frames and loses the rest.
func fiveFrames(set int, homePlayers, awayPlayers [5]string, homeWins int) []league.Frame {
	frames := make([]league.Frame, 0, 5)
	for i := 0; i < 5; i++ {
		winner := league.AwaySide
		if i < homeWins {
			winner = league.HomeSide
		}
		frames = append(frames, league.Frame{
			Set: set, Position: i + 1,
			HomePlayer: homePlayers[i], AwayPlayer: awayPlayers[i],
			Winner: winner,
		})
	}
	return frames
}

func TestPlayerFrames(t *testing.T) {
	records := []league.FrameRecord{
		// Deliberately newest first: ordering must come from dates.
		{HomeTeam: "A", AwayTeam: "B", Date: day(8), Frames: []league.Frame{
			{Set: 1, Position: 1, HomePlayer: "Joe", AwayPlayer: "Cora", Winner: league.HomeSide},
		}},
		{HomeTeam: "B", AwayTeam: "A", Date: day(1), Frames: []league.Frame{
			{Set: 1, Position: 2, HomePlayer: "Dan", AwayPlayer: "Joe", Winner: league.HomeSide},
		}},
	}

	outcomes := analytics.PlayerFrames(records, "Joe")
	require.Len(t, outcomes, 2)

	assert.Equal(t, "Dan", outcomes[0].Opponent)
	assert.False(t, outcomes[0].Home)
	assert.False(t, outcomes[0].Won)

	assert.Equal(t, "Cora", outcomes[1].Opponent)
	assert.True(t, outcomes[1].Home)
	assert.True(t, outcomes[1].Won)
}

func TestFormDelta(t *testing.T) {
	frameFor := func(n int, won bool) league.FrameRecord {
		winner := league.AwaySide
		if won {
			winner = league.HomeSide
		}
		return league.FrameRecord{
			HomeTeam: "A", AwayTeam: "B", Date: day(n),
			Frames: []league.Frame{{Set: 1, Position: 1, HomePlayer: "Joe", AwayPlayer: "Other", Winner: winner}},
		}
	}

	t.Run("eight frame window when available", func(t *testing.T) {
		var records []league.FrameRecord
		records = append(records, frameFor(1, false), frameFor(2, false))
		for n := 3; n <= 10; n++ {
			records = append(records, frameFor(n, true))
		}
		// Last 8 are all wins.
		assert.InDelta(t, 50.0, analytics.FormDelta(records, "Joe", 50), 1e-9)
	})

	t.Run("falls back to five frames", func(t *testing.T) {
		var records []league.FrameRecord
		records = append(records, frameFor(1, false))
		for n := 2; n <= 6; n++ {
			records = append(records, frameFor(n, true))
		}
		// Six frames total: the five-frame window is all wins.
		assert.InDelta(t, 40.0, analytics.FormDelta(records, "Joe", 60), 1e-9)
	})

	t.Run("too few frames is no signal", func(t *testing.T) {
		records := []league.FrameRecord{frameFor(1, true), frameFor(2, true)}
		assert.Zero(t, analytics.FormDelta(records, "Joe", 10))
	})
}

func TestHeadToHeadNet(t *testing.T) {
	records := []league.FrameRecord{
		{HomeTeam: "A", AwayTeam: "B", Date: day(1), Frames: []league.Frame{
			{Set: 1, Position: 1, HomePlayer: "Joe", AwayPlayer: "Rex", Winner: league.HomeSide},
			{Set: 1, Position: 2, HomePlayer: "Joe", AwayPlayer: "Rex", Winner: league.AwaySide},
			{Set: 1, Position: 3, HomePlayer: "Joe", AwayPlayer: "Ivy", Winner: league.HomeSide},
			{Set: 1, Position: 4, HomePlayer: "Joe", AwayPlayer: "Sal", Winner: league.HomeSide},
		}},
	}

	// Rex: 1-1. Ivy: 1-0. Sal not in the opponent set.
	assert.Equal(t, 1, analytics.HeadToHeadNet(records, "Joe", []string{"Rex", "Ivy"}))
	assert.Equal(t, 0, analytics.HeadToHeadNet(records, "Joe", []string{"Rex"}))
	assert.Equal(t, 0, analytics.HeadToHeadNet(records, "Joe", nil))
}

func TestVenueDelta(t *testing.T) {
	var records []league.FrameRecord
	// Three home wins.
	for n := 1; n <= 3; n++ {
		records = append(records, league.FrameRecord{
			HomeTeam: "A", AwayTeam: "B", Date: day(n),
			Frames: []league.Frame{{Set: 1, Position: 1, HomePlayer: "Joe", AwayPlayer: "X", Winner: league.HomeSide}},
		})
	}
	// Two away losses.
	for n := 4; n <= 5; n++ {
		records = append(records, league.FrameRecord{
			HomeTeam: "B", AwayTeam: "A", Date: day(n),
			Frames: []league.Frame{{Set: 1, Position: 1, HomePlayer: "X", AwayPlayer: "Joe", Winner: league.HomeSide}},
		})
	}

	assert.InDelta(t, 40.0, analytics.VenueDelta(records, "Joe", true, 60), 1e-9)
	// Only two away frames: below the minimum sample.
	assert.Zero(t, analytics.VenueDelta(records, "Joe", false, 60))
}

func TestLikelyLineup(t *testing.T) {
	squadA := [5]string{"A1", "A2", "A3", "A4", "A5"}
	squadB := [5]string{"B1", "B2", "B3", "B4", "B5"}
	older := [5]string{"A1", "A6", "A7", "A8", "A9"}

	records := []league.FrameRecord{
		{HomeTeam: "A", AwayTeam: "B", Date: day(1), Frames: fiveFrames(1, older, squadB, 3)},
		{HomeTeam: "A", AwayTeam: "B", Date: day(8), Frames: fiveFrames(1, squadA, squadB, 3)},
		{HomeTeam: "B", AwayTeam: "A", Date: day(15), Frames: fiveFrames(1, squadB, squadA, 2)},
		{HomeTeam: "A", AwayTeam: "B", Date: day(22), Frames: fiveFrames(1, squadA, squadB, 4)},
	}

	likely := analytics.LikelyLineup(records, "A", analytics.LikelyLineupMatches)
	// Only the three most recent matches count, so A6-A9 never show.
	assert.ElementsMatch(t, []string{"A1", "A2", "A3", "A4", "A5"}, likely)
	assert.Equal(t, "A1", likely[0])

	assert.Empty(t, analytics.LikelyLineup(records, "Unknown", analytics.LikelyLineupMatches))
}

func TestSetBias(t *testing.T) {
	squadA := [5]string{"A1", "A2", "A3", "A4", "A5"}
	squadB := [5]string{"B1", "B2", "B3", "B4", "B5"}

	records := []league.FrameRecord{{
		HomeTeam: "A", AwayTeam: "B", Date: day(1),
		Frames: append(fiveFrames(1, squadA, squadB, 4), fiveFrames(2, squadA, squadB, 1)...),
	}}

	// 80% in set one, 20% in set two.
	assert.InDelta(t, 60.0, analytics.SetBias(records, "A"), 1e-9)
	assert.InDelta(t, -60.0, analytics.SetBias(records, "B"), 1e-9)
	assert.Zero(t, analytics.SetBias(records, "C"))
}

func TestBreakDishLeaders(t *testing.T) {
	stats := []league.PlayerSeasonStats{
		{Player: "Quiet", BreakDishFor: 0},
		{Player: "Two", BreakDishFor: 2},
		{Player: "Five", BreakDishFor: 5},
		{Player: "Also Two", BreakDishFor: 2},
	}

	leaders := analytics.BreakDishLeaders(stats, 2)
	require.Len(t, leaders, 2)
	assert.Equal(t, "Five", leaders[0].Player)
	assert.Equal(t, "Also Two", leaders[1].Player) // name breaks the tie
}

func TestScoutTeam(t *testing.T) {
	squadA := [5]string{"A1", "A2", "A3", "A4", "A5"}
	squadB := [5]string{"B1", "B2", "B3", "B4", "B5"}

	snap := &league.Snapshot{
		Results: []league.MatchResult{
			{Division: "d1", HomeTeam: "A", AwayTeam: "B", HomeScore: 7, AwayScore: 3, Date: day(1)},
			{Division: "d1", HomeTeam: "B", AwayTeam: "A", HomeScore: 6, AwayScore: 4, Date: day(8)},
		},
		Frames: []league.FrameRecord{
			{Division: "d1", HomeTeam: "A", AwayTeam: "B", Date: day(1),
				Frames: append(fiveFrames(1, squadA, squadB, 4), fiveFrames(2, squadA, squadB, 3)...)},
		},
		Stats: []league.PlayerSeasonStats{
			{Player: "A1", Team: "A", Division: "d1", Played: 10, Won: 8, BreakDishFor: 3},
			{Player: "A2", Team: "A", Division: "d1", Played: 10, Won: 5},
			{Player: "B1", Team: "B", Division: "d1", Played: 10, Won: 6, BreakDishFor: 1},
		},
	}

	t.Run("report covers lineup, threats and venue", func(t *testing.T) {
		scout := analytics.ScoutTeam(snap, "d1", "A")
		require.NotNil(t, scout)

		require.NotEmpty(t, scout.LikelyLineup)
		assert.Equal(t, "A1", scout.LikelyLineup[0].Player)
		assert.Equal(t, 10, scout.LikelyLineup[0].Played)

		require.NotEmpty(t, scout.Threats)
		assert.Contains(t, scout.Threats[0], "A1")

		assert.InDelta(t, 100.0, scout.HomeWinPct, 1e-9)
		assert.InDelta(t, 0.0, scout.AwayWinPct, 1e-9)
	})

	t.Run("unknown team gives nil", func(t *testing.T) {
		assert.Nil(t, analytics.ScoutTeam(snap, "d1", "Nobody"))
		assert.Nil(t, analytics.ScoutTeam(snap, "d9", "A"))
	})
}
