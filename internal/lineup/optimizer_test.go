package lineup_test

import (
	"strings"
	"testing"
	"time"

	"github.com/mhenders/baize/internal/league"
	"github.com/mhenders/baize/internal/lineup"
	"github.com/mhenders/baize/internal/simulation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var breakers = []string{"B01", "B02", "B03", "B04", "B05", "B06", "B07", "B08", "B09", "B10", "B11", "B12"}
var potters = []string{"P1", "P2", "P3", "P4", "P5"}

// breakersSnapshot builds a division where every Breaker has twelve games
// and strictly descending win counts, so composite order is unambiguous.
func breakersSnapshot(frames ...league.FrameRecord) *league.Snapshot {
	snap := &league.Snapshot{
		Divisions: []league.DivisionInfo{{Code: "d1", Name: "Division One", League: "City"}},
		Teams:     map[string][]string{"d1": {"Breakers", "Potters"}},
		Rosters: map[string][]string{
			league.RosterKey("d1", "Breakers"): breakers,
			league.RosterKey("d1", "Potters"):  potters,
		},
		Frames: frames,
	}
	for i, name := range breakers {
		won := 11 - i
		if won < 0 {
			won = 0
		}
		snap.Stats = append(snap.Stats, league.PlayerSeasonStats{
			Player: name, Team: "Breakers", Division: "d1", Played: 12, Won: won,
		})
	}
	for _, name := range potters {
		snap.Stats = append(snap.Stats, league.PlayerSeasonStats{
			Player: name, Team: "Potters", Division: "d1", Played: 12, Won: 6,
		})
	}
	return snap
}

// pottersMatch builds one Potters home match where they win the given number
// of frames in each set.
func pottersMatch(dayOfMonth, set1Wins, set2Wins int) league.FrameRecord {
	rec := league.FrameRecord{
		Division: "d1", HomeTeam: "Potters", AwayTeam: "Others",
		Date: time.Date(2025, time.October, dayOfMonth, 0, 0, 0, 0, time.UTC),
	}
	for set := 1; set <= 2; set++ {
		wins := set1Wins
		if set == 2 {
			wins = set2Wins
		}
		for pos := 1; pos <= 5; pos++ {
			winner := league.AwaySide
			if pos <= wins {
				winner = league.HomeSide
			}
			rec.Frames = append(rec.Frames, league.Frame{
				Set: set, Position: pos,
				HomePlayer: potters[pos-1], AwayPlayer: "O" + string(rune('0'+pos)),
				Winner: winner,
			})
		}
	}
	return rec
}

func lineupPlayers(sets [][]lineup.Slot) []string {
	var out []string
	for _, set := range sets {
		for _, slot := range set {
			if slot.Player != "" {
				out = append(out, slot.Player)
			}
		}
	}
	return out
}

func TestOptimizeUsesAllTenPlayers(t *testing.T) {
	req := lineup.Request{
		Snapshot: breakersSnapshot(),
		Division: "d1", Team: "Breakers", Opponent: "Potters", Home: true,
		Available: breakers[:10],
		Rand:      simulation.NewRand(3),
	}

	res, err := lineup.Optimize(req)
	require.NoError(t, err)
	require.NotNil(t, res)

	players := lineupPlayers(res.Sets)
	assert.Len(t, players, lineup.TeamSize)
	assert.ElementsMatch(t, breakers[:10], players)

	require.Len(t, res.Sets, 2)
	assert.Len(t, res.Sets[0], 5)
	assert.Len(t, res.Sets[1], 5)

	// No opponent set bias, so the best composite leads set one.
	assert.Equal(t, "B01", res.Sets[0][0].Player)
	assert.False(t, res.Inverted)

	assert.Greater(t, res.WinProbability, 0.0)
	assert.Less(t, res.WinProbability, 1.0)
	assert.InDelta(t, 1.0, res.Odds.HomeWin+res.Odds.Draw+res.Odds.AwayWin, 1e-9)
}

func TestOptimizeNeedsTenPlayers(t *testing.T) {
	req := lineup.Request{
		Snapshot: breakersSnapshot(),
		Division: "d1", Team: "Breakers", Opponent: "Potters",
		Available: breakers[:9],
		Rand:      simulation.NewRand(3),
	}

	res, err := lineup.Optimize(req)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, lineup.ErrInsufficientPlayers)
}

func TestOptimizeHonorsLocks(t *testing.T) {
	req := lineup.Request{
		Snapshot: breakersSnapshot(),
		Division: "d1", Team: "Breakers", Opponent: "Potters", Home: true,
		Available: breakers, // twelve available, so alternatives exist
		Locks: []lineup.Lock{
			{Player: "B10", Set: 1, Position: 1},
			{Player: "B03", Set: 7, Position: 1},   // set outside the grid
			{Player: "B04", Set: 2, Position: 9},   // position outside the grid
			{Player: "Ghost", Set: 2, Position: 1}, // not available
		},
		Alternatives: 4,
		Rand:         simulation.NewRand(3),
	}

	res, err := lineup.Optimize(req)
	require.NoError(t, err)

	t.Run("valid lock pins the player", func(t *testing.T) {
		slot := res.Sets[0][0]
		assert.Equal(t, "B10", slot.Player)
		assert.True(t, slot.Locked)
	})

	t.Run("invalid locks are dropped silently", func(t *testing.T) {
		players := lineupPlayers(res.Sets)
		assert.NotContains(t, players, "Ghost")
		// B03 and B04 still earn places on merit, unlocked.
		assert.NotEqual(t, "B04", res.Sets[1][0].Player)
		for _, set := range res.Sets {
			for _, slot := range set {
				if slot.Player == "B03" || slot.Player == "B04" {
					assert.False(t, slot.Locked)
				}
			}
		}
	})

	t.Run("every alternative keeps the lock", func(t *testing.T) {
		require.NotEmpty(t, res.Alternatives)
		for _, alt := range res.Alternatives {
			slot := alt.Sets[0][0]
			assert.Equal(t, "B10", slot.Player)
			assert.True(t, slot.Locked)
			assert.NotEqual(t, "B10", alt.SwappedOut)
		}
	})
}

func TestOptimizeInvertsAgainstFrontLoadedOpponent(t *testing.T) {
	// Potters win every set-one frame and lose every set-two frame.
	snap := breakersSnapshot(
		pottersMatch(1, 5, 0),
		pottersMatch(8, 5, 0),
		pottersMatch(15, 4, 1),
	)
	req := lineup.Request{
		Snapshot: snap,
		Division: "d1", Team: "Breakers", Opponent: "Potters", Home: false,
		Available: breakers[:10],
		Rand:      simulation.NewRand(3),
	}

	res, err := lineup.Optimize(req)
	require.NoError(t, err)

	assert.True(t, res.Inverted)
	// The strongest five hedge into set two.
	assert.Equal(t, "B01", res.Sets[1][0].Player)
	assert.Equal(t, "B06", res.Sets[0][0].Player)

	found := false
	for _, note := range res.Insights {
		if strings.Contains(note, "Potters") && strings.Contains(note, "set 2") {
			found = true
		}
	}
	assert.True(t, found, "expected a set-inversion insight, got %v", res.Insights)
}

func TestOptimizeAlternatives(t *testing.T) {
	req := lineup.Request{
		Snapshot: breakersSnapshot(),
		Division: "d1", Team: "Breakers", Opponent: "Potters", Home: true,
		Available:    breakers,
		Alternatives: 5,
		Rand:         simulation.NewRand(11),
	}

	res, err := lineup.Optimize(req)
	require.NoError(t, err)
	require.Len(t, res.Alternatives, 5)

	optimal := lineupPlayers(res.Sets)

	seen := make(map[string]bool)
	for i, alt := range res.Alternatives {
		players := lineupPlayers(alt.Sets)
		assert.Len(t, players, lineup.TeamSize)

		// Exactly one change from the optimal ten.
		diff := 0
		inOptimal := make(map[string]bool)
		for _, p := range optimal {
			inOptimal[p] = true
		}
		for _, p := range players {
			if !inOptimal[p] {
				diff++
				assert.Equal(t, alt.SwappedIn, p)
			}
		}
		assert.Equal(t, 1, diff)
		assert.Contains(t, optimal, alt.SwappedOut)
		assert.NotContains(t, players, alt.SwappedOut)

		assert.InDelta(t, res.WinProbability-alt.WinProbability, alt.Deficit, 1e-12)

		key := ""
		for _, p := range players {
			key += p + "|"
		}
		assert.False(t, seen[key], "duplicate alternative lineup")
		seen[key] = true

		if i > 0 {
			assert.GreaterOrEqual(t, res.Alternatives[i-1].WinProbability, alt.WinProbability)
		}
	}
}

func TestOptimizeSquadOverrides(t *testing.T) {
	req := lineup.Request{
		Snapshot: breakersSnapshot(),
		Division: "d1", Team: "Breakers", Opponent: "Potters", Home: true,
		// No availability list: the roster applies, with overrides.
		AddPlayers: []league.PlayerSeasonStats{
			{Player: "Ringer", Played: 20, Won: 20},
		},
		RemovePlayers: []string{"B01"},
		Rand:          simulation.NewRand(3),
	}

	res, err := lineup.Optimize(req)
	require.NoError(t, err)

	players := lineupPlayers(res.Sets)
	assert.NotContains(t, players, "B01")
	assert.Contains(t, players, "Ringer")
	// A 20-0 record tops every composite.
	assert.Equal(t, "Ringer", res.Sets[0][0].Player)
}

func TestOptimizeStrengthFallback(t *testing.T) {
	snap := breakersSnapshot()
	// Strip the season records: everyone becomes unrated.
	for i := range snap.Stats {
		if snap.Stats[i].Team == "Breakers" {
			snap.Stats[i].Played = 1
			snap.Stats[i].Won = 1
		}
	}

	req := lineup.Request{
		Snapshot: snap,
		Division: "d1", Team: "Breakers", Opponent: "Potters", Home: true,
		Available: breakers[:10],
		Rand:      simulation.NewRand(3),
	}

	res, err := lineup.Optimize(req)
	require.NoError(t, err)
	assert.True(t, res.StrengthBased)
	assert.Contains(t, res.Insights[0], "team strength")
}

func TestOptimizeDeterministicWithSeed(t *testing.T) {
	build := func() (*lineup.Result, error) {
		return lineup.Optimize(lineup.Request{
			Snapshot: breakersSnapshot(),
			Division: "d1", Team: "Breakers", Opponent: "Potters", Home: true,
			Available:    breakers,
			Alternatives: 3,
			Rand:         simulation.NewRand(42),
		})
	}

	first, err := build()
	require.NoError(t, err)
	second, err := build()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
