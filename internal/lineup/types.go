package lineup

import (
	"errors"
	"math/rand"

	"github.com/mhenders/baize/internal/league"
	"github.com/mhenders/baize/internal/simulation"
)

// Composite scoring weights and selection rules.
const (
	// MinGamesForSelection is re-validated here regardless of upstream
	// filtering: players under it carry no form, head-to-head or venue
	// adjustments.
	MinGamesForSelection = 3
	// FormWeight scales the recent-form delta.
	FormWeight = 0.3
	// HeadToHeadWeight is applied per net frame won against the likely
	// opposition.
	HeadToHeadWeight = 5.0
	// VenueWeight scales the home/away split delta.
	VenueWeight = 0.2
	// TeamSize is how many players a full lineup needs.
	TeamSize = league.FramesPerMatch
	// minRatedPlayers is how many of the chosen ten need usable statistics
	// before the win estimate trusts individual numbers over team strength.
	minRatedPlayers = 5
	// DefaultAlternatives is generated when the request does not say.
	DefaultAlternatives = 3
)

// ErrInsufficientPlayers is returned when fewer than ten players are
// available: no degraded lineup is ever produced.
var ErrInsufficientPlayers = errors.New("fewer than ten available players")

// Lock pins a player to a (set, position) slot before optimization. Locks
// naming an unavailable player or a slot outside the grid are dropped
// silently.
type Lock struct {
	Player   string `json:"player"`
	Set      int    `json:"set"`
	Position int    `json:"position"`
}

// Request describes one lineup optimization.
type Request struct {
	Snapshot *league.Snapshot
	Division string
	Team     string
	Opponent string
	Home     bool

	// Available lists who can play; empty means the whole roster.
	Available []string
	Locks     []Lock

	// AddPlayers and RemovePlayers apply hypothetical squad changes before
	// anything is scored.
	AddPlayers    []league.PlayerSeasonStats
	RemovePlayers []string

	// Alternatives caps how many alternative lineups come back; 0 means
	// DefaultAlternatives, negative means none.
	Alternatives int

	// Rand drives the win-probability simulation. Nil gets a time-seeded
	// source; tests inject a fixed seed.
	Rand *rand.Rand
}

// Slot is one filled position in a set.
type Slot struct {
	Set      int     `json:"set"`
	Position int     `json:"position"`
	Player   string  `json:"player"`
	Locked   bool    `json:"locked"`
	Score    float64 `json:"score"`
}

// PlayerScore is the composite breakdown for one candidate.
type PlayerScore struct {
	Player      string  `json:"player"`
	Played      int     `json:"played"`
	Won         int     `json:"won"`
	AdjustedPct float64 `json:"adjusted_pct"`
	FormDelta   float64 `json:"form_delta"`
	HeadToHead  int     `json:"head_to_head"`
	VenueDelta  float64 `json:"venue_delta"`
	Composite   float64 `json:"composite"`
	Rated       bool    `json:"rated"`
}

// Alternative is a near-optimal lineup produced by a single swap.
type Alternative struct {
	Sets           [][]Slot `json:"sets"`
	SwappedIn      string   `json:"swapped_in"`
	SwappedOut     string   `json:"swapped_out"`
	WinProbability float64  `json:"win_probability"`
	Deficit        float64  `json:"deficit"`
}

// Result is the optimal lineup with its win-probability breakdown.
type Result struct {
	Team     string `json:"team"`
	Opponent string `json:"opponent"`
	Home     bool   `json:"home"`

	Sets   [][]Slot      `json:"sets"`
	Scores []PlayerScore `json:"scores"`

	Odds           simulation.MatchOdds `json:"odds"`
	WinProbability float64              `json:"win_probability"`
	StrengthBased  bool                 `json:"strength_based"`
	Inverted       bool                 `json:"inverted"`

	Insights     []string      `json:"insights"`
	Alternatives []Alternative `json:"alternatives"`
}
