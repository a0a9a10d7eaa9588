// Package calibration infers relative difficulty offsets between divisions
// and between leagues from "bridge players": players with recorded statistics
// in more than one context. Offsets are zero-centered and obey
// adjusted = raw + offset, so a harder context carries a positive offset.
package calibration

import "github.com/mhenders/baize/internal/league"

// Config tunes bridge detection and offset solving. Zero-valued fields fall
// back to the DefaultConfig values, so a partially-populated Config is safe.
type Config struct {
	// FuzzyThreshold is the minimum name similarity (1 - normalized
	// Levenshtein distance) for a cross-league identity match.
	FuzzyThreshold float64 `yaml:"fuzzy_match_threshold"`
	// FullConfidenceBridges is the bridge count at which calibration
	// confidence reaches 1.0.
	FullConfidenceBridges int `yaml:"full_confidence_bridges"`
	// FallbackFloor is the confidence below which the fallback table is
	// used on its own instead of blended.
	FallbackFloor float64 `yaml:"fallback_floor"`
	// MinBridgeGames is the minimum games a player needs in a context for
	// that context to count.
	MinBridgeGames int `yaml:"min_bridge_games"`
	// Iterations and Damping drive the offset solver.
	Iterations int     `yaml:"solver_iterations"`
	Damping    float64 `yaml:"solver_damping"`
	// DivisionTiers maps conventional division names to fallback offsets,
	// matched case-insensitively as substrings, first hit wins.
	DivisionTiers []Tier `yaml:"division_tiers"`
}

// Tier is one row of the fallback offset table.
type Tier struct {
	Match  string  `yaml:"match"`
	Offset float64 `yaml:"offset"`
}

// DefaultConfig returns the standard tuning. The fuzzy threshold and tier
// table are conventions rather than derived values; override via config.
func DefaultConfig() Config {
	return Config{
		FuzzyThreshold:        0.85,
		FullConfidenceBridges: 10,
		FallbackFloor:         0.3,
		MinBridgeGames:        3,
		Iterations:            20,
		Damping:               0.5,
		DivisionTiers: []Tier{
			{Match: "premier", Offset: 6},
			{Match: "division 1", Offset: 3},
			{Match: "division one", Offset: 3},
			{Match: "division 2", Offset: 0},
			{Match: "division two", Offset: 0},
			{Match: "division 3", Offset: -3},
			{Match: "division three", Offset: -3},
			{Match: "division 4", Offset: -6},
			{Match: "division four", Offset: -6},
		},
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.FuzzyThreshold <= 0 {
		c.FuzzyThreshold = d.FuzzyThreshold
	}
	if c.FullConfidenceBridges <= 0 {
		c.FullConfidenceBridges = d.FullConfidenceBridges
	}
	if c.FallbackFloor <= 0 {
		c.FallbackFloor = d.FallbackFloor
	}
	if c.MinBridgeGames <= 0 {
		c.MinBridgeGames = d.MinBridgeGames
	}
	if c.Iterations <= 0 {
		c.Iterations = d.Iterations
	}
	if c.Damping <= 0 || c.Damping >= 1 {
		c.Damping = d.Damping
	}
	if len(c.DivisionTiers) == 0 {
		c.DivisionTiers = d.DivisionTiers
	}
	return c
}

// Context is one statistical context a bridge player appears in: a division
// inside one league, or a whole league.
type Context struct {
	// Key is the division code or league name.
	Key string `json:"key"`
	// Player is the spelling of the player's name within this context;
	// cross-league contexts may spell the same human differently.
	Player string `json:"player"`
	Team   string `json:"team,omitempty"`
	Played int    `json:"played"`
	Won    int    `json:"won"`
	// AdjustedPct is the Bayesian-shrunk win percentage of the games
	// aggregated into this context.
	AdjustedPct float64 `json:"adjustedPct"`
}

// Bridge links one player's contexts with an identity-match confidence:
// 1.0 for exact name equality, the fuzzy similarity score otherwise.
type Bridge struct {
	Player     string    `json:"player"`
	Contexts   []Context `json:"contexts"`
	Confidence float64   `json:"confidence"`
}

// Calibration is the solved offset table for one level (division or league).
type Calibration struct {
	// Offsets is keyed by division code or league name and sums to zero.
	Offsets map[string]float64 `json:"offsets"`
	// Confidence scales with usable bridge count, capped at 1.
	Confidence float64 `json:"confidence"`
	// Bridges is the number of usable bridge players behind the solve.
	Bridges int `json:"bridges"`
}

// Offset returns the offset for a context key, 0 when unknown or when the
// calibration itself is nil.
func (c *Calibration) Offset(key string) float64 {
	if c == nil {
		return 0
	}
	return c.Offsets[key]
}

// LeagueStats bundles one league's divisions and player statistics for
// cross-league calibration.
type LeagueStats struct {
	League    string
	Divisions []league.DivisionInfo
	Stats     []league.PlayerSeasonStats
}

// Rating is a cross-context comparable rating for a player or team.
type Rating struct {
	Player   string `json:"player,omitempty"`
	Team     string `json:"team,omitempty"`
	Division string `json:"division"`
	League   string `json:"league,omitempty"`
	Played   int    `json:"played"`
	// Raw is the Bayesian-shrunk win percentage within the division.
	Raw float64 `json:"raw"`
	// Adjusted is Raw plus the division and league offsets.
	Adjusted float64 `json:"adjusted"`
	// ZScore and Percentile are computed within the division population.
	ZScore     float64 `json:"zScore"`
	Percentile float64 `json:"percentile"`
	// Confidence is the weaker of the two calibration confidences.
	Confidence float64 `json:"confidence"`
}
