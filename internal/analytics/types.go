package analytics

// Windowing and threshold conventions for player-level metrics.
const (
	// FormLongWindow is the preferred recent-form sample.
	FormLongWindow = 8
	// FormShortWindow is the fallback when fewer frames exist.
	FormShortWindow = 5
	// MinVenueFrames is the sample needed before a venue split counts.
	MinVenueFrames = 3
	// LikelyLineupMatches is how many recent matches predict a lineup.
	LikelyLineupMatches = 3
	// FrontLoadBias is the set-one-minus-set-two win percentage gap above
	// which a team is considered to front-load its strongest players.
	FrontLoadBias = 5.0
)

// FrameOutcome is a single frame seen from one player's perspective, in
// chronological order within their season.
type FrameOutcome struct {
	Opponent  string
	Home      bool
	Won       bool
	BreakDish bool
}

// PlayerScout is one likely-lineup member inside a scouting report.
type PlayerScout struct {
	Player      string  `json:"player"`
	Played      int     `json:"played"`
	Won         int     `json:"won"`
	AdjustedPct float64 `json:"adjusted_pct"`
	FormDelta   float64 `json:"form_delta"`
	BreakDishes int     `json:"break_dishes"`
}

// Scout is an opponent report assembled ahead of a fixture.
type Scout struct {
	Team         string        `json:"team"`
	Division     string        `json:"division"`
	LikelyLineup []PlayerScout `json:"likely_lineup"`
	SetBias      float64       `json:"set_bias"`
	HomeWinPct   float64       `json:"home_win_pct"`
	AwayWinPct   float64       `json:"away_win_pct"`
	Threats      []string      `json:"threats"`
	Notes        []string      `json:"notes"`
}
