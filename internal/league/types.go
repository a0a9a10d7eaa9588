package league

import "time"

// Match format: every match is two sets of five frames.
const (
	SetsPerMatch   = 2
	FramesPerSet   = 5
	FramesPerMatch = SetsPerMatch * FramesPerSet
)

// Points rule: away wins are rewarded above home wins.
const (
	HomeWinPoints = 2
	AwayWinPoints = 3
	DrawPoints    = 1
)

// Side identifies which side of a match won a frame.
type Side string

const (
	// HomeSide marks a frame won by the home player.
	HomeSide Side = "HOME"
	// AwaySide marks a frame won by the away player.
	AwaySide Side = "AWAY"
)

// DivisionInfo describes one division inside a league.
type DivisionInfo struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	League string `json:"league"`
}

// MatchResult is the immutable record of a completed fixture. Corrections
// replace the record wholesale rather than mutating it.
type MatchResult struct {
	Division  string    `json:"division"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	HomeScore int       `json:"home_score"`
	AwayScore int       `json:"away_score"`
	Date      time.Time `json:"date"`
}

// Fixture is a scheduled but not-yet-played match.
type Fixture struct {
	Division string    `json:"division"`
	HomeTeam string    `json:"home_team"`
	AwayTeam string    `json:"away_team"`
	Date     time.Time `json:"date"`
}

// Frame is one rack inside a match: the two opposing players, who won, and
// whether the win was a single-visit clearance.
type Frame struct {
	Set        int    `json:"set"`
	Position   int    `json:"position"`
	HomePlayer string `json:"home_player"`
	AwayPlayer string `json:"away_player"`
	Winner     Side   `json:"winner"`
	BreakDish  bool   `json:"break_dish"`
}

// Involves reports whether the named player played this frame.
func (f Frame) Involves(player string) bool {
	return f.HomePlayer == player || f.AwayPlayer == player
}

// WonBy reports whether the named player won this frame.
func (f Frame) WonBy(player string) bool {
	if f.HomePlayer == player {
		return f.Winner == HomeSide
	}
	if f.AwayPlayer == player {
		return f.Winner == AwaySide
	}
	return false
}

// OpponentOf returns the name of the player facing the named player in this
// frame, or "" if the player was not involved.
func (f Frame) OpponentOf(player string) string {
	switch player {
	case f.HomePlayer:
		return f.AwayPlayer
	case f.AwayPlayer:
		return f.HomePlayer
	}
	return ""
}

// FrameRecord decomposes one completed match into its individual frames.
// It is the only player-level input; everything else is team-level.
type FrameRecord struct {
	Division string    `json:"division"`
	HomeTeam string    `json:"home_team"`
	AwayTeam string    `json:"away_team"`
	Date     time.Time `json:"date"`
	Frames   []Frame   `json:"frames"`
}

// Score totals the frames won by each side.
func (r FrameRecord) Score() (home, away int) {
	for _, f := range r.Frames {
		if f.Winner == HomeSide {
			home++
		} else {
			away++
		}
	}
	return home, away
}

// PlayerSeasonStats is one player's record inside a single (team, division)
// context. A player rostered on multiple teams or divisions has multiple
// entries; that multiplicity is what bridge-player detection exploits.
type PlayerSeasonStats struct {
	Player           string `json:"player"`
	Team             string `json:"team"`
	Division         string `json:"division"`
	Played           int    `json:"played"`
	Won              int    `json:"won"`
	BreakDishFor     int    `json:"break_dish_for"`
	BreakDishAgainst int    `json:"break_dish_against"`
	Forfeits         int    `json:"forfeits"`
}

// WinPct returns the raw (unshrunk) win percentage, 0 when unplayed.
func (s PlayerSeasonStats) WinPct() float64 {
	if s.Played == 0 {
		return 0
	}
	return float64(s.Won) / float64(s.Played) * 100
}

// PriorRating is a player's single aggregate rating from a previous period,
// on the 0-100 percentage scale, with the games it was earned over.
type PriorRating struct {
	Rating float64 `json:"rating"`
	Games  int     `json:"games"`
}

// Standing is one team's row in a division table.
type Standing struct {
	Team          string `json:"team"`
	Played        int    `json:"played"`
	Won           int    `json:"won"`
	Drawn         int    `json:"drawn"`
	Lost          int    `json:"lost"`
	FramesFor     int    `json:"frames_for"`
	FramesAgainst int    `json:"frames_against"`
	Points        int    `json:"points"`
	FrameDiff     int    `json:"frame_diff"`
}

// Snapshot is the full in-memory bundle of league data every engine call
// consumes. Nothing in the engine reads data from anywhere else.
type Snapshot struct {
	Divisions []DivisionInfo         `json:"divisions"`
	Teams     map[string][]string    `json:"teams"`   // division code -> ordered team names
	Rosters   map[string][]string    `json:"rosters"` // "division:team" -> player names
	Results   []MatchResult          `json:"results"`
	Fixtures  []Fixture              `json:"fixtures"`
	Frames    []FrameRecord          `json:"frames"`
	Stats     []PlayerSeasonStats    `json:"stats"`
	Priors    map[string]PriorRating `json:"priors"`
}

// RosterKey builds the "division:team" key used by Snapshot.Rosters.
func RosterKey(division, team string) string {
	return division + ":" + team
}

// DivisionResults returns the completed results for one division.
func (s *Snapshot) DivisionResults(division string) []MatchResult {
	var out []MatchResult
	for _, r := range s.Results {
		if r.Division == division {
			out = append(out, r)
		}
	}
	return out
}

// DivisionFixtures returns the scheduled fixtures for one division.
func (s *Snapshot) DivisionFixtures(division string) []Fixture {
	var out []Fixture
	for _, f := range s.Fixtures {
		if f.Division == division {
			out = append(out, f)
		}
	}
	return out
}

// DivisionFrames returns the frame-level records for one division.
func (s *Snapshot) DivisionFrames(division string) []FrameRecord {
	var out []FrameRecord
	for _, r := range s.Frames {
		if r.Division == division {
			out = append(out, r)
		}
	}
	return out
}

// DivisionStats returns the player season statistics for one division.
func (s *Snapshot) DivisionStats(division string) []PlayerSeasonStats {
	var out []PlayerSeasonStats
	for _, st := range s.Stats {
		if st.Division == division {
			out = append(out, st)
		}
	}
	return out
}

// Roster returns the player names rostered for a team, nil when unknown.
func (s *Snapshot) Roster(division, team string) []string {
	return s.Rosters[RosterKey(division, team)]
}
