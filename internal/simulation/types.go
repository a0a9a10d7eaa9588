package simulation

// Default iteration counts. Season projection trades precision for speed;
// single-match odds run deeper because lineups are compared by them.
const (
	SeasonRuns = 1000
	MatchRuns  = 5000
)

// TeamProjection summarizes one team's simulated season outcomes.
type TeamProjection struct {
	Team          string    `json:"team"`
	CurrentPoints int       `json:"current_points"`
	AvgPoints     float64   `json:"avg_points"`
	TitleProb     float64   `json:"title_prob"`
	TopTwoProb    float64   `json:"top_two_prob"`
	BottomTwoProb float64   `json:"bottom_two_prob"`
	PositionProbs []float64 `json:"position_probs"`
}

// Scoreline is one possible frame score with its simulated probability.
type Scoreline struct {
	HomeScore   int     `json:"home_score"`
	AwayScore   int     `json:"away_score"`
	Probability float64 `json:"probability"`
}

// MatchOdds is the outcome distribution of one simulated match.
type MatchOdds struct {
	HomeWin            float64     `json:"home_win"`
	Draw               float64     `json:"draw"`
	AwayWin            float64     `json:"away_win"`
	ExpectedHomeFrames float64     `json:"expected_home_frames"`
	ExpectedAwayFrames float64     `json:"expected_away_frames"`
	Scorelines         []Scoreline `json:"scorelines"` // most likely first
}

type options struct {
	runs int
}

// Option overrides simulation behaviour, mainly for tests.
type Option func(*options)

// WithRuns overrides the iteration count.
func WithRuns(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.runs = n
		}
	}
}
