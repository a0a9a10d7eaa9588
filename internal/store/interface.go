package store

import "github.com/mhenders/baize/internal/league"

// LeagueStore defines the interface for persisting league snapshots and
// simulation reports.
type LeagueStore interface {
	UpsertDivision(division league.DivisionInfo, teams []string) error
	UpsertRoster(division, team string, players []string) error
	UpsertResult(result league.MatchResult) error
	UpsertFixture(fixture league.Fixture) error
	UpsertFrameRecord(record league.FrameRecord) error
	UpsertPlayerStats(stats []league.PlayerSeasonStats) error
	UpsertPriorRatings(priors map[string]league.PriorRating) error
	LoadSnapshot() (*league.Snapshot, error)
	SaveSimReport(report *SimReport) error
	LatestSimReport(division string) (*SimReport, error)
	Clear() error
}
