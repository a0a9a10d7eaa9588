package store

import (
	"sync"

	"github.com/mhenders/baize/internal/league"
)

// MockStore is a mock implementation of the LeagueStore interface for
// testing. It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	UpsertDivisionFunc     func(division league.DivisionInfo, teams []string) error
	UpsertRosterFunc       func(division, team string, players []string) error
	UpsertResultFunc       func(result league.MatchResult) error
	UpsertFixtureFunc      func(fixture league.Fixture) error
	UpsertFrameRecordFunc  func(record league.FrameRecord) error
	UpsertPlayerStatsFunc  func(stats []league.PlayerSeasonStats) error
	UpsertPriorRatingsFunc func(priors map[string]league.PriorRating) error
	LoadSnapshotFunc       func() (*league.Snapshot, error)
	SaveSimReportFunc      func(report *SimReport) error
	LatestSimReportFunc    func(division string) (*SimReport, error)
	ClearFunc              func() error

	// Call records
	UpsertDivisionCalls []struct {
		Division league.DivisionInfo
		Teams    []string
	}
	UpsertResultCalls      []league.MatchResult
	UpsertFrameRecordCalls []league.FrameRecord
	SaveSimReportCalls     []*SimReport
	LatestSimReportCalls   []string
}

var _ LeagueStore = (*MockStore)(nil)

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertDivisionCalls = nil
	m.UpsertResultCalls = nil
	m.UpsertFrameRecordCalls = nil
	m.SaveSimReportCalls = nil
	m.LatestSimReportCalls = nil
}

func (m *MockStore) UpsertDivision(division league.DivisionInfo, teams []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertDivisionCalls = append(m.UpsertDivisionCalls, struct {
		Division league.DivisionInfo
		Teams    []string
	}{division, teams})
	if m.UpsertDivisionFunc != nil {
		return m.UpsertDivisionFunc(division, teams)
	}
	return nil
}

func (m *MockStore) UpsertRoster(division, team string, players []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertRosterFunc != nil {
		return m.UpsertRosterFunc(division, team, players)
	}
	return nil
}

func (m *MockStore) UpsertResult(result league.MatchResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertResultCalls = append(m.UpsertResultCalls, result)
	if m.UpsertResultFunc != nil {
		return m.UpsertResultFunc(result)
	}
	return nil
}

func (m *MockStore) UpsertFixture(fixture league.Fixture) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertFixtureFunc != nil {
		return m.UpsertFixtureFunc(fixture)
	}
	return nil
}

func (m *MockStore) UpsertFrameRecord(record league.FrameRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertFrameRecordCalls = append(m.UpsertFrameRecordCalls, record)
	if m.UpsertFrameRecordFunc != nil {
		return m.UpsertFrameRecordFunc(record)
	}
	return nil
}

func (m *MockStore) UpsertPlayerStats(stats []league.PlayerSeasonStats) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertPlayerStatsFunc != nil {
		return m.UpsertPlayerStatsFunc(stats)
	}
	return nil
}

func (m *MockStore) UpsertPriorRatings(priors map[string]league.PriorRating) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertPriorRatingsFunc != nil {
		return m.UpsertPriorRatingsFunc(priors)
	}
	return nil
}

func (m *MockStore) LoadSnapshot() (*league.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadSnapshotFunc != nil {
		return m.LoadSnapshotFunc()
	}
	return &league.Snapshot{
		Teams:   make(map[string][]string),
		Rosters: make(map[string][]string),
		Priors:  make(map[string]league.PriorRating),
	}, nil
}

func (m *MockStore) SaveSimReport(report *SimReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveSimReportCalls = append(m.SaveSimReportCalls, report)
	if m.SaveSimReportFunc != nil {
		return m.SaveSimReportFunc(report)
	}
	return nil
}

func (m *MockStore) LatestSimReport(division string) (*SimReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LatestSimReportCalls = append(m.LatestSimReportCalls, division)
	if m.LatestSimReportFunc != nil {
		return m.LatestSimReportFunc(division)
	}
	return nil, nil
}

func (m *MockStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearFunc != nil {
		return m.ClearFunc()
	}
	return nil
}
