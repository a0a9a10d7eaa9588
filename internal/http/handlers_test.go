package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhenders/baize/internal/config"
	"github.com/mhenders/baize/internal/database"
	"github.com/mhenders/baize/internal/league"
	"github.com/mhenders/baize/internal/lineup"
	"github.com/mhenders/baize/internal/metrics"
	"github.com/mhenders/baize/internal/simulation"
	"github.com/mhenders/baize/internal/store"
)

// setupTestServer initializes a new server with a test database.
func setupTestServer(t *testing.T) *Server {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	t.Cleanup(teardown)

	leagueStore := store.New(db)

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)

	return NewServer(leagueStore, metricsSvc, metricsHandler, config.Config{})
}

func TestHealthCheckHandler(t *testing.T) {
	server := setupTestServer(t)

	req, err := http.NewRequest("GET", "/health", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
}

func TestStandingsHandler(t *testing.T) {
	server := setupTestServer(t)

	require.NoError(t, server.Store.UpsertDivision(
		league.DivisionInfo{Code: "d1", Name: "Division 1"},
		[]string{"Cue Crew", "Rack Pack"},
	))
	require.NoError(t, server.Store.UpsertResult(league.MatchResult{
		Division: "d1", HomeTeam: "Cue Crew", AwayTeam: "Rack Pack",
		HomeScore: 7, AwayScore: 3,
		Date: time.Date(2025, time.October, 2, 0, 0, 0, 0, time.UTC),
	}))

	t.Run("returns sorted table", func(t *testing.T) {
		req, err := http.NewRequest("GET", "/standings?division=d1", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var table []league.Standing
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &table))
		require.Len(t, table, 2)
		assert.Equal(t, "Cue Crew", table[0].Team)
		assert.Equal(t, league.HomeWinPoints, table[0].Points)
	})

	t.Run("requires division", func(t *testing.T) {
		req, err := http.NewRequest("GET", "/standings", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestLineupHandler(t *testing.T) {
	server := setupTestServer(t)

	require.NoError(t, server.Store.UpsertDivision(
		league.DivisionInfo{Code: "d1", Name: "Division 1"},
		[]string{"Cue Crew", "Rack Pack"},
	))
	squad := make([]string, 0, 10)
	for i := 0; i < 10; i++ {
		squad = append(squad, fmt.Sprintf("Player %02d", i+1))
	}
	require.NoError(t, server.Store.UpsertRoster("d1", "Cue Crew", squad))
	require.NoError(t, server.Store.UpsertRoster("d1", "Rack Pack", squad[:9]))

	t.Run("returns a full lineup", func(t *testing.T) {
		q := url.Values{
			"division": {"d1"},
			"team":     {"Cue Crew"},
			"opponent": {"Rack Pack"},
			"home":     {"true"},
		}
		req, err := http.NewRequest("GET", "/lineup?"+q.Encode(), nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var result lineup.Result
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
		require.Len(t, result.Sets, 2)
		assert.Len(t, result.Sets[0], 5)
		assert.Len(t, result.Sets[1], 5)
		assert.True(t, result.Home)
	})

	t.Run("requires parameters", func(t *testing.T) {
		req, err := http.NewRequest("GET", "/lineup?division=d1", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("too few players", func(t *testing.T) {
		q := url.Values{
			"division": {"d1"},
			"team":     {"Rack Pack"},
			"opponent": {"Cue Crew"},
		}
		req, err := http.NewRequest("GET", "/lineup?"+q.Encode(), nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})
}

func TestLatestReportHandler(t *testing.T) {
	server := setupTestServer(t)

	t.Run("no report yet", func(t *testing.T) {
		req, err := http.NewRequest("GET", "/reports/latest?division=d1", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("serves the saved report", func(t *testing.T) {
		report := &store.SimReport{
			Division: "d1",
			Projections: []simulation.TeamProjection{
				{Team: "Cue Crew", TitleProb: 61.2},
			},
		}
		require.NoError(t, server.Store.SaveSimReport(report))

		req, err := http.NewRequest("GET", "/reports/latest?division=d1", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var got store.SimReport
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, report.ID, got.ID)
		require.Len(t, got.Projections, 1)
		assert.Equal(t, "Cue Crew", got.Projections[0].Team)
	})
}
