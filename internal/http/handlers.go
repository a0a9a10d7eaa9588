package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/mhenders/baize/internal/league"
	"github.com/mhenders/baize/internal/lineup"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// StandingsHandler serves the current table for a division.
func (s *Server) StandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		division := r.URL.Query().Get("division")
		if division == "" {
			http.Error(w, "division is required", http.StatusBadRequest)
			return
		}

		snap, err := s.Store.LoadSnapshot()
		if err != nil {
			http.Error(w, "Failed to load league data", http.StatusInternalServerError)
			log.Error("Failed to load snapshot", "error", err)
			return
		}

		table := league.BuildStandings(snap.Teams[division], snap.DivisionResults(division))
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(table); err != nil {
			log.Error("Failed to encode standings to JSON", "error", err)
		}
	}
}

// LineupHandler recommends a lineup for the team named in the query. Squad
// what-ifs stay CLI-only; this serves the plain optimal pick.
func (s *Server) LineupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		division := query.Get("division")
		team := query.Get("team")
		opponent := query.Get("opponent")
		if division == "" || team == "" || opponent == "" {
			http.Error(w, "division, team and opponent are required", http.StatusBadRequest)
			return
		}

		snap, err := s.Store.LoadSnapshot()
		if err != nil {
			http.Error(w, "Failed to load league data", http.StatusInternalServerError)
			log.Error("Failed to load snapshot", "error", err)
			return
		}

		result, err := lineup.Optimize(lineup.Request{
			Snapshot: snap,
			Division: division,
			Team:     team,
			Opponent: opponent,
			Home:     query.Get("home") == "true",
		})
		if err != nil {
			if errors.Is(err, lineup.ErrInsufficientPlayers) {
				http.Error(w, err.Error(), http.StatusUnprocessableEntity)
				return
			}
			http.Error(w, "Failed to optimize lineup", http.StatusInternalServerError)
			log.Error("Failed to optimize lineup", "error", err, "team", team)
			return
		}
		s.Metrics.IncLineupOptimized()

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			log.Error("Failed to encode lineup to JSON", "error", err)
		}
	}
}

// LatestReportHandler serves the most recent season projection. The division
// parameter is optional; without it the newest report of any division wins.
func (s *Server) LatestReportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		division := r.URL.Query().Get("division")

		report, err := s.Store.LatestSimReport(division)
		if err != nil {
			http.Error(w, "Failed to load report", http.StatusInternalServerError)
			log.Error("Failed to load sim report", "error", err, "division", division)
			return
		}
		if report == nil {
			http.Error(w, "No report available", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			log.Error("Failed to encode report to JSON", "error", err)
		}
	}
}
