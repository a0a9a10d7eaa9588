package projector

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mhenders/baize/internal/calibration"
	"github.com/mhenders/baize/internal/league"
	"github.com/mhenders/baize/internal/metrics"
	"github.com/mhenders/baize/internal/ratings"
	"github.com/mhenders/baize/internal/simulation"
	"github.com/mhenders/baize/internal/store"
)

// New creates a new Projector.
func New(leagueStore Store, metricsSvc metrics.Metrics, calCfg calibration.Config, rng *rand.Rand) *Projector {
	return &Projector{
		store:   leagueStore,
		metrics: metricsSvc,
		calCfg:  calCfg,
		rng:     rng,
	}
}

// Refresh simulates every division once, saves a report for each, and
// republishes calibration confidence. A division that fails is logged and
// skipped so the others still refresh.
func (p *Projector) Refresh() error {
	snap, err := p.store.LoadSnapshot()
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	log.Info("Starting projection refresh", "divisions", len(snap.Divisions))
	for _, div := range snap.Divisions {
		if err := p.refreshDivision(snap, div.Code); err != nil {
			log.Error("Failed to refresh division", "division", div.Code, "error", err)
		}
	}
	p.refreshCalibrations(snap)
	log.Info("Projection refresh finished.")
	return nil
}

func (p *Projector) refreshDivision(snap *league.Snapshot, division string) error {
	results := snap.DivisionResults(division)
	standings := league.BuildStandings(snap.Teams[division], results)
	remaining := league.RemainingFixtures(snap.DivisionFixtures(division), results)
	strengths := ratings.DivisionStrengths(snap, division)

	start := time.Now()
	projections := simulation.SimulateSeason(standings, strengths, remaining, p.rng)
	p.metrics.ObserveSimulationDuration(time.Since(start).Seconds())
	p.metrics.IncSimulation("season")

	report := &store.SimReport{Division: division, Projections: projections}
	if err := p.store.SaveSimReport(report); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	log.Debug("Saved projection report", "division", division, "id", report.ID)
	return nil
}

func (p *Projector) refreshCalibrations(snap *league.Snapshot) {
	leagues := calibration.GroupLeagues(snap)
	for _, l := range leagues {
		cal := calibration.CalibrateDivisions(l.Stats, l.Divisions, p.calCfg)
		p.metrics.IncCalibration("division")
		p.metrics.SetCalibrationConfidence("division", cal.Confidence)
	}
	if len(leagues) >= 2 {
		cal := calibration.CalibrateLeagues(leagues, p.calCfg)
		p.metrics.IncCalibration("league")
		p.metrics.SetCalibrationConfidence("league", cal.Confidence)
	}
}

// Run refreshes immediately and then on every tick until the context is
// cancelled.
func (p *Projector) Run(ctx context.Context, interval time.Duration) {
	if err := p.Refresh(); err != nil {
		log.Error("Projection refresh failed", "error", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info("Projector stopped", "reason", ctx.Err())
			return
		case <-ticker.C:
			if err := p.Refresh(); err != nil {
				log.Error("Projection refresh failed", "error", err)
			}
		}
	}
}
