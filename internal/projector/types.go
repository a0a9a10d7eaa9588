package projector

import (
	"math/rand"

	"github.com/mhenders/baize/internal/calibration"
	"github.com/mhenders/baize/internal/league"
	"github.com/mhenders/baize/internal/metrics"
	"github.com/mhenders/baize/internal/store"
)

// Store defines the database operations required by the projector.
type Store interface {
	LoadSnapshot() (*league.Snapshot, error)
	SaveSimReport(report *store.SimReport) error
}

// Projector keeps season projections and calibration gauges fresh by
// re-running the engine for every division on each refresh.
type Projector struct {
	store   Store
	metrics metrics.Metrics
	calCfg  calibration.Config
	rng     *rand.Rand
}
