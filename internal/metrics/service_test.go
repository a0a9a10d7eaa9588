package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhenders/baize/internal/metrics"
)

func TestServiceExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := metrics.NewService(reg)

	svc.IncSimulation("season")
	svc.IncSimulation("season")
	svc.IncSimulation("match")
	svc.IncLineupOptimized()
	svc.IncCalibration("division")
	svc.ObserveSimulationDuration(0.042)
	svc.SetCalibrationConfidence("division", 0.8)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	metrics.NewMetricsHandler(reg).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `baize_simulations_total{kind="season"} 2`)
	assert.Contains(t, body, `baize_simulations_total{kind="match"} 1`)
	assert.Contains(t, body, "baize_lineups_optimized_total 1")
	assert.Contains(t, body, `baize_calibrations_total{level="division"} 1`)
	assert.Contains(t, body, "baize_simulation_duration_seconds_count 1")
	assert.Contains(t, body, `baize_calibration_confidence{level="division"} 0.8`)
}
