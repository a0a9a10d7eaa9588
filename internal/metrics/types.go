package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the engine.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	Simulations           *prometheus.CounterVec
	LineupsOptimized      prometheus.Counter
	Calibrations          *prometheus.CounterVec
	SimulationDuration    prometheus.Histogram
	CalibrationConfidence *prometheus.GaugeVec
}
