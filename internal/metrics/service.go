package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		Simulations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "baize_simulations_total",
			Help: "The total number of Monte Carlo simulations run, by kind.",
		}, []string{"kind"}),
		LineupsOptimized: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "baize_lineups_optimized_total",
			Help: "The total number of lineup optimizations run.",
		}),
		Calibrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "baize_calibrations_total",
			Help: "The total number of calibrations computed, by level.",
		}, []string{"level"}),
		SimulationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "baize_simulation_duration_seconds",
			Help:    "The duration of individual simulation runs.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		CalibrationConfidence: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "baize_calibration_confidence",
			Help: "The confidence of the most recent calibration, by level.",
		}, []string{"level"}),
	}

	reg.MustRegister(
		s.Simulations,
		s.LineupsOptimized,
		s.Calibrations,
		s.SimulationDuration,
		s.CalibrationConfidence,
	)

	return s
}

func (s *Service) IncSimulation(kind string) {
	s.Simulations.WithLabelValues(kind).Inc()
}

func (s *Service) IncLineupOptimized() {
	s.LineupsOptimized.Inc()
}

func (s *Service) IncCalibration(level string) {
	s.Calibrations.WithLabelValues(level).Inc()
}

func (s *Service) ObserveSimulationDuration(duration float64) {
	s.SimulationDuration.Observe(duration)
}

func (s *Service) SetCalibrationConfidence(level string, confidence float64) {
	s.CalibrationConfidence.WithLabelValues(level).Set(confidence)
}
