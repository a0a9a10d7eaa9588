package metrics

// Metrics defines the interface for collecting engine metrics.
// This decouples the engine from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncSimulation(kind string)
	IncLineupOptimized()
	IncCalibration(level string)
	ObserveSimulationDuration(duration float64)
	SetCalibrationConfidence(level string, confidence float64)
}

// MetricsStore persists named counters in the database so they survive
// across CLI invocations.
type MetricsStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
