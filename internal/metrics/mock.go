package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	simulations         map[string]int
	lineupsOptimized    int
	calibrations        map[string]int
	simulationDurations []float64
	confidences         map[string]float64
}

var _ Metrics = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		simulations:  make(map[string]int),
		calibrations: make(map[string]int),
		confidences:  make(map[string]float64),
	}
}

func (m *Mock) IncSimulation(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.simulations[kind]++
}

func (m *Mock) IncLineupOptimized() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lineupsOptimized++
}

func (m *Mock) IncCalibration(level string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calibrations[level]++
}

func (m *Mock) ObserveSimulationDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.simulationDurations = append(m.simulationDurations, duration)
}

func (m *Mock) SetCalibrationConfidence(level string, confidence float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.confidences[level] = confidence
}

// Simulations returns the number of times IncSimulation was called for a kind.
func (m *Mock) Simulations(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.simulations[kind]
}

// LineupsOptimized returns the number of times IncLineupOptimized was called.
func (m *Mock) LineupsOptimized() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lineupsOptimized
}

// Calibrations returns the number of times IncCalibration was called for a level.
func (m *Mock) Calibrations(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calibrations[level]
}

// SimulationDurations returns every duration passed to ObserveSimulationDuration.
func (m *Mock) SimulationDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.simulationDurations...)
}

// CalibrationConfidence returns the last confidence recorded for a level.
func (m *Mock) CalibrationConfidence(level string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.confidences[level]
}
