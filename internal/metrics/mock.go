package metrics

import "sync"

// MockMetrics is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type MockMetrics struct {
	mu sync.Mutex

	MatchesRecordedCount   int
	DuplicateRejectedCount int
	MatchesReversedCount   int
	CommandDurations       []float64
	SlackNotifSentCount    int
	SlackNotifFailedCount  int
	StartupTimes           []float64
}

var _ Metrics = (*MockMetrics)(nil)

// NewMock creates a new mock instance.
func NewMock() *MockMetrics {
	return &MockMetrics{}
}

func (m *MockMetrics) IncMatchesRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MatchesRecordedCount++
}

func (m *MockMetrics) IncDuplicateRejected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicateRejectedCount++
}

func (m *MockMetrics) IncMatchesReversed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MatchesReversedCount++
}

func (m *MockMetrics) ObserveCommandDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CommandDurations = append(m.CommandDurations, duration)
}

func (m *MockMetrics) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SlackNotifSentCount++
}

func (m *MockMetrics) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SlackNotifFailedCount++
}

func (m *MockMetrics) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StartupTimes = append(m.StartupTimes, duration)
}
