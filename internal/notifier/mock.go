package notifier

import (
	"sync"

	"github.com/yoonsp/scrimbot/internal/league"
	"github.com/yoonsp/scrimbot/internal/ranking"
)

// MockNotifier is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type MockNotifier struct {
	mu sync.Mutex

	// Spies for method calls
	SendLeaderboardFunc             func(month string, rows []ranking.Row, dryRun bool) error
	FormatMatchRecordedResponseFunc func(match *league.Match) (any, error)
	FormatProfileResponseFunc       func(stat *league.MonthlyStat) (any, error)
	FormatLeaderboardResponseFunc   func(month string, rows []ranking.Row) (any, error)
	FormatAllStatsResponseFunc      func(month string, page ranking.Page) (any, error)
	FormatUndoResponseFunc          func(match *league.Match) (any, error)
	FormatBackfillResponseFunc      func(month, playerID string, wins, losses int) (any, error)
	FormatStatSetResponseFunc       func(month, playerID string, kd *float64, acs *int) (any, error)
	FormatErrorResponseFunc         func(text string) (any, error)

	// Call records
	SendLeaderboardCalls []struct {
		Month  string
		Rows   []ranking.Row
		DryRun bool
	}
	FormatErrorResponseCalls []string
}

var _ Notifier = (*MockNotifier)(nil)

// NewMock creates a new mock instance.
func NewMock() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) SendLeaderboard(month string, rows []ranking.Row, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, struct {
		Month  string
		Rows   []ranking.Row
		DryRun bool
	}{month, rows, dryRun})
	if m.SendLeaderboardFunc != nil {
		return m.SendLeaderboardFunc(month, rows, dryRun)
	}
	return nil
}

func (m *MockNotifier) FormatMatchRecordedResponse(match *league.Match) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatMatchRecordedResponseFunc != nil {
		return m.FormatMatchRecordedResponseFunc(match)
	}
	return match, nil
}

func (m *MockNotifier) FormatProfileResponse(stat *league.MonthlyStat) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatProfileResponseFunc != nil {
		return m.FormatProfileResponseFunc(stat)
	}
	return stat, nil
}

func (m *MockNotifier) FormatLeaderboardResponse(month string, rows []ranking.Row) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatLeaderboardResponseFunc != nil {
		return m.FormatLeaderboardResponseFunc(month, rows)
	}
	return rows, nil
}

func (m *MockNotifier) FormatAllStatsResponse(month string, page ranking.Page) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatAllStatsResponseFunc != nil {
		return m.FormatAllStatsResponseFunc(month, page)
	}
	return page, nil
}

func (m *MockNotifier) FormatUndoResponse(match *league.Match) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatUndoResponseFunc != nil {
		return m.FormatUndoResponseFunc(match)
	}
	return match, nil
}

func (m *MockNotifier) FormatBackfillResponse(month, playerID string, wins, losses int) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatBackfillResponseFunc != nil {
		return m.FormatBackfillResponseFunc(month, playerID, wins, losses)
	}
	return nil, nil
}

func (m *MockNotifier) FormatStatSetResponse(month, playerID string, kd *float64, acs *int) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatStatSetResponseFunc != nil {
		return m.FormatStatSetResponseFunc(month, playerID, kd, acs)
	}
	return nil, nil
}

func (m *MockNotifier) FormatErrorResponse(text string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FormatErrorResponseCalls = append(m.FormatErrorResponseCalls, text)
	if m.FormatErrorResponseFunc != nil {
		return m.FormatErrorResponseFunc(text)
	}
	return text, nil
}
