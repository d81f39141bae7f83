package league

import (
	"sync"
	"time"
)

// MockStore is a mock implementation of the LeagueStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	UpsertPlayerFunc             func(playerID, nickname string) error
	IsKnownPlayerFunc            func(playerID string) bool
	GetAllPlayersFunc            func() ([]Player, error)
	CreateMatchFunc              func(winner TeamSide, month, score string, teamA, teamB []Player) (*Match, error)
	CompositionRecordedSinceFunc func(compositionKey string, since time.Time) (bool, error)
	ReverseLastMatchFunc         func() (*Match, error)
	GetAllMatchesFunc            func() ([]*Match, error)
	ApplyStatDeltaFunc           func(playerID, month string, deltaWins, deltaLosses int) error
	SetBaselineFunc              func(playerID, nickname, month string, wins, losses int) (int, int, error)
	SetAuxiliaryStatsFunc        func(playerID, nickname, month string, kd *float64, acs *int) error
	GetMonthlyStatsFunc          func(month string) ([]MonthlyStat, error)
	GetPlayerMonthlyStatFunc     func(playerID, month string) (*MonthlyStat, error)
	ClearFunc                    func()

	// Call records
	CreateMatchCalls []struct {
		Winner       TeamSide
		Month        string
		Score        string
		TeamA, TeamB []Player
	}
	CompositionRecordedSinceCalls []struct {
		CompositionKey string
		Since          time.Time
	}
	ReverseLastMatchCalls int
	ApplyStatDeltaCalls   []struct {
		PlayerID    string
		Month       string
		DeltaWins   int
		DeltaLosses int
	}
	SetBaselineCalls []struct {
		PlayerID string
		Month    string
		Wins     int
		Losses   int
	}
	SetAuxiliaryStatsCalls []struct {
		PlayerID string
		Month    string
		KD       *float64
		ACS      *int
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) UpsertPlayer(playerID, nickname string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertPlayerFunc != nil {
		return m.UpsertPlayerFunc(playerID, nickname)
	}
	return nil
}

func (m *MockStore) IsKnownPlayer(playerID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.IsKnownPlayerFunc != nil {
		return m.IsKnownPlayerFunc(playerID)
	}
	return false
}

func (m *MockStore) GetAllPlayers() ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllPlayersFunc != nil {
		return m.GetAllPlayersFunc()
	}
	return nil, nil
}

func (m *MockStore) CreateMatch(winner TeamSide, month, score string, teamA, teamB []Player) (*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateMatchCalls = append(m.CreateMatchCalls, struct {
		Winner       TeamSide
		Month        string
		Score        string
		TeamA, TeamB []Player
	}{winner, month, score, teamA, teamB})
	if m.CreateMatchFunc != nil {
		return m.CreateMatchFunc(winner, month, score, teamA, teamB)
	}
	return &Match{Winner: winner, Month: month, Score: score}, nil
}

func (m *MockStore) CompositionRecordedSince(compositionKey string, since time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CompositionRecordedSinceCalls = append(m.CompositionRecordedSinceCalls, struct {
		CompositionKey string
		Since          time.Time
	}{compositionKey, since})
	if m.CompositionRecordedSinceFunc != nil {
		return m.CompositionRecordedSinceFunc(compositionKey, since)
	}
	return false, nil
}

func (m *MockStore) ReverseLastMatch() (*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReverseLastMatchCalls++
	if m.ReverseLastMatchFunc != nil {
		return m.ReverseLastMatchFunc()
	}
	return nil, ErrNoMatches
}

func (m *MockStore) GetAllMatches() ([]*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllMatchesFunc != nil {
		return m.GetAllMatchesFunc()
	}
	return nil, nil
}

func (m *MockStore) ApplyStatDelta(playerID, month string, deltaWins, deltaLosses int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ApplyStatDeltaCalls = append(m.ApplyStatDeltaCalls, struct {
		PlayerID    string
		Month       string
		DeltaWins   int
		DeltaLosses int
	}{playerID, month, deltaWins, deltaLosses})
	if m.ApplyStatDeltaFunc != nil {
		return m.ApplyStatDeltaFunc(playerID, month, deltaWins, deltaLosses)
	}
	return nil
}

func (m *MockStore) SetBaseline(playerID, nickname, month string, wins, losses int) (int, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetBaselineCalls = append(m.SetBaselineCalls, struct {
		PlayerID string
		Month    string
		Wins     int
		Losses   int
	}{playerID, month, wins, losses})
	if m.SetBaselineFunc != nil {
		return m.SetBaselineFunc(playerID, nickname, month, wins, losses)
	}
	return 0, 0, nil
}

func (m *MockStore) SetAuxiliaryStats(playerID, nickname, month string, kd *float64, acs *int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetAuxiliaryStatsCalls = append(m.SetAuxiliaryStatsCalls, struct {
		PlayerID string
		Month    string
		KD       *float64
		ACS      *int
	}{playerID, month, kd, acs})
	if m.SetAuxiliaryStatsFunc != nil {
		return m.SetAuxiliaryStatsFunc(playerID, nickname, month, kd, acs)
	}
	return nil
}

func (m *MockStore) GetMonthlyStats(month string) ([]MonthlyStat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMonthlyStatsFunc != nil {
		return m.GetMonthlyStatsFunc(month)
	}
	return nil, nil
}

func (m *MockStore) GetPlayerMonthlyStat(playerID, month string) (*MonthlyStat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPlayerMonthlyStatFunc != nil {
		return m.GetPlayerMonthlyStatFunc(playerID, month)
	}
	return nil, ErrPlayerNotFound
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}
