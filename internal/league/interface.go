package league

import "time"

// LeagueStore defines the interface for interacting with the league's data.
type LeagueStore interface {
	UpsertPlayer(playerID, nickname string) error
	IsKnownPlayer(playerID string) bool
	GetAllPlayers() ([]Player, error)

	CreateMatch(winner TeamSide, month, score string, teamA, teamB []Player) (*Match, error)
	CompositionRecordedSince(compositionKey string, since time.Time) (bool, error)
	ReverseLastMatch() (*Match, error)
	GetAllMatches() ([]*Match, error)

	ApplyStatDelta(playerID, month string, deltaWins, deltaLosses int) error
	SetBaseline(playerID, nickname, month string, wins, losses int) (prevWins, prevLosses int, err error)
	SetAuxiliaryStats(playerID, nickname, month string, kd *float64, acs *int) error

	GetMonthlyStats(month string) ([]MonthlyStat, error)
	GetPlayerMonthlyStat(playerID, month string) (*MonthlyStat, error)

	Clear()
}
