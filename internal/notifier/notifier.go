package notifier

import (
	"github.com/yoonsp/scrimbot/internal/league"
	"github.com/yoonsp/scrimbot/internal/ranking"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For announcing a month's leaderboard in the configured channel
	SendLeaderboard(month string, rows []ranking.Row, dryRun bool) error

	// For formatting responses for slash commands
	FormatMatchRecordedResponse(match *league.Match) (any, error)
	FormatProfileResponse(stat *league.MonthlyStat) (any, error)
	FormatLeaderboardResponse(month string, rows []ranking.Row) (any, error)
	FormatAllStatsResponse(month string, page ranking.Page) (any, error)
	FormatUndoResponse(match *league.Match) (any, error)
	FormatBackfillResponse(month, playerID string, wins, losses int) (any, error)
	FormatStatSetResponse(month, playerID string, kd *float64, acs *int) (any, error)
	FormatErrorResponse(text string) (any, error)
}
