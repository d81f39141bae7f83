package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"
	"github.com/yoonsp/scrimbot/internal/league"
	"github.com/yoonsp/scrimbot/internal/metrics"
	"github.com/yoonsp/scrimbot/internal/notifier"
	"github.com/yoonsp/scrimbot/internal/ranking"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// SendLeaderboard posts a month's leaderboard to the configured channel.
func (s *Notifier) SendLeaderboard(month string, rows []ranking.Row, dryRun bool) error {
	msg := s.formatLeaderboard(month, rows)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// FormatMatchRecordedResponse formats the public confirmation for a recorded match.
func (s *Notifier) FormatMatchRecordedResponse(match *league.Match) (any, error) {
	return s.formatMatchRecorded(match), nil
}

// FormatProfileResponse formats a player's monthly profile line.
func (s *Notifier) FormatProfileResponse(stat *league.MonthlyStat) (any, error) {
	return s.formatProfile(stat), nil
}

// FormatLeaderboardResponse formats a leaderboard message for a slash command response.
func (s *Notifier) FormatLeaderboardResponse(month string, rows []ranking.Row) (any, error) {
	return s.formatLeaderboard(month, rows), nil
}

// FormatAllStatsResponse formats one page of the all-stats view.
func (s *Notifier) FormatAllStatsResponse(month string, page ranking.Page) (any, error) {
	return s.formatAllStats(month, page), nil
}

// FormatUndoResponse formats the confirmation for a reversed match.
func (s *Notifier) FormatUndoResponse(match *league.Match) (any, error) {
	return s.formatUndo(match), nil
}

// FormatBackfillResponse formats the confirmation for a saved baseline.
func (s *Notifier) FormatBackfillResponse(month, playerID string, wins, losses int) (any, error) {
	return s.formatBackfill(month, playerID, wins, losses), nil
}

// FormatStatSetResponse formats the confirmation for manually-set KD/ACS.
func (s *Notifier) FormatStatSetResponse(month, playerID string, kd *float64, acs *int) (any, error) {
	return s.formatStatSet(month, playerID, kd, acs), nil
}

// FormatErrorResponse formats a caller-only-visible error message.
func (s *Notifier) FormatErrorResponse(text string) (any, error) {
	msg := slack.Message{}
	msg.ResponseType = slack.ResponseTypeEphemeral
	msg.Text = text
	return msg, nil
}
