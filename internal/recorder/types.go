package recorder

import (
	"errors"
	"time"

	"github.com/yoonsp/scrimbot/internal/league"
	"github.com/yoonsp/scrimbot/internal/metrics"
	"github.com/yoonsp/scrimbot/internal/pubsub"
)

// ErrDuplicateMatch is returned when an identical ten-player composition was
// already recorded within the duplicate window.
var ErrDuplicateMatch = errors.New("duplicate match within window")

// ValidationError describes a rejected command input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// RecordInput is a single match submission.
type RecordInput struct {
	Winner league.TeamSide
	Score  string
	Month  string // optional, YYYY-MM; defaults to the current month
	TeamA  []league.Player
	TeamB  []league.Player
}

// Recorder validates and persists match submissions and manual stat
// corrections, and keeps the monthly aggregates consistent.
type Recorder struct {
	store   league.LeagueStore
	metrics metrics.Metrics
	pubsub  pubsub.PubSubClient
	window  time.Duration
	now     func() time.Time
}
