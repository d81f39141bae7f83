package recorder

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/yoonsp/scrimbot/internal/league"
	"github.com/yoonsp/scrimbot/internal/metrics"
	"github.com/yoonsp/scrimbot/internal/pubsub"
)

// New creates a new Recorder. windowMinutes is the trailing duplicate
// detection window.
func New(store league.LeagueStore, metricsSvc metrics.Metrics, pubsubClient pubsub.PubSubClient, windowMinutes int) *Recorder {
	return &Recorder{
		store:   store,
		metrics: metricsSvc,
		pubsub:  pubsubClient,
		window:  time.Duration(windowMinutes) * time.Minute,
		now:     time.Now,
	}
}

// WithClock overrides the recorder's clock. Used in tests.
func (r *Recorder) WithClock(now func() time.Time) *Recorder {
	r.now = now
	return r
}

// RecordMatch validates a submission, rejects near-duplicates and persists
// the match together with its aggregate deltas.
func (r *Recorder) RecordMatch(in RecordInput) (*league.Match, error) {
	participants := append(append([]league.Player{}, in.TeamA...), in.TeamB...)

	ids := make(map[string]struct{}, len(participants))
	for _, p := range participants {
		ids[p.ID] = struct{}{}
	}
	if len(in.TeamA) != 5 || len(in.TeamB) != 5 || len(ids) != 10 {
		return nil, &ValidationError{Reason: "requires ten distinct participants, five per team"}
	}

	if in.Winner != league.TeamA && in.Winner != league.TeamB {
		return nil, &ValidationError{Reason: "winner must be team A or B"}
	}

	month := in.Month
	if month == "" {
		month = league.CurrentMonth(r.now())
	} else if !league.ValidMonth(month) {
		return nil, &ValidationError{Reason: "month must be YYYY-MM"}
	}

	idList := make([]string, 0, len(participants))
	for _, p := range participants {
		idList = append(idList, p.ID)
	}
	key := league.CompositionKey(idList)
	since := r.now().Add(-r.window)
	duplicate, err := r.store.CompositionRecordedSince(key, since)
	if err != nil {
		return nil, fmt.Errorf("duplicate check failed: %w", err)
	}
	if duplicate {
		r.metrics.IncDuplicateRejected()
		log.Info("Rejected duplicate match submission", "compositionKey", key, "window", r.window)
		return nil, ErrDuplicateMatch
	}

	match, err := r.store.CreateMatch(in.Winner, month, in.Score, in.TeamA, in.TeamB)
	if err != nil {
		return nil, fmt.Errorf("failed to record match: %w", err)
	}

	r.metrics.IncMatchesRecorded()
	if err := r.pubsub.SendMessage(pubsub.EventMatchRecorded, match); err != nil {
		log.Error("Failed to publish match-recorded event", "error", err, "matchID", match.ID)
	}
	log.Info("Recorded match", "matchID", match.ID, "month", month, "winner", in.Winner)
	return match, nil
}

// UndoLast reverses the single most recently recorded match.
func (r *Recorder) UndoLast() (*league.Match, error) {
	match, err := r.store.ReverseLastMatch()
	if err != nil {
		return nil, err
	}

	r.metrics.IncMatchesReversed()
	if err := r.pubsub.SendMessage(pubsub.EventMatchReversed, match); err != nil {
		log.Error("Failed to publish match-reversed event", "error", err, "matchID", match.ID)
	}
	log.Info("Reversed last match", "matchID", match.ID, "month", match.Month)
	return match, nil
}

// Backfill overwrites the manual win/loss baseline for a player month.
// Returns the previous baseline values.
func (r *Recorder) Backfill(playerID, nickname, month string, wins, losses int) (int, int, error) {
	if !league.ValidMonth(month) {
		return 0, 0, &ValidationError{Reason: "month must be YYYY-MM"}
	}
	if wins < 0 || losses < 0 {
		return 0, 0, &ValidationError{Reason: "wins and losses must be non-negative"}
	}
	return r.store.SetBaseline(playerID, nickname, month, wins, losses)
}

// SetPlayerStats overwrites the manually-set KD and/or ACS for a player
// month. At least one of the two must be provided.
func (r *Recorder) SetPlayerStats(playerID, nickname, month string, kd *float64, acs *int) error {
	if month == "" {
		month = league.CurrentMonth(r.now())
	} else if !league.ValidMonth(month) {
		return &ValidationError{Reason: "month must be YYYY-MM"}
	}
	if kd == nil && acs == nil {
		return &ValidationError{Reason: "at least one of kd or acs is required"}
	}
	if kd != nil && *kd < 0 {
		return &ValidationError{Reason: "kd must be non-negative"}
	}
	if acs != nil && *acs < 0 {
		return &ValidationError{Reason: "acs must be non-negative"}
	}
	return r.store.SetAuxiliaryStats(playerID, nickname, month, kd, acs)
}
