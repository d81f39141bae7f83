package recorder_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoonsp/scrimbot/internal/league"
	"github.com/yoonsp/scrimbot/internal/metrics"
	"github.com/yoonsp/scrimbot/internal/pubsub"
	"github.com/yoonsp/scrimbot/internal/recorder"
)

func setupRecorder(t *testing.T) (*recorder.Recorder, *league.MockStore, *metrics.MockMetrics, *pubsub.MockPubSubClient) {
	t.Helper()
	store := league.NewMock()
	metricsSvc := metrics.NewMock()
	pubsubClient := pubsub.NewMock()
	rec := recorder.New(store, metricsSvc, pubsubClient, 15)
	return rec, store, metricsSvc, pubsubClient
}

func makeTeams() (teamA, teamB []league.Player) {
	for i := 1; i <= 5; i++ {
		teamA = append(teamA, league.Player{ID: fmt.Sprintf("UA%03d", i)})
		teamB = append(teamB, league.Player{ID: fmt.Sprintf("UB%03d", i)})
	}
	return teamA, teamB
}

func TestRecordMatch_Success(t *testing.T) {
	rec, store, metricsSvc, pubsubClient := setupRecorder(t)
	teamA, teamB := makeTeams()

	match, err := rec.RecordMatch(recorder.RecordInput{
		Winner: league.TeamA,
		Score:  "13-7",
		Month:  "2025-08",
		TeamA:  teamA,
		TeamB:  teamB,
	})
	require.NoError(t, err)
	require.NotNil(t, match)

	require.Len(t, store.CreateMatchCalls, 1)
	assert.Equal(t, league.TeamA, store.CreateMatchCalls[0].Winner)
	assert.Equal(t, "2025-08", store.CreateMatchCalls[0].Month)
	assert.Equal(t, "13-7", store.CreateMatchCalls[0].Score)

	assert.Equal(t, 1, metricsSvc.MatchesRecordedCount)
	require.Len(t, pubsubClient.SendMessageCalls, 1)
	assert.Equal(t, pubsub.EventMatchRecorded, pubsubClient.SendMessageCalls[0].Topic)
}

func TestRecordMatch_DefaultsToCurrentMonth(t *testing.T) {
	rec, store, _, _ := setupRecorder(t)
	rec.WithClock(func() time.Time {
		return time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	})
	teamA, teamB := makeTeams()

	_, err := rec.RecordMatch(recorder.RecordInput{Winner: league.TeamB, TeamA: teamA, TeamB: teamB})
	require.NoError(t, err)
	require.Len(t, store.CreateMatchCalls, 1)
	assert.Equal(t, "2025-08", store.CreateMatchCalls[0].Month)
}

func TestRecordMatch_ValidationFailures(t *testing.T) {
	teamA, teamB := makeTeams()

	testCases := []struct {
		name  string
		input recorder.RecordInput
	}{
		{
			name:  "missing players",
			input: recorder.RecordInput{Winner: league.TeamA, TeamA: teamA[:4], TeamB: teamB},
		},
		{
			name: "duplicate player across teams",
			input: recorder.RecordInput{
				Winner: league.TeamA,
				TeamA:  teamA,
				TeamB:  append([]league.Player{teamA[0]}, teamB[:4]...),
			},
		},
		{
			name:  "invalid winner",
			input: recorder.RecordInput{Winner: "C", TeamA: teamA, TeamB: teamB},
		},
		{
			name:  "invalid month",
			input: recorder.RecordInput{Winner: league.TeamA, Month: "2025-13", TeamA: teamA, TeamB: teamB},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec, store, metricsSvc, _ := setupRecorder(t)
			_, err := rec.RecordMatch(tc.input)
			assert.True(t, recorder.IsValidation(err), "expected a validation error, got %v", err)
			assert.Empty(t, store.CreateMatchCalls, "nothing should be persisted")
			assert.Equal(t, 0, metricsSvc.MatchesRecordedCount)
		})
	}
}

func TestRecordMatch_DuplicateWindow(t *testing.T) {
	rec, store, metricsSvc, pubsubClient := setupRecorder(t)
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	rec.WithClock(func() time.Time { return now })
	store.CompositionRecordedSinceFunc = func(key string, since time.Time) (bool, error) {
		return true, nil
	}
	teamA, teamB := makeTeams()

	_, err := rec.RecordMatch(recorder.RecordInput{Winner: league.TeamA, TeamA: teamA, TeamB: teamB})
	assert.ErrorIs(t, err, recorder.ErrDuplicateMatch)

	require.Len(t, store.CompositionRecordedSinceCalls, 1)
	call := store.CompositionRecordedSinceCalls[0]
	assert.Equal(t, now.Add(-15*time.Minute), call.Since)
	assert.Equal(t, league.CompositionKey([]string{
		"UA001", "UA002", "UA003", "UA004", "UA005",
		"UB001", "UB002", "UB003", "UB004", "UB005",
	}), call.CompositionKey)

	assert.Empty(t, store.CreateMatchCalls)
	assert.Equal(t, 1, metricsSvc.DuplicateRejectedCount)
	assert.Empty(t, pubsubClient.SendMessageCalls)
}

func TestUndoLast(t *testing.T) {
	rec, store, metricsSvc, pubsubClient := setupRecorder(t)
	store.ReverseLastMatchFunc = func() (*league.Match, error) {
		return &league.Match{ID: "m1", Month: "2025-08"}, nil
	}

	match, err := rec.UndoLast()
	require.NoError(t, err)
	assert.Equal(t, "m1", match.ID)
	assert.Equal(t, 1, store.ReverseLastMatchCalls)
	assert.Equal(t, 1, metricsSvc.MatchesReversedCount)
	require.Len(t, pubsubClient.SendMessageCalls, 1)
	assert.Equal(t, pubsub.EventMatchReversed, pubsubClient.SendMessageCalls[0].Topic)
}

func TestUndoLast_NoMatches(t *testing.T) {
	rec, _, metricsSvc, pubsubClient := setupRecorder(t)

	_, err := rec.UndoLast()
	assert.ErrorIs(t, err, league.ErrNoMatches)
	assert.Equal(t, 0, metricsSvc.MatchesReversedCount)
	assert.Empty(t, pubsubClient.SendMessageCalls)
}

func TestBackfill(t *testing.T) {
	rec, store, _, _ := setupRecorder(t)
	store.SetBaselineFunc = func(playerID, nickname, month string, wins, losses int) (int, int, error) {
		return 2, 1, nil
	}

	prevW, prevL, err := rec.Backfill("U1", "One", "2025-08", 5, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, prevW)
	assert.Equal(t, 1, prevL)
	require.Len(t, store.SetBaselineCalls, 1)
}

func TestBackfill_Validation(t *testing.T) {
	rec, store, _, _ := setupRecorder(t)

	_, _, err := rec.Backfill("U1", "One", "not-a-month", 1, 1)
	assert.True(t, recorder.IsValidation(err))

	_, _, err = rec.Backfill("U1", "One", "2025-08", -1, 1)
	assert.True(t, recorder.IsValidation(err))

	assert.Empty(t, store.SetBaselineCalls)
}

func TestSetPlayerStats(t *testing.T) {
	rec, store, _, _ := setupRecorder(t)
	rec.WithClock(func() time.Time {
		return time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	})

	kd := 1.25
	require.NoError(t, rec.SetPlayerStats("U1", "One", "", &kd, nil))
	require.Len(t, store.SetAuxiliaryStatsCalls, 1)
	assert.Equal(t, "2025-08", store.SetAuxiliaryStatsCalls[0].Month, "empty month should default to the current month")
}

func TestSetPlayerStats_Validation(t *testing.T) {
	rec, store, _, _ := setupRecorder(t)

	err := rec.SetPlayerStats("U1", "One", "2025-08", nil, nil)
	assert.True(t, recorder.IsValidation(err), "at least one of kd/acs is required")

	kd := -0.5
	err = rec.SetPlayerStats("U1", "One", "2025-08", &kd, nil)
	assert.True(t, recorder.IsValidation(err))

	acs := -10
	err = rec.SetPlayerStats("U1", "One", "2025-08", nil, &acs)
	assert.True(t, recorder.IsValidation(err))

	assert.Empty(t, store.SetAuxiliaryStatsCalls)
}
