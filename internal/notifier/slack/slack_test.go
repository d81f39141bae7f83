package slack

import (
	"context"
	"errors"
	"testing"

	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoonsp/scrimbot/internal/league"
	"github.com/yoonsp/scrimbot/internal/metrics"
	"github.com/yoonsp/scrimbot/internal/ranking"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

// sectionTexts flattens a message's section block texts for content assertions.
func sectionTexts(msg slackapi.Message) []string {
	var texts []string
	for _, block := range msg.Blocks.BlockSet {
		if section, ok := block.(*slackapi.SectionBlock); ok && section.Text != nil {
			texts = append(texts, section.Text.Text)
		}
	}
	return texts
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(message, true)
	require.NoError(t, err)
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, _, err := notifier.sendMessage(message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.SlackNotifSentCount)
	assert.Equal(t, 0, metrics.SlackNotifFailedCount)
}

func TestSendMessage_Failure(t *testing.T) {
	postMessageCalled := false
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(message, false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 0, metrics.SlackNotifSentCount)
	assert.Equal(t, 1, metrics.SlackNotifFailedCount)
}

func TestSendLeaderboard_CallsSender(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	rows := []ranking.Row{
		{Rank: 1, Stat: league.MonthlyStat{PlayerID: "U1", Wins: 6, Losses: 2}, Total: 8, WinRate: 75.0},
	}
	err := notifier.SendLeaderboard("2025-08", rows, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
}

func TestFormatMatchRecorded(t *testing.T) {
	notifier := NewNotifierWithAPI(nil, "C123", metrics.NewMock())

	match := &league.Match{
		ID:     "m1",
		Winner: league.TeamA,
		Month:  "2025-08",
		Score:  "13-7",
		Entries: []league.Entry{
			{PlayerID: "UA001", Team: league.TeamA, IsWin: true},
			{PlayerID: "UB001", Team: league.TeamB, IsWin: false},
		},
	}

	msg := notifier.formatMatchRecorded(match)
	assert.Equal(t, slackapi.ResponseTypeInChannel, msg.ResponseType)

	texts := sectionTexts(msg)
	require.NotEmpty(t, texts)
	assert.Contains(t, texts[0], "월: *2025-08*")
	assert.Contains(t, texts[0], "승팀: *A*")
	assert.Contains(t, texts[0], "스코어: *13-7*")
}

func TestFormatProfile(t *testing.T) {
	notifier := NewNotifierWithAPI(nil, "C123", metrics.NewMock())

	kd := 1.25
	stat := &league.MonthlyStat{PlayerID: "U1", Month: "2025-08", Wins: 1, Losses: 0, KD: &kd}
	msg := notifier.formatProfile(stat)

	texts := sectionTexts(msg)
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "📊 [2025-08] <@U1>")
	assert.Contains(t, texts[0], "*1승 0패*")
	assert.Contains(t, texts[0], "승률 *100.0%*")
}

func TestFormatLeaderboard_Empty(t *testing.T) {
	notifier := NewNotifierWithAPI(nil, "C123", metrics.NewMock())

	msg := notifier.formatLeaderboard("2025-08", nil)
	assert.Equal(t, slackapi.ResponseTypeInChannel, msg.ResponseType)

	texts := sectionTexts(msg)
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "랭킹에 표시할 전적이 부족합니다")
}

func TestFormatLeaderboard_Rows(t *testing.T) {
	notifier := NewNotifierWithAPI(nil, "C123", metrics.NewMock())

	rows := []ranking.Row{
		{Rank: 1, Stat: league.MonthlyStat{PlayerID: "U1", Wins: 6, Losses: 2}, Total: 8, WinRate: 75.0},
		{Rank: 2, Stat: league.MonthlyStat{PlayerID: "U2", Wins: 3, Losses: 3}, Total: 6, WinRate: 50.0},
	}
	msg := notifier.formatLeaderboard("2025-08", rows)

	texts := sectionTexts(msg)
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "*1.* <@U1> — 6승 / 8전 (승률 75.0%)")
	assert.Contains(t, texts[0], "*2.* <@U2> — 3승 / 6전 (승률 50.0%)")
}

func TestFormatAllStats_Footer(t *testing.T) {
	notifier := NewNotifierWithAPI(nil, "C123", metrics.NewMock())

	page := ranking.Page{
		Rows:         []ranking.Row{{Rank: 21, Stat: league.MonthlyStat{PlayerID: "U1", Wins: 2, Losses: 1}, Total: 3, WinRate: 66.7}},
		Page:         2,
		TotalPages:   3,
		TotalPlayers: 45,
	}
	msg := notifier.formatAllStats("2025-08", page)

	var footer string
	for _, block := range msg.Blocks.BlockSet {
		if ctx, ok := block.(*slackapi.ContextBlock); ok {
			for _, el := range ctx.ContextElements.Elements {
				if text, ok := el.(*slackapi.TextBlockObject); ok {
					footer = text.Text
				}
			}
		}
	}
	assert.Equal(t, "페이지 2/3 (총 45명, 페이지당 20)", footer)
}

func TestFormatErrorResponse_IsEphemeral(t *testing.T) {
	notifier := NewNotifierWithAPI(nil, "C123", metrics.NewMock())

	raw, err := notifier.FormatErrorResponse("⚠️ 에러가 발생했습니다.")
	require.NoError(t, err)

	msg, ok := raw.(slackapi.Message)
	require.True(t, ok)
	assert.Equal(t, slackapi.ResponseTypeEphemeral, msg.ResponseType)
	assert.Equal(t, "⚠️ 에러가 발생했습니다.", msg.Text)
}
