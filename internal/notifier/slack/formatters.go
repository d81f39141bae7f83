package slack

import (
	"fmt"
	"strings"

	"github.com/slack-go/slack"
	"github.com/yoonsp/scrimbot/internal/league"
	"github.com/yoonsp/scrimbot/internal/ranking"
)

func mention(playerID string) string {
	return fmt.Sprintf("<@%s>", playerID)
}

func mrkdwnSection(text string) *slack.SectionBlock {
	return slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, text, false, false), nil, nil)
}

func formatRecordLine(stat league.MonthlyStat) string {
	return fmt.Sprintf("*%d승 %d패* (승률 *%s*)", stat.Wins, stat.Losses, ranking.FormatWinRate(ranking.WinRate(stat.Wins, stat.Losses)))
}

// formatMatchRecorded creates the public confirmation for a recorded match.
func (s *Notifier) formatMatchRecorded(match *league.Match) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject(slack.PlainTextType, "✅ 경기 기록 완료", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	details := fmt.Sprintf("월: *%s* / 승팀: *%s*", match.Month, match.Winner)
	if match.Score != "" {
		details += fmt.Sprintf(" / 스코어: *%s*", match.Score)
	}
	blocks = append(blocks, mrkdwnSection(details))

	var teamA, teamB []string
	for _, e := range match.Entries {
		if e.Team == league.TeamA {
			teamA = append(teamA, mention(e.PlayerID))
		} else {
			teamB = append(teamB, mention(e.PlayerID))
		}
	}
	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject(slack.MarkdownType, "*팀 A*\n"+strings.Join(teamA, " "), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, "*팀 B*\n"+strings.Join(teamB, " "), false, false),
	}
	blocks = append(blocks, slack.NewSectionBlock(nil, fields, nil))

	msg := slack.NewBlockMessage(blocks...)
	msg.ResponseType = slack.ResponseTypeInChannel
	return msg
}

// formatProfile creates a player's monthly record line.
func (s *Notifier) formatProfile(stat *league.MonthlyStat) slack.Message {
	blocks := make([]slack.Block, 0)

	line := fmt.Sprintf("📊 [%s] %s — %s", stat.Month, mention(stat.PlayerID), formatRecordLine(*stat))
	blocks = append(blocks, mrkdwnSection(line))

	if stat.KD != nil || stat.ACS != nil {
		aux := fmt.Sprintf("KD %s | ACS %s", ranking.FormatKD(stat.KD), ranking.FormatACS(stat.ACS))
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject(slack.PlainTextType, aux, false, false)))
	}

	msg := slack.NewBlockMessage(blocks...)
	msg.ResponseType = slack.ResponseTypeInChannel
	return msg
}

// formatLeaderboard creates the monthly leaderboard message.
func (s *Notifier) formatLeaderboard(month string, rows []ranking.Row) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject(slack.PlainTextType, fmt.Sprintf("🏆 Leaderboard — %s", month), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(rows) == 0 {
		blocks = append(blocks, mrkdwnSection(fmt.Sprintf("🏷️ [%s] 랭킹에 표시할 전적이 부족합니다.", month)))
		msg := slack.NewBlockMessage(blocks...)
		msg.ResponseType = slack.ResponseTypeInChannel
		return msg
	}

	var lines []string
	for _, row := range rows {
		line := fmt.Sprintf("*%d.* %s — %d승 / %d전 (승률 %s)",
			row.Rank, mention(row.Stat.PlayerID), row.Stat.Wins, row.Total, ranking.FormatWinRate(row.WinRate))
		if row.Stat.KD != nil || row.Stat.ACS != nil {
			line += fmt.Sprintf(" | KD %s | ACS %s", ranking.FormatKD(row.Stat.KD), ranking.FormatACS(row.Stat.ACS))
		}
		lines = append(lines, line)
	}
	blocks = append(blocks, mrkdwnSection(strings.Join(lines, "\n")))

	msg := slack.NewBlockMessage(blocks...)
	msg.ResponseType = slack.ResponseTypeInChannel
	return msg
}

// formatAllStats creates one page of the all-stats view, games ascending.
func (s *Notifier) formatAllStats(month string, page ranking.Page) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject(slack.PlainTextType, fmt.Sprintf("📒 All Stats — %s (판수 오름차순)", month), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(page.Rows) == 0 {
		blocks = append(blocks, mrkdwnSection("표시할 데이터가 없습니다."))
	} else {
		var lines []string
		for _, row := range page.Rows {
			lines = append(lines, fmt.Sprintf("*%d.* %s — %d승 / %d전 (승률 %s)",
				row.Rank, mention(row.Stat.PlayerID), row.Stat.Wins, row.Total, ranking.FormatWinRate(row.WinRate)))
		}
		blocks = append(blocks, mrkdwnSection(strings.Join(lines, "\n")))
	}

	footer := fmt.Sprintf("페이지 %d/%d (총 %d명, 페이지당 %d)", page.Page, page.TotalPages, page.TotalPlayers, ranking.PageSize)
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject(slack.PlainTextType, footer, false, false)))

	msg := slack.NewBlockMessage(blocks...)
	msg.ResponseType = slack.ResponseTypeInChannel
	return msg
}

// formatUndo confirms the reversal of the most recent match.
func (s *Notifier) formatUndo(match *league.Match) slack.Message {
	blocks := make([]slack.Block, 0)
	blocks = append(blocks, mrkdwnSection("↩️ 마지막 경기 기록을 삭제했습니다."))

	detail := fmt.Sprintf("월 %s / 승팀 %s", match.Month, match.Winner)
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject(slack.PlainTextType, detail, false, false)))

	msg := slack.NewBlockMessage(blocks...)
	msg.ResponseType = slack.ResponseTypeInChannel
	return msg
}

// formatBackfill confirms a saved monthly baseline.
func (s *Notifier) formatBackfill(month, playerID string, wins, losses int) slack.Message {
	line := fmt.Sprintf("🧾 [%s] %s 기준치 저장 — *%d승 %d패*", month, mention(playerID), wins, losses)
	msg := slack.NewBlockMessage(mrkdwnSection(line))
	msg.ResponseType = slack.ResponseTypeInChannel
	return msg
}

// formatStatSet confirms manually-set KD/ACS values.
func (s *Notifier) formatStatSet(month, playerID string, kd *float64, acs *int) slack.Message {
	line := fmt.Sprintf("📈 [%s] %s 지표 저장 — KD %s / ACS %s",
		month, mention(playerID), ranking.FormatKD(kd), ranking.FormatACS(acs))
	msg := slack.NewBlockMessage(mrkdwnSection(line))
	msg.ResponseType = slack.ResponseTypeInChannel
	return msg
}
