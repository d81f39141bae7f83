package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"
	"github.com/yoonsp/scrimbot/internal/league"
	"github.com/yoonsp/scrimbot/internal/ranking"
	"github.com/yoonsp/scrimbot/internal/recorder"
)

// mentionRe matches Slack escaped mentions, e.g. <@U123ABC> or <@U123ABC|nick>.
var mentionRe = regexp.MustCompile(`<@([A-Z0-9]+)(?:\|([^>]*))?>`)

const genericErrorMsg = "⚠️ 에러가 발생했습니다."

// respondSlack writes a Block Kit message (or any slack response payload) back
// to Slack as the immediate slash command response.
func respondSlack(w http.ResponseWriter, msg any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slash command response", "error", err)
	}
}

// respondError replies with an ephemeral message so only the invoking user
// sees the failure.
func (s *Server) respondError(w http.ResponseWriter, text string) {
	msg, err := s.Notifier.FormatErrorResponse(text)
	if err != nil {
		log.Error("Failed to format error response", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	respondSlack(w, msg)
}

// parseSlashCommand parses the verified form payload of a slash command.
func parseSlashCommand(r *http.Request) (slack.SlashCommand, error) {
	cmd, err := slack.SlashCommandParse(r)
	if err != nil {
		log.Error("Failed to parse slash command payload", "error", err)
	}
	return cmd, err
}

// parseMentions extracts all mentioned players from a command text, in order.
func parseMentions(text string) []league.Player {
	var players []league.Player
	for _, m := range mentionRe.FindAllStringSubmatch(text, -1) {
		players = append(players, league.Player{ID: m[1], Nickname: m[2]})
	}
	return players
}

// stripMentions removes every mention token so the remaining tokens can be
// parsed positionally.
func stripMentions(text string) string {
	return mentionRe.ReplaceAllString(text, " ")
}

func (s *Server) MatchResultCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd, err := parseSlashCommand(r)
		if err != nil {
			s.respondError(w, genericErrorMsg)
			return
		}

		if allowed := s.Cfg.Slack.AllowedChannelID; allowed != "" && cmd.ChannelID != allowed {
			s.respondError(w, "⚠️ 이 명령은 지정된 채널에서만 사용할 수 있습니다.")
			return
		}

		in := recorder.RecordInput{}
		var winnerSet bool
		for _, tok := range strings.Fields(stripMentions(cmd.Text)) {
			switch {
			case strings.HasPrefix(tok, "score:"):
				in.Score = strings.TrimPrefix(tok, "score:")
			case strings.HasPrefix(tok, "month:"):
				in.Month = strings.TrimPrefix(tok, "month:")
			case !winnerSet:
				in.Winner = league.TeamSide(strings.ToUpper(tok))
				winnerSet = true
			}
		}
		if !winnerSet || (in.Winner != league.TeamA && in.Winner != league.TeamB) {
			s.respondError(w, "⚠️ 승리 팀(A 또는 B)을 먼저 입력해 주세요. 예: A @p1 ... @p10")
			return
		}
		if in.Month != "" && !league.ValidMonth(in.Month) {
			s.respondError(w, "⚠️ month 형식은 YYYY-MM 이어야 합니다. 예: 2025-09")
			return
		}

		players := parseMentions(cmd.Text)
		if len(players) != 10 {
			s.respondError(w, "⚠️ 같은 사람이 중복되었거나 10명이 아닙니다.")
			return
		}
		in.TeamA = players[:5]
		in.TeamB = players[5:]

		match, err := s.Recorder.RecordMatch(in)
		switch {
		case errors.Is(err, recorder.ErrDuplicateMatch):
			s.respondError(w, fmt.Sprintf("⚠️ 같은 10인 구성의 경기가 최근 %d분 내에 이미 기록되었습니다.", s.Cfg.DuplicateWindowMinutes))
			return
		case recorder.IsValidation(err):
			s.respondError(w, "⚠️ 같은 사람이 중복되었거나 10명이 아닙니다.")
			return
		case err != nil:
			log.Error("Failed to record match", "error", err)
			s.respondError(w, genericErrorMsg)
			return
		}

		msg, err := s.Notifier.FormatMatchRecordedResponse(match)
		if err != nil {
			s.respondError(w, genericErrorMsg)
			return
		}
		respondSlack(w, msg)
	}
}

func (s *Server) ProfileCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd, err := parseSlashCommand(r)
		if err != nil {
			s.respondError(w, genericErrorMsg)
			return
		}

		// Default to the invoking user's own profile.
		target := cmd.UserID
		if mentions := parseMentions(cmd.Text); len(mentions) > 0 {
			target = mentions[0].ID
		}

		month := league.CurrentMonth(time.Now())
		for _, tok := range strings.Fields(stripMentions(cmd.Text)) {
			tok = strings.TrimPrefix(tok, "month:")
			if league.ValidMonth(tok) {
				month = tok
			}
		}

		stat, err := s.Store.GetPlayerMonthlyStat(target, month)
		if errors.Is(err, league.ErrPlayerNotFound) {
			s.respondError(w, fmt.Sprintf("📄 <@%s> 전적 없음", target))
			return
		}
		if err != nil {
			log.Error("Failed to get player stat", "error", err, "playerID", target)
			s.respondError(w, genericErrorMsg)
			return
		}

		msg, err := s.Notifier.FormatProfileResponse(stat)
		if err != nil {
			s.respondError(w, genericErrorMsg)
			return
		}
		respondSlack(w, msg)
	}
}

func (s *Server) LeaderboardCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd, err := parseSlashCommand(r)
		if err != nil {
			s.respondError(w, genericErrorMsg)
			return
		}

		month := league.CurrentMonth(time.Now())
		for _, tok := range strings.Fields(cmd.Text) {
			tok = strings.TrimPrefix(tok, "month:")
			if league.ValidMonth(tok) {
				month = tok
			}
		}

		stats, err := s.Store.GetMonthlyStats(month)
		if err != nil {
			log.Error("Failed to get monthly stats", "error", err, "month", month)
			s.respondError(w, genericErrorMsg)
			return
		}

		msg, err := s.Notifier.FormatLeaderboardResponse(month, ranking.Leaderboard(stats))
		if err != nil {
			s.respondError(w, genericErrorMsg)
			return
		}
		respondSlack(w, msg)
	}
}

func (s *Server) UndoCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := parseSlashCommand(r); err != nil {
			s.respondError(w, genericErrorMsg)
			return
		}

		match, err := s.Recorder.UndoLast()
		if errors.Is(err, league.ErrNoMatches) {
			s.respondError(w, "되돌릴 경기 없음.")
			return
		}
		if err != nil {
			log.Error("Failed to undo last match", "error", err)
			s.respondError(w, genericErrorMsg)
			return
		}

		msg, err := s.Notifier.FormatUndoResponse(match)
		if err != nil {
			s.respondError(w, genericErrorMsg)
			return
		}
		respondSlack(w, msg)
	}
}

func (s *Server) BackfillCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd, err := parseSlashCommand(r)
		if err != nil {
			s.respondError(w, genericErrorMsg)
			return
		}
		if !s.Cfg.Slack.IsAdmin(cmd.UserID) {
			s.respondError(w, "⚠️ 이 명령을 사용할 권한이 없습니다.")
			return
		}

		mentions := parseMentions(cmd.Text)
		rest := strings.Fields(stripMentions(cmd.Text))
		if len(mentions) != 1 || len(rest) != 3 {
			s.respondError(w, "⚠️ 사용법: @플레이어 YYYY-MM wins losses")
			return
		}
		month := rest[0]
		if !league.ValidMonth(month) {
			s.respondError(w, "⚠️ month 형식은 YYYY-MM 이어야 합니다. 예: 2025-09")
			return
		}
		wins, errW := strconv.Atoi(rest[1])
		losses, errL := strconv.Atoi(rest[2])
		if errW != nil || errL != nil || wins < 0 || losses < 0 {
			s.respondError(w, "⚠️ wins/losses는 0 이상이어야 합니다.")
			return
		}

		player := mentions[0]
		prevWins, prevLosses, err := s.Recorder.Backfill(player.ID, player.Nickname, month, wins, losses)
		if err != nil {
			log.Error("Failed to backfill baseline", "error", err, "playerID", player.ID)
			s.respondError(w, genericErrorMsg)
			return
		}
		log.Info("Baseline overwritten", "playerID", player.ID, "month", month,
			"prevWins", prevWins, "prevLosses", prevLosses, "wins", wins, "losses", losses)

		msg, err := s.Notifier.FormatBackfillResponse(month, player.ID, wins, losses)
		if err != nil {
			s.respondError(w, genericErrorMsg)
			return
		}
		respondSlack(w, msg)
	}
}

func (s *Server) StatSetCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd, err := parseSlashCommand(r)
		if err != nil {
			s.respondError(w, genericErrorMsg)
			return
		}
		if !s.Cfg.Slack.IsAdmin(cmd.UserID) {
			s.respondError(w, "⚠️ 이 명령을 사용할 권한이 없습니다.")
			return
		}

		mentions := parseMentions(cmd.Text)
		if len(mentions) != 1 {
			s.respondError(w, "⚠️ 사용법: @플레이어 [YYYY-MM] kd:1.25 acs:230")
			return
		}

		month := ""
		var kd *float64
		var acs *int
		for _, tok := range strings.Fields(stripMentions(cmd.Text)) {
			switch {
			case strings.HasPrefix(tok, "kd:"):
				v, err := strconv.ParseFloat(strings.TrimPrefix(tok, "kd:"), 64)
				if err != nil || v < 0 {
					s.respondError(w, "⚠️ kd/acs는 0 이상이어야 합니다.")
					return
				}
				kd = &v
			case strings.HasPrefix(tok, "acs:"):
				v, err := strconv.Atoi(strings.TrimPrefix(tok, "acs:"))
				if err != nil || v < 0 {
					s.respondError(w, "⚠️ kd/acs는 0 이상이어야 합니다.")
					return
				}
				acs = &v
			case league.ValidMonth(strings.TrimPrefix(tok, "month:")):
				month = strings.TrimPrefix(tok, "month:")
			}
		}
		if kd == nil && acs == nil {
			s.respondError(w, "⚠️ kd: 또는 acs: 값을 하나 이상 입력해 주세요.")
			return
		}
		if month == "" {
			month = league.CurrentMonth(time.Now())
		}

		player := mentions[0]
		if err := s.Recorder.SetPlayerStats(player.ID, player.Nickname, month, kd, acs); err != nil {
			log.Error("Failed to set player stats", "error", err, "playerID", player.ID)
			s.respondError(w, genericErrorMsg)
			return
		}

		msg, err := s.Notifier.FormatStatSetResponse(month, player.ID, kd, acs)
		if err != nil {
			s.respondError(w, genericErrorMsg)
			return
		}
		respondSlack(w, msg)
	}
}

func (s *Server) AllStatsCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd, err := parseSlashCommand(r)
		if err != nil {
			s.respondError(w, genericErrorMsg)
			return
		}

		month := league.CurrentMonth(time.Now())
		page := 1
		for _, tok := range strings.Fields(cmd.Text) {
			tok = strings.TrimPrefix(tok, "month:")
			if league.ValidMonth(tok) {
				month = tok
				continue
			}
			if n, err := strconv.Atoi(tok); err == nil {
				if n < 1 {
					s.respondError(w, "페이지는 1 이상이어야 합니다.")
					return
				}
				page = n
			}
		}

		stats, err := s.Store.GetMonthlyStats(month)
		if err != nil {
			log.Error("Failed to get monthly stats", "error", err, "month", month)
			s.respondError(w, genericErrorMsg)
			return
		}

		msg, err := s.Notifier.FormatAllStatsResponse(month, ranking.AllStats(stats, page))
		if err != nil {
			s.respondError(w, genericErrorMsg)
			return
		}
		respondSlack(w, msg)
	}
}
