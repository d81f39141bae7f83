package http

import (
	"net/http"

	"github.com/yoonsp/scrimbot/internal/config"
	"github.com/yoonsp/scrimbot/internal/league"
	"github.com/yoonsp/scrimbot/internal/metrics"
	"github.com/yoonsp/scrimbot/internal/notifier"
	"github.com/yoonsp/scrimbot/internal/recorder"
)

func NewServer(store league.LeagueStore, rec *recorder.Recorder, metricsSvc metrics.Metrics, metricsStore metrics.MetricsStore, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier) *Server {
	server := &Server{
		Store:          store,
		Recorder:       rec,
		Metrics:        metricsSvc,
		MetricsStore:   metricsStore,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// Slash command routes additionally verify the Slack signing secret and
	// record per-command usage.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/players", Chain(s.ListPlayersHandler(), paramsMiddleware))
	s.Router.Handle("/matches", Chain(s.ListMatchesHandler(), paramsMiddleware))
	s.Router.Handle("/stats", Chain(s.MonthlyStatsHandler(), paramsMiddleware))
	s.Router.Handle("/command-usage", Chain(s.CommandUsageHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware))
	s.Router.Handle("/notify-leaderboard", Chain(s.NotifyLeaderboardHandler(), paramsMiddleware))

	slash := func(name string, h http.Handler) http.Handler {
		return Chain(h, paramsMiddleware, slackAuthMiddleware(s.Cfg.Slack.SigningSecret), s.commandUsageMiddleware(name))
	}
	s.Router.Handle("/slack/command/match", slash("match", s.MatchResultCommandHandler()))
	s.Router.Handle("/slack/command/profile", slash("profile", s.ProfileCommandHandler()))
	s.Router.Handle("/slack/command/leaderboard", slash("leaderboard", s.LeaderboardCommandHandler()))
	s.Router.Handle("/slack/command/undo", slash("undo", s.UndoCommandHandler()))
	s.Router.Handle("/slack/command/backfill", slash("backfill", s.BackfillCommandHandler()))
	s.Router.Handle("/slack/command/statset", slash("statset", s.StatSetCommandHandler()))
	s.Router.Handle("/slack/command/allstats", slash("allstats", s.AllStatsCommandHandler()))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
