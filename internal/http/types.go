package http

import (
	"net/http"

	"github.com/yoonsp/scrimbot/internal/config"
	"github.com/yoonsp/scrimbot/internal/league"
	"github.com/yoonsp/scrimbot/internal/metrics"
	"github.com/yoonsp/scrimbot/internal/notifier"
	"github.com/yoonsp/scrimbot/internal/recorder"
)

type Server struct {
	Store          league.LeagueStore
	Recorder       *recorder.Recorder
	Metrics        metrics.Metrics
	MetricsStore   metrics.MetricsStore
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Router         *http.ServeMux
}
