package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/yoonsp/scrimbot/internal/league"
	"github.com/yoonsp/scrimbot/internal/ranking"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func respondJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("Failed to encode JSON response", "error", err)
	}
}

// monthOrCurrent returns the 'month' query parameter, defaulting to the
// current calendar month.
func monthOrCurrent(r *http.Request) string {
	if month := r.URL.Query().Get("month"); month != "" {
		return month
	}
	return league.CurrentMonth(time.Now())
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Store.GetAllPlayers()
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			return
		}
		respondJSON(w, players)
	}
}

func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := s.Store.GetAllMatches()
		if err != nil {
			http.Error(w, "Failed to get matches", http.StatusInternalServerError)
			return
		}
		respondJSON(w, matches)
	}
}

func (s *Server) MonthlyStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		month := monthOrCurrent(r)
		if !league.ValidMonth(month) {
			http.Error(w, "month must be YYYY-MM", http.StatusBadRequest)
			return
		}
		stats, err := s.Store.GetMonthlyStats(month)
		if err != nil {
			http.Error(w, "Failed to get monthly stats", http.StatusInternalServerError)
			return
		}
		respondJSON(w, stats)
	}
}

func (s *Server) CommandUsageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		usage, err := s.MetricsStore.GetAll()
		if err != nil {
			http.Error(w, "Failed to get command usage", http.StatusInternalServerError)
			return
		}
		respondJSON(w, usage)
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to clear entire store")
		s.Store.Clear()
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Store cleared!")
	}
}

// NotifyLeaderboardHandler posts the month's leaderboard to the configured
// Slack channel. Used for scheduled monthly announcements.
func (s *Server) NotifyLeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		month := monthOrCurrent(r)
		if !league.ValidMonth(month) {
			http.Error(w, "month must be YYYY-MM", http.StatusBadRequest)
			return
		}
		stats, err := s.Store.GetMonthlyStats(month)
		if err != nil {
			http.Error(w, "Failed to get monthly stats", http.StatusInternalServerError)
			return
		}
		rows := ranking.Leaderboard(stats)
		if err := s.Notifier.SendLeaderboard(month, rows, isDryRunFromContext(r)); err != nil {
			http.Error(w, "Failed to send leaderboard", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "Leaderboard for %s sent!", month)
	}
}
