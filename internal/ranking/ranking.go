// Package ranking computes the sorted, filtered, paginated views served by
// the bot's reporting commands. It is pure: callers load the monthly tallies
// and feed them in.
package ranking

import (
	"fmt"
	"math"
	"sort"

	"github.com/yoonsp/scrimbot/internal/league"
)

const (
	// MinLeaderboardGames is the minimum number of games a player needs for
	// the month to appear on the leaderboard.
	MinLeaderboardGames = 5
	// LeaderboardSize is the number of players shown on the leaderboard.
	LeaderboardSize = 10
	// PageSize is the fixed page size of the all-stats view.
	PageSize = 20
)

// Row is one player's computed line in a reporting view.
type Row struct {
	Rank    int
	Stat    league.MonthlyStat
	Total   int
	WinRate float64
}

// Page is one page of the all-stats view.
type Page struct {
	Rows         []Row
	Page         int
	TotalPages   int
	TotalPlayers int
}

// WinRate returns the win percentage rounded to one decimal place, or 0 when
// no games were played.
func WinRate(wins, losses int) float64 {
	total := wins + losses
	if total == 0 {
		return 0
	}
	return math.Round(float64(wins)/float64(total)*1000) / 10
}

// Leaderboard filters out players with fewer than MinLeaderboardGames games,
// sorts by win rate then win count (both descending) and keeps the top ten.
func Leaderboard(stats []league.MonthlyStat) []Row {
	var rows []Row
	for _, stat := range stats {
		total := stat.Wins + stat.Losses
		if total < MinLeaderboardGames {
			continue
		}
		rows = append(rows, Row{
			Stat:    stat,
			Total:   total,
			WinRate: WinRate(stat.Wins, stat.Losses),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].WinRate != rows[j].WinRate {
			return rows[i].WinRate > rows[j].WinRate
		}
		return rows[i].Stat.Wins > rows[j].Stat.Wins
	})

	if len(rows) > LeaderboardSize {
		rows = rows[:LeaderboardSize]
	}
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

// AllStats includes every player ever seen (zero-game players as 0/0), sorted
// ascending by total games so under-tracked players surface first, tie-broken
// by wins then win rate (both descending). The requested page clamps to
// [1, totalPages].
func AllStats(stats []league.MonthlyStat, page int) Page {
	rows := make([]Row, 0, len(stats))
	for _, stat := range stats {
		rows = append(rows, Row{
			Stat:    stat,
			Total:   stat.Wins + stat.Losses,
			WinRate: WinRate(stat.Wins, stat.Losses),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Total != rows[j].Total {
			return rows[i].Total < rows[j].Total
		}
		if rows[i].Stat.Wins != rows[j].Stat.Wins {
			return rows[i].Stat.Wins > rows[j].Stat.Wins
		}
		return rows[i].WinRate > rows[j].WinRate
	})

	totalPages := (len(rows) + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > len(rows) {
		start = len(rows)
	}
	if end > len(rows) {
		end = len(rows)
	}

	pageRows := rows[start:end]
	for i := range pageRows {
		pageRows[i].Rank = start + i + 1
	}

	return Page{
		Rows:         pageRows,
		Page:         page,
		TotalPages:   totalPages,
		TotalPlayers: len(rows),
	}
}

// FormatWinRate renders a win rate with exactly one decimal digit.
func FormatWinRate(winRate float64) string {
	return fmt.Sprintf("%.1f%%", winRate)
}

// FormatKD renders a KD with two decimals, or a placeholder when unset.
func FormatKD(kd *float64) string {
	if kd == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *kd)
}

// FormatACS renders an ACS as a bare integer, or a placeholder when unset.
func FormatACS(acs *int) string {
	if acs == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *acs)
}
