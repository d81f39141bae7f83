package league

import (
	"database/sql"
	"errors"
	"regexp"
	"sync"
	"time"
)

// store handles all database operations for the league.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// TeamSide identifies one of the two sides of a scrim.
type TeamSide string

const (
	TeamA TeamSide = "A"
	TeamB TeamSide = "B"
)

var (
	// ErrNoMatches is returned when an undo is requested but no match exists.
	ErrNoMatches = errors.New("no matches recorded")
	// ErrPlayerNotFound is returned when a profile is requested for an unknown player.
	ErrPlayerNotFound = errors.New("player not found")
)

// Player is a community member, keyed by their Slack user id.
type Player struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
}

// Match is one recorded 5v5 scrim. Immutable once created except for full
// deletion via undo.
type Match struct {
	ID        string   `json:"id"`
	Winner    TeamSide `json:"winner"`
	Month     string   `json:"month"`
	Score     string   `json:"score,omitempty"`
	CreatedAt int64    `json:"created_at"`
	Entries   []Entry  `json:"entries,omitempty"`
}

// Entry joins a match to a participant with their side.
type Entry struct {
	MatchID  string   `json:"match_id"`
	PlayerID string   `json:"player_id"`
	Team     TeamSide `json:"team"`
	IsWin    bool     `json:"is_win"`
}

// MonthlyStat is the running per-player, per-month tally. Wins and losses
// already incorporate recorded matches and baseline corrections. KD and ACS
// are manually set and may be absent.
type MonthlyStat struct {
	PlayerID string   `json:"player_id"`
	Nickname string   `json:"nickname"`
	Month    string   `json:"month"`
	Wins     int      `json:"wins"`
	Losses   int      `json:"losses"`
	KD       *float64 `json:"kd,omitempty"`
	ACS      *int     `json:"acs,omitempty"`
}

var monthRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// ValidMonth reports whether s is a YYYY-MM month label.
func ValidMonth(s string) bool {
	return monthRe.MatchString(s)
}

// CurrentMonth returns the YYYY-MM label for the given instant in UTC.
func CurrentMonth(t time.Time) string {
	return t.UTC().Format("2006-01")
}
