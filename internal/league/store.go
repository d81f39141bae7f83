package league

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// New creates a new LeagueStore.
func New(db *sql.DB) LeagueStore {
	return &store{
		db: db,
	}
}

// CompositionKey returns the sorted, comma-joined set of participant ids.
// Two matches with the same key involve exactly the same ten players.
func CompositionKey(playerIDs []string) string {
	ids := make([]string, len(playerIDs))
	copy(ids, playerIDs)
	sort.Strings(ids)
	return strings.Join(ids, ",")
}

// upsertPlayerTx creates the player if unknown and refreshes their nickname
// on every touch.
func upsertPlayerTx(tx *sql.Tx, playerID, nickname string) error {
	_, err := tx.Exec(`
		INSERT INTO players (id, nickname) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET
			nickname = CASE WHEN excluded.nickname != '' THEN excluded.nickname ELSE nickname END;
	`, playerID, nickname)
	return err
}

// applyStatDeltaTx adds the signed deltas to the running tally for
// (player, month), creating the row if absent. Wins and losses are each
// clamped at zero, an underflowing delta truncates silently.
func applyStatDeltaTx(tx *sql.Tx, playerID, month string, deltaWins, deltaLosses int) error {
	var wins, losses int
	err := tx.QueryRow(
		"SELECT wins, losses FROM monthly_stats WHERE player_id = ? AND month = ?",
		playerID, month,
	).Scan(&wins, &losses)
	switch err {
	case nil:
		wins = clampZero(wins + deltaWins)
		losses = clampZero(losses + deltaLosses)
		_, err = tx.Exec(
			"UPDATE monthly_stats SET wins = ?, losses = ? WHERE player_id = ? AND month = ?",
			wins, losses, playerID, month,
		)
		return err
	case sql.ErrNoRows:
		_, err = tx.Exec(
			"INSERT INTO monthly_stats (player_id, month, wins, losses) VALUES (?, ?, ?, ?)",
			playerID, month, clampZero(deltaWins), clampZero(deltaLosses),
		)
		return err
	default:
		return err
	}
}

func clampZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func (s *store) UpsertPlayer(playerID, nickname string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if err := upsertPlayerTx(tx, playerID, nickname); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *store) IsKnownPlayer(playerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM players WHERE id = ?)", playerID).Scan(&exists)
	if err != nil {
		log.Error("Failed to check if player exists", "error", err, "playerID", playerID)
		return false
	}
	return exists
}

func (s *store) GetAllPlayers() ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, nickname FROM players ORDER BY nickname")
	if err != nil {
		log.Error("Failed to query all players", "error", err)
		return nil, err
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		var p Player
		var nickname sql.NullString
		if err := rows.Scan(&p.ID, &nickname); err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		p.Nickname = nickname.String
		players = append(players, p)
	}
	return players, nil
}

// CreateMatch persists a match, its ten entries and the per-participant
// aggregate deltas in a single transaction.
func (s *store) CreateMatch(winner TeamSide, month, score string, teamA, teamB []Player) (*Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}

	match := &Match{
		ID:        uuid.NewString(),
		Winner:    winner,
		Month:     month,
		Score:     score,
		CreatedAt: time.Now().UTC().Unix(),
	}

	var scoreVal any
	if score != "" {
		scoreVal = score
	}
	_, err = tx.Exec(
		"INSERT INTO matches (id, winner, month, score, created_at) VALUES (?, ?, ?, ?, ?)",
		match.ID, string(winner), month, scoreVal, match.CreatedAt,
	)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to insert match: %w", err)
	}

	saveEntries := func(players []Player, team TeamSide) error {
		for _, p := range players {
			if err := upsertPlayerTx(tx, p.ID, p.Nickname); err != nil {
				return fmt.Errorf("failed to upsert player %s: %w", p.ID, err)
			}
			isWin := team == winner
			_, err := tx.Exec(
				"INSERT INTO entries (match_id, player_id, team, is_win) VALUES (?, ?, ?, ?)",
				match.ID, p.ID, string(team), isWin,
			)
			if err != nil {
				return fmt.Errorf("failed to insert entry for %s: %w", p.ID, err)
			}
			deltaWins, deltaLosses := 0, 1
			if isWin {
				deltaWins, deltaLosses = 1, 0
			}
			if err := applyStatDeltaTx(tx, p.ID, month, deltaWins, deltaLosses); err != nil {
				return fmt.Errorf("failed to apply stat delta for %s: %w", p.ID, err)
			}
			match.Entries = append(match.Entries, Entry{
				MatchID:  match.ID,
				PlayerID: p.ID,
				Team:     team,
				IsWin:    isWin,
			})
		}
		return nil
	}
	if err := saveEntries(teamA, TeamA); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := saveEntries(teamB, TeamB); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return match, nil
}

// CompositionRecordedSince reports whether any match created at or after
// `since` has the identical ten-player composition.
func (s *store) CompositionRecordedSince(compositionKey string, since time.Time) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT m.id, e.player_id
		FROM matches m
		JOIN entries e ON e.match_id = m.id
		WHERE m.created_at >= ?
	`, since.UTC().Unix())
	if err != nil {
		return false, err
	}
	defer rows.Close()

	byMatch := make(map[string][]string)
	for rows.Next() {
		var matchID, playerID string
		if err := rows.Scan(&matchID, &playerID); err != nil {
			return false, err
		}
		byMatch[matchID] = append(byMatch[matchID], playerID)
	}
	if err := rows.Err(); err != nil {
		return false, err
	}

	for _, ids := range byMatch {
		if CompositionKey(ids) == compositionKey {
			return true, nil
		}
	}
	return false, nil
}

// ReverseLastMatch undoes the single most recently recorded match: every
// entry's aggregate delta is inverted, then the match and its entries are
// deleted. Returns the reversed match.
func (s *store) ReverseLastMatch() (*Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}

	var match Match
	var score sql.NullString
	err = tx.QueryRow(`
		SELECT id, winner, month, score, created_at
		FROM matches ORDER BY created_at DESC, rowid DESC LIMIT 1
	`).Scan(&match.ID, &match.Winner, &match.Month, &score, &match.CreatedAt)
	if err == sql.ErrNoRows {
		tx.Rollback()
		return nil, ErrNoMatches
	}
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	match.Score = score.String

	rows, err := tx.Query("SELECT player_id, team, is_win FROM entries WHERE match_id = ?", match.ID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.PlayerID, &e.Team, &e.IsWin); err != nil {
			rows.Close()
			tx.Rollback()
			return nil, err
		}
		e.MatchID = match.ID
		match.Entries = append(match.Entries, e)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		tx.Rollback()
		return nil, err
	}
	rows.Close()

	for _, e := range match.Entries {
		deltaWins, deltaLosses := 0, -1
		if e.IsWin {
			deltaWins, deltaLosses = -1, 0
		}
		if err := applyStatDeltaTx(tx, e.PlayerID, match.Month, deltaWins, deltaLosses); err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to reverse stat delta for %s: %w", e.PlayerID, err)
		}
	}

	if _, err := tx.Exec("DELETE FROM entries WHERE match_id = ?", match.ID); err != nil {
		tx.Rollback()
		return nil, err
	}
	if _, err := tx.Exec("DELETE FROM matches WHERE id = ?", match.ID); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *store) GetAllMatches() ([]*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, winner, month, score, created_at FROM matches ORDER BY created_at DESC")
	if err != nil {
		log.Error("Failed to query all matches", "error", err)
		return nil, err
	}
	defer rows.Close()

	var matches []*Match
	for rows.Next() {
		var m Match
		var score sql.NullString
		if err := rows.Scan(&m.ID, &m.Winner, &m.Month, &score, &m.CreatedAt); err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		m.Score = score.String
		matches = append(matches, &m)
	}
	return matches, nil
}

func (s *store) ApplyStatDelta(playerID, month string, deltaWins, deltaLosses int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if err := applyStatDeltaTx(tx, playerID, month, deltaWins, deltaLosses); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// SetBaseline upserts the manual win/loss floor for (player, month) and
// retroactively applies the difference from the previous baseline to the
// running tally, so the tally never double-counts a stale baseline.
func (s *store) SetBaseline(playerID, nickname, month string, wins, losses int) (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, 0, err
	}
	if err := upsertPlayerTx(tx, playerID, nickname); err != nil {
		tx.Rollback()
		return 0, 0, err
	}

	var prevWins, prevLosses int
	err = tx.QueryRow(
		"SELECT wins, losses FROM monthly_baselines WHERE player_id = ? AND month = ?",
		playerID, month,
	).Scan(&prevWins, &prevLosses)
	if err != nil && err != sql.ErrNoRows {
		tx.Rollback()
		return 0, 0, err
	}

	_, err = tx.Exec(`
		INSERT INTO monthly_baselines (player_id, month, wins, losses) VALUES (?, ?, ?, ?)
		ON CONFLICT(player_id, month) DO UPDATE SET wins = excluded.wins, losses = excluded.losses;
	`, playerID, month, wins, losses)
	if err != nil {
		tx.Rollback()
		return 0, 0, err
	}

	if err := applyStatDeltaTx(tx, playerID, month, wins-prevWins, losses-prevLosses); err != nil {
		tx.Rollback()
		return 0, 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, err
	}
	return prevWins, prevLosses, nil
}

// SetAuxiliaryStats overwrites the manually-set KD and/or ACS fields without
// touching wins/losses, creating the tally row if it does not exist.
func (s *store) SetAuxiliaryStats(playerID, nickname, month string, kd *float64, acs *int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if err := upsertPlayerTx(tx, playerID, nickname); err != nil {
		tx.Rollback()
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO monthly_stats (player_id, month, wins, losses) VALUES (?, ?, 0, 0)
		ON CONFLICT(player_id, month) DO NOTHING;
	`, playerID, month)
	if err != nil {
		tx.Rollback()
		return err
	}

	if kd != nil {
		if _, err := tx.Exec(
			"UPDATE monthly_stats SET kd = ? WHERE player_id = ? AND month = ?",
			*kd, playerID, month,
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	if acs != nil {
		if _, err := tx.Exec(
			"UPDATE monthly_stats SET acs = ? WHERE player_id = ? AND month = ?",
			*acs, playerID, month,
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// GetMonthlyStats returns the tally for every player ever seen, including
// zero-game players as 0/0 rows.
func (s *store) GetMonthlyStats(month string) ([]MonthlyStat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT p.id, p.nickname, COALESCE(ms.wins, 0), COALESCE(ms.losses, 0), ms.kd, ms.acs
		FROM players p
		LEFT JOIN monthly_stats ms ON ms.player_id = p.id AND ms.month = ?
		ORDER BY p.id
	`, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []MonthlyStat
	for rows.Next() {
		stat, err := scanMonthlyStat(rows, month)
		if err != nil {
			log.Error("Failed to scan monthly stat row", "error", err)
			continue
		}
		stats = append(stats, *stat)
	}
	return stats, rows.Err()
}

func (s *store) GetPlayerMonthlyStat(playerID, month string) (*MonthlyStat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT p.id, p.nickname, COALESCE(ms.wins, 0), COALESCE(ms.losses, 0), ms.kd, ms.acs
		FROM players p
		LEFT JOIN monthly_stats ms ON ms.player_id = p.id AND ms.month = ?
		WHERE p.id = ?
	`, month, playerID)

	stat, err := scanMonthlyStat(row, month)
	if err == sql.ErrNoRows {
		return nil, ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return stat, nil
}

// scanMonthlyStat scans a player/tally row from either a *sql.Row or *sql.Rows.
func scanMonthlyStat(scanner interface{ Scan(...any) error }, month string) (*MonthlyStat, error) {
	var stat MonthlyStat
	var nickname sql.NullString
	var kd sql.NullFloat64
	var acs sql.NullInt64

	if err := scanner.Scan(&stat.PlayerID, &nickname, &stat.Wins, &stat.Losses, &kd, &acs); err != nil {
		return nil, err
	}
	stat.Nickname = nickname.String
	stat.Month = month
	if kd.Valid {
		v := kd.Float64
		stat.KD = &v
	}
	if acs.Valid {
		v := int(acs.Int64)
		stat.ACS = &v
	}
	return &stat, nil
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing store", "error", err)
		return
	}

	for _, table := range []string{"entries", "matches", "monthly_stats", "monthly_baselines", "players", "metrics"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "table", table, "error", err)
			tx.Rollback()
			return
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing store", "error", err)
	}
}
