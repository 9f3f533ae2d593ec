// Package storage provides SQLite-based persistence for match history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// Only finished match results are stored, never in-progress game state.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-collect/internal/core"
	"github.com/vovakirdan/tui-collect/internal/multiplayer"
)

// DefaultPath is where the history database lives unless --db says otherwise.
const DefaultPath = "~/.collect/history.db"

// Store manages the SQLite database connection for match history.
type Store struct {
	db *sql.DB
}

// MatchRecord represents one stored match.
type MatchRecord struct {
	ID        int64
	MatchID   string
	Mode      string
	EndReason string // "completed", "quit", "cancelled"
	Winner    int    // Player index, -1 unless completed
	Score1    int
	Score2    int
	BoardSize int
	Items     int
	Seed      int64
	Ticks     int64
	Dropped   int
	Duration  time.Duration
	CreatedAt time.Time
}

// Completed reports whether the match ran until every item was collected.
func (r MatchRecord) Completed() bool {
	return r.EndReason == multiplayer.MatchEndReasonCompleted.String()
}

// HistoryStats contains aggregated statistics over all matches.
type HistoryStats struct {
	Matches    int
	Completed  int
	Wins       [core.PlayerCount]int
	BestScore  int
	TotalItems int
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := core.ExpandHome(dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			mode TEXT NOT NULL,
			end_reason TEXT NOT NULL,
			winner INTEGER,
			score1 INTEGER NOT NULL DEFAULT 0,
			score2 INTEGER NOT NULL DEFAULT 0,
			board_size INTEGER NOT NULL,
			items INTEGER NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			dropped INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_created ON matches(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_matches_reason ON matches(end_reason);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveMatch records a match. Returns the ID of the inserted record.
func (s *Store) SaveMatch(rec MatchRecord) (int64, error) {
	var winner sql.NullInt64
	if rec.Completed() && rec.Winner >= 0 {
		winner = sql.NullInt64{Int64: int64(rec.Winner), Valid: true}
	}

	res, err := s.db.Exec(
		`INSERT INTO matches
		 (match_id, mode, end_reason, winner, score1, score2, board_size, items, seed, ticks, dropped, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.MatchID,
		rec.Mode,
		rec.EndReason,
		winner,
		rec.Score1,
		rec.Score2,
		rec.BoardSize,
		rec.Items,
		rec.Seed,
		rec.Ticks,
		rec.Dropped,
		rec.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// SaveMatchResult implements multiplayer.MatchResultSaver.
func (s *Store) SaveMatchResult(result multiplayer.MatchResult) error {
	_, err := s.SaveMatch(RecordFromResult(result))
	return err
}

// Ensure Store implements MatchResultSaver
var _ multiplayer.MatchResultSaver = (*Store)(nil)

// RecordFromResult converts a loop result into a storable record.
func RecordFromResult(r multiplayer.MatchResult) MatchRecord {
	winner := -1
	if r.Completed() {
		winner = int(r.Winner)
	}
	return MatchRecord{
		MatchID:   string(r.MatchID),
		Mode:      r.Mode.String(),
		EndReason: r.Reason.String(),
		Winner:    winner,
		Score1:    r.Score1,
		Score2:    r.Score2,
		BoardSize: r.BoardSize,
		Items:     r.Items,
		Seed:      r.Seed,
		Ticks:     int64(r.Ticks),
		Dropped:   r.Dropped,
		Duration:  r.Duration,
	}
}

const matchColumns = `id, match_id, mode, end_reason, winner, score1, score2,
	board_size, items, seed, ticks, dropped, duration_ms, created_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (MatchRecord, error) {
	var rec MatchRecord
	var winner sql.NullInt64
	var durationMs int64
	var createdAt any

	err := row.Scan(
		&rec.ID,
		&rec.MatchID,
		&rec.Mode,
		&rec.EndReason,
		&winner,
		&rec.Score1,
		&rec.Score2,
		&rec.BoardSize,
		&rec.Items,
		&rec.Seed,
		&rec.Ticks,
		&rec.Dropped,
		&durationMs,
		&createdAt,
	)
	if err != nil {
		return rec, err
	}

	rec.Winner = -1
	if winner.Valid {
		rec.Winner = int(winner.Int64)
	}
	rec.Duration = time.Duration(durationMs) * time.Millisecond
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// MatchByID retrieves a match by its match ID.
// Returns nil without error when no such match exists.
func (s *Store) MatchByID(matchID string) (*MatchRecord, error) {
	rec, err := scanMatch(s.db.QueryRow(
		`SELECT `+matchColumns+` FROM matches WHERE match_id = ?`,
		matchID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}
	return &rec, nil
}

// RecentMatches retrieves the most recent matches, newest first.
func (s *Store) RecentMatches(limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+matchColumns+`
		 FROM matches
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var records []MatchRecord
	for rows.Next() {
		rec, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// Stats aggregates the whole match history.
func (s *Store) Stats() (*HistoryStats, error) {
	stats := &HistoryStats{}
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN end_reason = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN winner = 0 THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN winner = 1 THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(MAX(score1, score2)), 0),
		        COALESCE(SUM(score1 + score2), 0),
		        MAX(created_at)
		 FROM matches`,
		multiplayer.MatchEndReasonCompleted.String(),
	).Scan(
		&stats.Matches,
		&stats.Completed,
		&stats.Wins[core.Player1],
		&stats.Wins[core.Player2],
		&stats.BestScore,
		&stats.TotalItems,
		&lastPlayed,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get history stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// ClearMatches deletes the whole match history.
func (s *Store) ClearMatches() error {
	if _, err := s.db.Exec("DELETE FROM matches"); err != nil {
		return fmt.Errorf("storage: cannot clear matches: %w", err)
	}
	return nil
}
