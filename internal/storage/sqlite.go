// Package storage provides SQLite-based persistence for lander scores and
// landing history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Score     int
	CreatedAt time.Time
}

// Landing is one finished round, landed or crashed.
type Landing struct {
	ID        int64
	GameID    string
	Outcome   string // "landed" or "crashed"
	Reason    string // Crash reason, empty on a landing
	Score     int
	Fuel      float64
	Elapsed   float64 // Seconds of flight
	Speed     float64 // Touchdown speed
	Angle     float64 // Touchdown angle relative to local up
	Seed      int64   // Terrain seed of the round
	CreatedAt time.Time
}

// LandingStats aggregates the landing history of one game mode.
type LandingStats struct {
	GameID       string
	Attempts     int
	Landed       int
	CrashReasons map[string]int
	BestScore    int
	AvgSpeed     float64 // Mean touchdown speed of successful landings
	LastPlayed   time.Time
}

// SuccessRate returns the fraction of attempts that landed.
func (s LandingStats) SuccessRate() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Landed) / float64(s.Attempts)
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

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
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);

		CREATE TABLE IF NOT EXISTS landings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			outcome TEXT NOT NULL,
			reason TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL DEFAULT 0,
			fuel REAL NOT NULL DEFAULT 0,
			elapsed REAL NOT NULL DEFAULT 0,
			speed REAL NOT NULL DEFAULT 0,
			angle REAL NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_landings_game_id ON landings(game_id, id DESC);
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

// SaveScore records a new score for the given game.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(gameID string, score int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (game_id, score) VALUES (?, ?)",
		gameID, score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopScores retrieves the top N scores for the given game, best first.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, score, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// HighScore returns the highest score for the given game.
// Returns 0 if no scores exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ?",
		gameID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearScores deletes all scores and landing history for the given game.
func (s *Store) ClearScores(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM landings WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear landings: %w", err)
	}
	return nil
}

// SaveLanding records a finished round.
// Returns the ID of the inserted record.
func (s *Store) SaveLanding(l Landing) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO landings
		 (game_id, outcome, reason, score, fuel, elapsed, speed, angle, seed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.GameID, l.Outcome, l.Reason, l.Score, l.Fuel, l.Elapsed, l.Speed, l.Angle, l.Seed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save landing: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentLandings returns the newest rounds first. An empty gameID returns all modes.
func (s *Store) RecentLandings(gameID string, limit int) ([]Landing, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, outcome, reason, score, fuel, elapsed, speed, angle, seed, created_at
		 FROM landings
		 WHERE ? = '' OR game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query landings: %w", err)
	}
	defer rows.Close()

	var results []Landing
	for rows.Next() {
		var l Landing
		var createdAt any
		if err := rows.Scan(
			&l.ID,
			&l.GameID,
			&l.Outcome,
			&l.Reason,
			&l.Score,
			&l.Fuel,
			&l.Elapsed,
			&l.Speed,
			&l.Angle,
			&l.Seed,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		l.CreatedAt = parseTime(createdAt)
		results = append(results, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}

// LandingStats aggregates the landing history of one game mode.
func (s *Store) LandingStats(gameID string) (*LandingStats, error) {
	stats := &LandingStats{GameID: gameID, CrashReasons: make(map[string]int)}

	var avgSpeed sql.NullFloat64
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = 'landed' THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(score), 0),
		        AVG(CASE WHEN outcome = 'landed' THEN speed END)
		 FROM landings WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Attempts, &stats.Landed, &stats.BestScore, &avgSpeed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get landing stats: %w", err)
	}
	if avgSpeed.Valid {
		stats.AvgSpeed = avgSpeed.Float64
	}

	rows, err := s.db.Query(
		`SELECT reason, COUNT(*) FROM landings
		 WHERE game_id = ? AND outcome = 'crashed'
		 GROUP BY reason`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get crash reasons: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var reason string
		var count int
		if err := rows.Scan(&reason, &count); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats.CrashReasons[reason] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM landings WHERE game_id = ? ORDER BY id DESC LIMIT 1`,
		gameID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// parseTime handles both time.Time and the SQLite text timestamp format.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
