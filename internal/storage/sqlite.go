// Package storage provides SQLite-based persistence for bests and the
// score history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
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

// DefaultPlayer namespaces local play.
const DefaultPlayer = "local"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry is one finished session in the history.
type ScoreEntry struct {
	ID         int64
	Player     string
	Difficulty string
	Mode       string
	Score      int
	BestStreak int
	CreatedAt  time.Time
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
			player TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			mode TEXT NOT NULL,
			score INTEGER NOT NULL,
			best_streak INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_player ON scores(player);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(player, score DESC);

		CREATE TABLE IF NOT EXISTS bests (
			player TEXT NOT NULL,
			key TEXT NOT NULL,
			value INTEGER NOT NULL,
			PRIMARY KEY (player, key)
		);
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

// SaveScore records a finished session.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(e ScoreEntry) (int64, error) {
	if e.Player == "" {
		e.Player = DefaultPlayer
	}
	result, err := s.db.Exec(
		`INSERT INTO scores (player, difficulty, mode, score, best_streak)
		 VALUES (?, ?, ?, ?, ?)`,
		e.Player, e.Difficulty, e.Mode, e.Score, e.BestStreak,
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

const scoreColumns = `id, player, difficulty, mode, score, best_streak, created_at`

// TopScores retrieves the top N scores, highest first.
// An empty player selects every player.
func (s *Store) TopScores(player string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+scoreColumns+`
		 FROM scores
		 WHERE (? = '' OR player = ?)
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		player, player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanScores(rows)
}

// History retrieves every score of a player in the order they were played.
// An empty player selects every player.
func (s *Store) History(player string) ([]ScoreEntry, error) {
	rows, err := s.db.Query(
		`SELECT `+scoreColumns+`
		 FROM scores
		 WHERE (? = '' OR player = ?)
		 ORDER BY id ASC`,
		player, player,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query history: %w", err)
	}
	return scanScores(rows)
}

func scanScores(rows *sql.Rows) ([]ScoreEntry, error) {
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Player, &e.Difficulty, &e.Mode, &e.Score, &e.BestStreak, &createdAt); err != nil {
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

// parseTime handles both time.Time and string datetimes from the driver.
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

// HighScore returns the highest recorded score of a player, or of everyone
// when player is empty. Returns 0 if no scores exist.
func (s *Store) HighScore(player string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE (? = '' OR player = ?)",
		player, player,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes the history and bests of a player.
func (s *Store) ClearScores(player string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec("DELETE FROM scores WHERE player = ?", player); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM bests WHERE player = ?", player); err != nil {
		return fmt.Errorf("storage: cannot clear bests: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit clear: %w", err)
	}
	return nil
}

// DifficultyStats contains aggregated statistics for one difficulty.
type DifficultyStats struct {
	Difficulty string
	Games      int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// Stats aggregates a player's history per difficulty.
func (s *Store) Stats(player string) (map[string]*DifficultyStats, error) {
	rows, err := s.db.Query(
		`SELECT difficulty, COUNT(*), MAX(score), AVG(score), MAX(created_at)
		 FROM scores
		 WHERE player = ?
		 GROUP BY difficulty`,
		player,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*DifficultyStats)
	for rows.Next() {
		var st DifficultyStats
		var lastPlayed any
		if err := rows.Scan(&st.Difficulty, &st.Games, &st.HighScore, &st.AvgScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.Difficulty] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// Bests returns the bests store of a player. An empty player selects
// DefaultPlayer.
func (s *Store) Bests(player string) *Bests {
	if player == "" {
		player = DefaultPlayer
	}
	return &Bests{db: s.db, player: player}
}

// Bests persists integer bests for one player.
type Bests struct {
	db     *sql.DB
	player string
}

// Get returns the stored value, or 0 if the key was never set.
func (b *Bests) Get(key string) (int, error) {
	var v int
	err := b.db.QueryRow(
		"SELECT value FROM bests WHERE player = ? AND key = ?",
		b.player, key,
	).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read %s for %s: %w", key, b.player, err)
	}
	return v, nil
}

// Set stores value under key, replacing any previous value.
func (b *Bests) Set(key string, value int) error {
	_, err := b.db.Exec(
		`INSERT INTO bests (player, key, value) VALUES (?, ?, ?)
		 ON CONFLICT(player, key) DO UPDATE SET value = excluded.value`,
		b.player, key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write %s for %s: %w", key, b.player, err)
	}
	return nil
}
