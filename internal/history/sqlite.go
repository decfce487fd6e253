package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore keeps the history in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*SQLiteStore, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("history: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("history: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("history: cannot open database: %w", err)
	}
	// Writes arrive from the persistence worker while the TUI reads.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: cannot connect to database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: migration failed: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS played_games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			alias TEXT NOT NULL,
			grid_size INTEGER NOT NULL,
			used_timer INTEGER NOT NULL DEFAULT 0,
			elapsed_secs INTEGER NOT NULL DEFAULT 0,
			attempts INTEGER NOT NULL DEFAULT 0,
			won INTEGER NOT NULL DEFAULT 0,
			played_at INTEGER NOT NULL,
			mode TEXT NOT NULL,
			log TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_played_games_played_at ON played_games(played_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Append stores a record and returns its id.
func (s *SQLiteStore) Append(ctx context.Context, r Record) (int64, error) {
	if r.PlayedAt.IsZero() {
		r.PlayedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO played_games
		 (session_id, alias, grid_size, used_timer, elapsed_secs, attempts, won, played_at, mode, log)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.SessionID,
		r.Alias,
		r.GridSize,
		r.UsedTimer,
		r.ElapsedSeconds,
		r.Attempts,
		r.Won,
		r.PlayedAt.UnixMilli(),
		r.Mode,
		r.Log,
	)
	if err != nil {
		return 0, fmt.Errorf("history: cannot append record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("history: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const selectColumns = `SELECT id, session_id, alias, grid_size, used_timer, elapsed_secs,
		attempts, won, played_at, mode, log FROM played_games`

// List returns every record ordered by play time, newest first.
func (s *SQLiteStore) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY played_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("history: cannot query records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: row iteration error: %w", err)
	}
	return records, nil
}

// Get returns a single record.
func (s *SQLiteStore) Get(ctx context.Context, id int64) (Record, error) {
	r, err := scanRecord(s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return r, err
}

// Clear deletes every record.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM played_games"); err != nil {
		return fmt.Errorf("history: cannot clear records: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var r Record
	var playedAt int64
	err := row.Scan(
		&r.ID,
		&r.SessionID,
		&r.Alias,
		&r.GridSize,
		&r.UsedTimer,
		&r.ElapsedSeconds,
		&r.Attempts,
		&r.Won,
		&playedAt,
		&r.Mode,
		&r.Log,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, err
	}
	if err != nil {
		return Record{}, fmt.Errorf("history: cannot scan row: %w", err)
	}
	r.PlayedAt = time.UnixMilli(playedAt)
	return r, nil
}

var _ Store = (*SQLiteStore)(nil)
