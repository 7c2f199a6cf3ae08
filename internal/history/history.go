// Package history keeps board snapshots in SQLite so edits can be undone.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/stuarthighley/board"
)

// ErrEmpty is returned when there is no snapshot to load or undo to.
var ErrEmpty = errors.New("history: no snapshot")

// Store manages the snapshot database.
type Store struct {
	db *sql.DB
}

// Snapshot describes one stored board.
type Snapshot struct {
	ID        int64
	Label     string
	Sectors   int
	Walls     int
	Sprites   int
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
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
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: migration failed: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			label TEXT NOT NULL,
			sectors INTEGER NOT NULL,
			walls INTEGER NOT NULL,
			sprites INTEGER NOT NULL,
			board BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
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

// Commit stores a copy of b and returns the snapshot id.
func (s *Store) Commit(ctx context.Context, label string, b *board.Board) (int64, error) {
	data, err := yaml.Marshal(b)
	if err != nil {
		return 0, fmt.Errorf("history: cannot encode board: %w", err)
	}
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO snapshots (label, sectors, walls, sprites, board) VALUES (?, ?, ?, ?, ?)",
		label, b.NumSectors(), b.NumWalls(), b.NumSprites(), data,
	)
	if err != nil {
		return 0, fmt.Errorf("history: cannot save snapshot: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("history: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// Load decodes snapshot id.
func (s *Store) Load(ctx context.Context, id int64) (*board.Board, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, "SELECT board FROM snapshots WHERE id = ?", id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w with id %d", ErrEmpty, id)
	}
	if err != nil {
		return nil, fmt.Errorf("history: cannot load snapshot %d: %w", id, err)
	}
	return decode(data)
}

// Latest decodes the newest snapshot.
func (s *Store) Latest(ctx context.Context) (*board.Board, Snapshot, error) {
	list, err := s.List(ctx, 1)
	if err != nil {
		return nil, Snapshot{}, err
	}
	if len(list) == 0 {
		return nil, Snapshot{}, ErrEmpty
	}
	b, err := s.Load(ctx, list[0].ID)
	return b, list[0], err
}

// List returns up to limit snapshots, newest first. A non-positive limit
// returns all of them.
func (s *Store) List(ctx context.Context, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, label, sectors, walls, sprites, created_at
		 FROM snapshots
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("history: cannot query snapshots: %w", err)
	}
	defer rows.Close()

	var list []Snapshot
	for rows.Next() {
		var sn Snapshot
		var createdAt any
		if err := rows.Scan(&sn.ID, &sn.Label, &sn.Sectors, &sn.Walls, &sn.Sprites, &createdAt); err != nil {
			return nil, fmt.Errorf("history: cannot scan row: %w", err)
		}
		// Parse the datetime - handle both time.Time and string
		switch v := createdAt.(type) {
		case time.Time:
			sn.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				sn.CreatedAt = parsed
			}
		}
		list = append(list, sn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: row iteration error: %w", err)
	}
	return list, nil
}

// Undo drops the newest snapshot and returns the one before it.
func (s *Store) Undo(ctx context.Context) (*board.Board, Snapshot, error) {
	list, err := s.List(ctx, 2)
	if err != nil {
		return nil, Snapshot{}, err
	}
	if len(list) < 2 {
		return nil, Snapshot{}, ErrEmpty
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM snapshots WHERE id = ?", list[0].ID); err != nil {
		return nil, Snapshot{}, fmt.Errorf("history: cannot drop snapshot %d: %w", list[0].ID, err)
	}
	b, err := s.Load(ctx, list[1].ID)
	return b, list[1], err
}

// Prune keeps the newest keep snapshots and returns how many were removed.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM snapshots WHERE id NOT IN (
			SELECT id FROM snapshots ORDER BY id DESC LIMIT ?
		)`,
		keep,
	)
	if err != nil {
		return 0, fmt.Errorf("history: cannot prune snapshots: %w", err)
	}
	return result.RowsAffected()
}

func decode(data []byte) (*board.Board, error) {
	var b board.Board
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("history: cannot decode board: %w", err)
	}
	return &b, nil
}
