// Package replstore persists REPL input lines to a small SQLite
// database, where they outlive the session that entered them.
// It is the one piece of genuinely persisted state the interpreter
// has; language evaluation itself never touches disk.
package replstore

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store wraps a SQLite-backed history log at a single file path.
type Store struct {
	db *sql.DB
}

// Open creates (if necessary) and opens the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("replstore: open %s: %w", path, err)
	}

	const schema = `
CREATE TABLE IF NOT EXISTS history (
	id    INTEGER PRIMARY KEY AUTOINCREMENT,
	line  TEXT NOT NULL,
	ts    INTEGER NOT NULL
);`
	if _, err := db.ExecContext(context.Background(), schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("replstore: migrate %s: %w", path, err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Append records one accepted REPL line with its Unix timestamp.
func (s *Store) Append(ctx context.Context, line string, unixSeconds int64) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO history (line, ts) VALUES (?, ?)`, line, unixSeconds)
	if err != nil {
		return fmt.Errorf("replstore: append: %w", err)
	}
	return nil
}

// Recent returns the most recent n lines, oldest first. The REPL in
// cmd/nightjar does not call it.
func (s *Store) Recent(ctx context.Context, n int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT line FROM history ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("replstore: recent: %w", err)
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, fmt.Errorf("replstore: scan: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Reverse into chronological order.
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
	return lines, nil
}
