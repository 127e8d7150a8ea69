package location

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS history (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	url       TEXT    NOT NULL,
	pushed_at INTEGER NOT NULL
);`

// SQLiteHistory persists pushed locations so a restarted session resumes
// where the last one stopped.
type SQLiteHistory struct {
	db  *sql.DB
	now func() time.Time

	mu      sync.Mutex
	current Location
}

// Ensure SQLiteHistory implements History.
var _ History = (*SQLiteHistory)(nil)

// OpenSQLite opens (creating if needed) the history database at path.
// When the database is empty, fallback becomes the current location
// without being written.
func OpenSQLite(path string, fallback Location) (*SQLiteHistory, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}

	h := &SQLiteHistory{db: db, now: time.Now, current: fallback}
	last, err := h.last()
	if err != nil {
		db.Close()
		return nil, err
	}
	if !last.IsZero() {
		h.current = last
	}
	return h, nil
}

func (h *SQLiteHistory) last() (Location, error) {
	var raw string
	err := h.db.QueryRow(`SELECT url FROM history ORDER BY id DESC LIMIT 1`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return Location{}, nil
	}
	if err != nil {
		return Location{}, fmt.Errorf("read last location: %w", err)
	}
	loc, err := Parse(raw)
	if err != nil {
		// A corrupt row is not worth failing startup over.
		return Location{}, nil
	}
	return loc, nil
}

// Location implements History.
func (h *SQLiteHistory) Location() Location {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// PushState implements History.
func (h *SQLiteHistory) PushState(loc Location) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, err := h.db.Exec(
		`INSERT INTO history (url, pushed_at) VALUES (?, ?)`,
		loc.String(), h.now().UnixMilli(),
	); err != nil {
		return fmt.Errorf("push location: %w", err)
	}
	h.current = loc
	return nil
}

// Recent returns up to limit locations, newest first.
func (h *SQLiteHistory) Recent(limit int) ([]Location, error) {
	rows, err := h.db.Query(`SELECT url FROM history ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []Location
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		if loc, err := Parse(raw); err == nil {
			out = append(out, loc)
		}
	}
	return out, rows.Err()
}

// Close closes the database.
func (h *SQLiteHistory) Close() error {
	return h.db.Close()
}
