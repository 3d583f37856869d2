// internal/store/library.go
//
// The library is the local catalog of saved designs, kept in a SQLite
// database under the studio directory. Documents are stored as the same
// JSON payload the REST API and draft autosave use.

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"patchwork/internal/design"
)

// ErrNotFound is returned when no design with the given ID exists.
var ErrNotFound = errors.New("store: design not found")

// Entry is one library row: the envelope metadata plus the document.
type Entry struct {
	ID        string
	Name      string
	Kind      design.DocKind
	Published bool
	CreatedAt time.Time
	UpdatedAt time.Time
	Document  design.Document
}

// ListFilter narrows List results. Zero value lists everything.
type ListFilter struct {
	Kind          design.DocKind
	PublishedOnly bool
}

// Library is the SQLite-backed design catalog.
type Library struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open initializes the library database at the given path, creating the
// parent directory and schema as needed.
func Open(path string) (*Library, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure library dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open library: %w", err)
	}
	lib := &Library{db: db}
	if err := lib.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return lib, nil
}

func (l *Library) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS designs (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		payload TEXT NOT NULL,
		published INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_designs_kind ON designs(kind);
	CREATE INDEX IF NOT EXISTS idx_designs_updated ON designs(updated_at);
	`
	if _, err := l.db.Exec(schema); err != nil {
		return fmt.Errorf("store: create schema: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (l *Library) Close() error {
	return l.db.Close()
}

// Save inserts the document or updates the existing row with the same
// design ID. Publish state survives updates.
func (l *Library) Save(doc design.Document) error {
	payload, err := doc.Encode()
	if err != nil {
		return err
	}
	id := doc.ID()
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now().UTC()
	_, err = l.db.Exec(`
		INSERT INTO designs (id, name, kind, payload, published, created_at, updated_at)
		VALUES (?, ?, ?, ?, 0, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			kind = excluded.kind,
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		id, doc.Name(), string(doc.Kind), string(payload), now, now,
	)
	if err != nil {
		return fmt.Errorf("store: save design %s: %w", id, err)
	}
	return nil
}

// Get loads one design by ID.
func (l *Library) Get(id string) (Entry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	row := l.db.QueryRow(
		`SELECT id, name, kind, payload, published, created_at, updated_at FROM designs WHERE id = ?`, id,
	)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("store: get design %s: %w", id, err)
	}
	return entry, nil
}

// List returns entries most recently updated first.
func (l *Library) List(filter ListFilter) ([]Entry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	query := `SELECT id, name, kind, payload, published, created_at, updated_at FROM designs`
	var conds []string
	var args []any
	if filter.Kind != "" {
		conds = append(conds, "kind = ?")
		args = append(args, string(filter.Kind))
	}
	if filter.PublishedOnly {
		conds = append(conds, "published = 1")
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY updated_at DESC"
	rows, err := l.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list designs: %w", err)
	}
	defer rows.Close()
	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("store: list designs: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list designs: %w", err)
	}
	return entries, nil
}

// Publish marks the design as published.
func (l *Library) Publish(id string) error {
	return l.setPublished(id, true)
}

// Unpublish clears the published flag.
func (l *Library) Unpublish(id string) error {
	return l.setPublished(id, false)
}

func (l *Library) setPublished(id string, published bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	flag := 0
	if published {
		flag = 1
	}
	res, err := l.db.Exec(
		`UPDATE designs SET published = ?, updated_at = ? WHERE id = ?`,
		flag, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("store: publish design %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the design from the library.
func (l *Library) Delete(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	res, err := l.db.Exec(`DELETE FROM designs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete design %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var (
		entry     Entry
		kind      string
		payload   string
		published int
	)
	if err := row.Scan(&entry.ID, &entry.Name, &kind, &payload, &published, &entry.CreatedAt, &entry.UpdatedAt); err != nil {
		return Entry{}, err
	}
	entry.Kind = design.DocKind(kind)
	entry.Published = published != 0
	doc, err := design.DecodeDocument([]byte(payload))
	if err != nil {
		return Entry{}, err
	}
	entry.Document = doc
	return entry, nil
}
