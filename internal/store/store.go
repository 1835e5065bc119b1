// Package store persists named markup snippets in SQLite.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/zjrosen/inkline/internal/log"
)

const schema = `
CREATE TABLE IF NOT EXISTS snippets (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	guid TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL UNIQUE,
	source TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
`

// snippetColumns is the list of columns to select for snippet queries.
const snippetColumns = `id, guid, name, source, created_at, updated_at`

// Snippet is a named piece of markup source.
type Snippet struct {
	ID        int64
	GUID      string
	Name      string
	Source    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SnippetNotFoundError indicates the named snippet does not exist.
type SnippetNotFoundError struct {
	Name string
}

func (e *SnippetNotFoundError) Error() string {
	return fmt.Sprintf("snippet not found: %s", e.Name)
}

// Store is a SQLite-backed snippet repository.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the snippet database at path.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snippet database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply snippet schema: %w", err)
	}

	log.Debug(log.CatStore, "snippet store opened", "path", path)

	return &Store{db: db}, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

type rowScanner interface{ Scan(...any) error }

func scanSnippet(scanner rowScanner) (*Snippet, error) {
	var sn Snippet
	var createdAt, updatedAt int64
	err := scanner.Scan(&sn.ID, &sn.GUID, &sn.Name, &sn.Source, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	sn.CreatedAt = time.Unix(createdAt, 0).UTC()
	sn.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return &sn, nil
}

// Save persists a snippet. A new name inserts; an existing name updates
// the source and bumps updated_at, keeping the original GUID.
func (s *Store) Save(name, source string) (*Snippet, error) {
	now := time.Now().Unix()

	result, err := s.db.Exec(
		`UPDATE snippets SET source = ?, updated_at = ? WHERE name = ?`,
		source, now, name,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update snippet: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		_, err = s.db.Exec(
			`INSERT INTO snippets (guid, name, source, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
			uuid.NewString(), name, source, now, now,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert snippet: %w", err)
		}
	}

	return s.Get(name)
}

// Get retrieves a snippet by name.
// Returns SnippetNotFoundError if no matching snippet exists.
func (s *Store) Get(name string) (*Snippet, error) {
	row := s.db.QueryRow(
		`SELECT `+snippetColumns+` FROM snippets WHERE name = ?`,
		name,
	)
	sn, err := scanSnippet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &SnippetNotFoundError{Name: name}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find snippet by name: %w", err)
	}
	return sn, nil
}

// List retrieves all snippets ordered by name.
func (s *Store) List() ([]*Snippet, error) {
	rows, err := s.db.Query(`SELECT ` + snippetColumns + ` FROM snippets ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list snippets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var snippets []*Snippet
	for rows.Next() {
		sn, err := scanSnippet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snippet row: %w", err)
		}
		snippets = append(snippets, sn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snippet rows: %w", err)
	}
	return snippets, nil
}

// Delete removes a snippet by name.
// Returns SnippetNotFoundError if no matching snippet exists.
func (s *Store) Delete(name string) error {
	result, err := s.db.Exec(`DELETE FROM snippets WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete snippet: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return &SnippetNotFoundError{Name: name}
	}
	return nil
}
