// Package library implements the local program library: a SQLite store
// of serialized Bananabread programs keyed by name and content hash.
package library

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ErrProgramNotFound indicates the requested program doesn't exist.
var ErrProgramNotFound = errors.New("program not found")

// Entry describes one stored program.
type Entry struct {
	Name    string
	Hash    string // hex sha256 of the wire bytes
	Size    int
	SavedAt time.Time
}

// Library is a SQLite-backed store of marshaled programs. It is safe
// for concurrent use; sql.DB serializes access and the busy timeout
// covers writer contention.
type Library struct {
	db *sql.DB
}

// Open opens (or creates) a program library at the given path.
func Open(dbPath string) (*Library, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// One connection: sqlite allows a single writer, and this keeps
	// the pragma below in effect for every statement.
	db.SetMaxOpenConns(1)

	// Set busy timeout for concurrent access
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	// Create table if needed
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS programs (
		name     TEXT PRIMARY KEY,
		hash     TEXT NOT NULL,
		data     BLOB NOT NULL,
		saved_at INTEGER NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating table: %w", err)
	}

	return &Library{db: db}, nil
}

// Close closes the database connection.
func (l *Library) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// Save stores a program's wire bytes under the given name, replacing any
// previous version.
func (l *Library) Save(name string, data []byte) error {
	if name == "" {
		return errors.New("program name must not be empty")
	}

	sum := sha256.Sum256(data)
	_, err := l.db.Exec(
		"INSERT OR REPLACE INTO programs (name, hash, data, saved_at) VALUES (?, ?, ?, ?)",
		name, hex.EncodeToString(sum[:]), data, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("saving program %q: %w", name, err)
	}
	return nil
}

// Load retrieves a program's wire bytes by name, verifying the stored
// content hash.
func (l *Library) Load(name string) ([]byte, error) {
	var storedHash string
	var data []byte
	err := l.db.QueryRow("SELECT hash, data FROM programs WHERE name = ?", name).Scan(&storedHash, &data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrProgramNotFound, name)
		}
		return nil, fmt.Errorf("querying program %q: %w", name, err)
	}

	sum := sha256.Sum256(data)
	if hex.EncodeToString(sum[:]) != storedHash {
		return nil, fmt.Errorf("program %q is corrupt: content hash mismatch", name)
	}
	return data, nil
}

// List returns all stored programs, ordered by name.
func (l *Library) List() ([]Entry, error) {
	rows, err := l.db.Query("SELECT name, hash, length(data), saved_at FROM programs ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("listing programs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var savedAt int64
		if err := rows.Scan(&e.Name, &e.Hash, &e.Size, &savedAt); err != nil {
			return nil, fmt.Errorf("scanning program row: %w", err)
		}
		e.SavedAt = time.Unix(savedAt, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes a program by name.
func (l *Library) Delete(name string) error {
	res, err := l.db.Exec("DELETE FROM programs WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("deleting program %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrProgramNotFound, name)
	}
	return nil
}
