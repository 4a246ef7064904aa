// Package storage persists the session record in a local SQLite database.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// Keys of the durable session record. Both are always written and
// cleared together.
const (
	KeyAuthToken = "authToken"
	KeyUser      = "user"
)

// SessionDB is the durable key-value record backing the session.
// It uses SQLite in WAL mode.
type SessionDB struct {
	db   *sql.DB
	path string
}

// Open creates or opens the session database at dbPath.
func Open(dbPath string) (*SessionDB, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, fmt.Errorf("session db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("exec %q: %w", p, err)
		}
	}

	schema := `
	CREATE TABLE IF NOT EXISTS session (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return &SessionDB{db: db, path: dbPath}, nil
}

// Close closes the underlying database.
func (s *SessionDB) Close() error {
	return s.db.Close()
}

// Load reads the stored token and serialized user. Missing keys come
// back as empty strings, never as an error.
func (s *SessionDB) Load() (token, user string, err error) {
	rows, err := s.db.Query(`SELECT key, value FROM session WHERE key IN (?, ?)`, KeyAuthToken, KeyUser)
	if err != nil {
		return "", "", fmt.Errorf("load session: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return "", "", fmt.Errorf("scan session: %w", err)
		}
		switch k {
		case KeyAuthToken:
			token = v
		case KeyUser:
			user = v
		}
	}
	if err := rows.Err(); err != nil {
		return "", "", fmt.Errorf("load session: %w", err)
	}
	return token, user, nil
}

// Save writes both keys in one transaction.
func (s *SessionDB) Save(token, user string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	defer tx.Rollback()

	const upsert = `INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := tx.Exec(upsert, KeyAuthToken, token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	if _, err := tx.Exec(upsert, KeyUser, user); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return tx.Commit()
}

// Clear removes both keys in one transaction.
func (s *SessionDB) Clear() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM session WHERE key IN (?, ?)`, KeyAuthToken, KeyUser); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return tx.Commit()
}
