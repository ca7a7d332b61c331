// Package store persists privacy-conscious visitor metrics and contact
// transmissions in sqlite.
package store

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS visitors (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_ip TEXT NOT NULL,  -- never the raw address
	user_agent TEXT,
	path TEXT,
	timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS visitors_timestamp ON visitors(timestamp);

CREATE TABLE IF NOT EXISTS transmissions (
	id TEXT PRIMARY KEY,
	sender TEXT NOT NULL,
	organisation TEXT,
	payload TEXT NOT NULL,
	delivery TEXT NOT NULL,
	created_at DATETIME NOT NULL
);
`

type Store struct {
	db   *sql.DB
	salt string
}

// Open opens (creating if needed) the database at path. Use ":memory:"
// for an ephemeral store.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?_time_format=sqlite"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// A single connection keeps ":memory:" databases coherent and
	// serialises writers, which sqlite wants anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}

	salt, err := randomHex(32)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, salt: salt}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// HashIP hashes an address with the per-process salt. The same address
// maps to the same value for the lifetime of the process only.
func (s *Store) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + s.salt))
	return hex.EncodeToString(sum[:])[:16]
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Token returns a fresh random hex token.
func Token() (string, error) {
	return randomHex(32)
}
