package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cuppanote/cuppa-backend/internal/apperr"
)

const slotSchema = `
	CREATE TABLE IF NOT EXISTS slots (
		name       TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`

// sqliteStore keeps every slot in a single embedded database file.
type sqliteStore struct{ db *sql.DB }

// OpenSQLite opens (creating if needed) the slot database at path.
func OpenSQLite(path string) (Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open slot database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping slot database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(slotSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create slots table: %w", err)
	}
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Load(slot string, v interface{}) error {
	var raw string
	err := s.db.QueryRow(`SELECT value FROM slots WHERE name = ?`, slot).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read slot %q: %w", slot, err)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("slot %q: %w: %v", slot, apperr.ErrLoadFailure, err)
	}
	return nil
}

func (s *sqliteStore) Save(slot string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal slot %q: %w", slot, err)
	}
	return s.upsert(s.db, slot, string(raw))
}

func (s *sqliteStore) Clear(slot string) error {
	_, err := s.db.Exec(`DELETE FROM slots WHERE name = ?`, slot)
	return err
}

func (s *sqliteStore) ReplaceAll(slots map[string]interface{}) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for slot, v := range slots {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal slot %q: %w", slot, err)
		}
		if err := s.upsert(tx, slot, string(raw)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *sqliteStore) NextCounter(slot string) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	n := 0
	var raw string
	err = tx.QueryRow(`SELECT value FROM slots WHERE name = ?`, slot).Scan(&raw)
	switch {
	case err == sql.ErrNoRows:
		// first order ever
	case err != nil:
		return 0, fmt.Errorf("read counter %q: %w", slot, err)
	default:
		if n, err = strconv.Atoi(raw); err != nil {
			return 0, fmt.Errorf("counter %q: %w: %v", slot, apperr.ErrLoadFailure, err)
		}
	}

	n++
	if err := s.upsert(tx, slot, strconv.Itoa(n)); err != nil {
		return 0, err
	}
	return n, tx.Commit()
}

func (s *sqliteStore) ResetCounter(slot string, n int) error {
	return s.upsert(s.db, slot, strconv.Itoa(n))
}

func (s *sqliteStore) Close() error { return s.db.Close() }

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}

func (s *sqliteStore) upsert(e execer, slot, value string) error {
	_, err := e.Exec(`
		INSERT INTO slots (name, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		slot, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("write slot %q: %w", slot, err)
	}
	return nil
}
