// Copyright (c) 2026 Hamed R.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// SQL is a Store backed by a relational database, for single-box
// deployments that do not talk to the remote asset store. Supported
// drivers are "sqlite" (modernc.org/sqlite) and "postgres" (lib/pq).
//
// The context blob is normalized into a (meme_id, key, value) table so
// owner lookups hit an index instead of scanning every asset. Commit runs
// in a transaction that compares the stored context to the base the
// caller read, which makes this adapter conflict-detecting.
type SQL struct {
	db     *sql.DB
	driver string
}

// NewSQL wraps an open database handle. driver must match the driver the
// handle was opened with.
func NewSQL(db *sql.DB, driver string) (*SQL, error) {
	if driver != "sqlite" && driver != "postgres" {
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
	return &SQL{db: db, driver: driver}, nil
}

// CreateSchema creates the tables. Safe to call multiple times.
func (s *SQL) CreateSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const schema = `
-- Assets
CREATE TABLE IF NOT EXISTS meme (
    id TEXT PRIMARY KEY,
    url TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_meme_created_at ON meme(created_at);

-- Context blob, one row per key
CREATE TABLE IF NOT EXISTS meme_context (
    meme_id TEXT NOT NULL REFERENCES meme(id) ON DELETE CASCADE,
    key TEXT NOT NULL,
    value TEXT NOT NULL,
    PRIMARY KEY (meme_id, key)
);

CREATE INDEX IF NOT EXISTS idx_meme_context_kv ON meme_context(key, value);
`

// rebind rewrites $N placeholders for sqlite, which wants ?N.
func (s *SQL) rebind(query string) string {
	if s.driver == "sqlite" {
		return strings.ReplaceAll(query, "$", "?")
	}
	return query
}

func (s *SQL) Fetch(ctx context.Context, id string) (Snapshot, error) {
	var snap Snapshot
	err := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT id, url, created_at FROM meme WHERE id = $1
	`), id).Scan(&snap.ID, &snap.URL, &snap.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to fetch meme: %w", err)
	}

	snap.Context, err = s.loadContext(ctx, s.db, id)
	if err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func (s *SQL) List(ctx context.Context, limit int) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT id, url, created_at FROM meme
		ORDER BY created_at DESC
		LIMIT $1
	`), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list memes: %w", err)
	}
	defer rows.Close()

	return s.collect(ctx, rows)
}

func (s *SQL) SearchByField(ctx context.Context, key, value string) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT m.id, m.url, m.created_at
		FROM meme m
		JOIN meme_context c ON c.meme_id = m.id
		WHERE c.key = $1 AND c.value = $2
		ORDER BY m.created_at DESC
	`), key, value)
	if err != nil {
		return nil, fmt.Errorf("failed to search memes: %w", err)
	}
	defer rows.Close()

	return s.collect(ctx, rows)
}

func (s *SQL) Commit(ctx context.Context, id string, base, merged map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Lock the asset row for the duration of the compare-and-replace.
	// sqlite serializes writers on its own; postgres needs the row lock.
	query := `SELECT id FROM meme WHERE id = $1`
	if s.driver == "postgres" {
		query += " FOR UPDATE"
	}
	var got string
	err = tx.QueryRowContext(ctx, s.rebind(query), id).Scan(&got)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to lock meme: %w", err)
	}

	current, err := s.loadContext(ctx, tx, id)
	if err != nil {
		return err
	}
	if !contextEqual(current, base) {
		return ErrConflict
	}

	if _, err := tx.ExecContext(ctx, s.rebind(`
		DELETE FROM meme_context WHERE meme_id = $1
	`), id); err != nil {
		return fmt.Errorf("failed to clear context: %w", err)
	}
	for k, v := range merged {
		if _, err := tx.ExecContext(ctx, s.rebind(`
			INSERT INTO meme_context (meme_id, key, value)
			VALUES ($1, $2, $3)
		`), id, k, v); err != nil {
			return fmt.Errorf("failed to write context: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit context: %w", err)
	}
	return nil
}

func (s *SQL) Create(ctx context.Context, snap Snapshot) error {
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists string
	err = tx.QueryRowContext(ctx, s.rebind(`
		SELECT id FROM meme WHERE id = $1
	`), snap.ID).Scan(&exists)
	if err == nil {
		return ErrExists
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to check meme: %w", err)
	}

	if _, err := tx.ExecContext(ctx, s.rebind(`
		INSERT INTO meme (id, url, created_at)
		VALUES ($1, $2, $3)
	`), snap.ID, snap.URL, snap.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert meme: %w", err)
	}
	for k, v := range snap.Context {
		if _, err := tx.ExecContext(ctx, s.rebind(`
			INSERT INTO meme_context (meme_id, key, value)
			VALUES ($1, $2, $3)
		`), snap.ID, k, v); err != nil {
			return fmt.Errorf("failed to write context: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit meme: %w", err)
	}
	return nil
}

// queryer lets loadContext run against either the pool or a transaction.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

func (s *SQL) loadContext(ctx context.Context, q queryer, id string) (map[string]string, error) {
	rows, err := q.QueryContext(ctx, s.rebind(`
		SELECT key, value FROM meme_context WHERE meme_id = $1
	`), id)
	if err != nil {
		return nil, fmt.Errorf("failed to load context: %w", err)
	}
	defer rows.Close()

	blob := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("failed to scan context: %w", err)
		}
		blob[k] = v
	}
	return blob, rows.Err()
}

// collect drains a (id, url, created_at) result set and attaches contexts.
func (s *SQL) collect(ctx context.Context, rows *sql.Rows) ([]Snapshot, error) {
	var out []Snapshot
	for rows.Next() {
		var snap Snapshot
		if err := rows.Scan(&snap.ID, &snap.URL, &snap.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan meme: %w", err)
		}
		out = append(out, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		blob, err := s.loadContext(ctx, s.db, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Context = blob
	}
	// created_at ties can reorder across drivers; keep the sort stable
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
