// WhatNow - Contextual Activity Recommendation Engine
// Copyright 2026 The WhatNow Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/whatnowai/whatnow

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// sqliteSchema holds the single model row. The CHECK constraint makes the
// singleton explicit: there is never more than one record.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS model (
	id         INTEGER PRIMARY KEY CHECK (id = 1),
	record     TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
`

// SQLiteStore keeps the model record in a singleton row of an embedded
// SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) a SQLite database at the given
// path and ensures the schema exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite store path is empty")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close() //nolint:errcheck // already failing
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close() //nolint:errcheck // already failing
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Load reads the singleton row, or returns (nil, nil) when it has never
// been written.
func (s *SQLiteStore) Load(ctx context.Context) (*Record, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT record FROM model WHERE id = 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &TransientError{Op: "load", Err: fmt.Errorf("query record: %w", err)}
	}

	var rec Record
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return nil, &IntegrityError{Op: "load", Err: fmt.Errorf("unmarshal record: %w", err)}
	}
	if err := rec.Validate(); err != nil {
		return nil, &IntegrityError{Op: "load", Err: err}
	}

	return &rec, nil
}

// Save upserts the singleton row inside a transaction.
func (s *SQLiteStore) Save(ctx context.Context, rec *Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return &TransientError{Op: "save", Err: fmt.Errorf("marshal record: %w", err)}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &TransientError{Op: "save", Err: fmt.Errorf("begin tx: %w", err)}
	}
	defer func() { _ = tx.Rollback() }() //nolint:errcheck // rollback after commit is a no-op

	_, err = tx.ExecContext(ctx,
		`INSERT INTO model (id, record, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET record = excluded.record, updated_at = excluded.updated_at`,
		string(payload), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return &TransientError{Op: "save", Err: fmt.Errorf("upsert record: %w", err)}
	}

	if err := tx.Commit(); err != nil {
		return &TransientError{Op: "save", Err: fmt.Errorf("commit: %w", err)}
	}
	return nil
}

// Backend identifies the backend.
func (s *SQLiteStore) Backend() string {
	return "sqlite"
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ Store = (*SQLiteStore)(nil)
