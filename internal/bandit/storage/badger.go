// WhatNow - Contextual Activity Recommendation Engine
// Copyright 2026 The WhatNow Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/whatnowai/whatnow

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// badgerRecordKey is the fixed key for the singleton model record.
const badgerRecordKey = "model:record"

// BadgerStore keeps the model record under a single fixed key in a
// BadgerDB directory.
type BadgerStore struct {
	db    *badger.DB
	owned bool
}

// NewBadgerStore opens a BadgerDB at the given directory and stores the
// record there. Closing the store closes the database.
func NewBadgerStore(dir string) (*BadgerStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("badger store path is empty")
	}

	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}
	return &BadgerStore{db: db, owned: true}, nil
}

// NewBadgerStoreFromDB wraps an existing BadgerDB connection. Closing the
// store leaves the database open for its owner.
func NewBadgerStoreFromDB(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// Load reads the record key, or returns (nil, nil) when it was never set.
func (s *BadgerStore) Load(_ context.Context) (*Record, error) {
	var rec Record
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(badgerRecordKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return &TransientError{Op: "load", Err: fmt.Errorf("get record: %w", err)}
		}

		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &rec); err != nil {
				return &IntegrityError{Op: "load", Err: fmt.Errorf("unmarshal record: %w", err)}
			}
			found = true
			return nil
		})
	})
	if err != nil {
		var te *TransientError
		var ie *IntegrityError
		if errors.As(err, &te) || errors.As(err, &ie) {
			return nil, err
		}
		return nil, &TransientError{Op: "load", Err: err}
	}
	if !found {
		return nil, nil
	}
	if err := rec.Validate(); err != nil {
		return nil, &IntegrityError{Op: "load", Err: err}
	}

	return &rec, nil
}

// Save overwrites the record key.
func (s *BadgerStore) Save(_ context.Context, rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return &TransientError{Op: "save", Err: fmt.Errorf("marshal record: %w", err)}
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(badgerRecordKey), data)
	})
	if err != nil {
		return &TransientError{Op: "save", Err: fmt.Errorf("set record: %w", err)}
	}
	return nil
}

// Backend identifies the backend.
func (s *BadgerStore) Backend() string {
	return "badger"
}

// Close closes the database when this store opened it.
func (s *BadgerStore) Close() error {
	if s.owned {
		return s.db.Close()
	}
	return nil
}

var _ Store = (*BadgerStore)(nil)
