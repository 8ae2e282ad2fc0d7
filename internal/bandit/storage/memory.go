// WhatNow - Contextual Activity Recommendation Engine
// Copyright 2026 The WhatNow Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/whatnowai/whatnow

package storage

import (
	"context"
	"sync"
)

// MemoryStore keeps the model record in process memory. It is the backend
// for tests and development; nothing survives a restart.
type MemoryStore struct {
	mu  sync.RWMutex
	rec *Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns a copy of the stored record, or (nil, nil) when none exists.
func (s *MemoryStore) Load(_ context.Context) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rec.Clone(), nil
}

// Save overwrites the stored record with a copy of rec.
func (s *MemoryStore) Save(_ context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = rec.Clone()
	return nil
}

// Backend identifies the backend.
func (s *MemoryStore) Backend() string {
	return "memory"
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}

var _ Store = (*MemoryStore)(nil)
