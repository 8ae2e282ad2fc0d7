// WhatNow - Contextual Activity Recommendation Engine
// Copyright 2026 The WhatNow Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/whatnowai/whatnow

package storage

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps the model record in a single gob+gzip file with a
// SHA-256 checksum. Saves write a temporary file and rename it over the
// old one, so a crash mid-write leaves the previous record intact.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// storedRecord is the on-disk format.
type storedRecord struct {
	// Checksum is the hex SHA-256 of the uncompressed record bytes.
	Checksum string

	// CompressedData is the gzip-compressed gob encoding of the record.
	CompressedData []byte
}

// NewFileStore creates a file store at the given path. The parent
// directory is created if needed.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("file store path is empty")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil { //nolint:gosec // 0750 is acceptable for model storage
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

// Load reads and verifies the stored record, or returns (nil, nil) when
// the file does not exist.
func (s *FileStore) Load(_ context.Context) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, &TransientError{Op: "load", Err: fmt.Errorf("open record file: %w", err)}
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // error on close after read is not actionable

	var sf storedRecord
	if err := gob.NewDecoder(f).Decode(&sf); err != nil {
		return nil, &IntegrityError{Op: "load", Err: fmt.Errorf("decode record file: %w", err)}
	}

	gzr, err := gzip.NewReader(bytes.NewReader(sf.CompressedData))
	if err != nil {
		return nil, &IntegrityError{Op: "load", Err: fmt.Errorf("decompress record: %w", err)}
	}
	defer func() { _ = gzr.Close() }() //nolint:errcheck // error on gzip close after read is not actionable

	raw, err := io.ReadAll(gzr)
	if err != nil {
		return nil, &IntegrityError{Op: "load", Err: fmt.Errorf("read decompressed record: %w", err)}
	}

	hash := sha256.Sum256(raw)
	if checksum := hex.EncodeToString(hash[:]); checksum != sf.Checksum {
		return nil, &IntegrityError{Op: "load", Err: fmt.Errorf("checksum mismatch: expected %s, got %s", sf.Checksum, checksum)}
	}

	var rec Record
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&rec); err != nil {
		return nil, &IntegrityError{Op: "load", Err: fmt.Errorf("decode record: %w", err)}
	}
	if err := rec.Validate(); err != nil {
		return nil, &IntegrityError{Op: "load", Err: err}
	}

	return &rec, nil
}

// Save writes the record to a temporary file and renames it into place.
func (s *FileStore) Save(_ context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(rec); err != nil {
		return &TransientError{Op: "save", Err: fmt.Errorf("encode record: %w", err)}
	}
	raw := buf.Bytes()

	hash := sha256.Sum256(raw)

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(raw); err != nil {
		return &TransientError{Op: "save", Err: fmt.Errorf("compress record: %w", err)}
	}
	if err := gzw.Close(); err != nil {
		return &TransientError{Op: "save", Err: fmt.Errorf("finalize compression: %w", err)}
	}

	sf := storedRecord{
		Checksum:       hex.EncodeToString(hash[:]),
		CompressedData: compressed.Bytes(),
	}

	tmp := s.path + ".tmp"
	f, err := os.Create(tmp) //nolint:gosec // path comes from configuration
	if err != nil {
		return &TransientError{Op: "save", Err: fmt.Errorf("create temp file: %w", err)}
	}
	if err := gob.NewEncoder(f).Encode(sf); err != nil {
		_ = f.Close()      //nolint:errcheck // already failing
		_ = os.Remove(tmp) //nolint:errcheck // best-effort cleanup
		return &TransientError{Op: "save", Err: fmt.Errorf("write temp file: %w", err)}
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp) //nolint:errcheck // best-effort cleanup
		return &TransientError{Op: "save", Err: fmt.Errorf("close temp file: %w", err)}
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp) //nolint:errcheck // best-effort cleanup
		return &TransientError{Op: "save", Err: fmt.Errorf("replace record file: %w", err)}
	}

	return nil
}

// Backend identifies the backend.
func (s *FileStore) Backend() string {
	return "file"
}

// Close is a no-op; the store holds no open handles between calls.
func (s *FileStore) Close() error {
	return nil
}

var _ Store = (*FileStore)(nil)
