// Recipegraph - Recipe Corpus and Popularity Analytics
// Copyright 2026 Mangetamain Project
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mangetamain/recipegraph

// Package cache provides a disk-backed result cache for expensive
// analytics operations. Results are keyed by analyzer name, operation
// name, and a fingerprint of the operation parameters, so a repeat call
// with equivalent parameters is served from disk instead of recomputed.
//
// The cache assumes a single writer process. Concurrent writers from
// separate processes are last-writer-wins; the only corruption detection
// is a decode failure on read, which is treated as a miss.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/mangetamain/recipegraph/internal/logging"
)

const keyPrefix = "entry:"

// Entry is the stored envelope around a cached payload. The metadata
// fields identify which run produced the result and when, for cache
// inspection and debugging.
type Entry struct {
	Payload     json.RawMessage `json:"payload"`
	Analyzer    string          `json:"analyzer"`
	Operation   string          `json:"operation"`
	Fingerprint string          `json:"fingerprint"`
	CreatedAt   time.Time       `json:"created_at"`
	RunID       string          `json:"run_id"`
}

// AnalyzerInfo summarizes the cache footprint of one analyzer.
type AnalyzerInfo struct {
	Entries int   `json:"entries"`
	Bytes   int64 `json:"bytes"`
}

// Manager is the badger-backed cache store.
type Manager struct {
	db    *badger.DB
	runID string
}

// Open opens (or creates) the cache database at dir.
func Open(dir string) (*Manager, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open cache at %s: %w", dir, err)
	}

	m := &Manager{
		db:    db,
		runID: uuid.NewString(),
	}

	logging.Debug().Str("dir", dir).Msg("Cache opened")
	return m, nil
}

// Close closes the underlying database.
func (m *Manager) Close() error {
	return m.db.Close()
}

// Fingerprint computes the parameter fingerprint for an operation:
// SHA-256 over the operation name and the canonical JSON encoding of the
// parameters. JSON map keys are emitted sorted, so two parameter maps
// with the same pairs in different insertion order fingerprint
// identically, while any value change produces a different fingerprint.
func Fingerprint(operation string, params map[string]any) (string, error) {
	canonical, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("encode cache parameters: %w", err)
	}

	h := sha256.New()
	h.Write([]byte(operation))
	h.Write([]byte{0})
	h.Write(canonical)
	return hex.EncodeToString(h.Sum(nil)), nil
}

func entryKey(analyzer, operation, fingerprint string) []byte {
	return []byte(keyPrefix + analyzer + ":" + operation + ":" + fingerprint)
}

// GetOrCompute returns the cached payload for (analyzer, operation,
// params) when present, otherwise runs producer and persists its result.
// The second return reports whether the payload came from the cache.
// An entry that fails to decode is logged, treated as a miss, and
// overwritten by the fresh result.
func (m *Manager) GetOrCompute(analyzer, operation string, params map[string]any, producer func() ([]byte, error)) ([]byte, bool, error) {
	fingerprint, err := Fingerprint(operation, params)
	if err != nil {
		return nil, false, err
	}
	key := entryKey(analyzer, operation, fingerprint)

	entry, err := m.get(key)
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		logging.Warn().
			Err(err).
			Str("analyzer", analyzer).
			Str("operation", operation).
			Msg("Discarding unreadable cache entry")
	}
	if entry != nil {
		logging.Debug().
			Str("analyzer", analyzer).
			Str("operation", operation).
			Str("fingerprint", fingerprint).
			Msg("Cache hit")
		return entry.Payload, true, nil
	}

	payload, err := producer()
	if err != nil {
		return nil, false, err
	}

	if err := m.put(key, Entry{
		Payload:     payload,
		Analyzer:    analyzer,
		Operation:   operation,
		Fingerprint: fingerprint,
		CreatedAt:   time.Now().UTC(),
		RunID:       m.runID,
	}); err != nil {
		return nil, false, err
	}

	return payload, false, nil
}

// Overwrite replaces the entry for (analyzer, operation, params) with a
// fresh payload regardless of what is stored.
func (m *Manager) Overwrite(analyzer, operation string, params map[string]any, payload []byte) error {
	fingerprint, err := Fingerprint(operation, params)
	if err != nil {
		return err
	}
	return m.put(entryKey(analyzer, operation, fingerprint), Entry{
		Payload:     payload,
		Analyzer:    analyzer,
		Operation:   operation,
		Fingerprint: fingerprint,
		CreatedAt:   time.Now().UTC(),
		RunID:       m.runID,
	})
}

func (m *Manager) get(key []byte) (*Entry, error) {
	var raw []byte
	err := m.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("decode cache entry %s: %w", key, err)
	}
	return &entry, nil
}

func (m *Manager) put(key []byte, entry Entry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	err = m.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, raw)
	})
	if err != nil {
		return fmt.Errorf("store cache entry %s: %w", key, err)
	}
	return nil
}

// Invalidate deletes cached entries and returns how many were removed.
// Both arguments accept the empty string as a wildcard: ("", "") clears
// the whole cache, (analyzer, "") clears one analyzer, and a non-empty
// operation requires a non-empty analyzer.
func (m *Manager) Invalidate(analyzer, operation string) (int, error) {
	if analyzer == "" && operation != "" {
		return 0, fmt.Errorf("operation %q given without an analyzer", operation)
	}

	prefix := keyPrefix
	if analyzer != "" {
		prefix += analyzer + ":"
		if operation != "" {
			prefix += operation + ":"
		}
	}

	keys, err := m.keysWithPrefix([]byte(prefix))
	if err != nil {
		return 0, err
	}

	deleted := 0
	err = m.db.Update(func(txn *badger.Txn) error {
		for _, key := range keys {
			if err := txn.Delete(key); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
			deleted++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("invalidate cache prefix %s: %w", prefix, err)
	}

	logging.Info().
		Str("analyzer", analyzer).
		Str("operation", operation).
		Int("deleted", deleted).
		Msg("Cache invalidated")
	return deleted, nil
}

func (m *Manager) keysWithPrefix(prefix []byte) ([][]byte, error) {
	var keys [][]byte
	err := m.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan cache keys: %w", err)
	}
	return keys, nil
}

// Info returns per-analyzer entry counts and stored byte sizes.
func (m *Manager) Info() (map[string]AnalyzerInfo, error) {
	info := make(map[string]AnalyzerInfo)
	err := m.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			analyzer := analyzerFromKey(string(item.Key()))
			stat := info[analyzer]
			stat.Entries++
			stat.Bytes += item.ValueSize()
			info[analyzer] = stat
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan cache info: %w", err)
	}
	return info, nil
}

// analyzerFromKey extracts the analyzer segment from an entry key.
// Analyzer and operation names must not contain ':'.
func analyzerFromKey(key string) string {
	rest := strings.TrimPrefix(key, keyPrefix)
	if i := strings.IndexByte(rest, ':'); i >= 0 {
		return rest[:i]
	}
	return rest
}
