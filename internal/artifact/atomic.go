// Recipegraph - Recipe Corpus and Popularity Analytics
// Copyright 2026 Mangetamain Project
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mangetamain/recipegraph

// Package artifact provides atomic publication of durable pipeline
// artifacts. Writers never expose a half-written file: content goes to a
// temporary file in the destination directory and is renamed into place
// only after a successful write and fsync.
package artifact

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteAtomic writes an artifact via a temp-then-rename publish. On any
// failure the temporary file is removed and the destination is left
// untouched, so a concurrent reader observes either the previous
// artifact or the complete new one, never a partial write.
func WriteAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create artifact directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp artifact in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	if err := write(tmp); err != nil {
		cleanup()
		return fmt.Errorf("write artifact %s: %w", path, err)
	}

	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("sync artifact %s: %w", path, err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close artifact %s: %w", path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("publish artifact %s: %w", path, err)
	}

	return nil
}
