// Recipegraph - Recipe Corpus and Popularity Analytics
// Copyright 2026 Mangetamain Project
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mangetamain/recipegraph

// Package ingest reads the raw recipe and interaction CSV tables into an
// in-memory DuckDB instance and exposes the merge/aggregate queries the
// popularity analysis is built on.
//
// The source files are owned by an external collaborator; this package
// assumes they exist locally with the documented schemas. A missing
// required column is a configuration error reported before any
// computation runs; a malformed row is an input data error that is
// skipped, counted, and logged.
package ingest

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/duckdb/duckdb-go/v2"
)

// Store wraps the DuckDB connection holding the source tables.
type Store struct {
	conn *sql.DB
}

// Open creates an in-memory DuckDB instance for source ingestion.
// Auto-install/auto-load of extensions is disabled to prevent hangs in
// restricted network environments; CSV ingestion needs none of them.
func Open(ctx context.Context) (*Store, error) {
	conn, err := sql.Open("duckdb", ":memory:?autoinstall_known_extensions=false&autoload_known_extensions=false")
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping duckdb: %w", err)
	}

	return &Store{conn: conn}, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// queryAndScan executes a query and scans all rows using the provided
// scanner function. Reduces repetitive query-scan-collect patterns.
func (s *Store) queryAndScan(ctx context.Context, query string, args []interface{}, scanner func(*sql.Rows) error) error {
	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scanner(rows); err != nil {
			return fmt.Errorf("scan row: %w", err)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows iteration: %w", err)
	}

	return nil
}

// columnSet returns the set of column names that read_csv_auto infers
// for the given file, via DESCRIBE so no data is materialized yet.
func (s *Store) columnSet(ctx context.Context, path string) (map[string]bool, error) {
	cols := make(map[string]bool)

	query := fmt.Sprintf("DESCRIBE SELECT * FROM read_csv_auto(%s)", quoteLiteral(path))
	err := s.queryAndScan(ctx, query, nil, func(rows *sql.Rows) error {
		var name, colType string
		var null, key, dflt, extra sql.NullString
		if err := rows.Scan(&name, &colType, &null, &key, &dflt, &extra); err != nil {
			return err
		}
		cols[name] = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("describe %s: %w", path, err)
	}

	return cols, nil
}

// requireColumns verifies that every required column is present in the
// source file before anything is computed from it.
func (s *Store) requireColumns(ctx context.Context, path string, required []string) error {
	cols, err := s.columnSet(ctx, path)
	if err != nil {
		return err
	}

	for _, col := range required {
		if !cols[col] {
			return fmt.Errorf("source %s is missing required column %q", path, col)
		}
	}

	return nil
}
