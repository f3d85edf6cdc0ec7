// Recipegraph - Recipe Corpus and Popularity Analytics
// Copyright 2026 Mangetamain Project
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mangetamain/recipegraph

package ingest

import (
	"context"
	"fmt"
)

// interactionColumns are the columns the interaction source must provide.
var interactionColumns = []string{"user_id", "recipe_id", "rating", "date"}

// LoadInteractions materializes the interaction source into the
// interactions table. Records stay in DuckDB; the merge/aggregate stage
// consumes them with SQL rather than pulling every row into Go.
func (s *Store) LoadInteractions(ctx context.Context, path string) (int64, error) {
	if err := s.requireColumns(ctx, path, interactionColumns); err != nil {
		return 0, err
	}

	create := fmt.Sprintf(`
		CREATE OR REPLACE TABLE interactions AS
		SELECT
			CAST(user_id AS BIGINT) AS user_id,
			CAST(recipe_id AS BIGINT) AS recipe_id,
			CAST(rating AS DOUBLE) AS rating,
			CAST(date AS VARCHAR) AS date
		FROM read_csv_auto(%s)`, quoteLiteral(path))

	if _, err := s.conn.ExecContext(ctx, create); err != nil {
		return 0, fmt.Errorf("load interactions from %s: %w", path, err)
	}

	var count int64
	row := s.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM interactions`)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count interactions: %w", err)
	}

	return count, nil
}
