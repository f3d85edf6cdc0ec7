// Recipegraph - Recipe Corpus and Popularity Analytics
// Copyright 2026 Mangetamain Project
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mangetamain/recipegraph

package ingest

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mangetamain/recipegraph/internal/logging"
	"github.com/mangetamain/recipegraph/internal/models"
)

// MergeResult is the output of the merge/aggregate stage: one row per
// recipe plus the count of interactions that referenced unknown recipes
// and were therefore dropped.
type MergeResult struct {
	Rows                []models.RecipeMetrics
	DroppedInteractions int64
}

// MergeInteractions joins interactions to recipes by recipe id and
// aggregates per recipe.
//
// Recipes with zero interactions are retained with interaction_count = 0
// and an undefined (nil) average rating; they stay part of the population
// the downstream percentile segmentation is computed over. Interactions
// referencing unknown recipe ids are dropped and their count logged.
func (s *Store) MergeInteractions(ctx context.Context) (*MergeResult, error) {
	dropped, err := s.countOrphanInteractions(ctx)
	if err != nil {
		return nil, err
	}
	if dropped > 0 {
		logging.Warn().Int64("dropped", dropped).Msg("Dropped interactions referencing unknown recipe ids")
	}

	query := `
		SELECT
			r.id,
			COUNT(i.recipe_id) AS interaction_count,
			AVG(i.rating) AS avg_rating,
			r.minutes,
			r.n_steps,
			r.n_ingredients
		FROM recipes r
		LEFT JOIN interactions i ON i.recipe_id = r.id
		GROUP BY r.id, r.minutes, r.n_steps, r.n_ingredients
		ORDER BY r.id`

	var rows []models.RecipeMetrics
	err = s.queryAndScan(ctx, query, nil, func(sqlRows *sql.Rows) error {
		var m models.RecipeMetrics
		var avg sql.NullFloat64
		if err := sqlRows.Scan(&m.RecipeID, &m.InteractionCount, &avg, &m.Minutes, &m.NSteps, &m.NIngredients); err != nil {
			return err
		}
		if avg.Valid {
			v := avg.Float64
			m.AvgRating = &v
		}
		rows = append(rows, m)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("merge interactions: %w", err)
	}

	return &MergeResult{Rows: rows, DroppedInteractions: dropped}, nil
}

// countOrphanInteractions counts interactions whose recipe id does not
// exist in the recipes table.
func (s *Store) countOrphanInteractions(ctx context.Context) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM interactions i
		ANTI JOIN recipes r ON r.id = i.recipe_id`

	var count int64
	row := s.conn.QueryRowContext(ctx, query)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count orphan interactions: %w", err)
	}

	return count, nil
}
