// Recipegraph - Recipe Corpus and Popularity Analytics
// Copyright 2026 Mangetamain Project
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mangetamain/recipegraph

package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mangetamain/recipegraph/internal/logging"
	"github.com/mangetamain/recipegraph/internal/models"
)

// recipeColumns are the columns the recipe source must provide.
var recipeColumns = []string{"id", "ingredients", "minutes", "n_steps", "n_ingredients"}

// LoadRecipes materializes the recipe source into the recipes table and
// returns the parsed records. Rows whose ingredient list cannot be parsed
// are skipped and counted; the count is returned alongside the records.
func (s *Store) LoadRecipes(ctx context.Context, path string) ([]models.Recipe, int, error) {
	if err := s.requireColumns(ctx, path, recipeColumns); err != nil {
		return nil, 0, err
	}

	create := fmt.Sprintf(`
		CREATE OR REPLACE TABLE recipes AS
		SELECT
			CAST(id AS BIGINT) AS id,
			CAST(ingredients AS VARCHAR) AS ingredients,
			CAST(minutes AS BIGINT) AS minutes,
			CAST(n_steps AS BIGINT) AS n_steps,
			CAST(n_ingredients AS BIGINT) AS n_ingredients
		FROM read_csv_auto(%s)`, quoteLiteral(path))

	if _, err := s.conn.ExecContext(ctx, create); err != nil {
		return nil, 0, fmt.Errorf("load recipes from %s: %w", path, err)
	}

	var recipes []models.Recipe
	dropped := 0

	query := `SELECT id, ingredients, minutes, n_steps, n_ingredients FROM recipes ORDER BY id`
	err := s.queryAndScan(ctx, query, nil, func(rows *sql.Rows) error {
		var r models.Recipe
		var raw string
		if err := rows.Scan(&r.ID, &raw, &r.Minutes, &r.NSteps, &r.NIngredients); err != nil {
			return err
		}

		ingredients, err := ParseIngredientList(raw)
		if err != nil {
			dropped++
			logging.Debug().Int64("recipe_id", r.ID).Err(err).Msg("Skipping recipe with unparseable ingredient list")
			return nil
		}

		r.Ingredients = ingredients
		recipes = append(recipes, r)
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan recipes: %w", err)
	}

	if dropped > 0 {
		logging.Warn().Int("dropped", dropped).Str("path", path).Msg("Skipped recipes with unparseable ingredient lists")
	}

	return recipes, dropped, nil
}

// ParseIngredientList parses the ingredient cell format used by the raw
// recipe export: a Python-style list literal such as
//
//	['salt', "black pepper", 'onion']
//
// Quotes may be single or double and backslash escapes are honored.
// An empty list literal yields an empty slice.
func ParseIngredientList(raw string) ([]string, error) {
	text := strings.TrimSpace(raw)
	if len(text) < 2 || text[0] != '[' || text[len(text)-1] != ']' {
		return nil, fmt.Errorf("not a list literal: %.40q", raw)
	}

	inner := text[1 : len(text)-1]
	items := []string{}

	i := 0
	for {
		for i < len(inner) && (inner[i] == ' ' || inner[i] == '\t' || inner[i] == '\n' || inner[i] == ',') {
			i++
		}
		if i >= len(inner) {
			break
		}

		quote := inner[i]
		if quote != '\'' && quote != '"' {
			return nil, fmt.Errorf("unquoted list item at offset %d", i)
		}
		i++

		var sb strings.Builder
		closed := false
		for i < len(inner) {
			c := inner[i]
			if c == '\\' && i+1 < len(inner) {
				sb.WriteByte(inner[i+1])
				i += 2
				continue
			}
			if c == quote {
				closed = true
				i++
				break
			}
			sb.WriteByte(c)
			i++
		}
		if !closed {
			return nil, fmt.Errorf("unterminated string in list literal")
		}

		items = append(items, sb.String())
	}

	return items, nil
}

// quoteLiteral renders a string as a single-quoted SQL literal.
// read_csv_auto paths cannot be bound as prepared-statement parameters
// inside CREATE TABLE AS, so the path is inlined with quote doubling.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
