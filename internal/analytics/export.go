// Recipegraph - Recipe Corpus and Popularity Analytics
// Copyright 2026 Mangetamain Project
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mangetamain/recipegraph

package analytics

import (
	"encoding/csv"
	"io"
	"path/filepath"
	"strconv"

	"github.com/mangetamain/recipegraph/internal/artifact"
	"github.com/mangetamain/recipegraph/internal/models"
)

// PopularityArtifact is the aggregation output file name.
const PopularityArtifact = "recipes_popularity.csv"

var popularityHeader = []string{
	"recipe_id",
	"interaction_count",
	"avg_rating",
	"minutes",
	"n_steps",
	"n_ingredients",
	"minutes_outlier",
	"n_steps_outlier",
	"n_ingredients_outlier",
	"segment",
}

// Exporter writes the popularity table artifact.
type Exporter struct {
	dir string
}

// NewExporter creates an exporter writing into the given directory.
func NewExporter(dir string) *Exporter {
	return &Exporter{dir: dir}
}

// Path returns the popularity artifact destination.
func (e *Exporter) Path() string {
	return filepath.Join(e.dir, PopularityArtifact)
}

// Export publishes the popularity table atomically. A recipe without
// interactions has an empty avg_rating cell rather than a zero, keeping
// "never rated" distinct from "rated zero".
func (e *Exporter) Export(rows []models.RecipeMetrics) error {
	return artifact.WriteAtomic(e.Path(), func(w io.Writer) error {
		cw := csv.NewWriter(w)

		if err := cw.Write(popularityHeader); err != nil {
			return err
		}

		record := make([]string, len(popularityHeader))
		for i := range rows {
			m := &rows[i]
			record[0] = strconv.FormatInt(m.RecipeID, 10)
			record[1] = strconv.FormatInt(m.InteractionCount, 10)
			if m.AvgRating != nil {
				record[2] = strconv.FormatFloat(*m.AvgRating, 'f', -1, 64)
			} else {
				record[2] = ""
			}
			record[3] = strconv.FormatInt(m.Minutes, 10)
			record[4] = strconv.FormatInt(m.NSteps, 10)
			record[5] = strconv.FormatInt(m.NIngredients, 10)
			record[6] = strconv.FormatBool(m.MinutesOutlier)
			record[7] = strconv.FormatBool(m.NStepsOutlier)
			record[8] = strconv.FormatBool(m.NIngredientsOutlier)
			record[9] = string(m.Segment)
			if err := cw.Write(record); err != nil {
				return err
			}
		}

		cw.Flush()
		return cw.Error()
	})
}
