// Recipegraph - Recipe Corpus and Popularity Analytics
// Copyright 2026 Mangetamain Project
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mangetamain/recipegraph

package analytics

import (
	"fmt"
	"math"

	"github.com/mangetamain/recipegraph/internal/config"
	"github.com/mangetamain/recipegraph/internal/logging"
	"github.com/mangetamain/recipegraph/internal/models"
)

// outlierColumn binds one filtered metric to its flag. Rating is
// deliberately absent: extreme ratings are signal, not noise.
type outlierColumn struct {
	name string
	get  func(*models.RecipeMetrics) float64
	flag func(*models.RecipeMetrics, bool)
}

var outlierColumns = []outlierColumn{
	{
		name: "minutes",
		get:  func(m *models.RecipeMetrics) float64 { return float64(m.Minutes) },
		flag: func(m *models.RecipeMetrics, v bool) { m.MinutesOutlier = v },
	},
	{
		name: "n_steps",
		get:  func(m *models.RecipeMetrics) float64 { return float64(m.NSteps) },
		flag: func(m *models.RecipeMetrics, v bool) { m.NStepsOutlier = v },
	},
	{
		name: "n_ingredients",
		get:  func(m *models.RecipeMetrics) float64 { return float64(m.NIngredients) },
		flag: func(m *models.RecipeMetrics, v bool) { m.NIngredientsOutlier = v },
	},
}

// FlagOutliers sets the per-column outlier flags on every row using the
// configured method. Rows are flagged in place and never removed; the
// flags only decide membership in the segmentation population.
func FlagOutliers(rows []models.RecipeMetrics, cfg config.AggregateConfig) error {
	switch cfg.OutlierMethod {
	case config.OutlierMethodIQR:
		flagIQR(rows, cfg.IQRK)
	case config.OutlierMethodZScore:
		flagZScore(rows, cfg.ZThreshold)
	default:
		return fmt.Errorf("unknown outlier method %q", cfg.OutlierMethod)
	}
	return nil
}

// flagIQR flags values outside [Q1 - k*IQR, Q3 + k*IQR] per column.
func flagIQR(rows []models.RecipeMetrics, k float64) {
	values := make([]float64, len(rows))
	for _, col := range outlierColumns {
		for i := range rows {
			values[i] = col.get(&rows[i])
		}
		q1 := quantile(values, 0.25)
		q3 := quantile(values, 0.75)
		iqr := q3 - q1
		lo := q1 - k*iqr
		hi := q3 + k*iqr

		flagged := 0
		for i := range rows {
			out := values[i] < lo || values[i] > hi
			col.flag(&rows[i], out)
			if out {
				flagged++
			}
		}
		logging.Debug().
			Str("column", col.name).
			Float64("lower", lo).
			Float64("upper", hi).
			Int("flagged", flagged).
			Msg("IQR outlier bounds")
	}
}

// flagZScore flags values whose standardized score exceeds the
// threshold, using the sample standard deviation. A degenerate column
// with zero spread flags nothing.
func flagZScore(rows []models.RecipeMetrics, threshold float64) {
	values := make([]float64, len(rows))
	for _, col := range outlierColumns {
		for i := range rows {
			values[i] = col.get(&rows[i])
		}
		m := mean(values)
		sd := sampleStddev(values, m)

		flagged := 0
		for i := range rows {
			out := sd > 0 && math.Abs(values[i]-m)/sd > threshold
			col.flag(&rows[i], out)
			if out {
				flagged++
			}
		}
		logging.Debug().
			Str("column", col.name).
			Float64("mean", m).
			Float64("stddev", sd).
			Int("flagged", flagged).
			Msg("Z-score outlier stats")
	}
}
