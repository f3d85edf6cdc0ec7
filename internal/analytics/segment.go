// Recipegraph - Recipe Corpus and Popularity Analytics
// Copyright 2026 Mangetamain Project
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mangetamain/recipegraph

package analytics

import (
	"github.com/mangetamain/recipegraph/internal/models"
)

// SegmentThresholds are the interaction-count percentiles that bound the
// popularity bands. They are computed over the outlier-filtered
// population only, so a handful of extreme recipes cannot stretch the
// bands for everyone else.
type SegmentThresholds struct {
	P25 float64 `json:"p25"`
	P75 float64 `json:"p75"`
	P95 float64 `json:"p95"`
}

// ComputeThresholds derives the band boundaries from the rows not
// flagged as outliers. The second return is false when that population
// is empty and no thresholds exist.
func ComputeThresholds(rows []models.RecipeMetrics) (SegmentThresholds, bool) {
	counts := make([]float64, 0, len(rows))
	for i := range rows {
		if rows[i].IsOutlier() {
			continue
		}
		counts = append(counts, float64(rows[i].InteractionCount))
	}
	if len(counts) == 0 {
		return SegmentThresholds{}, false
	}

	return SegmentThresholds{
		P25: quantile(counts, 0.25),
		P75: quantile(counts, 0.75),
		P95: quantile(counts, 0.95),
	}, true
}

// ApplySegments assigns a popularity band to every row, outliers
// included. Each band contains its upper boundary, so a count exactly at
// a threshold falls into the lower band.
func ApplySegments(rows []models.RecipeMetrics, t SegmentThresholds) {
	for i := range rows {
		c := float64(rows[i].InteractionCount)
		switch {
		case c <= t.P25:
			rows[i].Segment = models.SegmentLow
		case c <= t.P75:
			rows[i].Segment = models.SegmentMedium
		case c <= t.P95:
			rows[i].Segment = models.SegmentHigh
		default:
			rows[i].Segment = models.SegmentViral
		}
	}
}
