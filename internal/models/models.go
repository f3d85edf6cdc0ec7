// Recipegraph - Recipe Corpus and Popularity Analytics
// Copyright 2026 Mangetamain Project
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mangetamain/recipegraph

// Package models defines the source records and derived analytics rows
// shared across the pipeline, cache, and aggregation packages.
package models

// Recipe is an immutable source record from the recipes table.
type Recipe struct {
	ID           int64
	Ingredients  []string // raw free-text ingredient names
	Minutes      int64
	NSteps       int64
	NIngredients int64
}

// Interaction is an immutable source record from the interactions table.
type Interaction struct {
	UserID   int64
	RecipeID int64
	Rating   float64
	Date     string
}

// RankedIngredient is a canonical ingredient with its corpus frequency.
// Frequency counts recipe presence, not multiplicity within a recipe.
type RankedIngredient struct {
	Name      string
	Frequency int
}

// Segment is a popularity band assigned by percentile rank of
// interaction_count over the outlier-filtered population.
type Segment string

// Popularity segments, ordered from least to most popular. Each band
// includes its upper boundary; a count exactly at a boundary falls into
// the lower band.
const (
	SegmentLow    Segment = "Low"    // count <= P25
	SegmentMedium Segment = "Medium" // P25 < count <= P75
	SegmentHigh   Segment = "High"   // P75 < count <= P95
	SegmentViral  Segment = "Viral"  // count > P95
)

// RecipeMetrics is a derived per-recipe analytics row. It is always
// reproducible from the source tables and never authoritative storage.
type RecipeMetrics struct {
	RecipeID         int64    `json:"recipe_id"`
	InteractionCount int64    `json:"interaction_count"`
	AvgRating        *float64 `json:"avg_rating"` // nil when the recipe has no interactions
	Minutes          int64    `json:"minutes"`
	NSteps           int64    `json:"n_steps"`
	NIngredients     int64    `json:"n_ingredients"`

	// Per-column outlier flags. Rating is deliberately never filtered so
	// the true rating distribution, including extremes, is preserved.
	MinutesOutlier      bool `json:"minutes_outlier"`
	NStepsOutlier       bool `json:"n_steps_outlier"`
	NIngredientsOutlier bool `json:"n_ingredients_outlier"`

	Segment Segment `json:"segment"`
}

// IsOutlier reports whether any filtered column flagged this row, which
// excludes it from the segmentation population.
func (m *RecipeMetrics) IsOutlier() bool {
	return m.MinutesOutlier || m.NStepsOutlier || m.NIngredientsOutlier
}
