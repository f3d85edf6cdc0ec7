// Recipegraph - Recipe Corpus and Popularity Analytics
// Copyright 2026 Mangetamain Project
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mangetamain/recipegraph

package analytics

import (
	"math"
	"testing"

	"github.com/mangetamain/recipegraph/internal/config"
	"github.com/mangetamain/recipegraph/internal/models"
)

func metricsFixture(minutes []int64) []models.RecipeMetrics {
	rows := make([]models.RecipeMetrics, len(minutes))
	for i, m := range minutes {
		rows[i] = models.RecipeMetrics{
			RecipeID:     int64(i + 1),
			Minutes:      m,
			NSteps:       10,
			NIngredients: 5,
		}
	}
	return rows
}

func TestFlagOutliersIQR(t *testing.T) {
	// minutes 1..9 plus an extreme value. Q1 = 3.25, Q3 = 7.75,
	// IQR = 4.5; with k = 1.5 the bounds are [-3.5, 14.5].
	rows := metricsFixture([]int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 1000})

	cfg := config.AggregateConfig{OutlierMethod: config.OutlierMethodIQR, IQRK: 1.5}
	if err := FlagOutliers(rows, cfg); err != nil {
		t.Fatalf("FlagOutliers() error = %v", err)
	}

	for i := 0; i < 9; i++ {
		if rows[i].MinutesOutlier {
			t.Errorf("row %d (minutes=%d) flagged, want unflagged", i, rows[i].Minutes)
		}
	}
	if !rows[9].MinutesOutlier {
		t.Error("extreme row not flagged")
	}

	// The constant columns never flag.
	for i := range rows {
		if rows[i].NStepsOutlier || rows[i].NIngredientsOutlier {
			t.Errorf("row %d flagged on a constant column", i)
		}
	}
}

func TestFlagOutliersIQRWiderK(t *testing.T) {
	rows := metricsFixture([]int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 20})

	// k = 1.5 flags 20 (upper bound 14.5); k = 4 does not (bound 25.75).
	cfg := config.AggregateConfig{OutlierMethod: config.OutlierMethodIQR, IQRK: 1.5}
	if err := FlagOutliers(rows, cfg); err != nil {
		t.Fatalf("FlagOutliers() error = %v", err)
	}
	if !rows[9].MinutesOutlier {
		t.Error("k=1.5 did not flag minutes=20")
	}

	cfg.IQRK = 4
	if err := FlagOutliers(rows, cfg); err != nil {
		t.Fatalf("FlagOutliers() error = %v", err)
	}
	if rows[9].MinutesOutlier {
		t.Error("k=4 still flags minutes=20")
	}
}

func TestFlagOutliersZScore(t *testing.T) {
	rows := metricsFixture([]int64{10, 10, 10, 10, 10, 10, 10, 10, 10, 200})

	cfg := config.AggregateConfig{OutlierMethod: config.OutlierMethodZScore, ZThreshold: 2.5}
	if err := FlagOutliers(rows, cfg); err != nil {
		t.Fatalf("FlagOutliers() error = %v", err)
	}

	if !rows[9].MinutesOutlier {
		t.Error("extreme row not flagged by z-score")
	}
	for i := 0; i < 9; i++ {
		if rows[i].MinutesOutlier {
			t.Errorf("row %d flagged by z-score, want unflagged", i)
		}
	}
}

func TestFlagOutliersZScoreZeroSpread(t *testing.T) {
	rows := metricsFixture([]int64{10, 10, 10, 10})

	cfg := config.AggregateConfig{OutlierMethod: config.OutlierMethodZScore, ZThreshold: 3}
	if err := FlagOutliers(rows, cfg); err != nil {
		t.Fatalf("FlagOutliers() error = %v", err)
	}
	for i := range rows {
		if rows[i].IsOutlier() {
			t.Errorf("row %d flagged on zero-spread columns", i)
		}
	}
}

func TestFlagOutliersUnknownMethod(t *testing.T) {
	rows := metricsFixture([]int64{1, 2, 3})
	cfg := config.AggregateConfig{OutlierMethod: "mad"}
	if err := FlagOutliers(rows, cfg); err == nil {
		t.Error("expected error for unknown method, got nil")
	}
}

func TestFlagOutliersNeverTouchesRating(t *testing.T) {
	extreme := 5.0
	rows := metricsFixture([]int64{1, 2, 3, 4, 1000})
	for i := range rows {
		rows[i].AvgRating = &extreme
	}

	cfg := config.AggregateConfig{OutlierMethod: config.OutlierMethodIQR, IQRK: 1.5}
	if err := FlagOutliers(rows, cfg); err != nil {
		t.Fatalf("FlagOutliers() error = %v", err)
	}
	for i := range rows {
		if rows[i].AvgRating == nil || *rows[i].AvgRating != extreme {
			t.Errorf("row %d rating modified by outlier flagging", i)
		}
	}
}

func TestQuantileLinearInterpolation(t *testing.T) {
	values := []float64{1, 2, 3, 4}

	tests := []struct {
		q    float64
		want float64
	}{
		{0, 1},
		{0.25, 1.75},
		{0.5, 2.5},
		{0.75, 3.25},
		{1, 4},
	}
	for _, tt := range tests {
		if got := quantile(values, tt.q); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("quantile(%v) = %v, want %v", tt.q, got, tt.want)
		}
	}
}

func TestQuantileEmpty(t *testing.T) {
	if got := quantile(nil, 0.5); !math.IsNaN(got) {
		t.Errorf("quantile(empty) = %v, want NaN", got)
	}
}

func TestSampleStddev(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	m := mean(values)
	if m != 5 {
		t.Fatalf("mean = %v, want 5", m)
	}
	// Sample variance of this set is 32/7.
	want := math.Sqrt(32.0 / 7.0)
	if got := sampleStddev(values, m); math.Abs(got-want) > 1e-9 {
		t.Errorf("sampleStddev = %v, want %v", got, want)
	}

	if got := sampleStddev([]float64{3}, 3); got != 0 {
		t.Errorf("sampleStddev(single) = %v, want 0", got)
	}
}
