// Recipegraph - Recipe Corpus and Popularity Analytics
// Copyright 2026 Mangetamain Project
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mangetamain/recipegraph

// Package config provides layered configuration for Recipegraph using Koanf v2.
// Precedence: environment variables > YAML config file > built-in defaults.
// All settings are validated eagerly on load; an invalid configuration is a
// fatal error before any computation starts.
package config

// Config is the root configuration for all Recipegraph commands.
type Config struct {
	Data      DataConfig      `koanf:"data"`
	Pipeline  PipelineConfig  `koanf:"pipeline"`
	Aggregate AggregateConfig `koanf:"aggregate"`
	Cache     CacheConfig     `koanf:"cache"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// DataConfig locates the source tables and the artifact output directory.
// Acquisition of the source files (download, presence checks) is owned by
// the surrounding deployment, not by this module.
type DataConfig struct {
	RecipesPath      string `koanf:"recipes_path"`
	InteractionsPath string `koanf:"interactions_path"`
	ArtifactsDir     string `koanf:"artifacts_dir"`
}

// PipelineConfig controls the offline co-occurrence pipeline.
type PipelineConfig struct {
	// TopN is the number of highest-frequency canonical ingredients kept
	// for the co-occurrence matrix. Legal range: MinTopN..MaxTopN.
	TopN int `koanf:"top_n"`

	// Workers bounds the parallel normalization stage. 0 = runtime.NumCPU().
	Workers int `koanf:"workers"`
}

// Outlier filtering methods for the popularity aggregator.
const (
	OutlierMethodIQR    = "iqr"
	OutlierMethodZScore = "zscore"
)

// AggregateConfig controls the popularity aggregation stages.
type AggregateConfig struct {
	// OutlierMethod selects the outlier policy: "iqr" or "zscore".
	OutlierMethod string `koanf:"outlier_method"`

	// IQRK is the IQR bound multiplier. Legal range: 1.0..20.0.
	IQRK float64 `koanf:"iqr_k"`

	// ZThreshold is the absolute standardized-score cutoff for the
	// zscore method. Must be positive.
	ZThreshold float64 `koanf:"z_threshold"`
}

// CacheConfig controls the disk-backed result cache.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled"`
	Dir     string `koanf:"dir"`
}

// LoggingConfig controls the global logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Legal ranges for validated settings.
const (
	MinTopN = 40
	MaxTopN = 300

	MinIQRK = 1.0
	MaxIQRK = 20.0
)

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			RecipesPath:      "data/RAW_recipes.csv",
			InteractionsPath: "data/RAW_interactions.csv",
			ArtifactsDir:     "data",
		},
		Pipeline: PipelineConfig{
			TopN:    300,
			Workers: 0, // 0 = use runtime.NumCPU()
		},
		Aggregate: AggregateConfig{
			OutlierMethod: OutlierMethodIQR,
			IQRK:          1.5,
			ZThreshold:    3.0,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     "data/cache",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Caller: false,
		},
	}
}
