// Recipegraph - Recipe Corpus and Popularity Analytics
// Copyright 2026 Mangetamain Project
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mangetamain/recipegraph

package config

import (
	"fmt"
)

// Validate checks that required configuration is present and valid.
// Every violation names the offending key and its legal range so the
// process can fail before any computation starts.
func (c *Config) Validate() error {
	if err := c.validateData(); err != nil {
		return err
	}

	if err := c.validatePipeline(); err != nil {
		return err
	}

	if err := c.validateAggregate(); err != nil {
		return err
	}

	if err := c.validateCache(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateData validates the source and artifact locations.
func (c *Config) validateData() error {
	if c.Data.RecipesPath == "" {
		return fmt.Errorf("data.recipes_path is required")
	}
	if c.Data.InteractionsPath == "" {
		return fmt.Errorf("data.interactions_path is required")
	}
	if c.Data.ArtifactsDir == "" {
		return fmt.Errorf("data.artifacts_dir is required")
	}
	return nil
}

// validatePipeline validates the offline pipeline settings.
func (c *Config) validatePipeline() error {
	if c.Pipeline.TopN < MinTopN || c.Pipeline.TopN > MaxTopN {
		return fmt.Errorf("pipeline.top_n must be between %d and %d, got %d",
			MinTopN, MaxTopN, c.Pipeline.TopN)
	}
	if c.Pipeline.Workers < 0 {
		return fmt.Errorf("pipeline.workers must be >= 0, got %d", c.Pipeline.Workers)
	}
	return nil
}

// validateAggregate validates the popularity aggregation settings.
func (c *Config) validateAggregate() error {
	switch c.Aggregate.OutlierMethod {
	case OutlierMethodIQR, OutlierMethodZScore:
	default:
		return fmt.Errorf("aggregate.outlier_method must be %q or %q, got %q",
			OutlierMethodIQR, OutlierMethodZScore, c.Aggregate.OutlierMethod)
	}

	if c.Aggregate.IQRK < MinIQRK || c.Aggregate.IQRK > MaxIQRK {
		return fmt.Errorf("aggregate.iqr_k must be between %.1f and %.1f, got %g",
			MinIQRK, MaxIQRK, c.Aggregate.IQRK)
	}

	if c.Aggregate.ZThreshold <= 0 {
		return fmt.Errorf("aggregate.z_threshold must be positive, got %g", c.Aggregate.ZThreshold)
	}

	return nil
}

// validateCache validates the cache settings.
func (c *Config) validateCache() error {
	if c.Cache.Enabled && c.Cache.Dir == "" {
		return fmt.Errorf("cache.dir is required when cache.enabled=true")
	}
	return nil
}

// validateLogging validates the logging settings.
func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error", "fatal", "disabled":
	default:
		return fmt.Errorf("logging.level must be one of trace, debug, info, warn, error, fatal, got %q",
			c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}

	return nil
}
