// Recipegraph - Recipe Corpus and Popularity Analytics
// Copyright 2026 Mangetamain Project
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mangetamain/recipegraph

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order
// of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"recipegraph.yaml",
	"recipegraph.yml",
	"/etc/recipegraph/config.yaml",
	"/etc/recipegraph/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "RECIPEGRAPH_CONFIG"

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: built-in sensible defaults
//  2. Config file: optional YAML config file (if exists)
//  3. Environment variables: override any setting
//
// The returned configuration has already passed Validate(); callers never
// see a Config that would fail later with a range or enum violation.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	// RECIPEGRAPH_RECIPES_PATH -> data.recipes_path
	// RECIPEGRAPH_TOP_N       -> pipeline.top_n
	if err := k.Load(env.Provider("RECIPEGRAPH_", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envMappings maps flat environment variable names (after the RECIPEGRAPH_
// prefix is stripped and lowercased) to nested config paths. Unknown
// variables are ignored rather than guessed at.
var envMappings = map[string]string{
	"recipes_path":      "data.recipes_path",
	"interactions_path": "data.interactions_path",
	"artifacts_dir":     "data.artifacts_dir",

	"top_n":   "pipeline.top_n",
	"workers": "pipeline.workers",

	"outlier_method": "aggregate.outlier_method",
	"iqr_k":          "aggregate.iqr_k",
	"z_threshold":    "aggregate.z_threshold",

	"cache_enabled": "cache.enabled",
	"cache_dir":     "cache.dir",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, "RECIPEGRAPH_"))
	if path, ok := envMappings[key]; ok {
		return path
	}
	return ""
}
