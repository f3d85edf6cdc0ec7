// Recipegraph - Recipe Corpus and Popularity Analytics
// Copyright 2026 Mangetamain Project
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mangetamain/recipegraph

package cache

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/mangetamain/recipegraph/internal/logging"
)

// Cacheable gives an analyzer cached execution as a capability rather
// than a base type. The analyzer owns its name and default parameters;
// per-call parameters are merged over the defaults before keying.
type Cacheable struct {
	manager  *Manager
	analyzer string
	defaults map[string]any
	enabled  bool
}

// NewCacheable creates the capability for one analyzer. A nil manager
// behaves as a disabled cache.
func NewCacheable(manager *Manager, analyzer string, defaults map[string]any) *Cacheable {
	return &Cacheable{
		manager:  manager,
		analyzer: analyzer,
		defaults: defaults,
		enabled:  manager != nil,
	}
}

// Enable toggles caching. While disabled, Do bypasses both the read and
// the write path.
func (c *Cacheable) Enable(on bool) {
	c.enabled = on && c.manager != nil
}

// Enabled reports whether Do will consult the cache.
func (c *Cacheable) Enabled() bool {
	return c.enabled
}

// Clear invalidates this analyzer's entries, optionally restricted to
// one operation, and returns the number deleted.
func (c *Cacheable) Clear(operation string) (int, error) {
	if c.manager == nil {
		return 0, nil
	}
	return c.manager.Invalidate(c.analyzer, operation)
}

// mergedParams overlays call parameters on the analyzer defaults.
func (c *Cacheable) mergedParams(params map[string]any) map[string]any {
	merged := make(map[string]any, len(c.defaults)+len(params))
	for k, v := range c.defaults {
		merged[k] = v
	}
	for k, v := range params {
		merged[k] = v
	}
	return merged
}

// Do executes an operation through the analyzer's cache. On a hit the
// stored payload is decoded into T; a payload that no longer decodes is
// recomputed and overwritten. Disabled caching runs compute directly.
// The bool reports whether the result came from the cache.
func Do[T any](c *Cacheable, operation string, params map[string]any, compute func() (T, error)) (T, bool, error) {
	var zero T

	if !c.enabled {
		v, err := compute()
		return v, false, err
	}

	merged := c.mergedParams(params)
	payload, hit, err := c.manager.GetOrCompute(c.analyzer, operation, merged, func() ([]byte, error) {
		v, err := compute()
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode %s/%s result: %w", c.analyzer, operation, err)
		}
		return raw, nil
	})
	if err != nil {
		return zero, false, err
	}

	var result T
	if err := json.Unmarshal(payload, &result); err != nil {
		if !hit {
			return zero, false, fmt.Errorf("decode %s/%s result: %w", c.analyzer, operation, err)
		}
		// Stored payload predates a result-shape change. Recompute and
		// replace it.
		logging.Warn().
			Err(err).
			Str("analyzer", c.analyzer).
			Str("operation", operation).
			Msg("Cached payload no longer decodes, recomputing")

		v, err := compute()
		if err != nil {
			return zero, false, err
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return zero, false, fmt.Errorf("encode %s/%s result: %w", c.analyzer, operation, err)
		}
		if err := c.manager.Overwrite(c.analyzer, operation, merged, raw); err != nil {
			return zero, false, err
		}
		return v, false, nil
	}

	return result, hit, nil
}
