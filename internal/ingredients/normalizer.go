// Recipegraph - Recipe Corpus and Popularity Analytics
// Copyright 2026 Mangetamain Project
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mangetamain/recipegraph

// Package ingredients implements the offline co-occurrence pipeline:
// free-text ingredient normalization, frequency ranking, symmetric
// co-occurrence matrix construction, and deterministic artifact export.
package ingredients

import (
	"regexp"
	"strings"
)

// stopWords is the fixed culinary stop-word set: units, quantities,
// colors, preparation states, and generic modifiers that carry no
// identity for co-occurrence counting.
var stopWords = map[string]struct{}{
	// Size/quantity
	"large": {}, "small": {}, "medium": {}, "extra": {}, "whole": {},
	"sliced": {}, "diced": {}, "chopped": {}, "minced": {}, "ground": {},
	// Colors
	"black": {}, "white": {}, "red": {}, "green": {}, "dark": {}, "light": {},
	// States/preparations
	"fresh": {}, "dried": {}, "frozen": {}, "canned": {}, "raw": {}, "cooked": {},
	"grilled": {}, "fried": {}, "roasted": {}, "crushed": {}, "shredded": {}, "grated": {},
	// Qualities
	"organic": {}, "natural": {}, "pure": {}, "virgin": {}, "premium": {},
	"old": {}, "new": {}, "aged": {},
	// Packaging
	"can": {}, "jar": {}, "bottle": {}, "bag": {},
	// Salt/fat descriptors
	"unsalted": {}, "salted": {}, "low": {}, "reduced": {}, "free": {},
	// Articles/prepositions
	"with": {}, "without": {}, "and": {}, "the": {},
}

// punctRe matches everything outside letters, digits, underscore, and
// whitespace. Unicode classes rather than \w so accented ingredient
// names survive normalization.
var (
	punctRe      = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes a raw ingredient token: lowercase, strip
// punctuation, collapse whitespace, drop single-character tokens and
// culinary stop words. Returns ok=false when the token reduces to
// nothing, in which case the ingredient is discarded.
//
// The operation is pure and idempotent: normalizing an already-canonical
// token returns it unchanged.
func Normalize(raw string) (string, bool) {
	t := strings.TrimSpace(strings.ToLower(raw))
	t = punctRe.ReplaceAllString(t, " ")
	t = strings.TrimSpace(whitespaceRe.ReplaceAllString(t, " "))
	if t == "" {
		return "", false
	}

	var tokens []string
	for _, word := range strings.Split(t, " ") {
		if len(word) <= 1 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		tokens = append(tokens, word)
	}

	if len(tokens) == 0 {
		return "", false
	}

	return strings.Join(tokens, " "), true
}

// NormalizeSet normalizes every raw ingredient of a recipe and removes
// in-recipe duplicates while preserving first-seen order, so each
// canonical ingredient counts at most once per recipe.
func NormalizeSet(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))

	for _, ing := range raw {
		canonical, ok := Normalize(ing)
		if !ok {
			continue
		}
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		out = append(out, canonical)
	}

	return out
}
