// Movie Library - Educational Movie Catalog with AI Recommendations
// Copyright 2026 alotaibiaseel22-ops
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alotaibiaseel22-ops/movie-library

package recommend

import (
	"context"
	"sort"
	"strings"

	"github.com/alotaibiaseel22-ops/movie-library/internal/store"
)

// LocalBackend ranks movies with a preference-overlap heuristic and needs
// no network access. It is the default backend.
type LocalBackend struct{}

// NewLocalBackend creates the heuristic backend.
func NewLocalBackend() *LocalBackend {
	return &LocalBackend{}
}

// Name implements Backend.
func (b *LocalBackend) Name() string { return "local" }

// Recommend scores each candidate against the user's preferences: a genre
// match counts 2, each matching tag counts 1. Matching is case-insensitive.
// Ties keep catalog order, so results are deterministic for a given
// catalog.
func (b *LocalBackend) Recommend(_ context.Context, user store.User, candidates []store.Movie, k int) ([]store.Movie, error) {
	prefs := make(map[string]struct{}, len(user.Preferences))
	for _, p := range user.Preferences {
		prefs[strings.ToLower(strings.TrimSpace(p))] = struct{}{}
	}

	type scored struct {
		movie store.Movie
		score int
	}
	ranked := make([]scored, 0, len(candidates))
	for _, m := range candidates {
		score := 0
		if _, ok := prefs[strings.ToLower(m.Genre)]; ok {
			score += 2
		}
		for _, tag := range m.Tags {
			if _, ok := prefs[strings.ToLower(tag)]; ok {
				score++
			}
		}
		ranked = append(ranked, scored{movie: m.Clone(), score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if k > len(ranked) {
		k = len(ranked)
	}
	out := make([]store.Movie, 0, k)
	for _, r := range ranked[:k] {
		out = append(out, r.movie)
	}
	return out, nil
}
