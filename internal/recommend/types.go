// Movie Library - Educational Movie Catalog with AI Recommendations
// Copyright 2026 alotaibiaseel22-ops
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alotaibiaseel22-ops/movie-library

// Package recommend produces ranked movie lists for users and memoizes
// them. Rankings come from a pluggable backend (a local heuristic or a
// remote AI API); cached entries are invalidated by catalog and account
// events rather than TTLs.
//
// The package depends on the store types but not on the catalog or
// account services. The narrow UserSource and MovieSource interfaces let
// those services plug in without circular imports.
package recommend

import (
	"context"
	"errors"

	"github.com/alotaibiaseel22-ops/movie-library/internal/store"
)

// ErrEmptyCatalog is returned when a recommendation is requested but no
// movies exist to rank.
var ErrEmptyCatalog = errors.New("no movies in catalog")

// Backend ranks catalog candidates for a user. Implementations must not
// mutate the candidate slice and must return at most k movies.
type Backend interface {
	// Name identifies the backend in logs and diagnostics.
	Name() string

	// Recommend returns up to k candidates ranked for the user.
	Recommend(ctx context.Context, user store.User, candidates []store.Movie, k int) ([]store.Movie, error)
}

// UserSource resolves a user by id. The account service implements this.
type UserSource interface {
	Get(id string) (store.User, error)
}

// MovieSource lists the current catalog. The catalog service implements
// this.
type MovieSource interface {
	List() []store.Movie
}
