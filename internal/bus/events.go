// Movie Library - Educational Movie Catalog with AI Recommendations
// Copyright 2026 alotaibiaseel22-ops
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alotaibiaseel22-ops/movie-library

package bus

// Canonical event names published by the write-side services. Consumers
// subscribe by these constants rather than repeating string literals.
const (
	// EventMovieAdded is published after a movie has been persisted.
	// Payload: KeyMovie -> store.Movie.
	EventMovieAdded = "catalog.movie.added"

	// EventUserRegistered is published after a new user has been persisted.
	// Payload: KeyUser -> store.User.
	EventUserRegistered = "account.user.registered"
)

// Well-known payload keys.
const (
	KeyMovie = "movie"
	KeyUser  = "user"
)
