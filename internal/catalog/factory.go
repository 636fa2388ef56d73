// Movie Library - Educational Movie Catalog with AI Recommendations
// Copyright 2026 alotaibiaseel22-ops
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alotaibiaseel22-ops/movie-library

package catalog

import (
	"strings"

	"github.com/google/uuid"

	"github.com/alotaibiaseel22-ops/movie-library/internal/store"
)

// NewMovie builds a normalized movie record with a generated id.
func NewMovie(title, genre string, tags []string) store.Movie {
	return Normalize(store.Movie{Title: title, Genre: genre, Tags: tags})
}

// Normalize trims the text fields, defaults tags to an empty list, and
// generates an id when the record carries none.
func Normalize(m store.Movie) store.Movie {
	m.Title = strings.TrimSpace(m.Title)
	m.Genre = strings.TrimSpace(m.Genre)
	if m.Tags == nil {
		m.Tags = []string{}
	}
	if m.ID == "" {
		m.ID = newMovieID()
	}
	return m
}

// newMovieID generates a short catalog id like "m-3f2a9c1d".
func newMovieID() string {
	return "m-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
