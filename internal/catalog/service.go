// Movie Library - Educational Movie Catalog with AI Recommendations
// Copyright 2026 alotaibiaseel22-ops
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alotaibiaseel22-ops/movie-library

// Package catalog implements CRUD operations on the movie collection.
//
// The service is a thin adapter over the store: it validates input, enforces
// id uniqueness, persists through the store's mutate-then-save path, and
// publishes a catalog.movie.added event after each successful insert. Reads
// hand out defensive copies so callers can never corrupt store state.
package catalog

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/alotaibiaseel22-ops/movie-library/internal/bus"
	"github.com/alotaibiaseel22-ops/movie-library/internal/store"
	"github.com/alotaibiaseel22-ops/movie-library/internal/validation"
)

// ErrMovieNotFound is returned when a lookup by id yields no record.
var ErrMovieNotFound = errors.New("movie not found")

// Service provides catalog operations over the shared store.
type Service struct {
	store  *store.Store
	bus    *bus.Bus
	logger zerolog.Logger
}

// NewService creates a catalog service.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewService(st *store.Store, b *bus.Bus, logger zerolog.Logger) *Service {
	return &Service{
		store:  st,
		bus:    b,
		logger: logger.With().Str("component", "catalog").Logger(),
	}
}

// List returns a copy of every movie in insertion order.
func (s *Service) List() []store.Movie {
	return store.CloneMovies(s.store.Movies())
}

// Get returns a copy of the movie with the given id.
func (s *Service) Get(id string) (store.Movie, error) {
	for _, m := range s.store.Movies() {
		if m.ID == id {
			return m.Clone(), nil
		}
	}
	return store.Movie{}, fmt.Errorf("%w: %s", ErrMovieNotFound, id)
}

// Add normalizes, validates, and persists a movie, then publishes the
// movie-added event. A missing id is generated; a duplicate id fails with a
// ValidationError and leaves the collection unchanged.
func (s *Service) Add(m store.Movie) (store.Movie, error) {
	m = Normalize(m)

	if err := validation.Struct(m); err != nil {
		return store.Movie{}, err
	}

	err := s.store.MutateMovies(func(movies []store.Movie) ([]store.Movie, error) {
		for _, existing := range movies {
			if existing.ID == m.ID {
				return nil, validation.NewError("id", fmt.Sprintf("movie %q already exists", m.ID))
			}
		}
		return append(movies, m.Clone()), nil
	})
	if err != nil {
		return store.Movie{}, err
	}

	s.logger.Info().Str("movie_id", m.ID).Str("title", m.Title).Msg("movie added")
	s.bus.Publish(bus.EventMovieAdded, bus.Payload{bus.KeyMovie: m.Clone()})
	return m, nil
}

// Update merges patch fields onto the movie with the given id and persists
// the result. The id itself is immutable and ignored in the patch.
func (s *Service) Update(id string, patch map[string]any) (store.Movie, error) {
	var updated store.Movie
	err := s.store.MutateMovies(func(movies []store.Movie) ([]store.Movie, error) {
		for i, m := range movies {
			if m.ID != id {
				continue
			}
			next := applyMoviePatch(m.Clone(), patch)
			if err := validation.Struct(next); err != nil {
				return nil, err
			}
			out := append([]store.Movie(nil), movies...)
			out[i] = next
			updated = next.Clone()
			return out, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrMovieNotFound, id)
	})
	if err != nil {
		return store.Movie{}, err
	}
	return updated, nil
}

// Delete removes the movie with the given id and persists the collection.
func (s *Service) Delete(id string) error {
	err := s.store.MutateMovies(func(movies []store.Movie) ([]store.Movie, error) {
		for i, m := range movies {
			if m.ID == id {
				return append(movies[:i:i], movies[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrMovieNotFound, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info().Str("movie_id", id).Msg("movie deleted")
	return nil
}

// applyMoviePatch merges a field patch onto a movie. Known fields are
// type-coerced; unknown fields land in Extra. Patch values with unexpected
// types are skipped.
func applyMoviePatch(m store.Movie, patch map[string]any) store.Movie {
	for k, v := range patch {
		switch k {
		case "id":
			// Immutable.
		case "title":
			if s, ok := v.(string); ok {
				m.Title = s
			}
		case "genre":
			if s, ok := v.(string); ok {
				m.Genre = s
			}
		case "tags":
			if tags, ok := toStringSlice(v); ok {
				m.Tags = tags
			}
		default:
			if m.Extra == nil {
				m.Extra = make(map[string]any)
			}
			m.Extra[k] = v
		}
	}
	return m
}

func toStringSlice(v any) ([]string, bool) {
	switch vv := v.(type) {
	case []string:
		return vv, true
	case []any:
		out := make([]string, 0, len(vv))
		for _, e := range vv {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}
