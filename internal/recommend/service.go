// Movie Library - Educational Movie Catalog with AI Recommendations
// Copyright 2026 alotaibiaseel22-ops
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alotaibiaseel22-ops/movie-library

package recommend

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/alotaibiaseel22-ops/movie-library/internal/bus"
	"github.com/alotaibiaseel22-ops/movie-library/internal/store"
)

// cacheKey identifies one memoized ranking. The same user with different
// requested counts occupies distinct entries.
type cacheKey struct {
	userID string
	count  int
}

// Service computes and caches per-user rankings. It is safe for
// concurrent use.
//
// Cache entries never expire on their own; they are dropped when the
// underlying data changes:
//
//   - a catalog.movie.added event clears the whole cache, since a new
//     movie can appear in any user's ranking;
//   - an account.user.registered event evicts only that user's entry at
//     the default count. Entries at other counts are left alone, so a
//     re-registered id can still observe a stale non-default ranking.
//     Callers that need stronger freshness should call InvalidateUser.
type Service struct {
	backend      Backend
	users        UserSource
	movies       MovieSource
	logger       zerolog.Logger
	defaultCount int

	mu    sync.RWMutex
	cache map[cacheKey][]store.Movie
}

// NewService creates a recommendation service and subscribes its cache
// invalidation handlers on the bus. defaultCount is used when a caller
// does not request a specific list length; values below 1 fall back
// to 5.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewService(backend Backend, users UserSource, movies MovieSource, b *bus.Bus, defaultCount int, logger zerolog.Logger) *Service {
	if defaultCount < 1 {
		defaultCount = 5
	}
	s := &Service{
		backend:      backend,
		users:        users,
		movies:       movies,
		logger:       logger.With().Str("component", "recommend").Logger(),
		defaultCount: defaultCount,
		cache:        make(map[cacheKey][]store.Movie),
	}

	b.Subscribe(bus.EventMovieAdded, s.onMovieAdded)
	b.Subscribe(bus.EventUserRegistered, s.onUserRegistered)

	return s
}

// RecommendForUser returns up to k movies ranked for the user, serving
// from cache when a ranking for (userID, k) is already memoized. k values
// below 1 mean the default count.
func (s *Service) RecommendForUser(ctx context.Context, userID string, k int) ([]store.Movie, error) {
	if k < 1 {
		k = s.defaultCount
	}
	key := cacheKey{userID: userID, count: k}

	if cached, ok := s.lookup(key); ok {
		s.logger.Debug().Str("user_id", userID).Int("count", k).Msg("cache hit")
		return cached, nil
	}

	user, err := s.users.Get(userID)
	if err != nil {
		return nil, err
	}

	candidates := s.movies.List()
	if len(candidates) == 0 {
		return nil, ErrEmptyCatalog
	}

	ranked, err := s.backend.Recommend(ctx, user, candidates, k)
	if err != nil {
		return nil, fmt.Errorf("backend %s: %w", s.backend.Name(), err)
	}
	if len(ranked) > k {
		ranked = ranked[:k]
	}

	s.mu.Lock()
	s.cache[key] = store.CloneMovies(ranked)
	s.mu.Unlock()

	s.logger.Debug().
		Str("user_id", userID).
		Int("count", k).
		Int("returned", len(ranked)).
		Str("backend", s.backend.Name()).
		Msg("ranking computed")

	return ranked, nil
}

// Lookup reports the memoized ranking for (userID, k) without computing
// anything. k values below 1 mean the default count.
func (s *Service) Lookup(userID string, k int) ([]store.Movie, bool) {
	if k < 1 {
		k = s.defaultCount
	}
	return s.lookup(cacheKey{userID: userID, count: k})
}

func (s *Service) lookup(key cacheKey) ([]store.Movie, bool) {
	s.mu.RLock()
	cached, ok := s.cache[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return store.CloneMovies(cached), true
}

// InvalidateAll drops every cached ranking.
func (s *Service) InvalidateAll() {
	s.mu.Lock()
	n := len(s.cache)
	s.cache = make(map[cacheKey][]store.Movie)
	s.mu.Unlock()
	if n > 0 {
		s.logger.Debug().Int("entries", n).Msg("cache cleared")
	}
}

// InvalidateUser drops every cached ranking for one user, at any count.
func (s *Service) InvalidateUser(userID string) {
	s.mu.Lock()
	for key := range s.cache {
		if key.userID == userID {
			delete(s.cache, key)
		}
	}
	s.mu.Unlock()
}

// CacheLen reports the number of memoized rankings.
func (s *Service) CacheLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cache)
}

func (s *Service) onMovieAdded(bus.Payload) error {
	s.InvalidateAll()
	return nil
}

func (s *Service) onUserRegistered(p bus.Payload) error {
	u, ok := p[bus.KeyUser].(store.User)
	if !ok {
		return fmt.Errorf("payload %q is %T, want store.User", bus.KeyUser, p[bus.KeyUser])
	}
	s.mu.Lock()
	delete(s.cache, cacheKey{userID: u.ID, count: s.defaultCount})
	s.mu.Unlock()
	return nil
}
