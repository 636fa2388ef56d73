// Movie Library - Educational Movie Catalog with AI Recommendations
// Copyright 2026 alotaibiaseel22-ops
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alotaibiaseel22-ops/movie-library

package recommend

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/alotaibiaseel22-ops/movie-library/internal/config"
	"github.com/alotaibiaseel22-ops/movie-library/internal/store"
)

// ResilientBackend wraps a remote backend with a circuit breaker and a
// rate limiter, and degrades to a fallback backend (normally the local
// heuristic) when the remote is throttled, open, or failing. It never
// returns a remote error to the caller.
type ResilientBackend struct {
	remote   Backend
	fallback Backend
	breaker  *gobreaker.CircuitBreaker[[]store.Movie]
	limiter  *rate.Limiter
	logger   zerolog.Logger
}

// NewResilientBackend wraps remote with breaker and rate-limit settings
// from cfg. fallback must be a backend that cannot fail, such as
// LocalBackend.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewResilientBackend(remote, fallback Backend, cfg config.AIConfig, logger zerolog.Logger) *ResilientBackend {
	log := logger.With().Str("component", "recommend.resilient").Str("backend", remote.Name()).Logger()

	settings := gobreaker.Settings{
		Name:        remote.Name(),
		MaxRequests: cfg.Breaker.MaxRequests,
		Interval:    cfg.Breaker.Interval,
		Timeout:     cfg.Breaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.Breaker.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("name", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
		},
	}

	return &ResilientBackend{
		remote:   remote,
		fallback: fallback,
		breaker:  gobreaker.NewCircuitBreaker[[]store.Movie](settings),
		limiter:  rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst),
		logger:   log,
	}
}

// Name implements Backend. The wrapper reports the remote's name so logs
// and diagnostics name the backend actually configured.
func (b *ResilientBackend) Name() string { return b.remote.Name() }

// Recommend implements Backend. The remote call runs inside the breaker;
// a throttled, rejected, or failed call falls back to the local ranking.
func (b *ResilientBackend) Recommend(ctx context.Context, user store.User, candidates []store.Movie, k int) ([]store.Movie, error) {
	if !b.limiter.Allow() {
		b.logger.Warn().Msg("rate limit exceeded, using fallback ranking")
		return b.fallback.Recommend(ctx, user, candidates, k)
	}

	ranked, err := b.breaker.Execute(func() ([]store.Movie, error) {
		return b.remote.Recommend(ctx, user, candidates, k)
	})
	if err != nil {
		b.logger.Warn().Err(err).Msg("remote backend failed, using fallback ranking")
		return b.fallback.Recommend(ctx, user, candidates, k)
	}
	return ranked, nil
}
