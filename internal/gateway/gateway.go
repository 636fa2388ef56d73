// Movie Library - Educational Movie Catalog with AI Recommendations
// Copyright 2026 alotaibiaseel22-ops
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alotaibiaseel22-ops/movie-library

// Package gateway assembles the application services behind one facade
// so frontends (the CLI, future transports) depend on a single type.
package gateway

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/alotaibiaseel22-ops/movie-library/internal/account"
	"github.com/alotaibiaseel22-ops/movie-library/internal/bus"
	"github.com/alotaibiaseel22-ops/movie-library/internal/catalog"
	"github.com/alotaibiaseel22-ops/movie-library/internal/config"
	"github.com/alotaibiaseel22-ops/movie-library/internal/recommend"
	"github.com/alotaibiaseel22-ops/movie-library/internal/store"
)

// Gateway bundles the catalog, account, and recommendation services over
// one store and one event bus.
type Gateway struct {
	Catalog   *catalog.Service
	Accounts  *account.Service
	Recommend *recommend.Service
	Bus       *bus.Bus
	Store     *store.Store
}

// New wires the full service graph: store, bus, services, and the
// configured ranking backend. The recommendation cache subscribes to the
// bus inside recommend.NewService.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(cfg *config.Config, st *store.Store, logger zerolog.Logger) *Gateway {
	b := bus.New(logger)
	catalogSvc := catalog.NewService(st, b, logger)
	accountSvc := account.NewService(st, b, logger)
	backend := recommend.NewBackend(cfg.AI, logger)
	recommendSvc := recommend.NewService(backend, accountSvc, catalogSvc, b, cfg.Recommend.DefaultCount, logger)

	return &Gateway{
		Catalog:   catalogSvc,
		Accounts:  accountSvc,
		Recommend: recommendSvc,
		Bus:       b,
		Store:     st,
	}
}

// RecommendForUser proxies to the recommendation service.
func (g *Gateway) RecommendForUser(ctx context.Context, userID string, k int) ([]store.Movie, error) {
	return g.Recommend.RecommendForUser(ctx, userID, k)
}
