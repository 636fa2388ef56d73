// Movie Library - Educational Movie Catalog with AI Recommendations
// Copyright 2026 alotaibiaseel22-ops
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alotaibiaseel22-ops/movie-library

package gateway

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/alotaibiaseel22-ops/movie-library/internal/config"
	"github.com/alotaibiaseel22-ops/movie-library/internal/store"
)

func newTestGateway(t *testing.T) *Gateway {
	t.Helper()
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "movies.json"), filepath.Join(dir, "users.json"), zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	cfg := &config.Config{
		AI:        config.AIConfig{Backend: "local"},
		Recommend: config.RecommendConfig{DefaultCount: 5},
	}
	return New(cfg, st, zerolog.Nop())
}

// End to end: register, add movies, recommend, and verify the new-movie
// event reaches the cache through the shared bus.
func TestGatewayFlow(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()

	u, err := g.Accounts.Register(store.User{Username: "alice", Password: "pw", Preferences: []string{"Sci-Fi"}})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := g.Catalog.Add(store.Movie{Title: "Alien", Genre: "Sci-Fi", Tags: []string{"space"}}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := g.Catalog.Add(store.Movie{Title: "Heat", Genre: "Crime"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	ranked, err := g.RecommendForUser(ctx, u.ID, 2)
	if err != nil {
		t.Fatalf("RecommendForUser: %v", err)
	}
	if len(ranked) != 2 || ranked[0].Title != "Alien" {
		t.Errorf("ranked = %v", ranked)
	}

	// Adding a movie must invalidate the memoized ranking.
	if _, err := g.Catalog.Add(store.Movie{Title: "Arrival", Genre: "Sci-Fi"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if g.Recommend.CacheLen() != 0 {
		t.Error("cache should be empty after a catalog change")
	}

	ranked, err = g.RecommendForUser(ctx, u.ID, 3)
	if err != nil {
		t.Fatalf("RecommendForUser: %v", err)
	}
	if len(ranked) != 3 {
		t.Errorf("recomputed ranking has %d movies, want 3", len(ranked))
	}
}

func TestGatewayAuthenticate(t *testing.T) {
	g := newTestGateway(t)

	if _, err := g.Accounts.Register(store.User{Username: "alice", Password: "pw"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := g.Accounts.Authenticate("alice", "pw"); err != nil {
		t.Errorf("Authenticate: %v", err)
	}
}
