// Movie Library - Educational Movie Catalog with AI Recommendations
// Copyright 2026 alotaibiaseel22-ops
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alotaibiaseel22-ops/movie-library

package recommend

import (
	"context"
	"testing"

	"github.com/alotaibiaseel22-ops/movie-library/internal/store"
)

func catalogFixture() []store.Movie {
	return []store.Movie{
		{ID: "m-1", Title: "Heat", Genre: "Crime", Tags: []string{"heist"}},
		{ID: "m-2", Title: "Alien", Genre: "Sci-Fi", Tags: []string{"space", "horror"}},
		{ID: "m-3", Title: "Arrival", Genre: "Sci-Fi", Tags: []string{"aliens"}},
		{ID: "m-4", Title: "Clue", Genre: "Comedy", Tags: []string{"mystery"}},
	}
}

func TestLocalRanksByPreferenceOverlap(t *testing.T) {
	b := NewLocalBackend()
	user := store.User{ID: "u-1", Preferences: []string{"Sci-Fi", "horror"}}

	ranked, err := b.Recommend(context.Background(), user, catalogFixture(), 3)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(ranked) != 3 {
		t.Fatalf("got %d movies, want 3", len(ranked))
	}
	// Alien: genre + tag = 3. Arrival: genre = 2. The rest score 0 and
	// keep catalog order.
	if ranked[0].ID != "m-2" || ranked[1].ID != "m-3" {
		t.Errorf("order = %s, %s, %s", ranked[0].ID, ranked[1].ID, ranked[2].ID)
	}
	if ranked[2].ID != "m-1" {
		t.Errorf("tie-break should keep catalog order, got %s", ranked[2].ID)
	}
}

func TestLocalMatchingIsCaseInsensitive(t *testing.T) {
	b := NewLocalBackend()
	user := store.User{ID: "u-1", Preferences: []string{"  sci-fi  "}}

	ranked, err := b.Recommend(context.Background(), user, catalogFixture(), 1)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if ranked[0].Genre != "Sci-Fi" {
		t.Errorf("top pick = %+v", ranked[0])
	}
}

func TestLocalNoPreferences(t *testing.T) {
	b := NewLocalBackend()

	ranked, err := b.Recommend(context.Background(), store.User{ID: "u-1"}, catalogFixture(), 2)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	// All scores tie at zero; catalog order wins.
	if ranked[0].ID != "m-1" || ranked[1].ID != "m-2" {
		t.Errorf("order = %s, %s", ranked[0].ID, ranked[1].ID)
	}
}

func TestLocalTruncatesToCatalogSize(t *testing.T) {
	b := NewLocalBackend()

	ranked, err := b.Recommend(context.Background(), store.User{ID: "u-1"}, catalogFixture(), 50)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(ranked) != 4 {
		t.Errorf("got %d movies, want the whole catalog", len(ranked))
	}
}

func TestLocalDoesNotMutateCandidates(t *testing.T) {
	b := NewLocalBackend()
	catalog := catalogFixture()

	ranked, err := b.Recommend(context.Background(), store.User{ID: "u-1", Preferences: []string{"Comedy"}}, catalog, 4)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	ranked[0].Tags[0] = "mutated"
	if catalog[3].Tags[0] != "mystery" {
		t.Error("ranking mutated the candidate slice")
	}
	if catalog[0].ID != "m-1" {
		t.Error("candidate order changed")
	}
}
