// Movie Library - Educational Movie Catalog with AI Recommendations
// Copyright 2026 alotaibiaseel22-ops
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alotaibiaseel22-ops/movie-library

package store

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestMovieUnknownFieldsRoundTrip(t *testing.T) {
	src := []byte(`{"id":"m-1","title":"Dune","genre":"Sci-Fi","tags":["space"],"year":2021,"director":"Villeneuve"}`)

	var m Movie
	if err := json.Unmarshal(src, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if m.ID != "m-1" || m.Title != "Dune" || m.Genre != "Sci-Fi" {
		t.Errorf("named fields not extracted: %+v", m)
	}
	if len(m.Tags) != 1 || m.Tags[0] != "space" {
		t.Errorf("tags = %v, want [space]", m.Tags)
	}
	if m.Extra["director"] != "Villeneuve" {
		t.Errorf("extra field lost: %#v", m.Extra)
	}

	out, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if doc["year"] != float64(2021) {
		t.Errorf("year did not survive round-trip: %#v", doc)
	}
	if doc["id"] != "m-1" {
		t.Errorf("id did not survive round-trip: %#v", doc)
	}
}

func TestMovieMarshalEmitsEmptyTags(t *testing.T) {
	out, err := json.Marshal(Movie{ID: "m-1", Title: "Heat", Genre: "Crime"})
	if err != nil {
		t.Fatal(err)
	}

	var doc map[string]any
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatal(err)
	}
	tags, ok := doc["tags"].([]any)
	if !ok {
		t.Fatalf("tags missing or wrong type: %#v", doc["tags"])
	}
	if len(tags) != 0 {
		t.Errorf("tags = %v, want empty array", tags)
	}
}

func TestUserUnknownFieldsRoundTrip(t *testing.T) {
	src := []byte(`{"id":"u-1","name":"Ada","username":"ada","password":"x","preferences":["sci-fi"],"theme":"dark"}`)

	var u User
	if err := json.Unmarshal(src, &u); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if u.Username != "ada" || u.Password != "x" {
		t.Errorf("named fields not extracted: %+v", u)
	}
	if u.Extra["theme"] != "dark" {
		t.Errorf("extra field lost: %#v", u.Extra)
	}

	out, err := json.Marshal(u)
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatal(err)
	}
	if doc["theme"] != "dark" {
		t.Errorf("theme did not survive round-trip: %#v", doc)
	}
}

func TestRecordTolerantOfWrongTypes(t *testing.T) {
	// A numeric id or non-array tags must not fail the whole document.
	var m Movie
	if err := json.Unmarshal([]byte(`{"id":42,"title":"Odd","genre":"Drama","tags":"nope"}`), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m.ID != "" {
		t.Errorf("non-string id coerced to %q, want empty", m.ID)
	}
	if m.Tags != nil {
		t.Errorf("non-array tags coerced to %v, want nil", m.Tags)
	}
	if m.Title != "Odd" {
		t.Errorf("valid sibling field lost: %+v", m)
	}
}

func TestMovieCloneIsolation(t *testing.T) {
	orig := Movie{
		ID: "m-1", Title: "Dune", Genre: "Sci-Fi",
		Tags:  []string{"space"},
		Extra: map[string]any{"year": 2021},
	}

	c := orig.Clone()
	c.Tags[0] = "desert"
	c.Extra["year"] = 1984

	if orig.Tags[0] != "space" {
		t.Error("clone shares tags slice with original")
	}
	if orig.Extra["year"] != 2021 {
		t.Error("clone shares extra map with original")
	}
}
