// Movie Library - Educational Movie Catalog with AI Recommendations
// Copyright 2026 alotaibiaseel22-ops
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alotaibiaseel22-ops/movie-library

package store

import (
	"maps"
	"slices"

	"github.com/goccy/go-json"
)

// Movie is one catalog record. ID is the unique, immutable key within the
// movies collection. Extra holds fields outside the known schema so that
// unknown fields round-trip through persistence untouched.
type Movie struct {
	ID    string   `validate:"required"`
	Title string   `validate:"required"`
	Genre string   `validate:"required"`
	Tags  []string
	Extra map[string]any
}

// User is one account record. Username is unique case-insensitively after
// trimming; Password is an opaque string compared verbatim. Extra holds
// unknown fields for lossless round-tripping.
type User struct {
	ID          string `validate:"required"`
	Name        string
	Username    string `validate:"required"`
	Password    string `validate:"required"`
	Preferences []string
	Extra       map[string]any
}

// MarshalJSON flattens the record into a single JSON object, merging Extra
// fields alongside the named ones. Named fields win on key collisions.
func (m Movie) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(m.Extra)+4)
	maps.Copy(doc, m.Extra)
	doc["id"] = m.ID
	doc["title"] = m.Title
	doc["genre"] = m.Genre
	doc["tags"] = emptyIfNil(m.Tags)
	return json.Marshal(doc)
}

// UnmarshalJSON splits a flat JSON object into the named fields and the
// Extra side-mapping. Fields with unexpected types are left zero rather
// than failing the whole document.
func (m *Movie) UnmarshalJSON(data []byte) error {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	m.ID = takeString(doc, "id")
	m.Title = takeString(doc, "title")
	m.Genre = takeString(doc, "genre")
	m.Tags = takeStringSlice(doc, "tags")
	m.Extra = remainder(doc)
	return nil
}

// MarshalJSON flattens the record into a single JSON object, merging Extra
// fields alongside the named ones. Named fields win on key collisions.
func (u User) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(u.Extra)+5)
	maps.Copy(doc, u.Extra)
	doc["id"] = u.ID
	doc["name"] = u.Name
	doc["username"] = u.Username
	doc["password"] = u.Password
	doc["preferences"] = emptyIfNil(u.Preferences)
	return json.Marshal(doc)
}

// UnmarshalJSON splits a flat JSON object into the named fields and the
// Extra side-mapping.
func (u *User) UnmarshalJSON(data []byte) error {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	u.ID = takeString(doc, "id")
	u.Name = takeString(doc, "name")
	u.Username = takeString(doc, "username")
	u.Password = takeString(doc, "password")
	u.Preferences = takeStringSlice(doc, "preferences")
	u.Extra = remainder(doc)
	return nil
}

// Clone returns a deep-enough copy: slices and the Extra map are copied so
// that callers can mutate the result without corrupting store state. Values
// inside Extra are shared.
func (m Movie) Clone() Movie {
	c := m
	c.Tags = slices.Clone(m.Tags)
	c.Extra = maps.Clone(m.Extra)
	return c
}

// Clone returns a copy safe for external mutation. See Movie.Clone.
func (u User) Clone() User {
	c := u
	c.Preferences = slices.Clone(u.Preferences)
	c.Extra = maps.Clone(u.Extra)
	return c
}

// CloneMovies copies a collection record by record.
func CloneMovies(in []Movie) []Movie {
	out := make([]Movie, len(in))
	for i, m := range in {
		out[i] = m.Clone()
	}
	return out
}

// CloneUsers copies a collection record by record.
func CloneUsers(in []User) []User {
	out := make([]User, len(in))
	for i, u := range in {
		out[i] = u.Clone()
	}
	return out
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// takeString removes key from doc and returns it as a string, or "" when
// absent or not a string.
func takeString(doc map[string]any, key string) string {
	v, ok := doc[key]
	if !ok {
		return ""
	}
	delete(doc, key)
	s, _ := v.(string)
	return s
}

// takeStringSlice removes key from doc and returns it as a string slice,
// skipping non-string elements.
func takeStringSlice(doc map[string]any, key string) []string {
	v, ok := doc[key]
	if !ok {
		return nil
	}
	delete(doc, key)
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, e := range raw {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// remainder returns the leftover unknown fields, or nil when there are none.
func remainder(doc map[string]any) map[string]any {
	if len(doc) == 0 {
		return nil
	}
	return doc
}
