// Movie Library - Educational Movie Catalog with AI Recommendations
// Copyright 2026 alotaibiaseel22-ops
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alotaibiaseel22-ops/movie-library

// Package account implements user management over the shared store.
//
// This is an educational codebase: passwords are stored and compared in
// plaintext on purpose. Usernames are unique case-insensitively after
// trimming. Registration publishes an account.user.registered event once
// the record has been persisted.
package account

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/alotaibiaseel22-ops/movie-library/internal/bus"
	"github.com/alotaibiaseel22-ops/movie-library/internal/store"
	"github.com/alotaibiaseel22-ops/movie-library/internal/validation"
)

// ErrUserNotFound is returned when a lookup yields no record.
var ErrUserNotFound = errors.New("user not found")

// ErrInvalidCredentials is returned by Authenticate for an unknown username
// or a wrong password. The two cases are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Service provides account operations over the shared store.
type Service struct {
	store  *store.Store
	bus    *bus.Bus
	logger zerolog.Logger
}

// NewService creates an account service.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewService(st *store.Store, b *bus.Bus, logger zerolog.Logger) *Service {
	return &Service{
		store:  st,
		bus:    b,
		logger: logger.With().Str("component", "account").Logger(),
	}
}

// List returns a copy of every user in insertion order.
func (s *Service) List() []store.User {
	return store.CloneUsers(s.store.Users())
}

// Get returns a copy of the user with the given id.
func (s *Service) Get(id string) (store.User, error) {
	for _, u := range s.store.Users() {
		if u.ID == id {
			return u.Clone(), nil
		}
	}
	return store.User{}, fmt.Errorf("%w: %s", ErrUserNotFound, id)
}

// GetByUsername returns a copy of the user with the given username,
// compared case-insensitively after trimming.
func (s *Service) GetByUsername(username string) (store.User, error) {
	needle := canonicalUsername(username)
	for _, u := range s.store.Users() {
		if canonicalUsername(u.Username) == needle {
			return u.Clone(), nil
		}
	}
	return store.User{}, fmt.Errorf("%w: %s", ErrUserNotFound, username)
}

// Register normalizes, validates, and persists a new user, then publishes
// the user-registered event. Duplicate ids and duplicate usernames (case-
// insensitive) fail with a ValidationError and leave the collection
// unchanged.
func (s *Service) Register(u store.User) (store.User, error) {
	u = Normalize(u)

	if err := validation.Struct(u); err != nil {
		return store.User{}, err
	}

	err := s.store.MutateUsers(func(users []store.User) ([]store.User, error) {
		needle := canonicalUsername(u.Username)
		for _, existing := range users {
			if existing.ID == u.ID {
				return nil, validation.NewError("id", fmt.Sprintf("user %q already exists", u.ID))
			}
			if canonicalUsername(existing.Username) == needle {
				return nil, validation.NewError("username", fmt.Sprintf("username %q is already taken", u.Username))
			}
		}
		return append(users, u.Clone()), nil
	})
	if err != nil {
		return store.User{}, err
	}

	s.logger.Info().Str("user_id", u.ID).Str("username", u.Username).Msg("user registered")
	s.bus.Publish(bus.EventUserRegistered, bus.Payload{bus.KeyUser: u.Clone()})
	return u, nil
}

// Authenticate looks the user up by username and compares the password
// verbatim. Password hashing is out of scope for this codebase.
func (s *Service) Authenticate(username, password string) (store.User, error) {
	u, err := s.GetByUsername(username)
	if err != nil {
		return store.User{}, ErrInvalidCredentials
	}
	if u.Password != password {
		return store.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// Update merges patch fields onto the user with the given id and persists
// the result. The id is immutable and ignored in the patch.
func (s *Service) Update(id string, patch map[string]any) (store.User, error) {
	var updated store.User
	err := s.store.MutateUsers(func(users []store.User) ([]store.User, error) {
		for i, u := range users {
			if u.ID != id {
				continue
			}
			next := applyUserPatch(u.Clone(), patch)
			if err := validation.Struct(next); err != nil {
				return nil, err
			}
			out := append([]store.User(nil), users...)
			out[i] = next
			updated = next.Clone()
			return out, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, id)
	})
	if err != nil {
		return store.User{}, err
	}
	return updated, nil
}

// Delete removes the user with the given id and persists the collection.
func (s *Service) Delete(id string) error {
	return s.store.MutateUsers(func(users []store.User) ([]store.User, error) {
		for i, u := range users {
			if u.ID == id {
				return append(users[:i:i], users[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, id)
	})
}

// applyUserPatch merges a field patch onto a user. Known fields are
// type-coerced; unknown fields land in Extra.
func applyUserPatch(u store.User, patch map[string]any) store.User {
	for k, v := range patch {
		switch k {
		case "id":
			// Immutable.
		case "name":
			if s, ok := v.(string); ok {
				u.Name = s
			}
		case "username":
			if s, ok := v.(string); ok {
				u.Username = strings.TrimSpace(s)
			}
		case "password":
			if s, ok := v.(string); ok {
				u.Password = s
			}
		case "preferences":
			if prefs, ok := toStringSlice(v); ok {
				u.Preferences = prefs
			}
		default:
			if u.Extra == nil {
				u.Extra = make(map[string]any)
			}
			u.Extra[k] = v
		}
	}
	return u
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

// canonicalUsername normalizes a username for uniqueness comparison.
func canonicalUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
