// Movie Library - Educational Movie Catalog with AI Recommendations
// Copyright 2026 alotaibiaseel22-ops
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alotaibiaseel22-ops/movie-library

package account

import (
	"strings"

	"github.com/google/uuid"

	"github.com/alotaibiaseel22-ops/movie-library/internal/store"
)

// NewUser builds an unregistered user record. The display name defaults to
// the username when empty; call Register to validate and persist it.
func NewUser(username, password, name string, preferences []string) store.User {
	return Normalize(store.User{
		Username:    username,
		Password:    password,
		Name:        name,
		Preferences: preferences,
	})
}

// Normalize trims whitespace, defaults the display name to the username,
// replaces a nil preference list with an empty one, and assigns an id when
// missing.
func Normalize(u store.User) store.User {
	u.Username = strings.TrimSpace(u.Username)
	u.Name = strings.TrimSpace(u.Name)
	if u.Name == "" {
		u.Name = u.Username
	}
	if u.Preferences == nil {
		u.Preferences = []string{}
	}
	if u.ID == "" {
		u.ID = newUserID()
	}
	return u
}

func newUserID() string {
	id := uuid.New()
	return "u-" + strings.ReplaceAll(id.String(), "-", "")[:8]
}
