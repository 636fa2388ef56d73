// Movie Library - Educational Movie Catalog with AI Recommendations
// Copyright 2026 alotaibiaseel22-ops
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alotaibiaseel22-ops/movie-library

package store

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// Store holds the movies and users collections in memory, mirrored to two
// on-disk JSON files. See the package documentation for the persistence and
// concurrency contracts.
type Store struct {
	moviesPath string
	usersPath  string
	logger     zerolog.Logger

	moviesMu sync.RWMutex
	movies   []Movie

	usersMu sync.RWMutex
	users   []User
}

// Open constructs a store backed by the two file paths, bootstrapping
// missing files and loading existing content. It is an explicit constructor
// for dependency injection; most of the application shares one instance via
// Shared.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Open(moviesPath, usersPath string, logger zerolog.Logger) (*Store, error) {
	s := &Store{
		moviesPath: moviesPath,
		usersPath:  usersPath,
		logger:     logger.With().Str("component", "store").Logger(),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	s.logger.Debug().
		Str("movies_path", moviesPath).
		Str("users_path", usersPath).
		Int("movies", len(s.movies)).
		Int("users", len(s.users)).
		Msg("store opened")
	return s, nil
}

var (
	sharedMu sync.Mutex
	shared   *Store
)

// Shared returns the process-wide store instance, creating it on first call.
// The first caller's paths win: later calls return the existing instance
// regardless of their arguments. Safe for concurrent first access.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Shared(moviesPath, usersPath string, logger zerolog.Logger) (*Store, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if shared == nil {
		s, err := Open(moviesPath, usersPath, logger)
		if err != nil {
			return nil, err
		}
		shared = s
	}
	return shared, nil
}

// ResetShared discards the process-wide instance so the next Shared call
// constructs a fresh one. Intended for tests.
func ResetShared() {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	shared = nil
}

// load reads both collections from disk, bootstrapping missing files.
func (s *Store) load() error {
	movies, err := loadCollection[Movie](s.moviesPath, s.logger)
	if err != nil {
		return err
	}
	users, err := loadCollection[User](s.usersPath, s.logger)
	if err != nil {
		return err
	}

	s.moviesMu.Lock()
	s.movies = movies
	s.moviesMu.Unlock()

	s.usersMu.Lock()
	s.users = users
	s.usersMu.Unlock()
	return nil
}

// loadCollection reads one JSON array file. A missing file is created with
// an empty array; empty or malformed content degrades to an empty
// collection. File-system errors propagate.
func loadCollection[T any](path string, logger zerolog.Logger) ([]T, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("create data directory: %w", err)
			}
		}
		if err := writeFileAtomic(path, []byte("[]\n")); err != nil {
			return nil, fmt.Errorf("bootstrap %s: %w", path, err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []T{}, nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		logger.Warn().
			Str("path", path).
			Err(err).
			Msg("malformed data file, treating collection as empty")
		return []T{}, nil
	}
	if records == nil {
		// File contained JSON null.
		records = []T{}
	}
	return records, nil
}

// Movies returns the live movies collection. The slice is shared with the
// store: callers that hand records to external code must copy first (see
// CloneMovies). Adapters mutating the collection must go through
// MutateMovies instead.
func (s *Store) Movies() []Movie {
	s.moviesMu.RLock()
	defer s.moviesMu.RUnlock()
	return s.movies
}

// Users returns the live users collection. Same sharing contract as Movies.
func (s *Store) Users() []User {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()
	return s.users
}

// SetMovies replaces the in-memory movies collection without persisting.
func (s *Store) SetMovies(movies []Movie) {
	s.moviesMu.Lock()
	defer s.moviesMu.Unlock()
	if movies == nil {
		movies = []Movie{}
	}
	s.movies = movies
}

// SetUsers replaces the in-memory users collection without persisting.
func (s *Store) SetUsers(users []User) {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	if users == nil {
		users = []User{}
	}
	s.users = users
}

// MutateMovies runs fn against the current movies collection while holding
// the collection lock, then atomically persists the returned slice. The
// in-memory collection is updated only if both fn and the write succeed, so
// an I/O failure leaves memory and disk consistent with each other.
func (s *Store) MutateMovies(fn func(movies []Movie) ([]Movie, error)) error {
	s.moviesMu.Lock()
	defer s.moviesMu.Unlock()

	next, err := fn(s.movies)
	if err != nil {
		return err
	}
	if next == nil {
		next = []Movie{}
	}

	prev := s.movies
	s.movies = next
	if err := s.saveMoviesLocked(); err != nil {
		s.movies = prev
		return err
	}
	return nil
}

// MutateUsers is the users-collection counterpart of MutateMovies.
func (s *Store) MutateUsers(fn func(users []User) ([]User, error)) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	next, err := fn(s.users)
	if err != nil {
		return err
	}
	if next == nil {
		next = []User{}
	}

	prev := s.users
	s.users = next
	if err := s.saveUsersLocked(); err != nil {
		s.users = prev
		return err
	}
	return nil
}

// SaveMovies atomically persists the movies collection.
func (s *Store) SaveMovies() error {
	s.moviesMu.RLock()
	defer s.moviesMu.RUnlock()
	return s.saveMoviesLocked()
}

// SaveUsers atomically persists the users collection.
func (s *Store) SaveUsers() error {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()
	return s.saveUsersLocked()
}

// SaveAll persists both collections. Each file is written atomically on its
// own; there is no cross-file transaction.
func (s *Store) SaveAll() error {
	if err := s.SaveMovies(); err != nil {
		return err
	}
	return s.SaveUsers()
}

// Reload discards the in-memory state and re-reads both files, applying the
// same malformed-content tolerance as construction.
func (s *Store) Reload() error {
	return s.load()
}

func (s *Store) saveMoviesLocked() error {
	data, err := json.MarshalIndent(s.movies, "", "  ")
	if err != nil {
		return fmt.Errorf("encode movies: %w", err)
	}
	if err := writeFileAtomic(s.moviesPath, append(data, '\n')); err != nil {
		return fmt.Errorf("save movies: %w", err)
	}
	return nil
}

func (s *Store) saveUsersLocked() error {
	data, err := json.MarshalIndent(s.users, "", "  ")
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	if err := writeFileAtomic(s.usersPath, append(data, '\n')); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}
