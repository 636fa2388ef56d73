// Movie Library - Educational Movie Catalog with AI Recommendations
// Copyright 2026 alotaibiaseel22-ops
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alotaibiaseel22-ops/movie-library

// Package store implements the durable, crash-consistent data store backing
// the movie catalog and the user accounts.
//
// The store owns two in-memory collections (movies, users), each mirrored to
// an on-disk JSON array file. After any successful mutation-plus-save the
// on-disk document exactly reflects the in-memory collection; the in-memory
// collections are the single source of truth for the lifetime of the
// process, and disk is read only at construction or on an explicit Reload.
//
// # Atomic persistence
//
// Every save writes the full JSON array to a temporary file in the target
// directory, fsyncs it, and renames it over the target. The rename is the
// only step that makes new content visible: a crash before the rename leaves
// the previous file intact, a crash after it leaves the new file intact, and
// a truncated or half-written target is never observable.
//
// # Bootstrap and tolerance
//
// Missing data files are created lazily (parent directories included) with
// an empty JSON array. Files whose content is empty, not valid JSON, or not
// a JSON array degrade to an empty collection rather than failing
// construction; corrupt data must not keep the application from starting.
// File-system errors, by contrast, are always fatal to the operation that
// hit them.
//
// # Concurrency
//
// One RWMutex guards each collection's read-modify-write-then-persist
// sequence (see MutateMovies / MutateUsers). Accessors hand out the live
// slices for in-process adapters; the adapter layer is responsible for
// returning defensive copies to its own callers. The store assumes a single
// OS process; there is no cross-process coordination.
package store
