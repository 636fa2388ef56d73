// Movie Library - Educational Movie Catalog with AI Recommendations
// Copyright 2026 alotaibiaseel22-ops
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alotaibiaseel22-ops/movie-library

// Package bus provides a process-wide synchronous publish/subscribe registry.
//
// The bus decouples write-side services from the consumers that react to
// their state changes. Delivery is synchronous and fire-and-forget: Publish
// invokes every handler registered for an event, in registration order, and
// does not return until each one has been attempted. A handler that returns
// an error or panics is logged and skipped; it can never break a sibling
// handler or the publisher.
//
// The bus is safe for concurrent use. It is constructed once in main and
// injected into every component that needs it; there is no ambient global
// instance.
package bus

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Payload carries event-specific fields.
type Payload map[string]any

// Handler reacts to a published event. A non-nil return value is logged at
// the bus boundary and otherwise ignored.
type Handler func(p Payload) error

// Subscription identifies a registered handler for later removal.
type Subscription struct {
	event string
	id    uint64
}

type registration struct {
	id uint64
	fn Handler
}

// Bus is a synchronous event registry mapping event names to ordered
// handler lists.
type Bus struct {
	logger zerolog.Logger

	mu   sync.RWMutex
	subs map[string][]registration
	next uint64
}

// New creates an empty bus.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(logger zerolog.Logger) *Bus {
	return &Bus{
		logger: logger.With().Str("component", "bus").Logger(),
		subs:   make(map[string][]registration),
	}
}

// Subscribe registers a handler for the named event. Handlers for the same
// event are invoked in registration order.
func (b *Bus) Subscribe(event string, fn Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.next++
	b.subs[event] = append(b.subs[event], registration{id: b.next, fn: fn})
	return Subscription{event: event, id: b.next}
}

// Unsubscribe removes a previously registered handler. Removing a
// subscription twice is a no-op.
func (b *Bus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.subs[sub.event]
	for i, r := range regs {
		if r.id == sub.id {
			b.subs[sub.event] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}

// Publish delivers the payload to every handler registered for the event,
// sequentially and in registration order. Handler failures are swallowed:
// an error return or a panic is logged and the remaining handlers still run.
// Publish returns once every handler has been attempted.
func (b *Bus) Publish(event string, p Payload) {
	b.mu.RLock()
	regs := b.subs[event]
	snapshot := make([]registration, len(regs))
	copy(snapshot, regs)
	b.mu.RUnlock()

	for _, r := range snapshot {
		b.invoke(event, r, p)
	}
}

// invoke runs a single handler inside a failure boundary.
func (b *Bus) invoke(event string, r registration, p Payload) {
	defer func() {
		if rec := recover(); rec != nil {
			b.logger.Error().
				Str("event", event).
				Uint64("subscription", r.id).
				Str("panic", fmt.Sprint(rec)).
				Msg("event handler panicked")
		}
	}()

	if err := r.fn(p); err != nil {
		b.logger.Warn().
			Err(err).
			Str("event", event).
			Uint64("subscription", r.id).
			Msg("event handler failed")
	}
}
