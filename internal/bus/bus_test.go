// Movie Library - Educational Movie Catalog with AI Recommendations
// Copyright 2026 alotaibiaseel22-ops
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alotaibiaseel22-ops/movie-library

package bus

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/alotaibiaseel22-ops/movie-library/internal/logging"
)

func newTestBus() *Bus {
	return New(logging.NewTestLogger(&bytes.Buffer{}))
}

func TestPublishInvokesHandlersInRegistrationOrder(t *testing.T) {
	b := newTestBus()

	var order []string
	b.Subscribe("test.event", func(p Payload) error {
		order = append(order, "first")
		return nil
	})
	b.Subscribe("test.event", func(p Payload) error {
		order = append(order, "second")
		return nil
	})
	b.Subscribe("test.event", func(p Payload) error {
		order = append(order, "third")
		return nil
	})

	b.Publish("test.event", nil)

	want := []string{"first", "second", "third"}
	if len(order) != len(want) {
		t.Fatalf("expected %d invocations, got %d", len(want), len(order))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("invocation %d = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestPublishDeliversPayload(t *testing.T) {
	b := newTestBus()

	var got Payload
	b.Subscribe("test.event", func(p Payload) error {
		got = p
		return nil
	})

	b.Publish("test.event", Payload{"id": "m-1"})

	if got == nil {
		t.Fatal("handler never received a payload")
	}
	if got["id"] != "m-1" {
		t.Errorf("payload id = %v, want m-1", got["id"])
	}
}

func TestFailingHandlerDoesNotBlockSiblings(t *testing.T) {
	b := newTestBus()

	var invoked []string
	b.Subscribe("test.event", func(p Payload) error {
		invoked = append(invoked, "errored")
		return errors.New("always fails")
	})
	b.Subscribe("test.event", func(p Payload) error {
		invoked = append(invoked, "panicked")
		panic("boom")
	})
	b.Subscribe("test.event", func(p Payload) error {
		invoked = append(invoked, "healthy")
		return nil
	})

	// Must not panic and must reach the healthy handler.
	b.Publish("test.event", nil)

	if len(invoked) != 3 {
		t.Fatalf("expected 3 invocations, got %d: %v", len(invoked), invoked)
	}
	if invoked[2] != "healthy" {
		t.Errorf("healthy handler not reached, got %v", invoked)
	}
}

func TestHandlerFailuresAreLogged(t *testing.T) {
	var buf bytes.Buffer
	b := New(logging.NewTestLogger(&buf))

	b.Subscribe("test.event", func(p Payload) error {
		return errors.New("subscriber broke")
	})
	b.Subscribe("test.event", func(p Payload) error {
		panic("subscriber exploded")
	})

	b.Publish("test.event", nil)

	out := buf.String()
	if !strings.Contains(out, "subscriber broke") {
		t.Errorf("handler error not logged: %q", out)
	}
	if !strings.Contains(out, "subscriber exploded") {
		t.Errorf("handler panic not logged: %q", out)
	}
}

func TestPublishWithNoSubscribers(t *testing.T) {
	b := newTestBus()
	// Must be a harmless no-op.
	b.Publish("nobody.listens", Payload{"x": 1})
}

func TestUnsubscribe(t *testing.T) {
	b := newTestBus()

	count := 0
	sub := b.Subscribe("test.event", func(p Payload) error {
		count++
		return nil
	})

	b.Publish("test.event", nil)
	b.Unsubscribe(sub)
	b.Publish("test.event", nil)
	b.Unsubscribe(sub) // second removal is a no-op

	if count != 1 {
		t.Errorf("handler ran %d times after unsubscribe, want 1", count)
	}
}

func TestConcurrentSubscribeAndPublish(t *testing.T) {
	b := newTestBus()

	var mu sync.Mutex
	count := 0
	b.Subscribe("test.event", func(p Payload) error {
		mu.Lock()
		count++
		mu.Unlock()
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			b.Publish("test.event", nil)
		}()
		go func() {
			defer wg.Done()
			b.Subscribe("other.event", func(p Payload) error { return nil })
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if count != 10 {
		t.Errorf("expected 10 deliveries, got %d", count)
	}
}
