// Movie Library - Educational Movie Catalog with AI Recommendations
// Copyright 2026 alotaibiaseel22-ops
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alotaibiaseel22-ops/movie-library

package recommend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/alotaibiaseel22-ops/movie-library/internal/config"
	"github.com/alotaibiaseel22-ops/movie-library/internal/store"
)

func openAIStub(t *testing.T, status int, answer string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(status)
		if status == http.StatusOK {
			resp := chatResponse{}
			resp.Choices = append(resp.Choices, struct {
				Message chatMessage `json:"message"`
			}{Message: chatMessage{Role: "assistant", Content: answer}})
			if err := json.NewEncoder(w).Encode(resp); err != nil {
				t.Errorf("encode response: %v", err)
			}
		}
	}))
}

func openAIConfigFor(srv *httptest.Server) config.OpenAIConfig {
	return config.OpenAIConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Model:   "gpt-4o-mini",
		Timeout: 5 * time.Second,
	}
}

func TestOpenAIMapsAnswerToCatalog(t *testing.T) {
	srv := openAIStub(t, http.StatusOK, "You should watch Arrival, then Alien.")
	defer srv.Close()

	b := NewOpenAIBackend(openAIConfigFor(srv), zerolog.Nop())
	ranked, err := b.Recommend(context.Background(), store.User{ID: "u-1"}, catalogFixture(), 3)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	// Mentioned titles are kept in catalog order.
	if len(ranked) != 2 || ranked[0].Title != "Alien" || ranked[1].Title != "Arrival" {
		t.Errorf("ranked = %v", ranked)
	}
}

func TestOpenAIFallsBackWhenNothingMatches(t *testing.T) {
	srv := openAIStub(t, http.StatusOK, "I cannot help with that.")
	defer srv.Close()

	b := NewOpenAIBackend(openAIConfigFor(srv), zerolog.Nop())
	ranked, err := b.Recommend(context.Background(), store.User{ID: "u-1"}, catalogFixture(), 2)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(ranked) != 2 || ranked[0].ID != "m-1" {
		t.Errorf("fallback = %v, want leading catalog entries", ranked)
	}
}

func TestOpenAIErrorStatus(t *testing.T) {
	srv := openAIStub(t, http.StatusTooManyRequests, "")
	defer srv.Close()

	b := NewOpenAIBackend(openAIConfigFor(srv), zerolog.Nop())
	if _, err := b.Recommend(context.Background(), store.User{ID: "u-1"}, catalogFixture(), 2); err == nil {
		t.Fatal("expected an error for a non-200 response")
	}
}

func TestGeminiMapsAnswerToCatalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-goog-api-key"); got != "test-key" {
			t.Errorf("x-goog-api-key = %q", got)
		}
		resp := geminiResponse{}
		resp.Candidates = append(resp.Candidates, struct {
			Content geminiContent `json:"content"`
		}{Content: geminiContent{Parts: []geminiPart{{Text: "Clue\nHeat\n"}}}})
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
	defer srv.Close()

	b := NewGeminiBackend(config.GeminiConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Model:   "gemini-1.5-flash",
		Timeout: 5 * time.Second,
	}, zerolog.Nop())

	ranked, err := b.Recommend(context.Background(), store.User{ID: "u-1"}, catalogFixture(), 3)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(ranked) != 2 || ranked[0].Title != "Heat" || ranked[1].Title != "Clue" {
		t.Errorf("ranked = %v", ranked)
	}
}
