// Movie Library - Educational Movie Catalog with AI Recommendations
// Copyright 2026 alotaibiaseel22-ops
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alotaibiaseel22-ops/movie-library

package recommend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/alotaibiaseel22-ops/movie-library/internal/config"
	"github.com/alotaibiaseel22-ops/movie-library/internal/store"
)

// OpenAIBackend ranks movies by asking the OpenAI chat-completions API
// which catalog titles fit the user's tastes, then mapping the answer
// back onto catalog records. Movies the model never mentions are excluded
// unless the answer matches nothing, in which case the catalog order is
// used as a fallback.
type OpenAIBackend struct {
	cfg    config.OpenAIConfig
	client *http.Client
	logger zerolog.Logger
}

// NewOpenAIBackend creates the OpenAI backend.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewOpenAIBackend(cfg config.OpenAIConfig, logger zerolog.Logger) *OpenAIBackend {
	return &OpenAIBackend{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger.With().Str("component", "recommend.openai").Logger(),
	}
}

// Name implements Backend.
func (b *OpenAIBackend) Name() string { return "openai" }

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Recommend implements Backend.
func (b *OpenAIBackend) Recommend(ctx context.Context, user store.User, candidates []store.Movie, k int) ([]store.Movie, error) {
	answer, err := b.complete(ctx, buildPrompt(user, candidates, k))
	if err != nil {
		return nil, err
	}
	return matchAnswer(answer, candidates, k), nil
}

func (b *OpenAIBackend) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: b.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a movie recommendation assistant. Answer with movie titles from the provided list only, one per line."},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	url := strings.TrimRight(b.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.cfg.APIKey)

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call openai: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai returned %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// buildPrompt describes the user's tastes and the catalog for the model.
func buildPrompt(user store.User, candidates []store.Movie, k int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Pick the %d best movies for a viewer who likes: %s.\n", k, strings.Join(user.Preferences, ", "))
	sb.WriteString("Choose only from this catalog:\n")
	for _, m := range candidates {
		fmt.Fprintf(&sb, "- %s (%s", m.Title, m.Genre)
		if len(m.Tags) > 0 {
			fmt.Fprintf(&sb, "; %s", strings.Join(m.Tags, ", "))
		}
		sb.WriteString(")\n")
	}
	return sb.String()
}

// matchAnswer keeps the candidates whose title appears in the model's
// answer, in catalog order, falling back to the leading candidates when
// nothing matches.
func matchAnswer(answer string, candidates []store.Movie, k int) []store.Movie {
	blob := strings.ToLower(answer)
	out := make([]store.Movie, 0, k)
	for _, m := range candidates {
		if len(out) == k {
			break
		}
		if strings.Contains(blob, strings.ToLower(m.Title)) {
			out = append(out, m.Clone())
		}
	}
	if len(out) > 0 {
		return out
	}
	if k > len(candidates) {
		k = len(candidates)
	}
	return store.CloneMovies(candidates[:k])
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
