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

// GeminiBackend ranks movies through the Gemini generateContent API. The
// prompt and answer mapping mirror the OpenAI backend; only the wire
// format differs.
type GeminiBackend struct {
	cfg    config.GeminiConfig
	client *http.Client
	logger zerolog.Logger
}

// NewGeminiBackend creates the Gemini backend.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewGeminiBackend(cfg config.GeminiConfig, logger zerolog.Logger) *GeminiBackend {
	return &GeminiBackend{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger.With().Str("component", "recommend.gemini").Logger(),
	}
}

// Name implements Backend.
func (b *GeminiBackend) Name() string { return "gemini" }

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Recommend implements Backend.
func (b *GeminiBackend) Recommend(ctx context.Context, user store.User, candidates []store.Movie, k int) ([]store.Movie, error) {
	answer, err := b.generate(ctx, buildPrompt(user, candidates, k))
	if err != nil {
		return nil, err
	}
	return matchAnswer(answer, candidates, k), nil
}

func (b *GeminiBackend) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent",
		strings.TrimRight(b.cfg.BaseURL, "/"), b.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", b.cfg.APIKey)

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call gemini: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
