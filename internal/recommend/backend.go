// Movie Library - Educational Movie Catalog with AI Recommendations
// Copyright 2026 alotaibiaseel22-ops
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alotaibiaseel22-ops/movie-library

package recommend

import (
	"github.com/rs/zerolog"

	"github.com/alotaibiaseel22-ops/movie-library/internal/config"
)

// NewBackend builds the ranking backend selected by cfg.Backend. Remote
// backends are wrapped with the circuit breaker, the rate limiter, and a
// local fallback. An unknown backend name degrades to the local heuristic
// with a warning instead of failing startup.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewBackend(cfg config.AIConfig, logger zerolog.Logger) Backend {
	local := NewLocalBackend()

	switch cfg.Backend {
	case "", "local":
		return local
	case "openai":
		return NewResilientBackend(NewOpenAIBackend(cfg.OpenAI, logger), local, cfg, logger)
	case "gemini":
		return NewResilientBackend(NewGeminiBackend(cfg.Gemini, logger), local, cfg, logger)
	default:
		logger.Warn().Str("backend", cfg.Backend).Msg("unknown ranking backend, using local heuristic")
		return local
	}
}
