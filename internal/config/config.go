// Movie Library - Educational Movie Catalog with AI Recommendations
// Copyright 2026 alotaibiaseel22-ops
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alotaibiaseel22-ops/movie-library

// Package config defines the application configuration and loads it with
// Koanf v2 from layered sources: built-in defaults, an optional YAML file,
// and environment variables (highest priority).
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root configuration.
type Config struct {
	Data      DataConfig      `koanf:"data"`
	Logging   LoggingConfig   `koanf:"logging"`
	AI        AIConfig        `koanf:"ai"`
	Recommend RecommendConfig `koanf:"recommend"`
}

// DataConfig locates the two JSON data files owned by the store.
type DataConfig struct {
	MoviesPath string `koanf:"movies_path"`
	UsersPath  string `koanf:"users_path"`
}

// LoggingConfig controls the zerolog setup.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// AIConfig selects and parameterizes the ranking backend.
type AIConfig struct {
	// Backend is one of: local, openai, gemini.
	Backend string `koanf:"backend"`

	OpenAI OpenAIConfig `koanf:"openai"`
	Gemini GeminiConfig `koanf:"gemini"`

	// Breaker guards the remote backends against repeated failures.
	Breaker BreakerConfig `koanf:"breaker"`

	// RateLimit throttles remote API calls.
	RateLimit RateLimitConfig `koanf:"rate_limit"`
}

// OpenAIConfig parameterizes the OpenAI chat-completions backend.
type OpenAIConfig struct {
	APIKey  string        `koanf:"api_key"`
	BaseURL string        `koanf:"base_url"`
	Model   string        `koanf:"model"`
	Timeout time.Duration `koanf:"timeout"`
}

// GeminiConfig parameterizes the Gemini generateContent backend.
type GeminiConfig struct {
	APIKey  string        `koanf:"api_key"`
	BaseURL string        `koanf:"base_url"`
	Model   string        `koanf:"model"`
	Timeout time.Duration `koanf:"timeout"`
}

// BreakerConfig configures the circuit breaker around remote backends.
type BreakerConfig struct {
	FailureThreshold uint32        `koanf:"failure_threshold"`
	Interval         time.Duration `koanf:"interval"`
	Timeout          time.Duration `koanf:"timeout"`
	MaxRequests      uint32        `koanf:"max_requests"`
}

// RateLimitConfig configures the remote-call rate limiter.
type RateLimitConfig struct {
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	Burst             int     `koanf:"burst"`
}

// RecommendConfig parameterizes the recommendation service.
type RecommendConfig struct {
	// DefaultCount is the ranked-list length used when a caller does not
	// ask for a specific count. It is also the cache key evicted when a
	// user (re)registers.
	DefaultCount int `koanf:"default_count"`
}

// defaultConfig returns a Config with all defaults applied. These are
// loaded first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			MoviesPath: "data/movies.json",
			UsersPath:  "data/users.json",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Caller: false,
		},
		AI: AIConfig{
			Backend: "local",
			OpenAI: OpenAIConfig{
				BaseURL: "https://api.openai.com/v1",
				Model:   "gpt-4o-mini",
				Timeout: 30 * time.Second,
			},
			Gemini: GeminiConfig{
				BaseURL: "https://generativelanguage.googleapis.com/v1beta",
				Model:   "gemini-1.5-flash",
				Timeout: 30 * time.Second,
			},
			Breaker: BreakerConfig{
				FailureThreshold: 3,
				Interval:         60 * time.Second,
				Timeout:          30 * time.Second,
				MaxRequests:      1,
			},
			RateLimit: RateLimitConfig{
				RequestsPerSecond: 1,
				Burst:             3,
			},
		},
		Recommend: RecommendConfig{
			DefaultCount: 5,
		},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Data.MoviesPath == "" {
		return fmt.Errorf("data.movies_path must not be empty")
	}
	if c.Data.UsersPath == "" {
		return fmt.Errorf("data.users_path must not be empty")
	}
	if c.Data.MoviesPath == c.Data.UsersPath {
		return fmt.Errorf("data.movies_path and data.users_path must differ")
	}

	switch strings.ToLower(c.AI.Backend) {
	case "", "local", "openai", "gemini":
	default:
		return fmt.Errorf("ai.backend %q is not one of local, openai, gemini", c.AI.Backend)
	}

	if c.Recommend.DefaultCount < 1 {
		return fmt.Errorf("recommend.default_count must be at least 1, got %d", c.Recommend.DefaultCount)
	}
	return nil
}
