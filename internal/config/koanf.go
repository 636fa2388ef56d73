// Movie Library - Educational Movie Catalog with AI Recommendations
// Copyright 2026 alotaibiaseel22-ops
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alotaibiaseel22-ops/movie-library

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched, in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"movielib.yaml",
	"movielib.yml",
	"/etc/movielib/config.yaml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "MOVIELIB_CONFIG"

// envPrefix is stripped from environment variables before mapping them onto
// config paths.
const envPrefix = "MOVIELIB_"

// Load builds the configuration from layered sources (highest wins):
//
//  1. Built-in defaults
//  2. Optional YAML config file
//  3. MOVIELIB_* environment variables
//
// The result is validated before being returned.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct.
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	// Layer 2: optional config file.
	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// Layer 3: environment variables.
	if err := k.Load(env.Provider(envPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first config file that exists, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envKeyMap maps environment variable names (prefix stripped) to config
// paths. Compound key names make a purely mechanical transform ambiguous
// ("API_KEY" vs "RATE.LIMIT"), so the mapping is explicit.
var envKeyMap = map[string]string{
	"MOVIES_PATH":               "data.movies_path",
	"USERS_PATH":                "data.users_path",
	"LOG_LEVEL":                 "logging.level",
	"LOG_FORMAT":                "logging.format",
	"LOG_CALLER":                "logging.caller",
	"AI_BACKEND":                "ai.backend",
	"OPENAI_API_KEY":            "ai.openai.api_key",
	"OPENAI_BASE_URL":           "ai.openai.base_url",
	"OPENAI_MODEL":              "ai.openai.model",
	"OPENAI_TIMEOUT":            "ai.openai.timeout",
	"GEMINI_API_KEY":            "ai.gemini.api_key",
	"GEMINI_BASE_URL":           "ai.gemini.base_url",
	"GEMINI_MODEL":              "ai.gemini.model",
	"GEMINI_TIMEOUT":            "ai.gemini.timeout",
	"BREAKER_FAILURE_THRESHOLD": "ai.breaker.failure_threshold",
	"BREAKER_INTERVAL":          "ai.breaker.interval",
	"BREAKER_TIMEOUT":           "ai.breaker.timeout",
	"BREAKER_MAX_REQUESTS":      "ai.breaker.max_requests",
	"RATE_LIMIT_PER_SECOND":     "ai.rate_limit.requests_per_second",
	"RATE_LIMIT_BURST":          "ai.rate_limit.burst",
	"RECOMMEND_DEFAULT_COUNT":   "recommend.default_count",
}

// envTransformFunc maps a MOVIELIB_* variable to its config path.
// Unknown variables are dropped rather than guessed at.
//
// Examples:
//   - MOVIELIB_AI_BACKEND -> ai.backend
//   - MOVIELIB_OPENAI_API_KEY -> ai.openai.api_key
func envTransformFunc(key string) string {
	key = strings.TrimPrefix(key, envPrefix)
	if path, ok := envKeyMap[strings.ToUpper(key)]; ok {
		return path
	}
	return ""
}
