// Movie Library - Educational Movie Catalog with AI Recommendations
// Copyright 2026 alotaibiaseel22-ops
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alotaibiaseel22-ops/movie-library

// Package main is the entry point for the movielib CLI.
//
// Movie Library is an educational movie catalog with per-user AI
// recommendations. All state lives in two JSON files on disk; changes are
// written atomically so a crash never leaves a half-written catalog.
//
// # Application Architecture
//
// Startup wires the components in this order:
//
//  1. Configuration: defaults, optional YAML file, environment variables (Koanf v2)
//  2. Logging: zerolog, console format by default
//  3. Store: the shared JSON file store (bootstraps missing data files)
//  4. Gateway: event bus, catalog, accounts, and the recommendation service
//
// # Configuration
//
// Settings layer as defaults < config file < environment (highest wins).
// The config file is movielib.yaml in the working directory, or the path
// in MOVIELIB_CONFIG. Useful environment variables:
//
//   - MOVIELIB_MOVIES_PATH, MOVIELIB_USERS_PATH: data file locations
//   - MOVIELIB_AI_BACKEND: local (default), openai, or gemini
//   - MOVIELIB_OPENAI_API_KEY, MOVIELIB_GEMINI_API_KEY: remote backend keys
//   - MOVIELIB_LOG_LEVEL: trace, debug, info, warn, error
//
// Remote backends are guarded by a circuit breaker and a rate limiter and
// fall back to the local heuristic when unavailable.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/alotaibiaseel22-ops/movie-library/internal/account"
	"github.com/alotaibiaseel22-ops/movie-library/internal/catalog"
	"github.com/alotaibiaseel22-ops/movie-library/internal/config"
	"github.com/alotaibiaseel22-ops/movie-library/internal/gateway"
	"github.com/alotaibiaseel22-ops/movie-library/internal/logging"
	"github.com/alotaibiaseel22-ops/movie-library/internal/recommend"
	"github.com/alotaibiaseel22-ops/movie-library/internal/store"
	"github.com/alotaibiaseel22-ops/movie-library/internal/validation"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "movielib:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logger := logging.Logger()

	st, err := store.Shared(cfg.Data.MoviesPath, cfg.Data.UsersPath, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	g := gateway.New(cfg, st, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli := &cli{
		gateway: g,
		in:      bufio.NewScanner(os.Stdin),
		out:     os.Stdout,
	}
	return cli.loop(ctx)
}

// cli drives the interactive menu. current holds the logged-in user, if
// any.
type cli struct {
	gateway *gateway.Gateway
	in      *bufio.Scanner
	out     *os.File
	current *store.User
}

func (c *cli) loop(ctx context.Context) error {
	fmt.Fprintln(c.out, "Movie Library")
	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(c.out)
			return nil
		default:
		}

		c.printMenu()
		choice, ok := c.prompt("> ")
		if !ok {
			return nil
		}

		switch strings.TrimSpace(choice) {
		case "1":
			c.register()
		case "2":
			c.login()
		case "3":
			c.listMovies()
		case "4":
			c.addMovie()
		case "5":
			c.recommendations(ctx)
		case "6", "q", "quit", "exit":
			fmt.Fprintln(c.out, "Bye.")
			return nil
		default:
			fmt.Fprintln(c.out, "Unknown choice.")
		}
	}
}

func (c *cli) printMenu() {
	fmt.Fprintln(c.out)
	if c.current != nil {
		fmt.Fprintf(c.out, "Logged in as %s\n", c.current.Username)
	}
	fmt.Fprintln(c.out, "1) Register")
	fmt.Fprintln(c.out, "2) Login")
	fmt.Fprintln(c.out, "3) List movies")
	fmt.Fprintln(c.out, "4) Add movie")
	fmt.Fprintln(c.out, "5) Recommendations")
	fmt.Fprintln(c.out, "6) Quit")
}

// prompt reads one line; ok is false on EOF.
func (c *cli) prompt(label string) (string, bool) {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		return "", false
	}
	return c.in.Text(), true
}

func (c *cli) register() {
	username, ok := c.prompt("Username: ")
	if !ok {
		return
	}
	password, ok := c.prompt("Password: ")
	if !ok {
		return
	}
	prefs, ok := c.prompt("Preferences (comma-separated genres/tags): ")
	if !ok {
		return
	}

	u, err := c.gateway.Accounts.Register(account.NewUser(username, password, "", splitList(prefs)))
	if err != nil {
		c.report(err)
		return
	}
	c.current = &u
	fmt.Fprintf(c.out, "Registered %s (%s).\n", u.Username, u.ID)
}

func (c *cli) login() {
	username, ok := c.prompt("Username: ")
	if !ok {
		return
	}
	password, ok := c.prompt("Password: ")
	if !ok {
		return
	}

	u, err := c.gateway.Accounts.Authenticate(username, password)
	if err != nil {
		c.report(err)
		return
	}
	c.current = &u
	fmt.Fprintf(c.out, "Welcome back, %s.\n", u.Name)
}

func (c *cli) listMovies() {
	movies := c.gateway.Catalog.List()
	if len(movies) == 0 {
		fmt.Fprintln(c.out, "The catalog is empty.")
		return
	}
	for _, m := range movies {
		line := fmt.Sprintf("  %-10s %s (%s)", m.ID, m.Title, m.Genre)
		if len(m.Tags) > 0 {
			line += " [" + strings.Join(m.Tags, ", ") + "]"
		}
		fmt.Fprintln(c.out, line)
	}
}

func (c *cli) addMovie() {
	title, ok := c.prompt("Title: ")
	if !ok {
		return
	}
	genre, ok := c.prompt("Genre: ")
	if !ok {
		return
	}
	tags, ok := c.prompt("Tags (comma-separated): ")
	if !ok {
		return
	}

	m, err := c.gateway.Catalog.Add(catalog.NewMovie(title, genre, splitList(tags)))
	if err != nil {
		c.report(err)
		return
	}
	fmt.Fprintf(c.out, "Added %s (%s).\n", m.Title, m.ID)
}

func (c *cli) recommendations(ctx context.Context) {
	if c.current == nil {
		fmt.Fprintln(c.out, "Log in first.")
		return
	}
	raw, ok := c.prompt("How many (blank for default): ")
	if !ok {
		return
	}
	k := 0
	if s := strings.TrimSpace(raw); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			fmt.Fprintln(c.out, "Not a number.")
			return
		}
		k = n
	}

	ranked, err := c.gateway.RecommendForUser(ctx, c.current.ID, k)
	if err != nil {
		c.report(err)
		return
	}
	fmt.Fprintf(c.out, "Recommendations for %s:\n", c.current.Username)
	for i, m := range ranked {
		fmt.Fprintf(c.out, "  %d. %s (%s)\n", i+1, m.Title, m.Genre)
	}
}

// report prints domain errors in a friendly form and everything else
// verbatim.
func (c *cli) report(err error) {
	var verr *validation.ValidationError
	switch {
	case errors.As(err, &verr):
		fmt.Fprintf(c.out, "Invalid %s: %s\n", verr.Field, verr.Message)
	case errors.Is(err, account.ErrInvalidCredentials):
		fmt.Fprintln(c.out, "Invalid username or password.")
	case errors.Is(err, recommend.ErrEmptyCatalog):
		fmt.Fprintln(c.out, "Add some movies first.")
	default:
		fmt.Fprintln(c.out, "Error:", err)
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
