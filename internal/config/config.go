// Package config loads client configuration from the environment. A .env
// file in the working directory is honored when present.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultCollegeID = "default"
	defaultTimeout   = 30 * time.Second
)

// Config holds everything the client needs to talk to the QA backend. The
// base URL is injected into the interaction loop at construction time; no
// package reads it from ambient globals.
type Config struct {
	// BaseURL is the QA service root, e.g. "https://api.campus.example/".
	BaseURL string
	// CollegeID scopes questions to one campus knowledge base.
	CollegeID string
	// RequestTimeout bounds a single ask call.
	RequestTimeout time.Duration
	// DarkMode forces the dark terminal theme.
	DarkMode bool
}

// Load reads configuration from COMPASS_* environment variables, after
// best-effort loading of a local .env file.
func Load() (Config, error) {
	// Missing .env is the common case, not an error.
	_ = godotenv.Load()

	cfg := Config{
		BaseURL:        strings.TrimSpace(os.Getenv("COMPASS_BASE_URL")),
		CollegeID:      getEnvOrDefault("COMPASS_COLLEGE_ID", defaultCollegeID),
		RequestTimeout: defaultTimeout,
		DarkMode:       os.Getenv("COMPASS_DARK_MODE") == "1",
	}

	if cfg.BaseURL == "" {
		return Config{}, fmt.Errorf("COMPASS_BASE_URL is required")
	}
	if u, err := url.Parse(cfg.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return Config{}, fmt.Errorf("invalid COMPASS_BASE_URL %q", cfg.BaseURL)
	}

	if raw := strings.TrimSpace(os.Getenv("COMPASS_TIMEOUT")); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs <= 0 {
			return Config{}, fmt.Errorf("invalid COMPASS_TIMEOUT value %q", raw)
		}
		cfg.RequestTimeout = time.Duration(secs) * time.Second
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
