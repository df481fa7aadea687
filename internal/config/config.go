// Package config loads application settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/karimbakri/homeport/internal/db"
)

// Defaults for the journey delays the UI simulates.
const (
	DefaultSwitchDelay  = 400 * time.Millisecond
	DefaultConfirmDelay = 600 * time.Millisecond
)

// Config holds the runtime settings.
type Config struct {
	// DBPath is the SQLite file location.
	DBPath string
	// DevMode enables debug logging and runtime consistency checks.
	DevMode bool
	// JWTSecret signs the local device token.
	JWTSecret string
	// SwitchDelay is the simulated latency of a role switch.
	SwitchDelay time.Duration
	// ConfirmDelay is the simulated latency of a payment confirmation.
	ConfirmDelay time.Duration
	// ScopedMarkRead limits mark-as-read to the active role's
	// notifications instead of all of them.
	ScopedMarkRead bool
	// ResetOnSignOut clears navigation state, comparison included, when
	// the user signs out.
	ResetOnSignOut bool
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := &Config{
		DBPath:         os.Getenv("HOMEPORT_DB"),
		DevMode:        boolFlag(os.Getenv("HOMEPORT_DEV")),
		JWTSecret:      os.Getenv("HOMEPORT_JWT_SECRET"),
		SwitchDelay:    DefaultSwitchDelay,
		ConfirmDelay:   DefaultConfirmDelay,
		ScopedMarkRead: boolFlag(os.Getenv("HOMEPORT_SCOPED_MARK_READ")),
		ResetOnSignOut: boolFlag(os.Getenv("HOMEPORT_RESET_ON_SIGNOUT")),
	}

	if cfg.DBPath == "" {
		path, err := db.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolving database path: %w", err)
		}
		cfg.DBPath = path
	}

	if cfg.JWTSecret == "" {
		// The token never leaves the device, so a fixed development
		// secret is acceptable outside production builds.
		cfg.JWTSecret = "homeport-local-dev-secret"
	}

	var err error
	if cfg.SwitchDelay, err = delayMS("HOMEPORT_SWITCH_DELAY_MS", DefaultSwitchDelay); err != nil {
		return nil, err
	}
	if cfg.ConfirmDelay, err = delayMS("HOMEPORT_CONFIRM_DELAY_MS", DefaultConfirmDelay); err != nil {
		return nil, err
	}

	return cfg, nil
}

// boolFlag interprets the usual truthy spellings of an env flag.
func boolFlag(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// delayMS reads a millisecond duration from the environment.
func delayMS(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", key, v)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
