// Package cli provides the initialization helpers shared by the points
// commands: environment, logging, configuration and store wiring.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"points/internal/backend"
	"points/internal/config"
	applog "points/internal/log"
	"points/internal/records"
	"points/internal/roster"
)

// SetupLogger builds the CLI logger at the given level (warn when empty or
// unknown) and installs it as the slog default.
func SetupLogger(level string) *applog.Logger {
	cfg := applog.DefaultConfig()
	cfg.Level = applog.ParseLevel(level, slog.LevelWarn)
	cfg.Component = applog.ComponentCLI
	logger := applog.New(cfg)
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local use.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// InitBackend opens the configured key-value backend.
// Returns the backend or exits the process on failure.
func InitBackend(ctx context.Context, logger *applog.Logger, cfg *config.Config) *backend.BackendResult {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", applog.FieldError, err)
		os.Exit(1)
	}
	res, err := backend.NewFactory(logger).CreateBackend(ctx, bcfg)
	if err != nil {
		logger.Error("Failed to initialize backend", applog.FieldError, err, applog.FieldBackend, bcfg.Type.String())
		os.Exit(1)
	}
	return res
}

// NewRecordStore wraps the backend in a record store.
func NewRecordStore(b backend.Backend, logger *applog.Logger) *records.Store {
	return records.NewStore(b, records.WithLogger(logger))
}

// NewRoster builds the roster with the configured orphan policy.
func NewRoster(cfg *config.Config, b backend.Backend, recs *records.Store, logger *applog.Logger) *roster.Roster {
	policy := roster.KeepRecords
	if cfg.PurgeOnRemove {
		policy = roster.PurgeRecords
	}
	r := roster.New(b, recs, policy, logger)
	r.SetConcurrency(cfg.OverviewConcurrency)
	return r
}

// Confirm asks a yes/no question on out and reads the answer from in.
// Anything other than y or yes counts as no.
func Confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
