// Package config loads and validates application configuration.
// Values come from an optional YAML file named by CONFIG_FILE, overridden by
// environment variables of the same (upper-cased) name.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Store backends accepted by STORE_BACKEND.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// minSecretLen is the shortest JWT_SECRET accepted for HS256 signing.
const minSecretLen = 16

// Config holds all configuration values for the API server.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// StoreBackend selects the match store: "postgres" (default) or "memory".
	StoreBackend string

	// DatabaseURL is the Postgres connection string.
	// Required when StoreBackend is "postgres".
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"].
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// JWTSecret signs and verifies bearer credentials. Required, at least
	// 16 bytes.
	JWTSecret []byte

	// TokenTTL is how long an issued credential stays valid. Defaults to 60m.
	TokenTTL time.Duration

	// MaxBodyBytes caps request body size. Defaults to 1 MiB.
	MaxBodyBytes int64

	// MigrateOnStart applies pending goose migrations before serving.
	// Defaults to true; ignored for the memory backend.
	MigrateOnStart bool
}

// raw mirrors the configuration keys as loaded, before defaults and parsing.
type raw struct {
	Port           string `koanf:"port"`
	StoreBackend   string `koanf:"store_backend"`
	DatabaseURL    string `koanf:"database_url"`
	LogLevel       string `koanf:"log_level"`
	CORSOrigins    string `koanf:"cors_origins"`
	JWTSecret      string `koanf:"jwt_secret"`
	TokenTTL       string `koanf:"token_ttl"`
	MaxBodyBytes   string `koanf:"max_body_bytes"`
	MigrateOnStart string `koanf:"migrate_on_start"`
}

// Load reads configuration and returns a Config.
// Precedence (low to high): defaults, CONFIG_FILE (YAML), environment.
// Empty values fall back to defaults. Returns an error naming every required
// variable that is not set and every value that does not parse.
func Load() (Config, error) {
	k := koanf.New(".")

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	// PORT -> port, DATABASE_URL -> database_url, ... Blank variables are
	// skipped so they neither mask file values nor defaults.
	envProvider := env.ProviderWithValue("", ".", func(key, value string) (string, any) {
		if strings.TrimSpace(value) == "" {
			return "", nil
		}
		return strings.ToLower(key), value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, fmt.Errorf("environment: %w", err)
	}

	var r raw
	if err := k.UnmarshalWithConf("", &r, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return build(r)
}

func build(r raw) (Config, error) {
	cfg := Config{
		Port:         orDefault(r.Port, "8080"),
		StoreBackend: strings.ToLower(orDefault(r.StoreBackend, StorePostgres)),
		DatabaseURL:  r.DatabaseURL,
		LogLevel:     orDefault(r.LogLevel, "info"),
		CORSOrigins:  splitCSV(orDefault(r.CORSOrigins, "http://localhost:5173")),
		JWTSecret:    []byte(r.JWTSecret),
	}

	var (
		missing []string
		invalid []string
	)

	switch cfg.StoreBackend {
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	case StoreMemory:
	default:
		invalid = append(invalid, fmt.Sprintf("STORE_BACKEND=%q (want %s or %s)", cfg.StoreBackend, StorePostgres, StoreMemory))
	}

	switch {
	case len(cfg.JWTSecret) == 0:
		missing = append(missing, "JWT_SECRET")
	case len(cfg.JWTSecret) < minSecretLen:
		invalid = append(invalid, fmt.Sprintf("JWT_SECRET (must be at least %d bytes)", minSecretLen))
	}

	ttl, err := time.ParseDuration(orDefault(r.TokenTTL, "60m"))
	if err != nil || ttl <= 0 {
		invalid = append(invalid, fmt.Sprintf("TOKEN_TTL=%q", r.TokenTTL))
	}
	cfg.TokenTTL = ttl

	limit, err := strconv.ParseInt(orDefault(r.MaxBodyBytes, "1048576"), 10, 64)
	if err != nil || limit <= 0 {
		invalid = append(invalid, fmt.Sprintf("MAX_BODY_BYTES=%q", r.MaxBodyBytes))
	}
	cfg.MaxBodyBytes = limit

	migrate, err := strconv.ParseBool(orDefault(r.MigrateOnStart, "true"))
	if err != nil {
		invalid = append(invalid, fmt.Sprintf("MIGRATE_ON_START=%q", r.MigrateOnStart))
	}
	cfg.MigrateOnStart = migrate

	var errs []error
	if len(missing) > 0 {
		errs = append(errs, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", ")))
	}
	if len(invalid) > 0 {
		errs = append(errs, fmt.Errorf("invalid configuration values: %s", strings.Join(invalid, ", ")))
	}
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// orDefault returns v, or fallback if v is empty.
func orDefault(v, fallback string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
