// Package config handles application configuration and environment loading.
package config

import (
	"bufio"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
)

// DefaultAPIKey is the development fallback bearer token. Using it in a real
// deployment is reported as a warning at startup.
const DefaultAPIKey = "your-secret-api-key"

// Config holds the configuration for the catalog service.
type Config struct {
	Host string // listen host (default "0.0.0.0")
	Port int    // listen port (default 8000)

	DataDir           string // directory holding products.json / lineage.json
	MaxProducts       int    // product capacity bound (default 1000)
	MaxLineageEntries int    // lineage capacity bound (default 10000)

	APIKey    string // static bearer token for mutating endpoints
	JWTSecret string // optional HS256 secret; empty disables JWT auth

	LogLevel string // debug, info, warn, error (default "info")

	// Rate limiting
	RateLimitRPS   float64 // sustained requests per second (default 100)
	RateLimitBurst int     // burst capacity (default 200)

	// CORS
	CORSAllowedOrigins []string // allowed origins (default: ["*"])

	// SnapshotSchedule is an optional cron spec (e.g. "@every 5m") for
	// time-based catalog flushes. Empty disables the scheduler.
	SnapshotSchedule string

	// SeedFile is an optional YAML file of products and lineage registered
	// at startup when the catalog is empty.
	SeedFile string

	// Warnings collects non-fatal findings from config loading. They are
	// logged by the caller once the logger is initialised.
	Warnings []string
}

// ListenAddr returns the host:port address for the HTTP listener.
func (c *Config) ListenAddr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LoadFromEnv loads configuration from environment variables, applying
// defaults for anything unset.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Host:             os.Getenv("HOST"),
		DataDir:          os.Getenv("DATA_DIR"),
		APIKey:           os.Getenv("API_KEY"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		LogLevel:         os.Getenv("LOG_LEVEL"),
		SnapshotSchedule: os.Getenv("SNAPSHOT_SCHEDULE"),
		SeedFile:         os.Getenv("SEED_FILE"),
	}

	var err error
	if cfg.Port, err = intEnv("PORT", 8000); err != nil {
		return nil, err
	}
	if cfg.MaxProducts, err = intEnv("MAX_PRODUCTS", 1000); err != nil {
		return nil, err
	}
	if cfg.MaxLineageEntries, err = intEnv("MAX_LINEAGE_ENTRIES", 10000); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = intEnv("RATE_LIMIT_BURST", 200); err != nil {
		return nil, err
	}

	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("RATE_LIMIT_RPS: %w", err)
		}
		cfg.RateLimitRPS = f
	}

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		cfg.CORSAllowedOrigins = origins
	}

	// Defaults
	if cfg.Host == "" {
		cfg.Host = "0.0.0.0"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "./data"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.RateLimitRPS == 0 {
		cfg.RateLimitRPS = 100
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"*"}
	}
	if cfg.MaxProducts <= 0 {
		return nil, fmt.Errorf("MAX_PRODUCTS must be positive")
	}
	if cfg.MaxLineageEntries <= 0 {
		return nil, fmt.Errorf("MAX_LINEAGE_ENTRIES must be positive")
	}
	if cfg.APIKey == "" {
		cfg.APIKey = DefaultAPIKey
		cfg.Warnings = append(cfg.Warnings, "API_KEY not set — using insecure default. Set API_KEY in production!")
	}

	return cfg, nil
}

func intEnv(key string, defaultVal int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// LoadDotEnv reads a .env file and sets any variables not already in the
// environment. Lines must be KEY=VALUE; comments (#) and blanks are skipped.
func LoadDotEnv(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // .env not found is not an error
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = stripQuotes(strings.TrimSpace(value))
		// Env vars take precedence over the file.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("setenv %s: %w", key, err)
			}
		}
	}
	return scanner.Err()
}

// stripQuotes removes surrounding double or single quotes from a value.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
