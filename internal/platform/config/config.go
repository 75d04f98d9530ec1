package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	errInvalidPort         = errors.New("config: invalid PORT number")
	errFetchTimeoutRange   = errors.New("config: FETCH_TIMEOUT must be between 1s and 2m")
	errAnalyzeTimeoutRange = errors.New("config: ANALYZE_TIMEOUT must not be shorter than FETCH_TIMEOUT")
	errShutdownTimeout     = errors.New("config: SHUTDOWN_TIMEOUT must be positive")
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port                 string
	LogLevel             string
	FetchTimeout         time.Duration
	AnalyzeTimeout       time.Duration
	ShutdownTimeout      time.Duration
	BlockPrivateNetworks bool
}

// Load reads configuration from environment variables with sensible defaults.
// Values from ENV_FILE, .env.local and .env are applied first; variables that
// are already set in the process environment win.
func Load() (Config, error) {
	if err := loadEnvFiles(); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:                 getEnv("PORT", "8080"),
		LogLevel:             getEnv("LOG_LEVEL", "ERROR"),
		FetchTimeout:         getEnvAsDuration("FETCH_TIMEOUT", 10*time.Second),
		AnalyzeTimeout:       getEnvAsDuration("ANALYZE_TIMEOUT", 30*time.Second),
		ShutdownTimeout:      getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		BlockPrivateNetworks: getEnvAsBool("BLOCK_PRIVATE_NETWORKS", true),
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: %q", errInvalidPort, c.Port)
	}

	if c.FetchTimeout < time.Second || c.FetchTimeout > 2*time.Minute {
		return fmt.Errorf("%w: got %s", errFetchTimeoutRange, c.FetchTimeout)
	}

	if c.AnalyzeTimeout < c.FetchTimeout {
		return fmt.Errorf("%w: got %s < %s", errAnalyzeTimeoutRange, c.AnalyzeTimeout, c.FetchTimeout)
	}

	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: got %s", errShutdownTimeout, c.ShutdownTimeout)
	}

	return nil
}

// loadEnvFiles applies ENV_FILE when set, otherwise .env.local then .env.
// Missing files are not an error.
func loadEnvFiles() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("config: load %s: %w", envFile, err)
		}
		return nil
	}

	for _, name := range []string{".env.local", ".env"} {
		if err := godotenv.Load(name); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("config: load %s: %w", name, err)
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvAsBool(key string, fallback bool) bool {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fallback
	}
	return v
}
