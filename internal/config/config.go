// Package config loads service configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration for the server.
type Config struct {
	// HTTP server
	Port string

	// Database
	DBPath string

	// Ledger
	Owner               string
	PreserveCustomSplit bool
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first if present; real environment
// variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:                getEnv("PORT", "8080"),
		DBPath:              getEnv("DB_PATH", "./data/bills.db"),
		Owner:               getEnv("BILL_OWNER", "me"),
		PreserveCustomSplit: getEnvBool("PRESERVE_CUSTOM_SPLIT", false),
	}
}

// Validate checks the configuration and returns an error describing every
// problem found.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port %q: must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DBPath == "" {
		problems = append(problems, "database path cannot be empty")
	}

	if c.Owner == "" {
		problems = append(problems, "bill owner cannot be empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
