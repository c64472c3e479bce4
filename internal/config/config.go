// config.go
//
// A classifieds marketplace data service built on the jam-build data service stack
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of jam-build-classifieds.
// jam-build-classifieds is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// jam-build-classifieds is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with jam-build-classifieds.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DevelopmentJWTSecret is the placeholder secret shipped in example env files.
// It is rejected when APP_ENV=production.
const DevelopmentJWTSecret = "super-secret-key-for-development-only-change-in-production"

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port          string
	Environment   string
	PublicBaseURL string
	TrustProxy    bool

	// Database configuration
	DBType            string // mysql, mariadb, postgres, sqlite, sqlite3, sqlserver
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int
	DBLogLevel        string

	// Session configuration
	JWTSecret     string
	SessionTTL    time.Duration
	ResetTokenTTL time.Duration

	// Rate limiting
	RateLimitStore      string // memory, database
	RateLimitPolicyFile string

	// Logging
	LogLevel  string
	LogFormat string

	// Maintenance
	MaintenanceCron string
}

// Load loads configuration from an optional .env file and the environment
func Load() (*Config, error) {
	// A missing .env file is normal outside local development
	_ = godotenv.Load()

	cfg := &Config{
		Port:                getEnv("PORT", "3000"),
		Environment:         getEnv("APP_ENV", "development"),
		PublicBaseURL:       strings.TrimSuffix(getEnv("PUBLIC_BASE_URL", "http://localhost:3000"), "/"),
		TrustProxy:          getEnvAsBool("TRUST_PROXY_HEADERS", true),
		DBType:              strings.ToLower(getEnv("DB_TYPE", "postgres")),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "5432"),
		DBDatabase:          getEnv("DB_DATABASE", ""),
		DBUser:              getEnv("DB_USER", ""),
		DBPassword:          getEnv("DB_PASSWORD", ""),
		DBConnectionLimit:   getEnvAsInt("DB_CONNECTION_LIMIT", 10),
		DBLogLevel:          strings.ToLower(getEnv("DB_LOG_LEVEL", "warn")),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		SessionTTL:          getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		ResetTokenTTL:       getEnvAsDuration("RESET_TOKEN_TTL", time.Hour),
		RateLimitStore:      strings.ToLower(getEnv("RATE_LIMIT_STORE", "memory")),
		RateLimitPolicyFile: getEnv("RATE_LIMIT_POLICY_FILE", ""),
		LogLevel:            strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:           strings.ToLower(getEnv("LOG_FORMAT", "text")),
		MaintenanceCron:     os.Getenv("MAINTENANCE_CRON"),
	}
	if _, ok := os.LookupEnv("MAINTENANCE_CRON"); !ok {
		cfg.MaintenanceCron = "@hourly"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks required fields and enumerated values
func (c *Config) Validate() error {
	if c.DBDatabase == "" {
		return fmt.Errorf("DB_DATABASE is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.IsProduction() && c.JWTSecret == DevelopmentJWTSecret {
		return fmt.Errorf("JWT_SECRET must be changed from the default value in production")
	}
	switch c.RateLimitStore {
	case "memory", "database":
	default:
		return fmt.Errorf("RATE_LIMIT_STORE must be 'memory' or 'database', got %q", c.RateLimitStore)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be 'text' or 'json', got %q", c.LogFormat)
	}
	if c.SessionTTL <= 0 || c.ResetTokenTTL <= 0 {
		return fmt.Errorf("SESSION_TTL and RESET_TOKEN_TTL must be positive durations")
	}
	return nil
}

// IsProduction reports whether APP_ENV is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// IsSQLite reports whether the configured database is a local sqlite file
func (c *Config) IsSQLite() bool {
	return c.DBType == "sqlite" || c.DBType == "sqlite3"
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
