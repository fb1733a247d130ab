package config

import "time"

// StructuredConfig is the top-level configuration container for collectify.
// It is populated by merging values from environment variables,
// command-line flags and an optional JSON file, in that order of
// precedence (earlier sources win).
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings.
	App App `envPrefix:"APP_"`

	// Storage holds the relational store settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP API.
	Server Server `envPrefix:"SERVER_"`

	// jsonFilePath is the optional path of a JSON configuration file,
	// populated via the CONFIG env variable or the -c/-config flag.
	jsonFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// LogRole is the "role" field stamped on every log entry.
	// Env: APP_LOG_ROLE
	LogRole string `env:"LOG_ROLE"`
}

// Storage groups the persistence settings.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds the relational database settings.
type DB struct {
	// Driver selects the backend: "sqlite3" (default, local file) or
	// "pgx" (PostgreSQL).
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the driver-specific data source name. For sqlite3 this is
	// the database file path; foreign-key enforcement is switched on by
	// the store when opening it.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Server holds the HTTP server settings.
type Server struct {
	// HTTPAddress is the listen address in host:port form.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single request's handling time.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// GetStructuredConfig builds the final configuration from environment
// variables, flags and the optional JSON file, then validates it.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
