package config

import (
	"errors"
	"time"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

const defaultRequestTimeout = 30 * time.Second

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings, such as
	// an empty DSN or an unsupported driver.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")

	// ErrInvalidServerConfigs indicates invalid HTTP server settings, such
	// as a missing listen address or a non-positive request timeout.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
)
