package store

import (
	"context"
	"database/sql"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/collectify/collectify/internal/config"
	"github.com/collectify/collectify/internal/logger"
)

// lowered normalizes a search needle for the LOWER(...) LIKE comparisons
// shared by the listing queries of both backends.
func lowered(s string) string {
	return strings.ToLower(s)
}

// DB wraps the sql.DB pool together with the driver name, which decides
// the SQL placeholder format and the migration dialect.
type DB struct {
	*sql.DB

	Driver string
	logger *logger.Logger
}

// querier is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Repositories run against it so the same implementation serves both the
// pooled read path and a unit of work's transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Builder returns a squirrel statement builder configured with the
// placeholder format the driver expects.
func (db *DB) Builder() sq.StatementBuilderType {
	if db.Driver == config.DriverPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// NewConnect opens a database connection for the configured driver.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	if cfg.Driver == config.DriverPostgres {
		return NewConnectPostgres(ctx, cfg, log)
	}
	return NewConnectSQLite(ctx, cfg, log)
}
