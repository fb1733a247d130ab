// Package migrations applies the embedded goose migrations for whichever
// backend the store was opened with. The SQL differs per dialect (identity
// columns, byte and timestamp types), so each driver has its own directory.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/collectify/collectify/internal/config"
)

//go:embed sqlite/*.sql postgres/*.sql
var embedMigrations embed.FS

func Migrate(db *sql.DB, driver string) error {
	goose.SetBaseFS(embedMigrations)

	dialect, dir := "sqlite3", "sqlite"
	if driver == config.DriverPostgres {
		dialect, dir = "pgx", "postgres"
	}

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
