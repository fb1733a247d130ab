package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// Sentinel errors returned by repository methods to signal well-known
// failure conditions. Callers should use [errors.Is] to match against
// these values.
var (
	// ErrTemplateNotFound is returned when a query targets a template
	// that does not exist.
	ErrTemplateNotFound = errors.New("template was not found")

	// ErrFieldDefinitionNotFound is returned when a query targets a field
	// definition that does not exist.
	ErrFieldDefinitionNotFound = errors.New("field definition was not found")

	// ErrCollectionNotFound is returned when a query targets a collection
	// that does not exist.
	ErrCollectionNotFound = errors.New("collection was not found")

	// ErrItemNotFound is returned when a query targets an item that does
	// not exist.
	ErrItemNotFound = errors.New("item was not found")

	// ErrFieldValueNotFound is returned when a query targets a stored
	// field value that does not exist.
	ErrFieldValueNotFound = errors.New("field value was not found")

	// ErrTemplateInUse is returned when a template deletion is refused
	// because collections still reference it.
	ErrTemplateInUse = errors.New("template is referenced by collections")

	// ErrConstraintViolation is returned when the database rejects a write
	// because of a foreign-key or uniqueness constraint.
	ErrConstraintViolation = errors.New("constraint violation")
)

// Low-level database operation errors. Repository methods wrap the driver
// error into one of these so callers can classify failures without
// depending on a driver.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised
	// SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open
	// transaction fails. The transaction is considered rolled back.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")
)

// isForeignKeyViolation reports whether err is a foreign-key constraint
// failure from either supported driver.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.ForeignKeyViolation
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey ||
			sqliteErr.Code == sqlite3.ErrConstraint
	}

	return false
}
