package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/collectify/collectify/internal/logger"
)

// repositorySet carries the five repositories bound to one querier.
// The zero-cost struct embedding lets sqlStore and sqlUnitOfWork share the
// accessor methods.
type repositorySet struct {
	templates        TemplateRepository
	fieldDefinitions FieldDefinitionRepository
	collections      CollectionRepository
	items            ItemRepository
	fieldValues      FieldValueRepository
}

func newRepositorySet(q querier, builder sq.StatementBuilderType, log *logger.Logger) repositorySet {
	return repositorySet{
		templates:        &templateRepository{q: q, builder: builder, logger: log},
		fieldDefinitions: &fieldDefinitionRepository{q: q, builder: builder, logger: log},
		collections:      &collectionRepository{q: q, builder: builder, logger: log},
		items:            &itemRepository{q: q, builder: builder, logger: log},
		fieldValues:      &fieldValueRepository{q: q, builder: builder, logger: log},
	}
}

func (r repositorySet) Templates() TemplateRepository                 { return r.templates }
func (r repositorySet) FieldDefinitions() FieldDefinitionRepository   { return r.fieldDefinitions }
func (r repositorySet) Collections() CollectionRepository             { return r.collections }
func (r repositorySet) Items() ItemRepository                         { return r.items }
func (r repositorySet) FieldValues() FieldValueRepository             { return r.fieldValues }

// sqlStore implements Store over a *DB pool.
type sqlStore struct {
	repositorySet

	db     *DB
	logger *logger.Logger
}

// NewStore builds the Store used by the services.
func NewStore(db *DB, log *logger.Logger) Store {
	return &sqlStore{
		repositorySet: newRepositorySet(db, db.Builder(), log),
		db:            db,
		logger:        log,
	}
}

func (s *sqlStore) Begin(ctx context.Context) (UnitOfWork, error) {
	log := logger.FromContext(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "sqlStore.Begin").Msg("failed to begin transaction")
		return nil, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	return &sqlUnitOfWork{
		repositorySet: newRepositorySet(tx, s.db.Builder(), s.logger),
		tx:            tx,
	}, nil
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}

// sqlUnitOfWork implements UnitOfWork over a single *sql.Tx.
type sqlUnitOfWork struct {
	repositorySet

	tx *sql.Tx
}

func (u *sqlUnitOfWork) Commit() error {
	if err := u.tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}

// Rollback discards the transaction. Safe to defer: after a successful
// Commit the underlying rollback reports sql.ErrTxDone, which is swallowed.
func (u *sqlUnitOfWork) Rollback() error {
	if err := u.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}
