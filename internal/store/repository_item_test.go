package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/collectify/collectify/internal/logger"
	"github.com/collectify/collectify/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func newTestItemRepo(t *testing.T) (*itemRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	repo := &itemRepository{
		q:       db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
		logger:  logger.Nop(),
	}
	return repo, mock, db
}

func pgFKError() error {
	return &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}
}

func TestItemRepository_GetByID_Success(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	created := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.
		NewRows([]string{"id", "creation_date", "collection_id", "previous_item_id", "next_item_id"}).
		AddRow(5, created, 2, nil, int64(6))

	mock.ExpectQuery("SELECT id, creation_date, collection_id, previous_item_id, next_item_id FROM items").
		WithArgs(int64(5)).
		WillReturnRows(rows)

	item, err := repo.GetByID(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.CollectionID != 2 {
		t.Errorf("expected collection 2, got %d", item.CollectionID)
	}
	if item.PreviousItemID != nil {
		t.Errorf("expected nil previous link, got %d", *item.PreviousItemID)
	}
	if item.NextItemID == nil || *item.NextItemID != 6 {
		t.Errorf("expected next link 6, got %v", item.NextItemID)
	}
	if !item.CreationDate.Equal(created) {
		t.Errorf("expected creation date %v, got %v", created, item.CreationDate)
	}
}

func TestItemRepository_GetByID_NotFound(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id, creation_date, collection_id, previous_item_id, next_item_id FROM items").
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 404)
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestItemRepository_Add_Success(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO items").
		WithArgs(sqlmock.AnyArg(), int64(2), nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	item := models.Item{CollectionID: 2, CreationDate: time.Now().UTC()}
	if err := repo.Add(context.Background(), &item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.ID != 11 {
		t.Errorf("expected ID=11, got %d", item.ID)
	}
}

func TestItemRepository_SetNext_NotFound(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE items SET next_item_id").
		WithArgs(nil, int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetNext(context.Background(), 404, nil)
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestItemRepository_Remove_ConstraintViolation(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM items").
		WithArgs(int64(5)).
		WillReturnError(pgFKError())

	err := repo.Remove(context.Background(), 5)
	if !errors.Is(err, ErrConstraintViolation) {
		t.Fatalf("expected ErrConstraintViolation, got %v", err)
	}
}

func TestItemRepository_ClearLinksForCollection(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE items SET").
		WithArgs(nil, nil, int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	if err := repo.ClearLinksForCollection(context.Background(), 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
