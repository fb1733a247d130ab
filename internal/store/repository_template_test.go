package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/collectify/collectify/internal/logger"
	"github.com/collectify/collectify/models"
	"github.com/mattn/go-sqlite3"
)

func newTestTemplateRepo(t *testing.T) (*templateRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	repo := &templateRepository{
		q:       db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
		logger:  logger.Nop(),
	}
	return repo, mock, db
}

func sqliteFKError() error {
	return sqlite3.Error{
		Code:         sqlite3.ErrConstraint,
		ExtendedCode: sqlite3.ErrConstraintForeignKey,
	}
}

func TestTemplateRepository_Add_Success(t *testing.T) {
	repo, mock, db := newTestTemplateRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO templates").
		WithArgs("Books").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	template := models.Template{Name: "Books"}
	if err := repo.Add(context.Background(), &template); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if template.ID != 7 {
		t.Errorf("expected ID=7, got %d", template.ID)
	}
}

func TestTemplateRepository_GetByID_NotFound(t *testing.T) {
	repo, mock, db := newTestTemplateRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id, name FROM templates").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestTemplateRepository_List_Search(t *testing.T) {
	repo, mock, db := newTestTemplateRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name"}).
		AddRow(1, "Books").
		AddRow(2, "Board games")

	mock.ExpectQuery("SELECT id, name FROM templates WHERE LOWER\\(name\\) LIKE").
		WithArgs("%bo%").
		WillReturnRows(rows)

	templates, err := repo.List(context.Background(), models.TemplateQuery{Search: "Bo"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(templates) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(templates))
	}
	if templates[0].Name != "Books" {
		t.Errorf("expected first template Books, got %s", templates[0].Name)
	}
}

func TestTemplateRepository_Remove_InUse(t *testing.T) {
	repo, mock, db := newTestTemplateRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM templates").
		WithArgs(int64(1)).
		WillReturnError(sqliteFKError())

	err := repo.Remove(context.Background(), 1)
	if !errors.Is(err, ErrTemplateInUse) {
		t.Fatalf("expected ErrTemplateInUse, got %v", err)
	}
}

func TestTemplateRepository_Remove_NotFound(t *testing.T) {
	repo, mock, db := newTestTemplateRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM templates").
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Remove(context.Background(), 404)
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}
