package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/collectify/collectify/internal/logger"
	"github.com/collectify/collectify/models"
)

// templateRepository executes template CRUD against the "templates" table.
// It runs on either the pooled connection or a unit of work's transaction,
// depending on the querier it was built with.
type templateRepository struct {
	q       querier
	builder sq.StatementBuilderType
	logger  *logger.Logger
}

func (r *templateRepository) GetByID(ctx context.Context, id int64) (*models.Template, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select("id", "name").
		From("templates").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var template models.Template
	if err = r.q.QueryRowContext(ctx, query, args...).Scan(&template.ID, &template.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		log.Err(err).
			Str("func", "templateRepository.GetByID").
			Int64("template_id", id).
			Msg("failed to query template")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return &template, nil
}

func (r *templateRepository) GetWithFields(ctx context.Context, id int64) (*models.Template, error) {
	template, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := &fieldDefinitionRepository{q: r.q, builder: r.builder, logger: r.logger}
	template.Fields, err = fields.ListByTemplate(ctx, id)
	if err != nil {
		return nil, err
	}

	return template, nil
}

func (r *templateRepository) List(ctx context.Context, q models.TemplateQuery) ([]models.Template, error) {
	log := logger.FromContext(ctx)

	builder := r.builder.
		Select("id", "name").
		From("templates")

	if q.Search != "" {
		builder = builder.Where(sq.Like{"LOWER(name)": "%" + lowered(q.Search) + "%"})
	}
	if q.SortDescending {
		builder = builder.OrderBy("name DESC", "id DESC")
	} else {
		builder = builder.OrderBy("name ASC", "id ASC")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "templateRepository.List").
			Msg("failed to execute query for listing templates")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	templates := make([]models.Template, 0, 16)

	for rows.Next() {
		var template models.Template
		if scanErr := rows.Scan(&template.ID, &template.Name); scanErr != nil {
			log.Err(scanErr).
				Str("func", "templateRepository.List").
				Msg("failed to scan template row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		templates = append(templates, template)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "templateRepository.List").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return templates, nil
}

func (r *templateRepository) Add(ctx context.Context, template *models.Template) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Insert("templates").
		Columns("name").
		Values(template.Name).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.q.QueryRowContext(ctx, query, args...).Scan(&template.ID); err != nil {
		log.Err(err).
			Str("func", "templateRepository.Add").
			Str("name", template.Name).
			Msg("failed to insert template")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *templateRepository) Remove(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Delete("templates").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			// the Collections→Templates FK is RESTRICT
			return fmt.Errorf("%w: %w", ErrTemplateInUse, err)
		}
		log.Err(err).
			Str("func", "templateRepository.Remove").
			Int64("template_id", id).
			Msg("failed to delete template")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrTemplateNotFound
	}

	return nil
}
