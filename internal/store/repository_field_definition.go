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

type fieldDefinitionRepository struct {
	q       querier
	builder sq.StatementBuilderType
	logger  *logger.Logger
}

var fieldDefinitionColumns = []string{"id", "name", "template_id", "field_type", "is_list"}

func scanFieldDefinition(scanner interface{ Scan(...any) error }, d *models.FieldDefinition) error {
	var fieldType string
	if err := scanner.Scan(&d.ID, &d.Name, &d.TemplateID, &fieldType, &d.IsList); err != nil {
		return err
	}
	d.FieldType = models.FieldType(fieldType)
	return nil
}

func (r *fieldDefinitionRepository) GetByID(ctx context.Context, id int64) (*models.FieldDefinition, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select(fieldDefinitionColumns...).
		From("field_definitions").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var definition models.FieldDefinition
	if err = scanFieldDefinition(r.q.QueryRowContext(ctx, query, args...), &definition); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFieldDefinitionNotFound
		}
		log.Err(err).
			Str("func", "fieldDefinitionRepository.GetByID").
			Int64("field_definition_id", id).
			Msg("failed to query field definition")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return &definition, nil
}

func (r *fieldDefinitionRepository) ListByTemplate(ctx context.Context, templateID int64) ([]models.FieldDefinition, error) {
	return r.list(ctx, sq.Eq{"template_id": templateID}, "fieldDefinitionRepository.ListByTemplate")
}

func (r *fieldDefinitionRepository) ListByIDs(ctx context.Context, ids []int64) ([]models.FieldDefinition, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.list(ctx, sq.Eq{"id": ids}, "fieldDefinitionRepository.ListByIDs")
}

func (r *fieldDefinitionRepository) list(ctx context.Context, where sq.Eq, funcName string) ([]models.FieldDefinition, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select(fieldDefinitionColumns...).
		From("field_definitions").
		Where(where).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Msg("failed to execute query for listing field definitions")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	definitions := make([]models.FieldDefinition, 0, 8)

	for rows.Next() {
		var definition models.FieldDefinition
		if scanErr := scanFieldDefinition(rows, &definition); scanErr != nil {
			log.Err(scanErr).
				Str("func", funcName).
				Msg("failed to scan field definition row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		definitions = append(definitions, definition)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", funcName).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return definitions, nil
}

func (r *fieldDefinitionRepository) Add(ctx context.Context, definition *models.FieldDefinition) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Insert("field_definitions").
		Columns("name", "template_id", "field_type", "is_list").
		Values(definition.Name, definition.TemplateID, definition.FieldType.String(), definition.IsList).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.q.QueryRowContext(ctx, query, args...).Scan(&definition.ID); err != nil {
		log.Err(err).
			Str("func", "fieldDefinitionRepository.Add").
			Int64("template_id", definition.TemplateID).
			Str("name", definition.Name).
			Msg("failed to insert field definition")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *fieldDefinitionRepository) Remove(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Delete("field_definitions").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "fieldDefinitionRepository.Remove").
			Int64("field_definition_id", id).
			Msg("failed to delete field definition")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrFieldDefinitionNotFound
	}

	return nil
}
