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

type collectionRepository struct {
	q       querier
	builder sq.StatementBuilderType
	logger  *logger.Logger
}

func (r *collectionRepository) GetByID(ctx context.Context, id int64) (*models.Collection, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select("id", "name", "description", "template_id").
		From("collections").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var collection models.Collection
	var description sql.NullString

	err = r.q.QueryRowContext(ctx, query, args...).
		Scan(&collection.ID, &collection.Name, &description, &collection.TemplateID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCollectionNotFound
		}
		log.Err(err).
			Str("func", "collectionRepository.GetByID").
			Int64("collection_id", id).
			Msg("failed to query collection")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if description.Valid {
		collection.Description = &description.String
	}

	return &collection, nil
}

func (r *collectionRepository) List(ctx context.Context, q models.CollectionQuery) ([]models.Collection, error) {
	log := logger.FromContext(ctx)

	builder := r.builder.
		Select("id", "name", "description", "template_id").
		From("collections")

	if q.TemplateID != nil {
		builder = builder.Where(sq.Eq{"template_id": *q.TemplateID})
	}
	if q.Search != "" {
		needle := "%" + lowered(q.Search) + "%"
		builder = builder.Where(sq.Or{
			sq.Like{"LOWER(name)": needle},
			sq.Like{"LOWER(COALESCE(description, ''))": needle},
		})
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
			Str("func", "collectionRepository.List").
			Msg("failed to execute query for listing collections")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	collections := make([]models.Collection, 0, 16)

	for rows.Next() {
		var collection models.Collection
		var description sql.NullString

		if scanErr := rows.Scan(&collection.ID, &collection.Name, &description, &collection.TemplateID); scanErr != nil {
			log.Err(scanErr).
				Str("func", "collectionRepository.List").
				Msg("failed to scan collection row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		if description.Valid {
			collection.Description = &description.String
		}

		collections = append(collections, collection)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "collectionRepository.List").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return collections, nil
}

func (r *collectionRepository) CountByTemplate(ctx context.Context, templateID int64) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select("COUNT(*)").
		From("collections").
		Where(sq.Eq{"template_id": templateID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int64
	if err = r.q.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).
			Str("func", "collectionRepository.CountByTemplate").
			Int64("template_id", templateID).
			Msg("failed to count collections")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

func (r *collectionRepository) Add(ctx context.Context, collection *models.Collection) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Insert("collections").
		Columns("name", "description", "template_id").
		Values(collection.Name, collection.Description, collection.TemplateID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.q.QueryRowContext(ctx, query, args...).Scan(&collection.ID); err != nil {
		log.Err(err).
			Str("func", "collectionRepository.Add").
			Str("name", collection.Name).
			Int64("template_id", collection.TemplateID).
			Msg("failed to insert collection")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *collectionRepository) Update(ctx context.Context, collection *models.Collection) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Update("collections").
		Set("name", collection.Name).
		Set("description", collection.Description).
		Where(sq.Eq{"id": collection.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "collectionRepository.Update").
			Int64("collection_id", collection.ID).
			Msg("failed to update collection")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrCollectionNotFound
	}

	return nil
}

func (r *collectionRepository) Remove(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Delete("collections").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "collectionRepository.Remove").
			Int64("collection_id", id).
			Msg("failed to delete collection")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrCollectionNotFound
	}

	return nil
}
