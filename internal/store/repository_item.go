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

type itemRepository struct {
	q       querier
	builder sq.StatementBuilderType
	logger  *logger.Logger
}

var itemColumns = []string{"id", "creation_date", "collection_id", "previous_item_id", "next_item_id"}

func scanItem(scanner interface{ Scan(...any) error }, item *models.Item) error {
	var creationDate sql.NullTime
	var previousID, nextID sql.NullInt64

	if err := scanner.Scan(&item.ID, &creationDate, &item.CollectionID, &previousID, &nextID); err != nil {
		return err
	}

	item.CreationDate = creationDate.Time.UTC()
	if previousID.Valid {
		item.PreviousItemID = &previousID.Int64
	}
	if nextID.Valid {
		item.NextItemID = &nextID.Int64
	}

	return nil
}

func (r *itemRepository) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select(itemColumns...).
		From("items").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var item models.Item
	if err = scanItem(r.q.QueryRowContext(ctx, query, args...), &item); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		log.Err(err).
			Str("func", "itemRepository.GetByID").
			Int64("item_id", id).
			Msg("failed to query item")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return &item, nil
}

func (r *itemRepository) ListByCollection(ctx context.Context, collectionID int64, descending bool) ([]models.Item, error) {
	log := logger.FromContext(ctx)

	order := "creation_date ASC, id ASC"
	if descending {
		order = "creation_date DESC, id DESC"
	}

	query, args, err := r.builder.
		Select(itemColumns...).
		From("items").
		Where(sq.Eq{"collection_id": collectionID}).
		OrderBy(order).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.ListByCollection").
			Int64("collection_id", collectionID).
			Msg("failed to execute query for listing items")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]models.Item, 0, 32)

	for rows.Next() {
		var item models.Item
		if scanErr := scanItem(rows, &item); scanErr != nil {
			log.Err(scanErr).
				Str("func", "itemRepository.ListByCollection").
				Int64("collection_id", collectionID).
				Msg("failed to scan item row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "itemRepository.ListByCollection").
			Int64("collection_id", collectionID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return items, nil
}

func (r *itemRepository) Add(ctx context.Context, item *models.Item) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Insert("items").
		Columns("creation_date", "collection_id", "previous_item_id", "next_item_id").
		Values(item.CreationDate, item.CollectionID, item.PreviousItemID, item.NextItemID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.q.QueryRowContext(ctx, query, args...).Scan(&item.ID); err != nil {
		log.Err(err).
			Str("func", "itemRepository.Add").
			Int64("collection_id", item.CollectionID).
			Msg("failed to insert item")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *itemRepository) SetLinks(ctx context.Context, id int64, previousItemID, nextItemID *int64) error {
	return r.update(ctx, id, map[string]any{
		"previous_item_id": previousItemID,
		"next_item_id":     nextItemID,
	}, "itemRepository.SetLinks")
}

func (r *itemRepository) SetPrevious(ctx context.Context, id int64, previousItemID *int64) error {
	return r.update(ctx, id, map[string]any{"previous_item_id": previousItemID}, "itemRepository.SetPrevious")
}

func (r *itemRepository) SetNext(ctx context.Context, id int64, nextItemID *int64) error {
	return r.update(ctx, id, map[string]any{"next_item_id": nextItemID}, "itemRepository.SetNext")
}

func (r *itemRepository) update(ctx context.Context, id int64, set map[string]any, funcName string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Update("items").
		SetMap(set).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Int64("item_id", id).
			Msg("failed to update item links")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrItemNotFound
	}

	return nil
}

func (r *itemRepository) ClearLinksForCollection(ctx context.Context, collectionID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Update("items").
		Set("previous_item_id", nil).
		Set("next_item_id", nil).
		Where(sq.Eq{"collection_id": collectionID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.q.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "itemRepository.ClearLinksForCollection").
			Int64("collection_id", collectionID).
			Msg("failed to clear item links")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *itemRepository) Remove(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Delete("items").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
		}
		log.Err(err).
			Str("func", "itemRepository.Remove").
			Int64("item_id", id).
			Msg("failed to delete item")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrItemNotFound
	}

	return nil
}
