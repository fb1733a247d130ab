package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/collectify/collectify/internal/logger"
	"github.com/collectify/collectify/models"
)

// fieldValueRepository maps the Value tagged variant onto the six nullable
// columns of the "field_values" table. Reads join the owning field
// definition so the active column can be selected by field type.
type fieldValueRepository struct {
	q       querier
	builder sq.StatementBuilderType
	logger  *logger.Logger
}

var fieldValueColumns = []string{
	"v.id", "v.item_id", "v.field_definition_id", "d.field_type",
	"v.text_value", "v.int_value", "v.decimal_value", "v.date_value",
	"v.image_value", "v.related_item_id",
}

func scanFieldValue(scanner interface{ Scan(...any) error }, fv *models.FieldValue) error {
	var (
		fieldType    string
		textValue    sql.NullString
		intValue     sql.NullInt32
		decimalValue sql.NullString
		dateValue    sql.NullTime
		imageValue   []byte
		relatedID    sql.NullInt64
	)

	err := scanner.Scan(
		&fv.ID,
		&fv.ItemID,
		&fv.FieldDefinitionID,
		&fieldType,
		&textValue,
		&intValue,
		&decimalValue,
		&dateValue,
		&imageValue,
		&relatedID,
	)
	if err != nil {
		return err
	}

	value := models.Value{Type: models.FieldType(fieldType)}

	switch value.Type {
	case models.FieldTypeText:
		if textValue.Valid {
			value.Text = &textValue.String
		}
	case models.FieldTypeInteger:
		if intValue.Valid {
			value.Int = &intValue.Int32
		}
	case models.FieldTypeDecimal:
		if decimalValue.Valid {
			d, convErr := decimal.NewFromString(decimalValue.String)
			if convErr != nil {
				return fmt.Errorf("stored decimal %q: %w", decimalValue.String, convErr)
			}
			value.Decimal = &d
		}
	case models.FieldTypeDate:
		if dateValue.Valid {
			utc := dateValue.Time.UTC()
			value.Date = &utc
		}
	case models.FieldTypeImage:
		value.Image = imageValue
	case models.FieldTypeItemReference:
		if relatedID.Valid {
			value.RelatedItemID = &relatedID.Int64
		}
	default:
		return fmt.Errorf("%w: %q", models.ErrUnsupportedFieldType, fieldType)
	}

	fv.Value = value

	return nil
}

func (r *fieldValueRepository) ListByItem(ctx context.Context, itemID int64) ([]models.FieldValue, error) {
	grouped, err := r.ListByItems(ctx, []int64{itemID})
	if err != nil {
		return nil, err
	}
	return grouped[itemID], nil
}

func (r *fieldValueRepository) ListByItems(ctx context.Context, itemIDs []int64) (map[int64][]models.FieldValue, error) {
	log := logger.FromContext(ctx)

	grouped := make(map[int64][]models.FieldValue, len(itemIDs))
	if len(itemIDs) == 0 {
		return grouped, nil
	}

	query, args, err := r.builder.
		Select(fieldValueColumns...).
		From("field_values v").
		Join("field_definitions d ON d.id = v.field_definition_id").
		Where(sq.Eq{"v.item_id": itemIDs}).
		OrderBy("v.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "fieldValueRepository.ListByItems").
			Int("items_count", len(itemIDs)).
			Msg("failed to execute query for listing field values")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var fv models.FieldValue
		if scanErr := scanFieldValue(rows, &fv); scanErr != nil {
			log.Err(scanErr).
				Str("func", "fieldValueRepository.ListByItems").
				Msg("failed to scan field value row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		grouped[fv.ItemID] = append(grouped[fv.ItemID], fv)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "fieldValueRepository.ListByItems").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return grouped, nil
}

func (r *fieldValueRepository) Add(ctx context.Context, fv *models.FieldValue) error {
	log := logger.FromContext(ctx)

	var decimalValue *string
	if fv.Value.Decimal != nil {
		s := fv.Value.Decimal.String()
		decimalValue = &s
	}

	query, args, err := r.builder.
		Insert("field_values").
		Columns(
			"item_id", "field_definition_id",
			"text_value", "int_value", "decimal_value",
			"date_value", "image_value", "related_item_id",
		).
		Values(
			fv.ItemID, fv.FieldDefinitionID,
			fv.Value.Text, fv.Value.Int, decimalValue,
			fv.Value.Date, fv.Value.Image, fv.Value.RelatedItemID,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.q.QueryRowContext(ctx, query, args...).Scan(&fv.ID); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
		}
		log.Err(err).
			Str("func", "fieldValueRepository.Add").
			Int64("item_id", fv.ItemID).
			Int64("field_definition_id", fv.FieldDefinitionID).
			Msg("failed to insert field value")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *fieldValueRepository) Remove(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Delete("field_values").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "fieldValueRepository.Remove").
			Int64("field_value_id", id).
			Msg("failed to delete field value")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrFieldValueNotFound
	}

	return nil
}

func (r *fieldValueRepository) RemoveByItem(ctx context.Context, itemID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Delete("field_values").
		Where(sq.Eq{"item_id": itemID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.q.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "fieldValueRepository.RemoveByItem").
			Int64("item_id", itemID).
			Msg("failed to delete field values")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
