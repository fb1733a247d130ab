package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/collectify/collectify/internal/logger"
	"github.com/collectify/collectify/internal/store"
	"github.com/collectify/collectify/models"
)

type itemService struct {
	store store.Store

	logger *logger.Logger
}

func NewItemService(store store.Store, logger *logger.Logger) ItemService {
	return &itemService{
		store:  store,
		logger: logger,
	}
}

func (i *itemService) CreateItem(ctx context.Context, collectionID int64, values []models.ItemFieldValueInput, previousItemID, nextItemID *int64) (*models.Item, error) {
	uow, err := i.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	collection, err := uow.Collections().GetByID(ctx, collectionID)
	if err != nil {
		return nil, err
	}

	coerced, err := coerceInputs(ctx, uow, collection.TemplateID, values)
	if err != nil {
		return nil, err
	}

	// selfID 0: the item does not exist yet, so any occupied neighbor
	// pointer is a conflict
	if err := validateChainLinks(ctx, uow, collectionID, 0, previousItemID, nextItemID); err != nil {
		return nil, err
	}

	item := &models.Item{
		CollectionID:   collectionID,
		CreationDate:   time.Now().UTC(),
		PreviousItemID: previousItemID,
		NextItemID:     nextItemID,
	}
	if err := uow.Items().Add(ctx, item); err != nil {
		return nil, err
	}

	if err := rewireNeighbors(ctx, uow, item.ID, previousItemID, nextItemID); err != nil {
		return nil, err
	}

	for idx := range coerced {
		coerced[idx].ItemID = item.ID
		if err := uow.FieldValues().Add(ctx, &coerced[idx]); err != nil {
			return nil, err
		}
	}
	item.FieldValues = coerced

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	i.logger.Info().Str("func", "itemService.CreateItem").
		Int64("itemID", item.ID).
		Int64("collectionID", collectionID).
		Int("fieldValues", len(coerced)).
		Msg("item created")

	return item, nil
}

func (i *itemService) UpdateItem(ctx context.Context, id int64, values []models.ItemFieldValueInput, previousItemID, nextItemID *int64) (*models.Item, error) {
	uow, err := i.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	item, err := uow.Items().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	collection, err := uow.Collections().GetByID(ctx, item.CollectionID)
	if err != nil {
		return nil, err
	}

	coerced, err := coerceInputs(ctx, uow, collection.TemplateID, values)
	if err != nil {
		return nil, err
	}

	// detach old neighbors the item no longer points at, otherwise their
	// occupied pointers would read as conflicts below
	if err := detachStaleNeighbor(ctx, uow, item.PreviousItemID, previousItemID, uow.Items().SetNext); err != nil {
		return nil, err
	}
	if err := detachStaleNeighbor(ctx, uow, item.NextItemID, nextItemID, uow.Items().SetPrevious); err != nil {
		return nil, err
	}

	if err := validateChainLinks(ctx, uow, item.CollectionID, id, previousItemID, nextItemID); err != nil {
		return nil, err
	}

	if err := uow.Items().SetLinks(ctx, id, previousItemID, nextItemID); err != nil {
		return nil, err
	}
	if err := rewireNeighbors(ctx, uow, id, previousItemID, nextItemID); err != nil {
		return nil, err
	}

	// replace-all semantics for field values
	if err := uow.FieldValues().RemoveByItem(ctx, id); err != nil {
		return nil, err
	}
	for idx := range coerced {
		coerced[idx].ItemID = id
		if err := uow.FieldValues().Add(ctx, &coerced[idx]); err != nil {
			return nil, err
		}
	}

	item.PreviousItemID = previousItemID
	item.NextItemID = nextItemID
	item.FieldValues = coerced

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return item, nil
}

func (i *itemService) RemoveFieldValue(ctx context.Context, itemID, fieldDefinitionID int64, raw any) error {
	item, err := i.store.Items().GetByID(ctx, itemID)
	if err != nil {
		return err
	}

	collection, err := i.store.Collections().GetByID(ctx, item.CollectionID)
	if err != nil {
		return err
	}

	definition, err := i.store.FieldDefinitions().GetByID(ctx, fieldDefinitionID)
	if err != nil {
		return err
	}
	if definition.TemplateID != collection.TemplateID {
		return fmt.Errorf("%w: id %d does not belong to the collection's template",
			store.ErrFieldDefinitionNotFound, fieldDefinitionID)
	}

	target, err := models.Coerce(definition.FieldType, raw)
	if err != nil {
		return err
	}

	values, err := i.store.FieldValues().ListByItem(ctx, itemID)
	if err != nil {
		return err
	}

	// values are ordered by id, so the first equal one is the oldest
	for _, v := range values {
		if v.FieldDefinitionID == fieldDefinitionID && v.Value.Equal(target) {
			return i.store.FieldValues().Remove(ctx, v.ID)
		}
	}

	return fmt.Errorf("%w: no value of field %d matches", store.ErrFieldValueNotFound, fieldDefinitionID)
}

func (i *itemService) DeleteItem(ctx context.Context, id int64) error {
	uow, err := i.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Rollback()

	item, err := uow.Items().GetByID(ctx, id)
	if err != nil {
		return err
	}

	// neighbors are detached, not spliced together: the user decides how
	// to close the gap
	if item.PreviousItemID != nil {
		if err := uow.Items().SetNext(ctx, *item.PreviousItemID, nil); err != nil {
			return err
		}
	}
	if item.NextItemID != nil {
		if err := uow.Items().SetPrevious(ctx, *item.NextItemID, nil); err != nil {
			return err
		}
	}

	if err := uow.Items().Remove(ctx, id); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	i.logger.Info().Str("func", "itemService.DeleteItem").
		Int64("itemID", id).
		Msg("item deleted")

	return nil
}

func (i *itemService) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	item, err := i.store.Items().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	values, err := i.store.FieldValues().ListByItem(ctx, id)
	if err != nil {
		return nil, err
	}
	item.FieldValues = values

	return item, nil
}

func (i *itemService) GetItemsForCollection(ctx context.Context, collectionID int64, q models.ItemQuery) ([]models.Item, error) {
	if _, err := i.store.Collections().GetByID(ctx, collectionID); err != nil {
		return nil, err
	}

	// creation-date order comes from the store; field-value order is
	// applied here because typed comparison (decimal, date) does not
	// survive column collation across both backends
	descending := q.Descending && q.SortByFieldDefinitionID == nil
	items, err := i.store.Items().ListByCollection(ctx, collectionID, descending)
	if err != nil {
		return nil, err
	}
	if err := attachFieldValues(ctx, i.store.FieldValues(), items); err != nil {
		return nil, err
	}

	if q.Search != "" {
		items = filterByText(items, q.Search)
	}

	if q.SortByFieldDefinitionID != nil {
		definition, err := i.store.FieldDefinitions().GetByID(ctx, *q.SortByFieldDefinitionID)
		if err != nil {
			return nil, err
		}
		sortByFieldValue(items, definition, q.Descending)
	}

	return items, nil
}

// coerceInputs resolves each input's field definition, checks it belongs to
// the collection's template and coerces the raw payload into its canonical
// typed value. Scalar cardinality is enforced here: for a non-list field the
// last input in the batch wins.
func coerceInputs(ctx context.Context, repos store.Repositories, templateID int64, values []models.ItemFieldValueInput) ([]models.FieldValue, error) {
	if len(values) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(values))
	seen := make(map[int64]bool, len(values))
	for _, input := range values {
		if !seen[input.FieldDefinitionID] {
			seen[input.FieldDefinitionID] = true
			ids = append(ids, input.FieldDefinitionID)
		}
	}

	definitions, err := repos.FieldDefinitions().ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]models.FieldDefinition, len(definitions))
	for _, d := range definitions {
		byID[d.ID] = d
	}

	coerced := make([]models.FieldValue, 0, len(values))
	scalarAt := make(map[int64]int, len(values))
	for _, input := range values {
		definition, ok := byID[input.FieldDefinitionID]
		if !ok || definition.TemplateID != templateID {
			return nil, fmt.Errorf("%w: id %d does not belong to the collection's template",
				store.ErrFieldDefinitionNotFound, input.FieldDefinitionID)
		}

		value, err := models.Coerce(definition.FieldType, input.Raw)
		if err != nil {
			return nil, err
		}
		if value.RelatedItemID != nil {
			if _, err := repos.Items().GetByID(ctx, *value.RelatedItemID); err != nil {
				if errors.Is(err, store.ErrItemNotFound) {
					return nil, fmt.Errorf("%w: referenced item %d does not exist",
						models.ErrInvalidFieldValue, *value.RelatedItemID)
				}
				return nil, err
			}
		}

		fieldValue := models.FieldValue{
			FieldDefinitionID: definition.ID,
			Value:             value,
		}
		if definition.IsList {
			coerced = append(coerced, fieldValue)
			continue
		}
		if at, ok := scalarAt[definition.ID]; ok {
			// scalar overwrite: keep only the latest value in the batch
			coerced[at] = fieldValue
			continue
		}
		scalarAt[definition.ID] = len(coerced)
		coerced = append(coerced, fieldValue)
	}

	return coerced, nil
}

// validateChainLinks checks both proposed pointers of one item against the
// chain invariants. selfID is 0 when the item is not created yet.
func validateChainLinks(ctx context.Context, repos store.Repositories, collectionID, selfID int64, previousItemID, nextItemID *int64) error {
	previous, err := resolveLink(ctx, repos, collectionID, selfID, previousItemID)
	if err != nil {
		return err
	}
	next, err := resolveLink(ctx, repos, collectionID, selfID, nextItemID)
	if err != nil {
		return err
	}

	if previous != nil && previous.NextItemID != nil && *previous.NextItemID != selfID {
		return fmt.Errorf("%w: item %d already has a next item", ErrLinkConflict, previous.ID)
	}
	if next != nil && next.PreviousItemID != nil && *next.PreviousItemID != selfID {
		return fmt.Errorf("%w: item %d already has a previous item", ErrLinkConflict, next.ID)
	}

	return nil
}

// resolveLink loads one proposed neighbor and checks it is not the item
// itself, exists, and lives in the same collection.
func resolveLink(ctx context.Context, repos store.Repositories, collectionID, selfID int64, linkID *int64) (*models.Item, error) {
	if linkID == nil {
		return nil, nil
	}
	if *linkID == selfID {
		return nil, fmt.Errorf("%w: item cannot link to itself", ErrInvalidLink)
	}

	linked, err := repos.Items().GetByID(ctx, *linkID)
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			return nil, fmt.Errorf("%w: item %d does not exist", ErrInvalidLink, *linkID)
		}
		return nil, err
	}
	if linked.CollectionID != collectionID {
		return nil, fmt.Errorf("%w: item %d belongs to another collection", ErrInvalidLink, *linkID)
	}

	return linked, nil
}

// rewireNeighbors points the accepted neighbors back at the item, keeping
// the chain bidirectional within the same transaction.
func rewireNeighbors(ctx context.Context, repos store.Repositories, id int64, previousItemID, nextItemID *int64) error {
	if previousItemID != nil {
		if err := repos.Items().SetNext(ctx, *previousItemID, &id); err != nil {
			return err
		}
	}
	if nextItemID != nil {
		if err := repos.Items().SetPrevious(ctx, *nextItemID, &id); err != nil {
			return err
		}
	}
	return nil
}

// detachStaleNeighbor nulls the back pointer of an old neighbor that the
// updated item no longer references.
func detachStaleNeighbor(ctx context.Context, repos store.Repositories, oldID, newID *int64, clear func(context.Context, int64, *int64) error) error {
	if oldID == nil {
		return nil
	}
	if newID != nil && *newID == *oldID {
		return nil
	}
	return clear(ctx, *oldID, nil)
}

// attachFieldValues loads the field values for every item in one query and
// distributes them.
func attachFieldValues(ctx context.Context, values store.FieldValueRepository, items []models.Item) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]int64, len(items))
	for idx, item := range items {
		ids[idx] = item.ID
	}
	grouped, err := values.ListByItems(ctx, ids)
	if err != nil {
		return err
	}
	for idx := range items {
		items[idx].FieldValues = grouped[items[idx].ID]
	}

	return nil
}

// filterByText keeps items where any text-typed value contains the search
// term, case-insensitively.
func filterByText(items []models.Item, search string) []models.Item {
	needle := strings.ToLower(search)
	filtered := items[:0]
	for _, item := range items {
		for _, fv := range item.FieldValues {
			if fv.Value.Type == models.FieldTypeText && fv.Value.Text != nil &&
				strings.Contains(strings.ToLower(*fv.Value.Text), needle) {
				filtered = append(filtered, item)
				break
			}
		}
	}
	return filtered
}

// sortByFieldValue stably orders items by their value for one field
// definition. Items without a value sort as the type's minimum. For list
// fields the first stored value is used.
func sortByFieldValue(items []models.Item, definition *models.FieldDefinition, descending bool) {
	valueOf := func(item models.Item) models.Value {
		for _, fv := range item.FieldValues {
			if fv.FieldDefinitionID == definition.ID {
				return fv.Value
			}
		}
		return models.Value{Type: definition.FieldType}
	}

	sort.SliceStable(items, func(a, b int) bool {
		cmp := valueOf(items[a]).Compare(valueOf(items[b]))
		if descending {
			return cmp > 0
		}
		return cmp < 0
	})
}
