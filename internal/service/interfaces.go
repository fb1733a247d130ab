package service

import (
	"context"

	"github.com/collectify/collectify/models"
)

// TemplateService manages templates and their field definitions.
type TemplateService interface {
	// CreateTemplate creates a template together with its initial field
	// definitions in one transaction.
	CreateTemplate(ctx context.Context, name string, fields []models.TemplateFieldInput) (*models.Template, error)

	// AddField appends a new field definition to an existing template.
	// Existing items simply have no value for it yet.
	AddField(ctx context.Context, templateID int64, field models.TemplateFieldInput) (*models.FieldDefinition, error)

	// RemoveField deletes a field definition; every stored value for it is
	// destroyed across all items. Removing a definition that does not exist
	// is a no-op.
	RemoveField(ctx context.Context, fieldDefinitionID int64) error

	// GetTemplate returns one template, optionally with its field
	// definitions.
	GetTemplate(ctx context.Context, id int64, includeFields bool) (*models.Template, error)

	// ListTemplates returns templates matching the query.
	ListTemplates(ctx context.Context, q models.TemplateQuery) ([]models.Template, error)

	// DeleteTemplate deletes a template and its field definitions.
	// Fails with store.ErrTemplateInUse while collections reference it.
	DeleteTemplate(ctx context.Context, id int64) error
}

// CollectionService manages collections.
type CollectionService interface {
	// CreateCollection creates a collection bound to an existing template.
	CreateCollection(ctx context.Context, name string, description *string, templateID int64) (*models.Collection, error)

	// ListCollections returns collections matching the query, without
	// their items.
	ListCollections(ctx context.Context, q models.CollectionQuery) ([]models.Collection, error)

	// GetCollection returns one collection, optionally with its items and
	// their field values.
	GetCollection(ctx context.Context, id int64, includeItems bool) (*models.Collection, error)

	// UpdateCollection renames a collection and replaces its description.
	// The bound template cannot be changed.
	UpdateCollection(ctx context.Context, id int64, name string, description *string) (*models.Collection, error)

	// DeleteCollection deletes a collection together with its items and
	// their field values.
	DeleteCollection(ctx context.Context, id int64) error
}

// ItemService manages items, their field values and the ordering chain.
type ItemService interface {
	// CreateItem creates an item in a collection with the given field
	// values and optional chain pointers, all in one transaction.
	CreateItem(ctx context.Context, collectionID int64, values []models.ItemFieldValueInput, previousItemID, nextItemID *int64) (*models.Item, error)

	// UpdateItem replaces the item's field values and chain pointers.
	// Old neighbors no longer pointed at are detached in the same
	// transaction.
	UpdateItem(ctx context.Context, id int64, values []models.ItemFieldValueInput, previousItemID, nextItemID *int64) (*models.Item, error)

	// RemoveFieldValue deletes a single stored value of the item's field.
	// The raw input is coerced to the field's type and compared against
	// the stored values in insertion order; the first equal value is
	// removed.
	RemoveFieldValue(ctx context.Context, itemID, fieldDefinitionID int64, raw any) error

	// DeleteItem deletes an item. Neighbors pointing at it are detached;
	// the chain is not re-spliced around the gap.
	DeleteItem(ctx context.Context, id int64) error

	// GetItem returns one item with its field values.
	GetItem(ctx context.Context, id int64) (*models.Item, error)

	// GetItemsForCollection returns the collection's items with their
	// field values, filtered and ordered per the query.
	GetItemsForCollection(ctx context.Context, collectionID int64, q models.ItemQuery) ([]models.Item, error)
}
