package store

import (
	"context"

	"github.com/collectify/collectify/models"
)

// TemplateRepository persists templates.
type TemplateRepository interface {
	// GetByID loads one template without its fields.
	// Returns ErrTemplateNotFound when the id does not resolve.
	GetByID(ctx context.Context, id int64) (*models.Template, error)

	// GetWithFields loads one template together with its field
	// definitions in creation order.
	GetWithFields(ctx context.Context, id int64) (*models.Template, error)

	// List returns templates matching the query, ordered by name.
	List(ctx context.Context, q models.TemplateQuery) ([]models.Template, error)

	// Add inserts the template and writes the generated id back.
	Add(ctx context.Context, template *models.Template) error

	// Remove deletes the template. Its field definitions cascade;
	// referencing collections make the delete fail with ErrTemplateInUse.
	Remove(ctx context.Context, id int64) error
}

// FieldDefinitionRepository persists field definitions.
type FieldDefinitionRepository interface {
	// GetByID returns ErrFieldDefinitionNotFound when the id does not
	// resolve.
	GetByID(ctx context.Context, id int64) (*models.FieldDefinition, error)

	// ListByTemplate returns the template's definitions in creation order.
	ListByTemplate(ctx context.Context, templateID int64) ([]models.FieldDefinition, error)

	// ListByIDs returns the definitions for the given ids; missing ids are
	// simply absent from the result.
	ListByIDs(ctx context.Context, ids []int64) ([]models.FieldDefinition, error)

	// Add inserts the definition and writes the generated id back.
	Add(ctx context.Context, definition *models.FieldDefinition) error

	// Remove deletes the definition. Stored values referencing it cascade.
	Remove(ctx context.Context, id int64) error
}

// CollectionRepository persists collections.
type CollectionRepository interface {
	// GetByID returns ErrCollectionNotFound when the id does not resolve.
	GetByID(ctx context.Context, id int64) (*models.Collection, error)

	// List returns collections matching the query, ordered by name.
	List(ctx context.Context, q models.CollectionQuery) ([]models.Collection, error)

	// CountByTemplate counts collections built on the given template.
	CountByTemplate(ctx context.Context, templateID int64) (int64, error)

	// Add inserts the collection and writes the generated id back.
	Add(ctx context.Context, collection *models.Collection) error

	// Update persists name and description changes.
	Update(ctx context.Context, collection *models.Collection) error

	// Remove deletes the collection; its items and their values cascade.
	Remove(ctx context.Context, id int64) error
}

// ItemRepository persists items and their ordering-chain pointers.
type ItemRepository interface {
	// GetByID loads one item without its field values.
	// Returns ErrItemNotFound when the id does not resolve.
	GetByID(ctx context.Context, id int64) (*models.Item, error)

	// ListByCollection returns the collection's items ordered by creation
	// date, without field values.
	ListByCollection(ctx context.Context, collectionID int64, descending bool) ([]models.Item, error)

	// Add inserts the item and writes the generated id back. Link pointers
	// are inserted as given; validation happens in the service layer.
	Add(ctx context.Context, item *models.Item) error

	// SetLinks replaces both chain pointers of one item.
	SetLinks(ctx context.Context, id int64, previousItemID, nextItemID *int64) error

	// SetPrevious replaces the previous pointer of one item.
	SetPrevious(ctx context.Context, id int64, previousItemID *int64) error

	// SetNext replaces the next pointer of one item.
	SetNext(ctx context.Context, id int64, nextItemID *int64) error

	// ClearLinksForCollection nulls both pointers on every item of the
	// collection. Used before cascading deletes, which the self-referencing
	// foreign keys would otherwise block.
	ClearLinksForCollection(ctx context.Context, collectionID int64) error

	// Remove deletes the item; its field values cascade.
	Remove(ctx context.Context, id int64) error
}

// FieldValueRepository persists stored field values.
type FieldValueRepository interface {
	// ListByItem returns the item's values joined with their definition's
	// field type.
	ListByItem(ctx context.Context, itemID int64) ([]models.FieldValue, error)

	// ListByItems returns the values of many items at once, grouped by
	// item id.
	ListByItems(ctx context.Context, itemIDs []int64) (map[int64][]models.FieldValue, error)

	// Add inserts the value and writes the generated id back.
	Add(ctx context.Context, value *models.FieldValue) error

	// Remove deletes a single value row by id.
	Remove(ctx context.Context, id int64) error

	// RemoveByItem deletes every value of the item.
	RemoveByItem(ctx context.Context, itemID int64) error
}

// Repositories bundles the per-entity repositories sharing one execution
// scope: either the pooled connection or a single transaction.
type Repositories interface {
	Templates() TemplateRepository
	FieldDefinitions() FieldDefinitionRepository
	Collections() CollectionRepository
	Items() ItemRepository
	FieldValues() FieldValueRepository
}

// UnitOfWork is a transaction-scoped set of repositories. Every write made
// through it becomes visible atomically on Commit; Rollback after a
// successful Commit is a no-op, so callers can defer it unconditionally.
type UnitOfWork interface {
	Repositories

	Commit() error
	Rollback() error
}

// Store is the persistence entry point handed to services: pooled
// repositories for reads and Begin for transactional writes.
type Store interface {
	Repositories

	// Begin opens a unit of work backed by a database transaction.
	Begin(ctx context.Context) (UnitOfWork, error)

	// Close releases the underlying connection pool.
	Close() error
}
