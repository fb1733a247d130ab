package models

import "time"

// Item is a single record inside a collection. Its shape is not fixed at
// build time: the owning collection's template decides which field values
// it can hold. The optional previous/next identifiers place the item in a
// user-defined ordering chain, independent of creation order.
type Item struct {
	// ID is the unique identifier of the item.
	ID int64 `json:"id"`

	// CollectionID is the identifier of the owning collection.
	CollectionID int64 `json:"collectionId"`

	// CreationDate is the UTC timestamp set when the item was created.
	// Immutable afterwards.
	CreationDate time.Time `json:"creationDate"`

	// PreviousItemID links to the item preceding this one in the ordering
	// chain, if any.
	PreviousItemID *int64 `json:"previousItemId,omitempty"`

	// NextItemID links to the item following this one in the ordering
	// chain, if any.
	NextItemID *int64 `json:"nextItemId,omitempty"`

	// FieldValues holds the stored values of this item.
	FieldValues []FieldValue `json:"fieldValues,omitempty"`
}

// FieldValue is the stored datum for one item/field-definition pair.
// A scalar field has at most one FieldValue per item; a list field may
// have any number of them.
type FieldValue struct {
	// ID is the unique identifier of the stored value.
	ID int64 `json:"id"`

	// ItemID is the identifier of the owning item.
	ItemID int64 `json:"itemId"`

	// FieldDefinitionID is the identifier of the field definition this
	// value belongs to.
	FieldDefinitionID int64 `json:"fieldDefinitionId"`

	// Value carries the typed payload.
	Value Value `json:"value"`
}

// ItemFieldValueInput carries one loosely-typed field value supplied when
// creating or updating an item. Raw is coerced against the field
// definition's type by the item service.
type ItemFieldValueInput struct {
	FieldDefinitionID int64 `json:"fieldDefinitionId"`
	Raw               any   `json:"value"`
}

// ItemQuery holds the listing options for items of one collection.
type ItemQuery struct {
	// Search, when non-empty, keeps only items where any text-typed field
	// value contains it as a case-insensitive substring.
	Search string

	// SortByFieldDefinitionID, when set, orders items by their value for
	// that field definition instead of by creation date. Items without a
	// value for the field sort as the type's minimum: first ascending,
	// last descending.
	SortByFieldDefinitionID *int64

	// Descending reverses the sort order.
	Descending bool
}
