package models

// Name and description limits, matching the persisted column sizes.
const (
	MaxNameLength        = 200
	MaxDescriptionLength = 1000
)

// Collection is a named container of items, bound to exactly one template.
// It owns its items (they are destroyed with it) and references its
// template without owning it.
type Collection struct {
	// ID is the unique identifier of the collection.
	ID int64 `json:"id"`

	// Name is the display name of the collection.
	Name string `json:"name"`

	// Description is an optional free-form description.
	Description *string `json:"description,omitempty"`

	// TemplateID is the identifier of the template this collection uses.
	TemplateID int64 `json:"templateId"`

	// Items holds the collection's items. Populated only when requested.
	Items []Item `json:"items,omitempty"`
}

// CollectionQuery holds the listing options for collections.
type CollectionQuery struct {
	// TemplateID, when set, keeps only collections built on that template.
	TemplateID *int64

	// Search, when non-empty, keeps only collections whose name or
	// description contains it as a case-insensitive substring.
	Search string

	// SortDescending orders the listing by name descending instead of
	// ascending.
	SortDescending bool
}
