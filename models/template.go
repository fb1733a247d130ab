package models

// Template is a user-authored schema: a named, ordered set of field
// definitions shared by every collection built on it.
type Template struct {
	// ID is the unique identifier of the template.
	ID int64 `json:"id"`

	// Name is the display name of the template.
	Name string `json:"name"`

	// Fields holds the field definitions owned by this template,
	// in creation order. Populated only when requested.
	Fields []FieldDefinition `json:"fields,omitempty"`
}

// FieldDefinition is one named, typed slot in a template.
type FieldDefinition struct {
	// ID is the unique identifier of the field definition.
	ID int64 `json:"id"`

	// Name is the display name of the field, for example "Title".
	Name string `json:"name"`

	// FieldType determines which value kind this field stores.
	// Immutable after creation: changing it would orphan stored values
	// of the old kind.
	FieldType FieldType `json:"fieldType"`

	// IsList marks the field as list-valued: an item may hold any number
	// of values for it instead of at most one.
	IsList bool `json:"isList"`

	// TemplateID is the identifier of the owning template.
	TemplateID int64 `json:"templateId"`
}

// TemplateFieldInput describes one field definition at template creation.
type TemplateFieldInput struct {
	Name      string    `json:"name"`
	FieldType FieldType `json:"fieldType"`
	IsList    bool      `json:"isList"`
}

// TemplateQuery holds the listing options for templates.
type TemplateQuery struct {
	// Search, when non-empty, keeps only templates whose name contains it
	// as a case-insensitive substring.
	Search string

	// SortDescending orders the listing by name descending instead of
	// ascending.
	SortDescending bool
}
