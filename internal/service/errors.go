package service

import "errors"

// Validation and linking errors raised by the service layer. Matched with
// errors.Is; the HTTP layer maps them onto status codes.
var (
	// ErrNameRequired is returned when a template or collection is created
	// or renamed with an empty name.
	ErrNameRequired = errors.New("name is required")

	// ErrNameTooLong is returned when a name exceeds the stored column size.
	ErrNameTooLong = errors.New("name is too long")

	// ErrDescriptionTooLong is returned when a collection description
	// exceeds the stored column size.
	ErrDescriptionTooLong = errors.New("description is too long")

	// ErrInvalidLink is returned when a chain pointer references the item
	// itself, a missing item, or an item from another collection.
	ErrInvalidLink = errors.New("invalid item link")

	// ErrLinkConflict is returned when a chain pointer would give a
	// neighboring item a second predecessor or successor.
	ErrLinkConflict = errors.New("conflicting item link")
)
