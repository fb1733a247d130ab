package models

import "fmt"

// FieldType defines the kind of value a field definition can hold.
// The set is closed: every coercion and comparison site switches over it
// exhaustively, and an unknown value is reported as ErrUnsupportedFieldType.
type FieldType string

const (
	// FieldTypeText represents a free-form text value,
	// for example a title or a description.
	FieldTypeText FieldType = "text"

	// FieldTypeInteger represents a whole number.
	// Values are constrained to the 32-bit signed range.
	FieldTypeInteger FieldType = "integer"

	// FieldTypeDecimal represents an arbitrary-precision decimal value,
	// for example a price.
	FieldTypeDecimal FieldType = "decimal"

	// FieldTypeDate represents a date or date-time value.
	FieldTypeDate FieldType = "date"

	// FieldTypeImage represents a binary value stored as raw bytes.
	// The content is not validated to be any particular image format.
	FieldTypeImage FieldType = "image"

	// FieldTypeItemReference represents a reference to another item,
	// possibly from a different collection.
	FieldTypeItemReference FieldType = "item_reference"
)

// FieldTypes lists every supported field type in declaration order.
var FieldTypes = []FieldType{
	FieldTypeText,
	FieldTypeInteger,
	FieldTypeDecimal,
	FieldTypeDate,
	FieldTypeImage,
	FieldTypeItemReference,
}

// Valid reports whether t is one of the supported field types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeInteger, FieldTypeDecimal,
		FieldTypeDate, FieldTypeImage, FieldTypeItemReference:
		return true
	}
	return false
}

func (t FieldType) String() string {
	return string(t)
}

// ParseFieldType converts the wire representation of a field type into a
// FieldType, failing with ErrUnsupportedFieldType for anything outside the
// closed set.
func ParseFieldType(s string) (FieldType, error) {
	ft := FieldType(s)
	if !ft.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFieldType, s)
	}
	return ft, nil
}
