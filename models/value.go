package models

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Coercion errors. Callers match them with errors.Is; the wrapped message
// carries the offending input for diagnostics.
var (
	// ErrInvalidFieldValue is returned when a raw input cannot be coerced
	// into the canonical representation of its field type.
	ErrInvalidFieldValue = errors.New("invalid field value")

	// ErrUnsupportedFieldType is returned when a field type outside the
	// closed set reaches a coercion or comparison site. It indicates a
	// code/schema mismatch rather than bad user input.
	ErrUnsupportedFieldType = errors.New("unsupported field type")
)

// Value is the tagged-variant representation of one stored field value.
// Type selects which payload slot is semantically active; the others stay
// nil. A Value with a nil active slot represents a stored null.
//
// Keeping coercion and payload selection in one place guarantees that
// store(x) followed by retrieve() yields x for every representable input,
// instead of six switch statements drifting apart across callers.
type Value struct {
	Type FieldType

	Text          *string
	Int           *int32
	Decimal       *decimal.Decimal
	Date          *time.Time
	Image         []byte
	RelatedItemID *int64
}

// IsNull reports whether the value carries no payload.
func (v Value) IsNull() bool {
	switch v.Type {
	case FieldTypeText:
		return v.Text == nil
	case FieldTypeInteger:
		return v.Int == nil
	case FieldTypeDecimal:
		return v.Decimal == nil
	case FieldTypeDate:
		return v.Date == nil
	case FieldTypeImage:
		return v.Image == nil
	case FieldTypeItemReference:
		return v.RelatedItemID == nil
	}
	return true
}

// Raw returns the active payload as an untyped value: string, int32,
// decimal.Decimal, time.Time, []byte or int64 (related item id).
// Returns nil for a null value.
func (v Value) Raw() any {
	switch v.Type {
	case FieldTypeText:
		if v.Text != nil {
			return *v.Text
		}
	case FieldTypeInteger:
		if v.Int != nil {
			return *v.Int
		}
	case FieldTypeDecimal:
		if v.Decimal != nil {
			return *v.Decimal
		}
	case FieldTypeDate:
		if v.Date != nil {
			return *v.Date
		}
	case FieldTypeImage:
		if v.Image != nil {
			return v.Image
		}
	case FieldTypeItemReference:
		if v.RelatedItemID != nil {
			return *v.RelatedItemID
		}
	}
	return nil
}

// Equal reports whether two values of the same type hold the same payload.
// Image values compare byte-for-byte; dates compare as instants.
// Used for list-field removal, which matches by value equality.
func (v Value) Equal(other Value) bool {
	if v.Type != other.Type {
		return false
	}
	if v.IsNull() || other.IsNull() {
		return v.IsNull() == other.IsNull()
	}

	switch v.Type {
	case FieldTypeText:
		return *v.Text == *other.Text
	case FieldTypeInteger:
		return *v.Int == *other.Int
	case FieldTypeDecimal:
		return v.Decimal.Equal(*other.Decimal)
	case FieldTypeDate:
		return v.Date.Equal(*other.Date)
	case FieldTypeImage:
		if len(v.Image) != len(other.Image) {
			return false
		}
		for i := range v.Image {
			if v.Image[i] != other.Image[i] {
				return false
			}
		}
		return true
	case FieldTypeItemReference:
		return *v.RelatedItemID == *other.RelatedItemID
	}
	return false
}

// Compare orders v relative to other for sorting. A null value sorts as the
// type's minimum, so valueless items come first ascending and last
// descending. Both values must share the same type.
func (v Value) Compare(other Value) int {
	if v.IsNull() || other.IsNull() {
		switch {
		case v.IsNull() && other.IsNull():
			return 0
		case v.IsNull():
			return -1
		default:
			return 1
		}
	}

	switch v.Type {
	case FieldTypeText:
		return strings.Compare(*v.Text, *other.Text)
	case FieldTypeInteger:
		switch {
		case *v.Int < *other.Int:
			return -1
		case *v.Int > *other.Int:
			return 1
		}
		return 0
	case FieldTypeDecimal:
		return v.Decimal.Cmp(*other.Decimal)
	case FieldTypeDate:
		return v.Date.Compare(*other.Date)
	case FieldTypeImage:
		// images have no meaningful order; compare lengths for stability
		switch {
		case len(v.Image) < len(other.Image):
			return -1
		case len(v.Image) > len(other.Image):
			return 1
		}
		return 0
	case FieldTypeItemReference:
		switch {
		case *v.RelatedItemID < *other.RelatedItemID:
			return -1
		case *v.RelatedItemID > *other.RelatedItemID:
			return 1
		}
		return 0
	}
	return 0
}

// valueJSON is the wire shape of a Value: the field type plus the raw
// payload. Decimals travel as strings to keep their exact textual form,
// images as base64, dates as RFC 3339.
type valueJSON struct {
	Type FieldType `json:"type"`
	Raw  any       `json:"value"`
}

func (v Value) MarshalJSON() ([]byte, error) {
	raw := v.Raw()
	switch t := raw.(type) {
	case decimal.Decimal:
		raw = t.String()
	case time.Time:
		raw = t.Format(time.RFC3339Nano)
	case []byte:
		raw = base64.StdEncoding.EncodeToString(t)
	}
	return json.Marshal(valueJSON{Type: v.Type, Raw: raw})
}

// UnmarshalJSON decodes the wire shape back through Coerce, so a decoded
// Value always satisfies the same canonical form as a freshly coerced one.
func (v *Value) UnmarshalJSON(data []byte) error {
	var decoded valueJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	coerced, err := Coerce(decoded.Type, decoded.Raw)
	if err != nil {
		return err
	}
	*v = coerced

	return nil
}

// dateLayouts are accepted when a date arrives as a string.
// time.RFC3339 is tried first since it is what we serialize.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
}

// Coerce converts a loosely-typed raw input (string, number, bytes or an
// already-typed value coming from a caller) into the canonical Value for
// the given field type.
//
// Policy, fixed here once for every caller:
//   - nil and "" produce a null value for any type;
//   - Integer accepts any numeric-like input that fits the 32-bit signed
//     range without a fractional part;
//   - Decimal additionally accepts integer input, widened losslessly;
//     no other implicit widening is performed;
//   - Date accepts time.Time or a string in RFC 3339 / "2006-01-02" form;
//   - Image accepts raw bytes or their base64 form (the JSON wire shape),
//     with no validation of the image format;
//   - ItemReference accepts an item identifier; whether that item exists
//     is checked by the service layer, not here.
//
// Failures are reported as ErrInvalidFieldValue, or ErrUnsupportedFieldType
// when ft is outside the closed set.
func Coerce(ft FieldType, raw any) (Value, error) {
	v := Value{Type: ft}
	if raw == nil {
		if !ft.Valid() {
			return Value{}, fmt.Errorf("%w: %q", ErrUnsupportedFieldType, ft)
		}
		return v, nil
	}
	if s, ok := raw.(string); ok && s == "" && ft != FieldTypeText {
		return v, nil
	}

	switch ft {
	case FieldTypeText:
		s, err := coerceText(raw)
		if err != nil {
			return Value{}, err
		}
		v.Text = &s

	case FieldTypeInteger:
		n, err := coerceInteger(raw)
		if err != nil {
			return Value{}, err
		}
		v.Int = &n

	case FieldTypeDecimal:
		d, err := coerceDecimal(raw)
		if err != nil {
			return Value{}, err
		}
		v.Decimal = &d

	case FieldTypeDate:
		t, err := coerceDate(raw)
		if err != nil {
			return Value{}, err
		}
		v.Date = &t

	case FieldTypeImage:
		b, err := coerceImage(raw)
		if err != nil {
			return Value{}, err
		}
		v.Image = b

	case FieldTypeItemReference:
		id, err := coerceInt64(raw)
		if err != nil {
			return Value{}, err
		}
		v.RelatedItemID = &id

	default:
		return Value{}, fmt.Errorf("%w: %q", ErrUnsupportedFieldType, ft)
	}

	return v, nil
}

func coerceText(raw any) (string, error) {
	switch t := raw.(type) {
	case string:
		return t, nil
	case *string:
		return *t, nil
	}
	return "", fmt.Errorf("%w: expected text, got %T", ErrInvalidFieldValue, raw)
}

func coerceInteger(raw any) (int32, error) {
	n, err := coerceInt64(raw)
	if err != nil {
		return 0, err
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %d out of 32-bit range", ErrInvalidFieldValue, n)
	}
	return int32(n), nil
}

func coerceInt64(raw any) (int64, error) {
	switch t := raw.(type) {
	case int:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case int64:
		return t, nil
	case float64:
		// JSON numbers arrive as float64
		if t != math.Trunc(t) {
			return 0, fmt.Errorf("%w: %v is not a whole number", ErrInvalidFieldValue, t)
		}
		return int64(t), nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not numeric", ErrInvalidFieldValue, t)
		}
		return n, nil
	}
	return 0, fmt.Errorf("%w: expected number, got %T", ErrInvalidFieldValue, raw)
}

func coerceDecimal(raw any) (decimal.Decimal, error) {
	switch t := raw.(type) {
	case decimal.Decimal:
		return t, nil
	case int:
		return decimal.NewFromInt(int64(t)), nil
	case int32:
		return decimal.NewFromInt32(t), nil
	case int64:
		return decimal.NewFromInt(t), nil
	case float64:
		return decimal.NewFromFloat(t), nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("%w: %q is not numeric", ErrInvalidFieldValue, t)
		}
		return d, nil
	}
	return decimal.Decimal{}, fmt.Errorf("%w: expected number, got %T", ErrInvalidFieldValue, raw)
}

func coerceDate(raw any) (time.Time, error) {
	switch t := raw.(type) {
	case time.Time:
		return t.UTC(), nil
	case string:
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed.UTC(), nil
			}
		}
		return time.Time{}, fmt.Errorf("%w: %q is not a date", ErrInvalidFieldValue, t)
	}
	return time.Time{}, fmt.Errorf("%w: expected date, got %T", ErrInvalidFieldValue, raw)
}

func coerceImage(raw any) ([]byte, error) {
	switch t := raw.(type) {
	case []byte:
		return t, nil
	case string:
		b, err := base64.StdEncoding.DecodeString(t)
		if err != nil {
			return nil, fmt.Errorf("%w: not valid base64 image data", ErrInvalidFieldValue)
		}
		return b, nil
	}
	return nil, fmt.Errorf("%w: expected bytes, got %T", ErrInvalidFieldValue, raw)
}
