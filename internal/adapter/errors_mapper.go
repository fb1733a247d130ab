package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/collectify/collectify/internal/service"
	"github.com/collectify/collectify/internal/store"
	"github.com/collectify/collectify/models"
	"github.com/go-resty/resty/v2"
)

// errorEnvelope mirrors the server's JSON error shape.
type errorEnvelope struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// codeErrorMap reverses the server's error codes back onto the sentinel
// errors, so errors.Is works identically against the client and the
// in-process services.
var codeErrorMap = map[string]error{
	"template_not_found":         store.ErrTemplateNotFound,
	"field_definition_not_found": store.ErrFieldDefinitionNotFound,
	"collection_not_found":       store.ErrCollectionNotFound,
	"item_not_found":             store.ErrItemNotFound,
	"field_value_not_found":      store.ErrFieldValueNotFound,
	"template_in_use":            store.ErrTemplateInUse,

	"invalid_field_value":    models.ErrInvalidFieldValue,
	"unsupported_field_type": models.ErrUnsupportedFieldType,

	"name_required":        service.ErrNameRequired,
	"name_too_long":        service.ErrNameTooLong,
	"description_too_long": service.ErrDescriptionTooLong,
	"invalid_link":         service.ErrInvalidLink,
	"link_conflict":        service.ErrLinkConflict,
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(resp.Body(), &envelope); err == nil && envelope.Code != "" {
		if target, ok := codeErrorMap[envelope.Code]; ok {
			return fmt.Errorf("%w: %s", target, envelope.Error)
		}
		return fmt.Errorf("http %d (%s): %s", resp.StatusCode(), envelope.Code, envelope.Error)
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}
	return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
}
