package http

import (
	"errors"
	"net/http"

	"github.com/collectify/collectify/internal/service"
	"github.com/collectify/collectify/internal/store"
	"github.com/collectify/collectify/models"
)

// Stable machine-readable error codes carried in the JSON error envelope.
// The client adapter maps them back onto the matching sentinel errors, so
// changing a value here is a wire-format change.
const (
	codeBadRequest           = "bad_request"
	codeTemplateNotFound     = "template_not_found"
	codeFieldNotFound        = "field_definition_not_found"
	codeCollectionNotFound   = "collection_not_found"
	codeItemNotFound         = "item_not_found"
	codeFieldValueNotFound   = "field_value_not_found"
	codeTemplateInUse        = "template_in_use"
	codeInvalidFieldValue    = "invalid_field_value"
	codeUnsupportedFieldType = "unsupported_field_type"
	codeInvalidLink          = "invalid_link"
	codeLinkConflict         = "link_conflict"
	codeNameRequired         = "name_required"
	codeNameTooLong          = "name_too_long"
	codeDescriptionTooLong   = "description_too_long"
	codeInternal             = "internal"
)

var errorStatusMap = map[error]int{
	store.ErrTemplateNotFound:        http.StatusNotFound,
	store.ErrFieldDefinitionNotFound: http.StatusNotFound,
	store.ErrCollectionNotFound:      http.StatusNotFound,
	store.ErrItemNotFound:            http.StatusNotFound,
	store.ErrFieldValueNotFound:      http.StatusNotFound,
	store.ErrTemplateInUse:           http.StatusConflict,
	store.ErrConstraintViolation:     http.StatusConflict,

	models.ErrInvalidFieldValue:    http.StatusBadRequest,
	models.ErrUnsupportedFieldType: http.StatusBadRequest,

	service.ErrNameRequired:       http.StatusBadRequest,
	service.ErrNameTooLong:        http.StatusBadRequest,
	service.ErrDescriptionTooLong: http.StatusBadRequest,
	service.ErrInvalidLink:        http.StatusBadRequest,
	service.ErrLinkConflict:       http.StatusConflict,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

var errorCodeMap = map[error]string{
	store.ErrTemplateNotFound:        codeTemplateNotFound,
	store.ErrFieldDefinitionNotFound: codeFieldNotFound,
	store.ErrCollectionNotFound:      codeCollectionNotFound,
	store.ErrItemNotFound:            codeItemNotFound,
	store.ErrFieldValueNotFound:      codeFieldValueNotFound,
	store.ErrTemplateInUse:           codeTemplateInUse,

	models.ErrInvalidFieldValue:    codeInvalidFieldValue,
	models.ErrUnsupportedFieldType: codeUnsupportedFieldType,

	service.ErrNameRequired:       codeNameRequired,
	service.ErrNameTooLong:        codeNameTooLong,
	service.ErrDescriptionTooLong: codeDescriptionTooLong,
	service.ErrInvalidLink:        codeInvalidLink,
	service.ErrLinkConflict:       codeLinkConflict,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

func codeFromError(err error) string {
	for target, code := range errorCodeMap {
		if errors.Is(err, target) {
			return code
		}
	}
	return codeInternal
}
