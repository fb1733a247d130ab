package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/collectify/collectify/internal/logger"
	"github.com/collectify/collectify/models"
	"github.com/go-chi/chi/v5"
)

type createTemplateRequest struct {
	Name   string                      `json:"name"`
	Fields []models.TemplateFieldInput `json:"fields"`
}

type createCollectionRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	TemplateID  int64   `json:"templateId"`
}

type updateCollectionRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// itemRequest is shared by item creation and update: both carry the full
// set of field values plus the chain pointers.
type itemRequest struct {
	FieldValues    []models.ItemFieldValueInput `json:"fieldValues"`
	PreviousItemID *int64                       `json:"previousItemId,omitempty"`
	NextItemID     *int64                       `json:"nextItemId,omitempty"`
}

// removeFieldValueRequest identifies one stored value by field and
// payload; the first stored value equal to it is removed.
type removeFieldValueRequest struct {
	FieldDefinitionID int64 `json:"fieldDefinitionId"`
	Value             any   `json:"value"`
}

// errorResponse is the JSON error envelope. Code is a stable machine
// identifier; the client adapter uses it to reconstruct the sentinel error
// on its side.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "writeJSON").Msg("error encoding response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		logger.FromRequest(r).Err(err).Str("func", "writeError").Msg("request failed")
	} else {
		logger.FromRequest(r).Debug().Err(err).Str("func", "writeError").Msg("request rejected")
	}
	writeJSON(w, r, status, errorResponse{Error: err.Error(), Code: codeFromError(err)})
}

// idParam parses the {id} route parameter. A malformed id is reported to
// the client directly; the caller should just return.
func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "invalid id", Code: codeBadRequest})
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.FromRequest(r).Debug().Err(err).Str("func", "decodeBody").Msg("invalid JSON was passed")
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "invalid JSON was passed", Code: codeBadRequest})
		return false
	}
	return true
}

func queryBool(r *http.Request, name string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return v
}

func queryDescending(r *http.Request) bool {
	return r.URL.Query().Get("sort") == "desc"
}

func queryInt64(r *http.Request, name string) *int64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}
