package http

import (
	"net/http"

	"github.com/collectify/collectify/models"
)

func (h *Handler) createCollection(w http.ResponseWriter, r *http.Request) {
	var req createCollectionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	collection, err := h.services.CollectionService.CreateCollection(r.Context(), req.Name, req.Description, req.TemplateID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, collection)
}

func (h *Handler) listCollections(w http.ResponseWriter, r *http.Request) {
	q := models.CollectionQuery{
		TemplateID:     queryInt64(r, "templateId"),
		Search:         r.URL.Query().Get("search"),
		SortDescending: queryDescending(r),
	}

	collections, err := h.services.CollectionService.ListCollections(r.Context(), q)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, collections)
}

func (h *Handler) getCollection(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	collection, err := h.services.CollectionService.GetCollection(r.Context(), id, queryBool(r, "includeItems"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, collection)
}

func (h *Handler) updateCollection(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req updateCollectionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	collection, err := h.services.CollectionService.UpdateCollection(r.Context(), id, req.Name, req.Description)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, collection)
}

func (h *Handler) deleteCollection(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.services.CollectionService.DeleteCollection(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
