package http

import (
	"net/http"

	"github.com/collectify/collectify/models"
)

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	collectionID, ok := idParam(w, r)
	if !ok {
		return
	}

	var req itemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	item, err := h.services.ItemService.CreateItem(r.Context(), collectionID, req.FieldValues, req.PreviousItemID, req.NextItemID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, item)
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	collectionID, ok := idParam(w, r)
	if !ok {
		return
	}

	q := models.ItemQuery{
		Search:                  r.URL.Query().Get("search"),
		SortByFieldDefinitionID: queryInt64(r, "sortBy"),
		Descending:              queryDescending(r),
	}

	items, err := h.services.ItemService.GetItemsForCollection(r.Context(), collectionID, q)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, items)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	item, err := h.services.ItemService.GetItem(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, item)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req itemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	item, err := h.services.ItemService.UpdateItem(r.Context(), id, req.FieldValues, req.PreviousItemID, req.NextItemID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, item)
}

func (h *Handler) removeFieldValue(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req removeFieldValueRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.services.ItemService.RemoveFieldValue(r.Context(), id, req.FieldDefinitionID, req.Value); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.services.ItemService.DeleteItem(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
