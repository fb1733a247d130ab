package http

import (
	"net/http"

	"github.com/collectify/collectify/models"
)

func (h *Handler) createTemplate(w http.ResponseWriter, r *http.Request) {
	var req createTemplateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	template, err := h.services.TemplateService.CreateTemplate(r.Context(), req.Name, req.Fields)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, template)
}

func (h *Handler) listTemplates(w http.ResponseWriter, r *http.Request) {
	q := models.TemplateQuery{
		Search:         r.URL.Query().Get("search"),
		SortDescending: queryDescending(r),
	}

	templates, err := h.services.TemplateService.ListTemplates(r.Context(), q)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, templates)
}

func (h *Handler) getTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	template, err := h.services.TemplateService.GetTemplate(r.Context(), id, queryBool(r, "includeFields"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, template)
}

func (h *Handler) deleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.services.TemplateService.DeleteTemplate(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addField(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req models.TemplateFieldInput
	if !decodeBody(w, r, &req) {
		return
	}

	definition, err := h.services.TemplateService.AddField(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, definition)
}

func (h *Handler) removeField(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.services.TemplateService.RemoveField(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
