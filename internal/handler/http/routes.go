package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Compress(5, "application/json"))

	router.Route("/api", func(r chi.Router) {
		r.Route("/templates", func(r chi.Router) {
			r.Post("/", h.createTemplate)
			r.Get("/", h.listTemplates)
			r.Get("/{id}", h.getTemplate)
			r.Delete("/{id}", h.deleteTemplate)
			r.Post("/{id}/fields", h.addField)
		})
		r.Delete("/fields/{id}", h.removeField)

		r.Route("/collections", func(r chi.Router) {
			r.Post("/", h.createCollection)
			r.Get("/", h.listCollections)
			r.Get("/{id}", h.getCollection)
			r.Put("/{id}", h.updateCollection)
			r.Delete("/{id}", h.deleteCollection)
			r.Post("/{id}/items", h.createItem)
			r.Get("/{id}/items", h.listItems)
		})

		r.Route("/items", func(r chi.Router) {
			r.Get("/{id}", h.getItem)
			r.Put("/{id}", h.updateItem)
			r.Delete("/{id}", h.deleteItem)
			r.Delete("/{id}/values", h.removeFieldValue)
		})
	})

	return router
}
