package skus

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Post("/refresh", h.Refresh)
	r.Delete("/menu", h.CloseMenu)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/toggle", h.Toggle)
	r.Post("/{id}/menu", h.OpenMenu)
}
