package orders

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/export.csv", h.ExportCSV)
	r.Post("/", h.Create)
	r.Post("/refresh", h.Refresh)
	r.Post("/bulk", h.StageBulk)
	r.Post("/bulk/confirm", h.ConfirmBulk)
	r.Post("/bulk/cancel", h.CancelBulk)
	r.Post("/{id}/select", h.ToggleSelect)
}
