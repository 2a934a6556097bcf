package notify

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/skudeck/skudeck/internal/platform/httpx"
)

// Handler exposes the current notification over HTTP.
type Handler struct {
	notifier *Notifier
}

// NewHandler constructs a notification handler.
func NewHandler(notifier *Notifier) *Handler {
	return &Handler{notifier: notifier}
}

// MountRoutes attaches notification routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/current", h.current)
}

func (h *Handler) current(w http.ResponseWriter, r *http.Request) {
	notification := h.notifier.Current()
	if notification == nil {
		httpx.JSON(w, http.StatusOK, map[string]any{"notification": nil})
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"notification": notification})
}
