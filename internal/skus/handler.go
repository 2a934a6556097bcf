package skus

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/skudeck/skudeck/internal/platform/httpx"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req := ListSKUsRequest{
		Status: StatusFilter(r.URL.Query().Get("status")),
		Search: r.URL.Query().Get("q"),
	}
	visible := h.service.List(req)
	httpx.JSON(w, http.StatusOK, map[string]any{
		"skus":      visible,
		"open_menu": h.service.OpenMenuID(),
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSKURequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Input", "malformed request body")
		return
	}
	sku, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("create sku failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, sku)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Input", "invalid id")
		return
	}
	var req UpdateSKURequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Input", "malformed request body")
		return
	}
	sku, err := h.service.Edit(r.Context(), id, req)
	if err != nil {
		h.logger.Error("update sku failed", "error", err, "id", id)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, sku)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Input", "invalid id")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.logger.Error("delete sku failed", "error", err, "id", id)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
}

func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Input", "invalid id")
		return
	}
	sku, err := h.service.ToggleActive(r.Context(), id)
	if err != nil {
		h.logger.Error("toggle sku failed", "error", err, "id", id)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, sku)
}

func (h *Handler) OpenMenu(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Input", "invalid id")
		return
	}
	h.service.OpenMenu(id)
	httpx.JSON(w, http.StatusOK, map[string]any{"open_menu": id})
}

func (h *Handler) CloseMenu(w http.ResponseWriter, r *http.Request) {
	h.service.CloseMenu()
	httpx.JSON(w, http.StatusOK, map[string]any{"open_menu": nil})
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Refresh(r.Context()); err != nil {
		h.logger.Error("refresh skus failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"status": "refreshed"})
}
