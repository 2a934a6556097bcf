package orders

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
	httpx.JSON(w, http.StatusOK, h.service.List(h.parseListQuery(r)))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Input", "malformed request body")
		return
	}
	order, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("create order failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, order)
}

func (h *Handler) ToggleSelect(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Input", "invalid id")
		return
	}
	selected, err := h.service.ToggleSelect(id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"id":       id,
		"selected": selected,
		"all":      h.service.SelectedIDs(),
	})
}

func (h *Handler) StageBulk(w http.ResponseWriter, r *http.Request) {
	var req BulkUpdateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Input", "malformed request body")
		return
	}
	staged, err := h.service.StageBulkUpdate(req.Status)
	if err != nil {
		h.logger.Warn("stage bulk update rejected", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, staged)
}

func (h *Handler) ConfirmBulk(w http.ResponseWriter, r *http.Request) {
	applied, err := h.service.ConfirmBulkUpdate(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, applied)
}

func (h *Handler) CancelBulk(w http.ResponseWriter, r *http.Request) {
	h.service.CancelBulkUpdate()
	httpx.JSON(w, http.StatusOK, map[string]any{"staged": nil})
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Refresh(r.Context()); err != nil {
		h.logger.Error("refresh orders failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"status": "refreshed"})
}

func (h *Handler) parseListQuery(r *http.Request) ListQuery {
	q := ListQuery{
		Status:  StatusFilterAll,
		Search:  r.URL.Query().Get("q"),
		SortAsc: true,
		Page:    1,
	}
	if status := r.URL.Query().Get("status"); status != "" {
		q.Status = StatusFilter(status)
	}
	if sort := r.URL.Query().Get("sort"); sort == "desc" {
		q.SortAsc = false
	}
	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && page > 0 {
		q.Page = page
	}
	return q
}
