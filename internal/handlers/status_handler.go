package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/mulghai-point/backend/internal/models"
	"github.com/Lixing-Zhang/mulghai-point/backend/internal/service"
)

// StatusHandler serves the API root and client status checks
type StatusHandler struct {
	service *service.StatusService
	log     *slog.Logger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(service *service.StatusService, log *slog.Logger) *StatusHandler {
	return &StatusHandler{service: service, log: log}
}

// Root handles GET /api/
func (h *StatusHandler) Root(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"message": "Hello World"}, h.log)
}

// CreateStatus handles POST /api/status
func (h *StatusHandler) CreateStatus(w http.ResponseWriter, r *http.Request) {
	var req models.StatusCheckCreate
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	check, err := h.service.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrClientNameRequired) {
			WriteError(w, http.StatusBadRequest, err.Error(), h.log)
			return
		}
		h.log.Error("failed to create status check", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, check, h.log)
}

// ListStatus handles GET /api/status
func (h *StatusHandler) ListStatus(w http.ResponseWriter, r *http.Request) {
	checks, err := h.service.List(r.Context())
	if err != nil {
		h.log.Error("failed to list status checks", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, checks, h.log)
}
