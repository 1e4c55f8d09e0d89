package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Lixing-Zhang/mulghai-point/backend/internal/pincode"
	"github.com/go-chi/chi/v5"
)

// PincodeHandler answers delivery serviceability questions
type PincodeHandler struct {
	validator *pincode.Validator
	logger    *slog.Logger
}

// NewPincodeHandler creates a new pincode handler
func NewPincodeHandler(validator *pincode.Validator, logger *slog.Logger) *PincodeHandler {
	return &PincodeHandler{
		validator: validator,
		logger:    logger,
	}
}

// CheckPincode handles GET /api/pincode/{pincode}
// 200 with the area when the shop delivers there, 404 otherwise.
func (h *PincodeHandler) CheckPincode(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(chi.URLParam(r, "pincode"))
	if code == "" {
		WriteError(w, http.StatusBadRequest, "Pincode is required", h.logger)
		return
	}

	check := h.validator.Check(code)
	if !check.Valid {
		h.logger.Debug("unserviceable pincode", "pincode", code)
		WriteJSON(w, http.StatusNotFound, check, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, check, h.logger)
}

// ListAreas handles GET /api/pincode
func (h *PincodeHandler) ListAreas(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.validator.Areas(), h.logger)
}

// GetStats handles GET /api/admin/pincode/stats
func (h *PincodeHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.validator.GetStats(), h.logger)
}
