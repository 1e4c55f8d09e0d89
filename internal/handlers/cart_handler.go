package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/mulghai-point/backend/internal/models"
	"github.com/Lixing-Zhang/mulghai-point/backend/internal/repository"
	"github.com/Lixing-Zhang/mulghai-point/backend/internal/service"
	"github.com/go-chi/chi/v5"
)

// CartHandler handles cart HTTP requests
type CartHandler struct {
	carts *service.CartService
	log   *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(carts *service.CartService, log *slog.Logger) *CartHandler {
	return &CartHandler{
		carts: carts,
		log:   log,
	}
}

// CreateCart handles POST /api/cart
func (h *CartHandler) CreateCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.Create(r.Context())
	if err != nil {
		h.log.Error("failed to create cart", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusCreated, cart, h.log)
}

// GetCart handles GET /api/cart/{cartId}
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.Get(r.Context(), chi.URLParam(r, "cartId"))
	if err != nil {
		h.writeCartError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, cart, h.log)
}

// AddItem handles POST /api/cart/{cartId}/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req models.AddItemRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		h.log.Warn("failed to decode add item request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	cart, err := h.carts.AddItem(r.Context(), chi.URLParam(r, "cartId"), req)
	if err != nil {
		h.writeCartError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, cart, h.log)
}

// UpdateItem handles PUT /api/cart/{cartId}/items/{itemId}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateQuantityRequest
	if err := DecodeJSON(w, r, &req); err != nil || req.Quantity == nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	cart, err := h.carts.UpdateQuantity(r.Context(), chi.URLParam(r, "cartId"), chi.URLParam(r, "itemId"), *req.Quantity)
	if err != nil {
		h.writeCartError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, cart, h.log)
}

// RemoveItem handles DELETE /api/cart/{cartId}/items/{itemId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.RemoveItem(r.Context(), chi.URLParam(r, "cartId"), chi.URLParam(r, "itemId"))
	if err != nil {
		h.writeCartError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, cart, h.log)
}

func (h *CartHandler) writeCartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrCartNotFound):
		WriteError(w, http.StatusNotFound, "Cart not found", h.log)
	case errors.Is(err, service.ErrItemNotFound):
		WriteError(w, http.StatusNotFound, "Item not found", h.log)
	case errors.Is(err, service.ErrInvalidProduct):
		WriteError(w, http.StatusBadRequest, "Invalid product", h.log)
	case errors.Is(err, service.ErrInvalidWeight):
		WriteError(w, http.StatusBadRequest, "Weight not available for this product", h.log)
	case errors.Is(err, service.ErrInvalidQuantity):
		WriteError(w, http.StatusBadRequest, "Quantity must not be negative", h.log)
	default:
		h.log.Error("cart operation failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
	}
}
