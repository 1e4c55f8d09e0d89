package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Lixing-Zhang/mulghai-point/backend/internal/models"
	"github.com/Lixing-Zhang/mulghai-point/backend/internal/repository"
	"github.com/Lixing-Zhang/mulghai-point/backend/internal/service"
	"github.com/go-chi/chi/v5"
)

const defaultOrderListLimit = 50

// OrderHandler handles checkout and the order journal
type OrderHandler struct {
	orderService *service.OrderService
	log          *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		log:          log,
	}
}

type validationErrorResponse struct {
	Error string `json:"error"`
	Title string `json:"title"`
	Field string `json:"field"`
}

// Checkout handles POST /api/cart/{cartId}/checkout
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var form models.CheckoutForm
	if err := DecodeJSON(w, r, &form); err != nil {
		h.log.Warn("failed to decode checkout form", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	cartID := chi.URLParam(r, "cartId")
	order, err := h.orderService.PlaceOrder(r.Context(), cartID, form)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			WriteJSON(w, http.StatusBadRequest, validationErrorResponse{
				Error: verr.Message,
				Title: verr.Title,
				Field: verr.Field,
			}, h.log)
		case errors.Is(err, repository.ErrCartNotFound):
			WriteError(w, http.StatusNotFound, "Cart not found", h.log)
		case errors.Is(err, service.ErrEmptyOrder):
			WriteError(w, http.StatusBadRequest, "Order must contain at least one item", h.log)
		default:
			h.log.Error("failed to place order", "cart_id", cartID, "error", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		}
		return
	}

	WriteJSON(w, http.StatusOK, order, h.log)
	h.log.Info("order placed", "order_id", order.ID, "items_count", len(order.Items), "total", order.Summary.Total.String())
}

// ListOrders handles GET /api/admin/orders?limit=N
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	limit := defaultOrderListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			WriteError(w, http.StatusBadRequest, "Invalid limit", h.log)
			return
		}
		limit = n
	}

	orders, err := h.orderService.ListOrders(r.Context(), limit)
	if err != nil {
		h.log.Error("failed to list orders", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, orders, h.log)
}

// GetOrder handles GET /api/admin/orders/{orderId}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	order, err := h.orderService.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			WriteError(w, http.StatusNotFound, "Order not found", h.log)
			return
		}
		h.log.Error("failed to get order", "order_id", orderID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, order, h.log)
}

// ConfirmationLink handles GET /api/admin/orders/{orderId}/confirmation
// It returns the chat link the shop uses to confirm the order with the customer.
func (h *OrderHandler) ConfirmationLink(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	link, err := h.orderService.ConfirmationLink(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			WriteError(w, http.StatusNotFound, "Order not found", h.log)
			return
		}
		h.log.Error("failed to build confirmation link", "order_id", orderID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, link, h.log)
}
