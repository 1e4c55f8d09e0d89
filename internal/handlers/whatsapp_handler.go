package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/mulghai-point/backend/internal/models"
	"github.com/Lixing-Zhang/mulghai-point/backend/internal/service"
	"github.com/Lixing-Zhang/mulghai-point/backend/internal/whatsapp"
)

// WhatsAppHandler serves the storefront's canned WhatsApp links
type WhatsAppHandler struct {
	shop service.ShopInfo
	log  *slog.Logger
}

// NewWhatsAppHandler creates a handler serving links to the shop number
func NewWhatsAppHandler(shop service.ShopInfo, log *slog.Logger) *WhatsAppHandler {
	return &WhatsAppHandler{shop: shop, log: log}
}

// Inquiry handles GET /api/whatsapp/inquiry
func (h *WhatsAppHandler) Inquiry(w http.ResponseWriter, r *http.Request) {
	h.writeLink(w, whatsapp.InquiryMessage(h.shop.Name))
}

// QuickOrder handles GET /api/whatsapp/quick-order
func (h *WhatsAppHandler) QuickOrder(w http.ResponseWriter, r *http.Request) {
	h.writeLink(w, whatsapp.QuickOrderMessage(h.shop.Name))
}

func (h *WhatsAppHandler) writeLink(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusOK, models.ContactLink{
		Phone:   h.shop.WhatsAppPhone,
		Message: message,
		URL:     whatsapp.Link(h.shop.WhatsAppPhone, message),
	}, h.log)
}
