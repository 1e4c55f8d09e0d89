package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Lixing-Zhang/mulghai-point/backend/internal/models"
	"github.com/Lixing-Zhang/mulghai-point/backend/internal/repository"
	"github.com/Lixing-Zhang/mulghai-point/backend/internal/whatsapp"
	"github.com/google/uuid"
)

var (
	ErrEmptyOrder = errors.New("order must contain at least one item")
)

// customers enter ten-digit Indian numbers
const customerCountryCode = "91"

var phonePattern = regexp.MustCompile(`^\d{10}$`)

// ValidationError is a checkout form problem shown to the shopper
type ValidationError struct {
	Field   string
	Title   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Title, e.Message)
}

// PincodeChecker resolves a pincode to its delivery area
type PincodeChecker interface {
	Lookup(code string) (string, bool)
}

// ShopInfo identifies where orders are sent
type ShopInfo struct {
	Name          string
	WhatsAppPhone string
	SupportPhone  string
}

// OrderService turns carts into WhatsApp orders
type OrderService struct {
	carts    *CartService
	pincodes PincodeChecker
	orders   repository.OrderRepository
	shop     ShopInfo
	now      func() time.Time
}

// NewOrderService creates a new order service
func NewOrderService(carts *CartService, pincodes PincodeChecker, orders repository.OrderRepository, shop ShopInfo) *OrderService {
	return &OrderService{
		carts:    carts,
		pincodes: pincodes,
		orders:   orders,
		shop:     shop,
		now:      time.Now,
	}
}

// Shop returns the shop the service sends orders to
func (s *OrderService) Shop() ShopInfo {
	return s.shop
}

// ValidatePhone reports whether phone is exactly ten digits
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// ValidateCheckout checks the form in the order the storefront reports problems:
// required fields, then phone format, then serviceability. It returns the
// delivery area on success.
func ValidateCheckout(form models.CheckoutForm, pincodes PincodeChecker) (string, error) {
	if strings.TrimSpace(form.Name) == "" || strings.TrimSpace(form.Phone) == "" ||
		strings.TrimSpace(form.Address) == "" || strings.TrimSpace(form.Pincode) == "" {
		return "", &ValidationError{
			Field:   missingField(form),
			Title:   "Missing Information",
			Message: "Please fill in all required fields",
		}
	}

	if !ValidatePhone(form.Phone) {
		return "", &ValidationError{
			Field:   "phone",
			Title:   "Invalid Phone",
			Message: "Please enter a valid 10-digit phone number",
		}
	}

	area, ok := pincodes.Lookup(form.Pincode)
	if !ok {
		return "", &ValidationError{
			Field:   "pincode",
			Title:   "Invalid Pincode",
			Message: "Please enter a serviceable pincode",
		}
	}

	return area, nil
}

func missingField(form models.CheckoutForm) string {
	switch {
	case strings.TrimSpace(form.Name) == "":
		return "name"
	case strings.TrimSpace(form.Phone) == "":
		return "phone"
	case strings.TrimSpace(form.Address) == "":
		return "address"
	default:
		return "pincode"
	}
}

// PlaceOrder validates the form, builds the WhatsApp order, journals it and
// empties the cart. The journal append and the clear happen under the cart's
// lock, so a cart yields at most one order per set of items.
func (s *OrderService) PlaceOrder(ctx context.Context, cartID string, form models.CheckoutForm) (*models.OrderRecord, error) {
	area, err := ValidateCheckout(form, s.pincodes)
	if err != nil {
		return nil, err
	}

	var order *models.OrderRecord
	err = s.carts.Checkout(ctx, cartID, func(cart *models.CartView) error {
		if len(cart.Items) == 0 {
			return ErrEmptyOrder
		}

		message := whatsapp.OrderMessage(whatsapp.OrderDetails{
			Customer: form,
			Area:     area,
			Items:    cart.Items,
			Summary:  cart.Summary,
		})

		record := &models.OrderRecord{
			ID:          generateOrderID(),
			CartID:      cart.ID,
			Customer:    form,
			Area:        area,
			Items:       cart.Items,
			Summary:     cart.Summary,
			Message:     message,
			WhatsAppURL: whatsapp.Link(s.shop.WhatsAppPhone, message),
			CreatedAt:   s.now().UTC(),
		}

		if err := s.orders.Append(ctx, record); err != nil {
			return fmt.Errorf("failed to record order: %w", err)
		}
		order = record
		return nil
	})
	if err != nil {
		if order != nil {
			return nil, fmt.Errorf("order %s recorded but cart not cleared: %w", order.ID, err)
		}
		return nil, err
	}

	return order, nil
}

// GetOrder returns a journaled order
func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.OrderRecord, error) {
	return s.orders.GetByID(ctx, id)
}

// ListOrders returns the latest journaled orders
func (s *OrderService) ListOrders(ctx context.Context, limit int) ([]models.OrderRecord, error) {
	return s.orders.List(ctx, limit)
}

// ConfirmationLink builds the reply the shop sends to the customer of a journaled order
func (s *OrderService) ConfirmationLink(ctx context.Context, id string) (*models.ContactLink, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	phone := CustomerWhatsAppNumber(order.Customer.Phone)
	message := whatsapp.ConfirmationMessage(s.shop.Name, s.shop.SupportPhone)
	return &models.ContactLink{
		Phone:   phone,
		Message: message,
		URL:     whatsapp.Link(phone, message),
	}, nil
}

// CustomerWhatsAppNumber prefixes a validated ten-digit customer number with the country code
func CustomerWhatsAppNumber(phone string) string {
	return customerCountryCode + phone
}

// generateOrderID generates a unique order ID using UUID
func generateOrderID() string {
	return uuid.New().String()
}
