package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one product/weight line in a cart
type CartItem struct {
	ID        string          `json:"id"`
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Weight    string          `json:"weight"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image"`
}

// LineTotal is price times quantity
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartItemID builds the line identifier shared by every cart: "<productId>-<weight>"
func CartItemID(productID int64, weight string) string {
	return fmt.Sprintf("%d-%s", productID, weight)
}

// Cart is a shopper's working set of items
type Cart struct {
	ID        string     `json:"id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Find returns the index of the item with the given ID, or -1
func (c *Cart) Find(itemID string) int {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}

// CartSummary holds the money figures shown beneath a cart
type CartSummary struct {
	Subtotal              decimal.Decimal `json:"subtotal"`
	DeliveryCharge        decimal.Decimal `json:"deliveryCharge"`
	Total                 decimal.Decimal `json:"total"`
	ItemCount             int             `json:"itemCount"`
	FreeDelivery          bool            `json:"freeDelivery"`
	FreeDeliveryShortfall decimal.Decimal `json:"freeDeliveryShortfall"`
}

// CartView is the API representation of a cart
type CartView struct {
	Cart
	Summary CartSummary `json:"summary"`
}

// AddItemRequest is the body of POST /api/cart/{cartId}/items
type AddItemRequest struct {
	ProductID int64  `json:"productId"`
	Weight    string `json:"weight"`
}

// UpdateQuantityRequest is the body of PUT /api/cart/{cartId}/items/{itemId}
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity"`
}
