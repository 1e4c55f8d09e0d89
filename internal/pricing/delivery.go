// Package pricing computes cart money figures.
package pricing

import (
	"github.com/Lixing-Zhang/mulghai-point/backend/internal/models"
	"github.com/shopspring/decimal"
)

// DeliveryPolicy charges a flat fee on orders below a subtotal threshold
type DeliveryPolicy struct {
	Threshold decimal.Decimal
	Fee       decimal.Decimal
}

// DefaultPolicy is free delivery from ₹500, ₹50 otherwise
func DefaultPolicy() DeliveryPolicy {
	return DeliveryPolicy{
		Threshold: decimal.NewFromInt(500),
		Fee:       decimal.NewFromInt(50),
	}
}

// NewPolicy builds a policy from whole-rupee values
func NewPolicy(threshold, fee int64) DeliveryPolicy {
	return DeliveryPolicy{
		Threshold: decimal.NewFromInt(threshold),
		Fee:       decimal.NewFromInt(fee),
	}
}

// DeliveryCharge returns the fee when subtotal is under the threshold, else zero
func (p DeliveryPolicy) DeliveryCharge(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.LessThan(p.Threshold) {
		return p.Fee
	}
	return decimal.Zero
}

// Subtotal sums price × quantity over items
func Subtotal(items []models.CartItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.LineTotal())
	}
	return sum
}

// ItemCount sums quantities over items
func ItemCount(items []models.CartItem) int {
	n := 0
	for _, item := range items {
		n += item.Quantity
	}
	return n
}

// Summarize computes subtotal, delivery charge and total for items
func (p DeliveryPolicy) Summarize(items []models.CartItem) models.CartSummary {
	subtotal := Subtotal(items)
	charge := p.DeliveryCharge(subtotal)

	shortfall := decimal.Zero
	if charge.IsPositive() {
		shortfall = p.Threshold.Sub(subtotal)
	}

	return models.CartSummary{
		Subtotal:              subtotal,
		DeliveryCharge:        charge,
		Total:                 subtotal.Add(charge),
		ItemCount:             ItemCount(items),
		FreeDelivery:          charge.IsZero(),
		FreeDeliveryShortfall: shortfall,
	}
}
