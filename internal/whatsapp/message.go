package whatsapp

import (
	"fmt"
	"strings"

	"github.com/Lixing-Zhang/mulghai-point/backend/internal/models"
)

// OrderDetails is everything the order message shows
type OrderDetails struct {
	Customer models.CheckoutForm
	Area     string
	Items    []models.CartItem
	Summary  models.CartSummary
}

// OrderMessage renders the cash-on-delivery order sent to the shop
func OrderMessage(d OrderDetails) string {
	var b strings.Builder

	b.WriteString("🛒 NEW ORDER 🛒\n\n")
	b.WriteString("*Customer Details:*\n")
	fmt.Fprintf(&b, "Name: %s\n", d.Customer.Name)
	fmt.Fprintf(&b, "Phone: %s\n", d.Customer.Phone)
	fmt.Fprintf(&b, "Address: %s\n", d.Customer.Address)
	fmt.Fprintf(&b, "Pincode: %s (%s)\n", d.Customer.Pincode, d.Area)
	if strings.TrimSpace(d.Customer.Instructions) != "" {
		fmt.Fprintf(&b, "Special Instructions: %s\n", d.Customer.Instructions)
	}

	b.WriteString("\n*Order Items:*\n")
	for _, item := range d.Items {
		fmt.Fprintf(&b, "• %s (%s) × %d = ₹%s\n", item.Name, item.Weight, item.Quantity, item.LineTotal())
	}

	b.WriteString("\n*Order Summary:*\n")
	fmt.Fprintf(&b, "Subtotal: ₹%s\n", d.Summary.Subtotal)
	if d.Summary.DeliveryCharge.IsPositive() {
		fmt.Fprintf(&b, "Delivery Charge: ₹%s\n", d.Summary.DeliveryCharge)
	}
	fmt.Fprintf(&b, "*Total Amount: ₹%s*\n", d.Summary.Total)
	b.WriteString("Payment: Cash on Delivery\n")
	b.WriteString("\nPlease confirm this order. Thank you! 🙏")

	return b.String()
}

// InquiryMessage is the general question template behind "WhatsApp Us"
func InquiryMessage(shop string) string {
	return fmt.Sprintf(`👋 Hello %s!

I have a question about:
🥩 Product availability
🚚 Delivery areas
💰 Pricing
⏰ Order timing

Please assist me. Thank you! 🙏`, shop)
}

// QuickOrderMessage is a blank order the shopper fills in inside WhatsApp
func QuickOrderMessage(shop string) string {
	return fmt.Sprintf(`🛒 Hi %s!

I would like to place a quick order:

📱 Phone:
📍 Address:
🥩 Items:

Please confirm availability and delivery time. Thank you! 🐓`, shop)
}

// ConfirmationMessage is what the shop sends back once it accepts an order
func ConfirmationMessage(shop, supportPhone string) string {
	return fmt.Sprintf(`🎉 Thank you for your order! 🎉

Your order has been received and will be prepared with utmost care.

🕐 Expected delivery time: 45-60 minutes
📞 For any queries, call: %s

✅ 100%% Fresh | 🚚 Fast Delivery | 🧼 Hygienic | 🐓 Antibiotic-Free

%s - Premium Fresh Meat 🥩`, supportPhone, shop)
}
