package models

import "time"

// CheckoutForm collects the delivery details for a cash-on-delivery order
type CheckoutForm struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Pincode      string `json:"pincode"`
	Instructions string `json:"instructions,omitempty"`
}

// ServiceArea maps a pincode to the delivery area name
type ServiceArea struct {
	Pincode string `json:"pincode" yaml:"pincode"`
	Area    string `json:"area" yaml:"area"`
}

// PincodeCheck is the result of a serviceability lookup
type PincodeCheck struct {
	Pincode string `json:"pincode"`
	Valid   bool   `json:"valid"`
	Area    string `json:"area,omitempty"`
	Message string `json:"message"`
}

// OrderRecord is a placed order as handed off to WhatsApp
type OrderRecord struct {
	ID          string       `json:"id"`
	CartID      string       `json:"cartId"`
	Customer    CheckoutForm `json:"customer"`
	Area        string       `json:"area"`
	Items       []CartItem   `json:"items"`
	Summary     CartSummary  `json:"summary"`
	Message     string       `json:"message"`
	WhatsAppURL string       `json:"whatsappUrl"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// ContactLink is a prefilled WhatsApp chat
type ContactLink struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
	URL     string `json:"url"`
}
