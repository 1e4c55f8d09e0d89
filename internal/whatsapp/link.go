// Package whatsapp builds wa.me deep links and the shop's prefilled messages.
//
// Nothing here talks to WhatsApp. A link opens a chat with the shop number and
// the message prefilled; the shopper still has to press send, and no
// acknowledgement ever comes back to the server.
package whatsapp

import (
	"net/url"
	"strings"
)

const baseURL = "https://wa.me/"

// Link returns https://wa.me/<digits>?text=<encoded text>. Non-digits in phone
// (spaces, "+", dashes) are dropped. Spaces in text encode as %20.
func Link(phone, text string) string {
	link := baseURL + Digits(phone)
	if text == "" {
		return link
	}
	return link + "?text=" + EncodeText(text)
}

// QueryEscape leaves only A-Z a-z 0-9 - _ . ~ bare; encodeURIComponent also keeps these
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeText percent-encodes text the way browsers' encodeURIComponent does
func EncodeText(text string) string {
	return componentUnescaper.Replace(url.QueryEscape(text))
}

// Digits strips everything but ASCII digits
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
