package utils

import (
	"net/url"
	"strings"
	"unicode"
)

// BrazilCountryCode is prefixed to local phone numbers (DDD + number).
const BrazilCountryCode = "55"

// DigitsOnly strips everything but ASCII digits from a phone number.
func DigitsOnly(phone string) string {
	var sb strings.Builder
	for _, r := range phone {
		if r <= unicode.MaxASCII && unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// WhatsAppLink builds a wa.me deep link for phone with an optional prefilled message.
// Local numbers (10 or 11 digits) get the Brazilian country code.
func WhatsAppLink(phone, message string) string {
	digits := DigitsOnly(phone)
	if len(digits) == 10 || len(digits) == 11 {
		digits = BrazilCountryCode + digits
	}
	link := "https://wa.me/" + digits
	if message != "" {
		link += "?text=" + url.QueryEscape(message)
	}
	return link
}
