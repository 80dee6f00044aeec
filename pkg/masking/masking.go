package masking

import (
	"strings"

	masker "github.com/goliatone/go-masker"
)

const preserveEnds = "preserveEnds(2,2)"

var defaultMaskedFields = []string{
	"email", "billing_email", "order_email", "print-order-email",
	"password", "username",
}

func init() {
	for _, field := range defaultMaskedFields {
		masker.Default.RegisterMaskField(field, preserveEnds)
	}
}

// Email masks the local part of an address and keeps the domain readable,
// e.g. jo****oe@example.com.
func Email(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	at := strings.LastIndex(value, "@")
	if at <= 0 {
		return String(value)
	}
	return String(value[:at]) + value[at:]
}

// String masks value keeping its first and last two characters.
func String(value string) string {
	if value == "" {
		return ""
	}
	if masked, err := masker.Default.String(preserveEnds, value); err == nil {
		return masked
	}
	runes := []rune(value)
	if len(runes) <= 4 {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[:2]) + strings.Repeat("*", len(runes)-4) + string(runes[len(runes)-2:])
}

// URL masks the print-order-email query value of a print link.
func URL(raw string) string {
	idx := strings.Index(raw, "print-order-email=")
	if idx < 0 {
		return raw
	}
	start := idx + len("print-order-email=")
	end := strings.IndexByte(raw[start:], '&')
	if end < 0 {
		end = len(raw)
	} else {
		end += start
	}
	return raw[:start] + String(raw[start:end]) + raw[end:]
}
