package presenter

import (
	"html"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

var emailValidator = validator.New()

const localPartChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!#$%&'*+/=?^_`{|}~.-"

// SanitizeEmail strips characters that cannot appear in an address and
// returns "" unless what remains is a valid email.
func SanitizeEmail(raw string) string {
	value := strings.TrimSpace(raw)
	if len(value) < 6 {
		return ""
	}
	at := strings.Index(value, "@")
	if at < 1 {
		return ""
	}

	local := keep(value[:at], func(r rune) bool { return strings.ContainsRune(localPartChars, r) })
	if local == "" {
		return ""
	}

	domainPart := strings.ToLower(value[at+1:])
	for strings.Contains(domainPart, "..") {
		domainPart = strings.ReplaceAll(domainPart, "..", ".")
	}
	domainPart = strings.Trim(domainPart, " \t\n\r\x00\x0B.")
	labels := make([]string, 0, 4)
	for _, sub := range strings.Split(domainPart, ".") {
		sub = strings.Trim(sub, " \t\n\r\x00\x0B-")
		sub = keep(sub, func(r rune) bool {
			return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
		})
		if sub != "" {
			labels = append(labels, sub)
		}
	}
	if len(labels) < 2 {
		return ""
	}

	email := local + "@" + strings.Join(labels, ".")
	if err := emailValidator.Var(email, "required,email"); err != nil {
		return ""
	}
	return email
}

func keep(value string, allowed func(rune) bool) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if allowed(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// safeURL returns raw when it is a relative URL or uses http(s), "" otherwise.
func safeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return raw
	case "":
		if strings.HasPrefix(raw, "/") {
			return raw
		}
	}
	return ""
}

// escapeURL prepares a URL for an HTML attribute.
func escapeURL(raw string) string {
	return html.EscapeString(safeURL(raw))
}
