package templates

import "strings"

// Fragment codes rendered by the print link presenter.
const (
	CodeOrderPageButton = "print.button.order_page"
	CodeEmailHTML       = "print.email.html"
	CodeEmailText       = "print.email.text"
)

// Fragment formats.
const (
	FormatHTML = "html"
	FormatText = "text"
)

// Translation keys referenced by the built-in fragments.
const (
	KeyButtonLabel   = "print.button.label"
	KeyEmailHeading  = "print.email.heading"
	KeyEmailOpenLink = "print.email.open_link"
	KeyEmailText     = "print.email.text_heading"
)

// EmailTextSeparator closes the plain text email block.
var EmailTextSeparator = strings.Repeat("*", 52)

// BuiltinFragments returns the default fragment set. Callers escape url and
// label before rendering; the bodies print them verbatim.
func BuiltinFragments() []Fragment {
	return []Fragment{
		{
			Code:     CodeOrderPageButton,
			Locale:   "en",
			Format:   FormatHTML,
			Body:     `<p class="order-print"><a href="{{ url|safe }}" class="button print">{{ label|safe }}</a></p>`,
			Required: []string{"url", "label"},
		},
		{
			Code:     CodeEmailHTML,
			Locale:   "en",
			Format:   FormatHTML,
			Body:     `<p><strong>{{ t(locale, "` + KeyEmailHeading + `") }}</strong> <a href="{{ url|safe }}">{{ t(locale, "` + KeyEmailOpenLink + `") }}</a></p>`,
			Required: []string{"url"},
		},
		{
			Code:     CodeEmailText,
			Locale:   "en",
			Format:   FormatText,
			Body:     "{{ heading|safe }}\n\n{{ url|safe }}\n\n" + EmailTextSeparator + "\n\n",
			Required: []string{"url", "heading"},
		},
	}
}
