package storefront

import "github.com/goliatone/go-delivery-notes/internal/templates"

// Page fragment codes registered with the renderer.
const (
	CodeOrderPage    = "storefront.page.order"
	CodeTrackingForm = "storefront.page.tracking"
	CodeNotFoundPage = "storefront.page.not_found"
)

const pageHead = `<!doctype html>
<html lang="{{ locale }}">
<head>
<meta charset="utf-8">
<title>{{ title }}</title>
{{ scripts|safe }}
</head>
`

// PageFragments returns the storefront page layouts. scripts and button are
// pre-rendered markup; everything else is escaped by the engine.
func PageFragments() []templates.Fragment {
	return []templates.Fragment{
		{
			Code:   CodeOrderPage,
			Locale: "en",
			Format: templates.FormatHTML,
			Body: pageHead + `<body class="{{ page }}">
<main class="woocommerce-order" data-order="{{ order }}">
<h1>{{ title }}</h1>
<p class="order-status">{{ status }}</p>
{{ button|safe }}
</main>
</body>
</html>
`,
			Required: []string{"title", "order", "page"},
		},
		{
			Code:   CodeTrackingForm,
			Locale: "en",
			Format: templates.FormatHTML,
			Body: pageHead + `<body class="order-tracking">
<form method="post" action="{{ action }}" class="track_order">
<input type="text" name="order_id" value="{{ order_id }}">
<input type="email" name="order_email" value="{{ order_email }}">
<button type="submit">Track</button>
</form>
</body>
</html>
`,
			Required: []string{"title", "action"},
		},
		{
			Code:   CodeNotFoundPage,
			Locale: "en",
			Format: templates.FormatHTML,
			Body: pageHead + `<body class="error404">
<h1>{{ title }}</h1>
</body>
</html>
`,
			Required: []string{"title"},
		},
	}
}
