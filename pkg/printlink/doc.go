// Package printlink builds the URLs of the print view.
//
// Example usage (in your app):
//
//	builder := printlink.NewBuilder(
//		printlink.WithBaseURL("https://shop.example.com"),
//		printlink.WithPermalinks(true),
//	)
//	url, _ := builder.Build(ctx, links.NewLinkRequest("1001", domain.TemplateTypeInvoice, ""))
//
// Two URL shapes are produced. The query form keeps everything in the query
// string:
//
//	https://shop.example.com/?print-order=1001&print-order-type=invoice
//
// The permalink form puts the order ids in the path:
//
//	https://shop.example.com/print-order/1001/?print-order-type=invoice
package printlink
