package presenter

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-delivery-notes/internal/templates"
	"github.com/goliatone/go-delivery-notes/pkg/domain"
	"github.com/goliatone/go-delivery-notes/pkg/interfaces/logger"
	"github.com/goliatone/go-delivery-notes/pkg/links"
	"github.com/goliatone/go-delivery-notes/pkg/masking"
)

// OrderButton renders the print button for the view-order, order-received
// and order-tracking pages. An empty string means no button is shown.
//
// Signed-in customers get a plain link. On the order-tracking page the
// sanitized order_email parameter is embedded; on the order-received page a
// guest gets the order's billing email, and no button at all when the order
// has none.
func (p *Presenter) OrderButton(ctx context.Context, req Request, order domain.Order) (string, error) {
	if !p.settings.ShowOnOrderPage {
		return "", nil
	}
	if order == nil {
		return "", ErrOrderRequired
	}

	email := ""
	if p.IsOrderTrackingPage(req) {
		email = SanitizeEmail(req.Param(ParamOrderEmail))
	}
	if req.Page.Kind == domain.PageOrderReceived && !req.Authenticated {
		billing := strings.TrimSpace(order.BillingEmail())
		if billing == "" {
			p.logger.Debug("print button omitted: guest order has no billing email",
				logger.Field{Key: "order_id", Value: order.OrderID()},
			)
			return "", nil
		}
		email = billing
	}

	linkReq := links.NewLinkRequest(order.OrderID(), p.TemplateType(order), email)
	url, err := p.links.Build(ctx, linkReq)
	if err != nil {
		return "", fmt.Errorf("presenter: order page link for order %s: %w", order.OrderID(), err)
	}
	escaped := escapeURL(url)
	if escaped == "" {
		p.logger.Warn("print button omitted: unsafe link",
			logger.Field{Key: "order_id", Value: order.OrderID()},
			logger.Field{Key: "url", Value: masking.URL(url)},
		)
		return "", nil
	}

	locale := p.locale(req)
	label := p.renderer.Translate(locale, templates.KeyButtonLabel)
	label = applyLabel(p.labels.OrderPage, label, order)

	result, err := p.renderer.Render(ctx, templates.RenderRequest{
		Code:   templates.CodeOrderPageButton,
		Locale: locale,
		Data: map[string]any{
			"url":   escaped,
			"label": html.EscapeString(label),
			"order": order.OrderID(),
		},
	})
	if err != nil {
		return "", fmt.Errorf("presenter: render order button: %w", err)
	}

	p.announce(ctx, links.ChannelOrderPage, linkReq, url)
	if email != "" {
		p.logger.Debug("print button issued for guest",
			logger.Field{Key: "order_id", Value: order.OrderID()},
			logger.Field{Key: "email", Value: masking.Email(email)},
		)
	}
	return result.Body, nil
}
