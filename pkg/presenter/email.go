package presenter

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-delivery-notes/internal/templates"
	"github.com/goliatone/go-delivery-notes/pkg/domain"
	"github.com/goliatone/go-delivery-notes/pkg/interfaces/logger"
	"github.com/goliatone/go-delivery-notes/pkg/links"
	"github.com/goliatone/go-delivery-notes/pkg/masking"
)

// EmailContext describes the email being composed.
type EmailContext struct {
	SentToAdmin bool
	PlainText   bool
	Locale      string
}

// EmailLink returns the print fragment placed after the order table of a
// customer email. Admin copies, orders without a billing email and shops with
// the email link disabled get "".
func (p *Presenter) EmailLink(ctx context.Context, order domain.Order, ec EmailContext) (string, error) {
	if !p.settings.ShowInEmail {
		return "", nil
	}
	if order == nil {
		return "", ErrOrderRequired
	}
	billing := strings.TrimSpace(order.BillingEmail())
	if billing == "" || ec.SentToAdmin {
		return "", nil
	}

	linkReq := links.NewLinkRequest(order.OrderID(), p.TemplateType(order), billing)
	linkReq.Permalink = true
	url, err := p.links.Build(ctx, linkReq)
	if err != nil {
		return "", fmt.Errorf("presenter: email link for order %s: %w", order.OrderID(), err)
	}
	url = safeURL(url)
	if url == "" {
		return "", nil
	}

	locale := strings.TrimSpace(ec.Locale)
	if locale == "" {
		locale = p.defaultLocale
	}

	req := templates.RenderRequest{Locale: locale}
	if ec.PlainText {
		req.Code = templates.CodeEmailText
		req.Data = map[string]any{
			"url":     url,
			"heading": p.renderer.Translate(locale, templates.KeyEmailText),
		}
	} else {
		req.Code = templates.CodeEmailHTML
		req.Data = map[string]any{
			"url": escapeURL(url),
		}
	}

	result, err := p.renderer.Render(ctx, req)
	if err != nil {
		return "", fmt.Errorf("presenter: render email link: %w", err)
	}

	p.announce(ctx, links.ChannelEmail, linkReq, url)
	p.logger.Debug("print link added to email",
		logger.Field{Key: "order_id", Value: order.OrderID()},
		logger.Field{Key: "email", Value: masking.Email(billing)},
		logger.Field{Key: "plain_text", Value: ec.PlainText},
	)
	return result.Body, nil
}
