package presenter

import (
	"context"
	"fmt"

	"github.com/goliatone/go-delivery-notes/internal/templates"
	"github.com/goliatone/go-delivery-notes/pkg/domain"
	"github.com/goliatone/go-delivery-notes/pkg/interfaces/logger"
	"github.com/goliatone/go-delivery-notes/pkg/links"
)

// ActionPrint is the key of the print entry in the account order actions.
const ActionPrint = "print"

// AccountActions adds the print action to the order actions shown on the
// customer account page. The input is returned untouched when the account
// button is disabled.
func (p *Presenter) AccountActions(ctx context.Context, req Request, order domain.Order, actions domain.Actions) (domain.Actions, error) {
	if !p.settings.ShowOnAccountPage {
		return actions, nil
	}
	if order == nil {
		return actions, ErrOrderRequired
	}

	linkReq := links.NewLinkRequest(order.OrderID(), p.TemplateType(order), "")
	url, err := p.links.Build(ctx, linkReq)
	if err != nil {
		return actions, fmt.Errorf("presenter: account link for order %s: %w", order.OrderID(), err)
	}

	label := p.renderer.Translate(p.locale(req), templates.KeyButtonLabel)
	label = applyLabel(p.labels.AccountPage, label, order)

	p.logger.Debug("print action added",
		logger.Field{Key: "order_id", Value: order.OrderID()},
		logger.Field{Key: "template_type", Value: linkReq.TemplateType},
	)

	p.announce(ctx, links.ChannelAccount, linkReq, url)
	return actions.Set(domain.Action{
		Key:  ActionPrint,
		Name: label,
		URL:  url,
	}), nil
}
