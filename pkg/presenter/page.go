package presenter

import "github.com/goliatone/go-delivery-notes/pkg/domain"

// IsOrderTrackingPage reports whether req renders the order-tracking page
// and carries a non-empty order_email parameter.
func (p *Presenter) IsOrderTrackingPage(req Request) bool {
	if req.Param(ParamOrderEmail) == "" {
		return false
	}
	if id := p.settings.OrderTrackingPageID; id != "" {
		return req.Page.ID == id
	}
	return req.Page.Kind == domain.PageOrderTracking
}
