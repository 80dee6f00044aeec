package links

import (
	"context"
	"strings"

	"github.com/goliatone/go-delivery-notes/pkg/domain"
)

// Channels a link can be issued through.
const (
	ChannelAccount   = "account"
	ChannelOrderPage = "order_page"
	ChannelEmail     = "email"
)

// Builder generates the print view URL for one or more orders.
type Builder interface {
	Build(ctx context.Context, req LinkRequest) (string, error)
}

// BuilderFunc adapts a function to Builder.
type BuilderFunc func(ctx context.Context, req LinkRequest) (string, error)

// Build implements Builder.
func (f BuilderFunc) Build(ctx context.Context, req LinkRequest) (string, error) {
	return f(ctx, req)
}

// LinkRequest captures everything the print view needs to authorise and
// render a document.
type LinkRequest struct {
	OrderIDs     []string
	TemplateType domain.TemplateType
	// Email lets a guest open the print view; empty for signed-in customers.
	Email string
	// Permalink forces the absolute pretty form, used for links leaving the site.
	Permalink bool
}

// NewLinkRequest builds a request for a single order.
func NewLinkRequest(orderID string, templateType domain.TemplateType, email string) LinkRequest {
	return LinkRequest{
		OrderIDs:     []string{orderID},
		TemplateType: templateType,
		Email:        email,
	}
}

// IDs returns the trimmed, non-empty order identifiers.
func (r LinkRequest) IDs() []string {
	out := make([]string, 0, len(r.OrderIDs))
	for _, id := range r.OrderIDs {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}

// IsGuest reports whether the link carries a guest email token.
func (r LinkRequest) IsGuest() bool {
	return strings.TrimSpace(r.Email) != ""
}

// LinkResolution bundles the request and the URL it produced.
type LinkResolution struct {
	Channel string
	Request LinkRequest
	URL     string
}

// Observer receives resolved link events.
type Observer interface {
	OnLinkIssued(ctx context.Context, info LinkResolution)
}

// Observers fans a resolution out to every non-nil observer.
type Observers []Observer

// OnLinkIssued implements Observer.
func (o Observers) OnLinkIssued(ctx context.Context, info LinkResolution) {
	for _, observer := range o {
		if observer == nil {
			continue
		}
		observer.OnLinkIssued(ctx, info)
	}
}
