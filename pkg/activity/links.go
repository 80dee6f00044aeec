package activity

import (
	"context"
	"time"

	"github.com/goliatone/go-delivery-notes/pkg/links"
	"github.com/goliatone/go-delivery-notes/pkg/masking"
)

const (
	// VerbPrintLinkIssued is recorded whenever a print link is handed to a customer.
	VerbPrintLinkIssued = "print_link.issued"
	// ObjectTypeOrder labels events about orders.
	ObjectTypeOrder = "order"
)

// ActorFunc extracts the acting customer from the request context.
type ActorFunc func(ctx context.Context) string

// LinkObserver turns issued print links into activity events.
type LinkObserver struct {
	Hooks Hooks
	Actor ActorFunc
	Now   func() time.Time
}

var _ links.Observer = LinkObserver{}

// OnLinkIssued implements links.Observer. Guest emails are masked before
// they reach the hooks.
func (o LinkObserver) OnLinkIssued(ctx context.Context, info links.LinkResolution) {
	if len(o.Hooks) == 0 {
		return
	}
	now := time.Now().UTC()
	if o.Now != nil {
		now = o.Now().UTC()
	}
	actor := ""
	if o.Actor != nil {
		actor = o.Actor(ctx)
	}
	metadata := map[string]any{
		"template_type": info.Request.TemplateType.String(),
		"guest":         info.Request.IsGuest(),
		"permalink":     info.Request.Permalink,
		"url":           masking.URL(info.URL),
	}
	if info.Request.IsGuest() {
		metadata["email"] = masking.Email(info.Request.Email)
	}
	ids := info.Request.IDs()
	for _, id := range ids {
		o.Hooks.Notify(ctx, Event{
			Verb:       VerbPrintLinkIssued,
			ActorID:    actor,
			UserID:     actor,
			ObjectType: ObjectTypeOrder,
			ObjectID:   id,
			Channel:    info.Channel,
			Metadata:   CloneMetadata(metadata),
			OccurredAt: now,
		})
	}
}
