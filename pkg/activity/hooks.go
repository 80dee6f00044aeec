package activity

import (
	"context"
	"maps"
	"time"
)

// Event is one storefront occurrence about an order, e.g. a print link
// being handed to a customer.
type Event struct {
	Verb       string
	ActorID    string
	UserID     string
	ObjectType string
	ObjectID   string
	Channel    string
	Metadata   map[string]any
	OccurredAt time.Time
}

// Hook receives activity events. Implementations must not block the request.
type Hook interface {
	Notify(ctx context.Context, evt Event)
}

// Hooks fans an event out to several hooks in order.
type Hooks []Hook

func (h Hooks) Notify(ctx context.Context, evt Event) {
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now().UTC()
	}
	for _, hook := range h {
		if hook != nil {
			hook.Notify(ctx, evt)
		}
	}
}

// HookFunc adapts a plain function into a Hook.
type HookFunc func(ctx context.Context, evt Event)

func (f HookFunc) Notify(ctx context.Context, evt Event) {
	if f != nil {
		f(ctx, evt)
	}
}

// CloneMetadata returns a shallow copy, or nil for empty input.
func CloneMetadata(src map[string]any) map[string]any {
	if len(src) == 0 {
		return nil
	}
	return maps.Clone(src)
}
