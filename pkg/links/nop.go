package links

import "context"

// NopObserver implements Observer without side effects.
type NopObserver struct{}

var _ Observer = (*NopObserver)(nil)

// OnLinkIssued ignores the link resolution event.
func (n *NopObserver) OnLinkIssued(ctx context.Context, info LinkResolution) {}
