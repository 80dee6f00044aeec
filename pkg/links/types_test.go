package links

import (
	"context"
	"testing"
)

type recordingObserver struct {
	seen []LinkResolution
}

func (r *recordingObserver) OnLinkIssued(_ context.Context, info LinkResolution) {
	r.seen = append(r.seen, info)
}

func TestLinkRequestIDsSkipsBlanks(t *testing.T) {
	req := LinkRequest{OrderIDs: []string{" 12 ", "", "13"}}
	ids := req.IDs()
	if len(ids) != 2 || ids[0] != "12" || ids[1] != "13" {
		t.Fatalf("unexpected ids: %v", ids)
	}
	if req.IsGuest() {
		t.Fatalf("expected request without email to be non-guest")
	}
	if !NewLinkRequest("12", "invoice", "a@b.co").IsGuest() {
		t.Fatalf("expected request with email to be guest")
	}
}

func TestObserversSkipNil(t *testing.T) {
	first := &recordingObserver{}
	second := &recordingObserver{}
	observers := Observers{first, nil, second}

	observers.OnLinkIssued(context.Background(), LinkResolution{Channel: ChannelEmail, URL: "https://shop.test"})

	if len(first.seen) != 1 || len(second.seen) != 1 {
		t.Fatalf("expected both observers notified, got %d and %d", len(first.seen), len(second.seen))
	}
}
