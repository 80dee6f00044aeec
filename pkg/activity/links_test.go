package activity

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-delivery-notes/pkg/domain"
	"github.com/goliatone/go-delivery-notes/pkg/links"
)

type recordingHook struct {
	events []Event
}

func (h *recordingHook) Notify(_ context.Context, evt Event) {
	h.events = append(h.events, evt)
}

func TestLinkObserverEmitsEventPerOrder(t *testing.T) {
	hook := &recordingHook{}
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	observer := LinkObserver{
		Hooks: Hooks{hook, nil},
		Actor: func(context.Context) string { return "customer-1" },
		Now:   func() time.Time { return now },
	}

	observer.OnLinkIssued(context.Background(), links.LinkResolution{
		Channel: links.ChannelEmail,
		Request: links.LinkRequest{
			OrderIDs:     []string{"41", " ", "42"},
			TemplateType: domain.TemplateTypeInvoice,
			Email:        "jane.doe@example.com",
			Permalink:    true,
		},
		URL: "https://shop.test/print-order/41-42/?print-order-type=invoice&print-order-email=jane.doe%40example.com",
	})

	if len(hook.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(hook.events))
	}
	evt := hook.events[1]
	if evt.Verb != VerbPrintLinkIssued || evt.ObjectID != "42" || evt.ObjectType != ObjectTypeOrder {
		t.Fatalf("unexpected event %+v", evt)
	}
	if evt.Channel != links.ChannelEmail || evt.ActorID != "customer-1" {
		t.Fatalf("channel/actor not mapped: %+v", evt)
	}
	if !evt.OccurredAt.Equal(now) {
		t.Fatalf("expected fixed clock, got %v", evt.OccurredAt)
	}
	if evt.Metadata["template_type"] != "invoice" || evt.Metadata["guest"] != true {
		t.Fatalf("unexpected metadata %v", evt.Metadata)
	}
	if email, _ := evt.Metadata["email"].(string); strings.Contains(email, "jane.doe") {
		t.Fatalf("expected masked email, got %q", email)
	}
	if url, _ := evt.Metadata["url"].(string); strings.Contains(url, "jane.doe%40") {
		t.Fatalf("expected masked url, got %q", url)
	}
}

func TestLinkObserverWithoutHooks(t *testing.T) {
	LinkObserver{}.OnLinkIssued(context.Background(), links.LinkResolution{})
}

func TestHooksNotifyStampsTime(t *testing.T) {
	hook := &recordingHook{}
	Hooks{hook}.Notify(context.Background(), Event{Verb: "x"})
	if len(hook.events) != 1 || hook.events[0].OccurredAt.IsZero() {
		t.Fatalf("expected stamped event, got %+v", hook.events)
	}
}

func TestHooksStampAndSkipNil(t *testing.T) {
	var got []Event
	hooks := Hooks{nil, HookFunc(func(_ context.Context, evt Event) { got = append(got, evt) })}
	hooks.Notify(context.Background(), Event{Verb: VerbPrintLinkIssued, ObjectID: "7"})
	if len(got) != 1 {
		t.Fatalf("expected one event, got %d", len(got))
	}
	if got[0].OccurredAt.IsZero() {
		t.Fatalf("expected timestamp to be set")
	}
	if CloneMetadata(nil) != nil {
		t.Fatalf("expected nil clone for empty metadata")
	}
}
