package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-delivery-notes/pkg/mailer"
)

func TestSendWritesTextPart(t *testing.T) {
	var buf bytes.Buffer
	adapter := New(nil, WithWriter(&buf))

	err := adapter.Send(context.Background(), mailer.Message{
		From:     "shop@example.com",
		To:       "jane@example.com",
		Subject:  "Order #7",
		TextBody: "Print your order",
		HTMLBody: "<p>Print:</p>",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "[console][text]") || !strings.Contains(out, "Print your order") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestSendWritesHTMLPart(t *testing.T) {
	var buf bytes.Buffer
	adapter := New(nil, WithWriter(&buf), WithHTML(true), WithName("dev"))

	if err := adapter.Send(context.Background(), mailer.Message{TextBody: "t", HTMLBody: "<p>h</p>"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if !strings.Contains(buf.String(), "<p>h</p>") {
		t.Fatalf("expected html body, got %q", buf.String())
	}
	if adapter.Name() != "dev" {
		t.Fatalf("expected custom name")
	}
}
