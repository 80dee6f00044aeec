package smtp

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-delivery-notes/pkg/mailer"
)

func TestEnvelopeMultipart(t *testing.T) {
	a := New(Config{Host: "localhost", From: "shop@example.com"}, WithHeaders(map[string]string{"X-Shop": "demo", "X-Order": "default"}))

	env, err := a.envelope(mailer.Message{
		ID:       "0c1f-77",
		To:       "jane@example.com",
		Subject:  "Order #7",
		Headers:  map[string]string{"X-Order": "7"},
		TextBody: "Thanks\n\nPrint your order",
		HTMLBody: `<p>Thanks</p><p><strong>Print:</strong> <a href="https://shop.test/print-order/7/">Open print view in browser</a></p>`,
	})
	if err != nil {
		t.Fatalf("envelope: %v", err)
	}
	raw := string(env.bytes())

	if !strings.Contains(raw, "Content-Type: multipart/alternative; boundary=print-0c1f77") {
		t.Fatalf("expected multipart headers, got %s", raw)
	}
	if !strings.Contains(raw, "X-Order: 7\r\n") || !strings.Contains(raw, "X-Shop: demo\r\n") {
		t.Fatalf("expected merged headers, got %s", raw)
	}
	if !strings.Contains(raw, "Content-Type: text/plain; charset=UTF-8") || !strings.Contains(raw, "Content-Type: text/html; charset=UTF-8") {
		t.Fatalf("expected both parts, got %s", raw)
	}
	if !strings.Contains(raw, `href="https://shop.test/print-order/7/"`) {
		t.Fatalf("expected html part to keep the print link")
	}
	if !strings.HasSuffix(raw, "--print-0c1f77--") {
		t.Fatalf("expected closing boundary, got %q", raw[len(raw)-20:])
	}
}

func TestEnvelopeDerivesTextFromHTML(t *testing.T) {
	a := New(Config{Host: "localhost", From: "shop@example.com"})

	env, err := a.envelope(mailer.Message{To: "jane@example.com", HTMLBody: "<p>Hello <span>world</span></p>"})
	if err != nil {
		t.Fatalf("envelope: %v", err)
	}
	text := strings.Split(env.body, "text/html")[0]
	if strings.Contains(text, "<span>") || !strings.Contains(text, "Hello world") {
		t.Fatalf("expected derived text part, got %q", text)
	}
}

func TestEnvelopePlainOnly(t *testing.T) {
	a := New(Config{Host: "localhost", From: "a@example.com", PlainOnly: true})

	env, err := a.envelope(mailer.Message{To: "b@example.com", Subject: "Pedido nº 7", TextBody: "plain", HTMLBody: "<p>html</p>"})
	if err != nil {
		t.Fatalf("envelope: %v", err)
	}
	if env.headers["Content-Type"] != "text/plain; charset=UTF-8" {
		t.Fatalf("expected plain content type, got %s", env.headers["Content-Type"])
	}
	if env.body != "plain" {
		t.Fatalf("expected text body only, got %q", env.body)
	}
	if !strings.HasPrefix(env.headers["Subject"], "=?utf-8?q?") {
		t.Fatalf("expected encoded subject, got %s", env.headers["Subject"])
	}
}

func TestSendValidates(t *testing.T) {
	err := New(Config{}).Send(context.Background(), mailer.Message{To: "jane@example.com", TextBody: "x"})
	if !errors.Is(err, ErrHostRequired) {
		t.Fatalf("expected host error, got %v", err)
	}

	a := New(Config{Host: "localhost", Port: 2525, From: "shop@example.com"})
	if err := a.Send(context.Background(), mailer.Message{To: "jane@example.com"}); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected empty message error, got %v", err)
	}
	if err := a.Send(context.Background(), mailer.Message{To: "not an address", TextBody: "x"}); err == nil {
		t.Fatalf("expected invalid recipient error")
	}
	if a.Name() != "smtp" || New(Config{}, WithName("relay")).Name() != "relay" {
		t.Fatalf("unexpected adapter names")
	}
}
