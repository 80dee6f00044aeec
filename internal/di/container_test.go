package di

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goliatone/go-delivery-notes/internal/storage/memory"
	"github.com/goliatone/go-delivery-notes/pkg/commands"
	"github.com/goliatone/go-delivery-notes/pkg/config"
	"github.com/goliatone/go-delivery-notes/pkg/mailer"
	"github.com/goliatone/go-delivery-notes/pkg/storefront"
)

func TestContainerDefaults(t *testing.T) {
	ctx := context.Background()
	messenger := &captureMessenger{}
	c, err := New(ctx, Options{Messengers: []mailer.Messenger{messenger}})
	if err != nil {
		t.Fatalf("container: %v", err)
	}
	defer c.Close()

	if !c.Settings.ShowOnAccountPage || !c.Settings.ShowInEmail {
		t.Fatalf("expected default settings enabled, got %+v", c.Settings)
	}
	if c.Storefront == nil || c.Commands == nil || c.Presenter == nil {
		t.Fatalf("expected wired services")
	}

	if err := c.Commands.SaveOrder.Execute(ctx, commands.SaveOrder{Reference: "1", CustomerID: "cust-1", Status: "completed", BillingEmail: "jane@example.com"}); err != nil {
		t.Fatalf("save order: %v", err)
	}
	if err := c.Commands.SendOrderEmail.Execute(ctx, commands.SendOrderEmail{Reference: "1", TextBody: "Order #1"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(messenger.sent) != 1 || !strings.Contains(messenger.sent[0].TextBody, "http://localhost:8480/print-order/1/") {
		t.Fatalf("expected print link in email, got %+v", messenger.sent)
	}

	req := httptest.NewRequest(http.MethodGet, "/my-account/view-order/1", nil)
	req.Header.Set(storefront.HeaderCustomerID, "cust-1")
	resp, err := c.Storefront.App().Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestContainerStoreOptionsOverrideConfig(t *testing.T) {
	c, err := New(context.Background(), Options{
		StoreOptions: map[string]any{
			"wcdn_email_print_link":       "no",
			"wcdn_order_tracking_page_id": "42",
		},
		Messengers: []mailer.Messenger{&captureMessenger{}},
	})
	if err != nil {
		t.Fatalf("container: %v", err)
	}
	if c.Settings.ShowInEmail {
		t.Fatalf("store option should disable the email link")
	}
	if c.Settings.OrderTrackingPageID != "42" {
		t.Fatalf("expected tracking page 42, got %s", c.Settings.OrderTrackingPageID)
	}
}

func TestContainerRejectsInvalidConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.Persistence.Driver = "postgres"
	if _, err := New(context.Background(), Options{Config: cfg}); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestFallbackChains(t *testing.T) {
	chains := fallbackChains(map[string]string{"es-MX": "es, en", "de": ""})
	if got := strings.Join(chains["es-MX"], ","); got != "es,en" {
		t.Fatalf("unexpected chain %s", got)
	}
	if _, ok := chains["de"]; ok {
		t.Fatalf("empty chains should be skipped")
	}
}

type captureMessenger struct {
	sent []mailer.Message
}

func (m *captureMessenger) Name() string { return "console" }

func (m *captureMessenger) Send(_ context.Context, msg mailer.Message) error {
	m.sent = append(m.sent, msg)
	return nil
}

func TestContainerUsesSuppliedOrderRepository(t *testing.T) {
	ctx := context.Background()
	orders := memory.NewOrderRepository()
	c, err := New(ctx, Options{Orders: orders, Messengers: []mailer.Messenger{&captureMessenger{}}})
	if err != nil {
		t.Fatalf("container: %v", err)
	}
	defer c.Close()

	if err := c.Commands.SaveOrder.Execute(ctx, commands.SaveOrder{Reference: "77", Status: "completed", BillingEmail: "jane@example.com"}); err != nil {
		t.Fatalf("save order: %v", err)
	}
	if _, err := orders.GetByReference(ctx, "77"); err != nil {
		t.Fatalf("expected order in supplied repository: %v", err)
	}
}
