package domain

import "testing"

func TestOrderStatusNormalize(t *testing.T) {
	cases := map[OrderStatus]OrderStatus{
		"completed":    OrderStatusCompleted,
		"wc-completed": OrderStatusCompleted,
		" Processing ": OrderStatusProcessing,
		"":             "",
	}
	for input, want := range cases {
		if got := input.Normalize(); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", input, got, want)
		}
	}
	if !OrderStatus("WC-COMPLETED").IsCompleted() {
		t.Fatalf("expected prefixed completed status to be completed")
	}
}

func TestOrderRecordImplementsOrder(t *testing.T) {
	record := &OrderRecord{Reference: "1001", State: "wc-processing", Email: " guest@example.com "}

	var order Order = record
	if order.OrderID() != "1001" {
		t.Fatalf("expected id 1001, got %q", order.OrderID())
	}
	if order.OrderStatus() != OrderStatusProcessing {
		t.Fatalf("expected processing, got %q", order.OrderStatus())
	}
	if order.BillingEmail() != "guest@example.com" {
		t.Fatalf("expected trimmed email, got %q", order.BillingEmail())
	}

	var nilRecord *OrderRecord
	if nilRecord.OrderID() != "" || nilRecord.BillingEmail() != "" {
		t.Fatalf("expected nil record to read as empty")
	}
}

func TestActionsSetReplacesByKey(t *testing.T) {
	actions := Actions{
		{Key: "pay", Name: "Pay", URL: "/pay"},
		{Key: "view", Name: "View", URL: "/view"},
	}

	actions = actions.Set(Action{Key: "print", Name: "Print", URL: "/print"})
	actions = actions.Set(Action{Key: "view", Name: "Details", URL: "/details"})

	if len(actions) != 3 {
		t.Fatalf("expected 3 actions, got %d", len(actions))
	}
	if actions[1].Name != "Details" {
		t.Fatalf("expected view replaced in place, got %+v", actions[1])
	}
	if got, ok := actions.Get("print"); !ok || got.URL != "/print" {
		t.Fatalf("expected print action appended, got %+v", got)
	}
}
