package domain

import "strings"

// OrderStatus is the lifecycle state reported by the shop.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusOnHold     OrderStatus = "on-hold"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
	OrderStatusFailed     OrderStatus = "failed"
)

// Normalize lowercases the status and drops the "wc-" storage prefix.
func (s OrderStatus) Normalize() OrderStatus {
	value := strings.ToLower(strings.TrimSpace(string(s)))
	return OrderStatus(strings.TrimPrefix(value, "wc-"))
}

// IsCompleted reports whether the order reached the completed state.
func (s OrderStatus) IsCompleted() bool {
	return s.Normalize() == OrderStatusCompleted
}

// Order is the read-only view of an order used to build print links.
type Order interface {
	OrderID() string
	OrderStatus() OrderStatus
	BillingEmail() string
}

type staticOrder struct {
	id     string
	status OrderStatus
	email  string
}

// NewOrder wraps plain values as an Order.
func NewOrder(id string, status OrderStatus, billingEmail string) Order {
	return staticOrder{
		id:     strings.TrimSpace(id),
		status: status.Normalize(),
		email:  strings.TrimSpace(billingEmail),
	}
}

func (o staticOrder) OrderID() string          { return o.id }
func (o staticOrder) OrderStatus() OrderStatus { return o.status }
func (o staticOrder) BillingEmail() string     { return o.email }

// TemplateType selects the print layout a link targets.
type TemplateType string

const (
	TemplateTypeInvoice      TemplateType = "invoice"
	TemplateTypeOrder        TemplateType = "order"
	TemplateTypeDeliveryNote TemplateType = "delivery-note"
	TemplateTypeReceipt      TemplateType = "receipt"
)

func (t TemplateType) String() string { return string(t) }
