package presenter

import (
	"strings"

	"github.com/goliatone/go-delivery-notes/pkg/domain"
)

// TypeFunc adjusts a template type chosen from the order status.
type TypeFunc func(domain.TemplateType) domain.TemplateType

// OverrideFunc adjusts the final template type with the whole order at hand.
type OverrideFunc func(domain.TemplateType, domain.Order) domain.TemplateType

// LabelFunc adjusts a translated button label for an order.
type LabelFunc func(label string, order domain.Order) string

// Policy overrides the template type decisions. Nil funcs leave the value as is.
type Policy struct {
	Completed TypeFunc
	Default   TypeFunc
	Override  OverrideFunc
}

// Labels overrides button labels. Nil funcs leave the value as is.
type Labels struct {
	AccountPage LabelFunc
	OrderPage   LabelFunc
}

// TemplateType maps the order status to the print layout: completed orders
// get an invoice, everything else the order layout.
func (p *Presenter) TemplateType(order domain.Order) domain.TemplateType {
	var status domain.OrderStatus
	if order != nil {
		status = order.OrderStatus()
	}

	var chosen domain.TemplateType
	if status.IsCompleted() {
		chosen = applyType(p.policy.Completed, domain.TemplateTypeInvoice)
	} else {
		chosen = applyType(p.policy.Default, domain.TemplateTypeOrder)
	}

	if p.policy.Override != nil {
		if overridden := domain.TemplateType(strings.TrimSpace(string(p.policy.Override(chosen, order)))); overridden != "" {
			chosen = overridden
		}
	}
	return chosen
}

func applyType(fn TypeFunc, fallback domain.TemplateType) domain.TemplateType {
	if fn == nil {
		return fallback
	}
	if got := domain.TemplateType(strings.TrimSpace(string(fn(fallback)))); got != "" {
		return got
	}
	return fallback
}

func applyLabel(fn LabelFunc, label string, order domain.Order) string {
	if fn == nil {
		return label
	}
	return fn(label, order)
}
