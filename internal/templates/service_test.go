package templates

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-delivery-notes/pkg/translations"
)

func TestRenderOrderPageButton(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.Render(context.Background(), RenderRequest{
		Code: CodeOrderPageButton,
		Data: map[string]any{
			"url":   "https://shop.test/?print-order=7&amp;print-order-type=invoice",
			"label": "Print",
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<p class="order-print"><a href="https://shop.test/?print-order=7&amp;print-order-type=invoice" class="button print">Print</a></p>`
	if result.Body != want {
		t.Fatalf("unexpected body:\n%s\nwant:\n%s", result.Body, want)
	}
	if result.Format != FormatHTML {
		t.Fatalf("expected html format, got %s", result.Format)
	}
}

func TestRenderEmailHTMLTranslatesLabels(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.Render(context.Background(), RenderRequest{
		Code:   CodeEmailHTML,
		Locale: "es",
		Data:   map[string]any{"url": "https://shop.test/?print-order=7"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(result.Body, "<strong>Imprimir:</strong>") {
		t.Fatalf("expected spanish heading, got %s", result.Body)
	}
	if !result.UsedFallback || result.Locale != "en" {
		t.Fatalf("expected en fragment fallback, got %s (fallback=%v)", result.Locale, result.UsedFallback)
	}
}

func TestRenderEmailTextLayout(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.Render(context.Background(), RenderRequest{
		Code: CodeEmailText,
		Data: map[string]any{
			"url":     "https://shop.test/?print-order=7&print-order-type=invoice",
			"heading": "Print your order",
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "Print your order\n\nhttps://shop.test/?print-order=7&print-order-type=invoice\n\n" + EmailTextSeparator + "\n\n"
	if result.Body != want {
		t.Fatalf("unexpected text body: %q", result.Body)
	}
}

func TestRenderMissingPlaceholders(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Render(context.Background(), RenderRequest{Code: CodeOrderPageButton, Data: map[string]any{"url": "x"}})
	var missing MissingFieldsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected missing fields error, got %v", err)
	}
	if len(missing.Fields) != 1 || missing.Fields[0] != "label" {
		t.Fatalf("unexpected missing fields: %v", missing.Fields)
	}
}

func TestRenderUnknownFragment(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Render(context.Background(), RenderRequest{Code: "print.unknown"})
	if !errors.Is(err, ErrFragmentNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.Render(context.Background(), RenderRequest{}); !errors.Is(err, ErrInvalidRenderRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
}

func TestRegisterFragmentsOverridesLocale(t *testing.T) {
	svc := newTestService(t)
	svc.RegisterFragments(Fragment{
		Code:     CodeOrderPageButton,
		Locale:   "de",
		Format:   FormatHTML,
		Body:     `<div class="druck"><a href="{{ url|safe }}">{{ label|safe }}</a></div>`,
		Required: []string{"url", "label"},
	})

	result, err := svc.Render(context.Background(), RenderRequest{
		Code:   CodeOrderPageButton,
		Locale: "de-AT",
		Data:   map[string]any{"url": "https://shop.test/", "label": "Drucken"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result.Locale != "de" {
		t.Fatalf("expected de variant, got %s", result.Locale)
	}
	if result.Body != `<div class="druck"><a href="https://shop.test/">Drucken</a></div>` {
		t.Fatalf("unexpected body %s", result.Body)
	}
}

func TestTranslateFallsBackToKey(t *testing.T) {
	svc := newTestService(t)

	if got := svc.Translate("de", KeyButtonLabel); got != "Drucken" {
		t.Fatalf("expected Drucken, got %q", got)
	}
	if got := svc.Translate("fr", KeyEmailText); got != "Print your order" {
		t.Fatalf("expected english fallback, got %q", got)
	}
	if got := svc.Translate("en", "print.unknown"); got != "print.unknown" {
		t.Fatalf("expected key echo, got %q", got)
	}
}

func TestRenderHonorsCancelledContext(t *testing.T) {
	svc := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Render(ctx, RenderRequest{Code: CodeEmailHTML}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	resolver := translations.NewFallbackResolver(nil)
	translator, err := translations.NewTranslator("en", resolver)
	if err != nil {
		t.Fatalf("translator: %v", err)
	}
	svc, err := NewService(translator, WithFallbackResolver(resolver), WithDefaultLocale("en"))
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	return svc
}
