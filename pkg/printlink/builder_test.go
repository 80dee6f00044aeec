package printlink

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/goliatone/go-delivery-notes/pkg/domain"
	"github.com/goliatone/go-delivery-notes/pkg/links"
)

func TestBuilderQueryForm(t *testing.T) {
	builder := NewBuilder(WithBaseURL("https://shop.example.com"))

	link, err := builder.Build(context.Background(), links.NewLinkRequest("1001", domain.TemplateTypeInvoice, ""))
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	parsed := mustParse(t, link)
	if parsed.Path != "/" {
		t.Fatalf("expected root path, got %q", parsed.Path)
	}
	query := parsed.Query()
	if got := query.Get(ParamOrder); got != "1001" {
		t.Fatalf("expected order 1001, got %q", got)
	}
	if got := query.Get(ParamType); got != "invoice" {
		t.Fatalf("expected invoice type, got %q", got)
	}
	if query.Has(ParamEmail) {
		t.Fatalf("expected no email parameter, got %q", query.Get(ParamEmail))
	}
}

func TestBuilderPermalinkFormWithEmail(t *testing.T) {
	builder := NewBuilder(WithBaseURL("https://shop.example.com/store/"), WithEndpoint("/print/"))

	req := links.LinkRequest{
		OrderIDs:     []string{"12", "13"},
		TemplateType: domain.TemplateTypeOrder,
		Email:        "guest+vip@example.com",
		Permalink:    true,
	}
	link, err := builder.Build(context.Background(), req)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	parsed := mustParse(t, link)
	if parsed.Path != "/store/print/12-13/" {
		t.Fatalf("unexpected permalink path %q", parsed.Path)
	}
	if got := parsed.Query().Get(ParamEmail); got != "guest+vip@example.com" {
		t.Fatalf("expected email round trip, got %q", got)
	}
	if strings.Contains(parsed.RawQuery, "+vip") {
		t.Fatalf("expected plus sign to be escaped, got %q", parsed.RawQuery)
	}
	if parsed.Query().Has(ParamOrder) {
		t.Fatalf("permalink form should not repeat the order id in the query")
	}
}

func TestBuilderDefaultsTemplateType(t *testing.T) {
	builder := NewBuilder(WithBaseURL("https://shop.example.com"), WithPermalinks(true))

	link, err := builder.Build(context.Background(), links.LinkRequest{OrderIDs: []string{"7"}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := mustParse(t, link).Query().Get(ParamType); got != "order" {
		t.Fatalf("expected default order type, got %q", got)
	}
}

func TestBuilderErrors(t *testing.T) {
	var nilBuilder *Builder
	if _, err := nilBuilder.Build(context.Background(), links.NewLinkRequest("1", "order", "")); err == nil {
		t.Fatal("expected nil builder error")
	}

	if _, err := NewBuilder().Build(context.Background(), links.NewLinkRequest("1", "order", "")); err == nil {
		t.Fatal("expected missing base url error")
	}

	builder := NewBuilder(WithBaseURL("/relative"))
	if _, err := builder.Build(context.Background(), links.NewLinkRequest("1", "order", "")); err == nil {
		t.Fatal("expected relative base url error")
	}

	builder = NewBuilder(WithBaseURL("https://shop.example.com"))
	if _, err := builder.Build(context.Background(), links.LinkRequest{OrderIDs: []string{" "}}); err == nil {
		t.Fatal("expected missing order id error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := builder.Build(ctx, links.NewLinkRequest("1", "order", "")); err == nil {
		t.Fatal("expected cancelled context error")
	}
}

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse link %q: %v", raw, err)
	}
	return parsed
}
