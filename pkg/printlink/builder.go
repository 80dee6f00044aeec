package printlink

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-delivery-notes/pkg/domain"
	"github.com/goliatone/go-delivery-notes/pkg/links"
)

// Query parameters understood by the print view.
const (
	ParamOrder = "print-order"
	ParamType  = "print-order-type"
	ParamEmail = "print-order-email"

	// DefaultEndpoint is the path segment used by the permalink form.
	DefaultEndpoint = "print-order"
	// IDSeparator joins multiple order ids in one link.
	IDSeparator = "-"
)

var (
	errBuilderNil     = errors.New("printlink: builder is nil")
	errOrderRequired  = errors.New("printlink: at least one order id is required")
	errBaseURLMissing = errors.New("printlink: base url is required")
)

// Builder produces print view URLs.
type Builder struct {
	baseURL    string
	endpoint   string
	permalinks bool
}

var _ links.Builder = (*Builder)(nil)

// Option configures the print link builder.
type Option func(*Builder)

// NewBuilder creates a print link builder.
func NewBuilder(opts ...Option) *Builder {
	builder := &Builder{
		endpoint: DefaultEndpoint,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(builder)
		}
	}
	return builder
}

// WithBaseURL sets the absolute URL of the shop front.
func WithBaseURL(base string) Option {
	return func(b *Builder) {
		b.baseURL = strings.TrimSpace(base)
	}
}

// WithEndpoint overrides the permalink path segment.
func WithEndpoint(endpoint string) Option {
	return func(b *Builder) {
		if endpoint = strings.Trim(strings.TrimSpace(endpoint), "/"); endpoint != "" {
			b.endpoint = endpoint
		}
	}
}

// WithPermalinks makes every link use the permalink form.
func WithPermalinks(enabled bool) Option {
	return func(b *Builder) {
		b.permalinks = enabled
	}
}

// Build generates the print URL for the request.
func (b *Builder) Build(ctx context.Context, req links.LinkRequest) (string, error) {
	if b == nil {
		return "", errBuilderNil
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return "", err
		}
	}
	ids := req.IDs()
	if len(ids) == 0 {
		return "", errOrderRequired
	}
	if b.baseURL == "" {
		return "", errBaseURLMissing
	}
	base, err := url.Parse(b.baseURL)
	if err != nil {
		return "", fmt.Errorf("printlink: parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return "", fmt.Errorf("printlink: base url %q must be absolute", b.baseURL)
	}

	templateType := req.TemplateType
	if strings.TrimSpace(string(templateType)) == "" {
		templateType = domain.TemplateTypeOrder
	}

	query := url.Values{}
	query.Set(ParamType, string(templateType))
	if email := strings.TrimSpace(req.Email); email != "" {
		query.Set(ParamEmail, email)
	}

	joined := strings.Join(ids, IDSeparator)
	out := *base
	out.RawQuery = ""
	out.Fragment = ""
	basePath := strings.TrimRight(base.Path, "/")
	if b.permalinks || req.Permalink {
		out.Path = basePath + "/" + b.endpoint + "/" + url.PathEscape(joined) + "/"
	} else {
		out.Path = basePath + "/"
		query.Set(ParamOrder, joined)
	}
	out.RawQuery = query.Encode()
	return out.String(), nil
}
