package presenter

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-delivery-notes/internal/templates"
	"github.com/goliatone/go-delivery-notes/pkg/domain"
	"github.com/goliatone/go-delivery-notes/pkg/interfaces/logger"
	"github.com/goliatone/go-delivery-notes/pkg/links"
)

var (
	// ErrLinkBuilderRequired is returned by New when no link builder is supplied.
	ErrLinkBuilderRequired = errors.New("presenter: link builder is required")
	// ErrRendererRequired is returned by New when no fragment renderer is supplied.
	ErrRendererRequired = errors.New("presenter: renderer is required")
	// ErrOrderRequired is returned when an operation receives a nil order.
	ErrOrderRequired = errors.New("presenter: order is required")
)

// Renderer renders localized fragments and resolves labels.
type Renderer interface {
	Render(ctx context.Context, req templates.RenderRequest) (templates.RenderResult, error)
	Translate(locale, key string, args ...any) string
}

// Dependencies lists the collaborators the presenter needs.
type Dependencies struct {
	Settings      domain.Settings
	Links         links.Builder
	Renderer      Renderer
	Policy        Policy
	Labels        Labels
	Logger        logger.Logger
	Observer      links.Observer
	DefaultLocale string
}

// Presenter renders print links for the storefront and customer emails.
type Presenter struct {
	settings      domain.Settings
	links         links.Builder
	renderer      Renderer
	policy        Policy
	labels        Labels
	logger        logger.Logger
	observer      links.Observer
	defaultLocale string
}

// New validates deps and returns a ready presenter.
func New(deps Dependencies) (*Presenter, error) {
	if deps.Links == nil {
		return nil, ErrLinkBuilderRequired
	}
	if deps.Renderer == nil {
		return nil, ErrRendererRequired
	}
	if deps.Logger == nil {
		deps.Logger = &logger.Nop{}
	}
	if deps.Observer == nil {
		deps.Observer = &links.NopObserver{}
	}
	locale := strings.TrimSpace(deps.DefaultLocale)
	if locale == "" {
		locale = "en"
	}
	return &Presenter{
		settings:      deps.Settings,
		links:         deps.Links,
		renderer:      deps.Renderer,
		policy:        deps.Policy,
		labels:        deps.Labels,
		logger:        deps.Logger,
		observer:      deps.Observer,
		defaultLocale: locale,
	}, nil
}

// Settings returns the snapshot the presenter reads.
func (p *Presenter) Settings() domain.Settings {
	return p.settings
}

// WithSettings returns a copy of the presenter reading settings instead.
func (p *Presenter) WithSettings(settings domain.Settings) *Presenter {
	clone := *p
	clone.settings = settings
	return &clone
}

func (p *Presenter) locale(req Request) string {
	if locale := strings.TrimSpace(req.Locale); locale != "" {
		return locale
	}
	return p.defaultLocale
}

// announce tells the observer a link reached the page. Callers invoke it
// only once the link has been rendered.
func (p *Presenter) announce(ctx context.Context, channel string, req links.LinkRequest, url string) {
	p.observer.OnLinkIssued(ctx, links.LinkResolution{
		Channel: channel,
		Request: req,
		URL:     url,
	})
}
