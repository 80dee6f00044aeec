package templates

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"sync"

	i18n "github.com/goliatone/go-i18n"
	gotemplate "github.com/goliatone/go-template"
)

// Service coordinates fragment registration + rendering with locale-aware fallbacks.
type Service struct {
	renderer      *gotemplate.Engine
	registry      *registry
	translator    i18n.Translator
	fallbacks     i18n.FallbackResolver
	defaultLocale string
	localeKey     string
	renderMu      sync.Mutex
}

// RenderRequest wraps the inputs needed to resolve and render a fragment variant.
type RenderRequest struct {
	Code   string
	Locale string
	Data   map[string]any
}

// RenderResult returns the rendered fragment and the locale that served it.
type RenderResult struct {
	Body         string
	Format       string
	Locale       string
	UsedFallback bool
}

type serviceOptions struct {
	defaultLocale  string
	fallbacks      i18n.FallbackResolver
	helperFuncs    []map[string]any
	rendererOpts   []gotemplate.Option
	missingHandler i18n.MissingTranslationHandler
	localeKey      string
	skipBuiltins   bool
}

// Option configures the template service.
type Option func(*serviceOptions)

// WithDefaultLocale overrides the locale used when lookups do not provide one.
func WithDefaultLocale(locale string) Option {
	return func(so *serviceOptions) {
		so.defaultLocale = locale
	}
}

// WithFallbackResolver wires a locale fallback resolver (e.g., es-MX -> es -> en).
func WithFallbackResolver(resolver i18n.FallbackResolver) Option {
	return func(so *serviceOptions) {
		so.fallbacks = resolver
	}
}

// WithHelperFuncs registers additional helper functions with the renderer.
func WithHelperFuncs(funcs map[string]any) Option {
	return func(so *serviceOptions) {
		if len(funcs) == 0 {
			return
		}
		so.helperFuncs = append(so.helperFuncs, funcs)
	}
}

// WithRendererOptions forwards options directly to go-template's renderer.
func WithRendererOptions(opts ...gotemplate.Option) Option {
	return func(so *serviceOptions) {
		so.rendererOpts = append(so.rendererOpts, opts...)
	}
}

// WithLocaleKey customizes the key injected into the data map to expose the locale.
func WithLocaleKey(key string) Option {
	return func(so *serviceOptions) {
		if key == "" {
			return
		}
		so.localeKey = key
	}
}

// WithMissingTranslationHandler customizes how go-i18n helpers surface missing keys.
func WithMissingTranslationHandler(handler i18n.MissingTranslationHandler) Option {
	return func(so *serviceOptions) {
		so.missingHandler = handler
	}
}

// WithoutBuiltinFragments starts the service with an empty registry.
func WithoutBuiltinFragments() Option {
	return func(so *serviceOptions) {
		so.skipBuiltins = true
	}
}

// NewService builds the fragment service wiring the helper registry, renderer,
// and localization translator together. Built-in print fragments are
// registered unless WithoutBuiltinFragments is supplied.
func NewService(translator i18n.Translator, opts ...Option) (*Service, error) {
	if translator == nil {
		return nil, ErrTranslatorRequired
	}

	settings := serviceOptions{
		localeKey: "locale",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&settings)
		}
	}

	defaultLocale := strings.TrimSpace(settings.defaultLocale)
	if defaultLocale == "" {
		if provider, ok := translator.(interface{ DefaultLocale() string }); ok {
			defaultLocale = provider.DefaultLocale()
		}
	}
	if defaultLocale == "" {
		defaultLocale = "en"
	}

	rendererOpts := []gotemplate.Option{
		gotemplate.WithBaseDir("."),
	}
	rendererOpts = append(rendererOpts, settings.rendererOpts...)

	renderer, err := gotemplate.NewRenderer(rendererOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRendererConfig, err)
	}

	service := &Service{
		renderer:      renderer,
		registry:      newRegistry(),
		translator:    translator,
		fallbacks:     settings.fallbacks,
		defaultLocale: defaultLocale,
		localeKey:     settings.localeKey,
	}

	helperCfg := i18n.HelperConfig{
		LocaleKey:         service.localeKey,
		TemplateHelperKey: "t",
		OnMissing:         settings.missingHandler,
	}
	service.RegisterHelpers(i18n.TemplateHelpers(translator, helperCfg))

	for _, funcs := range settings.helperFuncs {
		service.RegisterHelpers(funcs)
	}

	if !settings.skipBuiltins {
		service.RegisterFragments(BuiltinFragments()...)
	}

	return service, nil
}

// RegisterFragments loads fragment variants into the service registry.
// A later registration for the same code and locale replaces the earlier one.
func (s *Service) RegisterFragments(fragments ...Fragment) {
	if s == nil {
		return
	}
	for _, fragment := range fragments {
		s.registry.put(fragment)
	}
}

// RegisterHelpers adds helper functions to the underlying renderer.
func (s *Service) RegisterHelpers(funcs map[string]any) {
	if s == nil || len(funcs) == 0 {
		return
	}
	s.renderMu.Lock()
	defer s.renderMu.Unlock()
	gotemplate.WithTemplateFunc(funcs)(s.renderer)
}

// Render fetches the appropriate fragment variant and produces localized content.
func (s *Service) Render(ctx context.Context, req RenderRequest) (RenderResult, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return RenderResult{}, err
		}
	}
	if s == nil {
		return RenderResult{}, ErrRendererConfig
	}
	if strings.TrimSpace(req.Code) == "" {
		return RenderResult{}, ErrInvalidRenderRequest
	}

	fragment, resolvedLocale, err := s.registry.resolve(req.Code, s.localeChain(req.Locale))
	if err != nil {
		return RenderResult{}, fmt.Errorf("%w: %s", err, req.Code)
	}
	if fragment.Body == "" {
		return RenderResult{}, fmt.Errorf("templates: fragment %s/%s has no body", req.Code, resolvedLocale)
	}

	payload := make(map[string]any, len(req.Data)+1)
	maps.Copy(payload, req.Data)
	locale := strings.TrimSpace(req.Locale)
	if locale == "" {
		locale = resolvedLocale
	}
	if _, ok := payload[s.localeKey]; !ok {
		payload[s.localeKey] = locale
	}

	if err := fragment.missing(payload); err != nil {
		return RenderResult{}, err
	}

	s.renderMu.Lock()
	body, err := s.renderer.RenderString(fragment.Body, payload)
	s.renderMu.Unlock()
	if err != nil {
		return RenderResult{}, fmt.Errorf("templates: render %s: %w", fragment.Code, err)
	}

	return RenderResult{
		Body:         body,
		Format:       fragment.Format,
		Locale:       resolvedLocale,
		UsedFallback: !strings.EqualFold(resolvedLocale, strings.TrimSpace(req.Locale)),
	}, nil
}

// Translate resolves key through the locale chain and returns the key itself
// when no catalog carries it.
func (s *Service) Translate(locale, key string, args ...any) string {
	if s == nil || s.translator == nil {
		return key
	}
	for _, candidate := range s.localeChain(locale) {
		msg, err := s.translator.Translate(candidate, key, args...)
		if err == nil && msg != "" {
			return msg
		}
	}
	return key
}

// DefaultLocale returns the locale used when a request carries none.
func (s *Service) DefaultLocale() string {
	if s == nil {
		return "en"
	}
	return s.defaultLocale
}

func (s *Service) localeChain(requested string) []string {
	chain := make([]string, 0, 4)
	appendUnique := func(locale string) {
		if locale == "" {
			return
		}
		for _, existing := range chain {
			if strings.EqualFold(existing, locale) {
				return
			}
		}
		chain = append(chain, locale)
	}

	requested = strings.TrimSpace(requested)
	appendUnique(requested)
	if s.fallbacks != nil && requested != "" {
		for _, fb := range s.fallbacks.Resolve(requested) {
			appendUnique(fb)
		}
	}
	appendUnique(s.defaultLocale)
	appendUnique("en")
	return chain
}
