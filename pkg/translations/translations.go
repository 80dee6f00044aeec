package translations

import (
	"strings"

	i18n "github.com/goliatone/go-i18n"
)

// Catalog returns the built-in print link catalogs keyed by locale.
func Catalog() i18n.Translations {
	return i18n.Translations{
		"en": newCatalog("en", map[string]string{
			"print.button.label":       "Print",
			"print.email.heading":      "Print:",
			"print.email.open_link":    "Open print view in browser",
			"print.email.text_heading": "Print your order",
		}),
		"es": newCatalog("es", map[string]string{
			"print.button.label":       "Imprimir",
			"print.email.heading":      "Imprimir:",
			"print.email.open_link":    "Abrir la vista de impresión en el navegador",
			"print.email.text_heading": "Imprime tu pedido",
		}),
		"de": newCatalog("de", map[string]string{
			"print.button.label":       "Drucken",
			"print.email.heading":      "Drucken:",
			"print.email.open_link":    "Druckansicht im Browser öffnen",
			"print.email.text_heading": "Bestellung drucken",
		}),
	}
}

// Locales lists the locale codes shipped in Catalog.
func Locales() []string {
	return []string{"en", "es", "de"}
}

// NewFallbackResolver builds a static resolver from locale -> fallbacks.
// Regional codes such as es-MX fall back to their base language implicitly.
func NewFallbackResolver(fallbacks map[string][]string) *i18n.StaticFallbackResolver {
	resolver := i18n.NewStaticFallbackResolver()
	for _, locale := range Locales() {
		for _, region := range regionalVariants(locale) {
			resolver.Set(region, locale)
		}
	}
	for locale, chain := range fallbacks {
		locale = strings.TrimSpace(locale)
		if locale == "" || len(chain) == 0 {
			continue
		}
		resolver.Set(locale, chain...)
	}
	return resolver
}

// NewTranslator wires the built-in catalogs into a go-i18n translator.
func NewTranslator(defaultLocale string, resolver i18n.FallbackResolver) (i18n.Translator, error) {
	defaultLocale = strings.TrimSpace(defaultLocale)
	if defaultLocale == "" {
		defaultLocale = "en"
	}
	store := i18n.NewStaticStore(Catalog())
	if resolver == nil {
		return i18n.NewSimpleTranslator(store, i18n.WithTranslatorDefaultLocale(defaultLocale))
	}
	return i18n.NewSimpleTranslator(store,
		i18n.WithTranslatorDefaultLocale(defaultLocale),
		i18n.WithTranslatorFallbackResolver(resolver),
	)
}

func regionalVariants(locale string) []string {
	switch locale {
	case "es":
		return []string{"es-ES", "es-MX", "es-AR"}
	case "de":
		return []string{"de-DE", "de-AT", "de-CH"}
	case "en":
		return []string{"en-US", "en-GB"}
	}
	return nil
}

func newCatalog(locale string, entries map[string]string) *i18n.TranslationCatalog {
	catalog := &i18n.TranslationCatalog{
		Locale:   i18n.Locale{Code: locale},
		Messages: make(map[string]i18n.Message),
	}
	for key, template := range entries {
		msg := i18n.Message{}
		msg.SetContent(template)
		catalog.Messages[key] = msg
	}
	return catalog
}
