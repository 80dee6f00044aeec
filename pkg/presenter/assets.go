package presenter

import (
	"html"
	"strings"

	"github.com/goliatone/go-delivery-notes/pkg/domain"
)

// Script handles declared on print-enabled pages.
const (
	ScriptPrintLink = "delivery-notes-print-link"
	ScriptTheme     = "delivery-notes-theme"
	ScriptJQuery    = "jquery"
)

// Scripts lists the front-end scripts a page needs. Account pages, the
// order-received page and the order-tracking page with an email get both
// print scripts; every other page gets none.
func (p *Presenter) Scripts(req Request) []domain.Script {
	if !req.Page.IsAccount() && req.Page.Kind != domain.PageOrderReceived && !p.IsOrderTrackingPage(req) {
		return nil
	}
	base := p.settings.AssetsURL
	if base != "" && !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return []domain.Script{
		{
			Handle:  ScriptPrintLink,
			Src:     base + "js/jquery.print-link.js",
			Deps:    []string{ScriptJQuery},
			Version: p.settings.PluginVersion,
		},
		{
			Handle:  ScriptTheme,
			Src:     base + "js/theme.js",
			Deps:    []string{ScriptJQuery, ScriptPrintLink},
			Version: p.settings.PluginVersion,
		},
	}
}

// ScriptTags renders scripts as script elements with a ver cache-buster.
func ScriptTags(scripts []domain.Script) string {
	if len(scripts) == 0 {
		return ""
	}
	tags := make([]string, 0, len(scripts))
	for _, script := range scripts {
		src := script.Src
		if script.Version != "" {
			sep := "?"
			if strings.Contains(src, "?") {
				sep = "&"
			}
			src += sep + "ver=" + script.Version
		}
		tags = append(tags, `<script id="`+html.EscapeString(script.Handle)+`-js" src="`+escapeURL(src)+`"></script>`)
	}
	return strings.Join(tags, "\n")
}
