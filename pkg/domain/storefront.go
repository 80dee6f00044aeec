package domain

import "strings"

// PageKind classifies the storefront page being rendered.
type PageKind string

const (
	PageOther         PageKind = ""
	PageAccount       PageKind = "account"
	PageViewOrder     PageKind = "view-order"
	PageOrderReceived PageKind = "order-received"
	PageOrderTracking PageKind = "order-tracking"
)

// Page identifies the current page by id and kind.
type Page struct {
	ID   string
	Kind PageKind
}

// IsAccount reports whether the page belongs to the customer account area.
func (p Page) IsAccount() bool {
	return p.Kind == PageAccount || p.Kind == PageViewOrder
}

// Settings is the snapshot of shop options read by the print links.
type Settings struct {
	ShowOnAccountPage   bool
	ShowOnOrderPage     bool
	ShowInEmail         bool
	PluginVersion       string
	AssetsURL           string
	OrderTrackingPageID string
}

// Action is an entry in the account page order actions list.
type Action struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Actions keeps insertion order; Set replaces entries with the same key.
type Actions []Action

// Set upserts the action by key and returns the updated list.
func (a Actions) Set(action Action) Actions {
	key := strings.TrimSpace(action.Key)
	out := make(Actions, 0, len(a)+1)
	replaced := false
	for _, existing := range a {
		if existing.Key == key {
			out = append(out, action)
			replaced = true
			continue
		}
		out = append(out, existing)
	}
	if !replaced {
		out = append(out, action)
	}
	return out
}

// Get returns the action stored under key.
func (a Actions) Get(key string) (Action, bool) {
	for _, existing := range a {
		if existing.Key == key {
			return existing, true
		}
	}
	return Action{}, false
}

// Script declares a front-end script dependency.
type Script struct {
	Handle  string   `json:"handle"`
	Src     string   `json:"src"`
	Deps    []string `json:"deps,omitempty"`
	Version string   `json:"version,omitempty"`
}
