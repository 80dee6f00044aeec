package templates

import (
	"strings"
	"sync"
)

// Fragment is a small markup or text snippet rendered into a page or email.
// Required names the data keys that must be present and non-nil.
type Fragment struct {
	Code     string
	Locale   string
	Format   string
	Body     string
	Required []string
}

func (f Fragment) missing(data map[string]any) error {
	var fields []string
	for _, key := range f.Required {
		if data[key] == nil {
			fields = append(fields, key)
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return MissingFieldsError{Code: f.Code, Fields: fields}
}

// registry maps code -> locale -> fragment.
type registry struct {
	mu        sync.RWMutex
	fragments map[string]map[string]Fragment
}

func newRegistry() *registry {
	return &registry{fragments: make(map[string]map[string]Fragment)}
}

func (r *registry) put(fragment Fragment) {
	code, locale := normalizeKey(fragment.Code), normalizeKey(fragment.Locale)
	if code == "" || locale == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fragments[code] == nil {
		r.fragments[code] = make(map[string]Fragment)
	}
	r.fragments[code][locale] = fragment
}

// resolve returns the first variant found along locales.
func (r *registry) resolve(code string, locales []string) (Fragment, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	variants := r.fragments[normalizeKey(code)]
	for _, candidate := range locales {
		if fragment, ok := variants[normalizeKey(candidate)]; ok {
			return fragment, candidate, nil
		}
	}
	return Fragment{}, "", ErrFragmentNotFound
}

func normalizeKey(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
