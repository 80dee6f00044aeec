package mailer

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
)

// Message is a composed customer email ready for delivery.
type Message struct {
	ID       string
	From     string
	To       string
	Subject  string
	TextBody string
	HTMLBody string
	Locale   string
	Headers  map[string]string
	Metadata map[string]any
}

// IsEmpty reports whether the message has no body in either format.
func (m Message) IsEmpty() bool {
	return strings.TrimSpace(m.TextBody) == "" && strings.TrimSpace(m.HTMLBody) == ""
}

// Messenger delivers messages through one provider (SMTP, SES, console).
type Messenger interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}

// ErrMessengerNotFound is returned when no messenger matches a provider.
var ErrMessengerNotFound = errors.New("mailer: no messenger matches provider")

// Registry stores available messengers keyed by provider name.
type Registry struct {
	mu          sync.RWMutex
	messengers  map[string]Messenger
	defaultName string
}

// NewRegistry builds a registry; the first messenger becomes the default.
func NewRegistry(messengers ...Messenger) *Registry {
	reg := &Registry{
		messengers: make(map[string]Messenger),
	}
	for _, m := range messengers {
		reg.Register(m)
	}
	return reg
}

// Register adds a messenger under its provider name.
func (r *Registry) Register(m Messenger) {
	if r == nil || m == nil {
		return
	}
	name := normalizeKey(m.Name())
	if name == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messengers[name] = m
	if r.defaultName == "" {
		r.defaultName = name
	}
}

// SetDefault selects the messenger used when Route receives no provider.
func (r *Registry) SetDefault(name string) error {
	if r == nil {
		return ErrMessengerNotFound
	}
	key := normalizeKey(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.messengers[key]; !ok {
		return ErrMessengerNotFound
	}
	r.defaultName = key
	return nil
}

// Route locates a messenger by provider name, falling back to the default.
func (r *Registry) Route(provider string) (Messenger, error) {
	if r == nil {
		return nil, ErrMessengerNotFound
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	key := normalizeKey(provider)
	if key == "" {
		key = r.defaultName
	}
	if m, ok := r.messengers[key]; ok {
		return m, nil
	}
	return nil, ErrMessengerNotFound
}

// Names lists the registered providers in order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.messengers))
	for name := range r.messengers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func normalizeKey(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
