package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/goliatone/go-delivery-notes/pkg/interfaces/logger"
	"github.com/goliatone/go-delivery-notes/pkg/mailer"
)

// Adapter prints composed emails for local development.
type Adapter struct {
	name string
	base mailer.BaseAdapter
	mu   sync.Mutex
	out  io.Writer
	html bool
}

var _ mailer.Messenger = (*Adapter)(nil)

type Option func(*Adapter)

// WithName overrides the adapter provider name (defaults to "console").
func WithName(name string) Option {
	return func(a *Adapter) {
		if name != "" {
			a.name = name
		}
	}
}

// WithWriter redirects output (defaults to stdout).
func WithWriter(w io.Writer) Option {
	return func(a *Adapter) {
		if w != nil {
			a.out = w
		}
	}
}

// WithHTML prints the HTML part instead of the text part when present.
func WithHTML(enabled bool) Option {
	return func(a *Adapter) {
		a.html = enabled
	}
}

// New constructs a console adapter.
func New(l logger.Logger, opts ...Option) *Adapter {
	adapter := &Adapter{
		name: "console",
		base: mailer.NewBaseAdapter(l),
		out:  os.Stdout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(adapter)
		}
	}
	return adapter
}

// Name implements mailer.Messenger.
func (a *Adapter) Name() string {
	return a.name
}

// Send writes the message to the configured writer.
func (a *Adapter) Send(_ context.Context, msg mailer.Message) error {
	format := "text"
	body := msg.TextBody
	if a.html && strings.TrimSpace(msg.HTMLBody) != "" {
		format = "html"
		body = msg.HTMLBody
	}

	a.mu.Lock()
	_, err := fmt.Fprintf(a.out, "[console][%s] from=%s to=%s subject=%s\n%s\n", format, msg.From, msg.To, msg.Subject, body)
	a.mu.Unlock()
	if err != nil {
		a.base.LogFailure(a.name, msg, err)
		return fmt.Errorf("console: write: %w", err)
	}
	a.base.LogSuccess(a.name, msg)
	return nil
}
