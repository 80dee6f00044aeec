package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-delivery-notes/pkg/domain"
	"github.com/goliatone/go-delivery-notes/pkg/interfaces/logger"
	"github.com/goliatone/go-delivery-notes/pkg/presenter"
	"github.com/google/uuid"
)

var (
	// ErrRecipientRequired is returned when neither To nor the billing email is set.
	ErrRecipientRequired = errors.New("mailer: recipient is required")
	// ErrLinkerRequired is returned by NewComposer without a link presenter.
	ErrLinkerRequired = errors.New("mailer: email link presenter is required")
)

// EmailLinker produces the print fragment for an order email.
type EmailLinker interface {
	EmailLink(ctx context.Context, order domain.Order, ec presenter.EmailContext) (string, error)
}

// OrderEmail is the caller's order email before the print fragment is added.
// TextBody and HTMLBody hold everything up to and including the order table.
type OrderEmail struct {
	Order       domain.Order
	From        string
	To          string
	Subject     string
	TextBody    string
	HTMLBody    string
	SentToAdmin bool
	// PlainText marks customers who receive text-only mail.
	PlainText bool
	Locale    string
	Headers   map[string]string
}

// Composer appends the print link after the order table.
type Composer struct {
	linker EmailLinker
	from   string
	logger logger.Logger
}

// ComposerOption configures a Composer.
type ComposerOption func(*Composer)

// WithDefaultFrom sets the sender used when an email has none.
func WithDefaultFrom(from string) ComposerOption {
	return func(c *Composer) {
		c.from = strings.TrimSpace(from)
	}
}

// WithComposerLogger sets the composer logger.
func WithComposerLogger(l logger.Logger) ComposerOption {
	return func(c *Composer) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewComposer builds a composer around the link presenter.
func NewComposer(linker EmailLinker, opts ...ComposerOption) (*Composer, error) {
	if linker == nil {
		return nil, ErrLinkerRequired
	}
	composer := &Composer{
		linker: linker,
		logger: &logger.Nop{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(composer)
		}
	}
	return composer, nil
}

// Compose builds the outgoing message. The presenter is asked once per body
// format; text-only customers get no HTML part.
func (c *Composer) Compose(ctx context.Context, email OrderEmail) (Message, error) {
	if email.Order == nil {
		return Message{}, presenter.ErrOrderRequired
	}
	to := strings.TrimSpace(FirstNonEmpty(email.To, email.Order.BillingEmail()))
	if to == "" {
		return Message{}, ErrRecipientRequired
	}
	subject := strings.TrimSpace(email.Subject)
	if subject == "" {
		subject = fmt.Sprintf("Order #%s", email.Order.OrderID())
	}

	textFragment, err := c.linker.EmailLink(ctx, email.Order, presenter.EmailContext{
		SentToAdmin: email.SentToAdmin,
		PlainText:   true,
		Locale:      email.Locale,
	})
	if err != nil {
		return Message{}, fmt.Errorf("mailer: text print link: %w", err)
	}

	msg := Message{
		ID:       uuid.NewString(),
		From:     FirstNonEmpty(email.From, c.from),
		To:       to,
		Subject:  subject,
		TextBody: appendText(email.TextBody, textFragment),
		Locale:   email.Locale,
		Headers:  cloneHeaders(email.Headers),
		Metadata: map[string]any{
			"order_id":      email.Order.OrderID(),
			"sent_to_admin": email.SentToAdmin,
			"print_link":    textFragment != "",
		},
	}

	if !email.PlainText {
		htmlFragment, err := c.linker.EmailLink(ctx, email.Order, presenter.EmailContext{
			SentToAdmin: email.SentToAdmin,
			Locale:      email.Locale,
		})
		if err != nil {
			return Message{}, fmt.Errorf("mailer: html print link: %w", err)
		}
		msg.HTMLBody = email.HTMLBody + htmlFragment
	}

	c.logger.Debug("order email composed",
		logger.Field{Key: "order_id", Value: email.Order.OrderID()},
		logger.Field{Key: "plain_text", Value: email.PlainText},
		logger.Field{Key: "print_link", Value: textFragment != ""},
	)
	return msg, nil
}

func appendText(body, fragment string) string {
	if fragment == "" {
		return body
	}
	if body == "" {
		return fragment
	}
	if !strings.HasSuffix(body, "\n\n") {
		body = strings.TrimRight(body, "\n") + "\n\n"
	}
	return body + fragment
}

func cloneHeaders(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
