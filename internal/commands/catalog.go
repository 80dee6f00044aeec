package commands

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-delivery-notes/pkg/domain"
	"github.com/goliatone/go-delivery-notes/pkg/interfaces/logger"
	"github.com/goliatone/go-delivery-notes/pkg/interfaces/store"
	"github.com/goliatone/go-delivery-notes/pkg/mailer"
	"github.com/goliatone/go-delivery-notes/pkg/masking"
	"github.com/goliatone/go-delivery-notes/pkg/presenter"
	"github.com/goliatone/go-delivery-notes/pkg/retry"
)

// ErrInvalidInput marks payload validation failures so transports can map
// them to a client error.
var ErrInvalidInput = errors.New("commands: invalid input")

// Catalog exposes go-command compatible handlers for host transports.
type Catalog struct {
	SaveOrder      command.Commander[SaveOrder]
	SendOrderEmail command.Commander[SendOrderEmail]
}

type orderComposer interface {
	Compose(ctx context.Context, email mailer.OrderEmail) (mailer.Message, error)
}

type messengerRouter interface {
	Route(provider string) (mailer.Messenger, error)
}

// Dependencies wires repositories and services into the command catalog.
type Dependencies struct {
	Orders store.OrderRepository
	// Transactions wraps order upserts; nil runs them directly.
	Transactions store.TransactionManager
	Composer     orderComposer
	Messengers   messengerRouter
	// Retry bounds send attempts; the zero value sends once.
	Retry  retry.Policy
	Logger logger.Logger
}

// NewCatalog builds the command catalog using the supplied dependencies.
func NewCatalog(deps Dependencies) (*Catalog, error) {
	if deps.Orders == nil {
		return nil, errors.New("commands: order repository is required")
	}
	if deps.Composer == nil {
		return nil, errors.New("commands: email composer is required")
	}
	if deps.Messengers == nil {
		return nil, errors.New("commands: messenger registry is required")
	}
	if deps.Logger == nil {
		deps.Logger = &logger.Nop{}
	}
	if deps.Transactions == nil {
		deps.Transactions = &store.NopTransactionManager{}
	}

	return &Catalog{
		SaveOrder: saveOrderCommand{repo: deps.Orders, tx: deps.Transactions, logger: deps.Logger},
		SendOrderEmail: sendOrderEmailCommand{
			repo:       deps.Orders,
			composer:   deps.Composer,
			messengers: deps.Messengers,
			retry:      deps.Retry,
			logger:     deps.Logger,
		},
	}, nil
}

// SaveOrder creates or updates an order by reference.
type SaveOrder struct {
	Reference      string         `json:"reference"`
	CustomerID     string         `json:"customer_id"`
	Status         string         `json:"status"`
	BillingEmail   string         `json:"billing_email"`
	Locale         string         `json:"locale"`
	PlainTextEmail bool           `json:"plain_text_email"`
	Metadata       map[string]any `json:"metadata"`
}

type saveOrderCommand struct {
	repo   store.OrderRepository
	tx     store.TransactionManager
	logger logger.Logger
}

func (c saveOrderCommand) Execute(ctx context.Context, msg SaveOrder) error {
	msg.Reference = strings.TrimSpace(msg.Reference)
	if msg.Reference == "" {
		return fmt.Errorf("%w: order reference is required", ErrInvalidInput)
	}
	status := domain.OrderStatus(msg.Status).Normalize()
	if status == "" {
		status = domain.OrderStatusPending
	}
	email := ""
	if raw := strings.TrimSpace(msg.BillingEmail); raw != "" {
		email = presenter.SanitizeEmail(raw)
		if email == "" {
			return fmt.Errorf("%w: billing email %q is not valid", ErrInvalidInput, masking.Email(raw))
		}
	}

	record := &domain.OrderRecord{
		Reference:      msg.Reference,
		CustomerID:     strings.TrimSpace(msg.CustomerID),
		State:          status,
		Email:          email,
		Locale:         strings.TrimSpace(msg.Locale),
		PlainTextEmail: msg.PlainTextEmail,
		Metadata:       domain.JSONMap(maps.Clone(msg.Metadata)),
	}
	return c.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return c.upsert(ctx, record)
	})
}

func (c saveOrderCommand) upsert(ctx context.Context, record *domain.OrderRecord) error {
	existing, err := c.repo.GetByReference(ctx, record.Reference)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}
	if existing == nil {
		record.EnsureOrderKey()
		if err := c.repo.Create(ctx, record); err != nil {
			return err
		}
		c.logger.Info("order created",
			logger.Field{Key: "order_id", Value: record.Reference},
			logger.Field{Key: "status", Value: string(record.State)},
		)
		return nil
	}

	existing.CustomerID = record.CustomerID
	existing.State = record.State
	existing.Email = record.Email
	existing.Locale = record.Locale
	existing.PlainTextEmail = record.PlainTextEmail
	if record.Metadata != nil {
		key := existing.OrderKey()
		existing.Metadata = record.Metadata
		if existing.OrderKey() == "" && key != "" {
			existing.Metadata[domain.MetadataOrderKey] = key
		}
	}
	if err := c.repo.Update(ctx, existing); err != nil {
		return err
	}
	c.logger.Info("order updated",
		logger.Field{Key: "order_id", Value: existing.Reference},
		logger.Field{Key: "status", Value: string(existing.State)},
	)
	return nil
}

// SendOrderEmail delivers the order email for a stored order. Bodies hold the
// shop's own content; the print link is appended by the composer.
type SendOrderEmail struct {
	Reference   string            `json:"reference"`
	Provider    string            `json:"provider"`
	To          string            `json:"to"`
	Subject     string            `json:"subject"`
	TextBody    string            `json:"text_body"`
	HTMLBody    string            `json:"html_body"`
	SentToAdmin bool              `json:"sent_to_admin"`
	Headers     map[string]string `json:"headers"`
}

type sendOrderEmailCommand struct {
	repo       store.OrderRepository
	composer   orderComposer
	messengers messengerRouter
	retry      retry.Policy
	logger     logger.Logger
}

func (c sendOrderEmailCommand) Execute(ctx context.Context, msg SendOrderEmail) error {
	reference := strings.TrimSpace(msg.Reference)
	if reference == "" {
		return fmt.Errorf("%w: order reference is required", ErrInvalidInput)
	}
	order, err := c.repo.GetByReference(ctx, reference)
	if err != nil {
		return err
	}

	message, err := c.composer.Compose(ctx, mailer.OrderEmail{
		Order:       order,
		To:          msg.To,
		Subject:     msg.Subject,
		TextBody:    msg.TextBody,
		HTMLBody:    msg.HTMLBody,
		SentToAdmin: msg.SentToAdmin,
		PlainText:   order.PlainTextEmail,
		Locale:      order.Locale,
		Headers:     msg.Headers,
	})
	if err != nil {
		if errors.Is(err, mailer.ErrRecipientRequired) {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return err
	}

	messenger, err := c.messengers.Route(msg.Provider)
	if err != nil {
		return fmt.Errorf("commands: route %q: %w", msg.Provider, err)
	}
	err = c.retry.Do(ctx, func(ctx context.Context, attempt int) error {
		sendErr := messenger.Send(ctx, message)
		if sendErr != nil {
			c.logger.Warn("order email attempt failed",
				logger.Field{Key: "order_id", Value: reference},
				logger.Field{Key: "provider", Value: messenger.Name()},
				logger.Field{Key: "attempt", Value: attempt},
				logger.Field{Key: "error", Value: sendErr.Error()},
			)
		}
		return sendErr
	})
	if err != nil {
		return fmt.Errorf("commands: send order %s via %s: %w", reference, messenger.Name(), err)
	}
	return nil
}
