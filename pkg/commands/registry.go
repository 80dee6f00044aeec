package commands

import (
	command "github.com/goliatone/go-command"
	internalcommands "github.com/goliatone/go-delivery-notes/internal/commands"
	"github.com/goliatone/go-delivery-notes/pkg/interfaces/logger"
	"github.com/goliatone/go-delivery-notes/pkg/interfaces/store"
	"github.com/goliatone/go-delivery-notes/pkg/mailer"
	"github.com/goliatone/go-delivery-notes/pkg/retry"
)

// Re-export request types so consumers need not import internal packages.
type (
	SaveOrder      = internalcommands.SaveOrder
	SendOrderEmail = internalcommands.SendOrderEmail
)

// ErrInvalidInput marks payload validation failures.
var ErrInvalidInput = internalcommands.ErrInvalidInput

// Registry exposes go-command compatible handlers backed by the module services.
type Registry struct {
	Catalog        *internalcommands.Catalog
	SaveOrder      command.Commander[SaveOrder]
	SendOrderEmail command.Commander[SendOrderEmail]
}

// Dependencies mirror the internal command dependencies but keep them public.
type Dependencies struct {
	Orders       store.OrderRepository
	Transactions store.TransactionManager
	Composer     *mailer.Composer
	Messengers   *mailer.Registry
	Retry        retry.Policy
	Logger       logger.Logger
}

// New builds the registry using the provided dependencies.
func New(deps Dependencies) (*Registry, error) {
	internalDeps := internalcommands.Dependencies{
		Orders:       deps.Orders,
		Transactions: deps.Transactions,
		Retry:        deps.Retry,
		Logger:       deps.Logger,
	}
	if deps.Composer != nil {
		internalDeps.Composer = deps.Composer
	}
	if deps.Messengers != nil {
		internalDeps.Messengers = deps.Messengers
	}
	catalog, err := internalcommands.NewCatalog(internalDeps)
	if err != nil {
		return nil, err
	}
	return &Registry{
		Catalog:        catalog,
		SaveOrder:      catalog.SaveOrder,
		SendOrderEmail: catalog.SendOrderEmail,
	}, nil
}

// Commanders returns every handler so callers can register them with go-command registries.
func (r *Registry) Commanders() []any {
	if r == nil {
		return nil
	}
	return []any{
		r.SaveOrder,
		r.SendOrderEmail,
	}
}
