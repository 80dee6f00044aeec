package di

import (
	"context"
	"reflect"
	"strings"

	"github.com/goliatone/go-delivery-notes/internal/templates"
	"github.com/goliatone/go-delivery-notes/pkg/activity"
	"github.com/goliatone/go-delivery-notes/pkg/activity/usersink"
	"github.com/goliatone/go-delivery-notes/pkg/commands"
	"github.com/goliatone/go-delivery-notes/pkg/config"
	"github.com/goliatone/go-delivery-notes/pkg/domain"
	"github.com/goliatone/go-delivery-notes/pkg/interfaces/logger"
	"github.com/goliatone/go-delivery-notes/pkg/interfaces/store"
	"github.com/goliatone/go-delivery-notes/pkg/mailer"
	"github.com/goliatone/go-delivery-notes/pkg/mailer/aws_ses"
	"github.com/goliatone/go-delivery-notes/pkg/mailer/console"
	"github.com/goliatone/go-delivery-notes/pkg/mailer/smtp"
	"github.com/goliatone/go-delivery-notes/pkg/options"
	"github.com/goliatone/go-delivery-notes/pkg/presenter"
	"github.com/goliatone/go-delivery-notes/pkg/printlink"
	"github.com/goliatone/go-delivery-notes/pkg/retry"
	"github.com/goliatone/go-delivery-notes/pkg/storage"
	"github.com/goliatone/go-delivery-notes/pkg/storefront"
	"github.com/goliatone/go-delivery-notes/pkg/translations"
	i18n "github.com/goliatone/go-i18n"
	"github.com/goliatone/go-users/pkg/types"
)

// Options configure the DI container.
type Options struct {
	Config config.Config
	// StoreOptions holds the shop's saved option values (wcdn_* keys).
	StoreOptions  map[string]any
	Storage       storage.Providers
	// Orders replaces the configured order repository, e.g. with a shop adapter.
	Orders        store.OrderRepository
	Logger        logger.Logger
	Translator    i18n.Translator
	Fallbacks     i18n.FallbackResolver
	Messengers    []mailer.Messenger
	ActivitySink  types.ActivitySink
	Hooks         activity.Hooks
	Policy        presenter.Policy
	Labels        presenter.Labels
	Authenticator storefront.Authenticator
}

// Container wires settings, storage, presenter, mailer, commands and the storefront.
type Container struct {
	Config     config.Config
	Settings   domain.Settings
	Storage    storage.Providers
	Templates  *templates.Service
	Presenter  *presenter.Presenter
	Messengers *mailer.Registry
	Composer   *mailer.Composer
	Commands   *commands.Registry
	Storefront *storefront.Server
}

func isZeroConfig(cfg config.Config) bool {
	return reflect.ValueOf(cfg).IsZero()
}

// New constructs the container using the supplied options.
func New(ctx context.Context, opts Options) (*Container, error) {
	cfg := opts.Config
	if isZeroConfig(cfg) {
		cfg = config.Defaults()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	lgr := opts.Logger
	if lgr == nil {
		lgr = &logger.Nop{}
	}

	settings, err := options.LoadSettings(cfg, opts.StoreOptions, lgr)
	if err != nil {
		return nil, err
	}

	fallbacks := opts.Fallbacks
	if fallbacks == nil {
		fallbacks = translations.NewFallbackResolver(fallbackChains(cfg.Localization.Fallbacks))
	}
	translator := opts.Translator
	if translator == nil {
		translator, err = translations.NewTranslator(cfg.Localization.DefaultLocale, fallbacks)
		if err != nil {
			return nil, err
		}
	}

	tplSvc, err := templates.NewService(translator,
		templates.WithDefaultLocale(cfg.Localization.DefaultLocale),
		templates.WithFallbackResolver(fallbacks),
	)
	if err != nil {
		return nil, err
	}

	hooks := append(activity.Hooks{}, opts.Hooks...)
	hooks = append(hooks, activity.HookFunc(func(_ context.Context, evt activity.Event) {
		lgr.Debug("activity",
			logger.Field{Key: "verb", Value: evt.Verb},
			logger.Field{Key: "object_id", Value: evt.ObjectID},
			logger.Field{Key: "channel", Value: evt.Channel},
		)
	}))
	if opts.ActivitySink != nil {
		hooks = append(hooks, usersink.Hook{Sink: opts.ActivitySink, Logger: lgr})
	}

	linkBuilder := printlink.NewBuilder(
		printlink.WithBaseURL(cfg.Print.BaseURL),
		printlink.WithEndpoint(cfg.Print.Endpoint),
		printlink.WithPermalinks(cfg.Print.Permalinks),
	)

	p, err := presenter.New(presenter.Dependencies{
		Settings: settings,
		Links:    linkBuilder,
		Renderer: tplSvc,
		Policy:   opts.Policy,
		Labels:   opts.Labels,
		Logger:   lgr,
		Observer: activity.LinkObserver{
			Hooks: hooks,
			Actor: storefront.CustomerFromContext,
		},
		DefaultLocale: cfg.Localization.DefaultLocale,
	})
	if err != nil {
		return nil, err
	}

	providers := opts.Storage
	if providers.Orders == nil {
		providers, err = storage.Open(ctx, cfg.Persistence, storage.WithOrderRepository(opts.Orders))
		if err != nil {
			return nil, err
		}
	}

	messengers := mailer.NewRegistry(opts.Messengers...)
	if len(opts.Messengers) == 0 {
		messengers.Register(defaultMessenger(cfg.Mail, lgr))
	}
	if err := messengers.SetDefault(cfg.Mail.Provider); err != nil && len(opts.Messengers) == 0 {
		return nil, err
	}

	composer, err := mailer.NewComposer(p,
		mailer.WithDefaultFrom(cfg.Mail.From),
		mailer.WithComposerLogger(lgr),
	)
	if err != nil {
		return nil, err
	}

	cmdRegistry, err := commands.New(commands.Dependencies{
		Orders:       providers.Orders,
		Transactions: providers.Transaction,
		Composer:     composer,
		Messengers:   messengers,
		Retry:        retry.Policy{MaxAttempts: cfg.Mail.MaxAttempts, Backoff: retry.DefaultBackoff()},
		Logger:       lgr,
	})
	if err != nil {
		return nil, err
	}

	server, err := storefront.New(storefront.Dependencies{
		Presenter:     p,
		Pages:         tplSvc,
		Orders:        providers.Orders,
		Authenticator: opts.Authenticator,
		Logger:        lgr,
		Commands:      cmdRegistry,
		AdminToken:    cfg.Server.AdminToken,
		ReadTimeout:   cfg.Server.ReadTimeout,
		WriteTimeout:  cfg.Server.WriteTimeout,
	})
	if err != nil {
		return nil, err
	}

	return &Container{
		Config:     cfg,
		Settings:   settings,
		Storage:    providers,
		Templates:  tplSvc,
		Presenter:  p,
		Messengers: messengers,
		Composer:   composer,
		Commands:   cmdRegistry,
		Storefront: server,
	}, nil
}

// Close releases storage resources.
func (c *Container) Close() error {
	if c == nil || c.Storage.Close == nil {
		return nil
	}
	return c.Storage.Close()
}

func defaultMessenger(cfg config.MailConfig, lgr logger.Logger) mailer.Messenger {
	switch cfg.Provider {
	case config.MailProviderSMTP:
		return smtp.New(smtp.Config{
			Host:        cfg.SMTP.Host,
			Port:        cfg.SMTP.Port,
			Username:    cfg.SMTP.Username,
			Password:    cfg.SMTP.Password,
			From:        cfg.From,
			ImplicitTLS: cfg.SMTP.UseTLS,
		}, smtp.WithLogger(lgr))
	case config.MailProviderSES:
		return aws_ses.New(aws_ses.Config{
			From:             cfg.From,
			Region:           cfg.SES.Region,
			Profile:          cfg.SES.Profile,
			ConfigurationSet: cfg.SES.ConfigurationSet,
		}, aws_ses.WithLogger(lgr))
	default:
		return console.New(lgr)
	}
}

// fallbackChains turns "es-MX": "es,en" entries into resolver chains.
func fallbackChains(raw map[string]string) map[string][]string {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string][]string, len(raw))
	for locale, chain := range raw {
		for _, fb := range strings.Split(chain, ",") {
			if fb = strings.TrimSpace(fb); fb != "" {
				out[locale] = append(out[locale], fb)
			}
		}
	}
	return out
}
