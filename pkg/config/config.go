package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/goliatone/go-config/cfgx"
)

// Config captures module-level configuration knobs. Feature packages (presenter,
// printlink, mailer, storefront) pull from these nested structs.
type Config struct {
	Plugin       PluginConfig       `mapstructure:"plugin" json:"plugin"`
	Print        PrintConfig        `mapstructure:"print" json:"print"`
	Theme        ThemeConfig        `mapstructure:"theme" json:"theme"`
	Pages        PagesConfig        `mapstructure:"pages" json:"pages"`
	Localization LocalizationConfig `mapstructure:"localization" json:"localization"`
	Persistence  PersistenceConfig  `mapstructure:"persistence" json:"persistence"`
	Server       ServerConfig       `mapstructure:"server" json:"server"`
	Mail         MailConfig         `mapstructure:"mail" json:"mail"`
}

// PluginConfig versions and locates the front-end assets.
type PluginConfig struct {
	Version   string `mapstructure:"version" json:"version"`
	AssetsURL string `mapstructure:"assets_url" json:"assets_url"`
}

// PrintConfig points at the print view endpoint.
type PrintConfig struct {
	BaseURL    string `mapstructure:"base_url" json:"base_url"`
	Endpoint   string `mapstructure:"endpoint" json:"endpoint"`
	Permalinks bool   `mapstructure:"permalinks" json:"permalinks"`
}

// ThemeConfig holds the default value of the storefront toggles. Stores can
// override them through option snapshots.
type ThemeConfig struct {
	ShowOnAccountPage bool `mapstructure:"show_on_account_page" json:"show_on_account_page"`
	ShowOnOrderPage   bool `mapstructure:"show_on_order_page" json:"show_on_order_page"`
	ShowInEmail       bool `mapstructure:"show_in_email" json:"show_in_email"`
}

// PagesConfig identifies special storefront pages.
type PagesConfig struct {
	OrderTrackingPageID string `mapstructure:"order_tracking_page_id" json:"order_tracking_page_id"`
}

// LocalizationConfig controls default locale + fallback chains.
type LocalizationConfig struct {
	DefaultLocale string            `mapstructure:"default_locale" json:"default_locale"`
	Fallbacks     map[string]string `mapstructure:"fallbacks" json:"fallbacks"`
}

// PersistenceConfig selects the order store.
type PersistenceConfig struct {
	Driver string `mapstructure:"driver" json:"driver"`
	DSN    string `mapstructure:"dsn" json:"dsn"`
}

// ServerConfig configures the storefront HTTP server.
type ServerConfig struct {
	Addr         string        `mapstructure:"addr" json:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" json:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" json:"write_timeout"`
	// AdminToken enables the order API when set.
	AdminToken   string        `mapstructure:"admin_token" json:"admin_token"`
}

// MailConfig selects the transactional email provider.
type MailConfig struct {
	Provider string     `mapstructure:"provider" json:"provider"`
	From     string     `mapstructure:"from" json:"from"`
	SMTP     SMTPConfig `mapstructure:"smtp" json:"smtp"`
	SES      SESConfig  `mapstructure:"ses" json:"ses"`

	// MaxAttempts bounds send retries per email.
	MaxAttempts int `mapstructure:"max_attempts" json:"max_attempts"`
}

// SMTPConfig captures SMTP connection settings.
type SMTPConfig struct {
	Host     string `mapstructure:"host" json:"host"`
	Port     int    `mapstructure:"port" json:"port"`
	Username string `mapstructure:"username" json:"username"`
	Password string `mapstructure:"password" json:"password"`
	UseTLS   bool   `mapstructure:"use_tls" json:"use_tls"`
}

// SESConfig captures AWS SES settings.
type SESConfig struct {
	Region           string `mapstructure:"region" json:"region"`
	Profile          string `mapstructure:"profile" json:"profile"`
	ConfigurationSet string `mapstructure:"configuration_set" json:"configuration_set"`
}

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"

	MailProviderConsole = "console"
	MailProviderSMTP    = "smtp"
	MailProviderSES     = "aws_ses"
)

// Defaults returns the baseline configuration.
func Defaults() Config {
	return Config{
		Plugin: PluginConfig{
			Version:   "1.0.0",
			AssetsURL: "/assets/delivery-notes/",
		},
		Print: PrintConfig{
			BaseURL:  "http://localhost:8480",
			Endpoint: "print-order",
		},
		Theme: ThemeConfig{
			ShowOnAccountPage: true,
			ShowOnOrderPage:   true,
			ShowInEmail:       true,
		},
		Pages: PagesConfig{
			OrderTrackingPageID: "order-tracking",
		},
		Localization: LocalizationConfig{DefaultLocale: "en"},
		Persistence: PersistenceConfig{
			Driver: DriverMemory,
		},
		Server: ServerConfig{
			Addr:         ":8480",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Mail: MailConfig{
			Provider:    MailProviderConsole,
			From:        "shop@example.com",
			SMTP:        SMTPConfig{Port: 587},
			SES:         SESConfig{Region: "us-east-1"},
			MaxAttempts: 3,
		},
	}
}

// Validate ensures required fields are present and sane.
func (c *Config) Validate() error {
	if c.Localization.DefaultLocale == "" {
		return errors.New("localization.default_locale is required")
	}
	if strings.TrimSpace(c.Print.BaseURL) == "" {
		return errors.New("print.base_url is required")
	}
	if u, err := url.Parse(c.Print.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("print.base_url must be an absolute url, got %q", c.Print.BaseURL)
	}
	switch c.Persistence.Driver {
	case DriverMemory, DriverSQLite:
	default:
		return fmt.Errorf("persistence.driver %q is not supported", c.Persistence.Driver)
	}
	switch c.Mail.Provider {
	case MailProviderConsole, MailProviderSMTP, MailProviderSES:
	default:
		return fmt.Errorf("mail.provider %q is not supported", c.Mail.Provider)
	}
	if c.Mail.Provider == MailProviderSMTP && strings.TrimSpace(c.Mail.SMTP.Host) == "" {
		return errors.New("mail.smtp.host is required for the smtp provider")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return errors.New("server timeouts must be >= 0")
	}
	return nil
}

// Load decodes arbitrary input (struct, map, cfg struct) using cfgx helpers.
// When cfgx.Build returns a zero value we fall back to a JSON round trip so map
// inputs keep working.
func Load(input any, opts ...LoadOption) (Config, error) {
	settings := loadOptions{}
	for _, opt := range opts {
		opt(&settings)
	}

	cfg, err := cfgx.Build(input, settings.buildOpts...)
	if err != nil {
		return Config{}, err
	}

	if isZero(cfg) {
		if err := decodeFallback(input, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg = cfg.withDefaults()
	if raw, ok := input.(map[string]any); ok && raw["theme"] == nil {
		cfg.Theme = Defaults().Theme
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadOption lets callers amend cfgx build options.
type LoadOption func(*loadOptions)

type loadOptions struct {
	buildOpts []cfgx.Option[Config]
}

// WithBuildOptions forwards cfgx options (duration hooks, preprocessors, etc.).
func WithBuildOptions(opts ...cfgx.Option[Config]) LoadOption {
	return func(lo *loadOptions) {
		lo.buildOpts = append(lo.buildOpts, opts...)
	}
}

// withDefaults fills empty scalar fields. The theme toggles are left alone:
// false is a legitimate store choice. Load restores them only when a map
// input has no theme section at all.
func (c Config) withDefaults() Config {
	defaults := Defaults()

	if c.Plugin.Version == "" {
		c.Plugin.Version = defaults.Plugin.Version
	}
	if c.Plugin.AssetsURL == "" {
		c.Plugin.AssetsURL = defaults.Plugin.AssetsURL
	}
	if c.Print.BaseURL == "" {
		c.Print.BaseURL = defaults.Print.BaseURL
	}
	if c.Print.Endpoint == "" {
		c.Print.Endpoint = defaults.Print.Endpoint
	}
	if c.Pages.OrderTrackingPageID == "" {
		c.Pages.OrderTrackingPageID = defaults.Pages.OrderTrackingPageID
	}
	if c.Localization.DefaultLocale == "" {
		c.Localization.DefaultLocale = defaults.Localization.DefaultLocale
	}
	if c.Persistence.Driver == "" {
		c.Persistence.Driver = defaults.Persistence.Driver
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaults.Server.Addr
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = defaults.Server.ReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = defaults.Server.WriteTimeout
	}
	if c.Mail.Provider == "" {
		c.Mail.Provider = defaults.Mail.Provider
	}
	if c.Mail.From == "" {
		c.Mail.From = defaults.Mail.From
	}
	if c.Mail.SMTP.Port == 0 {
		c.Mail.SMTP.Port = defaults.Mail.SMTP.Port
	}
	if c.Mail.SES.Region == "" {
		c.Mail.SES.Region = defaults.Mail.SES.Region
	}
	if c.Mail.MaxAttempts <= 0 {
		c.Mail.MaxAttempts = defaults.Mail.MaxAttempts
	}
	return c
}

func isZero(cfg Config) bool {
	return reflect.DeepEqual(cfg, Config{})
}

func decodeFallback(input any, cfg *Config) error {
	switch v := input.(type) {
	case nil:
		*cfg = Defaults()
		return nil
	case Config:
		*cfg = v
		return nil
	case *Config:
		if v != nil {
			*cfg = *v
		}
		return nil
	case map[string]any:
		return decodeMap(v, cfg)
	default:
		return fmt.Errorf("unsupported config input type: %T", input)
	}
}

func decodeMap(input map[string]any, cfg *Config) error {
	if input == nil {
		return nil
	}
	payload, err := json.Marshal(input)
	if err != nil {
		return err
	}
	return json.Unmarshal(payload, cfg)
}
