package options

import (
	"strings"

	"github.com/goliatone/go-delivery-notes/pkg/config"
	"github.com/goliatone/go-delivery-notes/pkg/domain"
	"github.com/goliatone/go-delivery-notes/pkg/interfaces/logger"
)

// Option keys as stored by the shop settings screen.
const (
	KeyPrintButtonOnMyAccountPage = "wcdn_print_button_on_my_account_page"
	KeyPrintButtonOnViewOrderPage = "wcdn_print_button_on_view_order_page"
	KeyEmailPrintLink             = "wcdn_email_print_link"
	KeyPluginVersion              = "wcdn_plugin_version"
	KeyOrderTrackingPageID        = "wcdn_order_tracking_page_id"
)

// SystemSnapshot converts the module configuration into the lowest option layer.
func SystemSnapshot(cfg config.Config) Snapshot {
	return Snapshot{
		Scope: SystemScope(),
		Data: map[string]any{
			KeyPrintButtonOnMyAccountPage: yesNo(cfg.Theme.ShowOnAccountPage),
			KeyPrintButtonOnViewOrderPage: yesNo(cfg.Theme.ShowOnOrderPage),
			KeyEmailPrintLink:             yesNo(cfg.Theme.ShowInEmail),
			KeyPluginVersion:              cfg.Plugin.Version,
			KeyOrderTrackingPageID:        cfg.Pages.OrderTrackingPageID,
		},
		SnapshotID: "config",
	}
}

// StoreSnapshot wraps values saved by the shop owner.
func StoreSnapshot(data map[string]any) Snapshot {
	return Snapshot{
		Scope:      StoreScope(),
		Data:       data,
		SnapshotID: "store",
	}
}

// ResolveSettings reads the option keys into a settings snapshot. Keys that
// are missing or malformed keep the value from base.
func ResolveSettings(r *Resolver, base domain.Settings, lgr logger.Logger) domain.Settings {
	if lgr == nil {
		lgr = &logger.Nop{}
	}
	out := base
	if r == nil {
		return out
	}

	readBool := func(key string, dst *bool) {
		value, _, err := r.ResolveBool(key)
		if err != nil {
			lgr.Debug("options: keeping default", logger.F("key", key), logger.Err(err))
			return
		}
		*dst = value
	}
	readString := func(key string, dst *string) {
		value, _, err := r.ResolveString(key)
		if err != nil || strings.TrimSpace(value) == "" {
			return
		}
		*dst = strings.TrimSpace(value)
	}

	readBool(KeyPrintButtonOnMyAccountPage, &out.ShowOnAccountPage)
	readBool(KeyPrintButtonOnViewOrderPage, &out.ShowOnOrderPage)
	readBool(KeyEmailPrintLink, &out.ShowInEmail)
	readString(KeyPluginVersion, &out.PluginVersion)
	readString(KeyOrderTrackingPageID, &out.OrderTrackingPageID)
	return out
}

// SettingsFromConfig maps the configuration without any store overrides.
func SettingsFromConfig(cfg config.Config) domain.Settings {
	return domain.Settings{
		ShowOnAccountPage:   cfg.Theme.ShowOnAccountPage,
		ShowOnOrderPage:     cfg.Theme.ShowOnOrderPage,
		ShowInEmail:         cfg.Theme.ShowInEmail,
		PluginVersion:       cfg.Plugin.Version,
		AssetsURL:           cfg.Plugin.AssetsURL,
		OrderTrackingPageID: cfg.Pages.OrderTrackingPageID,
	}
}

// LoadSettings layers store overrides on top of the configuration defaults.
func LoadSettings(cfg config.Config, store map[string]any, lgr logger.Logger) (domain.Settings, error) {
	snapshots := []Snapshot{SystemSnapshot(cfg)}
	if len(store) > 0 {
		snapshots = append(snapshots, StoreSnapshot(store))
	}
	resolver, err := NewResolver(snapshots...)
	if err != nil {
		return domain.Settings{}, err
	}
	return ResolveSettings(resolver, SettingsFromConfig(cfg), lgr), nil
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
