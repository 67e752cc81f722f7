package config

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoGuestbook/GoGuestbook/internal/db/controller/setting"
	"github.com/GoGuestbook/GoGuestbook/internal/db/models"
)

// Settings overlay keys. Boolean keys coerce the stored string with
// "true" meaning true and any other value, including garbage, false.
const (
	KeySiteTitle         = "SITE_TITLE"
	KeyRequireModeration = "REQUIRE_MODERATION"
	KeyTurnstileEnabled  = "TURNSTILE_ENABLED"
	KeyTurnstileSiteKey  = "TURNSTILE_SITE_KEY"
	KeyAllowIndexing     = "ALLOW_INDEXING"
)

// OverlayKeys lists every key the settings overlay may shadow. The
// settings-save endpoint only accepts keys from this list; secrets
// (admin password, signing secret, Turnstile secret key) stay in the
// environment layer and are deliberately absent here.
var OverlayKeys = []string{ //nolint:gochecknoglobals
	KeySiteTitle,
	KeyRequireModeration,
	KeyTurnstileEnabled,
	KeyTurnstileSiteKey,
	KeyAllowIndexing,
}

// Runtime is the merged per-request view of the configuration:
// settings overlay > environment config > compiled default.
type Runtime struct {
	SiteTitle         string
	RequireModeration bool
	TurnstileEnabled  bool
	TurnstileSiteKey  string
	AllowIndexing     bool
}

// Resolve merges the stored settings overlay over the environment
// defaults. It is called per request and never fails: if the settings
// table is missing (first run) it triggers idempotent schema creation,
// logs the problem and proceeds with the environment defaults.
func Resolve(db *gorm.DB, cfg *Config) Runtime {
	rt := Runtime{
		SiteTitle:         cfg.Guestbook.SiteTitle,
		RequireModeration: cfg.Guestbook.RequireModeration,
		TurnstileEnabled:  cfg.Turnstile.Enabled,
		TurnstileSiteKey:  cfg.Turnstile.SiteKey,
		AllowIndexing:     cfg.Guestbook.AllowIndexing,
	}

	if rt.SiteTitle == "" {
		rt.SiteTitle = "Guestbook"
	}

	rows, err := setting.GetAll(db)
	if err != nil {
		// likely a first run with no schema yet
		if migErr := models.Migrate(db); migErr != nil {
			log.Error().Err(migErr).Msg("lazy schema creation failed")
		}

		if rows, err = setting.GetAll(db); err != nil {
			log.Error().Err(err).Msg("settings overlay unavailable, using defaults")
			return rt
		}
	}

	for _, row := range rows {
		switch row.Name {
		case KeySiteTitle:
			rt.SiteTitle = row.Value
		case KeyRequireModeration:
			rt.RequireModeration = row.Value == "true"
		case KeyTurnstileEnabled:
			rt.TurnstileEnabled = row.Value == "true"
		case KeyTurnstileSiteKey:
			rt.TurnstileSiteKey = row.Value
		case KeyAllowIndexing:
			rt.AllowIndexing = row.Value == "true"
		}
	}

	return rt
}
