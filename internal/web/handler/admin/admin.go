// Package admin renders the administrator pages: the moderation queue,
// the settings form and the embed snippet. Access control happens in the
// page middleware, which redirects unauthenticated visitors to /login.
package admin

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/GoGuestbook/GoGuestbook/internal/config"
	"github.com/GoGuestbook/GoGuestbook/internal/db/controller/entry"
)

const (
	// Path is the admin entries page.
	Path = "/admin"

	// SettingsPath is the admin settings page.
	SettingsPath = "/admin/settings"

	// EmbedPath is the embed snippet page.
	EmbedPath = "/admin/embed"
)

// Service is the admin pages handler service.
type Service struct {
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the admin pages handler.
var Handler = Service{}

// Init initializes the admin pages handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New("app, cfg or db is nil")
	}

	s.cfg = cfg
	s.db = db

	app.Get(Path, s.Entries)
	app.Get(SettingsPath, s.Settings)
	app.Get(EmbedPath, s.Embed)

	return nil
}

// Entries renders the moderation queue: every entry, pending first in
// the sense that pending ones carry approve buttons.
func (s *Service) Entries(c *fiber.Ctx) error {
	rt := config.Resolve(s.db, s.cfg)

	rows, err := entry.ListAll(s.db, entry.DefaultAdminLimit)
	if err != nil {
		return err
	}

	return c.Render("admin_entries", fiber.Map{
		"title":   rt.SiteTitle,
		"entries": rows,
	})
}

// Settings renders the settings form prefilled with the resolved values.
func (s *Service) Settings(c *fiber.Ctx) error {
	rt := config.Resolve(s.db, s.cfg)

	return c.Render("admin_settings", fiber.Map{
		"title":              rt.SiteTitle,
		"site_title":         rt.SiteTitle,
		"require_moderation": rt.RequireModeration,
		"turnstile_enabled":  rt.TurnstileEnabled,
		"turnstile_site_key": rt.TurnstileSiteKey,
		"allow_indexing":     rt.AllowIndexing,
	})
}

// Embed renders the copy-paste snippet for the widget script.
func (s *Service) Embed(c *fiber.Ctx) error {
	rt := config.Resolve(s.db, s.cfg)

	return c.Render("admin_embed", fiber.Map{
		"title":    rt.SiteTitle,
		"base_url": s.cfg.Webserver.URL,
	})
}
