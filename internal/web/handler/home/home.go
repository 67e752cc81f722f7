// Package home renders the public guestbook page.
package home

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/GoGuestbook/GoGuestbook/internal/config"
	"github.com/GoGuestbook/GoGuestbook/internal/db/controller/entry"
	"github.com/GoGuestbook/GoGuestbook/internal/web/handler"
)

// Service is the home page handler service.
type Service struct {
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the home page handler.
var Handler = Service{}

// Init initializes the home page handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db

	app.Get(handler.RootPath, s.Get)

	return nil
}

// Get renders the public page with the latest approved entries.
func (s *Service) Get(c *fiber.Ctx) error {
	rt := config.Resolve(s.db, s.cfg)

	rows, nextCursor, err := entry.ListPublic(s.db, 0, entry.DefaultPublicLimit)
	if err != nil {
		return err
	}

	return c.Render("home", fiber.Map{
		"title":              rt.SiteTitle,
		"entries":            rows,
		"next_cursor":        nextCursor,
		"allow_indexing":     rt.AllowIndexing,
		"turnstile_enabled":  rt.TurnstileEnabled,
		"turnstile_site_key": rt.TurnstileSiteKey,
	})
}
