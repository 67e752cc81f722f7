// Package moderate implements the authenticated admin API: settings
// save, entry approval and entry deletion.
package moderate

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/GoGuestbook/GoGuestbook/internal/auth"
	"github.com/GoGuestbook/GoGuestbook/internal/config"
	"github.com/GoGuestbook/GoGuestbook/internal/db/controller/entry"
	"github.com/GoGuestbook/GoGuestbook/internal/db/controller/setting"
	"github.com/GoGuestbook/GoGuestbook/internal/web/middleware/origin"
)

const (
	// SettingsPath replaces the settings overlay.
	SettingsPath = "/api/settings"

	// ApprovePath flips one entry to approved.
	ApprovePath = "/api/approve/:id"

	// DeletePath removes one entry.
	DeletePath = "/api/delete/:id"
)

// Service is the admin API handler service.
type Service struct {
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the admin API handler.
var Handler = Service{}

// Init initializes the admin API handler. Every route requires a valid
// session and, being state-changing, the same-origin confirmation.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New("app, cfg or db is nil")
	}

	s.cfg = cfg
	s.db = db

	requireSession := auth.RequireSession(cfg)
	sameOrigin := origin.RequireSameOrigin()

	app.Post(SettingsPath, requireSession, sameOrigin, s.SaveSettings)
	app.Post(ApprovePath, requireSession, sameOrigin, s.Approve)
	app.Post(DeletePath, requireSession, sameOrigin, s.Delete)

	return nil
}

// SaveSettings upserts every allowlisted key present in the form body.
// Keys absent from the body keep their stored values.
func (s *Service) SaveSettings(c *fiber.Ctx) error {
	values := make(map[string]string)

	args := c.Request().PostArgs()
	for _, key := range config.OverlayKeys {
		if args.Has(key) {
			values[key] = c.FormValue(key)
		}
	}

	if err := setting.SaveAll(s.db, values); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

// Approve marks an entry as approved. Approving an already-approved or
// unknown id is a no-op, not an error.
func (s *Service) Approve(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "id must be a positive integer",
		})
	}

	if err := entry.Approve(s.db, id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

// Delete removes an entry. Idempotent.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "id must be a positive integer",
		})
	}

	if err := entry.Delete(s.db, id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

func parseID(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("id"), 10, 64)
}
