// Package entries implements the public paginated entry listing.
package entries

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/GoGuestbook/GoGuestbook/internal/config"
	"github.com/GoGuestbook/GoGuestbook/internal/db/controller/entry"
	"github.com/GoGuestbook/GoGuestbook/internal/db/models"
)

const (
	// Path is the public listing endpoint.
	Path = "/api/entries"
)

// PublicEntry is the outward JSON shape of one entry. The email field is
// never part of any public surface.
type PublicEntry struct {
	ID        uint64  `json:"id"`
	Name      string  `json:"name"`
	Message   string  `json:"message"`
	Site      *string `json:"site,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// ToPublic converts a stored entry to its public shape with the
// timestamp normalized to RFC3339 UTC.
func ToPublic(e models.Entry) PublicEntry {
	return PublicEntry{
		ID:        e.ID,
		Name:      e.Name,
		Message:   e.Message,
		Site:      e.Site,
		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Service is the public listing handler service.
type Service struct {
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the public listing handler.
var Handler = Service{}

// Init initializes the public listing handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New("app, cfg or db is nil")
	}

	s.cfg = cfg
	s.db = db

	app.Get(Path, s.Get)

	return nil
}

// Get returns one page of approved entries, newest first. A cursor query
// parameter continues a previous page; the response carries next_cursor
// only while more pages remain.
func (s *Service) Get(c *fiber.Ctx) error {
	var cursor uint64
	if raw := c.Query("cursor"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "cursor must be a positive integer",
			})
		}

		cursor = parsed
	}

	rows, nextCursor, err := entry.ListPublic(s.db, cursor, entry.DefaultPublicLimit)
	if err != nil {
		return err
	}

	out := make([]PublicEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, ToPublic(row))
	}

	resp := fiber.Map{"entries": out}
	if nextCursor > 0 {
		resp["next_cursor"] = nextCursor
	}

	return c.JSON(resp)
}
