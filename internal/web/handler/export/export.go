// Package export serves the public data dumps. Both formats contain
// approved entries only and never include the email field.
package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/GoGuestbook/GoGuestbook/internal/config"
	"github.com/GoGuestbook/GoGuestbook/internal/db/controller/entry"
	"github.com/GoGuestbook/GoGuestbook/internal/web/handler/entries"
)

const (
	// JSONPath is the JSON export endpoint.
	JSONPath = "/data.json"

	// CSVPath is the CSV export endpoint.
	CSVPath = "/data.csv"
)

// Service is the export handler service.
type Service struct {
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the export handler.
var Handler = Service{}

// Init initializes the export handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New("app, cfg or db is nil")
	}

	s.cfg = cfg
	s.db = db

	app.Get(JSONPath, s.JSON)
	app.Get(CSVPath, s.CSV)

	return nil
}

// JSON dumps all approved entries as a JSON array.
func (s *Service) JSON(c *fiber.Ctx) error {
	rows, err := entry.ListApproved(s.db)
	if err != nil {
		return err
	}

	out := make([]entries.PublicEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, entries.ToPublic(row))
	}

	return c.JSON(out)
}

// CSV dumps all approved entries as CSV with a header row.
func (s *Service) CSV(c *fiber.Ctx) error {
	rows, err := entry.ListApproved(s.db)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"id", "name", "message", "site", "created_at"}); err != nil {
		return err
	}

	for _, row := range rows {
		site := ""
		if row.Site != nil {
			site = *row.Site
		}

		record := []string{
			strconv.FormatUint(row.ID, 10),
			row.Name,
			row.Message,
			site,
			row.CreatedAt.UTC().Format(time.RFC3339),
		}

		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="guestbook.csv"`)

	return c.Send(buf.Bytes())
}
