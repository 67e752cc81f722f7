// Package widget serves the embeddable client script. The script is a
// text template parsed once at initialization and rendered per request
// with the resolved configuration, so third-party pages always see the
// current site key and captcha state.
package widget

import (
	"bytes"
	_ "embed"
	"errors"
	"text/template"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/GoGuestbook/GoGuestbook/internal/config"
)

// Path is the widget script endpoint.
const Path = "/client.js"

//go:embed client.js.tmpl
var clientScript string

// Service is the widget handler service.
type Service struct {
	cfg  *config.Config
	db   *gorm.DB
	tmpl *template.Template
}

// Handler is the widget handler.
var Handler = Service{}

// Init initializes the widget handler and parses the script template.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New("app, cfg or db is nil")
	}

	s.cfg = cfg
	s.db = db

	tmpl, err := template.New("client.js").Parse(clientScript)
	if err != nil {
		return err
	}

	s.tmpl = tmpl

	app.Get(Path, s.Get)

	return nil
}

type scriptData struct {
	BaseURL          string
	TurnstileEnabled bool
	SiteKey          string
}

// Get renders the widget script. The nocaptcha query parameter lets an
// embedding page opt out of the captcha widget; the server-side check
// still applies to submissions, only the client rendering changes.
func (s *Service) Get(c *fiber.Ctx) error {
	rt := config.Resolve(s.db, s.cfg)

	data := scriptData{
		BaseURL:          s.cfg.Webserver.URL,
		TurnstileEnabled: rt.TurnstileEnabled && c.Query("nocaptcha") == "",
		SiteKey:          rt.TurnstileSiteKey,
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/javascript; charset=utf-8")
	c.Set(fiber.HeaderCacheControl, "public, max-age=300")

	return c.Send(buf.Bytes())
}
