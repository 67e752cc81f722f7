// Package submit implements the public entry submission endpoint.
package submit

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/GoGuestbook/GoGuestbook/internal/captcha"
	"github.com/GoGuestbook/GoGuestbook/internal/config"
	"github.com/GoGuestbook/GoGuestbook/internal/db/controller/entry"
	"github.com/GoGuestbook/GoGuestbook/internal/web/middleware/ratelimit"
)

const (
	// Path is the submission endpoint.
	Path = "/api/submit"

	// CaptchaField is the form field the Turnstile widget posts its
	// response token under.
	CaptchaField = "cf-turnstile-response"
)

// Service is the submission handler service.
type Service struct {
	cfg      *config.Config
	db       *gorm.DB
	verifier captcha.Verifier
	limiter  *ratelimit.Limiter
}

// Handler is the submission handler.
var Handler = Service{}

// Init initializes the submission handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, verifier captcha.Verifier) error {
	if app == nil || cfg == nil || db == nil || verifier == nil {
		return errors.New("app, cfg, db or verifier is nil")
	}

	s.cfg = cfg
	s.db = db
	s.verifier = verifier
	s.limiter = ratelimit.New(cfg.Webserver.SubmitRatePerMinute, cfg.Webserver.SubmitBurst)

	app.Post(Path, s.limiter.Handler(), s.Post)

	return nil
}

// Post handles one guestbook submission. Rejections are 4xx JSON with a
// readable reason; nothing partial is ever persisted.
func (s *Service) Post(c *fiber.Ctx) error {
	rt := config.Resolve(s.db, s.cfg)

	in := submission{
		name:         c.FormValue("name"),
		message:      c.FormValue("message"),
		site:         c.FormValue("site"),
		email:        c.FormValue("email"),
		captchaToken: c.FormValue(CaptchaField),
		remoteIP:     c.IP(),
	}

	e, rejected := validate(c.UserContext(), in, rt, s.verifier)
	if rejected != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": rejected.Error(),
		})
	}

	if err := entry.Insert(s.db, e); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":       e.ID,
		"approved": e.Approved,
	})
}
