// Package login implements the administrator login page.
package login

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoGuestbook/GoGuestbook/internal/auth"
	"github.com/GoGuestbook/GoGuestbook/internal/config"
)

const (
	// Path is the path to the login page.
	Path = "/login"

	// AdminPath is where a successful login lands.
	AdminPath = "/admin"
)

// Service is the login handler service.
type Service struct {
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New("app, cfg or db is nil")
	}

	s.cfg = cfg
	s.db = db

	app.Get(Path, s.Get)
	app.Post(Path, s.Post)

	return nil
}

// Get handles the login page rendering. The page middleware already
// redirects authenticated visitors to the admin page.
func (s *Service) Get(c *fiber.Ctx) error {
	rt := config.Resolve(s.db, s.cfg)

	return c.Render("login", fiber.Map{
		"title": rt.SiteTitle,
	})
}

// Post handles the login form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	password := c.FormValue("password")

	if !auth.CheckPassword(password, s.cfg.Admin.Password) {
		log.Warn().Str("ip", c.IP()).Msg("failed admin login attempt")

		rt := config.Resolve(s.db, s.cfg)

		return c.Render("login", fiber.Map{
			"title": rt.SiteTitle,
			"error": "Invalid password",
		})
	}

	token := auth.Issue(auth.SigningSecret(s.cfg))

	cookieSettings := &fiber.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   auth.CookieMaxAge,
		Secure:   true,
		HTTPOnly: true,
		SameSite: "Lax",
	}

	if s.cfg.DevMode {
		cookieSettings.Secure = false
	}

	c.Cookie(cookieSettings)

	return c.Redirect(AdminPath)
}
