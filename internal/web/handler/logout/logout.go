// Package logout clears the admin session cookie.
package logout

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoGuestbook/GoGuestbook/internal/auth"
	"github.com/GoGuestbook/GoGuestbook/internal/config"
	"github.com/GoGuestbook/GoGuestbook/internal/web/handler"
	"github.com/GoGuestbook/GoGuestbook/internal/web/handler/login"
	"github.com/GoGuestbook/GoGuestbook/internal/web/middleware/origin"
)

// Path is the logout endpoint.
const Path = "/logout"

// Service is the logout handler service.
type Service struct {
	cfg *config.Config
}

// Handler is the logout handler.
var Handler = Service{}

// Init initializes the logout handler. Logout is state-changing, so it
// carries the same-origin confirmation, but needs no valid session: the
// worst a forger can achieve is logging the admin out.
func (s *Service) Init(app *fiber.App, cfg *config.Config) {
	if app == nil || cfg == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg

	app.Post(Path, origin.RequireSameOrigin(), s.Logout)
}

// Logout clears the session cookie by reissuing it pre-expired. The
// token itself stays valid until its expiry elapses; there is no
// server-side revocation list.
func (s *Service) Logout(c *fiber.Ctx) error {
	cookieSettings := &fiber.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   true,
		HTTPOnly: true,
		SameSite: "Lax",
	}

	if s.cfg.DevMode {
		cookieSettings.Secure = false
	}

	c.Cookie(cookieSettings)

	return c.Redirect(login.Path)
}
