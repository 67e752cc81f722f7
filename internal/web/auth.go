package web

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/GoGuestbook/GoGuestbook/internal/auth"
	"github.com/GoGuestbook/GoGuestbook/internal/config"
	"github.com/GoGuestbook/GoGuestbook/internal/web/handler/admin"
	"github.com/GoGuestbook/GoGuestbook/internal/web/handler/login"
)

// PageAuth creates Fiber middleware guarding the admin pages. Page
// routes redirect instead of returning 401: visitors without a valid
// session land on the login form, and a logged-in admin opening /login
// is bounced straight to the entries page.
func PageAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := c.Path()
		valid := auth.SessionValid(c, cfg)

		if strings.HasPrefix(p, admin.Path) && !valid {
			return c.Redirect(login.Path)
		}

		if p == login.Path && c.Method() == fiber.MethodGet && valid {
			return c.Redirect(admin.Path)
		}

		return c.Next()
	}
}
