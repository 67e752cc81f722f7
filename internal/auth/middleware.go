package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoGuestbook/GoGuestbook/internal/config"
)

// RequireSession creates Fiber middleware that gates admin API routes.
// A missing or invalid session cookie yields a 401 JSON error, never a
// redirect; the redirect UX is reserved for the admin page routes.
func RequireSession(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(CookieName)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		if _, err := Verify(token, SigningSecret(cfg)); err != nil {
			log.Warn().Str("path", c.Path()).Msg("rejected invalid session token")

			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		return c.Next()
	}
}

// SessionValid reports whether the request carries a valid session cookie.
// Used by the page middleware and by handlers that only need the boolean.
func SessionValid(c *fiber.Ctx, cfg *config.Config) bool {
	token := c.Cookies(CookieName)
	if token == "" {
		return false
	}

	_, err := Verify(token, SigningSecret(cfg))

	return err == nil
}
