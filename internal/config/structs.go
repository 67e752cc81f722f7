package config

import (
	"time"

	"github.com/GoGuestbook/GoGuestbook/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Webserver Webserver
	Admin     Admin
	Turnstile Turnstile
	Guestbook Guestbook
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic   bool    // enable static file browsing (for development purposes only)
	DisableRecover bool    // disable recover middleware
	Domain         string  // domain name for the webserver
	Port           int     // listening port for the webserver
	ShutDownTime   int     // wait time for shutdown
	URL            string  // base url for the webserver
	Session        Session // session settings

	SubmitRatePerMinute int // per-IP entry submissions allowed per minute (0 = default)
	SubmitBurst         int // per-IP submission burst size (0 = default)
}

// Admin holds the credentials of the single administrator principal.
// Both values come from the environment layer and are never persisted.
type Admin struct {
	Password      string // admin login password
	SessionSecret string // dedicated session signing secret, falls back to Password
}

// Turnstile holds the CAPTCHA oracle keys and the compiled-in default
// for the enabled flag. The enabled flag and site key can be shadowed by
// the settings overlay; the secret key can not.
type Turnstile struct {
	Enabled   bool
	SiteKey   string
	SecretKey string
}

// Guestbook holds compiled-in defaults for the public site. Every field
// can be shadowed by the settings overlay.
type Guestbook struct {
	SiteTitle         string
	RequireModeration bool
	AllowIndexing     bool
}
