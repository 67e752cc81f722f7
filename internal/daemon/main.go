// Package daemon wires the storage, captcha and web layers together and
// owns the process lifecycle.
package daemon

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoGuestbook/GoGuestbook/internal/auth"
	"github.com/GoGuestbook/GoGuestbook/internal/captcha"
	"github.com/GoGuestbook/GoGuestbook/internal/config"
	"github.com/GoGuestbook/GoGuestbook/internal/db/models"
	"github.com/GoGuestbook/GoGuestbook/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start starts the Daemon's web service and blocks until shutdown.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	db, err := gorm.Open(sqlite.Open(cfg.DB.Path), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	if err = models.Migrate(db); err != nil {
		panic("failed to migrate database")
	}

	if auth.SigningSecret(cfg) == auth.InsecureFallbackSecret {
		log.Warn().Msg("no admin password or session secret configured, sessions use an insecure built-in secret")
	}

	verifier := captcha.New(cfg.Turnstile.SecretKey)

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, db, verifier),
	}
}
