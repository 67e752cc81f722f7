package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoGuestbook/GoGuestbook/internal/captcha"
	"github.com/GoGuestbook/GoGuestbook/internal/config"
	fiberlogger "github.com/GoGuestbook/GoGuestbook/internal/logger/adapter/fiber"
	"github.com/GoGuestbook/GoGuestbook/internal/web/handler/admin"
	"github.com/GoGuestbook/GoGuestbook/internal/web/handler/entries"
	"github.com/GoGuestbook/GoGuestbook/internal/web/handler/export"
	"github.com/GoGuestbook/GoGuestbook/internal/web/handler/home"
	"github.com/GoGuestbook/GoGuestbook/internal/web/handler/login"
	"github.com/GoGuestbook/GoGuestbook/internal/web/handler/logout"
	"github.com/GoGuestbook/GoGuestbook/internal/web/handler/moderate"
	"github.com/GoGuestbook/GoGuestbook/internal/web/handler/submit"
	"github.com/GoGuestbook/GoGuestbook/internal/web/handler/widget"
)

// Service represents the web service.
type Service struct {
	App *fiber.App
	cfg *config.Config
	db  *gorm.DB
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the guestbook.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	if s.cfg.Webserver.ShutDownTime > 0 {
		log.Info().Msgf(
			"graceful shutdown: waiting %d seconds for in-flight requests",
			s.cfg.Webserver.ShutDownTime,
		)

		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// errorHandler turns every handler error into the JSON error envelope.
// Known fiber errors keep their status code, everything else becomes a
// plain 500.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// publicPaths are the endpoints third-party pages are expected to call
// cross-origin; they get a permissive CORS policy, everything else
// stays same-origin.
var publicPaths = []string{
	submit.Path,
	entries.Path,
	widget.Path,
	export.JSONPath,
	export.CSVPath,
}

func mustInit(name string, err error) {
	if err != nil {
		log.Fatal().Err(err).Str("handler", name).Msg("handler init failed")
	}
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB, verifier captcha.Verifier) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	httpFS := http.FS(templateEmbedFS{embeddedTemplates})
	templateEngine := html.NewFileSystem(httpFS, ".gohtml")

	// in dev mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("dev mode enabled: using local filesystem for templates")
	}

	// Add template helper functions
	templateEngine.AddFunc("fmtTime", func(t time.Time) string {
		return t.UTC().Format("2006-01-02 15:04")
	})

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        "GoGuestbook",
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			Views:          templateEngine,
			ErrorHandler:   errorHandler,
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New())
	}

	// access logging
	app.Use(fiberlogger.New(fiberlogger.Config{Config: cfg.Log}))

	// the embeddable surface is open to any origin
	corsOpen := cors.New(cors.Config{AllowOrigins: "*"})
	for _, p := range publicPaths {
		app.Use(p, corsOpen)
	}

	// serve embedded static files
	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
				Browse:     cfg.Webserver.BrowseStatic,
			},
		),
	)

	// page-level auth: redirects, not JSON errors
	app.Use(PageAuth(cfg))

	// init web service
	service := &Service{
		cfg: cfg,
		App: app,
		db:  db,
	}

	// init handlers (they register their own routes and guards)
	mustInit("home", home.Handler.Init(app, cfg, db))
	mustInit("submit", submit.Handler.Init(app, cfg, db, verifier))
	mustInit("entries", entries.Handler.Init(app, cfg, db))
	mustInit("moderate", moderate.Handler.Init(app, cfg, db))
	mustInit("login", login.Handler.Init(app, cfg, db))
	mustInit("admin", admin.Handler.Init(app, cfg, db))
	mustInit("export", export.Handler.Init(app, cfg, db))
	mustInit("widget", widget.Handler.Init(app, cfg, db))
	logout.Handler.Init(app, cfg)

	// everything unrouted is a JSON 404
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "not found",
		})
	})

	return service
}
