package login

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/GoGuestbook/GoGuestbook/internal/auth"
	"github.com/GoGuestbook/GoGuestbook/internal/config"
	"github.com/GoGuestbook/GoGuestbook/internal/db/models"
)

// noOpViews is a minimal Fiber Views engine used for tests.
// It writes the "error" field from the provided fiber.Map (if any)
// so tests can assert error messages rendered by handlers.
type noOpViews struct{}

func (noOpViews) Load() error { return nil }

func (noOpViews) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	if m, ok := data.(fiber.Map); ok {
		if v, exists := m["error"]; exists && v != nil {
			_, _ = io.WriteString(w, v.(string))
			return nil
		}
	}
	// write template name to have some content
	_, _ = io.WriteString(w, name)

	return nil
}

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{Views: noOpViews{}})
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite in-memory db: %v", err)
	}

	if err := models.Migrate(db); err != nil {
		t.Fatalf("failed to migrate models: %v", err)
	}

	return db
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Webserver.URL = "http://localhost"
	cfg.Webserver.Port = 3000
	cfg.Admin.Password = "correct-horse"

	return cfg
}

func performPost(t *testing.T, app *fiber.App, form url.Values) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, Path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}

	return resp
}

func TestGet_RendersLoginPage(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	app := newTestApp()

	var s Service
	if err := s.Init(app, cfg, db); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, Path, nil), -1)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestPost_Success_SetsCookieAndRedirects(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	cfg.DevMode = false // Secure cookie expected

	app := newTestApp()

	var s Service
	if err := s.Init(app, cfg, db); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	resp := performPost(t, app, url.Values{"password": {"correct-horse"}})

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302 Found, got %d", resp.StatusCode)
	}

	if loc := resp.Header.Get("Location"); loc != AdminPath {
		t.Fatalf("expected redirect to %s, got %s", AdminPath, loc)
	}

	setCookie := resp.Header.Get("Set-Cookie")
	if !strings.Contains(setCookie, auth.CookieName+"=") {
		t.Fatalf("expected session cookie, got %q", setCookie)
	}

	if !strings.Contains(strings.ToLower(setCookie), "secure") {
		t.Fatalf("expected Secure flag on cookie when DevMode=false, got %q", setCookie)
	}

	if !strings.Contains(strings.ToLower(setCookie), "httponly") {
		t.Fatalf("expected HttpOnly flag on cookie, got %q", setCookie)
	}

	// the issued cookie must verify under the configured secret
	token := setCookie[strings.Index(setCookie, "=")+1:]
	if idx := strings.Index(token, ";"); idx > 0 {
		token = token[:idx]
	}

	if _, err := auth.Verify(token, auth.SigningSecret(cfg)); err != nil {
		t.Fatalf("issued cookie does not verify: %v", err)
	}
}

func TestPost_Success_DevModeDisablesSecure(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	cfg.DevMode = true // Secure=false expected

	app := newTestApp()

	var s Service
	if err := s.Init(app, cfg, db); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	resp := performPost(t, app, url.Values{"password": {"correct-horse"}})

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302 Found, got %d", resp.StatusCode)
	}

	setCookie := resp.Header.Get("Set-Cookie")
	if strings.Contains(strings.ToLower(setCookie), "secure") {
		t.Fatalf("did not expect Secure flag when DevMode=true, got %q", setCookie)
	}
}

func TestPost_WrongPassword_RendersError(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	app := newTestApp()

	var s Service
	if err := s.Init(app, cfg, db); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	resp := performPost(t, app, url.Values{"password": {"wrong"}})

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 OK on render error page, got %d", resp.StatusCode)
	}

	if setCookie := resp.Header.Get("Set-Cookie"); setCookie != "" {
		t.Fatalf("failed login must not set a cookie, got %q", setCookie)
	}

	bodyBytes, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(bodyBytes), "Invalid password") {
		t.Fatalf("expected error message in body, got %q", string(bodyBytes))
	}
}

func TestPost_EmptyPassword_Fails(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	// operator never configured a password; login must fail closed
	cfg.Admin.Password = ""

	app := newTestApp()

	var s Service
	if err := s.Init(app, cfg, db); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	resp := performPost(t, app, url.Values{"password": {""}})

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 OK on render error page, got %d", resp.StatusCode)
	}

	if setCookie := resp.Header.Get("Set-Cookie"); setCookie != "" {
		t.Fatalf("empty-vs-empty must not authenticate, got cookie %q", setCookie)
	}
}
