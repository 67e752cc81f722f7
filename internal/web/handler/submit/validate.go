package submit

import (
	"context"
	"html"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/GoGuestbook/GoGuestbook/internal/captcha"
	"github.com/GoGuestbook/GoGuestbook/internal/config"
	"github.com/GoGuestbook/GoGuestbook/internal/db/models"
)

// Enforced input ceilings. The rejection messages state these numbers.
const (
	maxNameLen    = 100
	maxMessageLen = 2000
	maxSiteLen    = 255
	maxEmailLen   = 255
)

// stripPolicy removes every HTML tag from submitted text.
var stripPolicy = bluemonday.StrictPolicy() //nolint:gochecknoglobals

// RejectionError carries the human-readable reason a submission was
// refused. It always surfaces as a 4xx, never a 500.
type RejectionError struct {
	Reason string
}

func (e *RejectionError) Error() string {
	return e.Reason
}

func reject(reason string) (*models.Entry, *RejectionError) {
	return nil, &RejectionError{Reason: reason}
}

// submission is the raw form input of one guestbook entry.
type submission struct {
	name         string
	message      string
	site         string
	email        string
	captchaToken string
	remoteIP     string
}

// stripTags drops HTML tags and resolves the entities the sanitizer
// escapes, so plain text like "a < b" survives unchanged.
func stripTags(s string) string {
	return html.UnescapeString(stripPolicy.Sanitize(s))
}

// validate applies the submission rules in order, first failure wins:
// trim and blank-to-null, length ceilings, site URL scheme, required
// fields, then the captcha oracle (skipped entirely when disabled).
// A valid submission yields an entry whose Approved state follows the
// moderation flag.
func validate(
	ctx context.Context,
	in submission,
	rt config.Runtime,
	verifier captcha.Verifier,
) (*models.Entry, *RejectionError) {
	name := strings.TrimSpace(stripTags(in.name))
	message := strings.TrimSpace(stripTags(in.message))
	site := strings.TrimSpace(in.site)
	email := strings.TrimSpace(in.email)

	if len(name) > maxNameLen {
		return reject("name must be at most 100 characters")
	}

	if len(message) > maxMessageLen {
		return reject("message must be at most 2000 characters")
	}

	if len(site) > maxSiteLen {
		return reject("site must be at most 255 characters")
	}

	if len(email) > maxEmailLen {
		return reject("email must be at most 255 characters")
	}

	// a present site must be an absolute http(s) URL; anything else,
	// javascript: included, is an injection vector in later rendering
	if site != "" {
		parsed, err := url.Parse(site)
		if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			return reject("site must be an absolute http or https URL")
		}
	}

	if name == "" {
		return reject("name is required")
	}

	if message == "" {
		return reject("message is required")
	}

	if rt.TurnstileEnabled {
		if in.captchaToken == "" {
			return reject("captcha token is required")
		}

		ok, err := verifier.Verify(ctx, in.captchaToken, in.remoteIP)
		if err != nil || !ok {
			// oracle unreachable counts as failed verification
			return reject("captcha verification failed")
		}
	}

	e := &models.Entry{
		Name:     name,
		Message:  message,
		Approved: !rt.RequireModeration,
	}

	if site != "" {
		e.Site = &site
	}

	if email != "" {
		e.Email = &email
	}

	return e, nil
}
