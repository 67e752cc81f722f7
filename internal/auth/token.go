// Package auth implements the self-certifying admin session credential.
//
// A session is never stored server-side. The token is an opaque random
// payload plus a keyed signature over it; validity is recomputed on every
// request by re-deriving the expected signature. There is exactly one
// principal: any token with a valid signature proves "is the configured
// administrator".
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"

	"github.com/GoGuestbook/GoGuestbook/internal/config"
	"github.com/GoGuestbook/GoGuestbook/internal/uniuri"
)

const (
	// CookieName of the session cookie.
	CookieName = "session"

	// CookieMaxAge is the fixed session lifetime: 7 days, in seconds.
	CookieMaxAge = 7 * 24 * 60 * 60

	// tokenDelimiter separates payload and signature. The payload alphabet
	// is alphanumeric and the signature is URL-safe base64, so neither side
	// can ever produce a dot.
	tokenDelimiter = "."

	payloadLen = 32

	// InsecureFallbackSecret is the last resort of the signing secret
	// chain, kept for parity with existing deployments that configured
	// neither a session secret nor an admin password. daemon.New logs a
	// warning at startup when this value ends up in use.
	InsecureFallbackSecret = "guestbook-insecure-default-secret"
)

// SigningSecret picks the session signing secret: the dedicated session
// secret if configured, else the admin password, else the insecure
// hardcoded default.
func SigningSecret(cfg *config.Config) string {
	if cfg.Admin.SessionSecret != "" {
		return cfg.Admin.SessionSecret
	}

	if cfg.Admin.Password != "" {
		return cfg.Admin.Password
	}

	return InsecureFallbackSecret
}

// Issue creates a fresh session token signed with the given secret.
func Issue(secret string) string {
	payload := uniuri.NewLen(payloadLen)
	return payload + tokenDelimiter + sign(payload, secret)
}

// Verify splits the token, re-derives the expected signature over the
// payload and returns the payload as the session identifier when the
// signatures match exactly. Everything else is ErrInvalidToken.
func Verify(token, secret string) (string, error) {
	payload, signature, found := strings.Cut(token, tokenDelimiter)
	if !found || payload == "" || signature == "" {
		return "", ErrInvalidToken
	}

	if !hmac.Equal([]byte(sign(payload, secret)), []byte(signature)) {
		return "", ErrInvalidToken
	}

	return payload, nil
}

func sign(payload, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))

	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
