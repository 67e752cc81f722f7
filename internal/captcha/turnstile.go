// Package captcha talks to the Cloudflare Turnstile verification oracle.
package captcha

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// VerifyURL is the Turnstile siteverify endpoint.
	VerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

	// requestTimeout bounds the only outbound call this service makes.
	// Oracle non-response is treated as verification failure by callers.
	requestTimeout = 10 * time.Second
)

// Verifier is the oracle contract the submission validator consults.
// Implementations return whether the challenge token passed; any error
// must be treated as a failed verification (fail closed).
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) (bool, error)
}

// Client verifies Turnstile response tokens server-side.
type Client struct {
	httpClient *http.Client
	secret     string
	endpoint   string
}

// New creates a Turnstile client with the given shared secret.
func New(secret string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		secret:     secret,
		endpoint:   VerifyURL,
	}
}

// NewWithEndpoint creates a client against a custom siteverify endpoint.
// Used by tests.
func NewWithEndpoint(secret, endpoint string) *Client {
	c := New(secret)
	c.endpoint = endpoint

	return c
}

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify forwards the visitor's response token to the oracle together
// with the configured secret and reports the oracle's verdict.
func (c *Client) Verify(ctx context.Context, token, remoteIP string) (bool, error) {
	form := url.Values{}
	form.Set("secret", c.secret)
	form.Set("response", token)

	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.endpoint,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return false, err
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, err
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	var verdict siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return false, err
	}

	return verdict.Success, nil
}
