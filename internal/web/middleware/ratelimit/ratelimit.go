// Package ratelimit provides a per-IP token bucket for the public
// submission endpoint.
package ratelimit

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	defaultPerMinute = 6
	defaultBurst     = 3

	// visitorTTL is how long an idle visitor entry survives before the
	// next prune pass drops it.
	visitorTTL = 10 * time.Minute

	// pruneThreshold triggers a prune pass when the visitor map grows
	// past this many entries.
	pruneThreshold = 1024
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter tracks one token bucket per client IP.
type Limiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     rate.Limit
	burst    int
}

// New creates a Limiter allowing perMinute requests with the given burst
// per IP. Zero or negative knobs fall back to the defaults.
func New(perMinute, burst int) *Limiter {
	if perMinute <= 0 {
		perMinute = defaultPerMinute
	}

	if burst <= 0 {
		burst = defaultBurst
	}

	return &Limiter{
		visitors: make(map[string]*visitor),
		rate:     rate.Limit(float64(perMinute) / 60.0),
		burst:    burst,
	}
}

// Handler returns the Fiber middleware enforcing the limit.
func (l *Limiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !l.allow(c.IP()) {
			log.Warn().Str("ip", c.IP()).Msg("submission rate limit exceeded")

			// seconds until one token is refilled
			retryAfter := int(math.Ceil(1.0 / float64(l.rate)))
			if retryAfter < 1 {
				retryAfter = 1
			}

			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))

			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "too many submissions, please try again later",
			})
		}

		return c.Next()
	}
}

func (l *Limiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[ip]
	if !ok {
		if len(l.visitors) >= pruneThreshold {
			l.prune()
		}

		v = &visitor{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.visitors[ip] = v
	}

	v.lastSeen = time.Now()

	return v.limiter.Allow()
}

// prune drops idle visitors. Caller holds the lock.
func (l *Limiter) prune() {
	cutoff := time.Now().Add(-visitorTTL)
	for ip, v := range l.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(l.visitors, ip)
		}
	}
}
