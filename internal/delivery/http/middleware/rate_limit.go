package middleware

import (
	"strconv"
	"sync"
	"time"

	"wow-campus/internal/i18n"

	"github.com/gofiber/fiber/v3"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	lim  *rate.Limiter
	seen time.Time
}

// IPRateLimiter keeps one token bucket per client IP.
type IPRateLimiter struct {
	mu sync.Mutex
	m  map[string]*visitor
	r  rate.Limit
	b  int

	now func() time.Time
}

func NewIPRateLimiter(reqPerSec float64, burst int) *IPRateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &IPRateLimiter{
		m:   make(map[string]*visitor),
		r:   rate.Limit(reqPerSec),
		b:   burst,
		now: time.Now,
	}
}

func (l *IPRateLimiter) limiterFor(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if v, ok := l.m[ip]; ok {
		v.seen = now
		return v.lim
	}
	l.sweep(now)
	v := &visitor{lim: rate.NewLimiter(l.r, l.b), seen: now}
	l.m[ip] = v
	return v.lim
}

// sweep drops idle visitors; caller holds mu.
func (l *IPRateLimiter) sweep(now time.Time) {
	for ip, v := range l.m {
		if now.Sub(v.seen) > limiterIdleTTL {
			delete(l.m, ip)
		}
	}
}

func (l *IPRateLimiter) Allow(ip string) bool {
	return l.limiterFor(ip).AllowN(l.now(), 1)
}

func (l *IPRateLimiter) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if l.r <= 0 || l.Allow(c.IP()) {
			return c.Next()
		}
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(1))
		return NewAppError(fiber.StatusTooManyRequests, Localizer(c).T(i18n.KeyTooManyRequests), nil, nil)
	}
}
