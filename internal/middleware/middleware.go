package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RequestLogger logs every HTTP request with method, path, status and latency.
func RequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			latency := time.Since(start)
			logger.Info("HTTP request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", latency),
			)
			return err
		}
	}
}

// ipLimiters tracks a token-bucket limiter per client IP. A cleanup goroutine
// drops limiters whose bucket has refilled completely, so idle clients do not
// accumulate in the map.
type ipLimiters struct {
	mu     sync.RWMutex
	limits map[string]*rate.Limiter
	r      rate.Limit
	b      int
}

func newIPLimiters(r rate.Limit, b int) *ipLimiters {
	l := &ipLimiters{
		limits: make(map[string]*rate.Limiter),
		r:      r,
		b:      b,
	}
	go l.cleanup()
	return l
}

func (l *ipLimiters) get(ip string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limits[ip]
	l.mu.RUnlock()

	if !exists {
		l.mu.Lock()
		limiter, exists = l.limits[ip]
		if !exists {
			limiter = rate.NewLimiter(l.r, l.b)
			l.limits[ip] = limiter
		}
		l.mu.Unlock()
	}
	return limiter
}

func (l *ipLimiters) cleanup() {
	ticker := time.NewTicker(3 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		for ip, limiter := range l.limits {
			if limiter.TokensAt(time.Now()) >= float64(limiter.Burst()) {
				delete(l.limits, ip)
			}
		}
		l.mu.Unlock()
	}
}

// RateLimiter rejects clients exceeding r requests per second (burst b)
// with 429 Too Many Requests.
func RateLimiter(r rate.Limit, b int) echo.MiddlewareFunc {
	limiters := newIPLimiters(r, b)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiters.get(c.RealIP()).Allow() {
				return c.JSON(http.StatusTooManyRequests, map[string]string{"errors": "Too many requests"})
			}
			return next(c)
		}
	}
}
