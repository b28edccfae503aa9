package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/deppfellow/storefront/internal/errs"
	"github.com/deppfellow/storefront/internal/server"
)

const (
	rateLimitKeyPrefix = "ratelimit:"

	RateLimitLimitHeader     = "X-RateLimit-Limit"
	RateLimitRemainingHeader = "X-RateLimit-Remaining"
	RetryAfterHeader         = "Retry-After"
)

// RateLimitMiddleware is a fixed window limiter keyed by client IP and
// stored in Redis, so every instance shares the same counters.
type RateLimitMiddleware struct {
	server  *server.Server
	redis   redis.Cmdable
	now     func() time.Time
	Skipper middleware.Skipper
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	r := &RateLimitMiddleware{
		server: s,
		now:    time.Now,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/status"
		},
	}
	if s.Redis != nil {
		r.redis = s.Redis
	}
	return r
}

// Limit rejects requests past RateLimit.Requests per RateLimit.Window with
// a 429. When Redis is unreachable requests are let through.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	cfg := r.server.Config.RateLimit

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if !cfg.Enabled || r.redis == nil {
			return next
		}

		return func(c echo.Context) error {
			if r.Skipper != nil && r.Skipper(c) {
				return next(c)
			}

			count, retryAfter, err := r.hit(c.Request().Context(), c.RealIP(), cfg.Window)
			if err != nil {
				GetLogger(c).Warn().
					Err(err).
					Msg("rate limiter unavailable, allowing request")
				return next(c)
			}

			remaining := int64(cfg.Requests) - count
			if remaining < 0 {
				remaining = 0
			}

			header := c.Response().Header()
			header.Set(RateLimitLimitHeader, strconv.Itoa(cfg.Requests))
			header.Set(RateLimitRemainingHeader, strconv.FormatInt(remaining, 10))

			if count > int64(cfg.Requests) {
				header.Set(RetryAfterHeader, strconv.Itoa(int(retryAfter.Seconds())))
				r.RecordRateLimitHit(c.Path())

				GetLogger(c).Warn().
					Int64("count", count).
					Int("limit", cfg.Requests).
					Msg("rate limit exceeded")

				return errs.NewTooManyRequestsError("Too many requests, please try again later")
			}

			return next(c)
		}
	}
}

// hit counts a request in the current window and returns the count and the
// time left until the window resets.
func (r *RateLimitMiddleware) hit(ctx context.Context, clientIP string, window time.Duration) (int64, time.Duration, error) {
	now := r.now()
	windowStart := now.Truncate(window)
	key := fmt.Sprintf("%s%s:%d", rateLimitKeyPrefix, clientIP, windowStart.Unix())

	var incr *redis.IntCmd
	_, err := r.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, window)
		return nil
	})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count request: %w", err)
	}

	retryAfter := windowStart.Add(window).Sub(now)
	if retryAfter < time.Second {
		retryAfter = time.Second
	}

	return incr.Val(), retryAfter, nil
}

// RecordRateLimitHit sends a RateLimitHit custom event to New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}
