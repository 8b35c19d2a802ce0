package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"storeRating/pkg/logger"
	"storeRating/pkg/metrics"

	jsonres "storeRating/pkg/response"

	"github.com/labstack/echo/v4"
)

// RateLimiter counts a hit for key and reports whether it is within quota.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, int, error)
	Limit() int
}

// RateLimit throttles per client IP. Limiter failures reject the request.
func RateLimit(limiter RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
			defer cancel()

			allowed, remaining, err := limiter.Allow(ctx, c.RealIP())
			if err != nil {
				logger.Error("Rate limiter unavailable", err)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(limiter.Limit()))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if !allowed {
				metrics.RateLimitedTotal.Inc()
				return c.JSON(http.StatusTooManyRequests, jsonres.Error(
					"TOO_MANY_REQUESTS", "Too many requests, please try again later", nil,
				))
			}

			return next(c)
		}
	}
}
