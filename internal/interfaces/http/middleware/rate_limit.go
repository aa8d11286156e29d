// internal/interfaces/http/middleware/rate_limit.go
package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/your-org/storefront-backend/internal/config"
	redisdb "github.com/your-org/storefront-backend/internal/infrastructure/database/redis"
)

// RateLimit implements per-IP rate limiting backed by Redis. When
// Redis is unreachable the request is allowed through.
func RateLimit(cfg *config.Config, cache *redisdb.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		key := fmt.Sprintf("rate_limit:%s", clientIP)

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		val, err := cache.Get(ctx, key)
		if err != nil && !errors.Is(err, redis.Nil) {
			c.Next()
			return
		}
		current, _ := strconv.Atoi(val)

		if current >= cfg.Security.RateLimitPerMinute {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"retry_after": 60,
			})
			c.Abort()
			return
		}

		count, err := cache.Incr(ctx, key)
		if err == nil && count == 1 {
			// First hit in the window starts the clock.
			_ = cache.Expire(ctx, key, time.Minute)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Security.RateLimitPerMinute))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(cfg.Security.RateLimitPerMinute-current-1))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Minute).Unix(), 10))

		c.Next()
	}
}
