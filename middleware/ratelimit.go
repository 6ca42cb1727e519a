package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"storefront/config"
	"storefront/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RateLimitMiddleware enforces a fixed window per client IP per route using
// redis INCR. When redis is not configured or unreachable the limiter fails
// open; availability of the storefront does not depend on the cache.
func RateLimitMiddleware(limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		rdb := config.RedisClient
		if rdb == nil {
			c.Next()
			return
		}

		ctx := context.Background()
		key := fmt.Sprintf("ratelimit:%s:%s", c.FullPath(), c.ClientIP())

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Warn().Err(err).Msg("rate limiter unavailable, allowing request")
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(ctx, key, window)
		}

		if count > int64(limit) {
			c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
				Success: false,
				Message: "Too many requests, try again later",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
