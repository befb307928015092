package middleware

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-cvbuilder-backend/internal/cache"
	"go-cvbuilder-backend/internal/delivery/http/response"
	"go-cvbuilder-backend/internal/domain"
)

// AIQuota enforces the per-user daily cap on AI requests. The cap
// depends on the premium flag set by AuthMiddleware, so AIQuota must
// run after it. The counter lives in Redis and resets at UTC midnight.
func AIQuota(counter *cache.QuotaCounter, limits domain.AIUsageLimits) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := domain.UserIDFromContext(c.Request.Context())
		if userID == "" {
			response.Error(c, http.StatusUnauthorized, "Not signed in", nil)
			c.Abort()
			return
		}

		premium := c.GetBool(string(domain.KeyPremium))
		limit := limits.ForPremium(premium)

		used, err := counter.Consume(c.Request.Context(), userID)
		if err != nil {
			// Quota accounting failing must not take AI down with it.
			slog.Error("ai quota check failed", "user_id", userID, "error", err)
			c.Next()
			return
		}

		remaining := limit - used
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-AI-Quota-Limit", strconv.Itoa(limit))
		c.Header("X-AI-Quota-Remaining", strconv.Itoa(remaining))

		if used > limit {
			response.Error(c, http.StatusTooManyRequests, "Daily AI request limit reached. Try again tomorrow.", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
