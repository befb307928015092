package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-cvbuilder-backend/internal/cache"
	"go-cvbuilder-backend/internal/delivery/http/response"
	"go-cvbuilder-backend/internal/domain"
	"go-cvbuilder-backend/pkg/token"
)

// SessionReader resolves a session ID to its server-side record.
// A nil session means signed out or expired.
type SessionReader interface {
	Get(ctx context.Context, sessionID string) (*cache.Session, error)
}

// AuthMiddleware verifies the bearer access token, checks that its session
// is still live, and loads the signed-in user onto the request context.
// Downstream code resolves the principal with domain.UserIDFromContext,
// never from the token directly.
func AuthMiddleware(tokens *token.Manager, users domain.UserRepository, sessions SessionReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var tokenString string

		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else {
			cookie, err := c.Cookie("auth_token")
			if err == nil && cookie != "" {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		claims, err := tokens.Verify(tokenString, token.TypeAccess)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		// Sign-out deletes the session record, so a structurally valid
		// access token is rejected once its session is gone.
		session, err := sessions.Get(c.Request.Context(), claims.SessionID)
		if err != nil || session == nil {
			response.Error(c, http.StatusUnauthorized, "Session expired", nil)
			c.Abort()
			return
		}

		// The premium flag gates templates and quotas, so it is read
		// fresh from the database rather than trusted from the token.
		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil || user == nil {
			response.Error(c, http.StatusUnauthorized, "User not found", nil)
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		ctx = context.WithValue(ctx, domain.KeyUserID, user.ID)
		ctx = context.WithValue(ctx, domain.KeyUserEmail, user.Email)
		ctx = context.WithValue(ctx, domain.KeyPremium, user.Premium)
		ctx = context.WithValue(ctx, domain.KeySessionID, claims.SessionID)
		c.Request = c.Request.WithContext(ctx)

		c.Set(string(domain.KeyUserID), user.ID)
		c.Set(string(domain.KeyPremium), user.Premium)

		c.Next()
	}
}
