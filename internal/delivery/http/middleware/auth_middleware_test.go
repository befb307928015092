package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-cvbuilder-backend/internal/cache"
	"go-cvbuilder-backend/internal/delivery/http/middleware"
	"go-cvbuilder-backend/internal/domain"
	"go-cvbuilder-backend/pkg/token"
)

type stubUserRepo struct {
	user *domain.User
}

func (s *stubUserRepo) Create(ctx context.Context, user *domain.User, passwordHash string) error {
	return errors.New("not implemented")
}

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, nil
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, nil
}

func (s *stubUserRepo) GetPasswordHash(ctx context.Context, email string) (string, error) {
	return "", errors.New("not implemented")
}

func (s *stubUserRepo) Update(ctx context.Context, user *domain.User) error {
	return errors.New("not implemented")
}

type stubSessions struct {
	live map[string]cache.Session
}

func (s *stubSessions) Get(ctx context.Context, sessionID string) (*cache.Session, error) {
	sess, ok := s.live[sessionID]
	if !ok {
		return nil, nil
	}
	return &sess, nil
}

func newProtectedRouter(tokens *token.Manager, users domain.UserRepository, sessions middleware.SessionReader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", middleware.AuthMiddleware(tokens, users, sessions), func(c *gin.Context) {
		c.String(http.StatusOK, domain.UserIDFromContext(c.Request.Context()))
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	tokens := token.NewManager("test-secret")
	user := &domain.User{ID: "user1", Email: "a@b.com", Premium: false}

	t.Run("allows a valid token with a live session", func(t *testing.T) {
		pair, err := tokens.NewPair(user.ID)
		require.NoError(t, err)

		sessions := &stubSessions{live: map[string]cache.Session{
			pair.SessionID: {UserID: user.ID, CreatedAt: time.Now()},
		}}
		r := newProtectedRouter(tokens, &stubUserRepo{user: user}, sessions)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user1", w.Body.String())
	})

	t.Run("rejects a valid token once its session is deleted", func(t *testing.T) {
		pair, err := tokens.NewPair(user.ID)
		require.NoError(t, err)

		// Signed out: the session record is gone but the access
		// token itself has not expired.
		sessions := &stubSessions{live: map[string]cache.Session{}}
		r := newProtectedRouter(tokens, &stubUserRepo{user: user}, sessions)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects a missing token", func(t *testing.T) {
		r := newProtectedRouter(tokens, &stubUserRepo{user: user}, &stubSessions{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects a token for an unknown user", func(t *testing.T) {
		pair, err := tokens.NewPair("ghost")
		require.NoError(t, err)

		sessions := &stubSessions{live: map[string]cache.Session{
			pair.SessionID: {UserID: "ghost", CreatedAt: time.Now()},
		}}
		r := newProtectedRouter(tokens, &stubUserRepo{user: user}, sessions)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
