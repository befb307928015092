package v1_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"go-cvbuilder-backend/internal/cache"
	v1 "go-cvbuilder-backend/internal/delivery/http/v1"
	"go-cvbuilder-backend/internal/domain"
	"go-cvbuilder-backend/pkg/token"
)

type noUserRepo struct{}

func (noUserRepo) Create(ctx context.Context, user *domain.User, passwordHash string) error {
	return errors.New("not implemented")
}

func (noUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return nil, nil
}

func (noUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, nil
}

func (noUserRepo) GetPasswordHash(ctx context.Context, email string) (string, error) {
	return "", errors.New("not implemented")
}

func (noUserRepo) Update(ctx context.Context, user *domain.User) error {
	return errors.New("not implemented")
}

type noSessions struct{}

func (noSessions) Get(ctx context.Context, sessionID string) (*cache.Session, error) {
	return nil, nil
}

func TestRouterWithoutAIService(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := v1.NewRouter(v1.RouterDeps{
		Users:       noUserRepo{},
		Sessions:    noSessions{},
		Tokens:      token.NewManager("test-secret"),
		Redis:       goredis.NewClient(&goredis.Options{}),
		FrontendURL: "http://localhost:3000",
	})

	t.Run("health stays reachable", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("meta stays reachable", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/meta", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("ai routes are not registered", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/ai/analyze", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
