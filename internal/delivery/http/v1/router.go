package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	"go-cvbuilder-backend/internal/cache"
	"go-cvbuilder-backend/internal/delivery/http/middleware"
	"go-cvbuilder-backend/internal/delivery/http/response"
	"go-cvbuilder-backend/internal/domain"
	"go-cvbuilder-backend/pkg/token"
)

type RouterDeps struct {
	AuthUC       domain.AuthUsecase
	CVUC         domain.CVUsecase
	AIUC         domain.AIUsecase
	Users        domain.UserRepository
	Sessions     middleware.SessionReader
	Tokens       *token.Manager
	Redis        *goredis.Client
	QuotaCounter *cache.QuotaCounter
	AILimits     domain.AIUsageLimits
	FrontendURL  string
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	NewMetaHandler(v1)

	// Sign-in and sign-up carry a stricter per-IP limit.
	public := v1.Group("")
	public.Use(middleware.RateLimit(deps.Redis, middleware.AuthRateLimitConfig()))

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens, deps.Users, deps.Sessions))
	{
		NewAuthHandler(public, protected, deps.AuthUC)
		NewCVHandler(protected, deps.CVUC)

		// AI routes exist only when a Gemini key is configured.
		if deps.AIUC != nil {
			ai := protected.Group("/ai")
			ai.Use(middleware.AIQuota(deps.QuotaCounter, deps.AILimits))
			NewAIHandler(ai, deps.AIUC)
		}
	}

	return r
}
