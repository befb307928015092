package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-cvbuilder-backend/config"
	"go-cvbuilder-backend/internal/ai"
	"go-cvbuilder-backend/internal/auth"
	"go-cvbuilder-backend/internal/cache"
	v1 "go-cvbuilder-backend/internal/delivery/http/v1"
	"go-cvbuilder-backend/internal/domain"
	"go-cvbuilder-backend/internal/repository/postgres"
	"go-cvbuilder-backend/internal/usecase"
	"go-cvbuilder-backend/pkg/database"
	"go-cvbuilder-backend/pkg/logger"
	"go-cvbuilder-backend/pkg/redis"
	"go-cvbuilder-backend/pkg/token"
	"go-cvbuilder-backend/pkg/validation"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting cv builder backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis
	redisClient, err := redis.NewClient(redis.Config{
		URL:      cfg.RedisURL,
		Password: cfg.RedisPassword,
	})
	if err != nil {
		logger.Log.Error("Failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	cvRepo := postgres.NewCVRepository(dbPool)

	tokenManager := token.NewManager(cfg.JWTSecret)
	sessionStore := cache.NewSessionStore(redisClient)
	authRepo := auth.NewRepository(userRepo, tokenManager, sessionStore)
	unsubscribe := authRepo.OnAuthStateChange(func(event domain.AuthEvent) {
		if event.User != nil {
			logger.Log.Info("auth state change", "event", event.Type, "user_id", event.User.ID)
			return
		}
		logger.Log.Info("auth state change", "event", event.Type)
	})
	defer unsubscribe()

	// 6. Setup AI Service. Without a key the AI routes are not registered.
	var aiUC domain.AIUsecase
	if cfg.GeminiAPIKey != "" {
		aiService, err := ai.NewGeminiService(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Log.Error("Failed to create gemini client", "error", err)
			os.Exit(1)
		}
		defer aiService.Close()
		aiUC = usecase.NewAIUsecase(aiService)
	}

	// 7. Setup UseCases
	authUC := usecase.NewAuthUsecase(authRepo)
	cvUC := usecase.NewCVUsecase(cvRepo)

	// 8. Setup Router
	validation.RegisterGinValidators()
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:       authUC,
		CVUC:         cvUC,
		AIUC:         aiUC,
		Users:        userRepo,
		Sessions:     sessionStore,
		Tokens:       tokenManager,
		Redis:        redisClient,
		QuotaCounter: cache.NewQuotaCounter(redisClient),
		AILimits: domain.AIUsageLimits{
			FreeDaily:    cfg.AIFreeDaily,
			PremiumDaily: cfg.AIPremiumDaily,
		},
		FrontendURL: cfg.FrontendURL,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
