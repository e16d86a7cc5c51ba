package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/repairhub/backend/config"
	"github.com/repairhub/backend/internal/handler"
	"github.com/repairhub/backend/internal/middleware"
	"github.com/repairhub/backend/internal/repository"
	"github.com/repairhub/backend/internal/router"
	"github.com/repairhub/backend/internal/service"
	"github.com/repairhub/backend/pkg/database"
	"github.com/repairhub/backend/pkg/logger"
	"github.com/repairhub/backend/pkg/redis"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if err := logger.InitLogger(cfg.App.Environment); err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.GetLogger()
	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
		zap.String("port", cfg.App.Port))

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.CloseDB(db); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := database.Seed(db); err != nil {
		log.Fatal("Failed to seed database", zap.Error(err))
	}

	cache, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := cache.Close(); err != nil {
			log.Error("Failed to close Redis client", zap.Error(err))
		}
	}()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	resetRepo := repository.NewPasswordResetRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	repairRepo := repository.NewRepairRequestRepository(db)

	// Services
	tokens, err := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL)
	if err != nil {
		log.Fatal("Failed to create token service", zap.Error(err))
	}

	mailer, err := service.NewEmailService(
		context.Background(),
		cfg.Email.Region,
		cfg.Email.FromEmail,
		cfg.Email.FromName,
		cfg.App.Name,
		cfg.App.BaseURL,
		int(cfg.Reset.TTL.Minutes()),
	)
	if err != nil {
		log.Fatal("Failed to create email service", zap.Error(err))
	}

	throttle := service.NewRedisThrottle(cache, cfg.Reset.Throttle)
	ledger := service.NewResetLedger(userRepo, resetRepo, throttle, cfg.Reset.TTL)
	authService := service.NewAuthService(userRepo, tokens, ledger, mailer)
	articleService := service.NewArticleService(articleRepo)
	repairService := service.NewRepairService(repairRepo)

	// Background sweep of terminal reset rows
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	sweeper := service.NewSweeper(ledger, cfg.Reset.SweepInterval, cfg.Reset.Retention)
	go sweeper.Run(sweepCtx)

	// Handlers and routes
	authMw := middleware.NewAuthMiddleware(tokens, userRepo)
	r := router.NewRouter(
		handler.NewAuthHandler(authService),
		handler.NewUserHandler(authService),
		handler.NewArticleHandler(articleService),
		handler.NewRepairHandler(repairService),
		handler.NewHealthHandler(db, cache),
		authMw,
		cfg,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r.SetupRoutes(),
		ReadTimeout:  cfg.App.Timeout,
		WriteTimeout: cfg.App.Timeout,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	stopSweep()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}

	log.Info("Server stopped")
}
