package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/repairhub/backend/config"
	"github.com/repairhub/backend/internal/handler"
	"github.com/repairhub/backend/internal/middleware"
)

type Router struct {
	authHandler    *handler.AuthHandler
	userHandler    *handler.UserHandler
	articleHandler *handler.ArticleHandler
	repairHandler  *handler.RepairHandler
	healthHandler  *handler.HealthHandler

	authMw *middleware.AuthMiddleware
	Config *config.Config
}

func NewRouter(
	auth *handler.AuthHandler,
	user *handler.UserHandler,
	article *handler.ArticleHandler,
	repair *handler.RepairHandler,
	health *handler.HealthHandler,

	authMw *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:    auth,
		userHandler:    user,
		articleHandler: article,
		repairHandler:  repair,
		healthHandler:  health,

		authMw: authMw,
		Config: cfg,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	if !r.Config.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestContext())
	router.Use(middleware.CORS())

	// The emailed reset link lands here; the page posts back to itself.
	router.GET("/reset-password", r.authHandler.ResetPasswordForm)
	router.POST("/reset-password", r.authHandler.ResetPassword)

	api := router.Group("/api")
	{
		api.GET("/health", r.healthHandler.Check)

		v1 := api.Group("/v1")
		{
			v1.Use(middleware.RateLimit(r.Config.RateLimit.Request, time.Duration(r.Config.RateLimit.Duration)*time.Second))

			r.authRoutes(v1)
			r.userRoutes(v1)
			r.articleRoutes(v1)
			r.repairRoutes(v1)
		}
	}

	return router
}
