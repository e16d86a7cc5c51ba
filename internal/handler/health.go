package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/repairhub/backend/internal/constants"
	"github.com/repairhub/backend/pkg/redis"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db    *gorm.DB
	cache *redis.Client
}

func NewHealthHandler(db *gorm.DB, cache *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Check reports liveness of the process and its dependencies. A degraded
// dependency answers 503 so load balancers rotate the instance out.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx := c.Request.Context()

	checks := gin.H{}
	healthy := true

	dbStatus := "ok"
	if sqlDB, err := h.db.DB(); err != nil {
		dbStatus = err.Error()
		healthy = false
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = err.Error()
		healthy = false
	}
	checks["database"] = dbStatus

	if h.cache.Enabled() {
		redisStatus := "ok"
		if err := h.cache.Ping(ctx); err != nil {
			redisStatus = err.Error()
			healthy = false
		}
		checks["redis"] = redisStatus
	} else {
		checks["redis"] = "disabled"
	}

	checks["time"] = time.Now().UTC().Format(time.RFC3339)

	status := http.StatusOK
	message := "healthy"
	if !healthy {
		status = http.StatusServiceUnavailable
		message = "degraded"
	}

	c.JSON(status, constants.BuildResponse(status, message, checks))
}
