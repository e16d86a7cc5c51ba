package router

import (
	"github.com/gin-gonic/gin"
	"github.com/repairhub/backend/internal/model"
)

func (r *Router) repairRoutes(version *gin.RouterGroup) {
	repairs := version.Group("/repairs")
	repairs.Use(r.authMw.RequireAuth())
	{
		repairs.POST("", r.repairHandler.Create)
		repairs.GET("/mine", r.repairHandler.Mine)

		// Staff views and workflow transitions
		staff := repairs.Group("")
		staff.Use(r.authMw.RequireRole(model.RoleAdmin, model.RoleEmployee))
		{
			staff.GET("", r.repairHandler.List)
			staff.PATCH("/:id/status", r.repairHandler.UpdateStatus)
		}
	}
}
