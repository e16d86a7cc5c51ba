package router

import (
	"github.com/gin-gonic/gin"
	"github.com/repairhub/backend/internal/model"
)

func (r *Router) articleRoutes(version *gin.RouterGroup) {
	articles := version.Group("/articles")
	{
		// Catalog reads are public
		articles.GET("", r.articleHandler.List)
		articles.GET("/:id", r.articleHandler.Get)

		// Mutations are admin-only
		admin := articles.Group("")
		admin.Use(r.authMw.RequireAuth(), r.authMw.RequireRole(model.RoleAdmin))
		{
			admin.POST("", r.articleHandler.Create)
			admin.PUT("/:id", r.articleHandler.Update)
			admin.DELETE("/:id", r.articleHandler.Delete)
		}
	}
}
