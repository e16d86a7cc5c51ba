package router

import "github.com/gin-gonic/gin"

func (r *Router) userRoutes(version *gin.RouterGroup) {
	user := version.Group("/user")
	user.Use(r.authMw.RequireAuth())
	{
		user.GET("/profile", r.userHandler.Profile)
		user.PUT("/password", r.userHandler.UpdatePassword)
	}
}
