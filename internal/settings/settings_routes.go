package settings

import (
	"poolops/internal/auth"
	"poolops/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	group := r.Group("/settings")
	group.Use(middleware.AuthMiddleware())
	{
		group.GET("", handler.Get)
		group.PUT("", middleware.RoleMiddleware(auth.RoleAdmin), handler.Update)
	}
}
