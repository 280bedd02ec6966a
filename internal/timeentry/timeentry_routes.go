package timeentry

import (
	"poolops/internal/auth"
	"poolops/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	entries := r.Group("/time-entries")
	entries.Use(middleware.AuthMiddleware())
	{
		entries.GET("", handler.GetAll)
		entries.POST("", handler.Create)
		entries.PUT("/:id", handler.Update)
		entries.POST("/:id/approve", middleware.RoleMiddleware(auth.RoleAdmin), handler.Approve)
		entries.DELETE("/:id", middleware.RoleMiddleware(auth.RoleAdmin), handler.Delete)
	}
}
