package employee

import (
	"poolops/internal/auth"
	"poolops/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("", handler.GetAll)
		employees.GET("/options", handler.GetOptions)
		employees.GET("/:id", handler.GetByID)
		employees.POST("", middleware.RoleMiddleware(auth.RoleAdmin), handler.Create)
		employees.PUT("/:id", middleware.RoleMiddleware(auth.RoleAdmin), handler.Update)
		employees.POST("/:id/archive", middleware.RoleMiddleware(auth.RoleAdmin), handler.Archive)
	}
}
