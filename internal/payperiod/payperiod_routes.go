package payperiod

import (
	"poolops/internal/auth"
	"poolops/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb ...*redis.Client) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	periods := r.Group("/pay-periods")
	periods.Use(middleware.AuthMiddleware())
	{
		periods.GET("", handler.GetAll)
		periods.GET("/:id", handler.GetByID)
		periods.GET("/:id/records", handler.Records)
		periods.GET("/:id/export", handler.ExportCSV)
		periods.POST("", middleware.RoleMiddleware(auth.RoleAdmin), handler.Create)
		if redisClient != nil {
			periods.POST("/:id/lock", middleware.RoleMiddleware(auth.RoleAdmin), middleware.Idempotency(redisClient), handler.Lock)
			periods.POST("/:id/process", middleware.RoleMiddleware(auth.RoleAdmin), middleware.Idempotency(redisClient), handler.Process)
		} else {
			periods.POST("/:id/lock", middleware.RoleMiddleware(auth.RoleAdmin), handler.Lock)
			periods.POST("/:id/process", middleware.RoleMiddleware(auth.RoleAdmin), handler.Process)
		}
	}

	records := r.Group("/payroll-records")
	records.Use(middleware.AuthMiddleware())
	{
		records.POST("/:recordId/mark-paid", middleware.RoleMiddleware(auth.RoleAdmin), handler.MarkPaid)
	}
}
