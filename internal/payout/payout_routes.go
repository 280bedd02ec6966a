package payout

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

	payouts := r.Group("/payouts")
	payouts.Use(middleware.AuthMiddleware())
	{
		payouts.GET("", handler.List)
		payouts.GET("/summary", handler.Summary)
		payouts.GET("/:id", handler.GetByID)
		if redisClient != nil {
			payouts.POST("", middleware.Idempotency(redisClient), handler.Create)
		} else {
			payouts.POST("", handler.Create)
		}
		payouts.DELETE("/:id", middleware.RoleMiddleware(auth.RoleAdmin), handler.Delete)
	}
}
