package order

import (
	"swarachna-api/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	orders := r.Group("/orders")
	orders.Use(middleware.AuthMiddleware())
	orders.Use(middleware.RateLimitByUser(5, 10))
	{
		// one checkout per 10s per user
		orders.POST("/checkout",
			middleware.RateLimitByUser(0.1, 1),
			middleware.Idempotency(rdb),
			handler.Checkout,
		)

		orders.GET("", handler.List)
		orders.GET("/:orderNumber", handler.Detail)
	}

	// called by Midtrans, authenticated by signature
	payments := r.Group("/payments")
	payments.Use(middleware.RateLimitByIP(20, 40))
	{
		payments.POST("/midtrans/notification", handler.HandleMidtransNotification)
	}
}
