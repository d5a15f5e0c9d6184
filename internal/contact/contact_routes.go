package contact

import (
	"swarachna-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	// 1 message per 20s per IP, burst 3
	r.POST("/contact", middleware.RateLimitByIP(0.05, 3), h.Send)
}
