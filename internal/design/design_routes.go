package design

import (
	"swarachna-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes expects the session middleware on r.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	draft := r.Group("/design-requests/draft")
	{
		draft.GET("", handler.Draft)
		draft.PATCH("", handler.Update)
		draft.DELETE("", handler.Discard)

		draft.POST("/files", middleware.RateLimitByIP(1, 10), handler.AddFile)
		draft.DELETE("/files/:index", handler.RemoveFile)

		draft.POST("/next", middleware.OptionalAuthMiddleware(), middleware.RateLimitByIP(0.2, 5), handler.Next)
		draft.POST("/back", handler.Back)
		draft.POST("/steps/:step", handler.GoTo)
	}
}
