package cart

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes expects the session middleware on r.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	carts := r.Group("/cart")
	{
		carts.GET("", handler.Detail)
		carts.GET("/count", handler.Count)
		carts.DELETE("", handler.Clear)

		carts.POST("/items", handler.AddItem)

		items := carts.Group("/items/:itemId")
		{
			items.PATCH("", handler.UpdateQty)
			items.DELETE("", handler.DeleteItem)
		}
	}
}
