package catalog

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	services := r.Group("/services")
	{
		services.GET("", handler.ListServices)
		services.GET("/:serviceId", handler.GetService)
	}

	gallery := r.Group("/gallery")
	{
		gallery.GET("", handler.Gallery)
		gallery.GET("/categories", handler.Categories)
	}
}
