package catalog

import (
	"net/http"
	"strings"

	"swarachna-api/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	catalog *Catalog
}

func NewHandler(c *Catalog) *Handler {
	return &Handler{catalog: c}
}

func (h *Handler) ListServices(c *gin.Context) {
	response.Success(c, http.StatusOK, h.catalog.Services(), nil)
}

func (h *Handler) GetService(c *gin.Context) {
	svc, ok := h.catalog.Service(c.Param("serviceId"))
	if !ok {
		response.FromError(c, ErrServiceNotFound)
		return
	}
	response.Success(c, http.StatusOK, svc, nil)
}

func (h *Handler) Gallery(c *gin.Context) {
	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	response.Success(c, http.StatusOK, h.catalog.Gallery(category), nil)
}

func (h *Handler) Categories(c *gin.Context) {
	cats := append([]Category{{ID: CategoryAll, Label: "All Works"}}, h.catalog.Categories()...)
	response.Success(c, http.StatusOK, cats, nil)
}
