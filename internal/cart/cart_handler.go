package cart

import (
	"net/http"

	"swarachna-api/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(s Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("cart.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("cart.handler")
	}
	return &Handler{service: s, logger: l}
}

func (h *Handler) Detail(c *gin.Context) {
	res, err := h.service.Detail(c.Request.Context(), c.GetString("session_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) Count(c *gin.Context) {
	count, err := h.service.Count(c.Request.Context(), c.GetString("session_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, CartCountResponse{Count: count}, nil)
}

func (h *Handler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("add item bind failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid input", err.Error())
		return
	}

	res, err := h.service.AddItem(c.Request.Context(), c.GetString("session_id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	h.logger.Debug("cart item added",
		zap.String("session_id", c.GetString("session_id")),
		zap.String("item_id", req.ID),
	)
	response.Success(c, http.StatusCreated, res, nil)
}

func (h *Handler) UpdateQty(c *gin.Context) {
	var req UpdateQtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid input", err.Error())
		return
	}

	res, err := h.service.UpdateQty(c.Request.Context(), c.GetString("session_id"), c.Param("itemId"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) DeleteItem(c *gin.Context) {
	res, err := h.service.DeleteItem(c.Request.Context(), c.GetString("session_id"), c.Param("itemId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) Clear(c *gin.Context) {
	res, err := h.service.ClearCart(c.Request.Context(), c.GetString("session_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}
