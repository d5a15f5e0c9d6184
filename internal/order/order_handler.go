package order

import (
	"encoding/json"
	"net/http"
	"strconv"

	"swarachna-api/internal/middleware"
	"swarachna-api/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(svc Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("order.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("order.handler")
	}
	return &Handler{service: svc, rdb: rdb, logger: l}
}

// Checkout turns the session cart into an order and starts payment.
// POST /orders/checkout
func (h *Handler) Checkout(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == "" {
		h.logger.Warn("http checkout unauthorized: empty userID")
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated", nil)
		return
	}
	sessionID := c.GetString("session_id")

	if lockKey := c.GetString(middleware.IdempotencyLockKey); lockKey != "" && h.rdb != nil {
		defer h.rdb.Del(c.Request.Context(), lockKey)
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http checkout validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	res, err := h.service.Checkout(c.Request.Context(), userID, sessionID, req)
	if err != nil {
		h.logger.Error("http checkout service error",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		response.FromError(c, err)
		return
	}

	if cacheKey := c.GetString(middleware.IdempotencyCacheKey); cacheKey != "" && h.rdb != nil {
		if raw, err := json.Marshal(res); err == nil {
			if err := h.rdb.Set(c.Request.Context(), cacheKey, raw, middleware.IdempotencyCacheTTL).Err(); err != nil {
				h.logger.Warn("idempotency cache write failed", zap.Error(err))
			}
		}
	}

	response.Success(c, http.StatusCreated, res, nil)
}

func (h *Handler) List(c *gin.Context) {
	userID := middleware.UserID(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	orders, total, err := h.service.List(c.Request.Context(), userID, page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page, limit)
	response.Success(c, http.StatusOK, orders, &meta)
}

func (h *Handler) Detail(c *gin.Context) {
	res, err := h.service.Detail(c.Request.Context(), middleware.UserID(c), c.Param("orderNumber"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

// HandleMidtransNotification receives the Midtrans HTTP notification.
// POST /payments/midtrans/notification
func (h *Handler) HandleMidtransNotification(c *gin.Context) {
	var payload MidtransNotificationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	if err := h.service.HandleMidtransNotification(c.Request.Context(), payload); err != nil {
		h.logger.Warn("midtrans notification rejected",
			zap.String("order_number", payload.OrderID),
			zap.Error(err),
		)
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"received": true}, nil)
}
