package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"swarachna-api/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	IdempotencyHeader   = "Idempotency-Key"
	IdempotencyLockKey  = "idempotency_lock_key"
	IdempotencyCacheKey = "idempotency_cache_key"

	idempotencyLockTTL  = 30 * time.Second
	IdempotencyCacheTTL = 24 * time.Hour
)

// Idempotency guards a handler with a per-user Idempotency-Key. A cached
// response is replayed as is; a request still holding the lock gets 409.
// The handler releases IdempotencyLockKey and fills IdempotencyCacheKey on
// success.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(IdempotencyHeader))
		if key == "" || rdb == nil {
			c.Next()
			return
		}
		if len(key) > 128 {
			response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Idempotency-Key is too long", nil)
			c.Abort()
			return
		}

		owner := UserID(c)
		if owner == "" {
			owner = c.GetString("session_id")
		}
		base := "idempotency:" + c.FullPath() + ":" + owner + ":" + key
		cacheKey := base + ":response"
		lockKey := base + ":lock"
		ctx := c.Request.Context()

		cached, err := rdb.Get(ctx, cacheKey).Bytes()
		if err == nil {
			var data json.RawMessage = cached
			c.Header("Idempotent-Replayed", "true")
			response.Success(c, http.StatusCreated, data, nil)
			c.Abort()
			return
		}
		if !errors.Is(err, redis.Nil) {
			// cache unavailable: run without the guard rather than fail checkout
			zap.L().Named("middleware.idempotency").Warn("idempotency cache read failed", zap.Error(err))
			c.Next()
			return
		}

		acquired, err := rdb.SetNX(ctx, lockKey, "1", idempotencyLockTTL).Result()
		if err != nil {
			zap.L().Named("middleware.idempotency").Warn("idempotency lock failed", zap.Error(err))
			c.Next()
			return
		}
		if !acquired {
			response.Error(c, http.StatusConflict, "CONFLICT", "A request with this Idempotency-Key is already in progress", nil)
			c.Abort()
			return
		}

		c.Set(IdempotencyLockKey, lockKey)
		c.Set(IdempotencyCacheKey, cacheKey)
		c.Next()
	}
}
