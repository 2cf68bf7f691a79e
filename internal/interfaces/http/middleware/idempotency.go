package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hoshop/backend/internal/domain/shared"
	"github.com/hoshop/backend/internal/infrastructure/logger"
	"github.com/hoshop/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// IdempotencyKeyHeader is the client-chosen key of a retryable request
const IdempotencyKeyHeader = "Idempotency-Key"

// maxIdempotencyKeyLength bounds client-supplied keys
const maxIdempotencyKeyLength = 255

// Idempotency rejects a replayed Idempotency-Key with 409 for ttl.
// Requests without the header pass through. A failed request (status >= 400
// or a panic in a later handler) releases its key so the client may retry it.
// Store errors fail open.
func Idempotency(store shared.IdempotencyStore, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			abortWithError(c, dto.ErrCodeBadRequest, "Idempotency-Key is too long")
			return
		}

		// Scoped by caller so two customers cannot collide on a key
		scoped := c.Request.Method + " " + c.FullPath() + " " + GetActor(c).UserID + " " + key
		ctx := c.Request.Context()
		log := logger.GetGinLogger(c)

		claimed, err := store.MarkProcessed(ctx, scoped, ttl)
		if err != nil {
			log.Error("Idempotency store unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !claimed {
			log.Info("Duplicate request rejected", zap.String("idempotency_key", key))
			abortWithError(c, dto.ErrCodeDuplicateRequest, "A request with this Idempotency-Key was already processed")
			return
		}

		completed := false
		defer func() {
			if completed && c.Writer.Status() < 400 {
				return
			}
			if err := store.Release(ctx, scoped); err != nil {
				log.Warn("Failed to release idempotency key", zap.Error(err))
			}
		}()

		c.Next()
		completed = true
	}
}
