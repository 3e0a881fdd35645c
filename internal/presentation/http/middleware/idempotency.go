package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/retailpos-api/internal/infrastructure/cache"
	"github.com/sangkips/retailpos-api/internal/presentation/http/dto/response"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
	// IdempotencyLockTTL bounds how long an unfinished request holds its key
	IdempotencyLockTTL = time.Minute
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Store   cache.Store
	TTL     time.Duration
	LockTTL time.Duration
	Logger  *slog.Logger
}

// storedResponse is what a key holds. Status 0 marks a request still running.
type storedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response when a request repeats an
// Idempotency-Key already used by the same account. The key is reserved
// before the handler runs, so a repeat arriving while the first request is
// still running gets 409 instead of running twice. Only successful responses
// are kept; a failed request frees its key so the bill can be corrected and
// resent under the same key.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	ttl := config.TTL
	if ttl <= 0 {
		ttl = IdempotencyKeyTTL
	}
	lockTTL := config.LockTTL
	if lockTTL <= 0 {
		lockTTL = IdempotencyLockTTL
	}
	pending, _ := json.Marshal(storedResponse{})
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut && c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" {
			c.Next()
			return
		}
		email := c.GetString("user_email")
		if email == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := "idempotency:" + email + ":" + c.Request.Method + " " + c.FullPath() + ":" + idempotencyKey

		if replay(c, config.Store, key, logger) {
			return
		}

		reserved, err := config.Store.SetNX(ctx, key, pending, lockTTL)
		if err != nil {
			logger.Warn("idempotency reserve failed", "error", err)
		} else if !reserved {
			if !replay(c, config.Store, key, logger) {
				response.ErrorWithCode(c, http.StatusConflict, "A request with this Idempotency-Key is still being processed")
				c.Abort()
			}
			return
		}

		blw := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		// the outcome is recorded even if the client has gone away
		ctx = context.WithoutCancel(ctx)
		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			if reserved {
				if err := config.Store.Delete(ctx, key); err != nil {
					logger.Warn("idempotency release failed", "error", err)
				}
			}
			return
		}
		stored := storedResponse{
			Status:      status,
			ContentType: c.Writer.Header().Get("Content-Type"),
			Body:        blw.body.Bytes(),
		}
		if err := cache.SetJSON(ctx, config.Store, key, stored, ttl); err != nil {
			logger.Warn("idempotency store failed", "error", err)
		}
	}
}

// replay writes the finished response stored under key, if there is one.
func replay(c *gin.Context, store cache.Store, key string, logger *slog.Logger) bool {
	var existing storedResponse
	found, err := cache.GetJSON(c.Request.Context(), store, key, &existing)
	if err != nil {
		logger.Warn("idempotency lookup failed", "error", err)
	}
	if !found || existing.Status == 0 {
		return false
	}
	c.Header("X-Idempotency-Replayed", "true")
	c.Data(existing.Status, existing.ContentType, existing.Body)
	c.Abort()
	return true
}
