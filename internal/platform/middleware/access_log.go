package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"shop_backend/internal/platform/logger"
)

// AccessLog は各リクエストをリクエストID付きでログに出力します。
// RequestID の後に登録してください。
func AccessLog(base *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqLog := base.With("request_id", c.GetString(ContextRequestID))
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), reqLog))

		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration", time.Since(start).String(),
			"remote_addr", c.ClientIP(),
		}
		switch {
		case status >= 500:
			reqLog.Error("request", attrs...)
		case status >= 400:
			reqLog.Warn("request", attrs...)
		default:
			reqLog.Info("request", attrs...)
		}
	}
}
