// Package middleware はgin用の共通ミドルウェアを提供します。
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID はリクエストIDを伝搬するHTTPヘッダー名です。
const HeaderRequestID = "X-Request-ID"

// ContextRequestID は gin.Context にリクエストIDを保存するキーです。
const ContextRequestID = "request_id"

// RequestID は全リクエストにIDを付与します。
// クライアントが X-Request-ID を送った場合はその値を引き継ぎます。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(ContextRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}
