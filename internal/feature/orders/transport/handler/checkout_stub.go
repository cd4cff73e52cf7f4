package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"shop_backend/internal/feature/orders/transport/http/dto"
)

// CheckoutStubHandler は永続化を行わずに受付応答だけを返すチェックアウトです。
// 決済連携が入るまでの暫定エンドポイントで、注文は保存されません。
type CheckoutStubHandler struct {
	now func() time.Time
}

// NewCheckoutStubHandler は新しい CheckoutStubHandler を作成します。
func NewCheckoutStubHandler() *CheckoutStubHandler {
	return &CheckoutStubHandler{now: time.Now}
}

// Handle は現在時刻（ミリ秒）から導出した注文IDを返します。
func (h *CheckoutStubHandler) Handle(c *gin.Context) {
	slog.Debug("stub checkout request received", "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.CheckoutStubResponse{
		Success: true,
		Message: "Checkout processed successfully",
		OrderID: strconv.FormatInt(h.now().UnixMilli(), 10),
	})
}
