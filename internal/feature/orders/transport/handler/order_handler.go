// Package handler は注文フィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"shop_backend/internal/feature/orders/domain/entity"
	"shop_backend/internal/feature/orders/transport/http/dto"
	"shop_backend/internal/feature/orders/usecase"
	jwtmw "shop_backend/internal/platform/jwt"
	"shop_backend/internal/shared/apperr"
)

// OrdersUsecase は注文のユースケースを定義します。
type OrdersUsecase interface {
	List(ctx context.Context) ([]entity.Order, error)
	Get(ctx context.Context, id string) (*entity.Order, error)
	Create(ctx context.Context, fields entity.OrderFields) (*entity.Order, error)
	Update(ctx context.Context, id string, fields entity.OrderFields) (*entity.Order, error)
	Delete(ctx context.Context, id string) error
	ListByStatus(ctx context.Context, status string) ([]entity.Order, error)
	ListByCustomer(ctx context.Context, email string) ([]entity.Order, error)
	Checkout(ctx context.Context, in usecase.CheckoutInput) (*entity.Order, error)
}

// OrderHandler は注文に関するHTTPリクエストを処理します。
type OrderHandler struct {
	uc OrdersUsecase
}

// NewOrderHandler は新しい OrderHandler を作成します。
func NewOrderHandler(uc OrdersUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// List は全注文を新しい順に返します。
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.uc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to fetch orders")
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderListResponse(orders))
}

// Get は指定IDの注文を返します。
func (h *OrderHandler) Get(c *gin.Context) {
	o, err := h.uc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "Failed to fetch order")
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(o))
}

// Create は注文を登録し201を返します。
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create order request malformed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Invalid request body"})
		return
	}
	o, err := h.uc.Create(c.Request.Context(), req.ToFields())
	if err != nil {
		h.fail(c, err, "Failed to create order")
		return
	}
	slog.Info("order created", "order_id", o.ID)
	c.JSON(http.StatusCreated, dto.NewOrderResponse(o))
}

// Update は指定されたフィールドのみを更新します。
func (h *OrderHandler) Update(c *gin.Context) {
	var req dto.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update order request malformed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Invalid request body"})
		return
	}
	o, err := h.uc.Update(c.Request.Context(), c.Param("id"), req.ToFields())
	if err != nil {
		h.fail(c, err, "Failed to update order")
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(o))
}

// Delete は注文を削除します。
func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.uc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, "Failed to delete order")
		return
	}
	slog.Info("order deleted", "order_id", c.Param("id"))
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Order deleted successfully"})
}

// ListByStatus はステータスで絞り込んだ注文を返します。
func (h *OrderHandler) ListByStatus(c *gin.Context) {
	orders, err := h.uc.ListByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		h.fail(c, err, "Failed to fetch orders")
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderListResponse(orders))
}

// ListByCustomer は顧客メールアドレスで絞り込んだ注文を返します。
func (h *OrderHandler) ListByCustomer(c *gin.Context) {
	orders, err := h.uc.ListByCustomer(c.Request.Context(), c.Param("email"))
	if err != nil {
		h.fail(c, err, "Failed to fetch orders")
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderListResponse(orders))
}

// ListMine は認証済みユーザー自身の注文を返します。jwtmw.AuthRequired の後段で使用します。
func (h *OrderHandler) ListMine(c *gin.Context) {
	email := c.GetString(jwtmw.ContextEmail)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	orders, err := h.uc.ListByCustomer(c.Request.Context(), email)
	if err != nil {
		h.fail(c, err, "Failed to fetch orders")
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderListResponse(orders))
}

// Checkout は購入フローからの注文を検証して保存し201を返します。
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("checkout request malformed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Invalid request body"})
		return
	}
	o, err := h.uc.Checkout(c.Request.Context(), req.ToInput())
	if err != nil {
		if apperr.IsClientError(err) {
			slog.Info("checkout rejected", "reason", err.Error(), "remote_addr", c.ClientIP())
		}
		h.fail(c, err, "Failed to process checkout")
		return
	}
	c.JSON(http.StatusCreated, dto.NewOrderResponse(o))
}

// fail はエラー種別に応じたステータスで応答します。
// 5xxの場合は内部エラーをログに残し、固定メッセージのみ返します。
func (h *OrderHandler) fail(c *gin.Context, err error, internalMsg string) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		slog.Error(internalMsg, "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
		c.JSON(status, dto.MessageResponse{Message: internalMsg})
		return
	}
	c.JSON(status, dto.MessageResponse{Message: err.Error()})
}
