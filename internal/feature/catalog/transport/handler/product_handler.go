// Package handler はcatalogフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"shop_backend/internal/feature/catalog/domain/entity"
	"shop_backend/internal/feature/catalog/transport/http/dto"
	"shop_backend/internal/shared/apperr"
)

// CatalogUsecase は商品カタログのユースケースを定義します。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type CatalogUsecase interface {
	List(ctx context.Context) ([]entity.Product, error)
	Get(ctx context.Context, id string) (*entity.Product, error)
	Create(ctx context.Context, fields entity.ProductFields) (*entity.Product, error)
	Update(ctx context.Context, id string, fields entity.ProductFields) (*entity.Product, error)
	Delete(ctx context.Context, id string) error
	ListByCategory(ctx context.Context, category string) ([]entity.Product, error)
}

// ProductHandler は商品に関するHTTPリクエストを処理します。
type ProductHandler struct {
	uc CatalogUsecase
}

// NewProductHandler は新しい ProductHandler を作成します。
func NewProductHandler(uc CatalogUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// List は全商品を返します。
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.uc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to fetch products")
		return
	}
	c.JSON(http.StatusOK, dto.NewProductListResponse(products))
}

// Get は指定IDの商品を返します。
func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.uc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "Failed to fetch product")
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponse(p))
}

// Create は商品を登録し201を返します。
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create product request malformed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Invalid request body"})
		return
	}
	p, err := h.uc.Create(c.Request.Context(), req.ToFields())
	if err != nil {
		h.fail(c, err, "Failed to create product")
		return
	}
	slog.Info("product created", "product_id", p.ID, "category", p.Category)
	c.JSON(http.StatusCreated, dto.NewProductResponse(p))
}

// Update は指定されたフィールドのみを更新します。
func (h *ProductHandler) Update(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update product request malformed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Invalid request body"})
		return
	}
	p, err := h.uc.Update(c.Request.Context(), c.Param("id"), req.ToFields())
	if err != nil {
		h.fail(c, err, "Failed to update product")
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponse(p))
}

// Delete は商品を削除します。
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.uc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, "Failed to delete product")
		return
	}
	slog.Info("product deleted", "product_id", c.Param("id"))
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Product deleted successfully"})
}

// ListByCategory はカテゴリが完全一致する商品を返します。
func (h *ProductHandler) ListByCategory(c *gin.Context) {
	products, err := h.uc.ListByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		h.fail(c, err, "Failed to fetch products by category")
		return
	}
	c.JSON(http.StatusOK, dto.NewProductListResponse(products))
}

// fail はエラー種別に応じたステータスで応答します。
// 5xxの場合は内部エラーをログに残し、固定メッセージのみ返します。
func (h *ProductHandler) fail(c *gin.Context, err error, internalMsg string) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		slog.Error(internalMsg, "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
		c.JSON(status, dto.MessageResponse{Message: internalMsg})
		return
	}
	c.JSON(status, dto.MessageResponse{Message: err.Error()})
}
