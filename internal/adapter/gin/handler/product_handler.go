package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-api/internal/domain/page"
	usecase "storefront-api/internal/usecase/product"
)

// ProductHandler handles HTTP requests for product operations
type ProductHandler struct {
	uc  usecase.Usecase
	log *zap.Logger
}

// NewProductHandler creates a new ProductHandler instance
func NewProductHandler(uc usecase.Usecase, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		uc:  uc,
		log: log,
	}
}

// ProductRequest represents the HTTP request body for creating or updating
// a product. Quantity defaults to zero when omitted.
type ProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Quantity    int     `json:"quantity" binding:"omitempty,gte=0"`
	Category    string  `json:"category"`
}

// ProductResponse represents the HTTP response for product data
type ProductResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Category    string  `json:"category,omitempty"`
	CreatedAt   string  `json:"createdAt,omitempty"`
	UpdatedAt   string  `json:"updatedAt,omitempty"`
}

func toProductResponse(p usecase.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Category:    p.Category,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ListProducts handles GET /v1/products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	pageIdx, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(defaultPage)))
	if err != nil || pageIdx < 0 {
		pageIdx = defaultPage
	}

	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(defaultSize)))
	if err != nil || size < 1 {
		size = defaultSize
	}

	var name *string
	if v, ok := c.GetQuery("name"); ok {
		name = &v
	}

	h.log.Info("ListProducts request", zap.Int("page", pageIdx), zap.Int("size", size))

	resp, err := h.uc.ListProducts(c.Request.Context(), usecase.ListProductsRequest{
		Name: name,
		Page: pageIdx,
		Size: size,
	})
	if err != nil {
		h.log.Error("ListProducts failed", zap.Error(err))
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, page.Map(resp, toProductResponse))
}

// GetProduct handles GET /v1/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	h.log.Info("GetProduct request", zap.Int64("id", id))

	resp, err := h.uc.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.log.Warn("GetProduct failed", zap.Int64("id", id), zap.Error(err))
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductResponse(*resp))
}

// CreateProduct handles POST /v1/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid create product request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	h.log.Info("CreateProduct request", zap.String("name", req.Name))

	resp, err := h.uc.CreateProduct(c.Request.Context(), usecase.CreateProductRequest{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Category:    req.Category,
	})
	if err != nil {
		h.log.Warn("CreateProduct failed", zap.Error(err))
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toProductResponse(*resp))
}

// UpdateProduct handles PUT /v1/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid update product request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	h.log.Info("UpdateProduct request", zap.Int64("id", id), zap.String("name", req.Name))

	resp, err := h.uc.UpdateProduct(c.Request.Context(), id, usecase.UpdateProductRequest{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Category:    req.Category,
	})
	if err != nil {
		h.log.Warn("UpdateProduct failed", zap.Int64("id", id), zap.Error(err))
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductResponse(*resp))
}

// DeleteProduct handles DELETE /v1/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	h.log.Info("DeleteProduct request", zap.Int64("id", id))

	if err := h.uc.DeleteProduct(c.Request.Context(), id); err != nil {
		h.log.Warn("DeleteProduct failed", zap.Int64("id", id), zap.Error(err))
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ProductHandler) parseID(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.log.Warn("Invalid product ID", zap.String("id", idStr), zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "Product ID must be a valid number",
		})
		return 0, false
	}
	return id, true
}
