package api

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/shopfoundry/go-catalog-backend/internal/domain"
	"github.com/shopfoundry/go-catalog-backend/internal/service"
	"github.com/shopfoundry/go-catalog-backend/internal/storage"
)

// CreateProduct handles POST /product
func (h *Handlers) CreateProduct(c *gin.Context) {
	var req domain.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, []domain.FieldError{{Field: "body", Message: "Invalid JSON body"}})
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		badRequest(c, errs)
		return
	}

	product, err := h.services.Products.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			c.JSON(404, gin.H{"error": "Category not found"})
			return
		}
		h.logger.Error("Failed to create product", zap.Error(err))
		c.JSON(500, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(201, product)
}

// ListProducts handles GET /product with an optional category filter
func (h *Handlers) ListProducts(c *gin.Context) {
	var categoryID *primitive.ObjectID
	if filter := c.Query("category"); filter != "" {
		id, err := primitive.ObjectIDFromHex(filter)
		if err != nil {
			c.JSON(404, gin.H{"error": "Category not found"})
			return
		}
		categoryID = &id
	}

	products, err := h.services.Products.List(c.Request.Context(), categoryID)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			c.JSON(404, gin.H{"error": "Category not found"})
			return
		}
		h.logger.Error("Failed to list products", zap.Error(err))
		c.JSON(500, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(200, products)
}

// GetProduct handles GET /product/:id
func (h *Handlers) GetProduct(c *gin.Context) {
	id, ok := parsePathID(c, "id", "Product not found")
	if !ok {
		return
	}

	product, err := h.services.Products.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(404, gin.H{"error": "Product not found"})
			return
		}
		h.logger.Error("Failed to get product", zap.Error(err))
		c.JSON(500, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(200, product)
}

// UpdateProduct handles PUT /product/:id
func (h *Handlers) UpdateProduct(c *gin.Context) {
	id, ok := parsePathID(c, "id", "Product not found")
	if !ok {
		return
	}

	var req domain.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, []domain.FieldError{{Field: "body", Message: "Invalid JSON body"}})
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		badRequest(c, errs)
		return
	}

	product, err := h.services.Products.Update(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			c.JSON(404, gin.H{"error": "Category not found"})
		case errors.Is(err, storage.ErrNotFound):
			c.JSON(404, gin.H{"error": "Product not found"})
		default:
			h.logger.Error("Failed to update product", zap.Error(err))
			c.JSON(500, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(200, product)
}

// DeleteProduct handles DELETE /product/:id
func (h *Handlers) DeleteProduct(c *gin.Context) {
	id, ok := parsePathID(c, "id", "Product not found")
	if !ok {
		return
	}

	product, err := h.services.Products.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(404, gin.H{"error": "Product not found"})
			return
		}
		h.logger.Error("Failed to delete product", zap.Error(err))
		c.JSON(500, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(200, product)
}
