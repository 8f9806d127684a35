package api

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopfoundry/go-catalog-backend/internal/domain"
	"github.com/shopfoundry/go-catalog-backend/internal/storage"
	"github.com/shopfoundry/go-catalog-backend/pkg/middleware"
)

// CreateCategory handles POST /category
func (h *Handlers) CreateCategory(c *gin.Context) {
	var req domain.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, []domain.FieldError{{Field: "body", Message: "Invalid JSON body"}})
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		badRequest(c, errs)
		return
	}

	creator, ok := subjectID(c)
	if !ok {
		return
	}
	user, err := h.services.Users.GetPublicByID(c.Request.Context(), creator)
	if err != nil {
		h.logger.Error("Failed to resolve creator", zap.Error(err))
		c.JSON(500, gin.H{"error": "Internal server error"})
		return
	}

	by := domain.CreatedBy{
		Username: user.Username,
		Role:     c.GetString(middleware.ContextRole),
	}
	category, err := h.services.Categories.Create(c.Request.Context(), &req, by)
	if err != nil {
		h.logger.Error("Failed to create category", zap.Error(err))
		c.JSON(500, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(201, category)
}

// ListCategories handles GET /category
func (h *Handlers) ListCategories(c *gin.Context) {
	categories, err := h.services.Categories.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list categories", zap.Error(err))
		c.JSON(500, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(200, categories)
}

// GetCategory handles GET /category/:id
func (h *Handlers) GetCategory(c *gin.Context) {
	id, ok := parsePathID(c, "id", "Category not found")
	if !ok {
		return
	}

	category, err := h.services.Categories.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(404, gin.H{"error": "Category not found"})
			return
		}
		h.logger.Error("Failed to get category", zap.Error(err))
		c.JSON(500, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(200, category)
}

// GetCategoryByName handles GET /category/name/:name
func (h *Handlers) GetCategoryByName(c *gin.Context) {
	category, err := h.services.Categories.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(404, gin.H{"error": "Category not found"})
			return
		}
		h.logger.Error("Failed to get category", zap.Error(err))
		c.JSON(500, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(200, category)
}

// CategoryProducts handles GET /category/:id/products
func (h *Handlers) CategoryProducts(c *gin.Context) {
	id, ok := parsePathID(c, "id", "Category not found")
	if !ok {
		return
	}

	products, err := h.services.Categories.Products(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(404, gin.H{"error": "Category not found"})
			return
		}
		h.logger.Error("Failed to list category products", zap.Error(err))
		c.JSON(500, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(200, products)
}

// UpdateCategory handles PUT /category/:id
func (h *Handlers) UpdateCategory(c *gin.Context) {
	id, ok := parsePathID(c, "id", "Category not found")
	if !ok {
		return
	}

	var req domain.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, []domain.FieldError{{Field: "body", Message: "Invalid JSON body"}})
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		badRequest(c, errs)
		return
	}

	category, err := h.services.Categories.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(404, gin.H{"error": "Category not found"})
			return
		}
		h.logger.Error("Failed to update category", zap.Error(err))
		c.JSON(500, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(200, category)
}

// DeleteCategory handles DELETE /category/:id. Products referencing the
// category are left in place.
func (h *Handlers) DeleteCategory(c *gin.Context) {
	id, ok := parsePathID(c, "id", "Category not found")
	if !ok {
		return
	}

	category, err := h.services.Categories.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(404, gin.H{"error": "Category not found"})
			return
		}
		h.logger.Error("Failed to delete category", zap.Error(err))
		c.JSON(500, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(200, category)
}
