package api

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopfoundry/go-catalog-backend/internal/domain"
	"github.com/shopfoundry/go-catalog-backend/internal/service"
	"github.com/shopfoundry/go-catalog-backend/internal/storage"
)

// CreateRole handles POST /role
func (h *Handlers) CreateRole(c *gin.Context) {
	var req domain.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, []domain.FieldError{{Field: "body", Message: "Invalid JSON body"}})
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		badRequest(c, errs)
		return
	}

	role, err := h.services.Roles.Create(c.Request.Context(), req.Name)
	if err != nil {
		if errors.Is(err, service.ErrRoleExists) {
			badRequest(c, []domain.FieldError{{Field: "name", Message: "Role already exists"}})
			return
		}
		h.logger.Error("Failed to create role", zap.Error(err))
		c.JSON(500, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(201, role)
}

// ListRoles handles GET /role
func (h *Handlers) ListRoles(c *gin.Context) {
	roles, err := h.services.Roles.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list roles", zap.Error(err))
		c.JSON(500, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(200, roles)
}

// GetRole handles GET /role/:id
func (h *Handlers) GetRole(c *gin.Context) {
	id, ok := parsePathID(c, "id", "Role not found")
	if !ok {
		return
	}

	role, err := h.services.Roles.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(404, gin.H{"error": "Role not found"})
			return
		}
		h.logger.Error("Failed to get role", zap.Error(err))
		c.JSON(500, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(200, role)
}

// UpdateRole handles PUT /role/:id
func (h *Handlers) UpdateRole(c *gin.Context) {
	id, ok := parsePathID(c, "id", "Role not found")
	if !ok {
		return
	}

	var req domain.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, []domain.FieldError{{Field: "body", Message: "Invalid JSON body"}})
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		badRequest(c, errs)
		return
	}

	role, err := h.services.Roles.Update(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			c.JSON(404, gin.H{"error": "Role not found"})
		case errors.Is(err, service.ErrRoleExists):
			badRequest(c, []domain.FieldError{{Field: "name", Message: "Role already exists"}})
		default:
			h.logger.Error("Failed to update role", zap.Error(err))
			c.JSON(500, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(200, role)
}

// DeleteRole handles DELETE /role/:id
func (h *Handlers) DeleteRole(c *gin.Context) {
	id, ok := parsePathID(c, "id", "Role not found")
	if !ok {
		return
	}

	if err := h.services.Roles.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(404, gin.H{"error": "Role not found"})
			return
		}
		h.logger.Error("Failed to delete role", zap.Error(err))
		c.JSON(500, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(200, gin.H{"message": "Role deleted successfully"})
}
