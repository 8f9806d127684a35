package api

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/shopfoundry/go-catalog-backend/internal/domain"
	"github.com/shopfoundry/go-catalog-backend/internal/service"
	"github.com/shopfoundry/go-catalog-backend/internal/storage"
	"github.com/shopfoundry/go-catalog-backend/pkg/middleware"
)

// Register handles POST /user/register
func (h *Handlers) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, []domain.FieldError{{Field: "body", Message: "Invalid JSON body"}})
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		badRequest(c, errs)
		return
	}

	_, err := h.services.Users.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserExists):
			badRequest(c, []domain.FieldError{{Field: "username", Message: "Username or email already exists"}})
		case errors.Is(err, service.ErrUnknownRole):
			badRequest(c, []domain.FieldError{{Field: "role", Message: "Invalid role. Allowed roles: user, admin"}})
		default:
			h.logger.Error("Failed to register user", zap.Error(err))
			c.JSON(500, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(201, gin.H{"message": "Registration successful!"})
}

// Login handles POST /user/login
func (h *Handlers) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, []domain.FieldError{{Field: "body", Message: "Invalid JSON body"}})
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		badRequest(c, errs)
		return
	}

	resp, err := h.services.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// Deliberately generic: don't reveal which field was wrong
			c.JSON(400, gin.H{"error": "Incorrect email or password"})
			return
		}
		h.logger.Error("Failed to log in user", zap.Error(err))
		c.JSON(500, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(200, resp)
}

// Me handles GET /user, returning the authenticated user's own summary
func (h *Handlers) Me(c *gin.Context) {
	id, ok := subjectID(c)
	if !ok {
		return
	}

	user, err := h.services.Users.GetPublicByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}
		h.logger.Error("Failed to get user", zap.Error(err))
		c.JSON(500, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(200, user)
}

// AdminOnly handles GET /user/admin
func (h *Handlers) AdminOnly(c *gin.Context) {
	c.JSON(200, gin.H{"message": "Only admins can see this!"})
}

// ListUsers handles GET /user/all
func (h *Handlers) ListUsers(c *gin.Context) {
	users, err := h.services.Users.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list users", zap.Error(err))
		c.JSON(500, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(200, users)
}

// UpdateUser handles PUT /user/:id. The path id must match the token
// subject.
func (h *Handlers) UpdateUser(c *gin.Context) {
	id, ok := ownPathID(c)
	if !ok {
		return
	}

	var req domain.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, []domain.FieldError{{Field: "body", Message: "Invalid JSON body"}})
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		badRequest(c, errs)
		return
	}

	user, err := h.services.Users.Update(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			c.JSON(404, gin.H{"error": "User not found"})
		case errors.Is(err, service.ErrUserExists):
			badRequest(c, []domain.FieldError{{Field: "username", Message: "Username or email already exists"}})
		default:
			h.logger.Error("Failed to update user", zap.Error(err))
			c.JSON(500, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(200, user)
}

// DeleteUser handles DELETE /user/:id. The path id must match the token
// subject.
func (h *Handlers) DeleteUser(c *gin.Context) {
	id, ok := ownPathID(c)
	if !ok {
		return
	}

	if err := h.services.Users.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}
		h.logger.Error("Failed to delete user", zap.Error(err))
		c.JSON(500, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(200, gin.H{"message": "User deleted successfully"})
}

// AdminDeleteUser handles DELETE /user/delete/:id. Requires the admin role
// but no ownership match.
func (h *Handlers) AdminDeleteUser(c *gin.Context) {
	id, ok := parsePathID(c, "id", "User not found")
	if !ok {
		return
	}

	if err := h.services.Users.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}
		h.logger.Error("Failed to delete user", zap.Error(err))
		c.JSON(500, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(200, gin.H{"message": "User deleted successfully"})
}

// subjectID parses the authenticated subject's id from the request context
func subjectID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.GetString(middleware.ContextSubject))
	if err != nil {
		c.JSON(401, gin.H{"error": "Invalid token"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// ownPathID parses the :id path parameter and enforces that it matches
// the authenticated subject
func ownPathID(c *gin.Context) (primitive.ObjectID, bool) {
	id, ok := parsePathID(c, "id", "User not found")
	if !ok {
		return primitive.NilObjectID, false
	}
	if id.Hex() != c.GetString(middleware.ContextSubject) {
		c.JSON(403, gin.H{"error": "You do not have permission to access this resource"})
		return primitive.NilObjectID, false
	}
	return id, true
}
