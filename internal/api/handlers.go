package api

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/shopfoundry/go-catalog-backend/internal/domain"
	"github.com/shopfoundry/go-catalog-backend/internal/service"
	"github.com/shopfoundry/go-catalog-backend/pkg/config"
)

// Handlers aggregates all HTTP handlers
type Handlers struct {
	services *service.Services
	cfg      *config.Config
	logger   *zap.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(services *service.Services, cfg *config.Config, logger *zap.Logger) *Handlers {
	return &Handlers{
		services: services,
		cfg:      cfg,
		logger:   logger.Named("handlers"),
	}
}

// Status handles the / and /health endpoints
func (h *Handlers) Status(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"service": "catalog-backend",
	})
}

// badRequest writes a field-level validation failure
func badRequest(c *gin.Context, errs []domain.FieldError) {
	c.JSON(400, gin.H{
		"message": "Bad request",
		"errors":  errs,
	})
}

// parsePathID parses a path identifier. A syntactically invalid identifier
// is reported as the entity not being found, never as a server error.
func parsePathID(c *gin.Context, param, notFoundMsg string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		c.JSON(404, gin.H{"error": notFoundMsg})
		return primitive.NilObjectID, false
	}
	return id, true
}
