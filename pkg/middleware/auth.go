package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopfoundry/go-catalog-backend/internal/domain"
	"github.com/shopfoundry/go-catalog-backend/internal/service"
	"github.com/shopfoundry/go-catalog-backend/internal/storage"
)

// Context keys set by Authenticate
const (
	ContextSubject = "subject"
	ContextEmail   = "email"
	ContextRole    = "role"
)

// TokenVerifier verifies a bearer token and returns its claims
type TokenVerifier interface {
	Verify(token string) (*service.Claims, error)
}

// RoleResolver resolves the live role of a token subject from the store.
// Injected rather than read from the token so role changes apply without
// waiting for tokens to expire.
type RoleResolver interface {
	ResolveRole(ctx context.Context, subject string) (domain.RoleName, error)
}

// Authenticate validates the bearer token and sets the identity claims in
// the request context. The Authorization header is accepted both as
// "Bearer <token>" and as a raw token.
func Authenticate(verifier TokenVerifier, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(401, gin.H{"error": "No token provided, access denied"})
			c.Abort()
			return
		}

		tokenString := authHeader
		if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			tokenString = strings.TrimSpace(parts[1])
		}
		if tokenString == "" {
			c.JSON(401, gin.H{"error": "No token provided, access denied"})
			c.Abort()
			return
		}

		claims, err := verifier.Verify(tokenString)
		if err != nil {
			c.JSON(401, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(ContextSubject, claims.Subject)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role.String())

		c.Next()
	}
}

// RequireRole allows the request through only when the subject's current
// role, re-resolved from the store, is in the allowed set.
func RequireRole(resolver RoleResolver, logger *zap.Logger, roles ...domain.RoleName) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := c.GetString(ContextSubject)
		if subject == "" {
			c.JSON(401, gin.H{"error": "No token provided, access denied"})
			c.Abort()
			return
		}

		role, err := resolver.ResolveRole(c.Request.Context(), subject)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				c.JSON(403, gin.H{"error": "You do not have permission to access this resource"})
			} else {
				logger.Error("Failed to resolve role",
					zap.String("subject", subject),
					zap.Error(err))
				c.JSON(500, gin.H{"error": "Internal server error"})
			}
			c.Abort()
			return
		}

		allowed := false
		for _, r := range roles {
			if role == r {
				allowed = true
				break
			}
		}
		if !allowed {
			c.JSON(403, gin.H{"error": "You do not have permission to access this resource"})
			c.Abort()
			return
		}

		// Live role wins over the token claim
		c.Set(ContextRole, role.String())

		c.Next()
	}
}
