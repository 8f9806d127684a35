package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/shopfoundry/go-catalog-backend/internal/domain"
	"github.com/shopfoundry/go-catalog-backend/pkg/config"
)

// ErrInvalidToken is returned when a token is malformed, badly signed or expired
var ErrInvalidToken = errors.New("invalid token")

// Claims are the identity claims carried by an issued token
type Claims struct {
	Subject string
	Email   string
	Role    domain.RoleName
}

// TokenService signs and verifies the bearer tokens used by the API
type TokenService struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewTokenService creates a new TokenService
func NewTokenService(cfg *config.Config, logger *zap.Logger) *TokenService {
	return &TokenService{
		cfg:    cfg,
		logger: logger.Named("token-service"),
	}
}

// Issue signs a token for the user with its resolved role name embedded
func (s *TokenService) Issue(user *domain.User, role domain.RoleName) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID.Hex(),
		"email": user.Email,
		"role":  role.String(),
		"iss":   s.cfg.JWT.Issuer,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Duration(s.cfg.JWT.ExpiryMinutes) * time.Minute).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWT.Secret))
}

// Verify validates a token and returns its identity claims
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWT.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return &Claims{
		Subject: sub,
		Email:   email,
		Role:    domain.RoleName(role),
	}, nil
}
