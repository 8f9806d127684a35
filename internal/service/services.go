package service

import (
	"go.uber.org/zap"

	"github.com/shopfoundry/go-catalog-backend/internal/storage"
	"github.com/shopfoundry/go-catalog-backend/pkg/config"
)

// Services aggregates all business services
type Services struct {
	Tokens     *TokenService
	Users      *UserService
	Roles      *RoleService
	Categories *CategoryService
	Products   *ProductService
}

// NewServices creates all services
func NewServices(store storage.Store, cfg *config.Config, logger *zap.Logger) *Services {
	tokens := NewTokenService(cfg, logger)
	return &Services{
		Tokens:     tokens,
		Users:      NewUserService(store, cfg, tokens, logger),
		Roles:      NewRoleService(store, logger),
		Categories: NewCategoryService(store, logger),
		Products:   NewProductService(store, logger),
	}
}
