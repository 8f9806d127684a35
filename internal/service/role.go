package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/shopfoundry/go-catalog-backend/internal/domain"
	"github.com/shopfoundry/go-catalog-backend/internal/storage"
)

// ErrRoleExists is returned when a role name is already taken
var ErrRoleExists = errors.New("role already exists")

// RoleService handles administrative role management
type RoleService struct {
	store  storage.Store
	logger *zap.Logger
}

// NewRoleService creates a new RoleService
func NewRoleService(store storage.Store, logger *zap.Logger) *RoleService {
	return &RoleService{
		store:  store,
		logger: logger.Named("role-service"),
	}
}

// Create creates a role
func (s *RoleService) Create(ctx context.Context, name string) (*domain.Role, error) {
	role := &domain.Role{Name: domain.RoleName(name)}
	if err := s.store.Roles().Create(ctx, role); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, ErrRoleExists
		}
		return nil, err
	}

	s.logger.Info("Role created", zap.String("role_id", role.ID.Hex()), zap.String("name", name))
	return role, nil
}

// GetByID retrieves a role by id
func (s *RoleService) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Role, error) {
	return s.store.Roles().GetByID(ctx, id)
}

// List retrieves all roles
func (s *RoleService) List(ctx context.Context) ([]*domain.Role, error) {
	return s.store.Roles().GetAll(ctx)
}

// Update renames a role
func (s *RoleService) Update(ctx context.Context, id primitive.ObjectID, req *domain.UpdateRoleRequest) (*domain.Role, error) {
	role, err := s.store.Roles().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		role.Name = domain.RoleName(*req.Name)
	}

	if err := s.store.Roles().Update(ctx, role); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, ErrRoleExists
		}
		return nil, err
	}

	s.logger.Info("Role updated", zap.String("role_id", role.ID.Hex()))
	return role, nil
}

// Delete deletes a role
func (s *RoleService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.store.Roles().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Role deleted", zap.String("role_id", id.Hex()))
	return nil
}
