package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/shopfoundry/go-catalog-backend/internal/domain"
	"github.com/shopfoundry/go-catalog-backend/internal/storage"
	"github.com/shopfoundry/go-catalog-backend/pkg/config"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("username or email already exists")
	ErrUnknownRole        = errors.New("unknown role")
)

// UserService handles registration, login and user management
type UserService struct {
	store  storage.Store
	cfg    *config.Config
	tokens *TokenService
	logger *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(store storage.Store, cfg *config.Config, tokens *TokenService, logger *zap.Logger) *UserService {
	return &UserService{
		store:  store,
		cfg:    cfg,
		tokens: tokens,
		logger: logger.Named("user-service"),
	}
}

// Register registers a new user. The role name must resolve to a stored role
// and username/email must both be free.
func (s *UserService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error) {
	existing, err := s.store.Users().GetByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	roleName := domain.RoleName(req.Role)
	if !roleName.Valid() {
		return nil, ErrUnknownRole
	}
	role, err := s.store.Roles().GetByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUnknownRole
		}
		return nil, fmt.Errorf("failed to resolve role: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		RoleID:       role.ID,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.store.Users().Create(ctx, user); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID.Hex()))
	return user, nil
}

// Login authenticates a user by email and password and issues a token.
// Any mismatch yields ErrInvalidCredentials without revealing which field
// was wrong.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.LoginResponse, error) {
	user, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	role, err := s.store.Roles().GetByID(ctx, user.RoleID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve role: %w", err)
	}

	token, err := s.tokens.Issue(user, role.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID.Hex()))
	return &domain.LoginResponse{
		Message: "Login successful!",
		Token:   token,
		User:    user.Public(role.Name),
	}, nil
}

// GetPublicByID retrieves a user summary with its role name resolved
func (s *UserService) GetPublicByID(ctx context.Context, id primitive.ObjectID) (*domain.PublicUser, error) {
	user, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	role, err := s.store.Roles().GetByID(ctx, user.RoleID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve role: %w", err)
	}
	pub := user.Public(role.Name)
	return &pub, nil
}

// List retrieves all users
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.store.Users().GetAll(ctx)
}

// Update applies a partial update to a user, re-checking unique fields
// and rehashing the password when one is supplied.
func (s *UserService) Update(ctx context.Context, id primitive.ObjectID, req *domain.UpdateUserRequest) (*domain.PublicUser, error) {
	user, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Each changed unique field is checked on its own so a match on the
	// unchanged field never hides a conflict on the other.
	if req.Username != nil && *req.Username != user.Username {
		existing, err := s.store.Users().GetByUsername(ctx, *req.Username)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("failed to check existing user: %w", err)
		}
		if existing != nil {
			return nil, ErrUserExists
		}
		user.Username = *req.Username
	}
	if req.Email != nil && *req.Email != user.Email {
		existing, err := s.store.Users().GetByEmail(ctx, *req.Email)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("failed to check existing user: %w", err)
		}
		if existing != nil {
			return nil, ErrUserExists
		}
		user.Email = *req.Email
	}

	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.store.Users().Update(ctx, user); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	role, err := s.store.Roles().GetByID(ctx, user.RoleID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve role: %w", err)
	}

	s.logger.Info("User updated", zap.String("user_id", user.ID.Hex()))
	pub := user.Public(role.Name)
	return &pub, nil
}

// Delete deletes a user
func (s *UserService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.store.Users().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("User deleted", zap.String("user_id", id.Hex()))
	return nil
}

// ResolveRole resolves the current role of the user identified by a token
// subject. Authorization decisions go through this lookup rather than the
// role claim so revocations take effect immediately.
func (s *UserService) ResolveRole(ctx context.Context, subject string) (domain.RoleName, error) {
	id, err := primitive.ObjectIDFromHex(subject)
	if err != nil {
		return "", storage.ErrNotFound
	}
	user, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	role, err := s.store.Roles().GetByID(ctx, user.RoleID)
	if err != nil {
		return "", err
	}
	return role.Name, nil
}
