package storage

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shopfoundry/go-catalog-backend/internal/domain"
)

// Common errors
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrDatabase      = errors.New("database error")
)

// UserStore defines the interface for user storage operations
type UserStore interface {
	// Create creates a new user
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetByUsernameOrEmail retrieves a user matching either unique field
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error)

	// GetAll retrieves all users
	GetAll(ctx context.Context) ([]*domain.User, error)

	// Update updates a user
	Update(ctx context.Context, user *domain.User) error

	// Delete deletes a user
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// RoleStore defines the interface for role storage operations
type RoleStore interface {
	// Create creates a new role
	Create(ctx context.Context, role *domain.Role) error

	// GetByID retrieves a role by ID
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Role, error)

	// GetByName retrieves a role by name
	GetByName(ctx context.Context, name domain.RoleName) (*domain.Role, error)

	// GetAll retrieves all roles
	GetAll(ctx context.Context) ([]*domain.Role, error)

	// Update updates a role
	Update(ctx context.Context, role *domain.Role) error

	// Delete deletes a role
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CategoryStore defines the interface for category storage operations
type CategoryStore interface {
	// Create creates a new category
	Create(ctx context.Context, category *domain.Category) error

	// GetByID retrieves a category by ID
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error)

	// GetByName retrieves a category by name
	GetByName(ctx context.Context, name string) (*domain.Category, error)

	// GetAll retrieves all categories
	GetAll(ctx context.Context) ([]*domain.Category, error)

	// Update updates a category
	Update(ctx context.Context, category *domain.Category) error

	// Delete deletes a category
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProductStore defines the interface for product storage operations
type ProductStore interface {
	// Create creates a new product
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by ID
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)

	// GetAll retrieves all products
	GetAll(ctx context.Context) ([]*domain.Product, error)

	// GetAllByCategory retrieves all products referencing a category
	GetAllByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]*domain.Product, error)

	// Update updates a product
	Update(ctx context.Context, product *domain.Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Store aggregates all storage interfaces
type Store interface {
	Users() UserStore
	Roles() RoleStore
	Categories() CategoryStore
	Products() ProductStore

	// Close closes the storage connection
	Close() error

	// Ping checks if the storage is alive
	Ping(ctx context.Context) error
}
