package memory

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shopfoundry/go-catalog-backend/internal/domain"
	"github.com/shopfoundry/go-catalog-backend/internal/storage"
)

// Store implements an in-memory storage
type Store struct {
	users      *UserStore
	roles      *RoleStore
	categories *CategoryStore
	products   *ProductStore
}

// NewStore creates a new in-memory store with the built-in roles seeded
func NewStore() *Store {
	s := &Store{
		users:      &UserStore{data: make(map[string]*domain.User)},
		roles:      &RoleStore{data: make(map[string]*domain.Role)},
		categories: &CategoryStore{data: make(map[string]*domain.Category)},
		products:   &ProductStore{data: make(map[string]*domain.Product)},
	}

	for _, name := range []domain.RoleName{domain.RoleUser, domain.RoleAdmin} {
		role := &domain.Role{ID: primitive.NewObjectID(), Name: name}
		s.roles.data[role.ID.Hex()] = role
	}

	return s
}

func (s *Store) Users() storage.UserStore          { return s.users }
func (s *Store) Roles() storage.RoleStore          { return s.roles }
func (s *Store) Categories() storage.CategoryStore { return s.categories }
func (s *Store) Products() storage.ProductStore    { return s.products }
func (s *Store) Close() error                      { return nil }
func (s *Store) Ping(ctx context.Context) error    { return nil }

// UserStore implements in-memory user storage
type UserStore struct {
	mu   sync.RWMutex
	data map[string]*domain.User
}

func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.data {
		if existing.Username == user.Username || existing.Email == user.Email {
			return storage.ErrAlreadyExists
		}
	}

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	s.data[user.ID.Hex()] = user
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.data[id.Hex()]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return user, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.data {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.data {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *UserStore) GetByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.data {
		if user.Username == username || user.Email == email {
			return user, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *UserStore) GetAll(ctx context.Context) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*domain.User, 0, len(s.data))
	for _, user := range s.data {
		users = append(users, user)
	}
	return users, nil
}

func (s *UserStore) Update(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[user.ID.Hex()]; !exists {
		return storage.ErrNotFound
	}
	for _, existing := range s.data {
		if existing.ID != user.ID && (existing.Username == user.Username || existing.Email == user.Email) {
			return storage.ErrAlreadyExists
		}
	}
	user.UpdatedAt = time.Now()
	s.data[user.ID.Hex()] = user
	return nil
}

func (s *UserStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[id.Hex()]; !exists {
		return storage.ErrNotFound
	}
	delete(s.data, id.Hex())
	return nil
}

// RoleStore implements in-memory role storage
type RoleStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Role
}

func (s *RoleStore) Create(ctx context.Context, role *domain.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.data {
		if existing.Name == role.Name {
			return storage.ErrAlreadyExists
		}
	}

	if role.ID.IsZero() {
		role.ID = primitive.NewObjectID()
	}
	s.data[role.ID.Hex()] = role
	return nil
}

func (s *RoleStore) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	role, exists := s.data[id.Hex()]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return role, nil
}

func (s *RoleStore) GetByName(ctx context.Context, name domain.RoleName) (*domain.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, role := range s.data {
		if role.Name == name {
			return role, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *RoleStore) GetAll(ctx context.Context) ([]*domain.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	roles := make([]*domain.Role, 0, len(s.data))
	for _, role := range s.data {
		roles = append(roles, role)
	}
	return roles, nil
}

func (s *RoleStore) Update(ctx context.Context, role *domain.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[role.ID.Hex()]; !exists {
		return storage.ErrNotFound
	}
	for _, existing := range s.data {
		if existing.Name == role.Name && existing.ID != role.ID {
			return storage.ErrAlreadyExists
		}
	}
	s.data[role.ID.Hex()] = role
	return nil
}

func (s *RoleStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[id.Hex()]; !exists {
		return storage.ErrNotFound
	}
	delete(s.data, id.Hex())
	return nil
}

// CategoryStore implements in-memory category storage
type CategoryStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Category
}

func (s *CategoryStore) Create(ctx context.Context, category *domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if category.ID.IsZero() {
		category.ID = primitive.NewObjectID()
	}
	category.CreatedAt = time.Now()
	category.UpdatedAt = time.Now()
	s.data[category.ID.Hex()] = category
	return nil
}

func (s *CategoryStore) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	category, exists := s.data[id.Hex()]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return category, nil
}

func (s *CategoryStore) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, category := range s.data {
		if category.Name == name {
			return category, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *CategoryStore) GetAll(ctx context.Context) ([]*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]*domain.Category, 0, len(s.data))
	for _, category := range s.data {
		categories = append(categories, category)
	}
	return categories, nil
}

func (s *CategoryStore) Update(ctx context.Context, category *domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[category.ID.Hex()]; !exists {
		return storage.ErrNotFound
	}
	category.UpdatedAt = time.Now()
	s.data[category.ID.Hex()] = category
	return nil
}

func (s *CategoryStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[id.Hex()]; !exists {
		return storage.ErrNotFound
	}
	delete(s.data, id.Hex())
	return nil
}

// ProductStore implements in-memory product storage
type ProductStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Product
}

func (s *ProductStore) Create(ctx context.Context, product *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()
	s.data[product.ID.Hex()] = product
	return nil
}

func (s *ProductStore) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, exists := s.data[id.Hex()]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return product, nil
}

func (s *ProductStore) GetAll(ctx context.Context) ([]*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]*domain.Product, 0, len(s.data))
	for _, product := range s.data {
		products = append(products, product)
	}
	return products, nil
}

func (s *ProductStore) GetAllByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]*domain.Product, 0)
	for _, product := range s.data {
		if product.CategoryID == categoryID {
			products = append(products, product)
		}
	}
	return products, nil
}

func (s *ProductStore) Update(ctx context.Context, product *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[product.ID.Hex()]; !exists {
		return storage.ErrNotFound
	}
	product.UpdatedAt = time.Now()
	s.data[product.ID.Hex()] = product
	return nil
}

func (s *ProductStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[id.Hex()]; !exists {
		return storage.ErrNotFound
	}
	delete(s.data, id.Hex())
	return nil
}
