package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/shopfoundry/go-catalog-backend/internal/domain"
	"github.com/shopfoundry/go-catalog-backend/internal/storage"
)

// CategoryService handles category CRUD
type CategoryService struct {
	store  storage.Store
	logger *zap.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(store storage.Store, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		store:  store,
		logger: logger.Named("category-service"),
	}
}

// Create creates a category, recording who created it
func (s *CategoryService) Create(ctx context.Context, req *domain.CreateCategoryRequest, by domain.CreatedBy) (*domain.Category, error) {
	category := &domain.Category{
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   by,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.store.Categories().Create(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("Category created",
		zap.String("category_id", category.ID.Hex()),
		zap.String("name", category.Name))
	return category, nil
}

// GetByID retrieves a category by id
func (s *CategoryService) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error) {
	return s.store.Categories().GetByID(ctx, id)
}

// GetByName retrieves a category by name
func (s *CategoryService) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	return s.store.Categories().GetByName(ctx, name)
}

// List retrieves all categories
func (s *CategoryService) List(ctx context.Context) ([]*domain.Category, error) {
	return s.store.Categories().GetAll(ctx)
}

// Update applies a partial update to a category
func (s *CategoryService) Update(ctx context.Context, id primitive.ObjectID, req *domain.UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.store.Categories().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}

	if err := s.store.Categories().Update(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("Category updated", zap.String("category_id", category.ID.Hex()))
	return category, nil
}

// Delete deletes a category and returns it. Products referencing the
// category are left in place; their reads render a null category.
func (s *CategoryService) Delete(ctx context.Context, id primitive.ObjectID) (*domain.Category, error) {
	category, err := s.store.Categories().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.store.Categories().Delete(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info("Category deleted", zap.String("category_id", id.Hex()))
	return category, nil
}

// Products lists the products of a category with the category resolved.
// The category must exist.
func (s *CategoryService) Products(ctx context.Context, id primitive.ObjectID) ([]domain.ProductView, error) {
	category, err := s.store.Categories().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	products, err := s.store.Products().GetAllByCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	views := make([]domain.ProductView, 0, len(products))
	for _, product := range products {
		views = append(views, product.View(category))
	}
	return views, nil
}
