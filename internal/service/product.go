package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/shopfoundry/go-catalog-backend/internal/domain"
	"github.com/shopfoundry/go-catalog-backend/internal/storage"
)

// ErrCategoryNotFound is returned when a product write references a
// category that does not exist. The check runs before any write.
var ErrCategoryNotFound = errors.New("category not found")

// ProductService handles product CRUD and the product→category
// referential check
type ProductService struct {
	store  storage.Store
	logger *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(store storage.Store, logger *zap.Logger) *ProductService {
	return &ProductService{
		store:  store,
		logger: logger.Named("product-service"),
	}
}

func (s *ProductService) resolveCategory(ctx context.Context, hex string) (*domain.Category, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return nil, ErrCategoryNotFound
	}
	category, err := s.store.Categories().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to resolve category: %w", err)
	}
	return category, nil
}

// Create creates a product. The referenced category must exist.
func (s *ProductService) Create(ctx context.Context, req *domain.CreateProductRequest) (*domain.ProductView, error) {
	category, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	product := &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		CategoryID:  category.ID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}

	if err := s.store.Products().Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.Hex()),
		zap.String("name", product.Name))
	view := product.View(category)
	return &view, nil
}

// GetByID retrieves a product with its category resolved. A dangling
// category reference renders as a null category, not an error.
func (s *ProductService) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ProductView, error) {
	product, err := s.store.Products().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	view := product.View(s.categoryOrNil(ctx, product.CategoryID))
	return &view, nil
}

// List retrieves all products, optionally filtered by category. The filter
// category must exist.
func (s *ProductService) List(ctx context.Context, categoryID *primitive.ObjectID) ([]domain.ProductView, error) {
	var products []*domain.Product
	var err error

	if categoryID != nil {
		if _, err := s.store.Categories().GetByID(ctx, *categoryID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		products, err = s.store.Products().GetAllByCategory(ctx, *categoryID)
	} else {
		products, err = s.store.Products().GetAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	categories := make(map[primitive.ObjectID]*domain.Category)
	views := make([]domain.ProductView, 0, len(products))
	for _, product := range products {
		category, seen := categories[product.CategoryID]
		if !seen {
			category = s.categoryOrNil(ctx, product.CategoryID)
			categories[product.CategoryID] = category
		}
		views = append(views, product.View(category))
	}
	return views, nil
}

// Update applies a partial update to a product. A changed category
// reference is resolved before anything is written.
func (s *ProductService) Update(ctx context.Context, id primitive.ObjectID, req *domain.UpdateProductRequest) (*domain.ProductView, error) {
	product, err := s.store.Products().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category := s.categoryOrNil(ctx, product.CategoryID)
	if req.Category != nil {
		category, err = s.resolveCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		product.CategoryID = category.ID
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}

	if err := s.store.Products().Update(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product updated", zap.String("product_id", product.ID.Hex()))
	view := product.View(category)
	return &view, nil
}

// Delete deletes a product and returns it
func (s *ProductService) Delete(ctx context.Context, id primitive.ObjectID) (*domain.ProductView, error) {
	product, err := s.store.Products().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.store.Products().Delete(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info("Product deleted", zap.String("product_id", id.Hex()))
	view := product.View(s.categoryOrNil(ctx, product.CategoryID))
	return &view, nil
}

func (s *ProductService) categoryOrNil(ctx context.Context, id primitive.ObjectID) *domain.Category {
	category, err := s.store.Categories().GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("Failed to resolve product category",
				zap.String("category_id", id.Hex()), zap.Error(err))
		}
		return nil
	}
	return category
}
