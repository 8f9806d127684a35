package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product represents a catalog product referencing a category by id
type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Price       float64            `json:"price" bson:"price"`
	Stock       int64              `json:"stock" bson:"stock"`
	CategoryID  primitive.ObjectID `json:"categoryId" bson:"category_id"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updated_at"`
}

// ProductView is a product with its category resolved, as returned by reads.
// Category is null when the referenced category no longer exists.
type ProductView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Stock       int64     `json:"stock"`
	Category    *Category `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// View resolves the product against its category
func (p *Product) View(category *Category) ProductView {
	return ProductView{
		ID:          p.ID.Hex(),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    category,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       *float64 `json:"price"`
	Stock       *int64   `json:"stock,omitempty"`
	Category    string   `json:"category"`
}

// Validate checks the request fields
func (r *CreateProductRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "Name is required"})
	}
	if r.Price == nil {
		errs = append(errs, FieldError{Field: "price", Message: "Price is required"})
	} else if *r.Price < 0 {
		errs = append(errs, FieldError{Field: "price", Message: "Price must be greater or equal to 0"})
	}
	if r.Stock != nil && *r.Stock < 0 {
		errs = append(errs, FieldError{Field: "stock", Message: "Stock must be greater or equal to 0"})
	}
	if r.Category == "" {
		errs = append(errs, FieldError{Field: "category", Message: "Category is required"})
	} else if _, err := primitive.ObjectIDFromHex(r.Category); err != nil {
		errs = append(errs, FieldError{Field: "category", Message: "Category must be a valid id"})
	}
	return errs
}

// UpdateProductRequest represents a partial product update
type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Stock       *int64   `json:"stock,omitempty"`
	Category    *string  `json:"category,omitempty"`
}

// Validate checks the request fields
func (r *UpdateProductRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Name != nil && *r.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "Name must not be empty"})
	}
	if r.Price != nil && *r.Price < 0 {
		errs = append(errs, FieldError{Field: "price", Message: "Price must be greater or equal to 0"})
	}
	if r.Stock != nil && *r.Stock < 0 {
		errs = append(errs, FieldError{Field: "stock", Message: "Stock must be greater or equal to 0"})
	}
	if r.Category != nil {
		if _, err := primitive.ObjectIDFromHex(*r.Category); err != nil {
			errs = append(errs, FieldError{Field: "category", Message: "Category must be a valid id"})
		}
	}
	return errs
}
