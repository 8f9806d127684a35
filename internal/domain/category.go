package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreatedBy records who created a category, snapshotted at creation time
type CreatedBy struct {
	Username string `json:"username" bson:"username"`
	Role     string `json:"role" bson:"role"`
}

// Category represents a product category
type Category struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	CreatedBy   CreatedBy          `json:"createdBy" bson:"created_by"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updated_at"`
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Validate checks the request fields
func (r *CreateCategoryRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "Name is required"})
	}
	return errs
}

// UpdateCategoryRequest represents a partial category update
type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Validate checks the request fields
func (r *UpdateCategoryRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Name != nil && *r.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "Name must not be empty"})
	}
	return errs
}
