package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoleName is the closed set of role names known to the system.
type RoleName string

const (
	RoleUser  RoleName = "user"
	RoleAdmin RoleName = "admin"
)

// Valid reports whether the role name is one of the known roles.
func (r RoleName) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// String returns the string representation
func (r RoleName) String() string {
	return string(r)
}

// Role represents a stored role document
type Role struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      RoleName           `json:"name" bson:"name"`
	CreatedAt int64              `json:"-" bson:"created_at,omitempty"`
}

// CreateRoleRequest represents a request to create a role
type CreateRoleRequest struct {
	Name string `json:"name"`
}

// Validate checks the request fields. Role names come from the same
// closed set registration accepts.
func (r *CreateRoleRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "Role name is required"})
	} else if !RoleName(r.Name).Valid() {
		errs = append(errs, FieldError{Field: "name", Message: "Invalid role. Allowed roles: user, admin"})
	}
	return errs
}

// UpdateRoleRequest represents an administrative role rename
type UpdateRoleRequest struct {
	Name *string `json:"name,omitempty"`
}

// Validate checks the request fields
func (r *UpdateRoleRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Name != nil && !RoleName(*r.Name).Valid() {
		errs = append(errs, FieldError{Field: "name", Message: "Invalid role. Allowed roles: user, admin"})
	}
	return errs
}

// FieldError describes a single invalid request field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
