package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered user. The password hash is never serialized.
type User struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username     string             `json:"username" bson:"username"`
	Email        string             `json:"email" bson:"email"`
	PasswordHash string             `json:"-" bson:"password_hash"`
	RoleID       primitive.ObjectID `json:"roleId" bson:"role_id"`
	CreatedAt    time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updated_at"`
}

// PublicUser is the user summary returned by the API
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Public returns the public summary of the user with its resolved role name
func (u *User) Public(role RoleName) PublicUser {
	return PublicUser{
		ID:       u.ID.Hex(),
		Username: u.Username,
		Email:    u.Email,
		Role:     role.String(),
	}
}

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate checks the request fields
func (r *RegisterRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Username == "" {
		errs = append(errs, FieldError{Field: "username", Message: "Username is required"})
	}
	if r.Email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "Email is required"})
	}
	if r.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "Password is required"})
	}
	if r.Role == "" {
		errs = append(errs, FieldError{Field: "role", Message: "Role is required"})
	}
	return errs
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the request fields
func (r *LoginRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "Email is required"})
	}
	if r.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "Password is required"})
	}
	return errs
}

// LoginResponse represents a login response
type LoginResponse struct {
	Message string     `json:"message"`
	Token   string     `json:"token"`
	User    PublicUser `json:"user"`
}

// UpdateUserRequest represents a partial self-service user update
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// Validate checks the request fields
func (r *UpdateUserRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Username != nil && *r.Username == "" {
		errs = append(errs, FieldError{Field: "username", Message: "Username must not be empty"})
	}
	if r.Email != nil && *r.Email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "Email must not be empty"})
	}
	if r.Password != nil && *r.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "Password must not be empty"})
	}
	return errs
}
