package dto

import (
	"strings"

	"github.com/spec-kit/resource-service/internal/domain"
)

// CreateUserRequest payload for POST /users.
type CreateUserRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email,max=320"`
	IsAdmin *bool  `json:"isAdmin" validate:"required"`
}

// Normalize trims surrounding whitespace.
func (r *CreateUserRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
}

// UpdateUserRequest payload for PUT /users/:id. A missing isAdmin keeps the stored flag.
type UpdateUserRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email,max=320"`
	IsAdmin *bool  `json:"isAdmin"`
}

// Normalize trims surrounding whitespace.
func (r *UpdateUserRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
}

// UserResponse is the wire shape of a user.
type UserResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// UpdateUserResponse wraps the updated user with a confirmation message.
type UpdateUserResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// MessageResponse carries a confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}
}
