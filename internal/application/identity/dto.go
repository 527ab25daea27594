package identity

import (
	"github.com/google/uuid"

	"github.com/kopitoko/backend/internal/domain/customer"
	"github.com/kopitoko/backend/internal/infrastructure/auth"
)

// RegisterRequest represents an account registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=1,max=255"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest represents a display name change
type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
}

// ProfileResponse represents the authenticated account
type ProfileResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Role  string    `json:"role"`
}

// ToProfileResponse converts a domain customer to a response DTO
func ToProfileResponse(c *customer.Customer) ProfileResponse {
	return ProfileResponse{
		ID:    c.ID,
		Email: c.Email,
		Name:  c.Name,
		Role:  string(c.Role),
	}
}

// LoginResponse carries tokens and the account profile
type LoginResponse struct {
	Tokens  *auth.TokenPair `json:"tokens"`
	Profile ProfileResponse `json:"profile"`
}
