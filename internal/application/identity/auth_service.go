package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kopitoko/backend/internal/domain/customer"
	"github.com/kopitoko/backend/internal/domain/shared"
	"github.com/kopitoko/backend/internal/infrastructure/auth"
)

// ErrInvalidCredentials is returned for bad email/password combinations.
// The same error covers unknown accounts to avoid leaking which emails
// are registered.
var ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")

// TokenIssuer issues and refreshes JWT token pairs
type TokenIssuer interface {
	GenerateTokenPair(input auth.GenerateTokenInput) (*auth.TokenPair, error)
	ValidateRefreshToken(token string) (*auth.Claims, error)
}

// AuthService handles registration, login, and account operations
type AuthService struct {
	customerRepo customer.Repository
	tokens       TokenIssuer
	logger       *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(customerRepo customer.Repository, tokens TokenIssuer, logger *zap.Logger) *AuthService {
	return &AuthService{
		customerRepo: customerRepo,
		tokens:       tokens,
		logger:       logger,
	}
}

// Register creates a new customer account
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*ProfileResponse, error) {
	if existing, err := s.customerRepo.FindByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "Email is already registered")
	}

	c, err := customer.NewCustomer(req.Email, req.Name, req.Password)
	if err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info("customer registered", zap.String("customer_id", c.ID.String()))

	resp := ToProfileResponse(c)
	return &resp, nil
}

// Login authenticates a customer and issues a token pair
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	c, err := s.customerRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !c.VerifyPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}
	if !c.IsActive() {
		return nil, shared.NewDomainError("ACCOUNT_DISABLED", "Account is disabled")
	}

	pair, err := s.tokens.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: c.ID,
		Email:  c.Email,
		Role:   string(c.Role),
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("customer logged in", zap.String("customer_id", c.ID.String()))

	return &LoginResponse{
		Tokens:  pair,
		Profile: ToProfileResponse(c),
	}, nil
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*auth.TokenPair, error) {
	claims, err := s.tokens.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.ErrUnauthorized
	}

	c, err := s.customerRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	if !c.IsActive() {
		return nil, shared.NewDomainError("ACCOUNT_DISABLED", "Account is disabled")
	}

	return s.tokens.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: c.ID,
		Email:  c.Email,
		Role:   string(c.Role),
	})
}

// Profile returns the authenticated account
func (s *AuthService) Profile(ctx context.Context, customerID uuid.UUID) (*ProfileResponse, error) {
	c, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	resp := ToProfileResponse(c)
	return &resp, nil
}

// UpdateProfile changes the account's display name
func (s *AuthService) UpdateProfile(ctx context.Context, customerID uuid.UUID, req UpdateProfileRequest) (*ProfileResponse, error) {
	c, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := c.UpdateProfile(req.Name); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := ToProfileResponse(c)
	return &resp, nil
}

// ChangePassword updates the account password after verifying the
// current one.
func (s *AuthService) ChangePassword(ctx context.Context, customerID uuid.UUID, req ChangePasswordRequest) error {
	c, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return err
	}
	if !c.VerifyPassword(req.CurrentPassword) {
		return ErrInvalidCredentials
	}
	if err := c.ChangePassword(req.NewPassword); err != nil {
		return err
	}
	return s.customerRepo.Save(ctx, c)
}
