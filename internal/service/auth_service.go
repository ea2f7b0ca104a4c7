package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"trustmart/internal/auth"
	apperrors "trustmart/internal/errors"
	"trustmart/internal/model"
	"trustmart/internal/repository"
	"trustmart/internal/validation"
)

// RoleBusiness marks tokens issued to business accounts. Business
// sessions share the codec with user tokens but never pass the API
// role table.
const RoleBusiness = "business"

// AuthService handles login and signup for users and businesses.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *model.User, error)
	Profile(ctx context.Context, id uint) (*model.User, error)
	SignupBusiness(ctx context.Context, in *validation.BusinessSignup) (*model.Business, error)
	LoginBusiness(ctx context.Context, email, password string) (string, *model.Business, error)
}

type authService struct {
	users      repository.UserRepository
	businesses repository.BusinessRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, businesses repository.BusinessRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		users:      users,
		businesses: businesses,
		jwtService: jwtService,
	}
}

// Login authenticates a user and issues a 24h token.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return "", nil, apperrors.ErrAccountInactive
	}

	token, err := s.jwtService.Generate(user.ID, user.Email, user.Name, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	return token, user, nil
}

// Profile returns the authenticated user's own record.
func (s *authService) Profile(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// SignupBusiness registers a new business account.
func (s *authService) SignupBusiness(ctx context.Context, in *validation.BusinessSignup) (*model.Business, error) {
	existing, err := s.businesses.FindByEmail(ctx, in.Email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrBusinessExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check business existence: %w", err)
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	business := &model.Business{
		ID:           uuid.New(),
		BusinessName: in.BusinessName,
		Email:        in.Email,
		PasswordHash: hashed,
	}

	if err := s.businesses.Create(ctx, business); err != nil {
		return nil, fmt.Errorf("create business: %w", err)
	}

	return business, nil
}

// LoginBusiness authenticates a business and issues a session token for
// the dashboard cookie.
func (s *authService) LoginBusiness(ctx context.Context, email, password string) (string, *model.Business, error) {
	business, err := s.businesses.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(business.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.Generate(0, business.Email, business.BusinessName, RoleBusiness)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	return token, business, nil
}
