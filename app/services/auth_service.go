package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/paddock-dev/paddock/app/models"
	"github.com/paddock-dev/paddock/app/repositories"
	"github.com/paddock-dev/paddock/pkg/auth"
	"github.com/paddock-dev/paddock/pkg/logger"
	"github.com/paddock-dev/paddock/pkg/validate"
)

// AuthService owns registration, login and logout.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService(users *repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// RegisterForm is the registration request payload.
type RegisterForm struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role"`
}

// Register creates an account and issues a session token. The email is
// normalised (trimmed, lowercased); a role outside {buyer, seller} defaults
// to buyer rather than erroring.
func (s *AuthService) Register(ctx context.Context, form RegisterForm) (models.User, string, error) {
	form.Email = strings.ToLower(strings.TrimSpace(form.Email))

	if errs := validate.Struct(&form); validate.HasErrors(errs) {
		return models.User{}, "", &ValidationError{Fields: errs}
	}

	if _, err := s.users.FindByEmail(form.Email); err == nil {
		return models.User{}, "", ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, "", err
	}

	hash, err := auth.HashPassword(form.Password)
	if err != nil {
		return models.User{}, "", err
	}

	user := models.User{
		Email:    form.Email,
		Password: hash,
		Role:     models.ParseRole(form.Role),
	}
	if err := s.users.Create(&user); err != nil {
		// Lost a race with a concurrent registration for the same email.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.User{}, "", ErrEmailTaken
		}
		return models.User{}, "", err
	}

	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return models.User{}, "", err
	}

	logger.WithCtx(ctx).Info("user registered", "user_id", user.ID, "role", user.Role)
	return user, token, nil
}

// Login verifies credentials and issues a session token. The failure mode is
// identical for an unknown email and a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, "", ErrInvalidCredentials
		}
		return models.User{}, "", err
	}

	if !auth.CheckPassword(user.Password, password) {
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return models.User{}, "", err
	}

	logger.WithCtx(ctx).Info("user logged in", "user_id", user.ID)
	return user, token, nil
}

// Logout revokes the session token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if err := auth.RevokeToken(claims); err != nil {
		return err
	}
	logger.WithCtx(ctx).Info("user logged out", "user_id", claims.UserID)
	return nil
}
