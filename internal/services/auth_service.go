package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/railbook/railbook/internal/helpers"
	"github.com/railbook/railbook/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const tokenTTL = 24 * time.Hour

// AuthService owns account registration and login. Everything downstream only
// ever sees the claims it mints.
type AuthService struct {
	userRepo  models.UserRepo
	jwtSecret string
}

func NewAuthService(userRepo models.UserRepo, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
	}
}

func (as *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, string, error) {
	if err := models.Validate.Struct(req); err != nil {
		return nil, "", fmt.Errorf("%w: %v", models.ErrValidation, err)
	}
	if !helpers.IsPasswordStrong(req.Password) {
		return nil, "", fmt.Errorf("%w: password must be at least 8 characters with letters and digits", models.ErrValidation)
	}

	user := &models.User{
		Name:  helpers.StringTrim(req.Name),
		Email: req.Email,
		Role:  models.RoleUser,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := as.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := helpers.GenerateToken(created, as.jwtSecret, tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return created, token, nil
}

func (as *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, string, error) {
	if err := models.Validate.Struct(req); err != nil {
		return nil, "", fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	user, err := as.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, "", models.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !user.CheckPassword(req.Password) {
		return nil, "", models.ErrInvalidCredentials
	}

	token, err := helpers.GenerateToken(user, as.jwtSecret, tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (as *AuthService) Me(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return as.userRepo.GetUserByID(ctx, id)
}
