package services

import (
	"context"
	"testing"

	"github.com/railbook/railbook/internal/helpers"
	"github.com/railbook/railbook/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestRegisterAndLogin(t *testing.T) {
	repo := models.NewMemoryRepo()
	as := NewAuthService(repo, testSecret)

	user, token, err := as.Register(context.Background(), &models.RegisterRequest{
		Name:     "Ravi Kumar",
		Email:    "Ravi@Example.com",
		Password: "traveller42",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Equal(t, "ravi@example.com", user.Email)
	assert.NotEqual(t, "traveller42", user.Password, "password must be stored hashed")

	claims, err := helpers.ValidateToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.False(t, claims.IsAdmin())

	_, _, err = as.Register(context.Background(), &models.RegisterRequest{
		Name:     "Ravi Again",
		Email:    "ravi@example.com",
		Password: "traveller42",
	})
	require.ErrorIs(t, err, models.ErrEmailTaken)

	_, token, err = as.Login(context.Background(), &models.LoginRequest{
		Email:    "ravi@example.com",
		Password: "traveller42",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, _, err = as.Login(context.Background(), &models.LoginRequest{
		Email:    "ravi@example.com",
		Password: "wrong-password",
	})
	require.ErrorIs(t, err, models.ErrInvalidCredentials)

	_, _, err = as.Login(context.Background(), &models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "traveller42",
	})
	require.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestRegister_WeakPassword(t *testing.T) {
	repo := models.NewMemoryRepo()
	as := NewAuthService(repo, testSecret)

	tests := []struct {
		name     string
		password string
	}{
		{"too short", "ab1"},
		{"no digits", "passwordonly"},
		{"no letters", "1234567890"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := as.Register(context.Background(), &models.RegisterRequest{
				Name:     "Weak",
				Email:    "weak@example.com",
				Password: tt.password,
			})
			require.ErrorIs(t, err, models.ErrValidation)
		})
	}
}
