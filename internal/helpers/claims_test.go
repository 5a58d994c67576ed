package helpers

import (
	"testing"
	"time"

	"github.com/railbook/railbook/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTokenRoundTrip(t *testing.T) {
	user := &models.User{
		ID:    primitive.NewObjectID(),
		Email: "asha@example.com",
		Role:  models.RoleAdmin,
	}

	token, err := GenerateToken(user, "secret-a", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := ValidateToken(token, "secret-a")
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != user.ID.Hex() {
		t.Errorf("expected user id %q, got %q", user.ID.Hex(), claims.UserID)
	}
	if claims.Email != user.Email {
		t.Errorf("expected email %q, got %q", user.Email, claims.Email)
	}
	if !claims.IsAdmin() {
		t.Error("expected admin claims")
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Role: models.RoleUser}

	token, err := GenerateToken(user, "secret-a", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := ValidateToken(token, "secret-b"); err == nil {
		t.Error("expected validation to fail with wrong secret")
	}
}

func TestValidateToken_Expired(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Role: models.RoleUser}

	token, err := GenerateToken(user, "secret-a", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := ValidateToken(token, "secret-a"); err == nil {
		t.Error("expected validation to fail for expired token")
	}
}
