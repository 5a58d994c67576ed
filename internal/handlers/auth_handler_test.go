package handlers

import (
	"net/http"
	"testing"
)

func TestRegisterEndpoint(t *testing.T) {
	env := newTestEnv(t)

	body := map[string]interface{}{
		"name":     "Asha Verma",
		"email":    "asha@example.com",
		"password": "traveller42",
	}

	resp := env.do(t, http.MethodPost, "/api/v1/auth/register", "", body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, resp.Code, resp.Body.String())
	}
	out := decodeResponse(t, resp)
	data, ok := out.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected data payload: %v", out.Data)
	}
	if data["token"] == "" {
		t.Error("expected a token in the register response")
	}

	// Same email again.
	resp = env.do(t, http.MethodPost, "/api/v1/auth/register", "", body)
	if resp.Code != http.StatusConflict {
		t.Errorf("expected status %d for duplicate email, got %d", http.StatusConflict, resp.Code)
	}

	// Weak password.
	resp = env.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"name":     "Weak",
		"email":    "weak@example.com",
		"password": "lettersonly",
	})
	if resp.Code != http.StatusBadRequest {
		t.Errorf("expected status %d for weak password, got %d", http.StatusBadRequest, resp.Code)
	}
}

func TestLoginAndMeEndpoints(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"name":     "Ravi Kumar",
		"email":    "ravi@example.com",
		"password": "traveller42",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("register failed with status %d: %s", resp.Code, resp.Body.String())
	}

	resp = env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "ravi@example.com",
		"password": "wrong-password",
	})
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d for bad password, got %d", http.StatusUnauthorized, resp.Code)
	}

	resp = env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "ravi@example.com",
		"password": "traveller42",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("login failed with status %d: %s", resp.Code, resp.Body.String())
	}
	out := decodeResponse(t, resp)
	data, ok := out.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected data payload: %v", out.Data)
	}
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatal("expected a token in the login response")
	}

	resp = env.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status %d from /auth/me, got %d: %s", http.StatusOK, resp.Code, resp.Body.String())
	}

	resp = env.do(t, http.MethodGet, "/api/v1/auth/me", "", nil)
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d without token, got %d", http.StatusUnauthorized, resp.Code)
	}
}
