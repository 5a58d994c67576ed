package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/railbook/railbook/internal/helpers"
	"github.com/railbook/railbook/internal/middleware"
	"github.com/railbook/railbook/internal/models"
	"github.com/railbook/railbook/internal/services"
)

const testSecret = "handler-test-secret"

type testEnv struct {
	repo    *models.MemoryRepo
	router  *gin.Engine
	booking *services.BookingService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := models.NewMemoryRepo()
	as := services.NewAuthService(repo, testSecret)
	bs := services.NewBookingService(repo, repo)
	qs := services.NewQueryService(repo, repo)
	cs := services.NewCatalogService(repo, repo)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	auth := middleware.AuthMiddleware(testSecret, logger)

	router := gin.New()
	v1 := router.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.POST("/register", Register(as))
	authGroup.POST("/login", Login(as))
	authGroup.GET("/me", auth, Me(as))

	trains := v1.Group("/trains")
	trains.GET("", SearchTrains(qs))
	trains.GET("/:id", GetTrain(qs))
	trains.POST("", auth, middleware.AdminOnly(), CreateTrain(cs))
	trains.PUT("/:id", auth, middleware.AdminOnly(), UpdateTrain(cs))
	trains.DELETE("/:id", auth, middleware.AdminOnly(), DeleteTrain(cs))

	tickets := v1.Group("/tickets")
	tickets.Use(auth)
	tickets.GET("", GetUserTickets(qs))
	tickets.POST("", BookTicket(bs))
	tickets.GET("/all", middleware.AdminOnly(), GetAllTickets(qs))
	tickets.GET("/:id", GetTicket(qs))
	tickets.PUT("/:id/cancel", CancelTicket(bs))

	return &testEnv{repo: repo, router: router, booking: bs}
}

func (e *testEnv) newUser(t *testing.T, role string) (*models.User, string) {
	t.Helper()
	user := &models.User{
		Name:  "Test User",
		Email: role + "@example.com",
		Role:  role,
	}
	user.BeforeCreate()
	token, err := helpers.GenerateToken(user, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return user, token
}

func (e *testEnv) seedTrain(t *testing.T, number, source, destination string, classes []models.ClassInventory) *models.Train {
	t.Helper()
	train := &models.Train{
		TrainNumber:   number,
		TrainName:     "Test Express",
		Source:        source,
		Destination:   destination,
		DepartureTime: "10:00",
		ArrivalTime:   "18:00",
		Classes:       classes,
		Days:          []string{"Monday"},
		Active:        true,
	}
	created, err := e.repo.CreateTrain(context.Background(), train)
	if err != nil {
		t.Fatalf("failed to seed train: %v", err)
	}
	return created
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, _ := http.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	e.router.ServeHTTP(resp, req)
	return resp
}

func decodeResponse(t *testing.T, resp *httptest.ResponseRecorder) models.ApiResponse {
	t.Helper()
	var out models.ApiResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", resp.Body.String(), err)
	}
	return out
}
