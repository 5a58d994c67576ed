package container

import (
	"log/slog"

	"github.com/railbook/railbook/internal/config"
	"github.com/railbook/railbook/internal/models"
	"github.com/railbook/railbook/internal/services"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Logger        *slog.Logger
	Config        *config.Config
	MongoDBClient *mongo.Client
	RedisClient   *redis.Client

	AuthService    *services.AuthService
	BookingService *services.BookingService
	QueryService   *services.QueryService
	CatalogService *services.CatalogService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	logger *slog.Logger,
	cfg *config.Config,
	mongoDBClient *mongo.Client,
	redisClient *redis.Client,
) *Container {
	repo := models.MongodbNewRepo(mongoDBClient)

	return &Container{
		Logger:         logger,
		Config:         cfg,
		MongoDBClient:  mongoDBClient,
		RedisClient:    redisClient,
		AuthService:    services.NewAuthService(repo, cfg.JWTSecret),
		BookingService: services.NewBookingService(repo, repo),
		QueryService:   services.NewQueryService(repo, repo),
		CatalogService: services.NewCatalogService(repo, repo),
	}
}
