package routes

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/railbook/railbook/internal/container"
	"github.com/railbook/railbook/internal/handlers"
	"github.com/railbook/railbook/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	if container.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(container.Config.AllowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	auth := middleware.AuthMiddleware(container.Config.JWTSecret, container.Logger)
	authLimiter := middleware.RateLimit(container.Config.AuthRateLimit, container.RedisClient)
	bookingLimiter := middleware.RateLimit(container.Config.BookingRateLimit, container.RedisClient)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "railbook-api",
			})
		})

		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/register", authLimiter, handlers.Register(container.AuthService))
			authRoutes.POST("/login", authLimiter, handlers.Login(container.AuthService))
			authRoutes.GET("/me", auth, handlers.Me(container.AuthService))
		}

		trainRoutes := v1.Group("/trains")
		{
			trainRoutes.GET("", handlers.SearchTrains(container.QueryService))
			trainRoutes.GET("/:id", handlers.GetTrain(container.QueryService))
			trainRoutes.POST("", auth, middleware.AdminOnly(), handlers.CreateTrain(container.CatalogService))
			trainRoutes.PUT("/:id", auth, middleware.AdminOnly(), handlers.UpdateTrain(container.CatalogService))
			trainRoutes.DELETE("/:id", auth, middleware.AdminOnly(), handlers.DeleteTrain(container.CatalogService))
		}

		ticketRoutes := v1.Group("/tickets")
		ticketRoutes.Use(auth)
		{
			ticketRoutes.GET("", handlers.GetUserTickets(container.QueryService))
			ticketRoutes.POST("", bookingLimiter, handlers.BookTicket(container.BookingService))
			ticketRoutes.GET("/all", middleware.AdminOnly(), handlers.GetAllTickets(container.QueryService))
			ticketRoutes.GET("/:id", handlers.GetTicket(container.QueryService))
			ticketRoutes.PUT("/:id/cancel", bookingLimiter, handlers.CancelTicket(container.BookingService))
		}
	}

	return r
}
